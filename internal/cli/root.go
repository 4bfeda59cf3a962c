package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-intake/internal/config"
)

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "intake",
		Short:         "Collect tax client intake answers and produce a PDF summary",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.SetVersionTemplate(fmt.Sprintf("intake %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a TOML config file")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&c.logFormat, "log-format", config.FormatConsole, "log format: console or json")

	root.AddCommand(c.newServeCmd())
	root.AddCommand(c.newCollectCmd())
	root.AddCommand(c.newRenderCmd())
	return root
}

// setup loads the config file, applies flag overrides and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = c.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, err := cfg.Log.ZerologLevel()
	if err != nil {
		return err
	}
	logger := newLogger(c.stderr, cfg.Log.Format, level)

	c.cfg = cfg
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}
