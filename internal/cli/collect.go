package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-intake/pkg/collect"
	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/orchestrator"
	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/renderers/tui"
	"github.com/goliatone/go-intake/pkg/session"
)

type collectOpts struct {
	out        string
	exportYAML bool
}

func (c *CLI) newCollectCmd() *cobra.Command {
	var opts collectOpts

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Interview a client in the terminal and write the PDF summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runCollect(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "directory for the generated files")
	cmd.Flags().BoolVar(&opts.exportYAML, "yaml", false, "also save the answers as YAML for later re-rendering")
	return cmd
}

func (c *CLI) runCollect(cmd *cobra.Command, opts collectOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	def, err := form.Default()
	if err != nil {
		return err
	}

	collector := c.collector
	if collector == nil {
		collector = tui.New(tui.WithOutput(c.stdout))
	}

	state := session.NewState(nil, nil)
	if err := collector.Collect(ctx, def, state); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return errors.New("collection aborted, nothing was written")
		}
		return fmt.Errorf("collect answers: %w", err)
	}

	rec, err := collect.Bind(state.Values())
	if err != nil {
		return describe(err)
	}

	prog := newProgress(logger)
	gen := c.orchestrator(logger)

	artifact, err := gen.Submit(ctx, rec)
	if err != nil {
		return describe(err)
	}
	path, err := writeArtifact(opts.out, artifact)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, path)

	if opts.exportYAML {
		if err := c.export(cmd, gen, rec, opts.out); err != nil {
			return err
		}
	}

	prog.done("summary written")
	return nil
}

func (c *CLI) export(cmd *cobra.Command, gen *orchestrator.Orchestrator, rec record.IntakeRecord, dir string) error {
	artifact, err := gen.Generate(cmd.Context(), orchestrator.Request{Record: rec, Renderer: "yaml"})
	if err != nil {
		return err
	}
	path, err := writeArtifact(dir, artifact)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, path)
	return nil
}
