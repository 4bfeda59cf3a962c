package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-intake/pkg/orchestrator"
	"github.com/goliatone/go-intake/pkg/render"
)

type renderOpts struct {
	in     string
	out    string
	format string
}

func (c *CLI) newRenderCmd() *cobra.Command {
	opts := renderOpts{out: ".", format: "pdf"}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a saved intake record without prompting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.in, "in", "i", "", "YAML record to render")
	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "directory for the generated file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output renderer: pdf or yaml")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	rec, err := render.DecodeRecord(data)
	if err != nil {
		return err
	}

	gen := c.orchestrator(logger)
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format == "" {
		format = "pdf"
	}
	if !slices.Contains(gen.Renderers(), format) {
		return fmt.Errorf("unknown format %q (available: %s)", opts.format, strings.Join(gen.Renderers(), ", "))
	}

	prog := newProgress(logger)
	artifact, err := gen.Generate(ctx, orchestrator.Request{Record: rec, Renderer: format})
	if err != nil {
		return describe(err)
	}
	path, err := writeArtifact(opts.out, artifact)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, path)
	prog.done("summary written")
	return nil
}
