// Package cli implements the intake command-line interface.
//
// The commands are:
//   - serve: run the browser form over HTTP
//   - collect: interview the client in the terminal and write the summary
//   - render: regenerate a summary from a saved record
//
// All commands accept --config (TOML), --verbose and --log-format. The
// logger travels through the command context.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/session"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. Values are
// usually injected through ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Collector fills a session state by interviewing the user.
// *tui.Collector satisfies it.
type Collector interface {
	Collect(ctx context.Context, form model.FormModel, state *session.State) error
}

// Option customises a CLI.
type Option func(*CLI)

// WithCollector replaces the terminal collector used by the collect command.
func WithCollector(collector Collector) Option {
	return func(c *CLI) {
		c.collector = collector
	}
}

// CLI holds the state shared by the commands of one invocation.
type CLI struct {
	stdout    io.Writer
	stderr    io.Writer
	collector Collector

	configPath string
	verbose    bool
	logFormat  string
	cfg        config.Config
}

// New constructs the CLI writing results to stdout and logs to stderr.
func New(stdout, stderr io.Writer, options ...Option) *CLI {
	c := &CLI{stdout: stdout, stderr: stderr, cfg: config.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Execute runs the intake CLI against the process arguments.
func Execute(ctx context.Context) error {
	return New(os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
}
