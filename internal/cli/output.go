package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-intake/pkg/document"
	"github.com/goliatone/go-intake/pkg/orchestrator"
	"github.com/goliatone/go-intake/pkg/record"
)

// Summaries carry personal data, so output is readable by the owner only.
const (
	dirMode  = 0o700
	fileMode = 0o600
)

func (c *CLI) orchestrator(logger *zerolog.Logger) *orchestrator.Orchestrator {
	return orchestrator.New(
		orchestrator.WithDocumentOptions(c.cfg.DocumentOptions()...),
		orchestrator.WithTransformers(orchestrator.TrimSpace),
		orchestrator.WithLogger(*logger),
	)
}

// writeArtifact stores artifact under dir and returns the written path.
func writeArtifact(dir string, artifact document.Artifact) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, fileMode); err != nil {
		return "", fmt.Errorf("write %s: %w", artifact.Filename, err)
	}
	return path, nil
}

// describe flattens a validation failure into the messages a user can act on.
func describe(err error) error {
	var verr *record.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return fmt.Errorf("cannot generate summary: %s", strings.Join(verr.Messages(), " "))
}
