package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/render"
	"github.com/goliatone/go-intake/pkg/renderers/tui"
	"github.com/goliatone/go-intake/pkg/session"
)

type scriptedCollector struct {
	answers map[string]any
	err     error
}

func (s scriptedCollector) Collect(_ context.Context, _ model.FormModel, state *session.State) error {
	if s.err != nil {
		return s.err
	}
	for path, value := range s.answers {
		if err := state.SetValue(path, value); err != nil {
			return err
		}
	}
	return nil
}

// hermeticConfig keeps tests away from the user's own config file.
func hermeticConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[document]\ncompress = false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", hermeticConfig(t)}, args...))
	return root.ExecuteContext(context.Background())
}

func TestCollectWritesSummaryAndRecord(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := t.TempDir()
	c := New(&stdout, &stderr, WithCollector(scriptedCollector{answers: map[string]any{
		record.FieldTaxpayerName:   "Jane Doe",
		record.FieldDependentCount: 1,
		"dependents.0.name":        "Sam Doe",
		record.FieldMedicalClaimed: true,
	}}))

	require.NoError(t, run(t, c, "collect", "--out", out, "--yaml"))

	pdf, err := os.ReadFile(filepath.Join(out, "Tax_Intake_Jane_Doe.pdf"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	data, err := os.ReadFile(filepath.Join(out, "Tax_Intake_Jane_Doe.yaml"))
	require.NoError(t, err)
	rec, err := render.DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", rec.Taxpayer.Name)
	require.Len(t, rec.Dependents, 1)
	require.True(t, rec.HasMedicalExpenses())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
}

func TestCollectAbortWritesNothing(t *testing.T) {
	out := t.TempDir()
	c := New(&bytes.Buffer{}, &bytes.Buffer{}, WithCollector(scriptedCollector{err: tui.ErrAborted}))

	err := run(t, c, "collect", "--out", out)
	require.ErrorContains(t, err, "aborted")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRenderFromRecordFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "record.yaml")
	require.NoError(t, os.WriteFile(in, []byte(`
taxpayer:
  name: "Jane O'Brien"
filingStatus: married_joint
incomeSources: [w2_wages]
`), 0o600))

	var stdout bytes.Buffer
	c := New(&stdout, &bytes.Buffer{})
	require.NoError(t, run(t, c, "render", "--in", in, "--out", dir))

	path := strings.TrimSpace(stdout.String())
	require.Equal(t, filepath.Join(dir, "Tax_Intake_Jane_O'Brien.pdf"), path)
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestRenderRejectsMissingTaxpayerName(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "record.yaml")
	require.NoError(t, os.WriteFile(in, []byte("phone: \"555-0100\"\n"), 0o600))

	c := New(&bytes.Buffer{}, &bytes.Buffer{})
	err := run(t, c, "render", "--in", in, "--out", dir)
	require.ErrorContains(t, err, record.MessageTaxpayerNameRequired)

	var verr *record.ValidationError
	require.False(t, errors.As(err, &verr), "validation detail is flattened for the terminal")
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "record.yaml")
	require.NoError(t, os.WriteFile(in, []byte("taxpayer:\n  name: Jane\n"), 0o600))

	c := New(&bytes.Buffer{}, &bytes.Buffer{})
	err := run(t, c, "render", "--in", in, "--format", "docx")
	require.ErrorContains(t, err, `unknown format "docx"`)
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nformat = \"xml\"\n"), 0o600))

	c := New(&bytes.Buffer{}, &bytes.Buffer{})
	root := c.RootCommand()
	root.SetArgs([]string{"--config", path, "render", "--in", "missing.yaml"})
	require.ErrorContains(t, root.ExecuteContext(context.Background()), "log.format")
}
