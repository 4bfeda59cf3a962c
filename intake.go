// Package intake is the top-level entry point for the tax client intake
// collector. It re-exports the orchestrator constructor and the embedded
// assets so callers can wire a server or CLI without importing every package.
package intake

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-intake/pkg/document"
	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/orchestrator"
	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/render"
	"github.com/goliatone/go-intake/pkg/renderers/vanilla"
)

// RenderOptions aliases render.RenderOptions for callers rendering the form.
type RenderOptions = render.RenderOptions

// Artifact aliases document.Artifact.
type Artifact = document.Artifact

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateSummary validates rec and renders it with the default PDF renderer.
func GenerateSummary(ctx context.Context, rec record.IntakeRecord, options ...orchestrator.Option) (Artifact, error) {
	return orchestrator.New(options...).Submit(ctx, rec)
}

// DefaultForm returns the embedded intake form definition.
func DefaultForm() (model.FormModel, error) {
	return form.Default()
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and script referenced by the HTML form.
//
// Typical mount:
//
//	r.Handle("/assets/*",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(intake.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
