package render

import (
	"context"

	"github.com/goliatone/go-intake/pkg/document"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/record"
)

// DocumentRenderer turns a validated intake record into a downloadable
// artifact (the PDF summary, a YAML export).
type DocumentRenderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, rec record.IntakeRecord) (document.Artifact, error)
}

// FormRenderer presents a collection form (for example as an HTML page).
type FormRenderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
