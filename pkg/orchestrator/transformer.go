package orchestrator

import (
	"context"
	"strings"

	"github.com/goliatone/go-intake/pkg/record"
)

// Transformer mutates a validated record before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, rec *record.IntakeRecord) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, rec *record.IntakeRecord) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, rec *record.IntakeRecord) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, rec)
}

// TrimSpace strips surrounding whitespace from every free-text answer.
var TrimSpace = TransformerFunc(func(_ context.Context, rec *record.IntakeRecord) error {
	rec.Taxpayer.Name = strings.TrimSpace(rec.Taxpayer.Name)
	rec.Spouse.Name = strings.TrimSpace(rec.Spouse.Name)
	rec.Address = strings.TrimSpace(rec.Address)
	rec.Phone = strings.TrimSpace(rec.Phone)
	rec.Email = strings.TrimSpace(rec.Email)
	rec.AdditionalNotes = strings.TrimSpace(rec.AdditionalNotes)
	if rec.Medical != nil {
		rec.Medical = &record.MedicalExpenses{Notes: strings.TrimSpace(rec.Medical.Notes)}
	}

	if len(rec.Dependents) > 0 {
		deps := make([]record.Dependent, len(rec.Dependents))
		for i, dep := range rec.Dependents {
			dep.Name = strings.TrimSpace(dep.Name)
			deps[i] = dep
		}
		rec.Dependents = deps
	}
	return nil
})
