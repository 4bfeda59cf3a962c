package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-intake/pkg/document"
	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/render"
)

const defaultRendererName = "pdf"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDocumentOptions configures the built-in PDF renderer. Ignored when a
// registry is injected.
func WithDocumentOptions(options ...document.Option) Option {
	return func(o *Orchestrator) {
		o.documentOptions = append(o.documentOptions, options...)
	}
}

// WithTransformers registers transformers that run against the record after
// validation and before rendering.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithLogger attaches a logger. Only artifact metadata is logged, never
// answers.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates validation and rendering of a completed intake
// record. It applies defaults (PDF and YAML renderers) while remaining open
// to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	documentOptions []document.Option
	transformers    []Transformer
	logger          zerolog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a render of one record.
type Request struct {
	Record record.IntakeRecord
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
}

// Submit validates rec and renders it with the default renderer.
func (o *Orchestrator) Submit(ctx context.Context, rec record.IntakeRecord) (document.Artifact, error) {
	return o.Generate(ctx, Request{Record: rec})
}

// Generate validates the record, applies transformers and renders it.
// Validation failures return the *record.ValidationError untouched and no
// renderer runs. Renderer failures are wrapped and keep their cause
// (typically *document.GenerationError).
func (o *Orchestrator) Generate(ctx context.Context, req Request) (document.Artifact, error) {
	if ctx == nil {
		return document.Artifact{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return document.Artifact{}, err
	}
	if err := o.initialiseErr; err != nil {
		return document.Artifact{}, err
	}

	rec := req.Record
	if err := rec.Validate(); err != nil {
		o.logger.Info().Str("outcome", "rejected").Msg("intake submission failed validation")
		return document.Artifact{}, err
	}

	if err := o.applyTransformers(ctx, &rec); err != nil {
		return document.Artifact{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return document.Artifact{}, err
	}

	started := time.Now()
	artifact, err := renderer.Render(ctx, rec)
	if err != nil {
		o.logger.Error().Err(err).Str("renderer", renderer.Name()).Msg("summary generation failed")
		return document.Artifact{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.Info().
		Str("renderer", renderer.Name()).
		Str("artifact", artifact.Filename).
		Int("pages", artifact.Pages).
		Dur("elapsed", time.Since(started)).
		Msg("summary generated")
	return artifact, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) rendererFor(name string) (render.DocumentRenderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformers(ctx context.Context, rec *record.IntakeRecord) error {
	for _, transformer := range o.transformers {
		if transformer == nil {
			continue
		}
		if err := transformer.Transform(ctx, rec); err != nil {
			return fmt.Errorf("orchestrator: transform record: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := o.registry.Register(document.New(o.documentOptions...)); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		if err := o.registry.Register(render.NewYAMLRenderer()); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: yaml renderer: %w", err)
			return
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
