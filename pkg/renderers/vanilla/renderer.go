package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/render"
	rendertemplate "github.com/goliatone/go-intake/pkg/render/template"
	"github.com/goliatone/go-intake/pkg/render/template/gotemplate"
)

// DefaultAssetPrefix is where the page expects AssetsFS to be mounted.
const DefaultAssetPrefix = "/assets/"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetPrefix      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers a directory on disk over the embedded templates.
// The directory holds bare files (page.tmpl, field.tmpl); any file it lacks
// falls back to the embedded copy.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		cfg.templateFS = overlayFS{
			prefix: templatesDir + "/",
			disk:   os.DirFS(path),
			base:   TemplatesFS(),
		}
	}
}

type overlayFS struct {
	prefix string
	disk   fs.FS
	base   fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if rest, ok := strings.CutPrefix(name, o.prefix); ok {
		if f, err := o.disk.Open(rest); err == nil {
			return f, nil
		}
	}
	return o.base.Open(name)
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetPrefix changes the URL prefix of the stylesheet and script.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			return
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		cfg.assetPrefix = prefix
	}
}

// Renderer renders the intake form as a standalone HTML page.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	assetPrefix string
}

var _ render.FormRenderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetPrefix: DefaultAssetPrefix}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithFilters(map[string]pongo2.FilterFunction{
				"markup": filterMarkup,
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, assetPrefix: cfg.assetPrefix}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the page for form, prefilled from options.Values with
// options.Errors shown next to their controls.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	page := buildPage(form, options, r.assetPrefix)
	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"page": page,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
