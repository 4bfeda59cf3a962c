package document

import (
	"strings"
	"time"

	"github.com/goliatone/go-intake/pkg/sanitize"
)

// Defaults applied when Options leave a value unset.
const (
	DefaultTaxYear      = "2025/2026"
	DefaultBottomMargin = 15.0
	DefaultCreator      = "go-intake"
)

// Options configures layout and PDF output.
type Options struct {
	// TaxYear is printed in the header of every page.
	TaxYear string
	// Clock supplies the generated date. Defaults to time.Now.
	Clock func() time.Time
	// BottomMargin (mm) triggers automatic page breaks.
	BottomMargin float64
	// Sanitizer is applied to every value placed into the document.
	Sanitizer sanitize.Func
	// Compress toggles PDF stream compression.
	Compress bool
	Author   string
	Creator  string
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{
		TaxYear:      DefaultTaxYear,
		Clock:        time.Now,
		BottomMargin: DefaultBottomMargin,
		Sanitizer:    sanitize.Text,
		Compress:     true,
		Creator:      DefaultCreator,
	}
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.TaxYear) == "" {
		o.TaxYear = DefaultTaxYear
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.BottomMargin <= 0 {
		o.BottomMargin = DefaultBottomMargin
	}
	if o.Sanitizer == nil {
		o.Sanitizer = sanitize.Text
	}
	if strings.TrimSpace(o.Creator) == "" {
		o.Creator = DefaultCreator
	}
	return o
}

// Option mutates Options when constructing a Renderer.
type Option func(*Options)

// WithTaxYear overrides the tax year label.
func WithTaxYear(year string) Option {
	return func(o *Options) {
		if trimmed := strings.TrimSpace(year); trimmed != "" {
			o.TaxYear = trimmed
		}
	}
}

// WithClock pins the generated date, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		if clock != nil {
			o.Clock = clock
		}
	}
}

// WithBottomMargin sets the auto page-break margin in millimetres.
func WithBottomMargin(mm float64) Option {
	return func(o *Options) {
		if mm > 0 {
			o.BottomMargin = mm
		}
	}
}

// WithSanitizer swaps the text sanitizer.
func WithSanitizer(fn sanitize.Func) Option {
	return func(o *Options) {
		if fn != nil {
			o.Sanitizer = fn
		}
	}
}

// WithCompression toggles stream compression. Uncompressed output is useful
// when inspecting documents by hand.
func WithCompression(enabled bool) Option {
	return func(o *Options) {
		o.Compress = enabled
	}
}

// WithAuthor records the preparer in the document metadata.
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = strings.TrimSpace(author)
	}
}
