package document

import (
	"bytes"
	"context"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/sanitize"
)

// ContentType of every artifact.
const ContentType = "application/pdf"

// Artifact is the finished, downloadable document.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	Pages       int
}

// Filename derives the download name from the taxpayer name. Spaces and path
// separators become underscores.
func Filename(taxpayerName string, clean sanitize.Func) string {
	if clean == nil {
		clean = sanitize.Text
	}
	name := clean(strings.TrimSpace(taxpayerName))
	name = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', '"':
			return '_'
		}
		return r
	}, name)
	return "Tax_Intake_" + name + ".pdf"
}

// Renderer lays out an intake record and serializes it as PDF.
type Renderer struct {
	opts       Options
	fontFamily string
}

// New constructs a renderer from DefaultOptions plus the given options.
func New(options ...Option) *Renderer {
	opts := DefaultOptions()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return &Renderer{opts: opts.withDefaults(), fontFamily: "Helvetica"}
}

// Options returns the effective configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "pdf"
}

// ContentType reports the MIME type of the artifacts.
func (r *Renderer) ContentType() string {
	return ContentType
}

// Render validates rec, lays it out and writes the PDF. An invalid record
// yields its *record.ValidationError and no artifact; serialization failures
// are reported as *GenerationError.
func (r *Renderer) Render(ctx context.Context, rec record.IntakeRecord) (Artifact, error) {
	if r == nil {
		return Artifact{}, ErrNilRenderer
	}
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	if err := rec.Validate(); err != nil {
		return Artifact{}, err
	}

	layout := BuildLayout(rec, r.opts)
	filename := Filename(rec.Taxpayer.Name, r.opts.Sanitizer)

	data, pages, err := r.paint(layout)
	if err != nil {
		return Artifact{}, &GenerationError{Filename: filename, Err: err}
	}

	return Artifact{
		Filename:    filename,
		ContentType: ContentType,
		Data:        data,
		Pages:       pages,
	}, nil
}

// Greys used by the layout.
const (
	titleGrey    = 40
	subtitleGrey = 120
	labelGrey    = 100
	barGrey      = 240
)

func (r *Renderer) paint(layout Layout) ([]byte, int, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	family := r.fontFamily

	pdf.SetCompression(r.opts.Compress)
	pdf.SetCreationDate(r.opts.Clock())
	pdf.SetTitle("Client Intake Summary", false)
	pdf.SetCreator(r.opts.Creator, true)
	if r.opts.Author != "" {
		pdf.SetAuthor(r.opts.Author, true)
	}
	pdf.SetAutoPageBreak(true, r.opts.BottomMargin)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(family, "B", 16)
		pdf.SetTextColor(titleGrey, titleGrey, titleGrey)
		pdf.CellFormat(0, 10, tr(layout.Title), "", 1, "L", false, 0, "")

		pdf.SetFont(family, "B", 10)
		pdf.SetTextColor(subtitleGrey, subtitleGrey, subtitleGrey)
		pdf.CellFormat(0, 5, tr(layout.Subtitle), "", 1, "L", false, 0, "")
		pdf.Ln(10)
	})

	pdf.AddPage()

	for i, section := range layout.Sections {
		if gap := sectionGap(i); gap > 0 {
			pdf.Ln(gap)
		}
		pdf.SetFillColor(barGrey, barGrey, barGrey)
		pdf.SetFont(family, "B", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, tr(" "+section.Title), "", 1, "L", true, 0, "")
		pdf.Ln(3)

		for _, block := range section.Blocks {
			switch block.Kind {
			case BlockField:
				pdf.SetFont(family, "B", 9)
				pdf.SetTextColor(labelGrey, labelGrey, labelGrey)
				pdf.CellFormat(0, 5, tr(strings.ToUpper(block.Label)), "", 1, "L", false, 0, "")

				pdf.SetFont(family, "", 10)
				pdf.SetTextColor(0, 0, 0)
				pdf.MultiCell(0, 6, tr(block.Value), "", "L", false)
				pdf.Ln(3)
			case BlockItem:
				pdf.SetFont(family, "", 10)
				pdf.SetTextColor(0, 0, 0)
				pdf.MultiCell(0, 7, tr("- "+block.Value), "", "L", false)
				pdf.Ln(1)
			case BlockText:
				pdf.SetFont(family, "", 10)
				pdf.SetTextColor(0, 0, 0)
				pdf.MultiCell(0, 7, tr(block.Value), "", "L", false)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, 0, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pdf.PageNo(), nil
}

// sectionGap is the vertical space (mm) inserted before section i.
func sectionGap(i int) float64 {
	switch {
	case i == 0:
		return 0
	case i == 1:
		return 2
	default:
		return 5
	}
}
