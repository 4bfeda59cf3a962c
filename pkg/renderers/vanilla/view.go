package vanilla

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/render"
	"github.com/goliatone/go-intake/pkg/session"
	"github.com/goliatone/go-intake/pkg/visibility"
)

type pageView struct {
	Title      string            `json:"title"`
	TaxYear    string            `json:"tax_year"`
	Notice     string            `json:"notice"`
	Submit     string            `json:"submit"`
	Action     string            `json:"action"`
	Banner     *bannerView       `json:"banner"`
	FormErrors []string          `json:"form_errors"`
	Sections   []sectionView     `json:"sections"`
	Classes    map[string]string `json:"classes"`
	Assets     assetView         `json:"assets"`
}

type bannerView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type assetView struct {
	Stylesheet string `json:"stylesheet"`
	Script     string `json:"script"`
}

type sectionView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      []fieldView `json:"fields"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type rowView struct {
	Index  string      `json:"index"`
	Label  string      `json:"label"`
	Fields []fieldView `json:"fields"`
}

// fieldView carries numbers as strings since templates receive JSON-decoded
// data and would print float64 values.
type fieldView struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	ErrorsID    string       `json:"errors_id"`
	Type        string       `json:"type"`
	Label       string       `json:"label"`
	Help        string       `json:"help"`
	Placeholder string       `json:"placeholder"`
	Required    bool         `json:"required"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Options     []optionView `json:"options"`
	Min         string       `json:"min"`
	Max         string       `json:"max"`
	DependsOn   string       `json:"depends_on"`
	Disabled    bool         `json:"disabled"`
	Errors      []string     `json:"errors"`
	Rows        []rowView    `json:"rows"`
}

type viewBuilder struct {
	state  *session.State
	values map[string]any
	errors map[string][]string
}

func buildPage(form model.FormModel, opts render.RenderOptions, assetPrefix string) pageView {
	b := viewBuilder{
		state:  session.NewState(opts.Values, nil),
		values: opts.Values,
		errors: opts.Errors,
	}

	page := pageView{
		Title:      form.Title,
		TaxYear:    opts.TaxYear,
		Notice:     form.Notice,
		Submit:     form.Submit,
		Action:     opts.Action,
		FormErrors: render.MergeFormErrors(opts.FormErrors),
		Classes:    chromeClasses(),
		Assets: assetView{
			Stylesheet: assetPrefix + StylesheetName,
			Script:     assetPrefix + ScriptName,
		},
	}
	if page.Submit == "" {
		page.Submit = "Submit"
	}
	if opts.Banner != nil && strings.TrimSpace(opts.Banner.Message) != "" {
		page.Banner = &bannerView{Kind: opts.Banner.Kind, Message: opts.Banner.Message}
	}

	for _, section := range form.Sections {
		sv := sectionView{ID: section.ID, Title: section.Title, Description: section.Description}
		for _, field := range section.Fields {
			sv.Fields = append(sv.Fields, b.field(field, field.Name, form))
		}
		page.Sections = append(page.Sections, sv)
	}
	return page
}

func (b viewBuilder) field(field model.Field, path string, form model.FormModel) fieldView {
	view := fieldView{
		Name:        path,
		ID:          controlID(path),
		ErrorsID:    errorsID(path),
		Type:        string(field.Type),
		Label:       field.Label,
		Help:        field.Help,
		Placeholder: field.Placeholder,
		Required:    field.Required,
		DependsOn:   field.DependsOn,
		Errors:      b.errors[path],
	}

	raw, present := b.state.GetValue(path)
	if !present && field.Default != "" {
		raw = field.Default
	}

	switch field.Type {
	case model.FieldTypeCheckbox:
		view.Checked = visibility.Ticked(raw)
	case model.FieldTypeSelect, model.FieldTypeRadio:
		view.Value = matchOption(field, textOf(raw))
		view.Options = options(field, []string{view.Value})
	case model.FieldTypeMultiSelect:
		var selected []string
		for _, v := range listOf(raw) {
			selected = append(selected, matchOption(field, v))
		}
		view.Options = options(field, selected)
	case model.FieldTypeStepper:
		lo, hi := field.Bounds()
		view.Min, view.Max = fmt.Sprint(lo), fmt.Sprint(hi)
		view.Value = fmt.Sprint(clamp(intOf(raw, lo), lo, hi))
	case model.FieldTypeRepeat:
		view.Rows = b.rows(field, path, form)
	default:
		view.Value = textOf(raw)
	}

	view.Disabled = !visibility.Applies(field, b.values)
	return view
}

func (b viewBuilder) rows(group model.Field, path string, form model.FormModel) []rowView {
	stepper, ok := form.Lookup(group.RepeatFrom)
	if !ok {
		return nil
	}
	lo, hi := stepper.Bounds()
	raw, _ := b.state.GetValue(group.RepeatFrom)
	count := clamp(intOf(raw, lo), lo, hi)

	rows := make([]rowView, 0, count)
	for i := 0; i < count; i++ {
		row := rowView{Index: fmt.Sprint(i), Label: rowLabel(group.ItemLabel, i+1)}
		for _, item := range group.Items {
			row.Fields = append(row.Fields, b.field(item, fmt.Sprintf("%s.%d.%s", path, i, item.Name), form))
		}
		rows = append(rows, row)
	}
	return rows
}

func rowLabel(format string, n int) string {
	if strings.Contains(format, "%d") {
		return fmt.Sprintf(format, n)
	}
	if format == "" {
		return fmt.Sprintf("#%d", n)
	}
	return fmt.Sprintf("%s %d", format, n)
}

// matchOption resolves a stored value, which may be an option key or label,
// to the option key.
func matchOption(field model.Field, raw string) string {
	raw = strings.TrimSpace(raw)
	for _, opt := range field.Options {
		if opt.Value == raw || strings.EqualFold(opt.Label, raw) {
			return opt.Value
		}
	}
	return raw
}

func options(field model.Field, selected []string) []optionView {
	out := make([]optionView, 0, len(field.Options))
	for _, opt := range field.Options {
		out = append(out, optionView{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: slices.Contains(selected, opt.Value),
		})
	}
	return out
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
