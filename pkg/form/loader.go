package form

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/record"
)

type documentFile struct {
	ID       string        `yaml:"id"`
	Title    string        `yaml:"title"`
	Notice   string        `yaml:"notice"`
	Submit   string        `yaml:"submit"`
	Sections []sectionFile `yaml:"sections"`
}

type sectionFile struct {
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Fields      []fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"`
	Label       string      `yaml:"label"`
	Help        string      `yaml:"help"`
	Placeholder string      `yaml:"placeholder"`
	Required    bool        `yaml:"required"`
	Catalogue   string      `yaml:"catalogue"`
	Default     string      `yaml:"default"`
	Min         *int        `yaml:"min"`
	Max         *int        `yaml:"max"`
	DependsOn   string      `yaml:"dependsOn"`
	RepeatFrom  string      `yaml:"repeatFrom"`
	ItemLabel   string      `yaml:"itemLabel"`
	Items       []fieldFile `yaml:"items"`
}

var (
	defaultOnce sync.Once
	defaultForm model.FormModel
	defaultErr  error
)

// Default returns the bundled intake form, parsed once.
func Default() (model.FormModel, error) {
	defaultOnce.Do(func() {
		defaultForm, defaultErr = Load(EmbeddedFS(), DefaultDefinition)
	})
	return defaultForm, defaultErr
}

// MustDefault panics when the bundled definition is invalid.
func MustDefault() model.FormModel {
	form, err := Default()
	if err != nil {
		panic(err)
	}
	return form
}

// Load reads and validates the definition called name from fsys. Enumerated
// fields resolve their options from the record catalogues.
func Load(fsys fs.FS, name string) (model.FormModel, error) {
	if fsys == nil {
		return model.FormModel{}, errors.New("form: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("form: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse decodes a YAML definition. source is only used in error messages.
func Parse(data []byte, source string) (model.FormModel, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.FormModel{}, fmt.Errorf("form: file %s is empty", source)
	}

	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.FormModel{}, fmt.Errorf("form: parse %s: %w", source, err)
	}

	out := model.FormModel{
		ID:     strings.TrimSpace(doc.ID),
		Title:  strings.TrimSpace(doc.Title),
		Notice: strings.TrimSpace(doc.Notice),
		Submit: strings.TrimSpace(doc.Submit),
	}
	if out.ID == "" {
		return model.FormModel{}, fmt.Errorf("form: file %s defines no id", source)
	}
	if len(doc.Sections) == 0 {
		return model.FormModel{}, fmt.Errorf("form: file %s defines no sections", source)
	}

	seen := make(map[string]model.FieldType)
	for _, rawSection := range doc.Sections {
		section := model.Section{
			ID:          strings.TrimSpace(rawSection.ID),
			Title:       strings.TrimSpace(rawSection.Title),
			Description: strings.TrimSpace(rawSection.Description),
		}
		if section.ID == "" {
			return model.FormModel{}, fmt.Errorf("form: file %s defines a section without id", source)
		}
		for _, rawField := range rawSection.Fields {
			field, err := normaliseField(rawField, source)
			if err != nil {
				return model.FormModel{}, err
			}
			if _, exists := seen[field.Name]; exists {
				return model.FormModel{}, fmt.Errorf("form: file %s defines duplicate field %q", source, field.Name)
			}
			if err := checkReferences(field, seen, source); err != nil {
				return model.FormModel{}, err
			}
			seen[field.Name] = field.Type
			section.Fields = append(section.Fields, field)
		}
		out.Sections = append(out.Sections, section)
	}

	return out, nil
}

func normaliseField(raw fieldFile, source string) (model.Field, error) {
	field := model.Field{
		Name:        strings.TrimSpace(raw.Name),
		Type:        model.FieldType(strings.ToLower(strings.TrimSpace(raw.Type))),
		Label:       strings.TrimSpace(raw.Label),
		Help:        strings.TrimSpace(raw.Help),
		Placeholder: strings.TrimSpace(raw.Placeholder),
		Required:    raw.Required,
		Catalogue:   strings.TrimSpace(raw.Catalogue),
		Default:     strings.TrimSpace(raw.Default),
		Min:         raw.Min,
		Max:         raw.Max,
		DependsOn:   strings.TrimSpace(raw.DependsOn),
		RepeatFrom:  strings.TrimSpace(raw.RepeatFrom),
		ItemLabel:   strings.TrimSpace(raw.ItemLabel),
	}
	if field.Name == "" {
		return model.Field{}, fmt.Errorf("form: file %s defines a field without name", source)
	}

	switch field.Type {
	case model.FieldTypeText, model.FieldTypeTextArea, model.FieldTypeDate, model.FieldTypeCheckbox:
	case model.FieldTypeSelect, model.FieldTypeRadio, model.FieldTypeMultiSelect:
		options, ok := record.Options(field.Catalogue)
		if !ok {
			return model.Field{}, fmt.Errorf("form: file %s field %q references unknown catalogue %q", source, field.Name, field.Catalogue)
		}
		for _, opt := range options {
			field.Options = append(field.Options, model.Option{Value: opt.Key, Label: opt.Label})
		}
		if field.Default != "" && field.OptionIndex(field.Default) < 0 {
			return model.Field{}, fmt.Errorf("form: file %s field %q default %q is not an option", source, field.Name, field.Default)
		}
	case model.FieldTypeStepper:
		if field.Min == nil || field.Max == nil {
			return model.Field{}, fmt.Errorf("form: file %s stepper %q needs min and max", source, field.Name)
		}
		lo, hi := field.Bounds()
		if lo > hi {
			return model.Field{}, fmt.Errorf("form: file %s stepper %q has min %d above max %d", source, field.Name, lo, hi)
		}
		if field.Default != "" {
			if _, err := strconv.Atoi(field.Default); err != nil {
				return model.Field{}, fmt.Errorf("form: file %s stepper %q default %q is not a number", source, field.Name, field.Default)
			}
		}
	case model.FieldTypeRepeat:
		if field.RepeatFrom == "" || len(raw.Items) == 0 {
			return model.Field{}, fmt.Errorf("form: file %s repeat %q needs repeatFrom and items", source, field.Name)
		}
		for _, rawItem := range raw.Items {
			item, err := normaliseField(rawItem, source)
			if err != nil {
				return model.Field{}, err
			}
			if item.Type == model.FieldTypeRepeat {
				return model.Field{}, fmt.Errorf("form: file %s repeat %q cannot nest repeat %q", source, field.Name, item.Name)
			}
			field.Items = append(field.Items, item)
		}
	default:
		return model.Field{}, fmt.Errorf("form: file %s field %q has unsupported type %q", source, field.Name, raw.Type)
	}

	return field, nil
}

// checkReferences requires DependsOn/RepeatFrom targets to be declared earlier
// with the matching control type, so collectors can resolve them in order.
func checkReferences(field model.Field, seen map[string]model.FieldType, source string) error {
	if field.DependsOn != "" {
		if typ, ok := seen[field.DependsOn]; !ok || typ != model.FieldTypeCheckbox {
			return fmt.Errorf("form: file %s field %q depends on %q which is not an earlier checkbox", source, field.Name, field.DependsOn)
		}
	}
	if field.RepeatFrom != "" {
		if typ, ok := seen[field.RepeatFrom]; !ok || typ != model.FieldTypeStepper {
			return fmt.Errorf("form: file %s repeat %q counts from %q which is not an earlier stepper", source, field.Name, field.RepeatFrom)
		}
	}
	return nil
}
