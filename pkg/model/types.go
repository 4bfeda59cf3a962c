package model

// FieldType enumerates the input controls collectors know how to present.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextArea    FieldType = "textarea"
	FieldTypeDate        FieldType = "date"
	FieldTypeSelect      FieldType = "select"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeStepper     FieldType = "stepper"
	FieldTypeRepeat      FieldType = "repeat"
)

// Option is one selectable value of a select, radio or multiselect field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual input. Name is a dotted path into the collected
// values (for example "taxpayer.name"); repeat items use paths relative to
// their group ("dependents.<i>.name").
type Field struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label,omitempty"`
	Help        string    `json:"help,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required,omitempty"`
	Catalogue   string    `json:"catalogue,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Default     string    `json:"default,omitempty"`
	Min         *int      `json:"min,omitempty"`
	Max         *int      `json:"max,omitempty"`
	// DependsOn names a checkbox field; the field only applies while that
	// checkbox is ticked.
	DependsOn string `json:"dependsOn,omitempty"`
	// RepeatFrom names the stepper field that controls how many times a
	// repeat group is collected.
	RepeatFrom string  `json:"repeatFrom,omitempty"`
	ItemLabel  string  `json:"itemLabel,omitempty"`
	Items      []Field `json:"items,omitempty"`
}

// Section groups fields under a heading.
type Section struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// FormModel is the renderer-agnostic description of a collection form.
type FormModel struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Notice   string    `json:"notice,omitempty"`
	Submit   string    `json:"submit,omitempty"`
	Sections []Section `json:"sections"`
}

// OptionLabel returns the label of value, or value itself when unknown.
func (f Field) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// OptionIndex returns the position of value in Options, or -1.
func (f Field) OptionIndex(value string) int {
	for i, opt := range f.Options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

// Bounds returns the stepper bounds with zero defaults.
func (f Field) Bounds() (lo, hi int) {
	if f.Min != nil {
		lo = *f.Min
	}
	hi = lo
	if f.Max != nil {
		hi = *f.Max
	}
	return lo, hi
}

// Lookup finds a top-level field (or a repeat item field using the group's
// "<group>.<item>" path) by name.
func (m FormModel) Lookup(name string) (Field, bool) {
	for _, section := range m.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				return field, true
			}
			for _, item := range field.Items {
				if field.Name+"."+item.Name == name {
					return item, true
				}
			}
		}
	}
	return Field{}, false
}

// Fields returns the top-level fields of every section in order.
func (m FormModel) Fields() []Field {
	var out []Field
	for _, section := range m.Sections {
		out = append(out, section.Fields...)
	}
	return out
}
