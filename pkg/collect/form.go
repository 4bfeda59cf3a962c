package collect

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/session"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// FromForm flattens a posted HTML form into the value tree Bind reads.
// Repeat rows are posted as "<group>.<index>.<item>". An unticked checkbox is
// absent from a post, so every checkbox and multiselect of the form is
// written even when missing.
func FromForm(posted url.Values, form model.FormModel) (map[string]any, error) {
	state := session.NewState(nil, nil)

	for _, field := range form.Fields() {
		var err error
		switch field.Type {
		case model.FieldTypeCheckbox:
			err = state.SetValue(field.Name, visibility.Ticked(posted[field.Name]))
		case model.FieldTypeMultiSelect:
			err = state.SetValue(field.Name, toList(posted[field.Name]))
		case model.FieldTypeRepeat:
			err = bindRows(state, posted, field, form)
		default:
			if _, ok := posted[field.Name]; ok {
				err = state.SetValue(field.Name, strings.TrimSpace(posted.Get(field.Name)))
			}
		}
		if err != nil {
			return nil, fmt.Errorf("collect: field %s: %w", field.Name, err)
		}
	}

	return state.Values(), nil
}

// bindRows copies every posted row up to the stepper maximum so rows hidden
// by lowering the count survive until the count is raised again.
func bindRows(state *session.State, posted url.Values, group model.Field, form model.FormModel) error {
	limit := 0
	if stepper, ok := form.Lookup(group.RepeatFrom); ok {
		_, limit = stepper.Bounds()
	}
	for i := 0; i < limit; i++ {
		for _, item := range group.Items {
			key := fmt.Sprintf("%s.%d.%s", group.Name, i, item.Name)
			if _, ok := posted[key]; !ok {
				continue
			}
			if err := state.SetValue(key, strings.TrimSpace(posted.Get(key))); err != nil {
				return err
			}
		}
	}
	return nil
}
