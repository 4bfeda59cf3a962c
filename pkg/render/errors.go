package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/record"
)

// ErrorMapping splits validation feedback into field-level and form-level
// messages keyed by the dotted field paths of a form.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors places the messages of a *record.ValidationError on the controls
// of form. Paths the form does not render become form-level messages so no
// feedback is lost. Any other error becomes a single form-level message.
// The taxpayer name message is always repeated at form level since it blocks
// submission.
func MapErrors(form model.FormModel, err error) ErrorMapping {
	mapping := ErrorMapping{}
	if err == nil {
		return mapping
	}

	var verr *record.ValidationError
	if !errors.As(err, &verr) {
		mapping.Form = normalizeMessages([]string{err.Error()})
		return mapping
	}

	mapping.Fields = make(map[string][]string)
	mapping.Form = append(mapping.Form, verr.Form...)
	for path, messages := range verr.Fields {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		if !renders(form, path) {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[path] = append(mapping.Fields[path], messages...)
	}
	if errors.Is(err, record.ErrTaxpayerNameRequired) {
		mapping.Form = append([]string{record.MessageTaxpayerNameRequired}, mapping.Form...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// renders reports whether path names a control of form. Repeat rows use
// "<group>.<index>.<item>".
func renders(form model.FormModel, path string) bool {
	if _, ok := form.Lookup(path); ok {
		return true
	}
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		if _, err := strconv.Atoi(segment); err != nil || i == 0 {
			continue
		}
		rest := append(append([]string(nil), segments[:i]...), segments[i+1:]...)
		if _, ok := form.Lookup(strings.Join(rest, ".")); ok {
			return true
		}
	}
	return false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
