// Package visibility decides whether a conditional field applies given the
// answers collected so far. Collectors skip fields that do not apply and the
// HTML form disables them.
package visibility

import (
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/session"
)

// Evaluator determines whether a field should be visible based on a rule
// string and the current answers.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values is the answer tree keyed by
// dotted paths; Extras carries caller-specific hints.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldPath, rule string, ctx Context) (bool, error) {
	return fn(fieldPath, rule, ctx)
}

// Checkbox treats rule as the path of a checkbox: the field applies while the
// checkbox is ticked. An empty rule always applies.
var Checkbox Evaluator = EvaluatorFunc(func(_ string, rule string, ctx Context) (bool, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return true, nil
	}
	gate, _ := session.NewState(ctx.Values, nil).GetValue(rule)
	return Ticked(gate), nil
})

// Applies reports whether field applies under values using Checkbox.
func Applies(field model.Field, values map[string]any) bool {
	ok, _ := Checkbox.Eval(field.Name, field.DependsOn, Context{Values: values})
	return ok
}

// Ticked interprets a checkbox value. Posted forms send strings, terminal
// prompts store booleans; for repeated posts the last value wins.
func Ticked(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true", "on", "yes", "y", "1", "checked":
			return true
		}
	case []string:
		if len(typed) == 0 {
			return false
		}
		return Ticked(typed[len(typed)-1])
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case float64:
		return typed != 0
	}
	return false
}
