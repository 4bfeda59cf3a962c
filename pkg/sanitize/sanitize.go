// Package sanitize turns arbitrary answers into text the document renderer's
// built-in font can display.
package sanitize

import (
	"fmt"
	"reflect"
	"strings"
)

// Placeholder stands in for absent values.
const Placeholder = "-"

// missingLiteral is how an unset value reads once stringified by an upstream
// collector; it is treated as absent.
const missingLiteral = "None"

// Func is the sanitizer contract consumed by the document renderer.
type Func func(string) string

var typographic = strings.NewReplacer(
	"•", "-", // bullet
	"—", "-", // em dash
	"–", "-", // en dash
	"’", "'", // right single quote
	"‘", "'", // left single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
)

// Text maps empty input and the literal "None" to Placeholder and replaces
// typographic punctuation with ASCII equivalents. It never fails.
//
// A lone dash or bullet ("—", "–", "•") also comes out as "-", which is
// indistinguishable from Placeholder; the summary reads the same either way.
func Text(s string) string {
	if s == "" || s == missingLiteral {
		return Placeholder
	}
	return typographic.Replace(s)
}

// Value formats v and applies Text. Nil values, nil pointers and values
// reporting IsZero (such as an absent date) map to Placeholder.
func Value(v any) string {
	if v == nil {
		return Placeholder
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return Placeholder
		}
	}
	if z, ok := v.(interface{ IsZero() bool }); ok && z.IsZero() {
		return Placeholder
	}

	switch typed := v.(type) {
	case string:
		return Text(typed)
	case *string:
		return Text(*typed)
	case fmt.Stringer:
		return Text(typed.String())
	default:
		return Text(fmt.Sprint(typed))
	}
}
