package vanilla

import (
	"fmt"
	"strconv"
	"strings"
)

// controlID maps a dotted field path to an HTML id ("dependents.0.name" ->
// "in-dependents-0-name").
func controlID(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return "in-" + strings.ReplaceAll(trimmed, ".", "-")
}

func errorsID(path string) string {
	id := controlID(path)
	if id == "" {
		return ""
	}
	return id + "-errors"
}

func textOf(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []string:
		if len(typed) > 0 {
			return typed[0]
		}
		return ""
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

func listOf(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, textOf(item))
		}
		return out
	default:
		return []string{textOf(typed)}
	}
}

func intOf(value any, fallback int) int {
	switch typed := value.(type) {
	case int:
		return typed
	case int64:
		return int(typed)
	case float64:
		return int(typed)
	default:
		if n, err := strconv.Atoi(strings.TrimSpace(textOf(typed))); err == nil {
			return n
		}
		return fallback
	}
}
