package session

import (
	"fmt"
	"strconv"
	"strings"
)

// State tracks in-progress answers and their errors keyed by dotted paths
// ("taxpayer.name", "dependents.0.relationship"). Numeric segments address
// list entries. A State is not safe for concurrent use; Store hands out
// copies.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	return &State{
		values: cloneValues(prefill),
		errors: cloneErrors(errs),
	}
}

// Values returns a copy of the value tree.
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return cloneValues(s.values)
}

// ErrorsFor returns the errors attached to a dotted path.
func (s *State) ErrorsFor(path string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[path]
}

// Errors returns a copy of every recorded error.
func (s *State) Errors() map[string][]string {
	if s == nil {
		return nil
	}
	return cloneErrors(s.errors)
}

// SetErrors replaces the recorded errors.
func (s *State) SetErrors(errs map[string][]string) {
	if s == nil {
		return
	}
	s.errors = cloneErrors(errs)
}

// GetValue resolves a dotted path.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return getPath(s.values, path)
}

// GetString resolves path and formats scalar values as text.
func (s *State) GetString(path string) string {
	value, ok := s.GetValue(path)
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

// SetValue writes value at path, creating intermediate maps and lists.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("session: state is nil")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("session: empty path")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	updated, err := assign(s.values, strings.Split(path, "."), value, path)
	if err != nil {
		return err
	}
	s.values = updated.(map[string]any)
	return nil
}

// Delete removes the value at path. List entries are cleared rather than
// removed so later indexes keep their meaning.
func (s *State) Delete(path string) {
	if s == nil || path == "" {
		return
	}
	segments := strings.Split(path, ".")
	var parent any = s.values
	if len(segments) > 1 {
		var ok bool
		if parent, ok = getPath(s.values, strings.Join(segments[:len(segments)-1], ".")); !ok {
			return
		}
	}
	last := segments[len(segments)-1]
	switch node := parent.(type) {
	case map[string]any:
		delete(node, last)
	case []any:
		if idx, err := strconv.Atoi(last); err == nil && idx >= 0 && idx < len(node) {
			node[idx] = nil
		}
	}
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	if s == nil {
		return NewState(nil, nil)
	}
	return NewState(s.values, s.errors)
}

func assign(node any, segments []string, value any, path string) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	segment, rest := segments[0], segments[1:]
	if segment == "" {
		return nil, fmt.Errorf("session: empty segment in path %q", path)
	}

	if idx, err := strconv.Atoi(segment); err == nil {
		if idx < 0 {
			return nil, fmt.Errorf("session: negative index in path %q", path)
		}
		list, ok := node.([]any)
		if !ok && node != nil {
			return nil, fmt.Errorf("session: path %q indexes a %T", path, node)
		}
		if len(list) <= idx {
			list = append(list, make([]any, idx+1-len(list))...)
		}
		child, err := assign(list[idx], rest, value, path)
		if err != nil {
			return nil, err
		}
		list[idx] = child
		return list, nil
	}

	m, ok := node.(map[string]any)
	if !ok {
		if node != nil {
			return nil, fmt.Errorf("session: path %q descends into a %T", path, node)
		}
		m = make(map[string]any)
	}
	child, err := assign(m[segment], rest, value, path)
	if err != nil {
		return nil, err
	}
	m[segment] = child
	return m, nil
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func cloneErrors(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
