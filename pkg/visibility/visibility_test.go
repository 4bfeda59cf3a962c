package visibility

import (
	"testing"

	"github.com/goliatone/go-intake/pkg/model"
)

func TestApplies(t *testing.T) {
	notes := model.Field{Name: "medical.notes", Type: model.FieldTypeTextArea, DependsOn: "medical.claimed"}

	cases := []struct {
		name   string
		values map[string]any
		want   bool
	}{
		{"absent gate", nil, false},
		{"ticked bool", map[string]any{"medical": map[string]any{"claimed": true}}, true},
		{"unticked bool", map[string]any{"medical": map[string]any{"claimed": false}}, false},
		{"posted string", map[string]any{"medical": map[string]any{"claimed": "on"}}, true},
		{"hidden then checkbox", map[string]any{"medical": map[string]any{"claimed": []string{"false", "true"}}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Applies(notes, tc.values); got != tc.want {
				t.Fatalf("Applies = %v, want %v", got, tc.want)
			}
		})
	}

	plain := model.Field{Name: "phone", Type: model.FieldTypeText}
	if !Applies(plain, nil) {
		t.Fatal("fields without a gate always apply")
	}
}

func TestEvaluatorFunc(t *testing.T) {
	var calls int
	eval := EvaluatorFunc(func(path, rule string, ctx Context) (bool, error) {
		calls++
		return ctx.Extras["role"] == "preparer", nil
	})
	ok, err := eval.Eval("notes", "", Context{Extras: map[string]any{"role": "preparer"}})
	if err != nil || !ok || calls != 1 {
		t.Fatalf("eval = %v, %v (calls %d)", ok, err, calls)
	}
}
