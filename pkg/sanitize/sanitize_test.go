package sanitize

import (
	"strings"
	"testing"

	"github.com/goliatone/go-intake/pkg/record"
)

func TestText_AbsentValuesBecomePlaceholder(t *testing.T) {
	cases := map[string]string{
		"":          "-",
		"None":      "-",
		"none":      "none",
		" None":     " None",
		"Jane":      "Jane",
		"-":         "-",
		"Nonesuch":  "Nonesuch",
		"N/A":       "N/A",
		"0":         "0",
		"  spaced ": "  spaced ",
	}
	for input, want := range cases {
		if got := Text(input); got != want {
			t.Errorf("Text(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestText_ReplacesTypographicCharacters(t *testing.T) {
	input := "• Jane’s “notes” — 2024–2025 ‘ok’ café"
	want := "- Jane's \"notes\" - 2024-2025 'ok' café"

	got := Text(input)
	if got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	for _, r := range []string{"•", "—", "–", "’", "‘", "“", "”"} {
		if strings.Contains(got, r) {
			t.Fatalf("output still contains %q", r)
		}
	}
}

func TestText_LoneDashMatchesPlaceholder(t *testing.T) {
	for _, input := range []string{"—", "–", "•"} {
		if got := Text(input); got != Placeholder {
			t.Errorf("Text(%q) = %q, want %q", input, got, Placeholder)
		}
	}
}

func TestText_PreservesOtherCharactersInOrder(t *testing.T) {
	inputs := []string{
		"plain ascii",
		"Ünïcödé stays",
		"line\nbreak\ttab",
		"a—b–c",
	}
	for _, input := range inputs {
		got := Text(input)
		if len([]rune(got)) != len([]rune(input)) {
			t.Fatalf("replacement changed rune count: %q -> %q", input, got)
		}
		in, out := []rune(input), []rune(got)
		for i := range in {
			if in[i] == out[i] {
				continue
			}
			if !strings.ContainsRune("•—–’‘“”", in[i]) {
				t.Fatalf("rune %d changed from %q to %q", i, in[i], out[i])
			}
		}
	}
}

func TestValue_NormalisesAbsentValues(t *testing.T) {
	var nilString *string
	empty := ""
	name := "Max"

	cases := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "-"},
		{"nil pointer", nilString, "-"},
		{"empty pointer", &empty, "-"},
		{"pointer", &name, "Max"},
		{"absent date", record.Date{}, "-"},
		{"date", record.NewDate(2015, 5, 1), "2015-05-01"},
		{"stringer", record.RelationshipStepChild, "Step-child"},
		{"int", 3, "3"},
		{"none literal", "None", "-"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Value(tc.input); got != tc.want {
				t.Fatalf("Value() = %q, want %q", got, tc.want)
			}
		})
	}
}
