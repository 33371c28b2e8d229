package pipeline

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	want := `{"primary_segment": "yoga"}`

	cases := []struct {
		name string
		raw  string
	}{
		{"direct", want},
		{"direct with whitespace", "\n  " + want + "  \n"},
		{"fenced json", "```json\n" + want + "\n```"},
		{"fenced bare", "```\n" + want + "\n```"},
		{"prose wrapped", "Here is the analysis you asked for:\n" + want + "\nLet me know if you need more."},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ExtractJSON(c.raw)
			if err != nil {
				t.Fatalf("ExtractJSON() error = %v", err)
			}
			if string(got) != want {
				t.Errorf("ExtractJSON() = %q, want %q", got, want)
			}
		})
	}
}

func TestExtractJSON_Garbage(t *testing.T) {
	raw := "I could not produce the requested output."
	_, err := ExtractJSON(raw)

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("ExtractJSON() error = %v, want *ParseError", err)
	}
	if pe.Raw != raw {
		t.Errorf("ParseError.Raw = %q, want original text", pe.Raw)
	}
}

func TestExtractJSON_BrokenBraces(t *testing.T) {
	_, err := ExtractJSON(`some text { "key": unclosed`)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("ExtractJSON() error = %v, want *ParseError", err)
	}
}
