package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", raw: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around", raw: "Here you go:\n{\"a\":{\"b\":2}} hope it helps", want: `{"a":{"b":2}}`},
		{name: "braces in strings", raw: `{"tip":"use } and { carefully","n":"\"q\""}`, want: `{"tip":"use } and { carefully","n":"\"q\""}`},
		{name: "bom", raw: "\uFEFF{\"a\":1}", want: `{"a":1}`},
		{name: "no object", raw: "sorry, I cannot help", want: ""},
		{name: "unbalanced", raw: `{"a":{"b":1}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.raw); got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}
