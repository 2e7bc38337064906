package content

import "testing"

func TestSanitizer_Sanitize(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain text untouched",
			text: "Interfaces define behavior.",
			want: "Interfaces define behavior.",
		},
		{
			name: "fence with language tag",
			text: "```python\nprint('hi')\n```",
			want: "print('hi')",
		},
		{
			name: "bare fence",
			text: "```\nx := 1\n```",
			want: "x := 1",
		},
		{
			name: "fence keeps surrounding prose",
			text: "Use this:\n```go\nfmt.Println(1)\n```\nDone.",
			want: "Use this:\n\nfmt.Println(1)\n\nDone.",
		},
		{
			name: "inline backticks removed",
			text: "Call `fmt.Println` to print.",
			want: "Call fmt.Println to print.",
		},
		{
			name: "blank line runs collapsed",
			text: "first\n\n\n\nsecond",
			want: "first\n\nsecond",
		},
		{
			name: "surrounding whitespace trimmed",
			text: "  answer  \n",
			want: "answer",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.text); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSanitizer_SanitizeIsIdempotent(t *testing.T) {
	s := NewSanitizer()

	input := "Intro\n```go\ncode := `raw`\n```\n\n\nOutro"
	once := s.Sanitize(input)
	twice := s.Sanitize(once)

	if once != twice {
		t.Errorf("Sanitize not idempotent: %q vs %q", once, twice)
	}
}
