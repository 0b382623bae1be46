package textutil

import (
	"strings"
	"testing"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{
			name: "empty input",
			text: "",
			max:  1,
			want: "",
		},
		{
			name: "zero max",
			text: "Some text.",
			max:  0,
			want: "",
		},
		{
			name: "single sentence kept whole",
			text: "This is the whole transcription.",
			max:  1,
			want: "This is the whole transcription.",
		},
		{
			name: "first sentence only",
			text: "First thing. Second thing. Third thing.",
			max:  1,
			want: "First thing.",
		},
		{
			name: "two sentences",
			text: "First thing. Second thing. Third thing.",
			max:  2,
			want: "First thing. Second thing.",
		},
		{
			name: "max beyond sentence count",
			text: "Only one. And another.",
			max:  10,
			want: "Only one. And another.",
		},
		{
			name: "leading whitespace trimmed",
			text: "   Padded sentence.   ",
			max:  1,
			want: "Padded sentence.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.text, tt.max); got != tt.want {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}

func TestExcerptTruncatesLongSentence(t *testing.T) {
	text := strings.Repeat("a", 500)

	got := Excerpt(text, 1)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected truncation marker, got %q", got[len(got)-10:])
	}
	if n := len([]rune(got)); n > 201 {
		t.Errorf("excerpt too long: %d runes", n)
	}
}
