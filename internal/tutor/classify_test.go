package tutor

import (
	"reflect"
	"testing"
)

func TestClassifyReply(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"What is 7 times 8?", KindQuestion},
		{"Try this: why does ice float? Think about density.", KindQuestion},
		{"Photosynthesis converts light into chemical energy.", KindExplanation},
		{"", KindExplanation},
	}
	for _, tt := range tests {
		if got := ClassifyReply(tt.text); got != tt.want {
			t.Errorf("ClassifyReply(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Correct! 56 is right.", true},
		{"That is CORRECT.", true},
		{"Your answer is incorrect.", true},
		{"That is not correct.", true},
		{"Close, but the answer is 54.", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCorrect(tt.text); got != tt.want {
			t.Errorf("IsCorrect(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractHints(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "labelled lines",
			text: "Not quite.\nHint: use substitution\nHINT more info",
			want: []string{"use substitution", "more info"},
		},
		{
			name: "no hints",
			text: "Well done, that is right.",
			want: []string{},
		},
		{
			name: "hint mentioned mid-line keeps the line",
			text: "Here is a hint for you: factor first",
			want: []string{"Here is a hint for you: factor first"},
		},
		{
			name: "leading whitespace blocks label stripping",
			text: "  Hint: square both sides",
			want: []string{"Hint: square both sides"},
		},
		{
			name: "label only",
			text: "hint:",
			want: []string{""},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHints(tt.text)
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHints(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
