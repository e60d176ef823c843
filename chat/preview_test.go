package chat

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncatePreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "hello", "hello"},
		{"exact", strings.Repeat("x", 100), strings.Repeat("x", 100)},
		{"long", strings.Repeat("x", 101), strings.Repeat("x", 100)},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncatePreview(tt.in, PreviewMaxLen); got != tt.want {
				t.Fatalf("got %d chars, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestTruncatePreviewMultibyte(t *testing.T) {
	in := strings.Repeat("é", 150)
	got := TruncatePreview(in, PreviewMaxLen)
	if !utf8.ValidString(got) {
		t.Fatal("truncated preview is not valid UTF-8")
	}
	if utf8.RuneCountInString(got) != 100 {
		t.Fatalf("rune count = %d, want 100", utf8.RuneCountInString(got))
	}
}
