package telegram

import (
	"strings"
	"testing"
)

func TestSplitMessage(t *testing.T) {
	short := "hello"
	if parts := SplitMessage(short, 10); len(parts) != 1 || parts[0] != short {
		t.Errorf("SplitMessage(short) = %v", parts)
	}

	long := strings.Repeat("line\n", 2000)
	parts := SplitMessage(long, MaxMessageLen)
	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}
	var total int
	for i, p := range parts {
		if len([]rune(p)) > MaxMessageLen {
			t.Errorf("part %d exceeds max length", i)
		}
		total += len(p)
	}
	if total != len(long) {
		t.Errorf("split lost content: %d != %d", total, len(long))
	}
}

func TestFixMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"`balanced`", "`balanced`"},
		{"`unclosed", "`unclosed`"},
		{"```go\ncode", "```go\ncode\n```"},
	}

	for _, tt := range tests {
		if got := FixMarkdown(tt.in); got != tt.want {
			t.Errorf("FixMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
