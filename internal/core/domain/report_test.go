package domain

import (
	"strings"
	"testing"
)

func TestSummarize_ShortTextUnchanged(t *testing.T) {
	text := "Kurzer Bericht über den Hausbesuch."
	if got := Summarize(text); got != text {
		t.Errorf("short text must pass through unchanged, got %q", got)
	}
}

func TestSummarize_TruncatesToSummaryLength(t *testing.T) {
	text := strings.Repeat("a", 150)
	got := Summarize(text)
	if len([]rune(got)) != SummaryLength {
		t.Errorf("expected %d characters, got %d", SummaryLength, len([]rune(got)))
	}
	if !strings.HasPrefix(text, got) {
		t.Error("summary must be a prefix of the original text")
	}
}

// Truncation counts characters, not bytes. German report text regularly
// carries umlauts.
func TestSummarize_MultibyteSafe(t *testing.T) {
	text := strings.Repeat("ü", 150)
	got := Summarize(text)
	if len([]rune(got)) != SummaryLength {
		t.Errorf("expected %d runes, got %d", SummaryLength, len([]rune(got)))
	}
}

func TestSummarize_ExactBoundary(t *testing.T) {
	text := strings.Repeat("b", SummaryLength)
	if got := Summarize(text); got != text {
		t.Error("text of exactly SummaryLength must not be truncated")
	}
}

func TestHasStoredObject(t *testing.T) {
	cases := []struct {
		name   string
		report Report
		want   bool
	}{
		{"text report", Report{Kind: KindReport}, false},
		{"document without metadata", Report{Kind: KindDocument}, false},
		{"document without storage path", Report{Kind: KindDocument, FileMetadata: &FileMetadata{}}, false},
		{"stored document", Report{Kind: KindDocument, FileMetadata: &FileMetadata{StoragePath: "k1"}}, true},
	}
	for _, tc := range cases {
		if got := tc.report.HasStoredObject(); got != tc.want {
			t.Errorf("%s: want %v, got %v", tc.name, tc.want, got)
		}
	}
}
