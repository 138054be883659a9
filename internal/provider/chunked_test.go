package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingSummarizer struct {
	calls []string
	fail  int
}

func (r *recordingSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	r.calls = append(r.calls, text)
	if r.fail > 0 && len(r.calls) == r.fail {
		return "", errors.New("quota exceeded")
	}
	return "summary-" + string(rune('0'+len(r.calls))), nil
}

func TestChunkedShortTextSingleCall(t *testing.T) {
	rec := &recordingSummarizer{}
	out, err := Chunked(rec, 100).Summarize(context.Background(), "short transcript")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(rec.calls) != 1 || rec.calls[0] != "short transcript" {
		t.Fatalf("calls = %q", rec.calls)
	}
	if out != "summary-1" {
		t.Errorf("out = %q", out)
	}
}

func TestChunkedLongTextMerges(t *testing.T) {
	rec := &recordingSummarizer{}
	text := strings.Repeat("word ", 50) // 250 chars

	out, err := Chunked(rec, 100).Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	// three parts plus one merge
	if len(rec.calls) != 4 {
		t.Fatalf("calls = %d, want 4", len(rec.calls))
	}
	if !strings.HasPrefix(rec.calls[0], "[Part 1/3]") {
		t.Errorf("first call = %q", rec.calls[0])
	}
	if !strings.Contains(rec.calls[3], "Part 1: summary-1") {
		t.Errorf("merge call = %q", rec.calls[3])
	}
	if out != "summary-4" {
		t.Errorf("out = %q", out)
	}
}

func TestChunkedPropagatesPartFailure(t *testing.T) {
	rec := &recordingSummarizer{fail: 2}
	_, err := Chunked(rec, 100).Summarize(context.Background(), strings.Repeat("word ", 50))
	if err == nil || !strings.Contains(err.Error(), "part 2/3") {
		t.Fatalf("error = %v", err)
	}
}

func TestChunkedDisabled(t *testing.T) {
	rec := &recordingSummarizer{}
	if Chunked(rec, 0) != Summarizer(rec) {
		t.Fatal("Chunked with maxChars 0 should return the summarizer unchanged")
	}
}

func TestSplitText(t *testing.T) {
	chunks := SplitText("aaaa bbbb cccc", 9)
	if len(chunks) != 2 || chunks[0] != "aaaa bbbb" || chunks[1] != "cccc" {
		t.Fatalf("chunks = %q", chunks)
	}

	for _, c := range SplitText(strings.Repeat("x", 25), 10) {
		if len(c) > 10 {
			t.Errorf("chunk longer than limit: %q", c)
		}
	}
}
