package provider

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

type chunkedSummarizer struct {
	next     Summarizer
	maxChars int
}

// Chunked wraps s so transcripts longer than maxChars are summarized part by
// part and the partial summaries are then merged by one more call.
func Chunked(s Summarizer, maxChars int) Summarizer {
	if maxChars <= 0 {
		return s
	}
	return &chunkedSummarizer{next: s, maxChars: maxChars}
}

func (c *chunkedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	chunks := SplitText(text, c.maxChars)
	if len(chunks) <= 1 {
		return c.next.Summarize(ctx, text)
	}

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := c.next.Summarize(ctx, fmt.Sprintf("[Part %d/%d]\n%s", i+1, len(chunks), chunk))
		if err != nil {
			return "", fmt.Errorf("summarize part %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, fmt.Sprintf("Part %d: %s", i+1, strings.TrimSpace(summary)))
	}

	merged, err := c.next.Summarize(ctx, "Partial summaries of one video:\n\n"+strings.Join(parts, "\n\n"))
	if err != nil {
		return "", fmt.Errorf("merge partial summaries: %w", err)
	}
	return merged, nil
}

// SplitText cuts text into pieces of at most maxChars runes, preferring to
// break on whitespace.
func SplitText(text string, maxChars int) []string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	runes := []rune(text)
	var chunks []string
	for len(runes) > 0 {
		if len(runes) <= maxChars {
			chunks = append(chunks, string(runes))
			break
		}

		cut := maxChars
		for i := maxChars; i > maxChars/2; i-- {
			if runes[i] == ' ' || runes[i] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, strings.TrimSpace(string(runes[:cut])))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " \n"))
	}
	return chunks
}
