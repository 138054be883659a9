package provider

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert in multimedia content analysis. Write clear, well-structured summaries."

const summaryPrompt = `Analyze the following video transcript and write a detailed summary.

Structure the summary as:
1. Main topic of the video
2. Key points discussed
3. Important conclusions
4. Relevant keywords

Transcript:
---
%s
---`

// SystemPrompt is the instruction shared by chat-style summarizers
func SystemPrompt() string {
	return systemPrompt
}

// SummaryPrompt wraps a transcript in the summarization instructions
func SummaryPrompt(transcript string) string {
	return fmt.Sprintf(summaryPrompt, strings.TrimSpace(transcript))
}
