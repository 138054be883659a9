package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

const rule = "=================================================="

// Write stores the text artifact, then the optional docx rendition.
// A docx failure fails the write and removes the text artifact again.
func (s *implSink) Write(ctx context.Context, result domain.ItemResult) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	processedAt := s.now()
	stem := strings.TrimSuffix(filepath.Base(result.Item), filepath.Ext(result.Item))
	base := fmt.Sprintf("%s_summary_%s", stem, processedAt.Format("20060102_150405"))

	textPath, err := s.createExclusive(base, ".txt", []byte(formatText(result, processedAt.Format("2006-01-02 15:04:05"))))
	if err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	s.logger.Info(ctx, "Summary saved: %s", textPath)

	if s.docx {
		docxPath := strings.TrimSuffix(textPath, ".txt") + ".docx"
		if err := writeDocx(stem, result, docxPath); err != nil {
			if rmErr := os.Remove(textPath); rmErr != nil {
				s.logger.Warn(ctx, "Failed to remove %s: %v", textPath, rmErr)
			}
			return "", fmt.Errorf("write docx: %w", err)
		}
		s.logger.Info(ctx, "Docx saved: %s", docxPath)
	}

	return textPath, nil
}

// createExclusive writes base+ext, adding a numeric suffix when a file from
// another item with the same name already exists
func (s *implSink) createExclusive(base, ext string, data []byte) (string, error) {
	for i := 0; i < 100; i++ {
		name := base + ext
		if i > 0 {
			name = fmt.Sprintf("%s_%d%s", base, i, ext)
		}
		path := filepath.Join(s.outputDir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", err
		}
		return path, f.Close()
	}
	return "", fmt.Errorf("too many artifacts named %s%s", base, ext)
}

func formatText(r domain.ItemResult, processedAt string) string {
	var b strings.Builder

	b.WriteString("VIDEO SUMMARY\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("VIDEO INFORMATION:\n")
	fmt.Fprintf(&b, "- File: %s\n", filepath.Base(r.Item))
	fmt.Fprintf(&b, "- Format: %s\n", strings.ToUpper(r.Media.Format))
	fmt.Fprintf(&b, "- Duration: %.2f seconds\n", r.Media.DurationSeconds)
	fmt.Fprintf(&b, "- Size: %.2f MB\n", r.Media.SizeMB)
	fmt.Fprintf(&b, "- Resolution: %dx%d\n", r.Media.Width, r.Media.Height)
	fmt.Fprintf(&b, "- FPS: %.2f\n\n", r.Media.FPS)

	b.WriteString("CONFIGURATION:\n")
	fmt.Fprintf(&b, "- Transcription provider: %s\n", strings.ToUpper(r.TranscriptionProvider))
	fmt.Fprintf(&b, "- Summarization provider: %s\n", strings.ToUpper(r.SummarizationProvider))
	fmt.Fprintf(&b, "- Processed at: %s\n\n", processedAt)

	b.WriteString("FULL TRANSCRIPT:\n")
	b.WriteString("------------------------------\n")
	b.WriteString(strings.TrimSpace(r.Transcript) + "\n\n")

	b.WriteString("SUMMARY:\n")
	b.WriteString("------------------------------\n")
	b.WriteString(strings.TrimSpace(r.Summary) + "\n\n")

	b.WriteString(rule + "\n")
	return b.String()
}
