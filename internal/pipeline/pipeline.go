package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

// Run validates, extracts, transcribes, summarizes and persists one item
func (p *implExecutor) Run(ctx context.Context, req Request) (domain.ItemResult, error) {
	startTime := p.now()
	item := req.Item

	p.logger.Info(ctx, "Starting item: %s", item)

	// Step 1: Validate input
	if err := p.validate(item); err != nil {
		return domain.ItemResult{}, err
	}

	// Step 2: Probe and extract audio
	info, err := p.extractor.Probe(ctx, item)
	if err != nil {
		return domain.ItemResult{}, newStageError(item, domain.StageExtract, domain.ErrorKindExtraction, "probe media", err)
	}
	if !info.HasAudio {
		return domain.ItemResult{}, newStageError(item, domain.StageExtract, domain.ErrorKindExtraction, "media has no audio stream", nil)
	}

	extraction, err := p.extractor.ExtractAudio(ctx, item)
	if err != nil {
		return domain.ItemResult{}, newStageError(item, domain.StageExtract, domain.ErrorKindExtraction, "extract audio", err)
	}
	defer func() {
		if err := extraction.Cleanup(); err != nil {
			p.logger.Warn(ctx, "Failed to cleanup temp audio %s: %v", extraction.Audio.Path, err)
		}
	}()

	// Step 3: Transcribe
	transcript, err := req.Transcriber.Transcribe(ctx, extraction.Audio)
	if err != nil {
		return domain.ItemResult{}, newStageError(item, domain.StageTranscribe, domain.ErrorKindTranscription, describe(req.TranscriberName, err), err)
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return domain.ItemResult{}, newStageError(item, domain.StageTranscribe, domain.ErrorKindTranscription, "empty transcript", nil)
	}
	p.logger.Debug(ctx, "Transcript ready: %d chars", len(transcript))

	// Step 4: Summarize
	summary, err := req.Summarizer.Summarize(ctx, transcript)
	if err != nil {
		return domain.ItemResult{}, newStageError(item, domain.StageSummarize, domain.ErrorKindSummarization, describe(req.SummarizerName, err), err)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return domain.ItemResult{}, newStageError(item, domain.StageSummarize, domain.ErrorKindSummarization, "empty summary", nil)
	}

	result := domain.ItemResult{
		Item:                  item,
		Media:                 info,
		Transcript:            transcript,
		Summary:               summary,
		TranscriptionProvider: req.TranscriberName,
		SummarizationProvider: req.SummarizerName,
	}

	// Step 5: Persist
	outputPath, err := p.sink.Write(ctx, result)
	if err != nil {
		return domain.ItemResult{}, newStageError(item, domain.StagePersist, domain.ErrorKindPersist, "write artifact", err)
	}
	result.OutputPath = outputPath
	result.CompletedAt = p.now()

	p.logger.Info(ctx, "Item completed in %s: %s -> %s", result.CompletedAt.Sub(startTime).Round(time.Millisecond), item, outputPath)
	return result, nil
}

// validate checks existence, extension and size
func (p *implExecutor) validate(item string) error {
	if strings.TrimSpace(item) == "" {
		return newStageError(item, domain.StageValidate, domain.ErrorKindInvalidInput, "empty item path", nil)
	}

	info, err := os.Stat(item)
	if err != nil {
		return newStageError(item, domain.StageValidate, domain.ErrorKindInvalidInput, "cannot access file", err)
	}
	if info.IsDir() {
		return newStageError(item, domain.StageValidate, domain.ErrorKindInvalidInput, "path is a directory", nil)
	}

	if !IsSupported(item, p.cfg.SupportedFormats) {
		return newStageError(item, domain.StageValidate, domain.ErrorKindInvalidInput,
			fmt.Sprintf("unsupported format %q", filepath.Ext(item)), nil)
	}

	if p.cfg.MaxFileSizeMB > 0 {
		sizeMB := float64(info.Size()) / (1024 * 1024)
		if sizeMB > float64(p.cfg.MaxFileSizeMB) {
			return newStageError(item, domain.StageValidate, domain.ErrorKindInvalidInput,
				fmt.Sprintf("file too large: %.1f MB exceeds %d MB", sizeMB, p.cfg.MaxFileSizeMB), nil)
		}
	}

	return nil
}

// IsSupported reports whether path carries one of the given extensions.
// Formats are expected lowercase without a leading dot.
func IsSupported(path string, formats []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	for _, f := range formats {
		if f == ext {
			return true
		}
	}
	return false
}

func describe(providerName string, err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("%s timed out", providerName)
	}
	return fmt.Sprintf("%s failed", providerName)
}
