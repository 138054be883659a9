// Package whisper runs a local whisper.cpp binary as a transcription provider.
package whisper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

type implTranscriber struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a whisper.cpp Transcriber. The model file must exist.
func New(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) (provider.Transcriber, error) {
	if strings.TrimSpace(cfg.BinaryPath) == "" {
		return nil, fmt.Errorf("whisper.binary_path is required")
	}
	if strings.TrimSpace(cfg.ModelPath) == "" {
		return nil, fmt.Errorf("whisper.model_path is required")
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("cannot access whisper model: %w", err)
	}

	return &implTranscriber{cfg: cfg, executor: exec, logger: log}, nil
}

// Transcribe runs whisper.cpp on the audio file and returns the plain text
func (w *implTranscriber) Transcribe(ctx context.Context, audio provider.Audio) (string, error) {
	// whisper appends .txt to the output prefix
	outputPrefix := strings.TrimSuffix(audio.Path, filepath.Ext(audio.Path))
	textPath := outputPrefix + ".txt"

	w.logger.Info(ctx, "Starting whisper transcription with %d threads: %s", w.cfg.Threads, audio.Path)

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, buildArgs(w.cfg, audio.Path, outputPrefix)...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}
	defer os.Remove(textPath)

	content, err := os.ReadFile(textPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	w.logger.Debug(ctx, "Transcription completed: %s", textPath)
	return strings.TrimSpace(string(content)), nil
}

// buildArgs builds whisper.cpp args for plain text export
func buildArgs(cfg config.WhisperConfig, audioPath, outputPrefix string) []string {
	args := []string{
		"-m", cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-of", outputPrefix,
		"-t", strconv.Itoa(cfg.Threads),
	}

	if lang := normalizeLanguage(cfg.Language); lang != "" {
		args = append(args, "-l", lang)
	}
	if strings.TrimSpace(cfg.Prompt) != "" {
		args = append(args, "--prompt", cfg.Prompt)
	}

	return args
}

// normalizeLanguage maps "auto" and empty language to no CLI override
func normalizeLanguage(raw string) string {
	lang := strings.TrimSpace(raw)
	if lang == "" || strings.EqualFold(lang, "auto") {
		return ""
	}
	return lang
}
