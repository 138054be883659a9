package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/provider"
)

// ExtractAudio converts the input to mono PCM WAV at the configured sample rate
func (m *implExtractor) ExtractAudio(ctx context.Context, path string) (*Extraction, error) {
	if err := os.MkdirAll(m.tempRoot, 0755); err != nil {
		return nil, fmt.Errorf("create temp root: %w", err)
	}

	dir, err := os.MkdirTemp(m.tempRoot, "extract-*")
	if err != nil {
		return nil, fmt.Errorf("create temp workspace: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	audioPath := filepath.Join(dir, stem+"_audio.wav")

	m.logger.Info(ctx, "Extracting audio: %s", path)

	if _, err := m.executor.Execute(ctx, m.cfg.BinaryPath, buildExtractArgs(path, audioPath, m.cfg.SampleRate)...); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	if info, err := os.Stat(audioPath); err != nil || info.Size() == 0 {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("ffmpeg completed but audio output is missing or empty")
	}

	m.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return &Extraction{
		Audio: provider.Audio{Path: audioPath, MIMEType: "audio/wav"},
		dir:   dir,
	}, nil
}

// buildExtractArgs drops video and writes 16-bit mono PCM
func buildExtractArgs(input, output string, sampleRate int) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", input,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-c:a", "pcm_s16le",
		"-threads", "0",
		output,
	}
}
