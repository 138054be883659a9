package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
)

func newTestSink(dir string, docx bool) *implSink {
	s := New(dir, docx, logger.Nop()).(*implSink)
	s.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	return s
}

func sampleResult() domain.ItemResult {
	return domain.ItemResult{
		Item:                  "/videos/intro.mp4",
		Media:                 domain.MediaInfo{Format: "mp4", DurationSeconds: 12.5, SizeMB: 3.2, Width: 1280, Height: 720, FPS: 30},
		Transcript:            "hello and welcome",
		Summary:               "# Topic\n- **Key** point\n1. Conclusion",
		TranscriptionProvider: "whisper",
		SummarizationProvider: "gemini",
	}
}

func TestWriteText(t *testing.T) {
	dir := t.TempDir()
	s := newTestSink(dir, false)

	path, err := s.Write(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if filepath.Base(path) != "intro_summary_20240309_140507.txt" {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"VIDEO SUMMARY", "- Duration: 12.50 seconds", "- Resolution: 1280x720", "WHISPER", "hello and welcome", "**Key** point"} {
		if !strings.Contains(content, want) {
			t.Errorf("artifact missing %q", want)
		}
	}
}

func TestWriteNameCollision(t *testing.T) {
	dir := t.TempDir()
	s := newTestSink(dir, false)

	first, err := s.Write(context.Background(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	other := sampleResult()
	other.Item = "/other/intro.mov"
	second, err := s.Write(context.Background(), other)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatal("second artifact overwrote the first")
	}
	if filepath.Base(second) != "intro_summary_20240309_140507_1.txt" {
		t.Errorf("second = %s", second)
	}
}

func TestWriteDocx(t *testing.T) {
	dir := t.TempDir()
	s := newTestSink(dir, true)

	path, err := s.Write(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	info, err := os.Stat(strings.TrimSuffix(path, ".txt") + ".docx")
	if err != nil {
		t.Fatalf("docx missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("docx is empty")
	}
}

func TestWriteUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	s := newTestSink(filepath.Join(file, "out"), false)
	if _, err := s.Write(context.Background(), sampleResult()); err == nil {
		t.Fatal("expected error")
	}
}

func TestCleanMarkdownInline(t *testing.T) {
	if got := cleanMarkdownInline("**bold** and `code` __u__"); got != "bold and code u" {
		t.Errorf("got %q", got)
	}
}

func TestWriteDocxFailureLeavesNoArtifact(t *testing.T) {
	dir := t.TempDir()
	s := newTestSink(dir, true)

	// a directory in the docx slot makes the rendition fail
	if err := os.Mkdir(filepath.Join(dir, "intro_summary_20240309_140507.docx"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Write(context.Background(), sampleResult()); err == nil {
		t.Fatal("Write() should fail when the docx cannot be saved")
	}
	if _, err := os.Stat(filepath.Join(dir, "intro_summary_20240309_140507.txt")); !os.IsNotExist(err) {
		t.Errorf("text artifact left behind: stat error = %v", err)
	}
}
