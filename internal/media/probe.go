package media

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

type probeOutput struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		Size       string `json:"size"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
	} `json:"streams"`
}

// Probe reads container and stream metadata with ffprobe
func (m *implExtractor) Probe(ctx context.Context, path string) (domain.MediaInfo, error) {
	out, err := m.executor.Execute(ctx, m.cfg.ProbePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return domain.MediaInfo{}, fmt.Errorf("ffprobe: %w", err)
	}

	return parseProbe([]byte(out))
}

func parseProbe(data []byte) (domain.MediaInfo, error) {
	var p probeOutput
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.MediaInfo{}, fmt.Errorf("decode ffprobe output: %w", err)
	}

	info := domain.MediaInfo{
		Format:          p.Format.FormatName,
		DurationSeconds: round2(parseFloat(p.Format.Duration)),
		SizeMB:          round2(parseFloat(p.Format.Size) / (1024 * 1024)),
	}

	for _, s := range p.Streams {
		switch s.CodecType {
		case "audio":
			info.HasAudio = true
		case "video":
			if info.Width != 0 {
				continue
			}
			info.Width = s.Width
			info.Height = s.Height
			fps := parseRate(s.AvgFrameRate)
			if fps == 0 {
				fps = parseRate(s.RFrameRate)
			}
			info.FPS = round2(fps)
		}
	}

	return info, nil
}

// parseRate parses ffprobe rationals such as "30000/1001"
func parseRate(raw string) float64 {
	num, den, ok := strings.Cut(raw, "/")
	if !ok {
		return parseFloat(raw)
	}
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return parseFloat(num) / d
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
