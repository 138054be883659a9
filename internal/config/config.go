package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Providers   ProvidersConfig   `yaml:"providers"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Performance PerformanceConfig `yaml:"performance"`
	Callback    CallbackConfig    `yaml:"callback"`
	Watch       WatchConfig       `yaml:"watch"`
	Sink        SinkConfig        `yaml:"sink"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type ProvidersConfig struct {
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Ark       ArkConfig       `yaml:"ark"`
}

type OpenAIConfig struct {
	APIKey             string `yaml:"api_key"`
	BaseURL            string `yaml:"base_url"`
	TranscriptionModel string `yaml:"transcription_model"`
	Model              string `yaml:"model"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type AnthropicConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type ArkConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type PipelineConfig struct {
	Transcription    string   `yaml:"transcription"`
	Summarization    string   `yaml:"summarization"`
	SupportedFormats []string `yaml:"supported_formats"`
	MaxFileSizeMB    int      `yaml:"max_file_size_mb"`
	MaxChunkChars    int      `yaml:"max_chunk_chars"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	QueueSize     int `yaml:"queue_size"`
}

type CallbackConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxAttempts  int           `yaml:"max_attempts"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	PerItem      bool          `yaml:"per_item"`
}

type WatchConfig struct {
	Enabled     bool          `yaml:"enabled"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

type SinkConfig struct {
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Validate checks required fields and fills defaults in place
func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}
	if c.Callback.MaxAttempts < 0 {
		return fmt.Errorf("callback.max_attempts must not be negative")
	}

	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3300
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Providers.OpenAI.TranscriptionModel == "" {
		c.Providers.OpenAI.TranscriptionModel = "whisper-1"
	}
	if c.Providers.OpenAI.Model == "" {
		c.Providers.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Providers.Gemini.Model == "" {
		c.Providers.Gemini.Model = "gemini-2.5-flash"
	}
	c.Providers.Gemini.APIKeys = nonEmpty(c.Providers.Gemini.APIKeys)
	if c.Providers.Anthropic.Model == "" {
		c.Providers.Anthropic.Model = "claude-sonnet-4-20250514"
	}
	if c.Providers.Anthropic.MaxTokens == 0 {
		c.Providers.Anthropic.MaxTokens = 1000
	}
	if c.Pipeline.Transcription == "" {
		c.Pipeline.Transcription = "whisper"
	}
	if c.Pipeline.Summarization == "" {
		c.Pipeline.Summarization = "gemini"
	}
	if len(c.Pipeline.SupportedFormats) == 0 {
		c.Pipeline.SupportedFormats = []string{"mp4", "avi", "mov", "mkv", "webm"}
	}
	c.Pipeline.SupportedFormats = normalizeFormats(c.Pipeline.SupportedFormats)
	if c.Pipeline.MaxFileSizeMB == 0 {
		c.Pipeline.MaxFileSizeMB = 1000
	}
	if c.Pipeline.MaxChunkChars == 0 {
		c.Pipeline.MaxChunkChars = 30000
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.QueueSize == 0 {
		c.Performance.QueueSize = c.Performance.MaxConcurrent * 2
	}
	if c.Callback.Timeout == 0 {
		c.Callback.Timeout = 10 * time.Second
	}
	if c.Callback.MaxAttempts == 0 {
		c.Callback.MaxAttempts = 1
	}
	if c.Callback.RetryBackoff == 0 {
		c.Callback.RetryBackoff = 2 * time.Second
	}
	if c.Watch.SettleDelay == 0 {
		c.Watch.SettleDelay = 500 * time.Millisecond
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

// normalizeFormats lowercases extensions and strips leading dots
func normalizeFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(f)), ".")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func nonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
