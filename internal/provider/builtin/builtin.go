// Package builtin registers every bundled backend under its configured name.
package builtin

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"github.com/nguyentantai21042004/clipdigest/internal/provider/anthropic"
	"github.com/nguyentantai21042004/clipdigest/internal/provider/ark"
	"github.com/nguyentantai21042004/clipdigest/internal/provider/gemini"
	"github.com/nguyentantai21042004/clipdigest/internal/provider/openai"
	"github.com/nguyentantai21042004/clipdigest/internal/provider/whisper"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

const (
	Whisper   = "whisper"
	OpenAI    = "openai"
	Gemini    = "gemini"
	Anthropic = "anthropic"
	Ark       = "ark"
)

// Register adds the bundled providers to reg. Factories read cfg lazily, so a
// backend with missing credentials only fails when a task asks for it.
// Summarizers are wrapped with provider.Chunked using pipeline.max_chunk_chars.
func Register(reg *provider.Registry, cfg *config.Config, exec executor.Executor, log logger.Logger) {
	chunk := func(s provider.Summarizer) provider.Summarizer {
		return provider.Chunked(s, cfg.Pipeline.MaxChunkChars)
	}

	reg.RegisterTranscriber(Whisper, func() (provider.Transcriber, error) {
		return whisper.New(cfg.Whisper, exec, log)
	})

	reg.RegisterTranscriber(OpenAI, func() (provider.Transcriber, error) {
		c, err := openai.NewClient(cfg.Providers.OpenAI)
		if err != nil {
			return nil, err
		}
		return openai.NewTranscriber(c), nil
	})
	reg.RegisterSummarizer(OpenAI, func() (provider.Summarizer, error) {
		c, err := openai.NewClient(cfg.Providers.OpenAI)
		if err != nil {
			return nil, err
		}
		return chunk(openai.NewSummarizer(c)), nil
	})

	// One Gemini client shares key rotation state across both capabilities
	var (
		geminiMu     sync.Mutex
		geminiClient *gemini.Client
	)
	sharedGemini := func() (*gemini.Client, error) {
		geminiMu.Lock()
		defer geminiMu.Unlock()
		if geminiClient != nil {
			return geminiClient, nil
		}
		c, err := gemini.NewClient(cfg.Providers.Gemini, log)
		if err != nil {
			return nil, err
		}
		geminiClient = c
		return c, nil
	}
	reg.RegisterTranscriber(Gemini, func() (provider.Transcriber, error) {
		c, err := sharedGemini()
		if err != nil {
			return nil, err
		}
		return gemini.NewTranscriber(c), nil
	})
	reg.RegisterSummarizer(Gemini, func() (provider.Summarizer, error) {
		c, err := sharedGemini()
		if err != nil {
			return nil, err
		}
		return chunk(gemini.NewSummarizer(c)), nil
	})

	reg.RegisterSummarizer(Anthropic, func() (provider.Summarizer, error) {
		s, err := anthropic.New(cfg.Providers.Anthropic)
		if err != nil {
			return nil, err
		}
		return chunk(s), nil
	})

	reg.RegisterSummarizer(Ark, func() (provider.Summarizer, error) {
		s, err := ark.New(cfg.Providers.Ark)
		if err != nil {
			return nil, err
		}
		return chunk(s), nil
	})

	log.Debug(context.Background(), "Registered %d providers", len(reg.Descriptors()))
}
