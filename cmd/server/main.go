package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/clipdigest/internal/callback"
	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/httpapi"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"github.com/nguyentantai21042004/clipdigest/internal/provider/builtin"
	"github.com/nguyentantai21042004/clipdigest/internal/service"
	"github.com/nguyentantai21042004/clipdigest/internal/sink"
	"github.com/nguyentantai21042004/clipdigest/internal/task"
	"github.com/nguyentantai21042004/clipdigest/internal/watcher"
	"github.com/nguyentantai21042004/clipdigest/internal/worker"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithWriter(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Summarization Service")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Max concurrent items: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Default providers: transcription=%s summarization=%s", cfg.Pipeline.Transcription, cfg.Pipeline.Summarization)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()

	providers := provider.NewRegistry()
	builtin.Register(providers, cfg, exec, log)

	svc := service.New(cfg, service.Deps{
		Registry:  task.New(),
		Providers: providers,
		Executor: pipeline.New(
			cfg.Pipeline,
			media.New(cfg.FFmpeg, cfg.Paths.Temp, exec, log),
			sink.New(cfg.Paths.Output, cfg.Sink.Docx, log),
			log,
		),
		Pool:      worker.New(cfg.Performance.MaxConcurrent, cfg.Performance.QueueSize, log),
		Callbacks: callback.New(cfg.Callback, nil, log),
		Logger:    log,
	})

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 2)

	if cfg.Watch.Enabled {
		w, err := watcher.New(cfg, func(ctx context.Context, path string) error {
			_, err := svc.Submit(ctx, service.Request{Items: []string{path}})
			return err
		}, log)
		if err != nil {
			log.Error(ctx, "Failed to create watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- err
			}
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           httpapi.NewRouter(httpapi.NewHandler(svc, cfg, log)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info(ctx, "========================================")
	log.Info(ctx, "Listening on %s", server.Addr)
	if cfg.Watch.Enabled {
		log.Info(ctx, "Watching: %s", cfg.Paths.Input)
	}
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "HTTP server shutdown: %v", err)
	}
	if err := svc.Close(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "Service shutdown: %v", err)
	}

	log.Info(shutdownCtx, "Service stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
