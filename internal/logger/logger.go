package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

const (
	levelDebug = "debug"
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"
)

var levels = map[string]int{
	levelDebug: 0,
	levelInfo:  1,
	levelWarn:  2,
	levelError: 3,
}

type ctxKey struct{}

type implLogger struct {
	logger *log.Logger
	raw    *log.Logger
	level  string
	json   bool
}

// New creates a new Logger instance writing text lines to stdout
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level, "text")
}

// NewWithWriter creates a Logger writing to w in "text" or "json" format
func NewWithWriter(w io.Writer, level, format string) Logger {
	return &implLogger{
		logger: log.New(w, "", log.LstdFlags),
		raw:    log.New(w, "", 0),
		level:  strings.ToLower(level),
		json:   strings.EqualFold(format, "json"),
	}
}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return NewWithWriter(io.Discard, levelError, "text")
}

// WithTask returns a context whose log lines are tagged with the task id
func WithTask(ctx context.Context, taskID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, taskID)
}

// TaskID extracts the task id stored by WithTask
func TaskID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (l *implLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = levels[levelInfo]
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) write(ctx context.Context, level, msg string, args []interface{}) {
	if !l.shouldLog(level) {
		return
	}

	text := fmt.Sprintf(msg, args...)
	taskID := TaskID(ctx)

	if l.json {
		line, err := json.Marshal(struct {
			Time    string `json:"time"`
			Level   string `json:"level"`
			Task    string `json:"task,omitempty"`
			Message string `json:"msg"`
		}{
			Time:    time.Now().UTC().Format(time.RFC3339),
			Level:   level,
			Task:    taskID,
			Message: text,
		})
		if err == nil {
			l.raw.Print(string(line))
			return
		}
	}

	prefix := "[" + strings.ToUpper(level) + "]"
	if taskID != "" {
		prefix += " [task=" + taskID + "]"
	}
	l.logger.Print(prefix + " " + text)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, levelDebug, msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, levelInfo, msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, levelWarn, msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, levelError, msg, args)
}
