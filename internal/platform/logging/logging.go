package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config captures logging configuration options.
type Config struct {
	Level    string
	Dir      string
	Filename string
}

// Logger wraps slog with printf-style helpers and module tags.
type Logger struct {
	slogger *slog.Logger
	file    *os.File
}

// New creates a Logger writing to stdout and, when Dir is set, a log file.
func New(cfg Config) (*Logger, error) {
	var writers []io.Writer
	writers = append(writers, os.Stdout)

	var file *os.File
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		name := cfg.Filename
		if name == "" {
			name = "server.log"
		}
		f, err := os.OpenFile(filepath.Join(cfg.Dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})

	return &Logger{
		slogger: slog.New(handler),
		file:    file,
	}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog exposes the structured logger for integrations that want it directly.
func (l *Logger) Slog() *slog.Logger {
	return l.slogger
}

// Close releases the file sink, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) Debug(format string, args ...any) {
	l.slogger.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.slogger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.slogger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.slogger.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) DebugTag(tag, format string, args ...any) {
	l.slogger.Debug("[" + tag + "] " + fmt.Sprintf(format, args...))
}

func (l *Logger) InfoTag(tag, format string, args ...any) {
	l.slogger.Info("[" + tag + "] " + fmt.Sprintf(format, args...))
}

func (l *Logger) WarnTag(tag, format string, args ...any) {
	l.slogger.Warn("[" + tag + "] " + fmt.Sprintf(format, args...))
}

func (l *Logger) ErrorTag(tag, format string, args ...any) {
	l.slogger.Error("[" + tag + "] " + fmt.Sprintf(format, args...))
}
