package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
	mu            sync.RWMutex
)

// Init initializes the default logger with a JSON handler writing to os.Stdout.
// It ensures that the logger is initialized only once.
func Init() {
	once.Do(func() {
		setDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))
	})
}

// Configure replaces the default logger using the configured level and format.
// Unknown levels fall back to info; format is "text" or "json".
func Configure(level, format string) {
	ConfigureWriter(os.Stdout, level, format)
}

// ConfigureWriter is Configure with an explicit destination.
func ConfigureWriter(w io.Writer, level, format string) {
	once.Do(func() {})

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	setDefault(slog.New(handler))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setDefault(l *slog.Logger) {
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	slog.SetDefault(l)
}

// Get returns the initialized default logger.
// It calls Init() to ensure the logger is ready before returning it.
func Get() *slog.Logger {
	Init()
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// FromContext returns the default logger tagged with the request id, if any.
func FromContext(ctx context.Context) *slog.Logger {
	l := Get()
	if ctx == nil {
		return l
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return l.With("request_id", reqID)
	}
	return l
}

// Info logs an informational message using the default logger.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message using the default logger.
func Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	Get().Error(msg, args...)
}

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}
