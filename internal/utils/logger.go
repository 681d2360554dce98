package utils

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const loggerKey = "logger"

// Logger is the logging surface handlers depend on
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger adapts a slog.Logger
func NewSlogLogger(logger *slog.Logger) Logger {
	return &slogLogger{logger: logger}
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

// RequestIDKey holds the request id in the gin context
const RequestIDKey = "request_id"

// BindLogger tags logger with the request id and stores it in the gin
// context for GetLogger
func BindLogger(c *gin.Context, logger Logger, requestID string) Logger {
	l := logger.With(RequestIDKey, requestID)
	c.Set(RequestIDKey, requestID)
	c.Set(loggerKey, l)
	return l
}

// GetLogger returns the request scoped logger, or fallback when none is set
func GetLogger(c *gin.Context, fallback Logger) Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(Logger); ok {
			return l
		}
	}
	return fallback
}

// LoggerMiddleware logs one line per request
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l := GetLogger(c, logger)
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case c.Writer.Status() >= 500:
			l.Error("Request failed", append(args, "errors", c.Errors.String())...)
		case c.Writer.Status() >= 400:
			l.Warn("Request rejected", args...)
		default:
			l.Debug("Request handled", args...)
		}
	}
}
