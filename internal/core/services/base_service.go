package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/invest_portal/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Logger is used when the context carries no request-scoped logger.
	Logger *slog.Logger
}

// GetLogger gets the logger from context or returns the service default.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := middleware.LoggerFromCtx(ctx); ok {
		return logger
	}
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
