package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/hospital_ledger/internal/middleware"
	"github.com/SscSPs/hospital_ledger/internal/platform/metrics"
	"github.com/SscSPs/hospital_ledger/internal/utils/dates"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now     func() time.Time
	metrics *metrics.LedgerMetrics
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Now returns the service clock, falling back to time.Now.
func (s *BaseService) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Option configures the shared parts of a service.
type Option func(*BaseService)

// WithClock replaces the service clock, used for "today" and createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		s.now = now
	}
}

// WithMetrics records posted and rejected journals on m.
func WithMetrics(m *metrics.LedgerMetrics) Option {
	return func(s *BaseService) {
		s.metrics = m
	}
}

// validDate normalises a YYYY-MM-DD input or reports a validation error.
func validDate(s string) (string, error) {
	t, err := dates.Parse(s)
	if err != nil {
		return "", err
	}
	return t.Format(dates.Layout), nil
}
