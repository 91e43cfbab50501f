package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/middleware"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/clock"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Identity portssvc.IdentityProvider
	Clock    clock.Clock
	Metrics  *metrics.Metrics
}

// ServiceOption is a functional option for configuring a service
type ServiceOption func(*BaseService)

// WithClock overrides the system clock
func WithClock(c clock.Clock) ServiceOption {
	return func(s *BaseService) {
		s.Clock = c
	}
}

// WithMetrics attaches the Prometheus collectors
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

func newBaseService(identity portssvc.IdentityProvider, options ...ServiceOption) BaseService {
	base := BaseService{Identity: identity, Clock: clock.New()}
	for _, option := range options {
		option(&base)
	}
	return base
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

// LogWarn logs a refused or invalid request
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
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

// RequireIdentity resolves the caller or fails with ErrUnauthenticated.
func (s *BaseService) RequireIdentity(ctx context.Context) (domain.Identity, error) {
	if s.Identity == nil {
		return domain.Identity{}, apperrors.ErrUnauthenticated
	}
	who, ok := s.Identity.CurrentIdentity(ctx)
	if !ok {
		return domain.Identity{}, apperrors.ErrUnauthenticated
	}
	return who, nil
}

// Now returns the service clock's current time.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}

// Succeeded logs and counts a completed transition.
func (s *BaseService) Succeeded(ctx context.Context, entity, trigger, id, to string) {
	s.Metrics.RecordTransition(entity, trigger, to)
	s.LogInfo(ctx, "Workflow transition applied",
		slog.String("entity", entity),
		slog.String("trigger", trigger),
		slog.String("id", id),
		slog.String("to", to))
}

// Refused logs a failed operation at the level its cause deserves, counts
// guard violations and returns err unchanged.
func (s *BaseService) Refused(ctx context.Context, entity, trigger, id string, err error) error {
	attrs := []any{
		slog.String("entity", entity),
		slog.String("trigger", trigger),
		slog.String("id", id),
	}
	switch {
	case errors.Is(err, apperrors.ErrGuardViolation):
		s.Metrics.RecordRefusal(entity, trigger, err)
		s.LogWarn(ctx, err, "Workflow transition refused", attrs...)
	case errors.Is(err, apperrors.ErrValidation):
		s.Metrics.RecordRefusal(entity, trigger, err)
		s.LogWarn(ctx, err, "Workflow input invalid", attrs...)
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrUnauthenticated):
		s.LogWarn(ctx, err, "Workflow operation rejected", attrs...)
	default:
		s.LogError(ctx, err, "Workflow operation failed", attrs...)
	}
	return err
}
