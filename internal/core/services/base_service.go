package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/middleware"
	"github.com/SscSPs/internship_placement_app/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Now func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogFailure logs err at a level matching its kind. Rule violations and
// authorization refusals are expected outcomes and never logged as faults.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)

	switch apperrors.KindOf(err) {
	case apperrors.KindRuleViolation:
		metrics.RecordRuleViolation(apperrors.RuleCode(err))
		logger.Info(msg, append(args, slog.String("rule", apperrors.RuleCode(err)))...)
	case apperrors.KindNotAuthorized, apperrors.KindNotFound, apperrors.KindValidation, apperrors.KindUnauthenticated:
		logger.Warn(msg, args...)
	default:
		logger.Error(msg, args...)
	}
}

// now returns the current time in UTC.
func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// notAuthorized builds an authorization refusal naming the attempted action.
func notAuthorized(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrNotAuthorized, fmt.Sprintf(format, args...))
}

// asOf truncates t to the calendar day it falls on in UTC.
func asOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
