// Package history keeps a log of submitted searches.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/travelvibe-api/internal/types"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

var _ Service = (*ServiceImpl)(nil)

// Recorder is the write side used by the planner.
type Recorder interface {
	Record(ctx context.Context, rec types.SearchRecord)
}

type Service interface {
	Recorder
	Recent(ctx context.Context, limit int) ([]types.SearchRecord, error)
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Record stores rec. Failures are logged and never returned.
func (s *ServiceImpl) Record(ctx context.Context, rec types.SearchRecord) {
	l := s.logger.With(slog.String("method", "Record"))

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		l.WarnContext(ctx, "Failed to record search",
			slog.String("query", rec.Query),
			slog.Any("error", err))
		return
	}
	l.DebugContext(ctx, "Search recorded",
		slog.String("search_id", rec.ID.String()),
		slog.String("outcome", string(rec.Outcome)))
}

// Recent returns the latest searches, newest first. limit is clamped to
// [1, MaxLimit] with DefaultLimit for non-positive values.
func (s *ServiceImpl) Recent(ctx context.Context, limit int) ([]types.SearchRecord, error) {
	ctx, span := otel.Tracer("HistoryService").Start(ctx, "Recent", trace.WithAttributes(
		attribute.Int("limit", limit),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Recent"))

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	records, err := s.repo.Recent(ctx, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to get recent searches", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get recent searches")
		return nil, fmt.Errorf("failed to get recent searches: %w", err)
	}

	span.SetStatus(codes.Ok, "Recent searches retrieved")
	return records, nil
}
