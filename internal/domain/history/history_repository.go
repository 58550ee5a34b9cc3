package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/travelvibe-api/internal/types"
)

var (
	_ Repository = (*RepositoryImpl)(nil)
	_ Repository = NoopRepository{}
)

const tableSearchHistory = "search_history"

var historyColumns = []string{
	"id", "session_id", "query", "outcome", "guide_places", "blog_posts", "error_text", "created_at",
}

type Repository interface {
	Insert(ctx context.Context, rec types.SearchRecord) error
	Recent(ctx context.Context, limit int) ([]types.SearchRecord, error)
}

// DBTX is the subset of *pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type RepositoryImpl struct {
	pgpool DBTX
	logger *slog.Logger
}

func NewRepository(pgpool DBTX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		pgpool: pgpool,
		logger: logger,
	}
}

func (r *RepositoryImpl) Insert(ctx context.Context, rec types.SearchRecord) error {
	ctx, span := otel.Tracer("HistoryRepository").Start(ctx, "Insert", trace.WithAttributes(
		attribute.String("session_id", rec.SessionID),
		attribute.String("outcome", string(rec.Outcome)),
	))
	defer span.End()

	query, args, err := squirrel.Insert(tableSearchHistory).
		Columns(historyColumns...).
		Values(rec.ID, rec.SessionID, rec.Query, string(rec.Outcome), rec.GuidePlaces, rec.BlogPosts, rec.ErrorText, rec.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.pgpool.Exec(ctx, query, args...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("failed to insert search record: %w", err)
	}

	span.SetStatus(codes.Ok, "search record inserted")
	return nil
}

func (r *RepositoryImpl) Recent(ctx context.Context, limit int) ([]types.SearchRecord, error) {
	ctx, span := otel.Tracer("HistoryRepository").Start(ctx, "Recent", trace.WithAttributes(
		attribute.Int("limit", limit),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Recent"))

	query, args, err := squirrel.Select(historyColumns...).
		From(tableSearchHistory).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query search history", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	records := []types.SearchRecord{}
	for rows.Next() {
		var rec types.SearchRecord
		var outcome string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Query, &outcome,
			&rec.GuidePlaces, &rec.BlogPosts, &rec.ErrorText, &rec.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan search record: %w", err)
		}
		rec.Outcome = types.SearchOutcome(outcome)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate search history: %w", err)
	}

	span.SetAttributes(attribute.Int("results.count", len(records)))
	return records, nil
}

// NoopRepository stands in when no database is configured.
type NoopRepository struct{}

func (NoopRepository) Insert(context.Context, types.SearchRecord) error { return nil }

func (NoopRepository) Recent(context.Context, int) ([]types.SearchRecord, error) {
	return []types.SearchRecord{}, nil
}
