// Package store persists generated insights and generation bookkeeping
// in Postgres. All database calls are wrapped by the retry engine, whose
// default classifier understands the transient Postgres error codes this
// layer can surface.
package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keyurgolani/babynest-ai/retry"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// asyncWriteTimeout bounds detached bookkeeping writes so they cannot
// leak goroutines when the database is unreachable.
const asyncWriteTimeout = 10 * time.Second

// Insight is one stored weekly insight for a child.
type Insight struct {
	ID          uuid.UUID
	ChildID     uuid.UUID
	WeekStart   time.Time
	Summary     string
	AIGenerated bool
	Model       string
	CreatedAt   time.Time
}

// GenerationRecord is best-effort bookkeeping about one AI generation
// attempt. Written fire-and-forget; losing a record is acceptable.
type GenerationRecord struct {
	ID         uuid.UUID
	ChildID    uuid.UUID
	Provider   string
	Model      string
	TokensUsed int
	Succeeded  bool
	Error      string
	CreatedAt  time.Time
}

// querier is the subset of pgxpool.Pool the store uses. Tests substitute
// a fake; production code always passes the real pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides insight persistence on top of a pgx connection pool.
type Store struct {
	db      querier
	pool    *pgxpool.Pool
	profile *retry.Profile
	log     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for retry attempts and swallowed async
// write failures. Nil disables logging.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithRetryOptions overrides the retry policy for database calls.
func WithRetryOptions(opts retry.Options) Option {
	return func(s *Store) {
		s.profile = retry.NewProfile(opts)
	}
}

// New connects a Store to Postgres.
func New(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	s := newStore(pool, opts...)
	s.pool = pool
	return s, nil
}

func newStore(db querier, opts ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	if s.profile == nil {
		s.profile = retry.NewProfile(retry.DefaultOptions())
	}
	return s
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) retryOpts(operation string) retry.Options {
	o := s.profile.Named(operation)
	o.Logger = s.log
	return o
}

const saveInsightSQL = `
INSERT INTO insights (id, child_id, week_start, summary, ai_generated, model, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (child_id, week_start)
DO UPDATE SET summary = EXCLUDED.summary,
              ai_generated = EXCLUDED.ai_generated,
              model = EXCLUDED.model,
              created_at = EXCLUDED.created_at`

// SaveInsight inserts or replaces the insight for a child's week.
func (s *Store) SaveInsight(ctx context.Context, in Insight) error {
	_, err := retry.Do(ctx, s.retryOpts("store.save_insight"), func() (struct{}, error) {
		_, err := s.db.Exec(ctx, saveInsightSQL,
			in.ID, in.ChildID, in.WeekStart, in.Summary, in.AIGenerated, in.Model, in.CreatedAt)
		return struct{}{}, err
	})
	return err
}

const latestInsightSQL = `
SELECT id, child_id, week_start, summary, ai_generated, model, created_at
FROM insights
WHERE child_id = $1
ORDER BY week_start DESC
LIMIT 1`

// LatestInsight returns the most recent stored insight for a child, or
// ErrNotFound when none exists.
func (s *Store) LatestInsight(ctx context.Context, childID uuid.UUID) (*Insight, error) {
	return retry.Do(ctx, s.retryOpts("store.latest_insight"), func() (*Insight, error) {
		var in Insight
		err := s.db.QueryRow(ctx, latestInsightSQL, childID).Scan(
			&in.ID, &in.ChildID, &in.WeekStart, &in.Summary, &in.AIGenerated, &in.Model, &in.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return &in, nil
	})
}

const recordGenerationSQL = `
INSERT INTO ai_generations (id, child_id, provider, model, tokens_used, succeeded, error, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// RecordGeneration writes one generation bookkeeping row.
func (s *Store) RecordGeneration(ctx context.Context, rec GenerationRecord) error {
	_, err := retry.Do(ctx, s.retryOpts("store.record_generation"), func() (struct{}, error) {
		_, err := s.db.Exec(ctx, recordGenerationSQL,
			rec.ID, rec.ChildID, rec.Provider, rec.Model, rec.TokensUsed, rec.Succeeded, rec.Error, rec.CreatedAt)
		return struct{}{}, err
	})
	return err
}

// RecordGenerationAsync writes bookkeeping in a detached goroutine.
// Failures are logged and swallowed; they never reach the caller of the
// primary operation.
func (s *Store) RecordGenerationAsync(rec GenerationRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncWriteTimeout)
		defer cancel()
		if err := s.RecordGeneration(ctx, rec); err != nil && s.log != nil {
			s.log.Warn("dropped generation record", "child_id", rec.ChildID, "error", err)
		}
	}()
}
