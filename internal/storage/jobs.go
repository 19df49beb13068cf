// Package storage implements the durable job queue over Postgres. The
// gateway is a pure producer: it inserts pending jobs and never advances
// their status. Draining the queue belongs to the external worker pool.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sevigo/botgate/internal/core"
)

type postgresJobStore struct {
	db *sqlx.DB
}

// NewJobStore creates a core.JobStore backed by Postgres.
func NewJobStore(db *sqlx.DB) core.JobStore {
	return &postgresJobStore{db: db}
}

// Enqueue inserts exactly one pending job inside a transaction. Any failure
// during begin, insert, or commit leaves zero visible rows. Repeated
// deliveries of the same update produce independent rows: the gateway does
// not deduplicate.
func (s *postgresJobStore) Enqueue(ctx context.Context, jobType, botToken string, payload []byte) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, &core.EnqueueError{JobType: jobType, Err: fmt.Errorf("begin transaction: %w", err)}
	}
	// No-op once the transaction is committed.
	defer func() { _ = tx.Rollback() }()

	const query = `
		INSERT INTO jobs (id, job_type, bot_token, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := tx.ExecContext(ctx, query, id, jobType, botToken, payload, core.StatusPending, now, now); err != nil {
		return uuid.Nil, &core.EnqueueError{JobType: jobType, Err: fmt.Errorf("insert job: %w", err)}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, &core.EnqueueError{JobType: jobType, Err: fmt.Errorf("commit: %w", err)}
	}

	return id, nil
}

// Metrics aggregates job counts by status and by job type.
func (s *postgresJobStore) Metrics(ctx context.Context) (*core.QueueMetrics, error) {
	m := &core.QueueMetrics{
		ByStatus: make(map[string]int),
		ByType:   make(map[string]int),
	}

	byStatus, err := s.countGrouped(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("aggregate jobs by status: %w", err)
	}
	for status, n := range byStatus {
		m.ByStatus[status] = n
		m.Total += n
	}

	byType, err := s.countGrouped(ctx, `SELECT job_type, COUNT(*) FROM jobs GROUP BY job_type`)
	if err != nil {
		return nil, fmt.Errorf("aggregate jobs by type: %w", err)
	}
	for jobType, n := range byType {
		m.ByType[jobType] = n
	}

	return m, nil
}

func (s *postgresJobStore) countGrouped(ctx context.Context, query string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

// Ping probes the store with a trivial round trip.
func (s *postgresJobStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
