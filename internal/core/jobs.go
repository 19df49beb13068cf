package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StatusPending is the only status the gateway ever writes. All later
// transitions (processing, completed, failed) belong to the workers.
const StatusPending = "pending"

// Job is one durable unit of deferred work. Rows are independent of each
// other; workers must tolerate arbitrary interleaving.
type Job struct {
	ID        uuid.UUID `db:"id"`
	JobType   string    `db:"job_type"`
	BotToken  string    `db:"bot_token"`
	Payload   []byte    `db:"payload"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// QueueMetrics is the aggregate view served by the admin surface.
type QueueMetrics struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByType   map[string]int `json:"by_type"`
}

// JobStore is the gateway's contract with durable storage. Enqueue must be
// atomic: either exactly one row becomes visible to other connections, or
// none does. The store performs no retries; the provider's own re-delivery
// is the only retry mechanism.
type JobStore interface {
	// Enqueue creates one pending job inside a transaction and returns its ID.
	Enqueue(ctx context.Context, jobType, botToken string, payload []byte) (uuid.UUID, error)

	// Metrics aggregates job counts by status and type.
	Metrics(ctx context.Context) (*QueueMetrics, error)

	// Ping probes the store with a trivial round trip.
	Ping(ctx context.Context) error
}

// Responder is the fire-and-forget side channel that acknowledges
// interactive elements of an update. Dispatch must return immediately and
// its outcome can never affect the request that triggered it.
type Responder interface {
	Dispatch(decision Decision, token string)
}
