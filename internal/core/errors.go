package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy of the ingress pipeline. The HTTP
// layer maps these to status codes in exactly one place.
var (
	// ErrNotReady means the durable store cannot be reached right now.
	// The provider is expected to re-deliver the update later.
	ErrNotReady = errors.New("gateway is not ready to accept updates")

	// ErrInvalidPayload means the request body is not a JSON object or is
	// missing the update_id field. Permanently rejected, never retried.
	ErrInvalidPayload = errors.New("invalid update payload")

	// ErrMissingCredential means no bot token is configured for the
	// resolved job type. A deployment fault, surfaced per request.
	ErrMissingCredential = errors.New("bot token not configured")
)

// EnqueueError wraps a storage failure during job creation. The transaction
// is rolled back before this is returned, so no partial row is ever visible.
type EnqueueError struct {
	JobType string
	Err     error
}

func (e *EnqueueError) Error() string {
	return fmt.Sprintf("enqueue %s job: %v", e.JobType, e.Err)
}

func (e *EnqueueError) Unwrap() error { return e.Err }
