// Package health implements the readiness gate: a cheap self-assessment of
// whether the gateway can accept and durably enqueue work right now.
package health

import (
	"context"
	"time"

	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/core"
)

// probeTimeout bounds the store round trip so a degraded database cannot
// stall the ingress path.
const probeTimeout = 3 * time.Second

// Report is the readiness document served on GET and consulted before every
// enqueue.
type Report struct {
	Status    string          `json:"status"`
	Checks    map[string]bool `json:"checks"`
	Timestamp time.Time       `json:"timestamp"`
}

// Ready reports whether the gateway may accept updates. Only the store gates
// ingestion: a missing credential is reported in Checks but surfaced per
// request as a configuration fault, matching the error taxonomy.
func (r Report) Ready() bool {
	return r.Checks["database"]
}

// Checker probes the durable store and the configured credentials.
type Checker struct {
	store  core.JobStore
	routes []config.Route
}

// NewChecker creates a readiness checker for the given store and routing
// table.
func NewChecker(store core.JobStore, routes []config.Route) *Checker {
	return &Checker{store: store, routes: routes}
}

// Check runs all readiness probes. The store probe carries a short timeout;
// credential checks are pure lookups.
func (c *Checker) Check(ctx context.Context) Report {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	checks := map[string]bool{
		"database": c.store.Ping(probeCtx) == nil,
	}
	for _, route := range c.routes {
		checks[route.Name+"-credential"] = route.Token != "" || route.SecondaryToken != ""
	}

	status := "healthy"
	if !checks["database"] {
		status = "degraded"
	}

	return Report{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	}
}
