package probe

import (
	"context"
	"time"
)

// Error classes recorded on failed outcomes.
const (
	ErrTimeout            = "timeout"
	ErrConnection         = "connection_error"
	ErrUnexpectedResponse = "unexpected_response"
	ErrOther              = "other"
)

// Outcome is the recorded result of a single probe.
//
// StatusCode and Error are pointers so an absent value serializes as JSON
// null instead of a zero that looks like data. Success implies Error is nil.
type Outcome struct {
	Timestamp  time.Time `json:"timestamp"`
	Success    bool      `json:"success"`
	StatusCode *int      `json:"status_code"`
	LatencyMS  float64   `json:"latency_ms"`
	Error      *string   `json:"error"`
}

// Prober performs one timed check against the target URL. Implementations
// must never let a fault escape: every failure path is represented as a
// returned Outcome.
type Prober interface {
	Probe(ctx context.Context, target string) Outcome
}
