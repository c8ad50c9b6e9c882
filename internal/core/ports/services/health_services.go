package services

import (
	"context"
	"time"
)

// HealthReport is the outcome of a storage liveness probe.
type HealthReport struct {
	Healthy      bool
	LoanCount    int
	Err          error
	CheckedAt    time.Time
	Environment  string
	HasDBURL     bool
	HasDirectURL bool
}

// HealthSvc probes the backing store.
type HealthSvc interface {
	Check(ctx context.Context) HealthReport
	// Environment returns the deployment indicators without touching storage.
	Environment() HealthReport
}
