package storage

import (
	"context"

	"sidewalksafe/internal/domain"
)

// HazardRepository is the durable table of hazard reports. Both backends
// (CSV file, Postgres) preserve the same observable contract: ids increment
// from 1 with no reuse, (description, address) pairs are unique, and List
// preserves insertion order.
type HazardRepository interface {
	// List returns every report in insertion order. A missing backing
	// table is an empty result, not an error.
	List(ctx context.Context) ([]domain.HazardReport, error)

	// Insert assigns the next id to the report and appends it.
	// Returns e.ErrDuplicate when an existing report has the same
	// (description, address).
	Insert(ctx context.Context, report *domain.HazardReport) error

	// Get returns one report by id, or e.ErrNotFound.
	Get(ctx context.Context, id int64) (domain.HazardReport, error)

	// UpdateStatus sets the status of an existing report, or returns
	// e.ErrNotFound. No transition-validity check is applied.
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
}
