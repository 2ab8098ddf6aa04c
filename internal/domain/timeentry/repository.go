package timeentry

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access methods for time entries and their
// vehicle usage companions.
type TimeEntryRepository interface {
	// Create inserts entry and optional usage atomically. The unique
	// constraint on (employee_id, date) is the authoritative duplicate check;
	// a violation surfaces as ErrDuplicateEntry.
	Create(ctx context.Context, entry TimeEntry, usage *VehicleUsage) (TimeEntry, error)

	// GetByID retrieves an entry by ID
	GetByID(ctx context.Context, id string) (TimeEntry, error)

	// GetByEmployeeAndDate retrieves the entry for an employee on a date, or
	// nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*TimeEntry, error)

	// GetUsage retrieves the usage companion for an entry, or nil
	GetUsage(ctx context.Context, entryID string) (*VehicleUsage, error)

	// ListForMonth retrieves an employee's entries for one calendar month,
	// ascending by date, with their usages keyed by entry ID
	ListForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]TimeEntry, map[string]VehicleUsage, error)

	// Update rewrites entry and replaces its usage (nil removes it)
	Update(ctx context.Context, entry TimeEntry, usage *VehicleUsage) error

	// Delete removes an entry; the usage companion cascades
	Delete(ctx context.Context, id string) error
}
