package timeentry

import (
	"context"
)

// TimeEntryService defines business logic for time entry operations
type TimeEntryService interface {
	// CreateEntry validates and persists a day's entry with optional usage
	CreateEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)

	// GetEntry retrieves a single entry, enforcing the access rules
	GetEntry(ctx context.Context, id string) (EntryResponse, error)

	// ListEntries retrieves entries for a month, employee-scoped
	ListEntries(ctx context.Context, filter EntryFilter) ([]EntryResponse, error)

	// UpdateEntry revalidates and rewrites an entry
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)

	// DeleteEntry removes an entry and its usage companion
	DeleteEntry(ctx context.Context, id string) error
}
