package vehicle

import (
	"context"
	"time"
)

// VehicleRepository defines data access methods for the vehicle fleet.
type VehicleRepository interface {
	// Create creates a new vehicle
	Create(ctx context.Context, v Vehicle) (Vehicle, error)

	// GetByID retrieves a vehicle by ID
	GetByID(ctx context.Context, id string) (Vehicle, error)

	// GetByPlate retrieves a vehicle by its normalized license plate
	GetByPlate(ctx context.Context, plate string) (Vehicle, error)

	// List retrieves vehicles ordered by license plate; activeOnly limits the
	// result to vehicles selectable for new records
	List(ctx context.Context, activeOnly bool) ([]Vehicle, error)

	// Update updates make, model, year, color, fuel type, notes and the
	// active flag. The license plate is immutable.
	Update(ctx context.Context, v Vehicle) error

	// Delete removes a vehicle without history. Returns ErrVehicleHasHistory
	// when usage records or receipts reference it.
	Delete(ctx context.Context, id string) error
}

// ReadingRepository provides the merged odometer history used by the
// continuity check.
type ReadingRepository interface {
	// LatestReadingAt returns the reading at the last position at or before
	// asOf in the vehicle's merged (RecordedAt, Seq)-ordered history, or nil
	// when no reading exists there. A back-dated record is anchored against
	// its own neighborhood in the order, not against later readings.
	LatestReadingAt(ctx context.Context, vehicleID string, asOf time.Time) (*Reading, error)

	// History returns the vehicle's full merged history in total order.
	History(ctx context.Context, vehicleID string) ([]Reading, error)
}
