package vehicle

import (
	"context"
	"time"
)

// VehicleService defines business logic for fleet management.
type VehicleService interface {
	// CreateVehicle registers a new vehicle (backoffice)
	CreateVehicle(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error)

	// GetVehicle retrieves a single vehicle by ID
	GetVehicle(ctx context.Context, id string) (VehicleResponse, error)

	// ListVehicles lists the fleet; activeOnly limits to selectable vehicles
	ListVehicles(ctx context.Context, activeOnly bool) ([]VehicleResponse, error)

	// UpdateVehicle updates vehicle details; the plate is immutable
	UpdateVehicle(ctx context.Context, req UpdateVehicleRequest) (VehicleResponse, error)

	// DeactivateVehicle marks a vehicle unavailable for new records
	DeactivateVehicle(ctx context.Context, id string) (VehicleResponse, error)

	// DeleteVehicle removes a vehicle without history; vehicles with history
	// are protected and must be deactivated instead
	DeleteVehicle(ctx context.Context, id string) error

	// CheckOdometerContinuity verifies a new reading against the vehicle's
	// merged reading history at the given record date
	CheckOdometerContinuity(ctx context.Context, vehicleID string, kilometers int, asOf time.Time) error
}
