package fleet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
)

// ContinuityChecker guards the monotonicity of a vehicle's odometer. A new
// reading must be at or above the reading immediately preceding it in the
// vehicle's merged mileage-and-receipt history, positioned by the record's
// own date. Checks for the same vehicle are serialized so two concurrent
// submissions cannot both pass against a stale anchor.
type ContinuityChecker struct {
	readings vehicle.ReadingRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewContinuityChecker(readings vehicle.ReadingRepository) *ContinuityChecker {
	return &ContinuityChecker{
		readings: readings,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (c *ContinuityChecker) vehicleLock(vehicleID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[vehicleID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[vehicleID] = lock
	}
	return lock
}

// Check verifies a prospective reading against the vehicle's history. The
// anchor is the most recent reading at or before asOf, so a back-dated
// correction is measured against its own neighborhood rather than the global
// maximum. A first reading always passes. Equal readings pass: a vehicle can
// be parked between records.
func (c *ContinuityChecker) Check(ctx context.Context, vehicleID string, kilometers int, asOf time.Time) error {
	latest, err := c.readings.LatestReadingAt(ctx, vehicleID, asOf)
	if err != nil {
		return fmt.Errorf("failed to load latest odometer reading: %w", err)
	}
	if latest == nil {
		return nil
	}
	if kilometers < latest.Kilometers {
		return &vehicle.ContinuityError{
			VehicleID:  vehicleID,
			Kilometers: kilometers,
			Prior:      *latest,
		}
	}
	return nil
}

// WithVehicleLock runs fn while holding the per-vehicle lock, so a check and
// the write that depends on it form one critical section.
func (c *ContinuityChecker) WithVehicleLock(vehicleID string, fn func() error) error {
	lock := c.vehicleLock(vehicleID)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}
