package vehicle

import (
	"fmt"
	"time"
)

// ReadingSource identifies which record kind produced an odometer reading.
type ReadingSource string

const (
	SourceMileage ReadingSource = "mileage"
	SourceReceipt ReadingSource = "receipt"
)

// Reading is one point in a vehicle's odometer history, drawn from either a
// vehicle-usage record or a fuel receipt. The history is a merged view
// assembled at query time from both sources; it is never stored separately.
// Total order is (RecordedAt, Seq): ties on the timestamp fall back to
// insertion order, so a back-dated correction cannot pose as the newest value.
type Reading struct {
	VehicleID  string
	Kilometers int
	RecordedAt time.Time
	Seq        int64
	Source     ReadingSource
}

// ContinuityError reports an odometer regression: a new reading below the
// immediately preceding reading in the vehicle's total order. It carries the
// conflicting prior reading for operator context.
type ContinuityError struct {
	VehicleID  string
	Kilometers int
	Prior      Reading
}

func (e *ContinuityError) Error() string {
	return fmt.Sprintf("odometer regression for vehicle %s: reading %d km is below the previous %s reading of %d km",
		e.VehicleID, e.Kilometers, e.Prior.Source, e.Prior.Kilometers)
}
