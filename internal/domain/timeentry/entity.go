package timeentry

import (
	"time"
)

// PollutionLevel is the ordinal workplace pollution rating recorded per day.
type PollutionLevel int

const (
	PollutionLow    PollutionLevel = 1
	PollutionMedium PollutionLevel = 2
	PollutionHigh   PollutionLevel = 3
)

func (p PollutionLevel) Valid() bool {
	return p >= PollutionLow && p <= PollutionHigh
}

func (p PollutionLevel) String() string {
	switch p {
	case PollutionLow:
		return "low"
	case PollutionMedium:
		return "medium"
	case PollutionHigh:
		return "high"
	}
	return "unknown"
}

// TimeEntry is one employee's work-time record for a single day.
// At most one entry exists per (EmployeeID, Date); the database enforces this
// with a unique constraint so concurrent submissions cannot both land.
type TimeEntry struct {
	ID                string
	EmployeeID        string
	Date              time.Time // day precision
	StartTime         time.Time // time-of-day precision
	EndTime           time.Time // time-of-day precision
	LunchBreakMinutes int
	PollutionLevel    PollutionLevel
	Notes             string
	CreatedBy         string
	UpdatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Join
	EmployeeName *string
}

// IsOvernight reports whether the entry is an allowed overnight shift:
// start in the evening, end at or before noon the next day.
func (e TimeEntry) IsOvernight() bool {
	if e.StartTime.Hour() < 18 {
		return false
	}
	end := e.EndTime.Hour()*60 + e.EndTime.Minute()
	return end <= 12*60
}

// WorkedMinutes is the total work time excluding the lunch break.
// Overnight shifts roll the end time over to the next day.
func (e TimeEntry) WorkedMinutes() int {
	start := e.StartTime.Hour()*60 + e.StartTime.Minute()
	end := e.EndTime.Hour()*60 + e.EndTime.Minute()
	if end <= start {
		end += 24 * 60
	}
	worked := end - start - e.LunchBreakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}

// WorkedHours is WorkedMinutes in fractional hours.
func (e TimeEntry) WorkedHours() float64 {
	return float64(e.WorkedMinutes()) / 60.0
}

// Usage is the vehicle-usage variant of a VehicleUsage record: either no
// vehicle was used that day, or a specific vehicle with odometer readings.
// Modeling this as a closed sum makes the "vehicle and no-vehicle both set"
// state unrepresentable past the DTO boundary.
type Usage interface {
	isUsage()
	Distance() int
}

// NoVehicle marks a day on which no company vehicle was used.
type NoVehicle struct{}

func (NoVehicle) isUsage()      {}
func (NoVehicle) Distance() int { return 0 }

// VehicleUsed carries the vehicle and its odometer readings for the day.
type VehicleUsed struct {
	VehicleID       string
	StartKilometers int
	EndKilometers   int
}

func (VehicleUsed) isUsage() {}

func (v VehicleUsed) Distance() int {
	d := v.EndKilometers - v.StartKilometers
	if d < 0 {
		return 0
	}
	return d
}

// VehicleUsage is the optional one-to-one companion of a TimeEntry. It is
// created and destroyed together with its entry.
type VehicleUsage struct {
	ID          string
	TimeEntryID string
	Usage       Usage
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Distance is the kilometers driven that day, zero when no vehicle was used.
func (u VehicleUsage) Distance() int {
	if u.Usage == nil {
		return 0
	}
	return u.Usage.Distance()
}

// VehicleID returns the referenced vehicle, if any.
func (u VehicleUsage) VehicleID() *string {
	if used, ok := u.Usage.(VehicleUsed); ok {
		return &used.VehicleID
	}
	return nil
}
