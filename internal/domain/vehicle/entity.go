package vehicle

import "time"

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
	FuelOther    FuelType = "other"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid, FuelOther:
		return true
	}
	return false
}

// Vehicle is a company vehicle available for mileage tracking and fuel
// receipts. The license plate is immutable and unique; vehicles with recorded
// history are deactivated, never deleted.
type Vehicle struct {
	ID           string
	LicensePlate string // normalized: uppercase, no spaces or dashes
	Make         string
	Model        string
	Year         int
	Color        string
	FuelType     FuelType
	IsActive     bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Label is the human-readable identification used in calendar cells and lists.
func (v Vehicle) Label() string {
	return v.LicensePlate + " (" + v.Make + " " + v.Model + ")"
}
