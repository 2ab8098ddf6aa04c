package receipt

import "time"

// EditWindow is how long a pending receipt's details stay editable after
// creation. The image reference is immutable regardless.
const EditWindow = 24 * time.Hour

// MaxPurchaseAge is the oldest a stated fuel purchase may be at submission
// time. Older receipts are rejected so evidence is filed promptly.
const MaxPurchaseAge = 30 * 24 * time.Hour

// FuelReceipt is an independently submitted fuel-purchase evidence record.
// The receipt image lives in external storage; only ImageKey, set exactly
// once at creation, references it here.
type FuelReceipt struct {
	ID               string
	VehicleID        string
	EmployeeID       string
	OdometerReading  int
	ReceiptDate      time.Time // set at creation, immutable
	ImageKey         string    // opaque storage reference, immutable
	FuelAmountLiters *float64
	TotalCost        *float64
	GasStation       string
	FuelPurchaseDate *time.Time
	Notes            string
	Status           Status
	ApprovedBy       *string
	ApprovedAt       *time.Time
	RejectionReason  string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join
	EmployeeName *string
	VehiclePlate *string
}

// CanBeEdited reports whether the submitting employee may still change detail
// fields: only while pending and inside the edit window.
func (r FuelReceipt) CanBeEdited(now time.Time) bool {
	if r.Status != StatusPending {
		return false
	}
	return now.Sub(r.CreatedAt) < EditWindow
}

// DaysSinceUpload is the age of the receipt in whole days.
func (r FuelReceipt) DaysSinceUpload(now time.Time) int {
	return int(now.Sub(r.CreatedAt).Hours() / 24)
}
