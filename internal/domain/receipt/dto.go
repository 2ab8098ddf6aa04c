package receipt

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
)

type SubmitReceiptRequest struct {
	VehicleID        string                `json:"vehicle_id"`
	OdometerReading  int                   `json:"odometer_reading"`
	FuelAmountLiters *float64              `json:"fuel_amount_liters"`
	TotalCost        *float64              `json:"total_cost"`
	GasStation       string                `json:"gas_station"`
	FuelPurchaseDate *string               `json:"fuel_purchase_date"`
	Notes            string                `json:"notes"`
	File             multipart.File        `json:"-"`
	FileHeader       *multipart.FileHeader `json:"-"`
}

func (r *SubmitReceiptRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.VehicleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "vehicle_id",
			Message: "vehicle_id is required",
		})
	}

	if r.OdometerReading < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "odometer_reading",
			Message: "odometer reading cannot be negative",
		})
	} else if r.OdometerReading > 9999999 {
		errs = append(errs, validator.ValidationError{
			Field:   "odometer_reading",
			Message: "odometer reading is implausibly high",
		})
	}

	if r.FuelAmountLiters != nil && *r.FuelAmountLiters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "fuel_amount_liters",
			Message: "fuel amount cannot be negative",
		})
	}

	if r.TotalCost != nil && *r.TotalCost < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_cost",
			Message: "total cost cannot be negative",
		})
	}

	if r.FuelPurchaseDate != nil {
		if _, ok := validator.IsValidDate(*r.FuelPurchaseDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "fuel_purchase_date",
				Message: "fuel_purchase_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "receipt image is required",
		})
	} else {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "receipt image size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateReceiptRequest edits detail fields of a pending receipt within the
// edit window. The image is deliberately absent: it never changes.
type UpdateReceiptRequest struct {
	ID               string   `json:"-"`
	VehicleID        *string  `json:"vehicle_id"`
	OdometerReading  *int     `json:"odometer_reading"`
	FuelAmountLiters *float64 `json:"fuel_amount_liters"`
	TotalCost        *float64 `json:"total_cost"`
	GasStation       *string  `json:"gas_station"`
	Notes            *string  `json:"notes"`
}

func (r *UpdateReceiptRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OdometerReading != nil && *r.OdometerReading < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "odometer_reading",
			Message: "odometer reading cannot be negative",
		})
	}

	if r.FuelAmountLiters != nil && *r.FuelAmountLiters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "fuel_amount_liters",
			Message: "fuel amount cannot be negative",
		})
	}

	if r.TotalCost != nil && *r.TotalCost < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_cost",
			Message: "total cost cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransitionReceiptRequest struct {
	ID     string `json:"-"`
	Action string `json:"action"`
	Reason string `json:"reason"`
}

func (r *TransitionReceiptRequest) Validate() error {
	var errs validator.ValidationErrors

	action := Action(r.Action)
	if action != ActionApprove && action != ActionReject {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approve or reject",
		})
	}

	if action == ActionReject && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReceiptResponse struct {
	ID               string   `json:"id"`
	VehicleID        string   `json:"vehicle_id"`
	VehiclePlate     string   `json:"vehicle_plate,omitempty"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     string   `json:"employee_name,omitempty"`
	OdometerReading  int      `json:"odometer_reading"`
	ReceiptDate      string   `json:"receipt_date"`
	ImageURL         string   `json:"image_url,omitempty"`
	FuelAmountLiters *float64 `json:"fuel_amount_liters,omitempty"`
	TotalCost        *float64 `json:"total_cost,omitempty"`
	GasStation       string   `json:"gas_station,omitempty"`
	FuelPurchaseDate *string  `json:"fuel_purchase_date,omitempty"`
	Notes            string   `json:"notes,omitempty"`
	Status           string   `json:"status"`
	ApprovedBy       *string  `json:"approved_by,omitempty"`
	ApprovedAt       *string  `json:"approved_at,omitempty"`
	RejectionReason  string   `json:"rejection_reason,omitempty"`
	CanBeEdited      bool     `json:"can_be_edited"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

// ReceiptFilter narrows list queries.
type ReceiptFilter struct {
	EmployeeID string
	VehicleID  string
	Status     string
}
