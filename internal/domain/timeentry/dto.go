package timeentry

import (
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
)

// VehicleUsagePayload is the wire form of a vehicle usage. The flat shape
// (nullable vehicle fields plus a boolean flag) matches what forms submit;
// ToUsage folds it into the Usage sum type and rejects contradictory
// combinations before any business rule runs.
type VehicleUsagePayload struct {
	VehicleID       *string `json:"vehicle_id"`
	StartKilometers *int    `json:"start_kilometers"`
	EndKilometers   *int    `json:"end_kilometers"`
	NoVehicleUsed   bool    `json:"no_vehicle_used"`
	Notes           string  `json:"notes"`
}

// ToUsage builds the tagged variant. Mutually exclusive violations (vehicle
// and flag both set, odometer fields with the flag, neither side set) are
// hard errors here.
func (p *VehicleUsagePayload) ToUsage() (Usage, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	if p.NoVehicleUsed {
		if p.VehicleID != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "no_vehicle_used",
				Message: "a vehicle cannot be selected when the no-vehicle flag is set",
			})
		}
		if p.StartKilometers != nil || p.EndKilometers != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start_kilometers",
				Message: "odometer readings cannot be given when the no-vehicle flag is set",
			})
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return NoVehicle{}, nil
	}

	if p.VehicleID == nil || validator.IsEmpty(*p.VehicleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "vehicle_id",
			Message: "either a vehicle or the no-vehicle flag must be set",
		})
	}
	if p.StartKilometers == nil || p.EndKilometers == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_kilometers",
			Message: "start and end kilometers are required when a vehicle was used",
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return VehicleUsed{
		VehicleID:       *p.VehicleID,
		StartKilometers: *p.StartKilometers,
		EndKilometers:   *p.EndKilometers,
	}, nil
}

type CreateEntryRequest struct {
	EmployeeID        string               `json:"employee_id"`
	Date              string               `json:"date"`
	StartTime         string               `json:"start_time"`
	EndTime           string               `json:"end_time"`
	LunchBreakMinutes int                  `json:"lunch_break_minutes"`
	PollutionLevel    int                  `json:"pollution_level"`
	Notes             string               `json:"notes"`
	VehicleUsage      *VehicleUsagePayload `json:"vehicle_usage"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidTimeOfDay(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if _, ok := validator.IsValidTimeOfDay(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEntryRequest struct {
	ID                string               `json:"-"`
	StartTime         *string              `json:"start_time"`
	EndTime           *string              `json:"end_time"`
	LunchBreakMinutes *int                 `json:"lunch_break_minutes"`
	PollutionLevel    *int                 `json:"pollution_level"`
	Notes             *string              `json:"notes"`
	VehicleUsage      *VehicleUsagePayload `json:"vehicle_usage"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
	}

	if r.EndTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VehicleUsageResponse struct {
	VehicleID       *string `json:"vehicle_id,omitempty"`
	VehicleLabel    *string `json:"vehicle_label,omitempty"`
	StartKilometers *int    `json:"start_kilometers,omitempty"`
	EndKilometers   *int    `json:"end_kilometers,omitempty"`
	NoVehicleUsed   bool    `json:"no_vehicle_used"`
	Distance        int     `json:"distance_km"`
	Notes           string  `json:"notes,omitempty"`
}

type EntryResponse struct {
	ID                string                `json:"id"`
	EmployeeID        string                `json:"employee_id"`
	EmployeeName      string                `json:"employee_name,omitempty"`
	Date              string                `json:"date"`
	StartTime         string                `json:"start_time"`
	EndTime           string                `json:"end_time"`
	LunchBreakMinutes int                   `json:"lunch_break_minutes"`
	PollutionLevel    int                   `json:"pollution_level"`
	WorkedMinutes     int                   `json:"worked_minutes"`
	Notes             string                `json:"notes,omitempty"`
	VehicleUsage      *VehicleUsageResponse `json:"vehicle_usage,omitempty"`
	Warnings          []Warning             `json:"warnings,omitempty"`
	CreatedAt         string                `json:"created_at"`
	UpdatedAt         string                `json:"updated_at"`
}

// EntryFilter narrows list queries.
type EntryFilter struct {
	EmployeeID string
	Year       int
	Month      int
}
