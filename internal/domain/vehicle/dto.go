package vehicle

import (
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
)

type CreateVehicleRequest struct {
	LicensePlate string `json:"license_plate"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	FuelType     string `json:"fuel_type"`
	Notes        string `json:"notes"`
}

func (r *CreateVehicleRequest) Validate() error {
	var errs validator.ValidationErrors

	plate := validator.NormalizePlate(r.LicensePlate)
	if validator.IsEmpty(plate) {
		errs = append(errs, validator.ValidationError{
			Field:   "license_plate",
			Message: "license plate is required",
		})
	} else if !validator.IsValidPlate(plate) {
		errs = append(errs, validator.ValidationError{
			Field:   "license_plate",
			Message: "license plate may only contain letters and digits (2-20 characters)",
		})
	}

	if validator.IsEmpty(r.Make) {
		errs = append(errs, validator.ValidationError{
			Field:   "make",
			Message: "make is required",
		})
	}

	if validator.IsEmpty(r.Model) {
		errs = append(errs, validator.ValidationError{
			Field:   "model",
			Message: "model is required",
		})
	}

	if r.Year < 1900 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be 1900 or later",
		})
	} else if r.Year > time.Now().Year()+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year cannot be in the future",
		})
	}

	if r.FuelType != "" && !FuelType(r.FuelType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "fuel_type",
			Message: "fuel type must be one of petrol, diesel, electric, hybrid, other",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateVehicleRequest struct {
	ID       string  `json:"-"`
	Make     *string `json:"make"`
	Model    *string `json:"model"`
	Year     *int    `json:"year"`
	Color    *string `json:"color"`
	FuelType *string `json:"fuel_type"`
	IsActive *bool   `json:"is_active"`
	Notes    *string `json:"notes"`
}

func (r *UpdateVehicleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year != nil && (*r.Year < 1900 || *r.Year > time.Now().Year()+1) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1900 and next year",
		})
	}

	if r.FuelType != nil && !FuelType(*r.FuelType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "fuel_type",
			Message: "fuel type must be one of petrol, diesel, electric, hybrid, other",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VehicleResponse struct {
	ID           string `json:"id"`
	LicensePlate string `json:"license_plate"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color,omitempty"`
	FuelType     string `json:"fuel_type"`
	IsActive     bool   `json:"is_active"`
	Notes        string `json:"notes,omitempty"`
	Label        string `json:"label"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
