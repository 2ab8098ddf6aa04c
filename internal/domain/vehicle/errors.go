package vehicle

import "errors"

// Vehicle domain errors
var (
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrPlateExists       = errors.New("a vehicle with this license plate already exists")
	ErrVehicleInactive   = errors.New("vehicle is inactive and cannot be selected")
	ErrVehicleHasHistory = errors.New("vehicle has recorded history and can only be deactivated, not deleted")
)
