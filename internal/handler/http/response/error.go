package response

import (
	"errors"
	"net/http"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/auth"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/calendar"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/receipt"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/timeentry"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/user"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// An odometer regression is a conflict with recorded history, not a
	// malformed request.
	var contErr *vehicle.ContinuityError
	if errors.As(err, &contErr) {
		Conflict(w, contErr.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Access control
	case errors.Is(err, user.ErrBackofficeRequired):
		Forbidden(w, "Backoffice privilege required")
	case errors.Is(err, user.ErrAccessToRecordDenied):
		Forbidden(w, "Access to this record denied")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Time entry domain errors
	case errors.Is(err, timeentry.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timeentry.ErrDuplicateEntry):
		Conflict(w, "A time entry for this employee and date already exists")
	case errors.Is(err, timeentry.ErrUsageNotFound):
		NotFound(w, "Vehicle usage record not found")

	// Vehicle domain errors
	case errors.Is(err, vehicle.ErrVehicleNotFound):
		NotFound(w, "Vehicle not found")
	case errors.Is(err, vehicle.ErrPlateExists):
		Conflict(w, "A vehicle with this license plate already exists")
	case errors.Is(err, vehicle.ErrVehicleInactive):
		BadRequest(w, "Vehicle is inactive and cannot be selected", nil)
	case errors.Is(err, vehicle.ErrVehicleHasHistory):
		Conflict(w, "Vehicle has recorded history and can only be deactivated")

	// Fuel receipt domain errors
	case errors.Is(err, receipt.ErrReceiptNotFound):
		NotFound(w, "Fuel receipt not found")
	case errors.Is(err, receipt.ErrAlreadyProcessed):
		Conflict(w, "Fuel receipt has already been approved or rejected")
	case errors.Is(err, receipt.ErrEditWindowClosed):
		Conflict(w, "Fuel receipt is no longer editable")
	case errors.Is(err, receipt.ErrUnknownAction):
		BadRequest(w, "Unknown receipt action", nil)
	case errors.Is(err, receipt.ErrRejectionNeedsNote):
		BadRequest(w, "A rejection reason is required", nil)

	// Calendar domain errors
	case errors.Is(err, calendar.ErrHolidayNotFound):
		NotFound(w, "Public holiday not found")
	case errors.Is(err, calendar.ErrHolidayExists):
		Conflict(w, "A holiday with this name and date already exists")
	case errors.Is(err, calendar.ErrNonWorkingDayNotFound):
		NotFound(w, "Non-working day not found")
	case errors.Is(err, calendar.ErrInvalidPeriod):
		BadRequest(w, "Invalid year or month", nil)
	case errors.Is(err, calendar.ErrInvalidMode):
		BadRequest(w, "Invalid aggregation mode", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
