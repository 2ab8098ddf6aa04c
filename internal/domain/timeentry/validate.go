package timeentry

import (
	"fmt"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/vehicle"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
)

// Rules holds the plausibility thresholds. Exceeding them yields warnings,
// never rejections.
type Rules struct {
	MaxShiftMinutes    int
	MaxDailyDistanceKm int
}

func DefaultRules() Rules {
	return Rules{
		MaxShiftMinutes:    720,
		MaxDailyDistanceKm: 500,
	}
}

// Warning flags an accepted but unusual value. Warnings ride alongside a
// successful validation and are surfaced to the submitter and approver.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	WarningLongShift           = "long_shift"
	WarningLongLunch           = "long_lunch"
	WarningImplausibleDistance = "implausible_distance"
)

// Verdict is the outcome of validating a candidate entry. Errors reject the
// submission; warnings annotate an accepted one.
type Verdict struct {
	Errors   validator.ValidationErrors
	Warnings []Warning
}

func (v Verdict) Accepted() bool {
	return len(v.Errors) == 0
}

// ValidateEntry checks a candidate time entry and its optional vehicle usage
// against field-level and cross-field rules. veh must be the resolved vehicle
// when the usage selects one, nil otherwise. The caller persists; this
// function only returns the verdict.
func ValidateEntry(entry TimeEntry, usage *VehicleUsage, veh *vehicle.Vehicle, now time.Time, rules Rules) Verdict {
	var verdict Verdict

	if validator.IsEmpty(entry.EmployeeID) {
		verdict.Errors = append(verdict.Errors, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if entry.Date.IsZero() {
		verdict.Errors = append(verdict.Errors, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if entry.Date.After(now.Truncate(24 * time.Hour)) {
		verdict.Errors = append(verdict.Errors, validator.ValidationError{
			Field:   "date",
			Message: "date cannot be in the future",
		})
	}

	if entry.StartTime.IsZero() || entry.EndTime.IsZero() {
		verdict.Errors = append(verdict.Errors, validator.ValidationError{
			Field:   "start_time",
			Message: "start and end time are required",
		})
		return verdict
	}

	if entry.LunchBreakMinutes < 0 {
		verdict.Errors = append(verdict.Errors, validator.ValidationError{
			Field:   "lunch_break_minutes",
			Message: "lunch break cannot be negative",
		})
	}

	if !entry.PollutionLevel.Valid() {
		verdict.Errors = append(verdict.Errors, validator.ValidationError{
			Field:   "pollution_level",
			Message: "pollution level must be 1 (low), 2 (medium) or 3 (high)",
		})
	}

	// Raw shift length before lunch; overnight shifts (evening start, morning
	// end) roll over to the next day, everything else must end after it starts.
	start := entry.StartTime.Hour()*60 + entry.StartTime.Minute()
	end := entry.EndTime.Hour()*60 + entry.EndTime.Minute()
	if end <= start && !entry.IsOvernight() {
		verdict.Errors = append(verdict.Errors, validator.ValidationError{
			Field:   "end_time",
			Message: "end time must be after start time",
		})
	} else {
		rawShift := end - start
		if rawShift <= 0 {
			rawShift += 24 * 60
		}

		if entry.LunchBreakMinutes >= rawShift {
			verdict.Errors = append(verdict.Errors, validator.ValidationError{
				Field:   "end_time",
				Message: "no work time remains after the lunch break",
			})
		} else {
			if rawShift-entry.LunchBreakMinutes > rules.MaxShiftMinutes {
				verdict.Warnings = append(verdict.Warnings, Warning{
					Code: WarningLongShift,
					Message: fmt.Sprintf("shift of %.1f hours exceeds the usual maximum of %.1f hours",
						float64(rawShift-entry.LunchBreakMinutes)/60, float64(rules.MaxShiftMinutes)/60),
				})
			}
			if entry.LunchBreakMinutes > 0 && entry.LunchBreakMinutes*2 > rawShift {
				verdict.Warnings = append(verdict.Warnings, Warning{
					Code:    WarningLongLunch,
					Message: fmt.Sprintf("lunch break of %d minutes is unusually long for this shift", entry.LunchBreakMinutes),
				})
			}
		}
	}

	if usage != nil {
		verdict = validateUsage(verdict, usage, veh, rules)
	}

	return verdict
}

func validateUsage(verdict Verdict, usage *VehicleUsage, veh *vehicle.Vehicle, rules Rules) Verdict {
	switch u := usage.Usage.(type) {
	case nil:
		verdict.Errors = append(verdict.Errors, validator.ValidationError{
			Field:   "vehicle_id",
			Message: "either a vehicle or the no-vehicle flag must be set",
		})
	case NoVehicle:
		// Nothing to check; odometer fields alongside the flag are rejected
		// at the DTO boundary before the variant is built.
	case VehicleUsed:
		if validator.IsEmpty(u.VehicleID) {
			verdict.Errors = append(verdict.Errors, validator.ValidationError{
				Field:   "vehicle_id",
				Message: "vehicle_id is required when a vehicle was used",
			})
			break
		}
		if veh == nil {
			verdict.Errors = append(verdict.Errors, validator.ValidationError{
				Field:   "vehicle_id",
				Message: "vehicle not found",
			})
			break
		}
		if !veh.IsActive {
			verdict.Errors = append(verdict.Errors, validator.ValidationError{
				Field:   "vehicle_id",
				Message: "vehicle is inactive and cannot be selected",
			})
		}
		if u.StartKilometers < 0 || u.EndKilometers < 0 {
			verdict.Errors = append(verdict.Errors, validator.ValidationError{
				Field:   "start_kilometers",
				Message: "odometer readings cannot be negative",
			})
		} else if u.EndKilometers < u.StartKilometers {
			verdict.Errors = append(verdict.Errors, validator.ValidationError{
				Field:   "end_kilometers",
				Message: "end kilometers must not be lower than start kilometers",
			})
		} else if u.Distance() > rules.MaxDailyDistanceKm {
			verdict.Warnings = append(verdict.Warnings, Warning{
				Code: WarningImplausibleDistance,
				Message: fmt.Sprintf("daily distance of %d km exceeds the usual maximum of %d km",
					u.Distance(), rules.MaxDailyDistanceKm),
			})
		}
	}
	return verdict
}
