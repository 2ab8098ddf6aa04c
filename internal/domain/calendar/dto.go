package calendar

import (
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/domain/timeentry"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/validator"
)

// Mode selects how filters affect the month summary. The two consumption
// modes carry distinct names so callers cannot confuse them.
type Mode string

const (
	// ModeDetailFilter trims non-matching day-cells from the detail listing
	// but computes totals over the full month.
	ModeDetailFilter Mode = "detail_filter"

	// ModeFilteredTotals computes totals over only the cells that survive
	// the filter.
	ModeFilteredTotals Mode = "filtered_totals"
)

func (m Mode) Valid() bool {
	return m == ModeDetailFilter || m == ModeFilteredTotals
}

// Filter narrows the detail listing of a month view. Nil fields match
// everything.
type Filter struct {
	VehicleID      *string
	From           *time.Time
	To             *time.Time
	PollutionLevel *timeentry.PollutionLevel
}

// VehicleInfo is the derived vehicle display for one day-cell: no vehicle,
// a vehicle with its computed distance, or absent when the day has no usage
// record.
type VehicleInfo struct {
	NoVehicleUsed bool    `json:"no_vehicle_used"`
	VehicleID     *string `json:"vehicle_id,omitempty"`
	VehicleLabel  *string `json:"vehicle_label,omitempty"`
	DistanceKm    int     `json:"distance_km"`
}

// DayCell is one calendar day in a month view. Days without a time entry are
// still present as empty cells so the sequence always covers the full month.
type DayCell struct {
	Date                string              `json:"date"`
	Weekday             string              `json:"weekday"`
	HasEntry            bool                `json:"has_entry"`
	Entry               *DayEntry           `json:"entry,omitempty"`
	VehicleInfo         *VehicleInfo        `json:"vehicle_info,omitempty"`
	IsWeekend           bool                `json:"is_weekend"`
	IsPublicHoliday     bool                `json:"is_public_holiday"`
	PublicHolidayName   string              `json:"public_holiday_name,omitempty"`
	IsNonWorkingDay     bool                `json:"is_non_working_day"`
	NonWorkingReason    string              `json:"non_working_reason,omitempty"`
	IsMissingEntry      bool                `json:"is_missing_entry"`
	Warnings            []timeentry.Warning `json:"warnings,omitempty"`
}

// DayEntry is the time-entry detail embedded in a populated day-cell.
type DayEntry struct {
	EntryID           string  `json:"entry_id"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	LunchBreakMinutes int     `json:"lunch_break_minutes"`
	PollutionLevel    int     `json:"pollution_level"`
	WorkedMinutes     int     `json:"worked_minutes"`
	WorkedHours       float64 `json:"worked_hours"`
	Notes             string  `json:"notes,omitempty"`
}

// MonthSummary carries the month-level totals. Every value is re-derived
// from the underlying records on each aggregation; nothing is cached.
type MonthSummary struct {
	TotalWorkedMinutes int `json:"total_worked_minutes"`
	TotalDistanceKm    int `json:"total_distance_km"`
	VehicleDays        int `json:"vehicle_days"`
	NoVehicleDays      int `json:"no_vehicle_days"`
	WarningCount       int `json:"warning_count"`
	TotalDays          int `json:"total_days"`
	Workdays           int `json:"workdays"`
	EntryCount         int `json:"entry_count"`
	MissingEntries     int `json:"missing_entries"`
	Weekends           int `json:"weekends"`
	Holidays           int `json:"holidays"`
	NonWorkingDays     int `json:"non_working_days"`
}

// MonthView is the aggregated calendar for one employee-month.
type MonthView struct {
	EmployeeID string       `json:"employee_id"`
	Year       int          `json:"year"`
	Month      int          `json:"month"`
	Mode       Mode         `json:"mode"`
	Days       []DayCell    `json:"days"`
	Summary    MonthSummary `json:"summary"`
}

type CreateHolidayRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	IsRecurring bool   `json:"is_recurring"`
	Description string `json:"description"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateNonWorkingDayRequest struct {
	EmployeeID string  `json:"employee_id"`
	Pattern    string  `json:"pattern"`
	Date       *string `json:"date"`
	Weekday    *int    `json:"weekday"`
	DayOfMonth *int    `json:"day_of_month"`
	ValidFrom  *string `json:"valid_from"`
	ValidUntil *string `json:"valid_until"`
	Reason     string  `json:"reason"`
}

func (r *CreateNonWorkingDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	pattern := Pattern(r.Pattern)
	if !pattern.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "pattern",
			Message: "pattern must be one of specific, weekly, monthly",
		})
		return errs
	}

	switch pattern {
	case PatternSpecific:
		if r.Date == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date is required for specific non-working days",
			})
		} else if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	case PatternWeekly:
		if r.Weekday == nil || *r.Weekday < 0 || *r.Weekday > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "weekday",
				Message: "weekday (0=Sunday .. 6=Saturday) is required for weekly non-working days",
			})
		}
	case PatternMonthly:
		if r.DayOfMonth == nil || *r.DayOfMonth < 1 || *r.DayOfMonth > 31 {
			errs = append(errs, validator.ValidationError{
				Field:   "day_of_month",
				Message: "day_of_month must be between 1 and 31",
			})
		}
	}

	if r.ValidFrom != nil && r.ValidUntil != nil {
		from, okFrom := validator.IsValidDate(*r.ValidFrom)
		until, okUntil := validator.IsValidDate(*r.ValidUntil)
		if okFrom && okUntil && from.After(until) {
			errs = append(errs, validator.ValidationError{
				Field:   "valid_until",
				Message: "valid_until must not be before valid_from",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
