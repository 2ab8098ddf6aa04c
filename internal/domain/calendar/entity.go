package calendar

import "time"

// PublicHoliday applies to all employees. Recurring holidays repeat annually
// on the same month and day.
type PublicHoliday struct {
	ID          string
	Name        string
	Date        time.Time
	IsRecurring bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AppliesTo checks whether this holiday falls on the given date.
func (h PublicHoliday) AppliesTo(date time.Time) bool {
	if h.IsRecurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return h.Date.Year() == date.Year() && h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
}

// Pattern describes how a per-employee non-working day recurs.
type Pattern string

const (
	PatternSpecific Pattern = "specific" // single date
	PatternWeekly   Pattern = "weekly"   // every given weekday
	PatternMonthly  Pattern = "monthly"  // given day of each month
)

func (p Pattern) Valid() bool {
	switch p {
	case PatternSpecific, PatternWeekly, PatternMonthly:
		return true
	}
	return false
}

// NonWorkingDay is an employee-specific day off beyond weekends and public
// holidays, for part-time schedules and standing arrangements.
type NonWorkingDay struct {
	ID         string
	EmployeeID string
	Pattern    Pattern
	Date       *time.Time   // PatternSpecific
	Weekday    *time.Weekday // PatternWeekly
	DayOfMonth *int          // PatternMonthly
	ValidFrom  *time.Time
	ValidUntil *time.Time
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AppliesTo checks whether this non-working day covers the given date,
// honoring the validity window.
func (n NonWorkingDay) AppliesTo(date time.Time) bool {
	if n.ValidFrom != nil && date.Before(*n.ValidFrom) {
		return false
	}
	if n.ValidUntil != nil && date.After(*n.ValidUntil) {
		return false
	}

	switch n.Pattern {
	case PatternSpecific:
		return n.Date != nil && sameDay(*n.Date, date)
	case PatternWeekly:
		return n.Weekday != nil && date.Weekday() == *n.Weekday
	case PatternMonthly:
		return n.DayOfMonth != nil && date.Day() == *n.DayOfMonth
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
