package calendar

import (
	"context"
	"time"
)

// HolidayRepository defines data access for public holidays.
type HolidayRepository interface {
	Create(ctx context.Context, h PublicHoliday) (PublicHoliday, error)
	GetByID(ctx context.Context, id string) (PublicHoliday, error)

	// ListForYear returns one-time holidays of the year plus all recurring
	// holidays; recurring ones are matched to concrete dates by the caller.
	ListForYear(ctx context.Context, year int) ([]PublicHoliday, error)

	Delete(ctx context.Context, id string) error
}

// NonWorkingDayRepository defines data access for employee non-working days.
type NonWorkingDayRepository interface {
	Create(ctx context.Context, n NonWorkingDay) (NonWorkingDay, error)
	GetByID(ctx context.Context, id string) (NonWorkingDay, error)

	// ListForEmployee returns the employee's specific dates inside the range
	// plus all recurring patterns whose validity window overlaps it.
	ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]NonWorkingDay, error)

	Delete(ctx context.Context, id string) error
}
