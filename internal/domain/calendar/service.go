package calendar

import "context"

// CalendarService defines the month aggregation and calendar configuration
// operations.
type CalendarService interface {
	// AggregateMonth builds the month view for an employee, enforcing the
	// access rules
	AggregateMonth(ctx context.Context, employeeID string, year, month int, filter *Filter, mode Mode) (MonthView, error)

	// CreateHoliday registers a public holiday (backoffice)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (PublicHoliday, error)

	// ListHolidays lists holidays applying to a year
	ListHolidays(ctx context.Context, year int) ([]PublicHoliday, error)

	// DeleteHoliday removes a public holiday (backoffice)
	DeleteHoliday(ctx context.Context, id string) error

	// CreateNonWorkingDay registers an employee non-working day (backoffice)
	CreateNonWorkingDay(ctx context.Context, req CreateNonWorkingDayRequest) (NonWorkingDay, error)

	// DeleteNonWorkingDay removes an employee non-working day (backoffice)
	DeleteNonWorkingDay(ctx context.Context, id string) error
}
