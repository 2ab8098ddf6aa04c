package calendar

import "errors"

var (
	ErrHolidayNotFound       = errors.New("public holiday not found")
	ErrHolidayExists         = errors.New("a holiday with this name and date already exists")
	ErrNonWorkingDayNotFound = errors.New("non-working day not found")
	ErrInvalidPeriod         = errors.New("invalid year or month")
	ErrInvalidMode           = errors.New("invalid aggregation mode")
)
