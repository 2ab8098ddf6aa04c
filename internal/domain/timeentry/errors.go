package timeentry

import "errors"

// Time entry domain errors
var (
	ErrEntryNotFound  = errors.New("time entry not found")
	ErrDuplicateEntry = errors.New("a time entry for this employee and date already exists")
	ErrUsageNotFound  = errors.New("vehicle usage record not found")
	ErrUnauthorized   = errors.New("unauthorized to access this time entry")
	ErrEntryRejected  = errors.New("time entry rejected by validation")
)
