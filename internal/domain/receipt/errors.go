package receipt

import "errors"

// Fuel receipt domain errors
var (
	ErrReceiptNotFound    = errors.New("fuel receipt not found")
	ErrAlreadyProcessed   = errors.New("fuel receipt has already been approved or rejected")
	ErrUnknownAction      = errors.New("unknown receipt action")
	ErrEditWindowClosed   = errors.New("fuel receipt is no longer editable")
	ErrImageImmutable     = errors.New("receipt image cannot be replaced after creation")
	ErrRejectionNeedsNote = errors.New("a rejection reason is required")
	ErrUnauthorized       = errors.New("unauthorized to access this fuel receipt")
)
