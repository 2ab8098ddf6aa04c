package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserEmailExists          = errors.New("email already registered")
	ErrInvalidEmailFormat       = errors.New("invalid email format")
	ErrInvalidPasswordLength    = errors.New("password must be at least 8 characters")
	ErrUserInactive             = errors.New("user account is deactivated")
	ErrBackofficeRequired       = errors.New("backoffice privilege required")
	ErrInsufficientPermissions  = errors.New("insufficient permissions")
	ErrAccessToRecordDenied     = errors.New("access to this record denied")
	ErrUpdatedAtBeforeCreatedAt = errors.New("updated_at cannot be before created_at")
)
