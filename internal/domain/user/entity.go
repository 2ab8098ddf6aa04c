package user

import "time"

type Role string

const (
	RoleEmployee   Role = "employee"   // Submits own time entries and receipts
	RoleBackoffice Role = "backoffice" // Full access, approves receipts
)

type User struct {
	ID               string
	Email            string
	FirstName        string
	LastName         string
	PasswordHash     *string
	Role             Role
	DefaultVehicleID *string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsBackoffice checks if user has the backoffice role
func (u *User) IsBackoffice() bool {
	return u.Role == RoleBackoffice
}

// IsEmployee checks if user has the employee role
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// CanApproveReceipts checks if user can approve or reject fuel receipts
func (u *User) CanApproveReceipts() bool {
	return u.IsBackoffice()
}

// FullName returns the display name
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
