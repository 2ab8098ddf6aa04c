package user

import "context"

// UserRepository defines data access methods for user accounts.
type UserRepository interface {
	// Create creates a new user account
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email, for login
	GetByEmail(ctx context.Context, email string) (User, error)

	// List retrieves all users ordered by last name
	List(ctx context.Context) ([]User, error)

	// Update updates an existing user
	Update(ctx context.Context, u User) error
}
