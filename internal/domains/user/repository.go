package user

import "context"

// Repository is the data access contract for accounts.
// viewerID is 0 for anonymous callers; is_subscribed is then always false.
type Repository interface {
	// Create inserts u and fills ID and DateJoined.
	// Returns ErrEmailAlreadyExists / ErrUsernameAlreadyExists on conflicts.
	Create(ctx context.Context, u *User) error

	// FindByID returns ErrUserNotFound when absent
	FindByID(ctx context.Context, id int64) (*User, error)

	// GetProfile returns ErrUserNotFound when absent
	GetProfile(ctx context.Context, id, viewerID int64) (*Profile, error)

	// List returns a page of profiles ordered by id and the total count
	List(ctx context.Context, viewerID int64, limit, offset int) ([]Profile, int64, error)

	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
