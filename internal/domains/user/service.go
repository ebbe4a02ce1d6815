package user

import "context"

// Service is the account business logic contract
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisteredUser, error)
	List(ctx context.Context, viewerID int64, limit, offset int) ([]UserResponse, int64, error)
	Get(ctx context.Context, id, viewerID int64) (*UserResponse, error)
	SetPassword(ctx context.Context, userID int64, req SetPasswordRequest) error
}
