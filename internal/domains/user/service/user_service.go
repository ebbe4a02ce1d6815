package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"foodgram-backend/internal/domains/user"
	"foodgram-backend/pkg/logger"
)

// userService implements user.Service
type userService struct {
	repo       user.Repository
	bcryptCost int
}

func NewUserService(repo user.Repository, bcryptCost int) user.Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

// Register creates an account with a bcrypt password hash
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.RegisteredUser, error) {
	// 1. NORMALIZE + VALIDATE
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. PERSIST (unique email/username enforced by the table)
	newUser := &user.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(passwordHash),
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id":  newUser.ID,
		"username": newUser.Username,
	})

	registered := newUser.ToRegistered()
	return &registered, nil
}

func (s *userService) List(ctx context.Context, viewerID int64, limit, offset int) ([]user.UserResponse, int64, error) {
	profiles, total, err := s.repo.List(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]user.UserResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, p.ToResponse())
	}
	return items, total, nil
}

func (s *userService) Get(ctx context.Context, id, viewerID int64) (*user.UserResponse, error) {
	p, err := s.repo.GetProfile(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	resp := p.ToResponse()
	return &resp, nil
}

// SetPassword verifies the current password before storing the new hash
func (s *userService) SetPassword(ctx context.Context, userID int64, req user.SetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	// bcrypt.CompareHashAndPassword is constant-time
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrInvalidPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(passwordHash)); err != nil {
		return err
	}

	logger.Info("Password changed", map[string]interface{}{"user_id": userID})
	return nil
}
