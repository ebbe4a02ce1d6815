package service

import (
	"context"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"foodgram-backend/internal/domains/user"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 7
	}
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetProfile(ctx context.Context, id, viewerID int64) (*user.Profile, error) {
	args := m.Called(ctx, id, viewerID)
	if p, ok := args.Get(0).(*user.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, viewerID int64, limit, offset int) ([]user.Profile, int64, error) {
	args := m.Called(ctx, viewerID, limit, offset)
	return args.Get(0).([]user.Profile), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func validRegistration() user.RegisterRequest {
	return user.RegisterRequest{
		Email:     "cook@Example.COM",
		Username:  "cook.42",
		FirstName: " Ann ",
		LastName:  "Smith",
		Password:  "s3cret-pass",
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")) == nil
	})).Return(nil)

	svc := NewUserService(repo, bcrypt.MinCost)
	got, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "cook@example.com", got.Email)
	assert.Equal(t, "Ann", got.FirstName)
	repo.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(r *user.RegisterRequest)
		field string
	}{
		{"reserved username", func(r *user.RegisterRequest) { r.Username = "me" }, "username"},
		{"bad username", func(r *user.RegisterRequest) { r.Username = "no spaces" }, "username"},
		{"bad email", func(r *user.RegisterRequest) { r.Email = "nope" }, "email"},
		{"short password", func(r *user.RegisterRequest) { r.Password = "short" }, "password"},
		{"password over bcrypt limit", func(r *user.RegisterRequest) { r.Password = strings.Repeat("a", 100) }, "password"},
		{"multibyte password over bcrypt limit", func(r *user.RegisterRequest) { r.Password = strings.Repeat("пароль", 7) }, "password"},
		{"missing first name", func(r *user.RegisterRequest) { r.FirstName = "" }, "first_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			svc := NewUserService(repo, bcrypt.MinCost)

			req := validRegistration()
			tt.edit(&req)

			_, err := svc.Register(context.Background(), req)
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tt.field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(user.ErrEmailAlreadyExists)

	_, err := NewUserService(repo, bcrypt.MinCost).Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestSetPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(mockRepository)
	repo.On("FindByID", mock.Anything, int64(3)).Return(&user.User{ID: 3, PasswordHash: string(hash)}, nil)
	repo.On("UpdatePassword", mock.Anything, int64(3), mock.AnythingOfType("string")).Return(nil)

	svc := NewUserService(repo, bcrypt.MinCost)
	err = svc.SetPassword(context.Background(), 3, user.SetPasswordRequest{
		NewPassword:     "new-password",
		CurrentPassword: "old-password",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSetPassword_WrongCurrent(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(mockRepository)
	repo.On("FindByID", mock.Anything, int64(3)).Return(&user.User{ID: 3, PasswordHash: string(hash)}, nil)

	err = NewUserService(repo, bcrypt.MinCost).SetPassword(context.Background(), 3, user.SetPasswordRequest{
		NewPassword:     "new-password",
		CurrentPassword: "guess-password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidPassword)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetPassword_NewPasswordOverBcryptLimit(t *testing.T) {
	repo := new(mockRepository)

	err := NewUserService(repo, bcrypt.MinCost).SetPassword(context.Background(), 3, user.SetPasswordRequest{
		NewPassword:     strings.Repeat("a", 100),
		CurrentPassword: "old-password",
	})

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "new_password")
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestList_MapsProfiles(t *testing.T) {
	repo := new(mockRepository)
	repo.On("List", mock.Anything, int64(1), 6, 0).Return([]user.Profile{
		{User: user.User{ID: 2, Username: "chef"}, IsSubscribed: true},
	}, int64(1), nil)

	items, total, err := NewUserService(repo, bcrypt.MinCost).List(context.Background(), 1, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsSubscribed)
	assert.Equal(t, "chef", items[0].Username)
}
