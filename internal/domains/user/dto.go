package user

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// MaxPasswordBytes is the longest input bcrypt accepts
const MaxPasswordBytes = 72

// passwordRules bounds length in characters and, for bcrypt, in bytes
func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(8, 128),
		validation.By(func(value interface{}) error {
			if len(value.(string)) > MaxPasswordBytes {
				return validation.NewError("validation_password_bytes", "Ensure this field has no more than 72 bytes.")
			}
			return nil
		}),
	}
}

// ReservedUsername would shadow the /users/me/ endpoint
const ReservedUsername = "me"

// RegisterRequest is the sign up payload
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Normalize trims names and lowercases the email domain part
func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	if at := strings.LastIndex(r.Email, "@"); at > 0 {
		r.Email = r.Email[:at] + strings.ToLower(r.Email[at:])
	}
	r.Username = strings.TrimSpace(r.Username)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required,
			validation.Length(1, 254),
			is.EmailFormat.Error("Enter a valid email address."),
		),
		validation.Field(&r.Username,
			validation.Required,
			validation.Length(1, 150),
			validation.Match(usernamePattern).Error("Enter a valid username. It may contain only letters, numbers, and @/./+/-/_ characters."),
			validation.NotIn(ReservedUsername).Error("This username is reserved."),
		),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 150)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 150)),
		validation.Field(&r.Password, passwordRules()...),
	)
}

// SetPasswordRequest changes the caller's password
type SetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	CurrentPassword string `json:"current_password"`
}

func (r SetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewPassword, passwordRules()...),
		validation.Field(&r.CurrentPassword, validation.Required),
	)
}
