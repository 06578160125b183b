package auth

import (
	"strings"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	ValidateEmail(&errs, r.Email)
	ValidatePassword(&errs, r.Password)

	if r.Role != "" && !user.Role(r.Role).IsValid() {
		errs.Add("role", "role must be one of Admin, Employee")
	}

	return errs.Err()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	ValidateEmail(&errs, r.Email)
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refreshToken", "refreshToken is required")
	} else if len(r.RefreshToken) > 2048 {
		errs.Add("refreshToken", "refreshToken must not exceed 2048 characters")
	}

	return errs.Err()
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string             `json:"accessToken"`
	AccessTokenExpiresIn  int64              `json:"accessTokenExpiresIn"`
	RefreshToken          string             `json:"refreshToken"`
	RefreshTokenExpiresIn int64              `json:"refreshTokenExpiresIn"`
	User                  *user.UserResponse `json:"user,omitempty"`
}

// NormalizeEmail lowercases and trims an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail appends email field errors to errs.
func ValidateEmail(errs *validator.ValidationErrors, email string) {
	if validator.IsEmpty(email) {
		errs.Add("email", "email is required")
	} else if len(email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(strings.TrimSpace(email)) {
		errs.Add("email", "email must be a valid email address")
	}
}

// ValidatePassword appends password field errors to errs.
func ValidatePassword(errs *validator.ValidationErrors, password string) {
	if validator.IsEmpty(password) {
		errs.Add("password", "password is required")
	} else if len(password) < 8 {
		errs.Add("password", "password must be at least 8 characters long")
	} else if len(password) > 72 {
		// bcrypt rejects input longer than 72 bytes
		errs.Add("password", "password must not exceed 72 characters")
	}
}

