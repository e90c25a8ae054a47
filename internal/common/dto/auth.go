package dto

import (
	"net/mail"
	"strings"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/i18n"
)

const minPasswordLength = 6

// SignUpRequest represents an account registration
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Normalize trims the identity fields and defaults the role to tenant
func (r *SignUpRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Role == "" {
		r.Role = string(cnst.RoleTenant)
	}
}

// Validate checks a normalized request
func (r *SignUpRequest) Validate() error {
	var missing []string
	if r.Username == "" {
		missing = append(missing, "username")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return i18n.ErrMissingFields.WithParam("fields", strings.Join(missing, ", "))
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return i18n.ErrInvalidPayload.WithParam("reason", "email is malformed")
	}
	if len(r.Password) < minPasswordLength {
		return i18n.ErrInvalidPayload.WithParam("reason", "password must be at least 6 characters")
	}
	if !cnst.Role(r.Role).Valid() {
		return i18n.ErrInvalidRole
	}
	return nil
}

// SignInRequest represents a login request
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo is the public view of an account
type UserInfo struct {
	ID       database.ID `json:"_id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     cnst.Role   `json:"role"`
}

// NewUserInfo builds the public view of u
func NewUserInfo(u *database.User) *UserInfo {
	return &UserInfo{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
