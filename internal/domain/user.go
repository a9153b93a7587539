package domain

import (
	"strings"
	"time"
)

// RoleUser is assigned to every newly registered account.
const RoleUser = "user"

// User represents a registered account.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a User with the default role. The password must already be hashed.
func NewUser(username, email, hashedPassword string, now time.Time) (*User, error) {
	username, email = NormalizeIdentity(username, email)
	u := &User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           RoleUser,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeIdentity returns username and email in their stored form.
func NormalizeIdentity(username, email string) (string, string) {
	return strings.TrimSpace(username), strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	switch {
	case u.Username == "":
		return NewValidationError("username", ErrEmptyUsername)
	case u.Email == "":
		return NewValidationError("email", ErrEmptyEmail)
	case u.HashedPassword == "":
		return NewValidationError("password", ErrEmptyHashedPassword)
	}
	return nil
}

// Principal returns the identity carried in this user's tokens.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
