package user

import (
	"fmt"
	"strings"
	"time"
)

// User is a signed-up account. PasswordHash never leaves the service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Email == "" {
		return fmt.Errorf("user email is required")
	}
	if u.Email != NormalizeEmail(u.Email) {
		return fmt.Errorf("user email must be normalized")
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("user password hash is required")
	}

	return nil
}

func (u User) Principal() Principal {
	return Principal{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
	}
}

// Principal is the authenticated caller resolved from a session token.
type Principal struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
