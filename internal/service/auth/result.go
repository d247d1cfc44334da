package auth

import (
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// AuthResult is returned by Login and Register.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}
