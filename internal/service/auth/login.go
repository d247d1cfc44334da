package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// Login authenticates a user by username and password. Unknown users and
// wrong passwords both yield ErrUnauthorized.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("auth.Login: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	creds, err := s.users.GetCredentials(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login get credentials: %w", err)
	}

	if err := s.hasher.Compare(creds.PasswordHash, input.Password); err != nil {
		s.log.WarnContext(ctx, "login failed",
			slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("auth.Login: %w", domain.ErrUnauthorized)
	}

	result, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("role", user.Role.String()))

	return result, nil
}

// Authenticate resolves a session token to the current user record so that
// role changes made after the token was issued take effect.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, fmt.Errorf("auth.Authenticate: %w", domain.ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("auth.Authenticate: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("auth.Authenticate get user: %w", err)
	}
	return user, nil
}
