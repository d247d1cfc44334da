package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// Register creates a new CLIENT user and, when supplied, stores their payment
// card. Returns ErrAlreadyExists if the email or username is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var card *domain.PaymentDetails
	if input.Card != nil {
		card = &domain.PaymentDetails{
			HolderName:  strings.TrimSpace(input.Card.HolderName),
			CardNumber:  strings.ReplaceAll(input.Card.CardNumber, " ", ""),
			ExpiryMonth: input.Card.ExpiryMonth,
			ExpiryYear:  input.Card.ExpiryYear,
		}
		if err := s.cards.ValidateDetails(*card, time.Now()); err != nil {
			return nil, domain.NewValidationError("card", err.Error())
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	name := input.Name
	if name == "" {
		name = input.Username
	}

	var created *domain.User
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		user, err := s.users.Create(txCtx, &domain.User{
			Username: input.Username,
			Email:    input.Email,
			Name:     name,
			Role:     domain.UserRoleClient,
		}, hash)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		if card != nil {
			card.UserID = user.ID
			if err := s.users.SavePaymentDetails(txCtx, *card); err != nil {
				return fmt.Errorf("save payment details: %w", err)
			}
		}

		created = user
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	result, err := s.issueToken(created)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.Int64("user_id", created.ID),
		slog.Bool("card_stored", card != nil))

	return result, nil
}
