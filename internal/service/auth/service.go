package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/auth"
	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error)
	GetCredentials(ctx context.Context, userID int64) (*domain.Credentials, error)
	SavePaymentDetails(ctx context.Context, details domain.PaymentDetails) error
}

// txManager defines the transaction manager interface needed by auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// tokenManager defines the session token interface needed by auth service.
type tokenManager interface {
	GenerateSessionToken(userID int64, role string) (string, time.Time, error)
	ValidateSessionToken(token string) (auth.SessionClaims, error)
}

// passwordHasher defines the password hashing interface needed by auth service.
type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// cardValidator checks payment details supplied at registration.
type cardValidator interface {
	ValidateDetails(details domain.PaymentDetails, now time.Time) error
}

// Service implements auth operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tx     txManager
	tokens tokenManager
	hasher passwordHasher
	cards  cardValidator
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tx txManager,
	tokens tokenManager,
	hasher passwordHasher,
	cards cardValidator,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		tx:     tx,
		tokens: tokens,
		hasher: hasher,
		cards:  cards,
	}
}

// issueToken generates a session token for the given user.
func (s *Service) issueToken(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateSessionToken(user.ID, user.Role.String())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
