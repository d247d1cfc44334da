package auth

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// LoginInput holds parameters for the password login operation.
type LoginInput struct {
	Username string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > 72 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RegisterInput holds parameters for client registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Card     *CardInput
}

// CardInput is an optional payment card stored at registration.
type CardInput struct {
	HolderName  string
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
}

// Validate validates the registration input. Card contents are checked
// separately against the current date.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	switch n := len(i.Username); {
	case n == 0:
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	case n < 3 || n > 32:
		errs = append(errs, domain.FieldError{Field: "username", Message: "must be 3-32 characters"})
	case strings.ContainsAny(i.Username, " \t\n"):
		errs = append(errs, domain.FieldError{Field: "username", Message: "must not contain whitespace"})
	}

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(i.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if len(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	} else if len(i.Password) > 72 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(i.Name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}

	if i.Card != nil && strings.TrimSpace(i.Card.HolderName) == "" {
		errs = append(errs, domain.FieldError{Field: "card.holderName", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
