// Package payment validates payment instruments before a purchase is
// charged. It never talks to a processor: a passing validation is treated
// as an accepted payment.
package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

// ErrRejected is wrapped by every validation failure.
var ErrRejected = errors.New("payment rejected")

const (
	maxTokenLength = 128
	minCardDigits  = 12
	maxCardDigits  = 19
)

// Validator checks opaque payment tokens and stored card details.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateToken accepts a non-empty token without whitespace of bounded length.
func (v *Validator) ValidateToken(token string) error {
	switch {
	case token == "":
		return fmt.Errorf("%w: payment token is missing", ErrRejected)
	case len(token) > maxTokenLength:
		return fmt.Errorf("%w: payment token is too long", ErrRejected)
	case strings.IndexFunc(token, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: payment token is malformed", ErrRejected)
	}
	return nil
}

// ValidateDetails checks stored card details against the month of now.
// Rejection messages expose only the masked card suffix.
func (v *Validator) ValidateDetails(d domain.PaymentDetails, now time.Time) error {
	masked := d.MaskedCard()

	if !isCardNumber(d.CardNumber) {
		return fmt.Errorf("%w: card %s is malformed", ErrRejected, masked)
	}
	if d.ExpiryMonth < 1 || d.ExpiryMonth > 12 || d.ExpiryYear < 2000 {
		return fmt.Errorf("%w: card %s has an invalid expiry date", ErrRejected, masked)
	}
	if d.ExpiredAt(now) {
		return fmt.Errorf("%w: card %s expired %02d/%d", ErrRejected, masked, d.ExpiryMonth, d.ExpiryYear)
	}
	return nil
}

func isCardNumber(s string) bool {
	if len(s) < minCardDigits || len(s) > maxCardDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
