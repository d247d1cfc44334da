package domain

import (
	"time"
)

// User represents an account of any role. Role is the discriminator.
type User struct {
	ID        int64
	Username  string
	Email     string
	Name      string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credentials holds the stored password hash for a user.
type Credentials struct {
	UserID       int64
	PasswordHash string
}

// PaymentDetails are the card details a client chose to store.
type PaymentDetails struct {
	UserID      int64
	HolderName  string
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
}

// MaskedCard returns the card number with everything but the last four
// digits hidden.
func (p PaymentDetails) MaskedCard() string {
	n := len(p.CardNumber)
	if n < 4 {
		return "****"
	}
	return "**** " + p.CardNumber[n-4:]
}

// ExpiredAt reports whether the card is no longer valid in the month of now.
// A card is valid through the last day of its expiry month.
func (p PaymentDetails) ExpiredAt(now time.Time) bool {
	y, m, _ := now.Date()
	if p.ExpiryYear != y {
		return p.ExpiryYear < y
	}
	return p.ExpiryMonth < int(m)
}
