package purchase

import (
	"sync"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

var _ paymentValidator = &paymentValidatorMock{}

type paymentValidatorMock struct {
	ValidateDetailsFunc func(details domain.PaymentDetails, now time.Time) error
	ValidateTokenFunc   func(token string) error

	calls struct {
		ValidateDetails []struct {
			Details domain.PaymentDetails
			Now     time.Time
		}
		ValidateToken []struct {
			Token string
		}
	}
	lockValidateDetails sync.RWMutex
	lockValidateToken   sync.RWMutex
}

func (mock *paymentValidatorMock) ValidateDetails(details domain.PaymentDetails, now time.Time) error {
	if mock.ValidateDetailsFunc == nil {
		panic("paymentValidatorMock.ValidateDetailsFunc: method is nil but paymentValidator.ValidateDetails was just called")
	}
	callInfo := struct {
		Details domain.PaymentDetails
		Now     time.Time
	}{
		Details: details,
		Now:     now,
	}
	mock.lockValidateDetails.Lock()
	mock.calls.ValidateDetails = append(mock.calls.ValidateDetails, callInfo)
	mock.lockValidateDetails.Unlock()
	return mock.ValidateDetailsFunc(details, now)
}

func (mock *paymentValidatorMock) ValidateDetailsCalls() []struct {
	Details domain.PaymentDetails
	Now     time.Time
} {
	var calls []struct {
		Details domain.PaymentDetails
		Now     time.Time
	}
	mock.lockValidateDetails.RLock()
	calls = mock.calls.ValidateDetails
	mock.lockValidateDetails.RUnlock()
	return calls
}

func (mock *paymentValidatorMock) ValidateToken(token string) error {
	if mock.ValidateTokenFunc == nil {
		panic("paymentValidatorMock.ValidateTokenFunc: method is nil but paymentValidator.ValidateToken was just called")
	}
	callInfo := struct {
		Token string
	}{
		Token: token,
	}
	mock.lockValidateToken.Lock()
	mock.calls.ValidateToken = append(mock.calls.ValidateToken, callInfo)
	mock.lockValidateToken.Unlock()
	return mock.ValidateTokenFunc(token)
}

func (mock *paymentValidatorMock) ValidateTokenCalls() []struct {
	Token string
} {
	var calls []struct {
		Token string
	}
	mock.lockValidateToken.RLock()
	calls = mock.calls.ValidateToken
	mock.lockValidateToken.RUnlock()
	return calls
}
