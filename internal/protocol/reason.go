package protocol

// Reason is a machine-readable outcome code carried by ERROR envelopes and
// purchase results.
type Reason string

const (
	ReasonSuccess Reason = "SUCCESS"

	// Client side.
	ReasonTransportError Reason = "TRANSPORT_ERROR"
	ReasonTimeout        Reason = "TIMEOUT"

	// Dispatch.
	ReasonUnknownAction  Reason = "UNKNOWN_ACTION"
	ReasonInvalidRequest Reason = "INVALID_REQUEST"
	ReasonUnauthorized   Reason = "UNAUTHORIZED"
	ReasonForbidden      Reason = "FORBIDDEN"
	ReasonNotFound       Reason = "NOT_FOUND"
	ReasonRateLimited    Reason = "RATE_LIMITED"

	// Workflows.
	ReasonUserNotFound     Reason = "USER_NOT_FOUND"
	ReasonPaymentRejected  Reason = "PAYMENT_REJECTED"
	ReasonInvalidPrice     Reason = "INVALID_PRICE"
	ReasonAlreadyOwned     Reason = "ALREADY_OWNED"
	ReasonAlreadyProcessed Reason = "ALREADY_PROCESSED"
	ReasonInternalError    Reason = "INTERNAL_ERROR"
)

func (r Reason) String() string { return string(r) }

// ErrorPayload is the payload of an ERROR envelope.
type ErrorPayload struct {
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}
