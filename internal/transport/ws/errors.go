package ws

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/internal/protocol"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

// Error lets a handler answer with a specific wire reason.
type Error struct {
	Reason  protocol.Reason
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Reason.String()
	}
	return e.Reason.String() + ": " + e.Message
}

var errPanic = errors.New("handler panicked")

// present maps a handler error to the reason and message sent to the client.
// Unexpected errors are logged and answered with a generic message.
func present(ctx context.Context, log *slog.Logger, action protocol.Action, err error) (protocol.Reason, string) {
	var re *Error
	if errors.As(err, &re) {
		return re.Reason, re.Message
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return protocol.ReasonInvalidRequest, strings.TrimPrefix(ve.Error(), "validation: ")
		}
		return protocol.ReasonInvalidRequest, "invalid request"

	case errors.Is(err, domain.ErrAlreadyExists):
		return protocol.ReasonInvalidRequest, "already exists"

	case errors.Is(err, domain.ErrConflict):
		return protocol.ReasonInvalidRequest, "conflicting change"

	case errors.Is(err, domain.ErrUnauthorized):
		return protocol.ReasonUnauthorized, "authentication required"

	case errors.Is(err, domain.ErrForbidden):
		return protocol.ReasonForbidden, "insufficient role"

	case errors.Is(err, domain.ErrNotFound):
		return protocol.ReasonNotFound, "not found"

	case errors.Is(err, domain.ErrAlreadyProcessed):
		return protocol.ReasonAlreadyProcessed, "already processed"

	default:
		log.ErrorContext(ctx, "unexpected handler error",
			slog.String("action", action.String()),
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		)
		return protocol.ReasonInternalError, "internal error"
	}
}
