package auth

import (
	"errors"

	"github.com/jrsteele09/project-sync-web/backend"
	"github.com/jrsteele09/project-sync-web/guard"
	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
)

const (
	msgTransportFailure = "Unable to reach Project Sync. Please try again"
	msgInvalidResponse  = "Unexpected response from the server"
	msgInFlight         = "Please wait for the current request to finish"
	msgInvalidLogin     = "Invalid email or password"
	msgGeneric          = "Something went wrong"
)

// FormError is a submitted form that failed local validation before any
// request was sent.
type FormError struct {
	Err error
}

func (e *FormError) Error() string {
	return "invalid form: " + e.Err.Error()
}

func (e *FormError) Unwrap() error {
	return apperrors.ErrInvalidRequest
}

// UserMessage turns a gateway error into the sentence shown to the user.
// Backend rejections are shown verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var fe *FormError
	if errors.As(err, &fe) {
		return fe.Err.Error()
	}

	var se *backend.StatusError
	if errors.As(err, &se) && se.Rejected() {
		return se.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrOperationInFlight):
		return msgInFlight
	case errors.Is(err, apperrors.ErrUnknownRole):
		return guard.MsgUnknownRole
	case errors.Is(err, apperrors.ErrInvalidResponse):
		return msgInvalidResponse
	case errors.Is(err, apperrors.ErrTransportFailure):
		return msgTransportFailure
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return msgInvalidLogin
	default:
		return msgGeneric
	}
}
