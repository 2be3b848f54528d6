package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
)

// StatusError is a non-2xx answer from the backend. Message is the
// backend's own wording, suitable for showing to the user verbatim.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap classifies server-side failures as transport failures; 4xx answers
// are the backend rejecting the request.
func (e *StatusError) Unwrap() error {
	if e.StatusCode >= 500 {
		return apperrors.ErrTransportFailure
	}
	return apperrors.ErrInvalidRequest
}

// Rejected reports whether the backend refused the request (4xx)
func (e *StatusError) Rejected() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Unauthenticated reports a 401
func (e *StatusError) Unauthenticated() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func newStatusError(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		se.Message = body.Message
		if se.Message == "" {
			se.Message = body.Error
		}
	}
	if se.Message == "" {
		se.Message = strings.TrimSpace(string(raw))
	}
	if se.Message == "" {
		se.Message = http.StatusText(resp.StatusCode)
	}
	return se
}
