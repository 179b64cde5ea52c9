package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("already exists")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError is rejected before any store access and shown to the caller as is.
type ValidationError struct {
	Message string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Message + ": " + e.Reason
	}
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// NewBlockedError is used by the content filter: the message names what was blocked,
// the reason says why.
func NewBlockedError(msg, reason string) error {
	return &ValidationError{Message: msg, Reason: reason}
}

// AccessError carries a caller-facing message that must not reveal whether the
// target exists.
type AccessError struct {
	Status  int
	Message string
}

func (e *AccessError) Error() string {
	return e.Message
}

func NotFoundOrNotOwned(msg string) error {
	return &AccessError{Status: http.StatusNotFound, Message: msg}
}

func NotOwned(msg string) error {
	return &AccessError{Status: http.StatusForbidden, Message: msg}
}

func HTTPStatus(err error) int {
	var ve *ValidationError
	var ae *AccessError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ae):
		return ae.Status
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// WriteError renders err with the status HTTPStatus picks for it. Store failures
// are logged and returned as a generic message.
func WriteError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	body := map[string]string{}

	var ve *ValidationError
	var ae *AccessError
	switch {
	case errors.As(err, &ve):
		body["error"] = ve.Message
		if ve.Reason != "" {
			body["reason"] = ve.Reason
		}
	case errors.As(err, &ae):
		body["error"] = ae.Message
	case status == http.StatusInternalServerError:
		log.Printf("Request failed: %v", err)
		body["error"] = "Server error"
	default:
		body["error"] = err.Error()
	}

	WriteJSON(w, status, body)
}
