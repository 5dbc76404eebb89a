package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// TransportError covers network failures and unclassified non-2xx
// responses from the orders service.
type TransportError struct {
	Msg string
	Err error
}

func (e *TransportError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is the server rejecting a malformed draft (400/422).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError is the server refusing an illegal status transition or
// a cancellation of a shipped/delivered/cancelled order (409).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NotFoundError is the server reporting an unknown order (404).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// Message returns the display string for any gateway error, which is
// what the store surfaces to the interface layer.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// errorBody is the JSON error envelope the service emits.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// classify maps a non-2xx response to the error taxonomy, extracting
// the message from the body when one is present.
func classify(status int, body []byte, fallback string) error {
	msg := fallback
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			msg = parsed.Message
		case parsed.Error != "":
			msg = parsed.Error
		}
	}

	switch status {
	case http.StatusNotFound:
		return &NotFoundError{Msg: msg}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Msg: msg}
	case http.StatusConflict:
		return &ConflictError{Msg: msg}
	default:
		return &TransportError{Msg: fmt.Sprintf("%s (status %d)", msg, status)}
	}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
