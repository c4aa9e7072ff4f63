package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation
type Kind string

const (
	// KindValidation means a required input was missing; no request was sent
	KindValidation Kind = "validation"
	// KindAuth means the token was missing or rejected
	KindAuth Kind = "auth"
	// KindServer means the API answered with an error status
	KindServer Kind = "server"
	// KindNetwork means no response was received
	KindNetwork Kind = "network"
	// KindPartialData means a successful response lacked an expected field
	KindPartialData Kind = "partial_data"
)

// Error is returned by every Client operation
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s error (%d): %s", e.Op, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a client error of the given kind
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

// KindOf returns the kind of a client error, or "" for other errors
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// Message returns the text to show a user for err. Server messages are
// shown verbatim.
func Message(err error) string {
	var ce *Error
	if !errors.As(err, &ce) {
		if err == nil {
			return ""
		}
		return "An unexpected error occurred"
	}
	switch ce.Kind {
	case KindValidation, KindServer:
		return ce.Message
	case KindAuth:
		if ce.Message != "" {
			return ce.Message
		}
		return "You are not signed in"
	case KindNetwork:
		return "Could not reach the server"
	default:
		return "The server sent an incomplete response"
	}
}

// apiError is the error body returned by the API. Older endpoints only set
// "error"; "message" wins when both are present.
type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (a apiError) text() string {
	if a.Message != "" {
		return a.Message
	}
	return a.Error
}

func validationError(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

func partialDataError(op, msg string) error {
	return &Error{Kind: KindPartialData, Op: op, Message: msg}
}
