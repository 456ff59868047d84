package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies where an error came from and how it is surfaced.
type Kind int

const (
	// Validation errors are local and never reach the network.
	Validation Kind = iota
	// Transport covers unreachable backends, timeouts and undecodable bodies.
	Transport
	// Application is a backend answer with success:false.
	Application
	// Rendering is a malformed result that can only be drawn partially.
	Rendering
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Transport:
		return "transport"
	case Application:
		return "application"
	case Rendering:
		return "rendering"
	}
	return "unknown"
}

// Error codes
const (
	CodeMissingField   = "MISSING_FIELD"
	CodeInvalidMode    = "INVALID_MODE"
	CodeNetwork        = "NETWORK_ERROR"
	CodeTimeout        = "TIMEOUT"
	CodeBadStatus      = "BAD_STATUS"
	CodeMalformedBody  = "MALFORMED_BODY"
	CodeBackendFailure = "BACKEND_FAILURE"
	CodeEmptyRoute     = "EMPTY_ROUTE"
	CodeBadCoordinate  = "BAD_COORDINATE"
)

// User-facing fallbacks
const (
	MsgMissingField    = "Please fill in both departure and destination"
	MsgRouteFailed     = "Could not compute the itinerary"
	MsgConnectionError = "Could not connect to the server"
)

type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

// ErrMissingField is returned when depart or destination is blank.
var ErrMissingField = New(Validation, CodeMissingField, MsgMissingField)

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// KindOf reports the kind of err, or false if err is not an AppError.
func KindOf(err error) (Kind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// UserMessage returns the text shown on the error panel.
// Transport detail is suppressed and replaced with the generic connection message.
func UserMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return MsgConnectionError
	}
	switch appErr.Kind {
	case Validation, Application:
		if appErr.Message != "" {
			return appErr.Message
		}
		return MsgRouteFailed
	case Transport:
		return MsgConnectionError
	}
	return MsgRouteFailed
}
