package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError by where the failure happened.
type Kind string

const (
	KindSystem       Kind = "system"
	KindValidation   Kind = "validation"
	KindEmptyResult  Kind = "empty_result"
	KindRemoteStatus Kind = "remote_status"
	KindNetwork      Kind = "network"
	KindRequestSetup Kind = "request_setup"
	KindRedis        Kind = "redis"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"

	ValidationMessage     = "Please enter a question or dilemma to get an idea!"
	EmptyResultMessage    = "No idea generated. Please try again."
	RemoteFallbackMessage = "Something went wrong on the server."
	NetworkMessage        = "Network Error: No response received from API. Check your internet connection or API endpoint."
)

// AppError wraps an underlying error with a kind, an HTTP status and a safe message.
// Message is what the user sees; Err stays in logs.
type AppError struct {
	Kind    Kind
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new system AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Kind:    KindSystem,
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Validation reports unusable user input; nothing was sent upstream.
func Validation() *AppError {
	return &AppError{Kind: KindValidation, Status: http.StatusBadRequest, Message: ValidationMessage}
}

// EmptyResult reports a successful call that produced no candidates.
func EmptyResult() *AppError {
	return &AppError{Kind: KindEmptyResult, Status: http.StatusBadGateway, Message: EmptyResultMessage}
}

// RemoteStatus reports an error status returned by the generation API.
// An empty message is replaced by a generic one.
func RemoteStatus(err error, code int, message string) *AppError {
	if message == "" {
		message = RemoteFallbackMessage
	}
	return &AppError{
		Kind:    KindRemoteStatus,
		Err:     err,
		Status:  http.StatusBadGateway,
		Message: fmt.Sprintf("API Error: %d - %s", code, message),
	}
}

// Network reports a request that was sent but never answered.
func Network(err error) *AppError {
	return &AppError{Kind: KindNetwork, Err: err, Status: http.StatusGatewayTimeout, Message: NetworkMessage}
}

// RequestSetup reports a request that could not be built or sent.
func RequestSetup(err error) *AppError {
	cause := "unknown error"
	if err != nil {
		cause = err.Error()
	}
	return &AppError{
		Kind:    KindRequestSetup,
		Err:     err,
		Status:  http.StatusInternalServerError,
		Message: "Request Setup Error: " + cause,
	}
}

// KindOf returns the kind of the first AppError in err's chain, or KindSystem.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindSystem
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return t.Kind == e.Kind
	}
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return errors.As(e.Err, target)
}
