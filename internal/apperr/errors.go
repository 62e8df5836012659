// Package apperr defines the error taxonomy shared by the recipe services
// and its mapping onto HTTP responses.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindStoreUnavailable
	KindGenerationFailed
	KindQuotaExceeded
	KindCatalogUnavailable
	KindMalformedInput
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindStoreUnavailable:
		return "STORE_UNAVAILABLE"
	case KindGenerationFailed:
		return "GENERATION_FAILED"
	case KindQuotaExceeded:
		return "QUOTA_EXCEEDED"
	case KindCatalogUnavailable:
		return "CATALOG_UNAVAILABLE"
	case KindMalformedInput:
		return "MALFORMED_INPUT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error carries a kind, a human readable message and the original cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind. QuotaExceeded also matches
// GenerationFailed since a denied quota is a failed generation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == KindGenerationFailed && e.Kind == KindQuotaExceeded
}

// Sentinels for errors.Is checks.
var (
	ErrStoreUnavailable   = &Error{Kind: KindStoreUnavailable, Message: "recipe store unavailable"}
	ErrGenerationFailed   = &Error{Kind: KindGenerationFailed, Message: "recipe generation failed"}
	ErrQuotaExceeded      = &Error{Kind: KindQuotaExceeded, Message: "generation quota exceeded"}
	ErrCatalogUnavailable = &Error{Kind: KindCatalogUnavailable, Message: "spice catalog unavailable"}
	ErrMalformedInput     = &Error{Kind: KindMalformedInput, Message: "malformed input"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "not found"}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
)

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func StoreUnavailable(err error) *Error {
	return New(KindStoreUnavailable, ErrStoreUnavailable.Message, err)
}

func GenerationFailed(message string, err error) *Error {
	if message == "" {
		message = ErrGenerationFailed.Message
	}
	return New(KindGenerationFailed, message, err)
}

func QuotaExceeded(err error) *Error {
	return New(KindQuotaExceeded, ErrQuotaExceeded.Message, err)
}

func CatalogUnavailable(err error) *Error {
	return New(KindCatalogUnavailable, ErrCatalogUnavailable.Message, err)
}

func MalformedInput(message string) *Error {
	return New(KindMalformedInput, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

// KindOf returns the kind of the first *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error onto a response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindMalformedInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindQuotaExceeded:
		return http.StatusPaymentRequired
	case KindGenerationFailed:
		return http.StatusBadGateway
	case KindCatalogUnavailable, KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the machine readable code for err.
func Code(err error) string {
	return KindOf(err).String()
}

// Message returns the user facing message. Causes of internal errors are not exposed.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
