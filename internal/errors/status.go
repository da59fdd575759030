package errors

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// FromStatus maps a backend HTTP status and message to an AppError.
// An empty message falls back to the status text.
func FromStatus(status int, message string) *AppError {
	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return newError(ErrCodeValidation, msg)
	case status == http.StatusUnauthorized:
		return newError(ErrCodeUnauthorized, msg)
	case status == http.StatusForbidden:
		return newError(ErrCodeForbidden, msg)
	case status == http.StatusNotFound:
		return newError(ErrCodeNotFound, msg)
	case status == http.StatusConflict:
		return newError(ErrCodeConflict, msg)
	case status == http.StatusGatewayTimeout, status == http.StatusRequestTimeout:
		return newError(ErrCodeTimeout, msg)
	default:
		return newError(ErrCodeUpstream, msg)
	}
}

// MapTransportError maps a client-side transport failure to an AppError.
// Context errors keep their own codes; everything else becomes Upstream.
// Errors that are already AppErrors are returned unchanged.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: "Backend unavailable",
		Cause:   err,
	}
}

// StatusCoder is implemented by errors that carry an upstream HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// UpstreamStatus returns the backend HTTP status carried by err, or 0 when the
// failure never produced a response (transport errors, local validation).
func UpstreamStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// HTTPStatus returns the HTTP status a handler should reply with for err.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUpstream:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCanceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}
