package paymentgateway

import (
	"errors"
	"net/http"
)

const (
	ErrCodeTimeout         = "TIMEOUT"
	ErrCodeUnreachable     = "UNREACHABLE"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeUnavailable     = "UNAVAILABLE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeServerError     = "SERVER_ERROR"
	ErrCodeInvalidResponse = "INVALID_RESPONSE"
)

var (
	ErrTimeout         = errors.New(ErrCodeTimeout)
	ErrUnreachable     = errors.New(ErrCodeUnreachable)
	ErrUnauthorized    = errors.New(ErrCodeUnauthorized)
	ErrUnavailable     = errors.New(ErrCodeUnavailable)
	ErrRateLimited     = errors.New(ErrCodeRateLimited)
	ErrServerError     = errors.New(ErrCodeServerError)
	ErrInvalidResponse = errors.New(ErrCodeInvalidResponse)
)

var statusErrorMap = map[int]error{
	http.StatusUnauthorized:       ErrUnauthorized,
	http.StatusForbidden:          ErrUnauthorized,
	http.StatusTooManyRequests:    ErrRateLimited,
	http.StatusServiceUnavailable: ErrUnavailable,
}

// MapStatusToError is used only when a non-2xx response carries no
// decodable body.
func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}

// IsTransportError reports failures where the gateway was never heard from.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnreachable)
}
