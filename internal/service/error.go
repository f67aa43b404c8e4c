package service

import "errors"

var (
	ErrUnauthenticated   = errors.New("UNAUTHENTICATED")
	ErrInvalidAmount     = errors.New("INVALID_AMOUNT")
	ErrInvalidPayload    = errors.New("INVALID_PAYLOAD")
	ErrMissingIdentifier = errors.New("MISSING_IDENTIFIER")
	ErrGatewayRejected   = errors.New("GATEWAY_REJECTED")
	ErrIdentifierRetries = errors.New("IDENTIFIER_RETRIES_EXHAUSTED")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
