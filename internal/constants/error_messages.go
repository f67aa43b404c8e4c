package constants

import "net/http"

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodeAuth                = "AUTH_ERROR"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeProfileLookupFailed = "PROFILE_LOOKUP_FAILED"
	ErrCodeGatewayBalance      = "GATEWAY_BALANCE"
	ErrCodeConfig              = "CONFIG_ERROR"
	ErrCodeNetwork             = "NETWORK_ERROR"
	ErrCodeMaintenance         = "MAINTENANCE"
	ErrCodeLimitExceeded       = "LIMIT_EXCEEDED"
	ErrCodeUnknown             = "UNKNOWN"
	ErrCodeInternalError       = "INTERNAL_ERROR"

	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInvalidPayload      = "INVALID_PAYLOAD"
	ErrCodeMissingIdentifier   = "MISSING_IDENTIFIER"
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeRequest             = "REQUEST_ERROR"
)

const (
	ErrMsgAuth                = "authentication required"
	ErrMsgInvalidAmount       = "amount must be a number between 1 and 100000"
	ErrMsgProfileLookupFailed = "failed to load user profile"
	ErrMsgGatewayBalance      = "payment gateway has insufficient balance"
	ErrMsgConfig              = "payment gateway is misconfigured"
	ErrMsgNetwork             = "payment gateway is unreachable"
	ErrMsgMaintenance         = "payment gateway is under maintenance"
	ErrMsgLimitExceeded       = "payment gateway limit exceeded"
	ErrMsgUnknown             = "payment gateway rejected the request"
	ErrMsgInternalError       = "Internal server error"

	ErrMsgValidationFailed    = "request validation failed"
	ErrMsgInvalidPayload      = "failed to parse notification payload"
	ErrMsgMissingIdentifier   = "missing transaction identifier"
	ErrMsgTransactionNotFound = "transaction not found"
	ErrMsgRequest             = "request could not be processed"
)

const (
	MsgNotificationCompleted = "payment completed"
	MsgNotificationFailed    = "payment failure recorded"
	MsgNotificationProcessed = "transaction already processed"
	MsgNotificationRecorded  = "notification recorded"
)

var errorMessages = map[string]string{
	ErrCodeAuth:                ErrMsgAuth,
	ErrCodeInvalidAmount:       ErrMsgInvalidAmount,
	ErrCodeProfileLookupFailed: ErrMsgProfileLookupFailed,
	ErrCodeGatewayBalance:      ErrMsgGatewayBalance,
	ErrCodeConfig:              ErrMsgConfig,
	ErrCodeNetwork:             ErrMsgNetwork,
	ErrCodeMaintenance:         ErrMsgMaintenance,
	ErrCodeLimitExceeded:       ErrMsgLimitExceeded,
	ErrCodeUnknown:             ErrMsgUnknown,
	ErrCodeInternalError:       ErrMsgInternalError,
	ErrCodeValidationFailed:    ErrMsgValidationFailed,
	ErrCodeInvalidPayload:      ErrMsgInvalidPayload,
	ErrCodeMissingIdentifier:   ErrMsgMissingIdentifier,
	ErrCodeTransactionNotFound: ErrMsgTransactionNotFound,
	ErrCodeRequest:             ErrMsgRequest,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeAuth:
		return http.StatusUnauthorized
	case ErrCodeInvalidAmount, ErrCodeValidationFailed, ErrCodeInvalidPayload, ErrCodeMissingIdentifier,
		ErrCodeRequest:
		return http.StatusBadRequest
	case ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case ErrCodeGatewayBalance, ErrCodeConfig, ErrCodeNetwork, ErrCodeMaintenance,
		ErrCodeLimitExceeded, ErrCodeUnknown:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
