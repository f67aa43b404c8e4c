package constants

type Suggestion string

const (
	SuggestionManual  Suggestion = "manual"
	SuggestionRetry   Suggestion = "retry"
	SuggestionSupport Suggestion = "support"
)

// PaymentError is the user-facing explanation attached to a failed initiation.
type PaymentError struct {
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Suggestion  Suggestion `json:"suggestion"`
}

var paymentErrors = map[string]PaymentError{
	ErrCodeAuth: {
		Title:       "Sign in required",
		Description: "Your session has expired. Sign in again and retry the payment.",
		Suggestion:  SuggestionRetry,
	},
	ErrCodeInvalidAmount: {
		Title:       "Invalid amount",
		Description: "Enter an amount between 1 and 100000.",
		Suggestion:  SuggestionRetry,
	},
	ErrCodeValidationFailed: {
		Title:       "Invalid request",
		Description: "Some payment details are missing or malformed. Please retry.",
		Suggestion:  SuggestionRetry,
	},
	ErrCodeProfileLookupFailed: {
		Title:       "Profile unavailable",
		Description: "We could not load your profile. Please try again in a moment.",
		Suggestion:  SuggestionRetry,
	},
	ErrCodeGatewayBalance: {
		Title:       "Online payment unavailable",
		Description: "Online payments are temporarily unavailable. Please top up manually.",
		Suggestion:  SuggestionManual,
	},
	ErrCodeConfig: {
		Title:       "Payment setup issue",
		Description: "Online payments are not configured correctly. Please top up manually.",
		Suggestion:  SuggestionManual,
	},
	ErrCodeNetwork: {
		Title:       "Connection problem",
		Description: "We could not reach the payment provider. Check your connection and retry.",
		Suggestion:  SuggestionRetry,
	},
	ErrCodeMaintenance: {
		Title:       "Payment provider maintenance",
		Description: "The payment provider is under maintenance. Please top up manually or retry later.",
		Suggestion:  SuggestionManual,
	},
	ErrCodeLimitExceeded: {
		Title:       "Payment limit reached",
		Description: "This payment exceeds the provider limit. Please top up manually.",
		Suggestion:  SuggestionManual,
	},
	ErrCodeUnknown: {
		Title:       "Payment failed",
		Description: "The payment provider rejected the request. Please retry.",
		Suggestion:  SuggestionRetry,
	},
	ErrCodeInternalError: {
		Title:       "Something went wrong",
		Description: "We could not record your payment. Please contact support.",
		Suggestion:  SuggestionSupport,
	},
}

// GetPaymentError falls back to the internal error entry for unknown codes.
func GetPaymentError(code string) PaymentError {
	pe, exists := paymentErrors[code]
	if !exists {
		pe = paymentErrors[ErrCodeInternalError]
		code = ErrCodeInternalError
	}

	pe.Code = code
	return pe
}
