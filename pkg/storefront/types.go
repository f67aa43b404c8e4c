package storefront

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type InitiateRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	OriginURL string          `json:"origin_url"`
}

type InitiateResult struct {
	Identifier  string `json:"identifier"`
	RedirectURL string `json:"redirect_url"`
}

type PaymentError struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

type Transaction struct {
	Identifier           string          `json:"identifier"`
	Status               string          `json:"status"`
	Amount               decimal.Decimal `json:"amount"`
	Credits              decimal.Decimal `json:"credits"`
	Currency             string          `json:"currency"`
	RedirectURL          string          `json:"redirect_url,omitempty"`
	Gateway              string          `json:"gateway,omitempty"`
	GatewayTransactionID string          `json:"gateway_transaction_id,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	CompletedAt          *time.Time      `json:"completed_at,omitempty"`
}

type Balance struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// APIError is a non-2xx answer from the payments API.
type APIError struct {
	StatusCode   int
	Code         string
	Message      string
	PaymentError *PaymentError
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payments api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("payments api: %d: %s", e.StatusCode, e.Message)
}

// Permanent reports errors that retrying the same request cannot fix.
func (e *APIError) Permanent() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

type initiateEnvelope struct {
	Success      bool          `json:"success"`
	Identifier   string        `json:"identifier"`
	RedirectURL  string        `json:"redirect_url"`
	Error        string        `json:"error"`
	PaymentError *PaymentError `json:"payment_error"`
}

type readEnvelope[T any] struct {
	Successful bool   `json:"successful"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	TrackID    string `json:"x_track_id"`
	Result     T      `json:"result"`
}

type transactionList struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}
