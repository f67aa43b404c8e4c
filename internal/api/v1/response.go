package v1

import (
	"time"

	"github.com/Behyna/storefront-payments/internal/constants"
	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/shopspring/decimal"
)

type InitiatePaymentResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirect_url"`
	Identifier  string `json:"identifier"`
}

type InitiatePaymentErrorResponse struct {
	Success      bool                   `json:"success"`
	Error        string                 `json:"error"`
	PaymentError constants.PaymentError `json:"payment_error"`
}

type NotificationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type NotificationErrorResponse struct {
	Error string `json:"error"`
}

type TransactionResponse struct {
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

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

type BalanceResponse struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

func newTransactionResponse(tx *model.PaymentTransaction) TransactionResponse {
	return TransactionResponse{
		Identifier:           tx.Identifier,
		Status:               string(tx.Status),
		Amount:               tx.Amount,
		Credits:              tx.Credits,
		Currency:             tx.Currency,
		RedirectURL:          deref(tx.RedirectURL),
		Gateway:              deref(tx.Gateway),
		GatewayTransactionID: deref(tx.GatewayTransactionID),
		CreatedAt:            tx.CreatedAt,
		UpdatedAt:            tx.UpdatedAt,
		CompletedAt:          tx.CompletedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
