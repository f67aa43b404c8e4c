package service

import (
	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/shopspring/decimal"
)

type InitiatePaymentResult struct {
	Identifier  string
	RedirectURL string
}

// TransitionResult reports whether this call moved the row into Status.
// Performed is false when another caller already resolved it.
type TransitionResult struct {
	Performed bool
	Status    model.PaymentStatus
}

type NotificationResult struct {
	Identifier string
	Bucket     StatusBucket
	Performed  bool
	Message    string
}

type BalanceResult struct {
	UserID  string
	Balance decimal.Decimal
}
