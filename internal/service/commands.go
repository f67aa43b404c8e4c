package service

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type InitiatePaymentCommand struct {
	UserID    string
	Email     string
	Amount    string
	OriginURL string
}

type HandleNotificationCommand struct {
	Body        []byte
	ContentType string
}

type CompletePaymentCommand struct {
	Identifier           string
	Gateway              string
	GatewayTransactionID string
	RawResponse          datatypes.JSON
}

type FailPaymentCommand struct {
	Identifier  string
	Cancelled   bool
	Gateway     string
	RawResponse datatypes.JSON
}

type ListPaymentsQuery struct {
	UserID string
	Limit  int
}

// PaymentEvent is the message body published for every terminal transaction.
type PaymentEvent struct {
	Identifier           string          `json:"identifier"`
	UserID               string          `json:"user_id"`
	Status               string          `json:"status"`
	Amount               decimal.Decimal `json:"amount"`
	Credits              decimal.Decimal `json:"credits"`
	Currency             string          `json:"currency"`
	Gateway              string          `json:"gateway,omitempty"`
	GatewayTransactionID string          `json:"gateway_transaction_id,omitempty"`
	CompletedAt          *time.Time      `json:"completed_at,omitempty"`
}
