package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxTypeIncrease TxType = "increase"
	TxTypeDecrease TxType = "decrease"
)

type BalanceTransaction struct {
	TransactionID  int64           `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	UserID         string          `gorm:"column:user_id;type:varchar(64);index;not null"`
	TxType         TxType          `gorm:"column:tx_type;type:varchar(20);not null;uniqueIndex:ux_balance_tx_idempotency,priority:1"`
	IdempotencyKey string          `gorm:"column:idempotency_key;type:varchar(64);not null;uniqueIndex:ux_balance_tx_idempotency,priority:2"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null"`
	Reference      string          `gorm:"column:reference;type:varchar(64)"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

func (BalanceTransaction) TableName() string {
	return "balance_transactions"
}
