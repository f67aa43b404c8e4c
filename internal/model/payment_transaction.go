package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// TerminalStatuses never transition again.
var TerminalStatuses = []PaymentStatus{
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusCancelled,
}

func (s PaymentStatus) IsTerminal() bool {
	for _, terminal := range TerminalStatuses {
		if s == terminal {
			return true
		}
	}
	return false
}

type PaymentTransaction struct {
	ID                   int64           `gorm:"primaryKey;autoIncrement;column:id;<-:create" json:"-"`
	Identifier           string          `gorm:"column:identifier;type:varchar(20);uniqueIndex;not null;<-:create" json:"identifier"`
	UserID               string          `gorm:"column:user_id;type:varchar(64);index:idx_payment_tx_user_created,priority:1;not null;<-:create" json:"user_id"`
	Amount               decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null;<-:create" json:"amount"`
	Credits              decimal.Decimal `gorm:"column:credits;type:decimal(14,2);not null;<-:create" json:"credits"`
	Currency             string          `gorm:"column:currency;type:varchar(8);not null;<-:create" json:"currency"`
	Status               PaymentStatus   `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	RedirectURL          *string         `gorm:"column:redirect_url;type:text" json:"redirect_url,omitempty"`
	Gateway              *string         `gorm:"column:gateway;type:varchar(64)" json:"gateway,omitempty"`
	GatewayTransactionID *string         `gorm:"column:gateway_transaction_id;type:varchar(128)" json:"gateway_transaction_id,omitempty"`
	RawGatewayResponse   datatypes.JSON  `gorm:"column:raw_gateway_response" json:"-"`
	Published            bool            `gorm:"column:published;default:false;not null" json:"-"`
	PublishedAt          *time.Time      `gorm:"column:published_at" json:"-"`
	CreatedAt            time.Time       `gorm:"column:created_at;index:idx_payment_tx_user_created,priority:2" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"column:updated_at" json:"updated_at"`
	CompletedAt          *time.Time      `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
