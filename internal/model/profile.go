package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is owned by the auth platform; this service reads the display
// fields and mutates Balance only through payment completion, creating the
// row on first credit when it does not exist yet.
type Profile struct {
	UserID    string          `gorm:"column:user_id;primaryKey;type:varchar(64)" json:"user_id"`
	FullName  string          `gorm:"column:full_name;type:varchar(255)" json:"full_name"`
	Email     string          `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone     string          `gorm:"column:phone;type:varchar(32)" json:"phone"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(14,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
