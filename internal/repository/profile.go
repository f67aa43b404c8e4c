package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("PROFILE_NOT_FOUND")

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
	IncreaseBalance(ctx context.Context, userID string, amount decimal.Decimal) error
}

type profile struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profile{db: db}
}

func (r *profile) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile

	err := GetTx(ctx, r.db).Where("user_id = ?", userID).First(&p).Error
	if err == nil {
		return &p, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}

	return nil, err
}

// IncreaseBalance adds amount in SQL so concurrent credits never overwrite
// each other. A user without a profile row gets one holding amount.
func (r *profile) IncreaseBalance(ctx context.Context, userID string, amount decimal.Decimal) error {
	now := time.Now().UTC()
	row := model.Profile{UserID: userID, Balance: amount, CreatedAt: now, UpdatedAt: now}

	return GetTx(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"balance":    gorm.Expr(row.TableName()+".balance + ?", amount),
			"updated_at": now,
		}),
	}).Create(&row).Error
}
