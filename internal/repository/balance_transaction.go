package repository

import (
	"context"
	"errors"

	"github.com/Behyna/storefront-payments/internal/model"
	"gorm.io/gorm"
)

var (
	ErrTransactionExisted         = errors.New("TRANSACTION_EXISTED")
	ErrBalanceTransactionNotFound = errors.New("BALANCE_TRANSACTION_NOT_FOUND")
)

type BalanceTransactionRepository interface {
	Create(ctx context.Context, tx *model.BalanceTransaction) error
	GetByIdempotencyKey(ctx context.Context, txType model.TxType, idempotencyKey string) (*model.BalanceTransaction, error)
}

type balanceTransaction struct {
	db *gorm.DB
}

func NewBalanceTransactionRepository(db *gorm.DB) BalanceTransactionRepository {
	return &balanceTransaction{db: db}
}

func (t *balanceTransaction) Create(ctx context.Context, tx *model.BalanceTransaction) error {
	err := GetTx(ctx, t.db).Create(tx).Error
	if err == nil {
		return nil
	}

	if isDuplicateKey(err) {
		return ErrTransactionExisted
	}

	return err
}

func (t *balanceTransaction) GetByIdempotencyKey(ctx context.Context, txType model.TxType, idempotencyKey string) (*model.BalanceTransaction, error) {
	var tx model.BalanceTransaction

	err := GetTx(ctx, t.db).Where("tx_type = ? AND idempotency_key = ?", txType, idempotencyKey).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBalanceTransactionNotFound
	}

	return nil, err
}
