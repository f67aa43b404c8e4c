package mocks

import (
	"context"

	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/stretchr/testify/mock"
)

type BalanceTransactionRepository struct {
	mock.Mock
}

func (b *BalanceTransactionRepository) Create(ctx context.Context, tx *model.BalanceTransaction) error {
	args := b.Called(ctx, tx)
	return args.Error(0)
}

func (b *BalanceTransactionRepository) GetByIdempotencyKey(ctx context.Context, txType model.TxType, idempotencyKey string) (*model.BalanceTransaction, error) {
	args := b.Called(ctx, txType, idempotencyKey)
	tx, _ := args.Get(0).(*model.BalanceTransaction)
	return tx, args.Error(1)
}
