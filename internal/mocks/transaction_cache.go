package mocks

import (
	"context"

	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/stretchr/testify/mock"
)

type TransactionCache struct {
	mock.Mock
}

func (c *TransactionCache) Get(ctx context.Context, identifier string) (*model.PaymentTransaction, error) {
	args := c.Called(ctx, identifier)
	tx, _ := args.Get(0).(*model.PaymentTransaction)
	return tx, args.Error(1)
}

func (c *TransactionCache) Set(ctx context.Context, tx *model.PaymentTransaction) error {
	args := c.Called(ctx, tx)
	return args.Error(0)
}

func (c *TransactionCache) Invalidate(ctx context.Context, identifier string) error {
	args := c.Called(ctx, identifier)
	return args.Error(0)
}
