package mocks

import (
	"context"
	"time"

	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/internal/repository"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

type PaymentTransactionRepository struct {
	mock.Mock
}

func (p *PaymentTransactionRepository) Create(ctx context.Context, tx *model.PaymentTransaction) error {
	args := p.Called(ctx, tx)
	return args.Error(0)
}

func (p *PaymentTransactionRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.PaymentTransaction, error) {
	args := p.Called(ctx, identifier)
	tx, _ := args.Get(0).(*model.PaymentTransaction)
	return tx, args.Error(1)
}

func (p *PaymentTransactionRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]model.PaymentTransaction, error) {
	args := p.Called(ctx, userID, limit)
	txs, _ := args.Get(0).([]model.PaymentTransaction)
	return txs, args.Error(1)
}

func (p *PaymentTransactionRepository) MarkPending(ctx context.Context, identifier, redirectURL string, raw datatypes.JSON) error {
	args := p.Called(ctx, identifier, redirectURL, raw)
	return args.Error(0)
}

func (p *PaymentTransactionRepository) Resolve(ctx context.Context, identifier string, transition repository.Transition) (bool, error) {
	args := p.Called(ctx, identifier, transition)
	return args.Bool(0), args.Error(1)
}

func (p *PaymentTransactionRepository) SaveRawResponse(ctx context.Context, identifier string, raw datatypes.JSON) (bool, error) {
	args := p.Called(ctx, identifier, raw)
	return args.Bool(0), args.Error(1)
}

func (p *PaymentTransactionRepository) FindUnpublishedTerminal(ctx context.Context, limit int) ([]model.PaymentTransaction, error) {
	args := p.Called(ctx, limit)
	txs, _ := args.Get(0).([]model.PaymentTransaction)
	return txs, args.Error(1)
}

func (p *PaymentTransactionRepository) MarkPublished(ctx context.Context, identifier string, publishedAt time.Time) error {
	args := p.Called(ctx, identifier, publishedAt)
	return args.Error(0)
}
