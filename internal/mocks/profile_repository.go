package mocks

import (
	"context"

	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type ProfileRepository struct {
	mock.Mock
}

func (p *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	args := p.Called(ctx, userID)
	profile, _ := args.Get(0).(*model.Profile)
	return profile, args.Error(1)
}

func (p *ProfileRepository) IncreaseBalance(ctx context.Context, userID string, amount decimal.Decimal) error {
	args := p.Called(ctx, userID, amount)
	return args.Error(0)
}
