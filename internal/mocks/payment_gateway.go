package mocks

import (
	"context"

	"github.com/Behyna/storefront-payments/pkg/paymentgateway"
	"github.com/stretchr/testify/mock"
)

type PaymentGateway struct {
	mock.Mock
}

func (p *PaymentGateway) Checkout(ctx context.Context, request paymentgateway.CheckoutRequest) (paymentgateway.CheckoutResponse, error) {
	args := p.Called(ctx, request)
	return args.Get(0).(paymentgateway.CheckoutResponse), args.Error(1)
}
