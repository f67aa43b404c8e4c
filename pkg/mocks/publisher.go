package mocks

import (
	"context"

	"github.com/Behyna/storefront-payments/pkg/mq"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (p *Publisher) Publish(ctx context.Context, queue string, msg mq.Message) error {
	args := p.Called(ctx, queue, msg)
	return args.Error(0)
}

func (p *Publisher) Close() error {
	args := p.Called()
	return args.Error(0)
}
