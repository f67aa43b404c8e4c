package mocks

import (
	"context"

	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/internal/service"
	"github.com/stretchr/testify/mock"
)

type LedgerService struct {
	mock.Mock
}

func (l *LedgerService) Complete(ctx context.Context, cmd service.CompletePaymentCommand) (service.TransitionResult, error) {
	args := l.Called(ctx, cmd)
	return args.Get(0).(service.TransitionResult), args.Error(1)
}

func (l *LedgerService) Fail(ctx context.Context, cmd service.FailPaymentCommand) (service.TransitionResult, error) {
	args := l.Called(ctx, cmd)
	return args.Get(0).(service.TransitionResult), args.Error(1)
}

type PaymentService struct {
	mock.Mock
}

func (p *PaymentService) Initiate(ctx context.Context, cmd service.InitiatePaymentCommand) (service.InitiatePaymentResult, error) {
	args := p.Called(ctx, cmd)
	return args.Get(0).(service.InitiatePaymentResult), args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func (n *NotificationService) Handle(ctx context.Context, cmd service.HandleNotificationCommand) (service.NotificationResult, error) {
	args := n.Called(ctx, cmd)
	return args.Get(0).(service.NotificationResult), args.Error(1)
}

type QueryService struct {
	mock.Mock
}

func (q *QueryService) GetTransaction(ctx context.Context, userID, identifier string) (*model.PaymentTransaction, error) {
	args := q.Called(ctx, userID, identifier)
	tx, _ := args.Get(0).(*model.PaymentTransaction)
	return tx, args.Error(1)
}

func (q *QueryService) ListTransactions(ctx context.Context, query service.ListPaymentsQuery) ([]model.PaymentTransaction, error) {
	args := q.Called(ctx, query)
	txs, _ := args.Get(0).([]model.PaymentTransaction)
	return txs, args.Error(1)
}

func (q *QueryService) GetBalance(ctx context.Context, userID string) (service.BalanceResult, error) {
	args := q.Called(ctx, userID)
	return args.Get(0).(service.BalanceResult), args.Error(1)
}

type PaymentEventService struct {
	mock.Mock
}

func (p *PaymentEventService) FindEventsToPublish(ctx context.Context, limit int) ([]service.PaymentEvent, error) {
	args := p.Called(ctx, limit)
	events, _ := args.Get(0).([]service.PaymentEvent)
	return events, args.Error(1)
}

func (p *PaymentEventService) MarkEventPublished(ctx context.Context, identifier string) error {
	args := p.Called(ctx, identifier)
	return args.Error(0)
}
