package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Behyna/storefront-payments/internal/constants"
	"github.com/Behyna/storefront-payments/internal/mocks"
	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/internal/repository"
	"github.com/Behyna/storefront-payments/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLedgerService_Complete(t *testing.T) {
	t.Run("credits owner once", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedProfile(t, "user-1", "Ada Lovelace", 100)
		f.seedTransaction(t, "TPuser1000000000001", "user-1", 500, model.PaymentStatusPending)

		result, err := f.ledger.Complete(context.Background(), service.CompletePaymentCommand{
			Identifier:           "TPuser1000000000001",
			Gateway:              "esewa",
			GatewayTransactionID: "TX123",
		})

		require.NoError(t, err)
		assert.True(t, result.Performed)
		assert.Equal(t, model.PaymentStatusCompleted, result.Status)
		assert.True(t, f.balance(t, "user-1").Equal(decimal.NewFromInt(600)))
		assert.Equal(t, int64(1), f.balanceEntries(t))

		tx, err := f.payments.GetByIdentifier(context.Background(), "TPuser1000000000001")
		require.NoError(t, err)
		assert.Equal(t, "TX123", *tx.GatewayTransactionID)
		assert.Equal(t, "esewa", *tx.Gateway)
		assert.NotNil(t, tx.CompletedAt)

		entry, err := f.balances.GetByIdempotencyKey(context.Background(), model.TxTypeIncrease, "topup-TPuser1000000000001")
		require.NoError(t, err)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("concurrent completions credit exactly once", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedProfile(t, "user-2", "Grace Hopper", 0)
		f.seedTransaction(t, "TPuser2000000000002", "user-2", 500, model.PaymentStatusPending)

		var (
			wg        sync.WaitGroup
			performed atomic.Int32
			failures  atomic.Int32
		)

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := f.ledger.Complete(context.Background(), service.CompletePaymentCommand{
					Identifier:           "TPuser2000000000002",
					GatewayTransactionID: "TX-CONCURRENT",
				})
				if err != nil {
					failures.Add(1)
					return
				}
				if result.Performed {
					performed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Zero(t, failures.Load())
		assert.Equal(t, int32(1), performed.Load())
		assert.True(t, f.balance(t, "user-2").Equal(decimal.NewFromInt(500)))
		assert.Equal(t, int64(1), f.balanceEntries(t))
		assert.Equal(t, model.PaymentStatusCompleted, f.status(t, "TPuser2000000000002"))
	})

	t.Run("already completed is a no-op", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedProfile(t, "user-3", "Alan Turing", 0)
		f.seedTransaction(t, "TPuser3000000000003", "user-3", 200, model.PaymentStatusPending)

		first, err := f.ledger.Complete(context.Background(), service.CompletePaymentCommand{Identifier: "TPuser3000000000003"})
		require.NoError(t, err)
		second, err := f.ledger.Complete(context.Background(), service.CompletePaymentCommand{Identifier: "TPuser3000000000003"})
		require.NoError(t, err)

		assert.True(t, first.Performed)
		assert.False(t, second.Performed)
		assert.True(t, f.balance(t, "user-3").Equal(decimal.NewFromInt(200)))
	})

	t.Run("unknown identifier performs nothing", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedProfile(t, "user-4", "Edsger Dijkstra", 50)

		result, err := f.ledger.Complete(context.Background(), service.CompletePaymentCommand{Identifier: "TPmissing"})

		require.NoError(t, err)
		assert.False(t, result.Performed)
		assert.True(t, f.balance(t, "user-4").Equal(decimal.NewFromInt(50)))
		assert.Zero(t, f.balanceEntries(t))
	})

	t.Run("user without profile is credited", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedTransaction(t, "TPnewcomer000000005", "newcomer", 300, model.PaymentStatusPending)

		for delivery := 1; delivery <= 3; delivery++ {
			result, err := f.ledger.Complete(context.Background(), service.CompletePaymentCommand{
				Identifier:           "TPnewcomer000000005",
				GatewayTransactionID: "TX300",
			})
			require.NoError(t, err, "delivery %d", delivery)
			assert.Equal(t, delivery == 1, result.Performed, "delivery %d", delivery)
		}

		assert.Equal(t, model.PaymentStatusCompleted, f.status(t, "TPnewcomer000000005"))
		assert.True(t, f.balance(t, "newcomer").Equal(decimal.NewFromInt(300)))
		assert.Equal(t, int64(1), f.balanceEntries(t))
	})

	t.Run("existing audit entry skips the credit", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedProfile(t, "user-6", "Barbara Liskov", 0)
		f.seedTransaction(t, "TPuser6000000000006", "user-6", 100, model.PaymentStatusPending)
		require.NoError(t, f.balances.Create(context.Background(), &model.BalanceTransaction{
			UserID:         "user-6",
			TxType:         model.TxTypeIncrease,
			IdempotencyKey: "topup-TPuser6000000000006",
			Amount:         decimal.NewFromInt(100),
		}))

		result, err := f.ledger.Complete(context.Background(), service.CompletePaymentCommand{Identifier: "TPuser6000000000006"})

		require.NoError(t, err)
		assert.True(t, result.Performed)
		assert.True(t, f.balance(t, "user-6").IsZero())
		assert.Equal(t, int64(1), f.balanceEntries(t))
	})
}

func TestLedgerService_Fail(t *testing.T) {
	t.Run("completed then failed stays completed", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedProfile(t, "user-7", "Ken Thompson", 0)
		f.seedTransaction(t, "TPuser7000000000007", "user-7", 500, model.PaymentStatusPending)

		_, err := f.ledger.Complete(context.Background(), service.CompletePaymentCommand{Identifier: "TPuser7000000000007"})
		require.NoError(t, err)

		result, err := f.ledger.Fail(context.Background(), service.FailPaymentCommand{Identifier: "TPuser7000000000007"})

		require.NoError(t, err)
		assert.False(t, result.Performed)
		assert.Equal(t, model.PaymentStatusCompleted, f.status(t, "TPuser7000000000007"))
		assert.True(t, f.balance(t, "user-7").Equal(decimal.NewFromInt(500)))
	})

	t.Run("cancellation is recorded", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedTransaction(t, "TPuser8000000000008", "user-8", 500, model.PaymentStatusPending)

		result, err := f.ledger.Fail(context.Background(), service.FailPaymentCommand{
			Identifier: "TPuser8000000000008",
			Cancelled:  true,
		})

		require.NoError(t, err)
		assert.True(t, result.Performed)
		assert.Equal(t, model.PaymentStatusCancelled, result.Status)
		assert.Equal(t, model.PaymentStatusCancelled, f.status(t, "TPuser8000000000008"))
	})

	t.Run("initiated row can fail", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedTransaction(t, "TPuser9000000000009", "user-9", 10, model.PaymentStatusInitiated)

		result, err := f.ledger.Fail(context.Background(), service.FailPaymentCommand{Identifier: "TPuser9000000000009"})

		require.NoError(t, err)
		assert.True(t, result.Performed)
		assert.Equal(t, model.PaymentStatusFailed, f.status(t, "TPuser9000000000009"))
	})

	t.Run("storage error", func(t *testing.T) {
		payments := &mocks.PaymentTransactionRepository{}
		cache := &mocks.TransactionCache{}
		ledger := service.NewLedgerService(&mocks.TxManager{}, payments, &mocks.ProfileRepository{},
			&mocks.BalanceTransactionRepository{}, cache, zap.NewNop(), newTestMetrics())

		payments.On("Resolve", mock.Anything, "TPx", mock.Anything).Return(false, assert.AnError)

		_, err := ledger.Fail(context.Background(), service.FailPaymentCommand{Identifier: "TPx"})

		assert.Equal(t, constants.ErrCodeInternalError, serviceErrorCode(t, err))
		cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("transition invalidates cache", func(t *testing.T) {
		payments := &mocks.PaymentTransactionRepository{}
		cache := &mocks.TransactionCache{}
		ledger := service.NewLedgerService(&mocks.TxManager{}, payments, &mocks.ProfileRepository{},
			&mocks.BalanceTransactionRepository{}, cache, zap.NewNop(), newTestMetrics())

		payments.On("Resolve", mock.Anything, "TPx", mock.MatchedBy(func(tr repository.Transition) bool {
			return tr.Status == model.PaymentStatusFailed
		})).Return(true, nil)
		cache.On("Invalidate", mock.Anything, "TPx").Return(assert.AnError)

		result, err := ledger.Fail(context.Background(), service.FailPaymentCommand{Identifier: "TPx"})

		require.NoError(t, err)
		assert.True(t, result.Performed)
		cache.AssertExpectations(t)
	})
}
