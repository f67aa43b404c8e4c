package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/storefront-payments/internal/cache"
	"github.com/Behyna/storefront-payments/internal/constants"
	"github.com/Behyna/storefront-payments/internal/metrics"
	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/internal/repository"
	"go.uber.org/zap"
)

const topUpKeyPrefix = "topup-"

// LedgerService owns every terminal transition of a payment transaction.
type LedgerService interface {
	Complete(ctx context.Context, cmd CompletePaymentCommand) (TransitionResult, error)
	Fail(ctx context.Context, cmd FailPaymentCommand) (TransitionResult, error)
}

type ledgerService struct {
	txManager   repository.TxManager
	paymentRepo repository.PaymentTransactionRepository
	profileRepo repository.ProfileRepository
	balanceRepo repository.BalanceTransactionRepository
	cache       cache.TransactionCache
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewLedgerService(txManager repository.TxManager, paymentRepo repository.PaymentTransactionRepository,
	profileRepo repository.ProfileRepository, balanceRepo repository.BalanceTransactionRepository,
	cache cache.TransactionCache, logger *zap.Logger, metrics *metrics.Metrics) LedgerService {
	return &ledgerService{
		txManager:   txManager,
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
		balanceRepo: balanceRepo,
		cache:       cache,
		logger:      logger,
		metrics:     metrics,
	}
}

// Complete marks the transaction completed and credits its owner in one
// database transaction. Losing the race to another caller, or finding the
// row already terminal, yields Performed=false and no error.
func (s *ledgerService) Complete(ctx context.Context, cmd CompletePaymentCommand) (TransitionResult, error) {
	completedAt := time.Now().UTC()
	result := TransitionResult{Status: model.PaymentStatusCompleted}

	var credited *model.PaymentTransaction

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		performed, err := s.paymentRepo.Resolve(ctx, cmd.Identifier, repository.Transition{
			Status:               model.PaymentStatusCompleted,
			Gateway:              cmd.Gateway,
			GatewayTransactionID: cmd.GatewayTransactionID,
			RawResponse:          cmd.RawResponse,
			CompletedAt:          &completedAt,
		})
		if err != nil {
			return err
		}

		if !performed {
			return nil
		}

		result.Performed = true

		tx, err := s.paymentRepo.GetByIdentifier(ctx, cmd.Identifier)
		if err != nil {
			return err
		}

		key := topUpKeyPrefix + tx.Identifier
		existing, err := s.balanceRepo.GetByIdempotencyKey(ctx, model.TxTypeIncrease, key)
		if err == nil {
			s.logger.Warn("Balance already credited for transaction",
				zap.String("identifier", tx.Identifier),
				zap.Int64("balanceTransactionID", existing.TransactionID))
			return nil
		}
		if !errors.Is(err, repository.ErrBalanceTransactionNotFound) {
			return err
		}

		entry := model.BalanceTransaction{
			UserID:         tx.UserID,
			TxType:         model.TxTypeIncrease,
			IdempotencyKey: key,
			Amount:         tx.Credits,
			Reference:      tx.Identifier,
			CreatedAt:      completedAt,
		}
		if err := s.balanceRepo.Create(ctx, &entry); err != nil {
			return err
		}

		if err := s.profileRepo.IncreaseBalance(ctx, tx.UserID, tx.Credits); err != nil {
			return err
		}

		credited = tx
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to complete payment",
			zap.String("identifier", cmd.Identifier),
			zap.Error(err))
		return TransitionResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	if !result.Performed {
		s.logger.Info("Payment already processed", zap.String("identifier", cmd.Identifier))
		return result, nil
	}

	s.invalidate(ctx, cmd.Identifier)

	if credited != nil {
		s.metrics.RecordCreditsGranted(credited.Credits.InexactFloat64())
		s.logger.Info("Payment completed and balance credited",
			zap.String("identifier", credited.Identifier),
			zap.String("userID", credited.UserID),
			zap.String("credits", credited.Credits.String()),
			zap.String("gatewayTransactionID", cmd.GatewayTransactionID))
	}

	return result, nil
}

// Fail records a terminal failure or cancellation. It never touches balances.
func (s *ledgerService) Fail(ctx context.Context, cmd FailPaymentCommand) (TransitionResult, error) {
	status := model.PaymentStatusFailed
	if cmd.Cancelled {
		status = model.PaymentStatusCancelled
	}

	performed, err := s.paymentRepo.Resolve(ctx, cmd.Identifier, repository.Transition{
		Status:      status,
		Gateway:     cmd.Gateway,
		RawResponse: cmd.RawResponse,
	})
	if err != nil {
		s.logger.Error("Failed to record payment failure",
			zap.String("identifier", cmd.Identifier),
			zap.String("status", string(status)),
			zap.Error(err))
		return TransitionResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	if performed {
		s.invalidate(ctx, cmd.Identifier)
		s.logger.Info("Payment marked as not completed",
			zap.String("identifier", cmd.Identifier),
			zap.String("status", string(status)))
	}

	return TransitionResult{Performed: performed, Status: status}, nil
}

func (s *ledgerService) invalidate(ctx context.Context, identifier string) {
	if err := s.cache.Invalidate(ctx, identifier); err != nil {
		s.logger.Warn("Failed to invalidate cached transaction",
			zap.String("identifier", identifier),
			zap.Error(err))
	}
}
