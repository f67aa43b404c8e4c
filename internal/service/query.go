package service

import (
	"context"
	"errors"

	"github.com/Behyna/storefront-payments/internal/cache"
	"github.com/Behyna/storefront-payments/internal/constants"
	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultHistoryLimit = 20

type QueryOptions struct {
	MaxHistoryPerPage int
}

// QueryService serves the read side used by the client poller and history views.
type QueryService interface {
	GetTransaction(ctx context.Context, userID, identifier string) (*model.PaymentTransaction, error)
	ListTransactions(ctx context.Context, query ListPaymentsQuery) ([]model.PaymentTransaction, error)
	GetBalance(ctx context.Context, userID string) (BalanceResult, error)
}

type queryService struct {
	options     QueryOptions
	paymentRepo repository.PaymentTransactionRepository
	profileRepo repository.ProfileRepository
	cache       cache.TransactionCache
	logger      *zap.Logger
}

func NewQueryService(options QueryOptions, paymentRepo repository.PaymentTransactionRepository,
	profileRepo repository.ProfileRepository, cache cache.TransactionCache, logger *zap.Logger) QueryService {
	if options.MaxHistoryPerPage <= 0 {
		options.MaxHistoryPerPage = 50
	}

	return &queryService{
		options:     options,
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
		cache:       cache,
		logger:      logger,
	}
}

// GetTransaction returns the caller's own transaction. Rows owned by someone
// else are reported as not found.
func (s *queryService) GetTransaction(ctx context.Context, userID, identifier string) (*model.PaymentTransaction, error) {
	if userID == "" {
		return nil, NewServiceError(constants.ErrCodeAuth, ErrUnauthenticated)
	}

	tx, err := s.cache.Get(ctx, identifier)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Transaction cache read failed", zap.String("identifier", identifier), zap.Error(err))
		}

		tx, err = s.paymentRepo.GetByIdentifier(ctx, identifier)
		if err != nil {
			if errors.Is(err, repository.ErrPaymentTransactionNotFound) {
				return nil, NewServiceError(constants.ErrCodeTransactionNotFound, err)
			}

			s.logger.Error("Failed to load transaction", zap.String("identifier", identifier), zap.Error(err))
			return nil, NewServiceError(constants.ErrCodeInternalError, err)
		}

		// Only terminal rows are cached; a pending row read here could land in
		// the cache after a concurrent completion already invalidated it.
		if tx.Status.IsTerminal() {
			if err := s.cache.Set(ctx, tx); err != nil {
				s.logger.Warn("Transaction cache write failed", zap.String("identifier", identifier), zap.Error(err))
			}
		}
	}

	if tx.UserID != userID {
		return nil, NewServiceError(constants.ErrCodeTransactionNotFound, repository.ErrPaymentTransactionNotFound)
	}

	return tx, nil
}

func (s *queryService) ListTransactions(ctx context.Context, query ListPaymentsQuery) ([]model.PaymentTransaction, error) {
	if query.UserID == "" {
		return nil, NewServiceError(constants.ErrCodeAuth, ErrUnauthenticated)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > s.options.MaxHistoryPerPage {
		limit = s.options.MaxHistoryPerPage
	}

	txs, err := s.paymentRepo.ListByUserID(ctx, query.UserID, limit)
	if err != nil {
		s.logger.Error("Failed to list transactions", zap.String("userID", query.UserID), zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeInternalError, err)
	}

	return txs, nil
}

// GetBalance reports zero for users without a profile row yet.
func (s *queryService) GetBalance(ctx context.Context, userID string) (BalanceResult, error) {
	if userID == "" {
		return BalanceResult{}, NewServiceError(constants.ErrCodeAuth, ErrUnauthenticated)
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return BalanceResult{UserID: userID, Balance: decimal.Zero}, nil
		}

		s.logger.Error("Failed to load balance", zap.String("userID", userID), zap.Error(err))
		return BalanceResult{}, NewServiceError(constants.ErrCodeProfileLookupFailed, err)
	}

	return BalanceResult{UserID: userID, Balance: profile.Balance}, nil
}
