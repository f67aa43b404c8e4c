package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Behyna/storefront-payments/internal/cache"
	"github.com/Behyna/storefront-payments/internal/database"
	"github.com/Behyna/storefront-payments/internal/metrics"
	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/internal/repository"
	"github.com/Behyna/storefront-payments/internal/service"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	return db
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func serviceErrorCode(t *testing.T, err error) string {
	t.Helper()

	var serviceErr service.Error
	require.ErrorAs(t, err, &serviceErr)
	return serviceErr.Code
}

type ledgerFixture struct {
	db       *gorm.DB
	payments repository.PaymentTransactionRepository
	profiles repository.ProfileRepository
	balances repository.BalanceTransactionRepository
	ledger   service.LedgerService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	db := newTestDB(t)
	f := &ledgerFixture{
		db:       db,
		payments: repository.NewPaymentTransactionRepository(db),
		profiles: repository.NewProfileRepository(db),
		balances: repository.NewBalanceTransactionRepository(db),
	}
	f.ledger = service.NewLedgerService(repository.NewTransactionManager(db), f.payments, f.profiles, f.balances,
		cache.NewNoopTransactionCache(), zap.NewNop(), newTestMetrics())

	return f
}

func (f *ledgerFixture) seedProfile(t *testing.T, userID, fullName string, balance int64) {
	t.Helper()

	require.NoError(t, f.db.Create(&model.Profile{
		UserID:    userID,
		FullName:  fullName,
		Email:     userID + "@shop.test",
		Balance:   decimal.NewFromInt(balance),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}).Error)
}

func (f *ledgerFixture) seedTransaction(t *testing.T, identifier, userID string, amount int64, status model.PaymentStatus) {
	t.Helper()

	require.NoError(t, f.db.Create(&model.PaymentTransaction{
		Identifier: identifier,
		UserID:     userID,
		Amount:     decimal.NewFromInt(amount),
		Credits:    decimal.NewFromInt(amount),
		Currency:   "BDT",
		Status:     status,
	}).Error)
}

func (f *ledgerFixture) balance(t *testing.T, userID string) decimal.Decimal {
	t.Helper()

	profile, err := f.profiles.FindByUserID(context.Background(), userID)
	require.NoError(t, err)
	return profile.Balance
}

func (f *ledgerFixture) status(t *testing.T, identifier string) model.PaymentStatus {
	t.Helper()

	tx, err := f.payments.GetByIdentifier(context.Background(), identifier)
	require.NoError(t, err)
	return tx.Status
}

func (f *ledgerFixture) balanceEntries(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, f.db.Model(&model.BalanceTransaction{}).Count(&count).Error)
	return count
}
