package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Behyna/storefront-payments/internal/database"
	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
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

func newTransaction(identifier, userID string, status model.PaymentStatus) *model.PaymentTransaction {
	return &model.PaymentTransaction{
		Identifier: identifier,
		UserID:     userID,
		Amount:     decimal.NewFromInt(100),
		Credits:    decimal.NewFromInt(100),
		Currency:   "BDT",
		Status:     status,
	}
}

func TestPaymentTransaction_Create(t *testing.T) {
	repo := repository.NewPaymentTransactionRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTransaction("TPone", "user-1", model.PaymentStatusInitiated)))

	err := repo.Create(ctx, newTransaction("TPone", "user-2", model.PaymentStatusInitiated))
	assert.ErrorIs(t, err, repository.ErrIdentifierExists)

	_, err = repo.GetByIdentifier(ctx, "TPmissing")
	assert.ErrorIs(t, err, repository.ErrPaymentTransactionNotFound)
}

func TestPaymentTransaction_ListByUserID(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPaymentTransactionRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"TPold", "TPmid", "TPnew"} {
		tx := newTransaction(id, "user-1", model.PaymentStatusPending)
		tx.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, tx))
	}
	require.NoError(t, repo.Create(ctx, newTransaction("TPother", "user-2", model.PaymentStatusPending)))

	txs, err := repo.ListByUserID(ctx, "user-1", 2)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "TPnew", txs[0].Identifier)
	assert.Equal(t, "TPmid", txs[1].Identifier)
}

func TestPaymentTransaction_MarkPending(t *testing.T) {
	repo := repository.NewPaymentTransactionRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTransaction("TPinit", "user-1", model.PaymentStatusInitiated)))

	require.NoError(t, repo.MarkPending(ctx, "TPinit", "https://pay/x", datatypes.JSON(`{"status":"success"}`)))
	assert.ErrorIs(t, repo.MarkPending(ctx, "TPinit", "https://pay/y", nil), repository.ErrNoRowsAffected)

	tx, err := repo.GetByIdentifier(ctx, "TPinit")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, tx.Status)
	assert.Equal(t, "https://pay/x", *tx.RedirectURL)
}

func TestPaymentTransaction_Resolve(t *testing.T) {
	repo := repository.NewPaymentTransactionRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTransaction("TPres", "user-1", model.PaymentStatusPending)))

	now := time.Now().UTC()
	won, err := repo.Resolve(ctx, "TPres", repository.Transition{
		Status:               model.PaymentStatusCompleted,
		GatewayTransactionID: "TX1",
		CompletedAt:          &now,
	})
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.Resolve(ctx, "TPres", repository.Transition{Status: model.PaymentStatusFailed})
	require.NoError(t, err)
	assert.False(t, won)

	saved, err := repo.SaveRawResponse(ctx, "TPres", datatypes.JSON(`{}`))
	require.NoError(t, err)
	assert.False(t, saved)

	tx, err := repo.GetByIdentifier(ctx, "TPres")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, tx.Status)
	assert.Equal(t, "TX1", *tx.GatewayTransactionID)
}

func TestPaymentTransaction_Outbox(t *testing.T) {
	repo := repository.NewPaymentTransactionRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTransaction("TPdone", "user-1", model.PaymentStatusCompleted)))
	require.NoError(t, repo.Create(ctx, newTransaction("TPfail", "user-1", model.PaymentStatusFailed)))
	require.NoError(t, repo.Create(ctx, newTransaction("TPwait", "user-1", model.PaymentStatusPending)))

	txs, err := repo.FindUnpublishedTerminal(ctx, 10)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "TPdone", txs[0].Identifier)
	assert.Equal(t, "TPfail", txs[1].Identifier)

	require.NoError(t, repo.MarkPublished(ctx, "TPdone", time.Now().UTC()))
	assert.ErrorIs(t, repo.MarkPublished(ctx, "TPdone", time.Now().UTC()), repository.ErrNoRowsAffected)

	txs, err = repo.FindUnpublishedTerminal(ctx, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "TPfail", txs[0].Identifier)
}

func TestProfile_IncreaseBalance(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Profile{UserID: "user-1", Balance: decimal.NewFromInt(10)}).Error)

	require.NoError(t, repo.IncreaseBalance(ctx, "user-1", decimal.NewFromInt(500)))

	require.NoError(t, repo.IncreaseBalance(ctx, "newcomer", decimal.NewFromInt(25)))
	require.NoError(t, repo.IncreaseBalance(ctx, "newcomer", decimal.NewFromInt(5)))
	created, err := repo.FindByUserID(ctx, "newcomer")
	require.NoError(t, err)
	assert.True(t, created.Balance.Equal(decimal.NewFromInt(30)), "got %s", created.Balance)

	profile, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, profile.Balance.Equal(decimal.NewFromInt(510)))
}

func TestBalanceTransaction_Idempotency(t *testing.T) {
	repo := repository.NewBalanceTransactionRepository(newTestDB(t))
	ctx := context.Background()

	entry := func() *model.BalanceTransaction {
		return &model.BalanceTransaction{
			UserID:         "user-1",
			TxType:         model.TxTypeIncrease,
			IdempotencyKey: "topup-TPa",
			Amount:         decimal.NewFromInt(100),
		}
	}

	require.NoError(t, repo.Create(ctx, entry()))
	assert.ErrorIs(t, repo.Create(ctx, entry()), repository.ErrTransactionExisted)

	found, err := repo.GetByIdempotencyKey(ctx, model.TxTypeIncrease, "topup-TPa")
	require.NoError(t, err)
	assert.Equal(t, "user-1", found.UserID)

	_, err = repo.GetByIdempotencyKey(ctx, model.TxTypeIncrease, "topup-TPb")
	assert.ErrorIs(t, err, repository.ErrBalanceTransactionNotFound)
}

func TestTransactionManager_WithTx(t *testing.T) {
	db := newTestDB(t)
	tm := repository.NewTransactionManager(db)
	repo := repository.NewPaymentTransactionRepository(db)
	ctx := context.Background()

	err := tm.WithTx(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, newTransaction("TProll", "user-1", model.PaymentStatusInitiated)))
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = repo.GetByIdentifier(ctx, "TProll")
	assert.ErrorIs(t, err, repository.ErrPaymentTransactionNotFound)
}
