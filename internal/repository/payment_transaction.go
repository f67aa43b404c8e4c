package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/storefront-payments/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPaymentTransactionNotFound = errors.New("PAYMENT_TRANSACTION_NOT_FOUND")
	ErrIdentifierExists           = errors.New("IDENTIFIER_EXISTS")
	ErrNoRowsAffected             = errors.New("NO_ROWS_AFFECTED")
)

// Transition describes a move into a terminal status.
type Transition struct {
	Status               model.PaymentStatus
	Gateway              string
	GatewayTransactionID string
	RawResponse          datatypes.JSON
	CompletedAt          *time.Time
}

type PaymentTransactionRepository interface {
	Create(ctx context.Context, tx *model.PaymentTransaction) error
	GetByIdentifier(ctx context.Context, identifier string) (*model.PaymentTransaction, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]model.PaymentTransaction, error)
	MarkPending(ctx context.Context, identifier, redirectURL string, raw datatypes.JSON) error
	Resolve(ctx context.Context, identifier string, transition Transition) (bool, error)
	SaveRawResponse(ctx context.Context, identifier string, raw datatypes.JSON) (bool, error)
	FindUnpublishedTerminal(ctx context.Context, limit int) ([]model.PaymentTransaction, error)
	MarkPublished(ctx context.Context, identifier string, publishedAt time.Time) error
}

type PaymentTransaction struct {
	db *gorm.DB
}

func NewPaymentTransactionRepository(db *gorm.DB) PaymentTransactionRepository {
	return &PaymentTransaction{db: db}
}

func (p *PaymentTransaction) Create(ctx context.Context, tx *model.PaymentTransaction) error {
	db := GetTx(ctx, p.db)
	err := db.Create(tx).Error
	if err == nil {
		return nil
	}

	if isDuplicateKey(err) {
		return ErrIdentifierExists
	}

	return err
}

func (p *PaymentTransaction) GetByIdentifier(ctx context.Context, identifier string) (*model.PaymentTransaction, error) {
	var tx model.PaymentTransaction

	err := GetTx(ctx, p.db).Where("identifier = ?", identifier).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentTransactionNotFound
	}

	return nil, err
}

func (p *PaymentTransaction) ListByUserID(ctx context.Context, userID string, limit int) ([]model.PaymentTransaction, error) {
	var txs []model.PaymentTransaction

	err := GetTx(ctx, p.db).Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (p *PaymentTransaction) MarkPending(ctx context.Context, identifier, redirectURL string, raw datatypes.JSON) error {
	result := GetTx(ctx, p.db).Model(&model.PaymentTransaction{}).
		Where("identifier = ? AND status = ?", identifier, model.PaymentStatusInitiated).
		Updates(map[string]any{
			"status":               model.PaymentStatusPending,
			"redirect_url":         redirectURL,
			"raw_gateway_response": raw,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

// Resolve moves a non-terminal row into a terminal status. The status guard
// lives in the WHERE clause so concurrent callers race on the row itself;
// the boolean reports whether this call won.
func (p *PaymentTransaction) Resolve(ctx context.Context, identifier string, transition Transition) (bool, error) {
	updates := map[string]any{
		"status":               transition.Status,
		"raw_gateway_response": transition.RawResponse,
	}
	if transition.Gateway != "" {
		updates["gateway"] = transition.Gateway
	}
	if transition.GatewayTransactionID != "" {
		updates["gateway_transaction_id"] = transition.GatewayTransactionID
	}
	if transition.CompletedAt != nil {
		updates["completed_at"] = *transition.CompletedAt
	}

	result := GetTx(ctx, p.db).Model(&model.PaymentTransaction{}).
		Where("identifier = ? AND status NOT IN ?", identifier, model.TerminalStatuses).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (p *PaymentTransaction) SaveRawResponse(ctx context.Context, identifier string, raw datatypes.JSON) (bool, error) {
	result := GetTx(ctx, p.db).Model(&model.PaymentTransaction{}).
		Where("identifier = ? AND status NOT IN ?", identifier, model.TerminalStatuses).
		Update("raw_gateway_response", raw)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (p *PaymentTransaction) FindUnpublishedTerminal(ctx context.Context, limit int) ([]model.PaymentTransaction, error) {
	var txs []model.PaymentTransaction

	err := GetTx(ctx, p.db).
		Where("published = ? AND status IN ?", false, model.TerminalStatuses).
		Order("id ASC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (p *PaymentTransaction) MarkPublished(ctx context.Context, identifier string, publishedAt time.Time) error {
	result := GetTx(ctx, p.db).Model(&model.PaymentTransaction{}).
		Where("identifier = ? AND published = ?", identifier, false).
		Updates(map[string]any{
			"published":    true,
			"published_at": publishedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
