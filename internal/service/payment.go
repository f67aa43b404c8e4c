package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Behyna/storefront-payments/internal/cache"
	"github.com/Behyna/storefront-payments/internal/constants"
	"github.com/Behyna/storefront-payments/internal/metrics"
	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/internal/repository"
	"github.com/Behyna/storefront-payments/pkg/paymentgateway"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	maxIdentifierAttempts = 3
	ipnPath               = "/api/v1/payments/ipn"

	fallbackFirstName = "Customer"
	fallbackLastName  = "User"
)

var (
	MinAmount = decimal.NewFromInt(1)
	MaxAmount = decimal.NewFromInt(100000)

	// CreditRate converts paid currency into account credits.
	CreditRate = decimal.NewFromInt(1)
)

type PaymentOptions struct {
	Currency      string
	Description   string
	SiteName      string
	SiteLogo      string
	CheckoutTheme string
	DefaultMobile string
	PublicURL     string
}

type PaymentService interface {
	Initiate(ctx context.Context, cmd InitiatePaymentCommand) (InitiatePaymentResult, error)
}

type paymentService struct {
	options     PaymentOptions
	paymentRepo repository.PaymentTransactionRepository
	profileRepo repository.ProfileRepository
	ledger      LedgerService
	gateway     paymentgateway.PaymentGateway
	identifiers IdentifierGenerator
	cache       cache.TransactionCache
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewPaymentService(options PaymentOptions, paymentRepo repository.PaymentTransactionRepository,
	profileRepo repository.ProfileRepository, ledger LedgerService, gateway paymentgateway.PaymentGateway,
	identifiers IdentifierGenerator, cache cache.TransactionCache, logger *zap.Logger,
	metrics *metrics.Metrics) PaymentService {
	return &paymentService{
		options:     options,
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
		ledger:      ledger,
		gateway:     gateway,
		identifiers: identifiers,
		cache:       cache,
		logger:      logger,
		metrics:     metrics,
	}
}

// ParseAmount accepts a plain or quoted decimal and enforces the top-up bounds.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value := strings.Trim(strings.TrimSpace(raw), `"`)
	if value == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: missing", ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, value)
	}

	if amount.LessThan(MinAmount) || amount.GreaterThan(MaxAmount) {
		return decimal.Decimal{}, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, amount)
	}

	return amount.Round(2), nil
}

func (s *paymentService) Initiate(ctx context.Context, cmd InitiatePaymentCommand) (InitiatePaymentResult, error) {
	if cmd.UserID == "" {
		s.metrics.RecordInitiation(constants.ErrCodeAuth)
		return InitiatePaymentResult{}, NewServiceError(constants.ErrCodeAuth, ErrUnauthenticated)
	}

	amount, err := ParseAmount(cmd.Amount)
	if err != nil {
		s.logger.Info("Rejected payment amount", zap.String("userID", cmd.UserID), zap.Error(err))
		s.metrics.RecordInitiation(constants.ErrCodeInvalidAmount)
		return InitiatePaymentResult{}, NewServiceError(constants.ErrCodeInvalidAmount, err)
	}

	profile, err := s.profileRepo.FindByUserID(ctx, cmd.UserID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		s.logger.Error("Failed to load profile", zap.String("userID", cmd.UserID), zap.Error(err))
		s.metrics.RecordInitiation(constants.ErrCodeProfileLookupFailed)
		return InitiatePaymentResult{}, NewServiceError(constants.ErrCodeProfileLookupFailed, err)
	}

	tx, err := s.createTransaction(ctx, cmd.UserID, amount)
	if err != nil {
		s.logger.Error("Failed to create payment transaction", zap.String("userID", cmd.UserID), zap.Error(err))
		s.metrics.RecordInitiation(constants.ErrCodeInternalError)
		return InitiatePaymentResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	request := s.checkoutRequest(tx, cmd, profile)

	start := time.Now()
	response, err := s.gateway.Checkout(ctx, request)
	if err != nil {
		code := ClassifyGatewayError(err)
		s.metrics.RecordGatewayCall("error", time.Since(start))
		s.logger.Warn("Checkout call failed",
			zap.String("identifier", tx.Identifier),
			zap.String("code", code),
			zap.Error(err))

		raw := gatewayErrorPayload(err, response.Raw)
		return InitiatePaymentResult{}, s.reject(ctx, tx.Identifier, code, raw, err)
	}

	if !response.Succeeded() {
		message := response.Message.String()
		code := ClassifyGatewayMessage(message)
		s.metrics.RecordGatewayCall("rejected", time.Since(start))
		s.logger.Warn("Checkout rejected by gateway",
			zap.String("identifier", tx.Identifier),
			zap.String("code", code),
			zap.String("gatewayMessage", message))

		cause := fmt.Errorf("%w: %s", ErrGatewayRejected, message)
		return InitiatePaymentResult{}, s.reject(ctx, tx.Identifier, code, asJSON(response.Raw), cause)
	}

	s.metrics.RecordGatewayCall("success", time.Since(start))

	if err := s.paymentRepo.MarkPending(ctx, tx.Identifier, response.RedirectURL, asJSON(response.Raw)); err != nil {
		s.logger.Error("Failed to mark transaction pending",
			zap.String("identifier", tx.Identifier),
			zap.Error(err))
		s.metrics.RecordInitiation(constants.ErrCodeInternalError)
		return InitiatePaymentResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	if err := s.cache.Invalidate(ctx, tx.Identifier); err != nil {
		s.logger.Warn("Failed to invalidate cached transaction", zap.String("identifier", tx.Identifier), zap.Error(err))
	}

	s.metrics.RecordInitiation("success")
	s.logger.Info("Payment initiated",
		zap.String("identifier", tx.Identifier),
		zap.String("userID", cmd.UserID),
		zap.String("amount", amount.String()))

	return InitiatePaymentResult{Identifier: tx.Identifier, RedirectURL: response.RedirectURL}, nil
}

func (s *paymentService) createTransaction(ctx context.Context, userID string, amount decimal.Decimal) (*model.PaymentTransaction, error) {
	for attempt := 1; attempt <= maxIdentifierAttempts; attempt++ {
		tx := &model.PaymentTransaction{
			Identifier: s.identifiers.Generate(userID),
			UserID:     userID,
			Amount:     amount,
			Credits:    amount.Mul(CreditRate),
			Currency:   s.options.Currency,
			Status:     model.PaymentStatusInitiated,
		}

		err := s.paymentRepo.Create(ctx, tx)
		if err == nil {
			return tx, nil
		}

		if !errors.Is(err, repository.ErrIdentifierExists) {
			return nil, err
		}

		s.logger.Warn("Identifier collision, regenerating",
			zap.String("identifier", tx.Identifier),
			zap.Int("attempt", attempt))
	}

	return nil, ErrIdentifierRetries
}

func (s *paymentService) checkoutRequest(tx *model.PaymentTransaction, cmd InitiatePaymentCommand,
	profile *model.Profile) paymentgateway.CheckoutRequest {
	origin := strings.TrimRight(cmd.OriginURL, "/")
	id := url.QueryEscape(tx.Identifier)

	customer := paymentgateway.Customer{
		FirstName: fallbackFirstName,
		LastName:  fallbackLastName,
		Email:     cmd.Email,
		Mobile:    s.options.DefaultMobile,
	}

	if profile != nil {
		customer.FirstName, customer.LastName = splitName(profile.FullName)
		if customer.Email == "" {
			customer.Email = profile.Email
		}
		if profile.Phone != "" {
			customer.Mobile = profile.Phone
		}
	}

	return paymentgateway.CheckoutRequest{
		Identifier:    tx.Identifier,
		Currency:      tx.Currency,
		Amount:        tx.Amount,
		Details:       s.options.Description,
		IPNURL:        strings.TrimRight(s.options.PublicURL, "/") + ipnPath,
		SuccessURL:    origin + "/payment/success?id=" + id,
		CancelURL:     origin + "/payment/cancel?id=" + id,
		SiteName:      s.options.SiteName,
		SiteLogo:      s.options.SiteLogo,
		CheckoutTheme: s.options.CheckoutTheme,
		Customer:      customer,
	}
}

// reject records the failed initiation and returns the classified error.
// A failure to record it is logged; the caller still sees the gateway code.
func (s *paymentService) reject(ctx context.Context, identifier, code string, raw datatypes.JSON, cause error) error {
	if _, err := s.ledger.Fail(ctx, FailPaymentCommand{Identifier: identifier, RawResponse: raw}); err != nil {
		s.logger.Error("Failed to record rejected initiation",
			zap.String("identifier", identifier),
			zap.Error(err))
	}

	s.metrics.RecordInitiation(code)
	return NewServiceError(code, cause)
}

func splitName(fullName string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(fullName), " ")
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)

	if first == "" {
		first = fallbackFirstName
	}
	if last == "" {
		last = fallbackLastName
	}

	return first, last
}

func gatewayErrorPayload(err error, body []byte) datatypes.JSON {
	payload := map[string]string{"error": err.Error()}
	if len(body) > 0 {
		payload["body"] = string(body)
	}

	raw, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func asJSON(body []byte) datatypes.JSON {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return datatypes.JSON(body)
	}
	return gatewayErrorPayload(errors.New("non-json gateway response"), body)
}
