package v1

import (
	"errors"
	"time"

	"github.com/Behyna/storefront-payments/internal/api/contract"
	"github.com/Behyna/storefront-payments/internal/api/v1/middleware"
	"github.com/Behyna/storefront-payments/internal/api/validator"
	"github.com/Behyna/storefront-payments/internal/constants"
	"github.com/Behyna/storefront-payments/internal/metrics"
	"github.com/Behyna/storefront-payments/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger              *zap.Logger
	paymentService      service.PaymentService
	notificationService service.NotificationService
	queryService        service.QueryService
	XValidator          validator.IXValidator
	metrics             *metrics.Metrics
}

func NewHandler(logger *zap.Logger, paymentService service.PaymentService, notificationService service.NotificationService,
	queryService service.QueryService, XValidator validator.IXValidator, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:              logger,
		paymentService:      paymentService,
		notificationService: notificationService,
		queryService:        queryService,
		XValidator:          XValidator,
		metrics:             metrics,
	}
}

func (h *Handler) InitiatePayment(c *fiber.Ctx) error {
	start := time.Now()

	userID := middleware.UserID(c)
	if userID == "" {
		h.metrics.RecordInitiation(constants.ErrCodeAuth)
		return h.initiationFailed(c, constants.ErrCodeAuth)
	}

	var handlerRequest InitiatePaymentRequest
	validationStart := time.Now()

	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	h.metrics.RecordValidationDuration("initiate_payment", time.Since(validationStart))

	if responseError.Code != "" {
		h.logger.Warn("Error Validator",
			zap.String("userID", userID),
			zap.String("message", responseError.Message))
		h.metrics.RecordInitiation(constants.ErrCodeValidationFailed)
		return h.initiationFailed(c, constants.ErrCodeValidationFailed)
	}

	cmd := service.InitiatePaymentCommand{
		UserID:    userID,
		Email:     middleware.Email(c),
		Amount:    handlerRequest.AmountText(),
		OriginURL: handlerRequest.OriginURL,
	}

	result, err := h.paymentService.Initiate(c.UserContext(), cmd)
	if err != nil {
		code := errorCode(err)
		h.logger.Warn("Payment initiation failed",
			zap.String("userID", userID),
			zap.String("code", code),
			zap.Error(err))

		return h.initiationFailed(c, code)
	}

	h.logger.Info("Payment initiation accepted",
		zap.String("identifier", result.Identifier),
		zap.String("userID", userID),
		zap.Duration("duration", time.Since(start)))

	return c.JSON(InitiatePaymentResponse{
		Success:     true,
		RedirectURL: result.RedirectURL,
		Identifier:  result.Identifier,
	})
}

func (h *Handler) initiationFailed(c *fiber.Ctx, code string) error {
	return c.Status(constants.GetHTTPStatus(code)).JSON(InitiatePaymentErrorResponse{
		Success:      false,
		Error:        constants.GetErrorMessage(code),
		PaymentError: constants.GetPaymentError(code),
	})
}

// Notification receives the gateway's server-to-server callback.
func (h *Handler) Notification(c *fiber.Ctx) error {
	cmd := service.HandleNotificationCommand{
		Body:        append([]byte(nil), c.Body()...),
		ContentType: c.Get(fiber.HeaderContentType),
	}

	result, err := h.notificationService.Handle(c.UserContext(), cmd)
	if err != nil {
		code := errorCode(err)
		h.logger.Warn("Notification rejected",
			zap.String("code", code),
			zap.String("contentType", cmd.ContentType),
			zap.Error(err))

		return c.Status(constants.GetHTTPStatus(code)).JSON(NotificationErrorResponse{
			Error: constants.GetErrorMessage(code),
		})
	}

	return c.JSON(NotificationResponse{Success: true, Message: result.Message})
}

func (h *Handler) GetPayment(c *fiber.Ctx) error {
	tx, err := h.queryService.GetTransaction(c.UserContext(), middleware.UserID(c), c.Params("identifier"))
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{
		Successful: true,
		Code:       contract.CodeSuccess,
		TrackID:    middleware.GetTrackID(c),
		Result:     newTransactionResponse(tx),
	})
}

func (h *Handler) ListPayments(c *fiber.Ctx) error {
	query := service.ListPaymentsQuery{
		UserID: middleware.UserID(c),
		Limit:  c.QueryInt("limit", service.DefaultHistoryLimit),
	}

	txs, err := h.queryService.ListTransactions(c.UserContext(), query)
	if err != nil {
		return err
	}

	response := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, 0, len(txs)),
		Total:        len(txs),
	}
	for i := range txs {
		response.Transactions = append(response.Transactions, newTransactionResponse(&txs[i]))
	}

	return c.JSON(contract.Response{
		Successful: true,
		Code:       contract.CodeSuccess,
		TrackID:    middleware.GetTrackID(c),
		Result:     response,
	})
}

func (h *Handler) Balance(c *fiber.Ctx) error {
	balance, err := h.queryService.GetBalance(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{
		Successful: true,
		Code:       contract.CodeSuccess,
		TrackID:    middleware.GetTrackID(c),
		Result:     BalanceResponse{UserID: balance.UserID, Balance: balance.Balance},
	})
}

func errorCode(err error) string {
	var serviceErr service.Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}

	return constants.ErrCodeInternalError
}
