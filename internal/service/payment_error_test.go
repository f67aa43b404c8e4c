package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Behyna/storefront-payments/internal/constants"
	"github.com/Behyna/storefront-payments/internal/service"
	"github.com/Behyna/storefront-payments/pkg/paymentgateway"
	"github.com/stretchr/testify/assert"
)

func TestClassifyGatewayMessage(t *testing.T) {
	testCases := []struct {
		message  string
		expected string
	}{
		{message: "Invalid API credentials", expected: constants.ErrCodeConfig},
		{message: "Public key mismatch", expected: constants.ErrCodeConfig},
		{message: "UNAUTHORIZED merchant", expected: constants.ErrCodeConfig},
		{message: "Insufficient merchant funds", expected: constants.ErrCodeGatewayBalance},
		{message: "Merchant balance too low", expected: constants.ErrCodeGatewayBalance},
		{message: "Scheduled maintenance in progress", expected: constants.ErrCodeMaintenance},
		{message: "Service temporarily down", expected: constants.ErrCodeMaintenance},
		{message: "Daily limit reached", expected: constants.ErrCodeLimitExceeded},
		{message: "Amount exceeds allowed range", expected: constants.ErrCodeLimitExceeded},
		{message: "Something odd happened", expected: constants.ErrCodeUnknown},
		{message: "", expected: constants.ErrCodeUnknown},
		// credentials outrank balance when both appear
		{message: "invalid key; insufficient balance", expected: constants.ErrCodeConfig},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.expected, service.ClassifyGatewayMessage(tc.message))
		})
	}
}

func TestClassifyGatewayError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "timeout", err: paymentgateway.ErrTimeout, expected: constants.ErrCodeNetwork},
		{name: "unreachable", err: fmt.Errorf("%w: refused", paymentgateway.ErrUnreachable), expected: constants.ErrCodeNetwork},
		{name: "unauthorized", err: paymentgateway.ErrUnauthorized, expected: constants.ErrCodeConfig},
		{name: "unavailable", err: paymentgateway.ErrUnavailable, expected: constants.ErrCodeMaintenance},
		{name: "rate limited", err: paymentgateway.ErrRateLimited, expected: constants.ErrCodeLimitExceeded},
		{name: "invalid response", err: paymentgateway.ErrInvalidResponse, expected: constants.ErrCodeUnknown},
		{name: "other", err: errors.New("boom"), expected: constants.ErrCodeUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, service.ClassifyGatewayError(tc.err))
		})
	}
}
