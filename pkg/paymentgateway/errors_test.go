package paymentgateway_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Behyna/storefront-payments/pkg/paymentgateway"
	"github.com/stretchr/testify/assert"
)

func TestMapStatusToError(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		expectedError error
	}{
		{name: "Unauthorized", statusCode: 401, expectedError: paymentgateway.ErrUnauthorized},
		{name: "Forbidden", statusCode: 403, expectedError: paymentgateway.ErrUnauthorized},
		{name: "TooManyRequests", statusCode: 429, expectedError: paymentgateway.ErrRateLimited},
		{name: "ServiceUnavailable", statusCode: 503, expectedError: paymentgateway.ErrUnavailable},
		{name: "InternalServerError", statusCode: 500, expectedError: paymentgateway.ErrServerError},
		{name: "BadRequest", statusCode: 400, expectedError: paymentgateway.ErrServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := paymentgateway.MapStatusToError(tc.statusCode)

			assert.Error(t, err, "Expected an error for status code %d", tc.statusCode)
			assert.Equal(t, tc.expectedError, err)
		})
	}
}

func TestIsTransportError(t *testing.T) {
	assert.True(t, paymentgateway.IsTransportError(paymentgateway.ErrTimeout))
	assert.True(t, paymentgateway.IsTransportError(fmt.Errorf("%w: dial tcp", paymentgateway.ErrUnreachable)))
	assert.False(t, paymentgateway.IsTransportError(paymentgateway.ErrServerError))
	assert.False(t, paymentgateway.IsTransportError(errors.New("other")))
}
