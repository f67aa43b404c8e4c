package service

import (
	"errors"
	"strings"

	"github.com/Behyna/storefront-payments/internal/constants"
	"github.com/Behyna/storefront-payments/pkg/paymentgateway"
)

type classificationRule struct {
	code     string
	keywords []string
}

// Order matters: the first rule with a matching keyword wins.
var classificationRules = []classificationRule{
	{
		code:     constants.ErrCodeConfig,
		keywords: []string{"invalid api", "invalid key", "public key", "secret", "unauthorized", "credential", "api key"},
	},
	{
		code:     constants.ErrCodeGatewayBalance,
		keywords: []string{"insufficient", "balance"},
	},
	{
		code:     constants.ErrCodeMaintenance,
		keywords: []string{"maintenance", "unavailable", "temporarily"},
	},
	{
		code:     constants.ErrCodeLimitExceeded,
		keywords: []string{"limit", "exceed"},
	},
}

// ClassifyGatewayMessage maps free gateway text onto an error code.
func ClassifyGatewayMessage(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range classificationRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.code
			}
		}
	}

	return constants.ErrCodeUnknown
}

// ClassifyGatewayError maps a checkout call error onto an error code.
func ClassifyGatewayError(err error) string {
	switch {
	case paymentgateway.IsTransportError(err):
		return constants.ErrCodeNetwork
	case errors.Is(err, paymentgateway.ErrUnauthorized):
		return constants.ErrCodeConfig
	case errors.Is(err, paymentgateway.ErrUnavailable):
		return constants.ErrCodeMaintenance
	case errors.Is(err, paymentgateway.ErrRateLimited):
		return constants.ErrCodeLimitExceeded
	default:
		return constants.ErrCodeUnknown
	}
}
