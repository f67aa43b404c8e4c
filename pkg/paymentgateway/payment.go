package paymentgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/Behyna/storefront-payments/pkg/httpclient"
)

const DefaultCheckoutPath = "/api/checkout-v2"

type PaymentGateway interface {
	Checkout(ctx context.Context, request CheckoutRequest) (CheckoutResponse, error)
}

type paymentGateway struct {
	client httpclient.HTTPClient
	config Config
}

func NewPaymentGateway(cfg Config, client httpclient.HTTPClient) PaymentGateway {
	return &paymentGateway{config: cfg, client: client}
}

// Checkout creates a hosted checkout session. A decoded rejection is returned
// as a response with nil error; errors are reserved for transport and
// protocol failures.
func (p *paymentGateway) Checkout(ctx context.Context, request CheckoutRequest) (CheckoutResponse, error) {
	headers := map[string]string{
		"Accept": "application/json",
	}

	resp, err := p.client.PostForm(ctx, p.checkoutURL(), request.form(p.config), headers)
	if err != nil {
		if isTimeout(err) {
			return CheckoutResponse{}, ErrTimeout
		}

		return CheckoutResponse{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return CheckoutResponse{}, ErrTimeout
		}

		return CheckoutResponse{}, fmt.Errorf("%w: reading body: %v", ErrUnreachable, err)
	}

	var response CheckoutResponse
	if err := json.Unmarshal(body, &response); err != nil || response.Status == "" {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return CheckoutResponse{Raw: body}, fmt.Errorf("%w: decoding error", ErrInvalidResponse)
		}

		return CheckoutResponse{Raw: body}, MapStatusToError(resp.StatusCode)
	}

	response.Raw = body

	return response, nil
}

func (p *paymentGateway) checkoutURL() string {
	path := p.config.CheckoutPath
	if path == "" {
		path = DefaultCheckoutPath
	}

	return strings.TrimRight(p.config.BaseURL, "/") + path
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
