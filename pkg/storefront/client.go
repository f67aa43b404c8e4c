package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Behyna/storefront-payments/pkg/httpclient"
)

const DefaultTimeout = 10 * time.Second

var ErrInvalidResponse = errors.New("INVALID_RESPONSE")

type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Client talks to the payments API on behalf of a signed-in user. Every call
// takes the user's bearer token.
type Client struct {
	baseURL string
	http    httpclient.HTTPClient
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return NewClientWithHTTP(cfg, httpclient.NewHTTPClient(timeout))
}

func NewClientWithHTTP(cfg Config, client httpclient.HTTPClient) *Client {
	return &Client{baseURL: strings.TrimRight(cfg.BaseURL, "/"), http: client}
}

func (c *Client) Initiate(ctx context.Context, token string, request InitiateRequest) (InitiateResult, error) {
	payload, err := json.Marshal(struct {
		Amount    json.Number `json:"amount"`
		OriginURL string      `json:"origin_url"`
	}{Amount: json.Number(request.Amount.String()), OriginURL: request.OriginURL})
	if err != nil {
		return InitiateResult{}, err
	}

	headers := c.headers(token)
	headers["Content-Type"] = "application/json"

	resp, err := c.http.Post(ctx, c.baseURL+"/api/v1/payments", bytes.NewReader(payload), headers)
	if err != nil {
		return InitiateResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return InitiateResult{}, err
	}

	var envelope initiateEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return InitiateResult{}, fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	if !envelope.Success || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{
			StatusCode:   resp.StatusCode,
			Message:      envelope.Error,
			PaymentError: envelope.PaymentError,
		}
		if envelope.PaymentError != nil {
			apiErr.Code = envelope.PaymentError.Code
		}
		return InitiateResult{}, apiErr
	}

	return InitiateResult{Identifier: envelope.Identifier, RedirectURL: envelope.RedirectURL}, nil
}

func (c *Client) GetTransaction(ctx context.Context, token, identifier string) (Transaction, error) {
	var envelope readEnvelope[Transaction]
	if err := c.get(ctx, token, "/api/v1/payments/"+url.PathEscape(identifier), &envelope); err != nil {
		return Transaction{}, err
	}

	return envelope.Result, nil
}

// ListTransactions returns the newest transactions first. A limit of zero
// uses the server default.
func (c *Client) ListTransactions(ctx context.Context, token string, limit int) ([]Transaction, error) {
	path := "/api/v1/payments"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var envelope readEnvelope[transactionList]
	if err := c.get(ctx, token, path, &envelope); err != nil {
		return nil, err
	}

	return envelope.Result.Transactions, nil
}

func (c *Client) Balance(ctx context.Context, token string) (Balance, error) {
	var envelope readEnvelope[Balance]
	if err := c.get(ctx, token, "/api/v1/balance", &envelope); err != nil {
		return Balance{}, err
	}

	return envelope.Result, nil
}

func (c *Client) get(ctx context.Context, token, path string, out any) error {
	resp, err := c.http.Get(ctx, c.baseURL+path, c.headers(token))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		var failure readEnvelope[json.RawMessage]
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if err := json.Unmarshal(body, &failure); err == nil && failure.Code != "" {
			apiErr.Code = failure.Code
			apiErr.Message = failure.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) headers(token string) map[string]string {
	headers := map[string]string{"Accept": "application/json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}
