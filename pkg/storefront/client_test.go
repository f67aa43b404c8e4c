package storefront_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Behyna/storefront-payments/pkg/storefront"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "signed-token"

func newTestClient(t *testing.T, handler http.HandlerFunc) *storefront.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return storefront.NewClient(storefront.Config{BaseURL: server.URL + "/"})
}

func TestClient_Initiate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/payments", r.URL.Path)
			assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(500), body["amount"])
			assert.Equal(t, "https://shop.test/wallet", body["origin_url"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"redirect_url":"https://gateway.test/pay/1","identifier":"TP1"}`))
		})

		result, err := client.Initiate(context.Background(), testToken, storefront.InitiateRequest{
			Amount:    decimal.NewFromInt(500),
			OriginURL: "https://shop.test/wallet",
		})

		require.NoError(t, err)
		assert.Equal(t, "TP1", result.Identifier)
		assert.Equal(t, "https://gateway.test/pay/1", result.RedirectURL)
	})

	t.Run("payment error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"error":"payment gateway is under maintenance",
				"payment_error":{"code":"MAINTENANCE","title":"Gateway maintenance","description":"Try later","suggestion":"manual"}}`))
		})

		_, err := client.Initiate(context.Background(), testToken, storefront.InitiateRequest{
			Amount:    decimal.NewFromInt(10),
			OriginURL: "https://shop.test",
		})

		var apiErr *storefront.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "MAINTENANCE", apiErr.Code)
		require.NotNil(t, apiErr.PaymentError)
		assert.Equal(t, "manual", apiErr.PaymentError.Suggestion)
		assert.False(t, apiErr.Permanent())
	})

	t.Run("not json", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		})

		_, err := client.Initiate(context.Background(), testToken, storefront.InitiateRequest{Amount: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, storefront.ErrInvalidResponse)
	})
}

func TestClient_Reads(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v1/payments/TP1":
			_, _ = w.Write([]byte(`{"successful":true,"code":"success","x_track_id":"t","result":
				{"identifier":"TP1","status":"completed","amount":"500","credits":"500","currency":"BDT","gateway":"esewa"}}`))
		case "/api/v1/payments/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"successful":false,"code":"TRANSACTION_NOT_FOUND","message":"transaction not found"}`))
		case "/api/v1/payments":
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`{"successful":true,"code":"success","result":
				{"transactions":[{"identifier":"TP2","status":"pending"},{"identifier":"TP1","status":"completed"}],"total":2}}`))
		case "/api/v1/balance":
			_, _ = w.Write([]byte(`{"successful":true,"code":"success","result":{"user_id":"user-1","balance":"1500.50"}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	ctx := context.Background()

	t.Run("get transaction", func(t *testing.T) {
		tx, err := client.GetTransaction(ctx, testToken, "TP1")
		require.NoError(t, err)
		assert.Equal(t, "completed", tx.Status)
		assert.True(t, decimal.NewFromInt(500).Equal(tx.Credits))
		assert.Equal(t, "esewa", tx.Gateway)
	})

	t.Run("missing transaction", func(t *testing.T) {
		_, err := client.GetTransaction(ctx, testToken, "missing")

		var apiErr *storefront.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "TRANSACTION_NOT_FOUND", apiErr.Code)
		assert.True(t, apiErr.Permanent())
	})

	t.Run("list", func(t *testing.T) {
		txs, err := client.ListTransactions(ctx, testToken, 5)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, "TP2", txs[0].Identifier)
	})

	t.Run("balance", func(t *testing.T) {
		balance, err := client.Balance(ctx, testToken)
		require.NoError(t, err)
		assert.Equal(t, "1500.5", balance.Balance.String())
	})
}

func TestClient_PollerIntegration(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		status := "pending"
		if hits.Add(1) >= 2 {
			status = "completed"
		}
		_, _ = w.Write([]byte(`{"successful":true,"code":"success","result":{"identifier":"TP1","status":"` + status + `"}}`))
	})

	result, err := fastPoller(client, 5).Await(context.Background(), testToken, "TP1")

	require.NoError(t, err)
	assert.Equal(t, storefront.OutcomeCompleted, result.Outcome)
	assert.Equal(t, 2, result.Attempts)
}
