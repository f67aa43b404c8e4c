package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Behyna/storefront-payments/internal/api/v1/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims middleware.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func identityApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.Authenticate(middleware.AuthConfig{Secret: testSecret, Issuer: "storefront"}, zap.NewNop()))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(middleware.UserID(c) + "|" + middleware.Email(c))
	})
	return app
}

func whoami(t *testing.T, app *fiber.App, authorization string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestAuthenticate(t *testing.T) {
	app := identityApp()
	valid := middleware.Claims{
		Email: "ada@shop.test",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "storefront",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	t.Run("valid token", func(t *testing.T) {
		assert.Equal(t, "user-1|ada@shop.test", whoami(t, app, "Bearer "+signToken(t, testSecret, valid)))
	})

	t.Run("no header", func(t *testing.T) {
		assert.Equal(t, "|", whoami(t, app, ""))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.Equal(t, "|", whoami(t, app, "Bearer "+signToken(t, "other", valid)))
	})

	t.Run("expired", func(t *testing.T) {
		expired := valid
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		assert.Equal(t, "|", whoami(t, app, "Bearer "+signToken(t, testSecret, expired)))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		foreign := valid
		foreign.Issuer = "elsewhere"
		assert.Equal(t, "|", whoami(t, app, "Bearer "+signToken(t, testSecret, foreign)))
	})

	t.Run("missing subject", func(t *testing.T) {
		anonymous := valid
		anonymous.Subject = ""
		assert.Equal(t, "|", whoami(t, app, "Bearer "+signToken(t, testSecret, anonymous)))
	})

	t.Run("not a bearer token", func(t *testing.T) {
		assert.Equal(t, "|", whoami(t, app, "Basic dXNlcjpwYXNz"))
	})
}

func TestTrackID(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.TrackID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.GetTrackID(c))
	})

	t.Run("generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		trackID := resp.Header.Get(middleware.HeaderTrackID)
		_, err = uuid.Parse(trackID)
		assert.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, trackID, string(body))
	})

	t.Run("propagated", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.HeaderTrackID, incoming)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, incoming, resp.Header.Get(middleware.HeaderTrackID))
	})
}
