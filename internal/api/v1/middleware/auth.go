package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	userIDKey = "user_id"
	emailKey  = "user_email"
)

type AuthConfig struct {
	Secret string
	Issuer string
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticate verifies an HS256 bearer token and stores the subject and
// email on the request. Requests without a valid token pass through with no
// identity; handlers decide whether one is required.
func Authenticate(cfg AuthConfig, logger *zap.Logger) fiber.Handler {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(options...)

	return func(c *fiber.Ctx) error {
		tokenStr, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			return c.Next()
		}

		claims := &Claims{}
		token, err := parser.ParseWithClaims(strings.TrimSpace(tokenStr), claims, func(t *jwt.Token) (any, error) {
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			logger.Debug("Rejected bearer token", zap.Error(err))
			return c.Next()
		}

		if claims.Subject == "" {
			logger.Debug("Bearer token without subject")
			return c.Next()
		}

		c.Locals(userIDKey, claims.Subject)
		c.Locals(emailKey, claims.Email)
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(userIDKey).(string)
	return userID
}

func Email(c *fiber.Ctx) string {
	email, _ := c.Locals(emailKey).(string)
	return email
}
