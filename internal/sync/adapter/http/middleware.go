package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"opsbridge/internal/shared/contextkeys"
	"opsbridge/internal/shared/logger"
)

// requesterClaims carries the requester identity inside the access token.
type requesterClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// RequireAuth validates the bearer token and places the requester name in both
// the Fiber locals and the user context so downstream code never touches the
// token itself.
func RequireAuth(secret string, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "authentication_required",
				"message": "Bearer token required",
			})
		}

		claims := &requesterClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			log.Warn("rejected request with invalid token", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "invalid_token",
				"message": "Token is invalid or expired",
			})
		}

		requester := claims.Name
		if requester == "" {
			requester = claims.Subject
		}
		c.Locals(string(contextkeys.RequesterKey), requester)
		ctx := context.WithValue(c.UserContext(), contextkeys.RequesterKey, requester)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", fmt.Errorf("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("malformed authorization header")
	}
	return parts[1], nil
}

// RequesterFromCtx returns the authenticated requester name, if any.
func RequesterFromCtx(c *fiber.Ctx) string {
	if name, ok := c.Locals(string(contextkeys.RequesterKey)).(string); ok {
		return name
	}
	return ""
}
