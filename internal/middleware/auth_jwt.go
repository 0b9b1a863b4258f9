package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// TokenVerifier validates a bearer token and returns the account and
// session ids it names. Satisfied by *identity.Provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (userID, sessionID bson.ObjectID, err error)
}

// BearerAuth extracts the bearer token, verifies it and stores the
// account and session ids in Locals. Requests without an Authorization
// header pass through anonymous; RequireAuth gates the routes that need
// a signed-in viewer.
func BearerAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Next()
		}

		tokenStr := strings.TrimSpace(auth[7:])
		userID, sessionID, err := verifier.Verify(c.Context(), tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("user_id", userID.Hex())
		c.Locals("session_id", sessionID.Hex())
		return c.Next()
	}
}
