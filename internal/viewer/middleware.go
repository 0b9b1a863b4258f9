package viewer

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"teamfeed/internal/authctx"
	"teamfeed/internal/repository"
)

// Locals key for the built viewer.
const LocalsKey = "viewer"

// Inject builds the viewer from the authenticated user id and stores it
// in Locals. Anonymous requests pass through with no viewer set.
func Inject(db *mongo.Database) fiber.Handler {
	profiles := repository.NewProfileRepository(db)
	return func(c *fiber.Ctx) error {
		uid, ok := authctx.UserIDFrom(c)
		if !ok {
			return c.Next()
		}
		v, err := Build(c.Context(), profiles, uid)
		if errors.Is(err, ErrNoProfile) {
			return fiber.NewError(fiber.StatusForbidden, "no profile for account")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Locals(LocalsKey, v)
		return c.Next()
	}
}

// FromCtx returns the viewer set by Inject.
func FromCtx(c *fiber.Ctx) (Viewer, bool) {
	if v, ok := c.Locals(LocalsKey).(Viewer); ok && !v.Zero() {
		return v, true
	}
	return Viewer{}, false
}
