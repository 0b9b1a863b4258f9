package handlers

import (
	"github.com/gofiber/fiber/v2"

	"teamfeed/internal/viewer"
)

// WhoAmI shows the current signed-in viewer. The web client probes this
// on the login page to decide whether to redirect to the feed.
func WhoAmI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, ok := viewer.FromCtx(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return c.JSON(v)
	}
}
