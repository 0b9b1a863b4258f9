package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"teamfeed/internal/handlers"
	"teamfeed/internal/identity"
	"teamfeed/internal/middleware"
	"teamfeed/internal/repository"
	"teamfeed/internal/viewer"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	DB       *mongo.Database
	Provider *identity.Provider
}

// Register mounts all HTTP routes in one place.
// Keep paths lowercase, grouped by resource, and easy to discover.
func Register(app *fiber.App, d Deps) {
	store := repository.NewMongoStore(d.DB)

	auth := handlers.NewAuthHandler(d.Provider)
	feed := handlers.NewFeedHandler(store.Posts, store.Profiles)
	post := handlers.NewPostHandler(store.Posts)
	like := handlers.NewLikeHandler(store.Likes)
	comment := handlers.NewCommentHandler(store.Comments)

	api := app.Group("/api")

	// ============================================================
	// Auth (no viewer required)
	// ============================================================
	api.Post("/auth/signup", auth.SignUp)
	api.Post("/auth/signin", auth.SignIn)
	api.Post("/auth/signout", middleware.RequireAuth(), auth.SignOut)

	// ============================================================
	// Feed and posts (signed-in viewer with a profile)
	// ============================================================
	authed := api.Group("", middleware.RequireAuth(), viewer.Inject(d.DB))

	authed.Get("/whoami", handlers.WhoAmI())
	authed.Get("/feed", feed.Feed)

	posts := authed.Group("/posts")
	posts.Post("/", post.Create)
	posts.Put("/:postId/like", like.Like)
	posts.Delete("/:postId/like", like.Unlike)
	posts.Post("/:postId/comments", comment.Create)

	// ============================================================
	// Misc
	// ============================================================

	// Health check
	// GET /api/healthz → "ok"
	api.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
