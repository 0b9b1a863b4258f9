package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"teamfeed/bootstrap"
	"teamfeed/configs"
	"teamfeed/database"
	_ "teamfeed/docs"
	"teamfeed/internal/identity"
	"teamfeed/internal/middleware"
	"teamfeed/internal/routes"
)

func init() {
	// Values from .env take precedence over the ambient environment.
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}

func main() {
	cfg := configs.Load()
	if cfg.JWTSecret == "" {
		panic("JWT_SECRET is required")
	}

	// --- MongoDB Connection ---
	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	defer database.Disconnect(client)
	db := client.Database(cfg.DBName)

	if err := bootstrap.EnsureIndexes(db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	provider := identity.NewProvider(db, []byte(cfg.JWTSecret))

	// --- Fiber App Setup ---
	app := fiber.New()

	// Swagger docs
	app.Get("/docs/*", swagger.HandlerDefault)

	app.Use(middleware.BearerAuth(provider))

	routes.Register(app, routes.Deps{
		DB:       db,
		Provider: provider,
	})

	log.Printf("listening at http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
