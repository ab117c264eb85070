package server

import (
	"time"

	"github.com/gifdock/gifdock/internal/favorites"
	"github.com/gifdock/gifdock/internal/search"
	"github.com/gifdock/gifdock/internal/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, fav *favorites.Handler, set *settings.Handler, src *search.Handler) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "gifdock API is running",
		})
	})

	// ==========================================
	// FAVORITES
	// ==========================================
	favGroup := app.Group("/favorites")
	favGroup.Get("/", fav.List)
	favGroup.Get("/search", fav.Search)
	favGroup.Post("/", fav.Create)
	favGroup.Post("/import", fav.Import)
	favGroup.Post("/remote", fav.AddRemote)
	favGroup.Get("/:id", fav.Get)
	favGroup.Put("/:id", fav.Update)
	favGroup.Delete("/:id", fav.Delete)
	favGroup.Post("/:id/use", fav.IncrementUse)

	// ==========================================
	// SETTINGS
	// ==========================================
	setGroup := app.Group("/settings")
	setGroup.Get("/", set.Get)
	setGroup.Put("/", set.Save)
	setGroup.Patch("/:key", set.Update)

	// ==========================================
	// SEARCH (local + provider proxy, rate-limited upstream)
	// ==========================================
	app.Get("/search", src.Combined)

	providerGroup := app.Group("/providers")
	providerGroup.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
	}))
	providerGroup.Get("/search", src.Provider)
	providerGroup.Get("/trending", src.Trending)
	providerGroup.Get("/categories", src.Categories)
	providerGroup.Get("/autocomplete", src.Autocomplete)
	providerGroup.Get("/suggestions", src.Suggestions)

	// ==========================================
	// MEDIA
	// ==========================================
	app.Post("/media/temp", fav.DownloadTemp)
}
