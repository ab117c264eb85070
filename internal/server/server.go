package server

import (
	"sync"

	"github.com/gifdock/gifdock/internal/database"
	"github.com/gifdock/gifdock/internal/downloader"
	"github.com/gifdock/gifdock/internal/favorites"
	"github.com/gifdock/gifdock/internal/provider"
	"github.com/gifdock/gifdock/internal/search"
	"github.com/gifdock/gifdock/internal/settings"
	"github.com/gofiber/fiber/v2"
)

// Deps carries everything the command boundary needs. ProviderClient may be
// nil when no API key is configured, which disables the remote proxy routes'
// results without failing them.
type Deps struct {
	DB             *database.Database
	Downloader     *downloader.Downloader
	ProviderClient provider.Client
}

func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024,
	})

	app.Static("/media", deps.Downloader.MediaDir(), fiber.Static{
		Compress:  true,
		ByteRange: true,
		Browse:    false,
		MaxAge:    3600,
	})

	// One coarse lock serializes every command invocation, mirroring the
	// single shared application state the GUI shell expects.
	mu := &sync.Mutex{}

	favoritesHandler := favorites.NewHandler(favorites.NewService(deps.DB, deps.Downloader), mu)
	settingsHandler := settings.NewHandler(deps.DB, mu)
	searchHandler := search.NewHandler(search.NewService(deps.DB, deps.ProviderClient), mu)

	SetupRoutes(app, favoritesHandler, settingsHandler, searchHandler)

	return app
}
