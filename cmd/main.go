package main

import (
	"log"

	"github.com/gifdock/gifdock/internal/config"
	"github.com/gifdock/gifdock/internal/database"
	"github.com/gifdock/gifdock/internal/downloader"
	"github.com/gifdock/gifdock/internal/provider"
	"github.com/gifdock/gifdock/internal/provider/giphy"
	"github.com/gifdock/gifdock/internal/provider/klipy"
	"github.com/gifdock/gifdock/internal/server"
)

func main() {
	cfg := config.Load()

	// ========== DATABASE SETUP ==========
	db, err := database.Open(cfg.DatabasePath())
	if err != nil {
		log.Fatal("❌ Database connection failed: ", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== MEDIA TREE ==========
	dl := downloader.New(cfg.MediaDir, nil)
	if err := dl.EnsureDirectories(); err != nil {
		log.Fatal("❌ Failed to initialize media directories: ", err)
	}
	log.Println("✅ Media directories ready")

	// ========== PROVIDER ==========
	providerClient := buildProvider(cfg, db)
	if providerClient == nil {
		log.Println("⚠️  No provider API key configured, remote search disabled")
	} else {
		log.Printf("✅ Provider ready: %s", providerClient.Source())
	}

	app := server.New(server.Deps{
		DB:             db,
		Downloader:     dl,
		ProviderClient: providerClient,
	})

	log.Printf("🚀 Server starting on %s", cfg.ServerAddr)
	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Server failed: ", err)
	}
}

// buildProvider picks the configured provider client. The API key comes from
// the environment, falling back to the one stored in settings.
func buildProvider(cfg *config.Config, db *database.Database) provider.Client {
	apiKey := cfg.ProviderAPIKey
	if apiKey == "" {
		if stored, err := db.Settings().Get(); err == nil && stored.APIKey != nil {
			apiKey = *stored.APIKey
		}
	}
	if apiKey == "" {
		return nil
	}

	switch cfg.Provider {
	case "giphy":
		return giphy.New(apiKey, nil)
	default:
		return klipy.New(apiKey, nil)
	}
}
