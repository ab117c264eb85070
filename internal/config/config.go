package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr     string
	DataDir        string
	MediaDir       string
	Provider       string
	ProviderAPIKey string
}

// DatabasePath is the database file inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "gifdock.db")
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr:     getEnv("SERVER_ADDR", ":8350"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		MediaDir:       getEnv("MEDIA_DIR", "./media"),
		Provider:       getEnv("PROVIDER", "klipy"),
		ProviderAPIKey: getEnv("PROVIDER_API_KEY", ""),
	}

	log.Println("✅ Config loaded")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
