package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/geodash-org/geodash-backend-go/internal/colormap"
)

// Config holds the application configuration.
type Config struct {
	Port    string
	DBPath  string
	Palette []string // ordered color names for the choropleth scale
}

// Load reads configuration from the environment, loading a .env file first
// when one is present.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/demand.db"
	}

	palette := colormap.DefaultNames
	if raw := os.Getenv("COLOR_PALETTE"); raw != "" {
		palette = nil
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				palette = append(palette, name)
			}
		}
	}

	return &Config{
		Port:    port,
		DBPath:  dbPath,
		Palette: palette,
	}
}
