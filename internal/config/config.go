// Package config loads process configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the knobs shared by the CLI and the server.
type Config struct {
	DBPath     string
	ListenAddr string
	ServerURL  string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present; a missing file is not
// an error.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, err
		}
	} else {
		_ = godotenv.Load()
	}

	return &Config{
		DBPath:     getenv("HOMELEDGER_DB", "homeledger.db"),
		ListenAddr: getenv("HOMELEDGER_ADDR", ":8791"),
		ServerURL:  getenv("HOMELEDGER_SERVER", "http://localhost:8791"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
