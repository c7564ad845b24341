package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config contains runtime settings for the PositionFit server.
type Config struct {
	LogLevel       string
	Host           string // default 0.0.0.0
	Port           string // default PORT env or 8080
	StoreNamespace string // prefix of every user key

	Neo4j struct {
		URI      string
		Username string
		Password string
	} // empty URI falls back to the in-memory store

	Gemini struct {
		APIKey string
		Model  string
	} // empty key disables the AI-backed pipeline steps

	Sheets struct {
		CredentialsPath string
	} // empty path disables the board export
}

// Load populates config from a .env file (when present) and environment
// variables. Nothing is strictly required: missing integrations degrade to
// their fallbacks instead of failing startup.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel:       "info",
		Host:           "0.0.0.0",
		Port:           "8080",
		StoreNamespace: "positionfit",
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("STORE_NAMESPACE"); v != "" {
		cfg.StoreNamespace = v
	}

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Gemini.Model = os.Getenv("GEMINI_MODEL")

	cfg.Sheets.CredentialsPath = os.Getenv("SHEETS_CREDENTIALS_PATH")

	return cfg, nil
}
