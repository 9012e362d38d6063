package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost      string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ServerPort      string        `envconfig:"SERVER_PORT" default:"8000" validate:"required,numeric"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s" validate:"gt=0"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// CORS configuration
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,https://recipe-robot-ui.onrender.com" validate:"dive,url"`

	// Database configuration. A plain path or sqlite:// URL selects SQLite,
	// postgres:// or postgresql:// selects PostgreSQL.
	DatabaseURL string `envconfig:"DATABASE_URL" default:"sqlite:///database.db" validate:"required"`

	// Ingredient source: a local path or s3://bucket/key
	IngredientsCSVPath   string `envconfig:"INGREDIENTS_CSV_PATH" default:"data/unique_indexed_ingredients.csv"`
	IngredientsCSVColumn string `envconfig:"INGREDIENTS_CSV_COLUMN" default:"descrip" validate:"required"`
	AWSRegion            string `envconfig:"AWS_REGION"`

	// Generation service configuration
	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash" validate:"required"`
	GeminiBaseURL string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta/openai/" validate:"required,url"`
	LLMTimeout    time.Duration `envconfig:"LLM_TIMEOUT" default:"60s" validate:"gt=0"`

	// API settings
	MinSearchLength     int    `envconfig:"MIN_SEARCH_LENGTH" default:"3" validate:"gte=1"`
	MaxFoodResults      int    `envconfig:"MAX_FOOD_RESULTS" default:"20" validate:"gte=1"`
	DefaultMaxRecipes   int    `envconfig:"DEFAULT_MAX_RECIPES" default:"3" validate:"gte=1"`
	DefaultCuisineStyle string `envconfig:"DEFAULT_CUISINE_STYLE" default:"any" validate:"required"`
}

// LoadConfig creates a new Config instance from an optional .env file and the
// process environment. Variables already set in the environment win over the
// file.
func LoadConfig() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}
