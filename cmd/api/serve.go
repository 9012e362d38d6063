package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/config"
	"github.com/pageza/recipe-robot/backend/internal/api"
	"github.com/pageza/recipe-robot/backend/internal/database"
	"github.com/pageza/recipe-robot/backend/internal/logger"
	"github.com/pageza/recipe-robot/backend/internal/metrics"
	"github.com/pageza/recipe-robot/backend/internal/router"
	"github.com/pageza/recipe-robot/backend/internal/server"
	"github.com/pageza/recipe-robot/backend/internal/service"
	"github.com/pageza/recipe-robot/backend/internal/types"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		port    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

At startup the ingredient CSV is imported into a fresh store. The store is
discarded again on shutdown.

Environment variables:
  ENV                     development, test or production (default: development)
  SERVER_HOST             Host to bind to (default: 0.0.0.0)
  SERVER_PORT             Port to listen on (default: 8000)
  DATABASE_URL            sqlite:///path or postgres:// URL (default: sqlite:///database.db)
  INGREDIENTS_CSV_PATH    Local path or s3://bucket/key (default: data/unique_indexed_ingredients.csv)
  INGREDIENTS_CSV_COLUMN  Column holding ingredient names (default: descrip)
  GEMINI_API_KEY          Credential for the generation service
  GEMINI_MODEL            Model name (default: gemini-2.5-flash)
  LLM_TIMEOUT             Per-call timeout (default: 60s)
  ALLOWED_ORIGINS         Comma-separated CORS origins`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := os.Setenv("ENV_FILE", envFile); err != nil {
					return err
				}
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if port != "" {
				cfg.ServerPort = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (overrides SERVER_PORT)")

	return cmd
}

func runServe(parent context.Context, cfg *config.Config) (err error) {
	if parent == nil {
		parent = context.Background()
	}
	env := config.GetEnvironment()
	log, err := logger.New(env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	store := database.NewFoodStore(db, cfg.MaxFoodResults, log)
	defer func() {
		if resetErr := store.Reset(context.Background()); resetErr != nil {
			log.Error("Failed to reset ingredient store", zap.Error(resetErr))
			err = errors.Join(err, resetErr)
		}
	}()

	if err := db.Recreate(ctx); err != nil {
		return err
	}

	opener := database.SourceOpener{}
	if strings.HasPrefix(cfg.IngredientsCSVPath, "s3://") {
		s3cfg, err := config.NewS3Config(ctx, cfg.AWSRegion)
		if err != nil {
			return err
		}
		opener.S3 = s3cfg.Client
	}

	m := metrics.NewCollector()
	loaded, err := database.ImportIngredients(ctx, store, opener, cfg.IngredientsCSVPath, cfg.IngredientsCSVColumn, log)
	if err != nil {
		return fmt.Errorf("import ingredients: %w", err)
	}
	m.IngredientsLoaded(loaded)

	llm, err := service.NewLLMService(service.LLMConfig{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.LLMTimeout,
	}, log)
	if err != nil {
		return err
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := router.SetupRouter(cfg.AllowedOrigins, api.Dependencies{
		Foods:   service.NewFoodService(store, cfg.MinSearchLength, cfg.MaxFoodResults, m, log),
		Recipes: service.NewRecipeService(llm, m, log),
		Store:   store,
		Defaults: types.RecipeDefaults{
			MaxRecipes:   cfg.DefaultMaxRecipes,
			CuisineStyle: cfg.DefaultCuisineStyle,
		},
		Metrics: m,
		Log:     log,
	})

	log.Info("Recipe Robot starting",
		zap.String("version", version),
		zap.String("env", string(env)),
		zap.String("addr", cfg.Addr()),
		zap.String("database", string(db.Dialect())),
		zap.Int("ingredients", loaded),
		zap.Bool("api_available", llm.Available()))

	return server.New(cfg.Addr(), handler, cfg.ShutdownTimeout, log).Run(ctx)
}
