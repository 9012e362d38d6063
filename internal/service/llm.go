package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/types"
)

const recipeSchemaName = "recipe_suggestions"

var errNoCredential = errors.New("GEMINI_API_KEY is not configured")

// recipeEnvelope is the structured reply requested from the model
type recipeEnvelope struct {
	Recipes []types.Recipe `json:"recipes"`
}

// LLMConfig holds the settings for the recipe generator
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService generates recipes through an OpenAI-compatible chat endpoint
type LLMService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	schema  *jsonschema.Definition
	hasKey  bool
	log     *zap.Logger
}

// NewLLMService creates a new LLMService instance. A missing API key is not
// an error; Generate fails until one is configured.
func NewLLMService(cfg LLMConfig, log *zap.Logger) (*LLMService, error) {
	schema, err := jsonschema.GenerateSchemaForType(recipeEnvelope{})
	if err != nil {
		return nil, fmt.Errorf("failed to build recipe schema: %w", err)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	log = log.Named("llm")
	if cfg.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set, recipe generation is unavailable")
	}

	return &LLMService{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		schema:  schema,
		hasKey:  cfg.APIKey != "",
		log:     log,
	}, nil
}

// Available reports whether an API key is configured
func (s *LLMService) Available() bool {
	return s.hasKey
}

// Generate sends prompt as a single user message and decodes the structured
// reply. Decode failures are ErrMalformedResponse.
func (s *LLMService) Generate(ctx context.Context, prompt string) ([]types.Recipe, error) {
	if !s.hasKey {
		return nil, errNoCredential
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   recipeSchemaName,
				Schema: s.schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, NewError(ErrMalformedResponse, "No choices in model response", nil)
	}

	content := resp.Choices[0].Message.Content
	var envelope recipeEnvelope
	if err := s.schema.Unmarshal(content, &envelope); err != nil {
		s.log.Warn("Model reply did not match the recipe schema", zap.Int("length", len(content)), zap.Error(err))
		return nil, NewError(ErrMalformedResponse, "Could not decode recipes", err)
	}
	if envelope.Recipes == nil {
		envelope.Recipes = []types.Recipe{}
	}

	s.log.Debug("Generated recipes", zap.Int("count", len(envelope.Recipes)), zap.String("model", s.model))
	return envelope.Recipes, nil
}
