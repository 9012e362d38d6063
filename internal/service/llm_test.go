package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/types"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat struct {
		Type       string `json:"type"`
		JSONSchema struct {
			Name   string          `json:"name"`
			Strict bool            `json:"strict"`
			Schema json.RawMessage `json:"schema"`
		} `json:"json_schema"`
	} `json:"response_format"`
}

func chatReply(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gemini-2.5-flash",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

// fakeOpenAI serves /chat/completions with reply and records the request
func fakeOpenAI(t *testing.T, status int, reply any) (*httptest.Server, *chatRequest) {
	t.Helper()
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newTestLLM(t *testing.T, baseURL, key string, timeout time.Duration) *LLMService {
	t.Helper()
	svc, err := NewLLMService(LLMConfig{
		APIKey:  key,
		BaseURL: baseURL,
		Model:   "gemini-2.5-flash",
		Timeout: timeout,
	}, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestLLMService_Generate(t *testing.T) {
	content := `{"recipes":[{"recipe_name":"Garlic Chicken","ingredients":["chicken breast","garlic"],"instructions":"Sear the chicken, add garlic."}]}`
	srv, got := fakeOpenAI(t, http.StatusOK, chatReply(content))
	svc := newTestLLM(t, srv.URL+"/", "test-key", time.Second)

	recipes, err := svc.Generate(context.Background(), "Suggest and provide up to 1 recipes that use the following ingredients: chicken breast, garlic.")
	require.NoError(t, err)
	assert.Equal(t, []types.Recipe{{
		RecipeName:   "Garlic Chicken",
		Ingredients:  []string{"chicken breast", "garlic"},
		Instructions: "Sear the chicken, add garlic.",
	}}, recipes)

	assert.Equal(t, "gemini-2.5-flash", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "chicken breast, garlic.")
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
	assert.Equal(t, recipeSchemaName, got.ResponseFormat.JSONSchema.Name)
	assert.True(t, got.ResponseFormat.JSONSchema.Strict)
	assert.Contains(t, string(got.ResponseFormat.JSONSchema.Schema), "recipe_name")
}

func TestLLMService_EmptyRecipeList(t *testing.T) {
	srv, _ := fakeOpenAI(t, http.StatusOK, chatReply(`{"recipes":[]}`))
	svc := newTestLLM(t, srv.URL, "test-key", time.Second)

	recipes, err := svc.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)
}

func TestLLMService_MalformedReply(t *testing.T) {
	tests := map[string]string{
		"not json":         "Here are some recipes you might like",
		"missing field":    `{"recipes":[{"recipe_name":"Soup"}]}`,
		"wrong envelope":   `[{"recipe_name":"Soup","ingredients":[],"instructions":"Boil."}]`,
		"wrong field type": `{"recipes":[{"recipe_name":"Soup","ingredients":"water","instructions":"Boil."}]}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			srv, _ := fakeOpenAI(t, http.StatusOK, chatReply(content))
			svc := newTestLLM(t, srv.URL, "test-key", time.Second)

			_, err := svc.Generate(context.Background(), "prompt")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestLLMService_NoChoices(t *testing.T) {
	srv, _ := fakeOpenAI(t, http.StatusOK, map[string]any{"id": "x", "object": "chat.completion", "choices": []any{}})
	svc := newTestLLM(t, srv.URL, "test-key", time.Second)

	_, err := svc.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestLLMService_TransportFailure(t *testing.T) {
	srv, _ := fakeOpenAI(t, http.StatusInternalServerError, map[string]any{
		"error": map[string]any{"message": "backend exploded", "type": "server_error"},
	})
	svc := newTestLLM(t, srv.URL, "test-key", time.Second)

	_, err := svc.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "backend exploded")
}

func TestLLMService_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	svc := newTestLLM(t, srv.URL, "test-key", 50*time.Millisecond)

	start := time.Now()
	_, err := svc.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLLMService_CallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	svc := newTestLLM(t, srv.URL, "test-key", time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := svc.Generate(ctx, "prompt")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLLMService_WithoutKey(t *testing.T) {
	svc := newTestLLM(t, "http://127.0.0.1:1", "", time.Second)

	assert.False(t, svc.Available())
	_, err := svc.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, errNoCredential)
}
