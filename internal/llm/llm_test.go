package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neighborly/internal/config"
)

func openAIConfig(baseURL, key string) config.AI {
	return config.AI{
		Enabled:  true,
		Provider: config.ProviderOpenAI,
		Timeout:  "2s",
		OpenAI: config.OpenAIConfig{
			APIKey:  key,
			Model:   "gpt-4o-mini",
			BaseURL: baseURL,
		},
	}
}

// countingServer records every request that reaches it.
func countingServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func chatCompletionBody(content string) string {
	resp := map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestNew_DisabledWithoutKey(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)

	gen, err := New(openAIConfig(srv.URL+"/v1", ""))
	require.NoError(t, err)

	instrumented, ok := gen.(*InstrumentedGenerator)
	require.True(t, ok)
	assert.False(t, instrumented.Enabled())
	assert.Equal(t, "gpt-4o-mini", gen.Model())

	_, err = gen.GenerateText(context.Background(), TextRequest{System: "s", User: "u"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits), "disabled client must not touch the network")
}

func TestNew_DisabledByToggle(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)

	cfg := openAIConfig(srv.URL+"/v1", "sk-test")
	cfg.Enabled = false

	gen, err := New(cfg)
	require.NoError(t, err)

	_, err = gen.GenerateText(context.Background(), TextRequest{System: "s", User: "u"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestNew_UnknownProvider(t *testing.T) {
	cfg := openAIConfig("", "sk-test")
	cfg.Provider = "carrier-pigeon"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestOpenAIClient_GenerateText(t *testing.T) {
	bodies := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies <- body

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody(`{"Themes":["Luau"]}`)))
	}))
	defer srv.Close()

	gen, err := New(openAIConfig(srv.URL+"/v1", "sk-test"))
	require.NoError(t, err)

	text, err := gen.GenerateText(context.Background(), TextRequest{
		System:      "system prompt",
		User:        "user prompt",
		Temperature: 0.7,
		JSONObject:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"Themes":["Luau"]}`, text)

	captured := <-bodies
	require.NotNil(t, captured)
	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.InDelta(t, 0.7, captured["temperature"], 0.0001)
	format, ok := captured["response_format"].(map[string]any)
	require.True(t, ok, "response_format should be present")
	assert.Equal(t, "json_object", format["type"])

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user prompt", messages[1].(map[string]any)["content"])
}

func TestOpenAIClient_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
	}))
	defer srv.Close()

	gen, err := New(openAIConfig(srv.URL+"/v1", "sk-test"))
	require.NoError(t, err)

	_, err = gen.GenerateText(context.Background(), TextRequest{System: "s", User: "u"})
	assert.ErrorIs(t, err, ErrInvocation)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[],"usage":{"total_tokens":1}}`))
	}))
	defer srv.Close()

	gen, err := New(openAIConfig(srv.URL+"/v1", "sk-test"))
	require.NoError(t, err)

	_, err = gen.GenerateText(context.Background(), TextRequest{System: "s", User: "u"})
	assert.ErrorIs(t, err, ErrInvocation)
}

func TestOpenAIClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := openAIConfig(srv.URL+"/v1", "sk-test")
	cfg.Timeout = "50ms"

	gen, err := New(cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = gen.GenerateText(context.Background(), TextRequest{System: "s", User: "u"})
	assert.ErrorIs(t, err, ErrInvocation)
	assert.Less(t, time.Since(start), time.Second)
}

func TestOllamaClient_GenerateText(t *testing.T) {
	bodies := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies <- body

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3.2","created_at":"2025-01-01T00:00:00Z",` +
			`"message":{"role":"assistant","content":"{\"timeline\":[]}"},` +
			`"done":true,"prompt_eval_count":30,"eval_count":10}` + "\n"))
	}))
	defer srv.Close()

	cfg := config.AI{
		Enabled:  true,
		Provider: config.ProviderOllama,
		Timeout:  "2s",
		Ollama:   config.OllamaConfig{BaseURL: srv.URL + "/v1", Model: "llama3.2"},
	}
	gen, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "llama3.2", gen.Model())

	text, err := gen.GenerateText(context.Background(), TextRequest{
		System:      "sys",
		User:        "usr",
		Temperature: 0.6,
		JSONObject:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"timeline":[]}`, text)

	captured := <-bodies
	require.NotNil(t, captured)
	assert.Equal(t, "llama3.2", captured["model"])
	assert.Equal(t, "json", captured["format"])
	assert.Equal(t, false, captured["stream"])
	options, ok := captured["options"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.6, options["temperature"], 0.0001)
}

func TestOllamaClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"llama3.2\" not found"}`))
	}))
	defer srv.Close()

	gen, err := New(config.AI{
		Enabled:  true,
		Provider: config.ProviderOllama,
		Ollama:   config.OllamaConfig{BaseURL: srv.URL, Model: "llama3.2"},
	})
	require.NoError(t, err)

	_, err = gen.GenerateText(context.Background(), TextRequest{System: "s", User: "u"})
	assert.ErrorIs(t, err, ErrInvocation)
}

func TestNew_GeminiWithoutKeyIsDisabled(t *testing.T) {
	gen, err := New(config.AI{
		Enabled:  true,
		Provider: config.ProviderGemini,
		Gemini:   config.GeminiConfig{Model: "gemini-flash-lite-latest"},
	})
	require.NoError(t, err)

	_, err = gen.GenerateText(context.Background(), TextRequest{})
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.Equal(t, "gemini-flash-lite-latest", gen.Model())
}
