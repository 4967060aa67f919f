package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maps-assistant-backend/internal/types"
)

type chatReq struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Tools []any `json:"tools"`
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":     "cmpl-1",
		"object": "chat.completion",
		"model":  "llama3.2",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
	return string(b)
}

func newTestGateway(url string, timeout time.Duration) *Gateway {
	return NewGateway(Options{BaseURL: url, APIKey: "ollama", Model: "llama3.2", Timeout: timeout, Prompt: DefaultPrompt()}, zerolog.Nop())
}

func TestConverseSuccess(t *testing.T) {
	var got chatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion("Sure, here you go.")))
	}))
	defer srv.Close()

	history := []types.ConversationTurn{
		{Role: types.RoleUser, Content: "hi"},
		{Role: types.RoleAssistant, Content: "hello!"},
	}
	out := newTestGateway(srv.URL, time.Second).Converse(context.Background(), "be nice", history, "find coffee")

	assert.False(t, out.Degraded())
	assert.Equal(t, "Sure, here you go.", out.Text)
	assert.Equal(t, "llama3.2", got.Model)
	assert.Empty(t, got.Tools)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "be nice", got.Messages[0].Content)
	assert.Equal(t, "hi", got.Messages[1].Content)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "user", got.Messages[3].Role)
	assert.Equal(t, "find coffee", got.Messages[3].Content)
}

func TestConverseTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	out := newTestGateway(srv.URL, 50*time.Millisecond).Converse(context.Background(), "", nil, "hi")
	assert.Equal(t, FailureTimeout, out.Kind)
	assert.Equal(t, TimeoutFallback, out.Text)
	assert.Error(t, out.Err)
}

func TestConverseConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out := newTestGateway(url, time.Second).Converse(context.Background(), "", nil, "hi")
	assert.Equal(t, FailureConnectionRefused, out.Kind)
	assert.Equal(t, ConnectionFallback, out.Text)
}

func TestConverseProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"model \"nope\" not found","type":"api_error"}}`))
	}))
	defer srv.Close()

	out := newTestGateway(srv.URL, time.Second).Converse(context.Background(), "", nil, "hi")
	assert.Equal(t, FailureProtocol, out.Kind)
	assert.Contains(t, out.Text, "LLM error: ")
	assert.Contains(t, out.Text, "not found")
}

func TestConverseEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	out := newTestGateway(srv.URL, time.Second).Converse(context.Background(), "", nil, "hi")
	assert.Equal(t, FailureProtocol, out.Kind)
	assert.Equal(t, "LLM error: empty completion", out.Text)
}

func TestFallbacksAreDistinct(t *testing.T) {
	a := degrade(FailureTimeout, context.DeadlineExceeded).Text
	b := degrade(FailureConnectionRefused, assert.AnError).Text
	c := degrade(FailureProtocol, assert.AnError).Text
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
	assert.NotEqual(t, a, c)
}
