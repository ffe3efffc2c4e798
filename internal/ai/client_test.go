package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-backend/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewGeminiClient(&config.AIConfig{
		Enabled:        true,
		URL:            srv.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
	})
	require.NotNil(t, client)
	return client
}

func TestGeminiClientChat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "what classes run today?", req.Contents[0].Parts[0].Text)

		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "Yoga at 18:00."}}}},
			},
		})
	})

	answer, err := client.Chat(context.Background(), "what classes run today?")
	require.NoError(t, err)
	assert.Equal(t, "Yoga at 18:00.", answer)
}

func TestGeminiClientErrors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})
		_, err := client.Chat(context.Background(), "hi")
		assert.ErrorContains(t, err, "429")
	})

	t.Run("empty candidates", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		})
		_, err := client.Chat(context.Background(), "hi")
		assert.ErrorContains(t, err, "no candidates")
	})
}

func TestNewGeminiClientDisabled(t *testing.T) {
	assert.Nil(t, NewGeminiClient(&config.AIConfig{Enabled: false}))
}
