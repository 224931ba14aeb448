package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGemini("test-key", "gemma-3-27b-it")
	g.baseURL = srv.URL
	return g
}

func TestGenerateReturnsText(t *testing.T) {
	var gotTemp float64
	g := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var payload geminiPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		gotTemp = payload.GenerationConfig.Temperature

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"name\": \"Vera\"}"}]}}]}`))
	})

	text, err := g.Generate(context.Background(), "write a profile", 1.1)
	require.NoError(t, err)
	assert.Equal(t, `{"name": "Vera"}`, text)
	assert.Equal(t, 1.1, gotTemp)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	g := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	})

	_, err := g.Generate(context.Background(), "prompt", 1.1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestGenerateMissingKey(t *testing.T) {
	g := NewGemini("", "gemma-3-27b-it")

	_, err := g.Generate(context.Background(), "prompt", 1.1)
	require.Error(t, err)
}
