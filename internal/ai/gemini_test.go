package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treinai_backend/internal/config"
	"treinai_backend/pkg/apperrors"
)

func candidateJSON(text string) string {
	payload, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(payload)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGeminiClient(config.AIConfig{
		APIKey:         "test-key",
		Model:          "gemini-3-flash-preview",
		Endpoint:       server.URL,
		TimeoutSeconds: 5,
	})
}

func TestGenerateWorkoutSuggestions(t *testing.T) {
	exercises := `[
		{"name": "Agachamento Livre", "category": "Pernas", "sets": 4, "reps": "8-10", "rest": 90},
		{"name": "Leg Press", "category": "Pernas", "sets": 3, "reps": "12", "rest": 60},
		{"name": "Cadeira Extensora", "category": "Pernas", "sets": 3, "reps": "15", "rest": 45},
		{"name": "Mesa Flexora", "category": "Pernas", "sets": 3, "reps": "12", "rest": 60},
		{"name": "Afundo", "category": "Pernas", "sets": 3, "reps": "10", "rest": 60},
		{"name": "Panturrilha em Pé", "category": "Pernas", "sets": 4, "reps": "20", "rest": 30}
	]`

	var gotPrompt string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		gotPrompt = req.Contents[0].Parts[0].Text
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidateJSON(exercises)))
	})

	suggestions, err := client.GenerateWorkoutSuggestions(
		context.Background(),
		"Nome: João, Objetivo: Hipertrofia, Peso: 80.0 kg, Altura: 1.80 m",
		"Pernas",
	)

	require.NoError(t, err)
	require.Len(t, suggestions, 6)
	assert.Equal(t, "Agachamento Livre", suggestions[0].Name)
	assert.Equal(t, 4, suggestions[0].Sets)
	assert.Equal(t, "8-10", suggestions[0].Reps)
	assert.Equal(t, 90, suggestions[0].Rest)
	assert.True(t, strings.Contains(gotPrompt, "Pernas"), "prompt must carry the muscle group focus")
	assert.True(t, strings.Contains(gotPrompt, "João"), "prompt must carry the student info")
}

func TestGenerateWorkoutSuggestions_EmptyListFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateJSON("[]")))
	})

	_, err := client.GenerateWorkoutSuggestions(context.Background(), "Nome: João", "")

	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
}

func TestGenerateWorkoutSuggestions_MalformedPayloadFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateJSON("not json at all")))
	})

	_, err := client.GenerateWorkoutSuggestions(context.Background(), "Nome: João", "")

	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
}

func TestGenerateWorkoutSuggestions_UpstreamErrorFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	})

	_, err := client.GenerateWorkoutSuggestions(context.Background(), "Nome: João", "Peito")

	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
}

func TestGenerateMacroTargets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateJSON(`{"calories": 2600, "protein": 180, "carbs": 300, "fat": 70}`)))
	})

	macros, err := client.GenerateMacroTargets(context.Background(), "Nome: João, Objetivo: Hipertrofia")

	require.NoError(t, err)
	assert.Equal(t, 2600.0, macros.Calories)
	assert.Equal(t, 180.0, macros.Protein)
	assert.Equal(t, 300.0, macros.Carbs)
	assert.Equal(t, 70.0, macros.Fat)
}

func TestGenerateMacroTargets_ZeroCaloriesFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateJSON(`{"calories": 0, "protein": 0, "carbs": 0, "fat": 0}`)))
	})

	_, err := client.GenerateMacroTargets(context.Background(), "Nome: João")

	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
}

func TestGenerateNoCandidatesFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.GenerateMacroTargets(context.Background(), "Nome: João")

	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
}
