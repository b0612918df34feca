package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"treinai_backend/internal/config"
	"treinai_backend/internal/logger"
	"treinai_backend/pkg/apperrors"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// ExerciseSuggestion is one AI-proposed exercise. Reps stays a string
// because trainers write things like "12-15" or "até a falha".
type ExerciseSuggestion struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Sets     int    `json:"sets"`
	Reps     string `json:"reps"`
	Rest     int    `json:"rest"`
}

// MacroTargets is the AI-proposed daily nutrition split.
type MacroTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Generator produces workout and nutrition suggestions. Implementations
// must honor ctx cancellation; generation calls carry a hard deadline.
type Generator interface {
	GenerateWorkoutSuggestions(ctx context.Context, studentInfo, muscleGroup string) ([]ExerciseSuggestion, error)
	GenerateMacroTargets(ctx context.Context, studentInfo string) (*MacroTargets, error)
}

// GeminiClient calls the Gemini generateContent REST endpoint with a
// response schema so replies come back as strict JSON.
type GeminiClient struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func NewGeminiClient(cfg config.AIConfig) *GeminiClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &GeminiClient{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Wire format of the generateContent request and response. Only the
// fields this client touches are modeled.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var exerciseSchema = json.RawMessage(`{
	"type": "ARRAY",
	"items": {
		"type": "OBJECT",
		"properties": {
			"name": {"type": "STRING"},
			"category": {"type": "STRING"},
			"sets": {"type": "NUMBER"},
			"reps": {"type": "STRING"},
			"rest": {"type": "NUMBER"}
		},
		"required": ["name", "category", "sets", "reps", "rest"]
	}
}`)

var macroSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"calories": {"type": "NUMBER"},
		"protein": {"type": "NUMBER"},
		"carbs": {"type": "NUMBER"},
		"fat": {"type": "NUMBER"}
	},
	"required": ["calories", "protein", "carbs", "fat"]
}`)

func (g *GeminiClient) GenerateWorkoutSuggestions(ctx context.Context, studentInfo, muscleGroup string) ([]ExerciseSuggestion, error) {
	focus := "objetivo do aluno"
	focusPrompt := ""
	if muscleGroup != "" {
		focus = muscleGroup
		focusPrompt = fmt.Sprintf(" focado especificamente em %s", muscleGroup)
	}

	prompt := fmt.Sprintf(
		"Você é um Personal Trainer especialista em hipertrofia. "+
			"Com base nas informações do aluno: %s, sugira uma lista de 6 exercícios para um treino%s. "+
			"Certifique-se de que TODOS os exercícios sejam relacionados a %s. "+
			"Retorne estritamente um array JSON de objetos conforme o esquema.",
		studentInfo, focusPrompt, focus,
	)

	raw, err := g.generate(ctx, prompt, exerciseSchema)
	if err != nil {
		return nil, err
	}

	var suggestions []ExerciseSuggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		logger.CtxWithError(ctx, "AI returned unparseable exercise payload", err)
		return nil, apperrors.ErrGenerationFailed
	}
	if len(suggestions) == 0 {
		// An empty list means the model produced nothing usable; the
		// caller surfaces a generation failure rather than a blank plan.
		return nil, apperrors.ErrGenerationFailed
	}

	return suggestions, nil
}

func (g *GeminiClient) GenerateMacroTargets(ctx context.Context, studentInfo string) (*MacroTargets, error) {
	prompt := fmt.Sprintf(
		"Com base no aluno: %s, sugira uma meta calórica e divisão de macros (Proteína, Carbo, Gordura) para um dia.",
		studentInfo,
	)

	raw, err := g.generate(ctx, prompt, macroSchema)
	if err != nil {
		return nil, err
	}

	var macros MacroTargets
	if err := json.Unmarshal(raw, &macros); err != nil {
		logger.CtxWithError(ctx, "AI returned unparseable macro payload", err)
		return nil, apperrors.ErrGenerationFailed
	}
	if macros.Calories == 0 {
		return nil, apperrors.ErrGenerationFailed
	}

	return &macros, nil
}

// generate performs one generateContent round trip and returns the text
// of the first candidate, which the schema guarantees is JSON.
func (g *GeminiClient) generate(ctx context.Context, prompt string, schema json.RawMessage) ([]byte, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		logger.CtxWithError(ctx, "AI request failed", err)
		return nil, apperrors.ErrGenerationFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrGenerationFailed
	}

	if resp.StatusCode != http.StatusOK {
		logger.CtxError(ctx, "AI request rejected", "status", resp.StatusCode, "body", string(body))
		return nil, apperrors.ErrGenerationFailed
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, apperrors.ErrGenerationFailed
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, apperrors.ErrGenerationFailed
	}

	return []byte(genResp.Candidates[0].Content.Parts[0].Text), nil
}
