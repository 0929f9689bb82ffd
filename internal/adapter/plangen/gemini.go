package plangen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"sidewalksafe/pkg/e"
)

// Generator is the plan-generation boundary: hazard description in,
// free-form plan text out.
type Generator interface {
	GeneratePlan(ctx context.Context, hazardDescription string) (string, error)
}

// Unavailable stands in when no plan-provider key is configured. Every call
// fails with e.ErrExternalService.
type Unavailable struct{}

func (Unavailable) GeneratePlan(context.Context, string) (string, error) {
	return "", fmt.Errorf("plan generation not configured: %w", e.ErrExternalService)
}

// GeminiGenerator produces remediation plans with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("plangen: API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("plangen: create client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model, logger: logger}, nil
}

const planPromptTemplate = `Generate a detailed project plan for resolving the following sidewalk hazard:
Hazard: %s

The plan should include:
1. A description of actions.
2. A timeline.
3. Required people.
4. Equipment or materials needed.
5. An estimated budget.`

func (g *GeminiGenerator) GeneratePlan(ctx context.Context, hazardDescription string) (string, error) {
	prompt := fmt.Sprintf(planPromptTemplate, hazardDescription)

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.7),
			MaxOutputTokens: 500,
			SystemInstruction: genai.NewContentFromText(
				"You are a helpful assistant.", genai.RoleUser),
		},
	)
	if err != nil {
		g.logger.Error("plan generation failed", slog.Any("error", err))
		return "", fmt.Errorf("generate plan: %w", e.ErrExternalService)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty plan response: %w", e.ErrExternalService)
	}
	return text, nil
}
