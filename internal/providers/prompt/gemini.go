package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storyboard/internal/genai"
)

const geminiTemperature = 0.7

// GeminiOptimizer enriches scene descriptions through a Gemini text model.
type GeminiOptimizer struct {
	client *genai.Client
	model  string
}

// NewGeminiOptimizer wires the shared Gemini client to a text model.
func NewGeminiOptimizer(client *genai.Client, model string) (*GeminiOptimizer, error) {
	if client == nil {
		return nil, errors.New("prompt: gemini client is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("prompt: model is required")
	}
	return &GeminiOptimizer{client: client, model: model}, nil
}

// Optimize sends the scene description with the storyboard-artist system
// instruction and returns the model's prompt. A successful response with empty
// text falls back to the original description unchanged; that is the only
// silent substitution. Any call failure is returned to the caller.
func (g *GeminiOptimizer) Optimize(ctx context.Context, req Request) (string, error) {
	resp, err := g.client.GenerateContent(ctx, g.model, genai.GenerateContentRequest{
		SystemInstruction: &genai.Content{
			Parts: []genai.Part{{Text: buildSystemInstruction(req)}},
		},
		Contents: []genai.Content{{
			Role:  "user",
			Parts: []genai.Part{{Text: "Transform this scene: " + req.SceneText}},
		}},
		GenerationConfig: &genai.GenerationConfig{Temperature: geminiTemperature},
	})
	if err != nil {
		return "", fmt.Errorf("prompt: optimize scene: %w", err)
	}
	if text := resp.Text(); text != "" {
		return text, nil
	}
	return req.SceneText, nil
}

func buildSystemInstruction(req Request) string {
	sb := &strings.Builder{}
	sb.WriteString("You are a world-class storyboard artist and image prompting expert. ")
	sb.WriteString("Your goal is to transform a Korean or English scene description into a highly detailed, professional English image generation prompt. ")
	sb.WriteString("Focus on lighting, camera angle, composition, and specific character traits. ")
	fmt.Fprintf(sb, "The style should be: %s.", req.StylePreset)
	if notes := strings.TrimSpace(req.StyleNotes); notes != "" {
		fmt.Fprintf(sb, " Additional style details: %s.", notes)
	}
	fmt.Fprintf(sb, " Characters involved: %s. ", CharacterNames(req.Characters))
	sb.WriteString("Output ONLY the final English prompt, no explanations.")
	return sb.String()
}

var _ Optimizer = (*GeminiOptimizer)(nil)
