package image

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storyboard/internal/genai"
)

// GeminiGenerator renders frames through a Gemini image model.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator wires the shared Gemini client to an image model.
func NewGeminiGenerator(client *genai.Client, model string) (*GeminiGenerator, error) {
	if client == nil {
		return nil, errors.New("image: gemini client is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("image: model is required")
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate sends the reference images followed by the text prompt and returns
// the first inline image as a data URI. A response without any image payload
// yields ErrNoImage.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	parts := make([]genai.Part, 0, len(req.References)+1)
	for _, ref := range req.References {
		parts = append(parts, genai.Part{InlineData: &genai.InlineData{
			MIMEType: ref.MIMEType,
			Data:     ref.Data,
		}})
	}
	parts = append(parts, genai.Part{Text: req.Prompt})

	resp, err := g.client.GenerateContent(ctx, g.model, genai.GenerateContentRequest{
		Contents: []genai.Content{{Role: "user", Parts: parts}},
		GenerationConfig: &genai.GenerationConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: string(req.AspectRatio)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("image: render frame: %w", err)
	}

	inline := resp.InlineImage()
	if inline == nil {
		return "", ErrNoImage
	}
	mime := inline.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, inline.Data), nil
}

var _ Generator = (*GeminiGenerator)(nil)
