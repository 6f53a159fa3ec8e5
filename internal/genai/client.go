// Package genai provides a lightweight facade over the Gemini generateContent
// REST API so that providers can focus on translating domain requests to API
// calls.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const defaultTimeout = 60 * time.Second

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client issues generateContent calls against a Gemini-compatible endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Content is one conversational turn in a generateContent request.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

// Part carries either text or inline binary data.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData is a base64-encoded payload plus its media type.
type InlineData struct {
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// ImageConfig selects image-output options such as the aspect ratio.
type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

// GenerationConfig tunes the model invocation.
type GenerationConfig struct {
	Temperature    float64      `json:"temperature,omitempty"`
	CandidateCount int          `json:"candidateCount,omitempty"`
	ImageConfig    *ImageConfig `json:"imageConfig,omitempty"`
}

// GenerateContentRequest is the wire shape of a generateContent call.
type GenerateContentRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one model response alternative.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// GenerateContentResponse is the decoded generateContent reply.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client. The API key is required; callers may
// provide a nil HTTP client and a reusable one with a sane timeout is created.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("genai: api key is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// GenerateContent posts the request to the named model and decodes the reply.
// Non-2xx responses are surfaced with the API error message when available.
func (c *Client) GenerateContent(ctx context.Context, model string, payload GenerateContentRequest) (*GenerateContentResponse, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(model))
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("genai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("genai: create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("genai: invoke %s: %w", model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("genai: %s status %d: %s", model, resp.StatusCode, apiErr.Error.Message)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return nil, fmt.Errorf("genai: %s status %d: %s", model, resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return nil, fmt.Errorf("genai: %s status %d", model, resp.StatusCode)
	}

	var out GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("genai: decode response: %w", err)
	}

	c.logger.Debug().Str("model", model).Int("candidates", len(out.Candidates)).Msg("genai: generateContent ok")
	return &out, nil
}

// Text returns the first non-blank text part across all candidates, trimmed.
func (r *GenerateContentResponse) Text() string {
	if r == nil {
		return ""
	}
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text
			}
		}
	}
	return ""
}

// InlineImage returns the first inline-data part across all candidates, or nil
// when the response carries no binary payload.
func (r *GenerateContentResponse) InlineImage() *InlineData {
	if r == nil {
		return nil
	}
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return part.InlineData
			}
		}
	}
	return nil
}
