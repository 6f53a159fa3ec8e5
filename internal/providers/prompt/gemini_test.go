package prompt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storyboard/internal/domain"
	"storyboard/internal/genai"
)

func newTestClient(t *testing.T, baseURL string) *genai.Client {
	t.Helper()
	client, err := genai.NewClient(genai.Options{APIKey: "test-key", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("genai.NewClient: %v", err)
	}
	return client
}

func TestGeminiOptimizerBuildsInstruction(t *testing.T) {
	var captured genai.GenerateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(genai.GenerateContentResponse{
			Candidates: []genai.Candidate{{Content: genai.Content{Parts: []genai.Part{{Text: "A cinematic wide shot"}}}}},
		})
	}))
	defer srv.Close()

	opt, err := NewGeminiOptimizer(newTestClient(t, srv.URL), "gemini-3-flash-preview")
	if err != nil {
		t.Fatalf("NewGeminiOptimizer: %v", err)
	}
	out, err := opt.Optimize(context.Background(), Request{
		SceneText:   "용사가 절벽 위에 서 있다",
		StylePreset: domain.StyleAnime,
		StyleNotes:  "neon-noir, sunrise",
		Characters: []domain.Character{
			{Name: "Mina"},
			{Name: ""},
			{Name: "Juno"},
		},
	})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if out != "A cinematic wide shot" {
		t.Errorf("prompt = %q", out)
	}
	if captured.SystemInstruction == nil || len(captured.SystemInstruction.Parts) == 0 {
		t.Fatalf("missing system instruction")
	}
	instruction := captured.SystemInstruction.Parts[0].Text
	for _, want := range []string{"Anime Style", "neon-noir, sunrise", "Mina, Juno", "Output ONLY the final English prompt"} {
		if !strings.Contains(instruction, want) {
			t.Errorf("instruction missing %q:\n%s", want, instruction)
		}
	}
	if got := captured.Contents[0].Parts[0].Text; got != "Transform this scene: 용사가 절벽 위에 서 있다" {
		t.Errorf("user content = %q", got)
	}
	if captured.GenerationConfig == nil || captured.GenerationConfig.Temperature != 0.7 {
		t.Errorf("generation config = %+v", captured.GenerationConfig)
	}
}

func TestGeminiOptimizerEmptyTextFallsBackToInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(genai.GenerateContentResponse{
			Candidates: []genai.Candidate{{Content: genai.Content{Parts: []genai.Part{{Text: "   "}}}}},
		})
	}))
	defer srv.Close()

	opt, err := NewGeminiOptimizer(newTestClient(t, srv.URL), "gemini-3-flash-preview")
	if err != nil {
		t.Fatalf("NewGeminiOptimizer: %v", err)
	}
	out, err := opt.Optimize(context.Background(), Request{SceneText: "The village burns"})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if out != "The village burns" {
		t.Errorf("fallback = %q, want original description", out)
	}
}

func TestGeminiOptimizerPropagatesServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"backend unavailable"}}`))
	}))
	defer srv.Close()

	opt, err := NewGeminiOptimizer(newTestClient(t, srv.URL), "gemini-3-flash-preview")
	if err != nil {
		t.Fatalf("NewGeminiOptimizer: %v", err)
	}
	out, err := opt.Optimize(context.Background(), Request{SceneText: "The village burns"})
	if err == nil {
		t.Fatalf("expected error, got prompt %q", out)
	}
	if out != "" {
		t.Errorf("failed optimize must not return text, got %q", out)
	}
	if !strings.Contains(err.Error(), "backend unavailable") {
		t.Errorf("error detail lost: %v", err)
	}
}

func TestCharacterNames(t *testing.T) {
	names := CharacterNames([]domain.Character{{Name: " Mina "}, {Name: ""}, {Name: "Juno"}})
	if names != "Mina, Juno" {
		t.Errorf("CharacterNames = %q", names)
	}
	if CharacterNames(nil) != "" {
		t.Errorf("empty roster should yield empty string")
	}
}
