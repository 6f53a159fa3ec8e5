package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"storyboard/internal/domain"
	"storyboard/internal/infra"
	"storyboard/internal/pipeline"
	"storyboard/internal/providers/image"
	"storyboard/internal/providers/prompt"
	"storyboard/internal/session"
	"storyboard/internal/storage"
)

type stubOptimizer struct {
	err error
}

func (s *stubOptimizer) Optimize(ctx context.Context, req prompt.Request) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "optimized: " + req.SceneText, nil
}

type stubGenerator struct {
	err error
}

func (s *stubGenerator) Generate(ctx context.Context, req image.Request) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "data:image/png;base64,RkFLRWZyYW1l", nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	dir := t.TempDir()
	frames, err := storage.NewFileStore(filepath.Join(dir, "frames"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	sess, err := session.NewStore(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("session.NewStore: %v", err)
	}

	studio := pipeline.New(context.Background(), &stubOptimizer{}, &stubGenerator{}, frames, zerolog.Nop())
	cfg := &infra.Config{
		AppEnv:         "test",
		DefaultLocale:  "en",
		AllowedOrigins: []string{"*"},
	}
	return NewApp(cfg, zerolog.Nop(), studio, sess, frames)
}

func validStartBody(script string) string {
	return fmt.Sprintf(`{
		"script": %q,
		"style": {"preset": "Photorealistic", "aspect_ratio": "16:9"},
		"characters": [{"name": "Hero"}]
	}`, script)
}

// waitForIdle polls the studio until the current run finishes.
func waitForIdle(t *testing.T, studio *pipeline.Studio) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, _, inProgress := studio.Snapshot(); !inProgress {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("run did not finish in time")
}

func completedCount(scenes []domain.Scene) int {
	n := 0
	for _, s := range scenes {
		if s.Status == domain.SceneStatusCompleted {
			n++
		}
	}
	return n
}
