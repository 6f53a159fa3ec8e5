// Package pipeline drives the per-scene production sequence: parse once, then
// optimize and render each scene in order, honoring a cooperative stop signal.
package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storyboard/internal/domain"
	"storyboard/internal/providers/image"
	"storyboard/internal/providers/prompt"
	"storyboard/internal/script"
	"storyboard/internal/storage"
)

// RunConfig is everything one production run needs besides the scene list
// itself: the raw script, the visual direction, the character roster, and the
// locale used for log messages.
type RunConfig struct {
	Script     string
	Style      domain.StyleConfig
	Characters []domain.Character
	Locale     string
}

// Studio owns the authoritative scene list and run log for the duration of a
// run. A single goroutine drives scenes strictly in parsed order; HTTP
// readers take snapshots under the mutex. The in-progress guard ensures only
// one generation activity (full run or single regeneration) proceeds at a
// time.
type Studio struct {
	optimizer prompt.Optimizer
	generator image.Generator
	store     *storage.FileStore
	logger    zerolog.Logger

	// Base context for background runs, typically bound to process shutdown.
	ctx context.Context

	mu            sync.Mutex
	scenes        []domain.Scene
	logs          []string
	inProgress    bool
	stopRequested bool
	runID         string
	cfg           RunConfig
}

// New constructs a Studio. The store may be nil, in which case completed
// frames are kept only as data URIs on the scene records.
func New(ctx context.Context, optimizer prompt.Optimizer, generator image.Generator, store *storage.FileStore, logger zerolog.Logger) *Studio {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Studio{
		optimizer: optimizer,
		generator: generator,
		store:     store,
		logger:    logger,
		ctx:       ctx,
	}
}

// Snapshot returns copies of the current scene list and run log plus the
// in-progress flag.
func (s *Studio) Snapshot() ([]domain.Scene, []string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scenes := make([]domain.Scene, len(s.scenes))
	copy(scenes, s.scenes)
	logs := make([]string, len(s.logs))
	copy(logs, s.logs)
	return scenes, logs, s.inProgress
}

// CompletedScenes returns the scenes currently in the completed state.
func (s *Studio) CompletedScenes() []domain.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	var completed []domain.Scene
	for _, scene := range s.scenes {
		if scene.Status == domain.SceneStatusCompleted {
			completed = append(completed, scene)
		}
	}
	return completed
}

// Start validates the script, replaces the scene list with the freshly parsed
// one, clears prior logs, and launches the run in a background goroutine. It
// returns the scene count. Blank scripts, scripts without scenes, and starts
// during an active run are rejected with no state change.
func (s *Studio) Start(cfg RunConfig) (int, error) {
	if strings.TrimSpace(cfg.Script) == "" {
		return 0, domain.ErrEmptyScript
	}
	parsed := script.Parse(cfg.Script)
	if len(parsed) == 0 {
		return 0, domain.ErrNoScenes
	}

	msgs := messagesFor(cfg.Locale)

	s.mu.Lock()
	if s.inProgress {
		s.mu.Unlock()
		return 0, domain.ErrRunInProgress
	}
	s.inProgress = true
	s.stopRequested = false
	s.scenes = parsed
	s.logs = nil
	s.runID = uuid.NewString()
	s.cfg = cfg
	s.appendLogLocked(fmt.Sprintf(msgs.started, len(parsed)))
	runID := s.runID
	s.mu.Unlock()

	s.logger.Info().Str("run_id", runID).Int("scenes", len(parsed)).Msg("pipeline: run started")

	go s.run(cfg, msgs)
	return len(parsed), nil
}

// Stop requests a cooperative stop. The flag is observed at scene boundaries
// only; a scene already in flight runs to completion first. It reports
// whether a run was active when the request arrived.
func (s *Studio) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inProgress {
		return false
	}
	s.stopRequested = true
	return true
}

// Regenerate re-drives a single completed or errored scene through the same
// optimize-then-render process, using the style and roster of the last run.
// It is gated by the same in-progress guard as a full run and never touches
// other scenes.
func (s *Studio) Regenerate(ctx context.Context, sceneID string) (domain.Scene, error) {
	s.mu.Lock()
	if s.inProgress {
		s.mu.Unlock()
		return domain.Scene{}, domain.ErrRunInProgress
	}
	idx := -1
	for i, scene := range s.scenes {
		if scene.ID == sceneID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.Scene{}, domain.ErrSceneNotFound
	}
	s.inProgress = true
	cfg := s.cfg
	s.mu.Unlock()

	msgs := messagesFor(cfg.Locale)
	s.driveScene(ctx, idx, cfg, msgs)

	s.mu.Lock()
	s.inProgress = false
	scene := s.scenes[idx]
	s.mu.Unlock()
	return scene, nil
}

func (s *Studio) run(cfg RunConfig, msgs runMessages) {
	defer func() {
		s.mu.Lock()
		s.appendLogLocked(msgs.ended)
		s.inProgress = false
		runID := s.runID
		s.mu.Unlock()
		s.logger.Info().Str("run_id", runID).Msg("pipeline: run ended")
	}()

	s.mu.Lock()
	count := len(s.scenes)
	s.mu.Unlock()

	for i := 0; i < count; i++ {
		s.mu.Lock()
		stopped := s.stopRequested
		s.mu.Unlock()
		if stopped {
			s.appendLog(msgs.stopped)
			return
		}
		s.driveScene(s.ctx, i, cfg, msgs)
	}
}

// driveScene executes the two-step generation for one scene and records the
// outcome in the shared list before returning.
func (s *Studio) driveScene(ctx context.Context, idx int, cfg RunConfig, msgs runMessages) {
	s.mu.Lock()
	scene := s.scenes[idx]
	s.scenes[idx].Status = domain.SceneStatusGenerating
	s.appendLogLocked(sceneLog(scene.Number, msgs.optimizing))
	s.mu.Unlock()

	optimized, err := s.optimizer.Optimize(ctx, prompt.Request{
		SceneText:   scene.Description,
		StylePreset: cfg.Style.Preset,
		StyleNotes:  cfg.Style.Notes,
		Characters:  cfg.Characters,
	})
	if err != nil {
		s.failScene(idx, scene.Number, err)
		return
	}

	s.appendLog(sceneLog(scene.Number, msgs.rendering))

	imageURL, err := s.generator.Generate(ctx, image.Request{
		Prompt:      optimized,
		References:  image.BuildReferences(cfg.Characters, cfg.Style.StyleRef),
		AspectRatio: cfg.Style.AspectRatio,
	})
	if err != nil {
		s.failScene(idx, scene.Number, err)
		return
	}

	s.mu.Lock()
	s.scenes[idx].Status = domain.SceneStatusCompleted
	s.scenes[idx].ImageURL = imageURL
	s.scenes[idx].Prompt = optimized
	s.appendLogLocked(sceneLog(scene.Number, msgs.success))
	runID := s.runID
	s.mu.Unlock()

	s.persistFrame(ctx, runID, scene.Filename, imageURL)
}

func (s *Studio) failScene(idx int, number string, err error) {
	s.mu.Lock()
	s.scenes[idx].Status = domain.SceneStatusError
	s.appendLogLocked(sceneLog(number, "FAILED: "+errorDetail(err)))
	s.mu.Unlock()
	s.logger.Warn().Err(err).Str("scene", number).Msg("pipeline: scene failed")
}

// persistFrame writes the completed frame to the filesystem store so it can
// also be served as a static file. Failures are logged, never fatal.
func (s *Studio) persistFrame(ctx context.Context, runID, filename, imageURL string) {
	if s.store == nil {
		return
	}
	data, err := base64.StdEncoding.DecodeString(image.StripDataURI(imageURL))
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", filename).Msg("pipeline: decode frame failed")
		return
	}
	key := fmt.Sprintf("runs/%s/%s", runID, filename)
	if _, err := s.store.Write(ctx, key, data); err != nil {
		s.logger.Warn().Err(err).Str("filename", filename).Msg("pipeline: persist frame failed")
	}
}

func (s *Studio) appendLog(msg string) {
	s.mu.Lock()
	s.appendLogLocked(msg)
	s.mu.Unlock()
}

func (s *Studio) appendLogLocked(msg string) {
	s.logs = append(s.logs, msg)
}

func errorDetail(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return "unknown error"
	}
	return err.Error()
}
