package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storyboard/internal/domain"
	"storyboard/internal/middleware"
	"storyboard/internal/pipeline"
)

type styleRefDTO struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}

type characterDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageData string `json:"image_data,omitempty"`
	MIMEType  string `json:"mime_type,omitempty"`
}

type styleDTO struct {
	Preset      string       `json:"preset"`
	AspectRatio string       `json:"aspect_ratio"`
	Notes       string       `json:"notes"`
	StyleRef    *styleRefDTO `json:"style_ref,omitempty"`
}

type startRequest struct {
	Script     string         `json:"script"`
	Style      styleDTO       `json:"style"`
	Characters []characterDTO `json:"characters"`
}

type startResponse struct {
	Status     string `json:"status"`
	SceneCount int    `json:"scene_count"`
}

// ProductionStart validates the request, then launches a full run.
func (a *App) ProductionStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	cfg, err := a.buildRunConfig(req, middleware.LocaleFromContext(r.Context()))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	count, err := a.Studio.Start(cfg)
	switch {
	case err == nil:
		a.json(w, http.StatusAccepted, startResponse{Status: "started", SceneCount: count})
	case errors.Is(err, domain.ErrRunInProgress):
		a.error(w, http.StatusConflict, "run_in_progress", err.Error())
	case errors.Is(err, domain.ErrEmptyScript), errors.Is(err, domain.ErrNoScenes):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("start production failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to start production")
	}
}

func (a *App) buildRunConfig(req startRequest, locale string) (pipeline.RunConfig, error) {
	preset := domain.StylePreset(strings.TrimSpace(req.Style.Preset))
	if preset == "" {
		preset = domain.StylePhotorealistic
	}
	if !domain.ValidStylePreset(preset) {
		return pipeline.RunConfig{}, fmt.Errorf("unsupported style preset %q", preset)
	}

	aspect := domain.AspectRatio(strings.TrimSpace(req.Style.AspectRatio))
	if aspect == "" {
		aspect = domain.AspectWide
	}
	if !domain.ValidAspectRatio(aspect) {
		return pipeline.RunConfig{}, fmt.Errorf("unsupported aspect ratio %q", aspect)
	}

	if len(req.Characters) == 0 {
		return pipeline.RunConfig{}, errors.New("at least one character slot is required")
	}
	if len(req.Characters) > domain.MaxCharacters {
		return pipeline.RunConfig{}, fmt.Errorf("at most %d characters are allowed", domain.MaxCharacters)
	}
	characters := make([]domain.Character, 0, len(req.Characters))
	for _, c := range req.Characters {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			id = uuid.NewString()
		}
		characters = append(characters, domain.Character{
			ID:        id,
			Name:      c.Name,
			ImageData: c.ImageData,
			MIMEType:  c.MIMEType,
		})
	}

	style := domain.StyleConfig{Preset: preset, AspectRatio: aspect, Notes: req.Style.Notes}
	if ref := req.Style.StyleRef; ref != nil && strings.TrimSpace(ref.Data) != "" {
		style.StyleRef = &domain.StyleReference{Data: ref.Data, MIMEType: ref.MIMEType}
	}

	return pipeline.RunConfig{
		Script:     req.Script,
		Style:      style,
		Characters: characters,
		Locale:     locale,
	}, nil
}

// ProductionStop requests a cooperative stop. The in-flight scene finishes
// before the stop takes effect.
func (a *App) ProductionStop(w http.ResponseWriter, r *http.Request) {
	stopping := a.Studio.Stop()
	a.json(w, http.StatusAccepted, map[string]bool{"stopping": stopping})
}

type statusResponse struct {
	InProgress bool           `json:"in_progress"`
	Scenes     []domain.Scene `json:"scenes"`
	Logs       []string       `json:"logs"`
}

// ProductionStatus returns a snapshot of the scene list and run log.
func (a *App) ProductionStatus(w http.ResponseWriter, r *http.Request) {
	scenes, logs, inProgress := a.Studio.Snapshot()
	if scenes == nil {
		scenes = []domain.Scene{}
	}
	if logs == nil {
		logs = []string{}
	}
	a.json(w, http.StatusOK, statusResponse{InProgress: inProgress, Scenes: scenes, Logs: logs})
}

// SceneRegenerate re-drives a single scene and returns its new state.
func (a *App) SceneRegenerate(w http.ResponseWriter, r *http.Request) {
	sceneID := chi.URLParam(r, "id")
	if sceneID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "scene id required")
		return
	}
	scene, err := a.Studio.Regenerate(r.Context(), sceneID)
	switch {
	case err == nil:
		a.json(w, http.StatusOK, scene)
	case errors.Is(err, domain.ErrSceneNotFound):
		a.error(w, http.StatusNotFound, "not_found", "scene not found")
	case errors.Is(err, domain.ErrRunInProgress):
		a.error(w, http.StatusConflict, "run_in_progress", err.Error())
	default:
		a.Logger.Error().Err(err).Str("scene_id", sceneID).Msg("regenerate failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to regenerate scene")
	}
}
