// Package handlers exposes the storyboard studio over HTTP.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"storyboard/internal/infra"
	"storyboard/internal/pipeline"
	"storyboard/internal/session"
	"storyboard/internal/storage"
)

// App bundles the dependencies shared by all handlers.
type App struct {
	Config  *infra.Config
	Logger  zerolog.Logger
	Studio  *pipeline.Studio
	Session *session.Store
	Frames  *storage.FileStore
}

func NewApp(cfg *infra.Config, logger zerolog.Logger, studio *pipeline.Studio, sess *session.Store, frames *storage.FileStore) *App {
	return &App{Config: cfg, Logger: logger, Studio: studio, Session: sess, Frames: frames}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}
