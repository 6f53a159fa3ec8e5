package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storyboard/internal/domain"
)

type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login stores the stub session record. There is no credential validation by
// design; the record only personalizes the UI.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email required")
		return
	}
	if req.Name == "" {
		req.Name = req.Email
	}
	user := domain.User{Email: req.Email, Name: req.Name}
	if err := a.Session.Save(user); err != nil {
		a.Logger.Error().Err(err).Msg("save session failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist session")
		return
	}
	a.json(w, http.StatusOK, user)
}

// Me returns the stored session record; absence means unauthenticated.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.Session.Load()
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "no active session")
			return
		}
		a.Logger.Error().Err(err).Msg("load session failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load session")
		return
	}
	a.json(w, http.StatusOK, user)
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.Session.Clear(); err != nil {
		a.Logger.Error().Err(err).Msg("clear session failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
