package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoginMeLogout(t *testing.T) {
	app := newTestApp(t)

	login := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email": "artist@example.com"}`))
	rec := httptest.NewRecorder()
	app.Login(rec, login)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusOK)
	}
	var user struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if user.Name != "artist@example.com" {
		t.Fatalf("name = %q, want the email as fallback", user.Name)
	}

	me := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	rec = httptest.NewRecorder()
	app.Me(rec, me)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "artist@example.com") {
		t.Fatalf("me body %q missing stored email", rec.Body.String())
	}

	logout := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	rec = httptest.NewRecorder()
	app.Logout(rec, logout)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = httptest.NewRecorder()
	app.Me(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLoginRequiresEmail(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"name": "No Email"}`))
	rec := httptest.NewRecorder()
	app.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMeWithoutSession(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Me(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "unauthorized") {
		t.Fatalf("body %q missing unauthorized code", rec.Body.String())
	}
}
