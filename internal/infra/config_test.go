package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.GeminiTextModel != "gemini-3-flash-preview" {
		t.Errorf("text model = %q", cfg.GeminiTextModel)
	}
	if cfg.GeminiImageModel != "gemini-2.5-flash-image" {
		t.Errorf("image model = %q", cfg.GeminiImageModel)
	}
	if cfg.DefaultLocale != "ko" {
		t.Errorf("default locale = %q", cfg.DefaultLocale)
	}
	if cfg.HTTPWriteTimeout != 120*time.Second {
		t.Errorf("write timeout = %v", cfg.HTTPWriteTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("allowed origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("PORT", "9999")
	t.Setenv("GEMINI_TEXT_MODEL", "gemini-test")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9999" || cfg.GeminiTextModel != "gemini-test" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("allowed origins = %v", cfg.AllowedOrigins)
	}
	if cfg.HTTPReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v", cfg.HTTPReadTimeout)
	}
}
