package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Model != "gemini-2.5-pro-exp-03-25" {
		t.Errorf("unexpected default model: %s", cfg.Model)
	}
	if cfg.Temperature != 0.7 || cfg.MaxTokens != 100000 {
		t.Errorf("unexpected sampling defaults: %v %d", cfg.Temperature, cfg.MaxTokens)
	}
	if cfg.ViewportWidth != 1200 || cfg.ViewportHeight != 800 {
		t.Errorf("unexpected viewport defaults: %dx%d", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("unexpected output dir: %s", cfg.OutputDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
model: gpt-4o
viewport_width: 900
full_page: false
listen_addr: ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("file value not applied: %s", cfg.Model)
	}
	if cfg.ViewportWidth != 900 {
		t.Errorf("file value not applied: %d", cfg.ViewportWidth)
	}
	if cfg.FullPage == nil || *cfg.FullPage {
		t.Error("full_page: false not applied")
	}
	// Untouched fields keep their defaults.
	if cfg.ViewportHeight != 800 {
		t.Errorf("default lost: %d", cfg.ViewportHeight)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("listen addr not applied: %s", cfg.ListenAddr)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_BASE_URL", "https://proxy.example/v1")
	t.Setenv("HTML_TO_IMAGE_SERVICE_URL", "http://render.example:8001")

	cfg := FromEnv()
	if cfg.APIKey != "env-key" {
		t.Errorf("api key not read from env: %s", cfg.APIKey)
	}
	if cfg.BaseURL != "https://proxy.example/v1" {
		t.Errorf("base url not read from env: %s", cfg.BaseURL)
	}
	if cfg.ConversionServiceURL != "http://render.example:8001" {
		t.Errorf("service url not read from env: %s", cfg.ConversionServiceURL)
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := Defaults()
	cfg.ScaleFactor = 2.0

	opts := cfg.RenderOptions().Normalized()
	if opts.ScaleFactor != 2.0 {
		t.Errorf("scale not carried: %v", opts.ScaleFactor)
	}
	if !opts.FullPage {
		t.Error("full page should default to true")
	}
}
