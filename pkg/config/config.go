// Package config provides configuration loading and management.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/reportsnap/pkg/render"
)

// Config represents the full configuration for reportsnap.
type Config struct {
	// LLM
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`

	// Output
	OutputDir    string `yaml:"output_dir"`
	ImageDir     string `yaml:"image_dir"`
	HTMLDir      string `yaml:"html_dir"`
	TemplatesDir string `yaml:"templates_dir"`

	// Rendering
	ViewportWidth  int     `yaml:"viewport_width"`
	ViewportHeight int     `yaml:"viewport_height"`
	ScaleFactor    float64 `yaml:"scale_factor"`
	TimeoutMs      int     `yaml:"timeout_ms"`
	WaitTimeMs     int     `yaml:"wait_time_ms"`
	FullPage       *bool   `yaml:"full_page"`
	WkhtmltoPath   string  `yaml:"wkhtmltoimage_path"`
	ChromePath     string  `yaml:"chrome_path"`

	// Remote conversion service. When set, the serve and report flows
	// delegate rendering to that instance instead of local backends.
	ConversionServiceURL string `yaml:"conversion_service_url"`

	// Server
	ListenAddr string `yaml:"listen_addr"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// LLM
		Model:       "gemini-2.5-pro-exp-03-25",
		Temperature: 0.7,
		MaxTokens:   100000,

		// Output
		OutputDir:    "output",
		ImageDir:     "images",
		HTMLDir:      "html_files",
		TemplatesDir: "templates",

		// Rendering
		ViewportWidth:  render.DefaultViewportWidth,
		ViewportHeight: render.DefaultViewportHeight,
		ScaleFactor:    render.DefaultScaleFactor,
		TimeoutMs:      render.DefaultTimeoutMs,
		WaitTimeMs:     render.DefaultWaitTimeMs,

		// Server
		ListenAddr: ":8080",

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg.withEnv(), nil
}

// FromEnv returns the defaults overlaid with environment variables,
// for running without a config file.
func FromEnv() Config {
	return Defaults().withEnv()
}

// withEnv fills credentials and endpoints from the environment when
// the file left them empty. Explicit file values win.
func (c Config) withEnv() Config {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if c.ConversionServiceURL == "" {
		c.ConversionServiceURL = os.Getenv("HTML_TO_IMAGE_SERVICE_URL")
	}
	return c
}

// RenderOptions converts the rendering settings for the backend
// selector.
func (c Config) RenderOptions() render.Options {
	return render.Options{
		ViewportWidth:  c.ViewportWidth,
		ViewportHeight: c.ViewportHeight,
		ScaleFactor:    c.ScaleFactor,
		TimeoutMs:      c.TimeoutMs,
		WaitTimeMs:     c.WaitTimeMs,
		FullPage:       c.FullPage,
	}
}
