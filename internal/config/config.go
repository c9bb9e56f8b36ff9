// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and GAJI_* environment variables on top.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"

	"github.com/okian/gaji/internal/adapters/artifact"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8501".
	Addr string `koanf:"addr"`

	// ModelPath and ScalerPath locate the fitted artifacts.
	ModelPath  string `koanf:"model_path"`
	ScalerPath string `koanf:"scaler_path"`

	// StrictCategories rejects unrecognized gender and employment values
	// instead of zero-filling their one-hot columns.
	StrictCategories bool `koanf:"strict_categories"`

	// CORSAllowedOrigins lists origins allowed to call the JSON API.
	// Empty disables CORS headers.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":8501",
		ModelPath:        artifact.DefaultModelPath,
		ScalerPath:       artifact.DefaultScalerPath,
		StrictCategories: true,
	}
}
