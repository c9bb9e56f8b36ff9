package artifact

import "github.com/okian/gaji/pkg/logger"

// Default artifact locations, relative to the working directory.
const (
	DefaultModelPath  = "artifacts/gradient_boosting_model.json"
	DefaultScalerPath = "artifacts/scaler.json"
)

type loadOptions struct {
	modelPath  string
	scalerPath string
	logger     logger.Logger
}

// Option applies a configuration option to Load.
type Option func(*loadOptions)

// WithModelPath sets the model file location.
func WithModelPath(path string) Option {
	return func(o *loadOptions) {
		if path != "" {
			o.modelPath = path
		}
	}
}

// WithScalerPath sets the scaler file location.
func WithScalerPath(path string) Option {
	return func(o *loadOptions) {
		if path != "" {
			o.scalerPath = path
		}
	}
}

// WithLogger sets a logger for load progress.
func WithLogger(l logger.Logger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
