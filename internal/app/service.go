// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the form site.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/gaji/internal/adapters/artifact"
	"github.com/okian/gaji/internal/domain/encoding"
	"github.com/okian/gaji/internal/domain/features"
	"github.com/okian/gaji/internal/domain/model"
	"github.com/okian/gaji/internal/domain/types"
	"github.com/okian/gaji/pkg/logger"
	"github.com/okian/gaji/pkg/metrics"
)

// The model predicts salaries in millions of rupiah.
const salaryMultiplier = 1_000_000

// Form defaults, matching the initial widget values.
const (
	defaultAge           = 25
	defaultTrainingHours = 50
	defaultExamScore     = 75.0
	examScoreStep        = 0.1
)

// ErrNoArtifacts is returned by New when no artifacts are supplied.
var ErrNoArtifacts = errors.New("artifacts are required")

// Service runs the prediction pipeline over a loaded, immutable set of
// artifacts. It keeps no per-request state and is safe for concurrent use.
type Service struct {
	artifacts     *artifact.Artifacts
	reconstructor *features.Reconstructor
	printer       *message.Printer

	// Configuration
	strict bool

	// Counters
	predictions atomic.Int64
	failures    atomic.Int64
	startedAt   time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStrictCategories toggles rejection of unrecognized gender and
// employment values. Enabled by default.
func WithStrictCategories(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// New constructs a Service around arts.
func New(arts *artifact.Artifacts, opts ...Option) (*Service, error) {
	if arts == nil {
		return nil, ErrNoArtifacts
	}

	s := &Service{
		artifacts: arts,
		printer:   message.NewPrinter(language.English),
		strict:    true,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.reconstructor = features.New(arts.Education(), arts.Major(), features.WithStrictCategories(s.strict))

	metrics.SetArtifactLoaded("model", arts.ModelInfo().Kind)
	metrics.SetArtifactLoaded("scaler", arts.ScalerInfo().Kind)

	return s, nil
}

// Predict validates p, reconstructs its feature vector, scales it and runs
// the model. Each call is independent; nothing is cached.
func (s *Service) Predict(ctx context.Context, p model.Participant) (types.Prediction, error) {
	start := time.Now()
	pred, err := s.predict(p)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000

	metrics.RecordPrediction(outcome(err))
	if err != nil {
		s.failures.Add(1)
		s.logger.Warn(ctx, "prediction rejected",
			logger.String("education_level", p.EducationLevel),
			logger.String("major", p.Major),
			logger.String("gender", p.Gender),
			logger.String("employment_status", p.EmploymentStatus),
			logger.Error(err),
		)
		return types.Prediction{}, err
	}

	s.predictions.Add(1)
	metrics.RecordPredictionLatency(latencyMs)
	metrics.RecordPredictedSalary(pred.Value)
	s.logger.Debug(ctx, "prediction served",
		logger.Float64("value_millions", pred.Value),
		logger.Float64("latency_ms", latencyMs),
	)
	return pred, nil
}

func (s *Service) predict(p model.Participant) (types.Prediction, error) {
	if err := p.Validate(); err != nil {
		return types.Prediction{}, err
	}

	vec, err := s.reconstructor.Reconstruct(p)
	if err != nil {
		return types.Prediction{}, err
	}

	// Category codes are scaled together with the numeric columns; the
	// model was trained that way.
	scaled, err := s.artifacts.Scaler().Transform(vec.Slice())
	if err != nil {
		return types.Prediction{}, fmt.Errorf("scale features: %w", err)
	}

	value, err := s.artifacts.Model().Predict(scaled)
	if err != nil {
		return types.Prediction{}, fmt.Errorf("run model: %w", err)
	}

	salary := value * salaryMultiplier
	return types.Prediction{
		Value:     value,
		Salary:    salary,
		Formatted: s.FormatSalary(salary),
		Features:  vec.Named(),
		Scaled:    scaled,
	}, nil
}

// FormatSalary renders amount as rupiah with thousands grouping and two
// decimals, e.g. "Rp 4,700,000.00".
func (s *Service) FormatSalary(amount float64) string {
	return s.printer.Sprintf("Rp %.2f", amount)
}

// Options returns the accepted values for every participant field.
func (s *Service) Options() types.FormOptions {
	return types.FormOptions{
		Age:                types.Range{Min: model.MinAge, Max: model.MaxAge, Step: 1, Default: defaultAge},
		TrainingHours:      types.Range{Min: model.MinTrainingHours, Max: model.MaxTrainingHours, Step: 1, Default: defaultTrainingHours},
		ExamScore:          types.Range{Min: model.MinExamScore, Max: model.MaxExamScore, Step: examScoreStep, Default: defaultExamScore},
		EducationLevels:    s.artifacts.Education().Classes(),
		Majors:             s.artifacts.Major().Classes(),
		Genders:            []string{model.GenderMale, model.GenderFemale},
		EmploymentStatuses: []string{model.EmploymentNotEmployed, model.EmploymentEmployed},
		Columns:            s.artifacts.Columns(),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"predictions":      s.predictions.Load(),
		"failures":         s.failures.Load(),
		"strictCategories": s.strict,
		"uptimeSeconds":    int64(time.Since(s.startedAt).Seconds()),
		"model":            s.artifacts.ModelInfo(),
		"scaler":           s.artifacts.ScalerInfo(),
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, encoding.ErrUnknownCategory):
		return metrics.OutcomeUnknownCategory
	case errors.Is(err, model.ErrOutOfRange):
		return metrics.OutcomeOutOfRange
	default:
		return metrics.OutcomeError
	}
}
