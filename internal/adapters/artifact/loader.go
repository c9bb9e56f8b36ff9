package artifact

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/okian/gaji/internal/domain/model"
	"github.com/okian/gaji/internal/domain/regression"
	"github.com/okian/gaji/pkg/logger"
)

// Supported artifact kinds.
const (
	KindStandardScaler   = "standard"
	KindMinMaxScaler     = "minmax"
	KindGradientBoosting = "gradient_boosting"
	KindLinear           = "linear"
)

type scalerDocument struct {
	Kind         string    `json:"kind"`
	FeatureNames []string  `json:"feature_names,omitempty"`
	Mean         []float64 `json:"mean,omitempty"`
	Min          []float64 `json:"min,omitempty"`
	Scale        []float64 `json:"scale"`
}

type treeDocument struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

type modelDocument struct {
	Kind         string         `json:"kind"`
	FeatureNames []string       `json:"feature_names,omitempty"`
	Init         float64        `json:"init,omitempty"`
	LearningRate float64        `json:"learning_rate,omitempty"`
	Trees        []treeDocument `json:"trees,omitempty"`
	Coef         []float64      `json:"coef,omitempty"`
	Intercept    float64        `json:"intercept,omitempty"`
}

// Load reads the model and scaler files and builds Artifacts. A missing
// file yields ErrMissingArtifact; anything unreadable or inconsistent
// yields ErrCorruptArtifact. Callers must not continue on error.
func Load(ctx context.Context, opts ...Option) (*Artifacts, error) {
	o := &loadOptions{
		modelPath:  DefaultModelPath,
		scalerPath: DefaultScalerPath,
	}
	for _, opt := range opts {
		opt(o)
	}

	var md modelDocument
	modelSum, err := readDocument(o.modelPath, &md)
	if err != nil {
		return nil, err
	}
	m, err := buildModel(md)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptArtifact, o.modelPath, err)
	}

	var sd scalerDocument
	scalerSum, err := readDocument(o.scalerPath, &sd)
	if err != nil {
		return nil, err
	}
	s, err := buildScaler(sd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptArtifact, o.scalerPath, err)
	}

	a, err := New(m, s)
	if err != nil {
		return nil, err
	}
	a.modelInfo = Info{Path: o.modelPath, Kind: md.Kind, SHA256: modelSum}
	a.scalerInfo = Info{Path: o.scalerPath, Kind: sd.Kind, SHA256: scalerSum}

	if o.logger != nil {
		o.logger.Info(ctx, "artifacts loaded",
			logger.String("model_path", o.modelPath),
			logger.String("model_kind", md.Kind),
			logger.String("scaler_path", o.scalerPath),
			logger.String("scaler_kind", sd.Kind),
		)
	}
	return a, nil
}

// readDocument decodes one JSON artifact into v and returns its checksum.
func readDocument(path string, v any) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrMissingArtifact, path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrCorruptArtifact, path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return "", fmt.Errorf("%w: decode %s: %w", ErrCorruptArtifact, path, err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// checkFeatureNames guards against a column order that differs from the
// one the reconstructor produces. Absent names are accepted.
func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	if want := model.Columns(); !slices.Equal(names, want) {
		return fmt.Errorf("feature_names %q do not match canonical columns %q", names, want)
	}
	return nil
}

func buildScaler(d scalerDocument) (regression.Scaler, error) {
	if err := checkFeatureNames(d.FeatureNames); err != nil {
		return nil, err
	}
	switch d.Kind {
	case KindStandardScaler:
		return regression.NewStandardScaler(d.Mean, d.Scale)
	case KindMinMaxScaler:
		return regression.NewMinMaxScaler(d.Min, d.Scale)
	default:
		return nil, fmt.Errorf("unsupported scaler kind %q", d.Kind)
	}
}

func buildModel(d modelDocument) (regression.Regressor, error) {
	if err := checkFeatureNames(d.FeatureNames); err != nil {
		return nil, err
	}
	switch d.Kind {
	case KindGradientBoosting:
		trees := make([]regression.Tree, len(d.Trees))
		for i, t := range d.Trees {
			trees[i] = regression.Tree{
				Left:      t.ChildrenLeft,
				Right:     t.ChildrenRight,
				Feature:   t.Feature,
				Threshold: t.Threshold,
				Value:     t.Value,
			}
		}
		return regression.NewGradientBoosting(model.NumFeatures, d.Init, d.LearningRate, trees)
	case KindLinear:
		return regression.NewLinear(d.Coef, d.Intercept)
	default:
		return nil, fmt.Errorf("unsupported model kind %q", d.Kind)
	}
}
