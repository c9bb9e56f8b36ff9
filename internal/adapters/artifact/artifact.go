// Package artifact loads the fitted regression model and feature scaler
// from disk and assembles the immutable prediction context.
package artifact

import (
	"fmt"

	"github.com/okian/gaji/internal/domain/encoding"
	"github.com/okian/gaji/internal/domain/model"
	"github.com/okian/gaji/internal/domain/regression"
)

// Vocabularies the live model was trained with. Codes are positions in
// these lists; the order matches the classes the training encoder produced.
var (
	educationLevels = []string{"D3", "S1", "SMA", "SMK"}
	majors          = []string{"Administrasi", "Desain Grafis", "Otomotif", "Teknik Las", "Teknik Listrik"}
)

// EducationLevels returns a copy of the education vocabulary.
func EducationLevels() []string { return append([]string(nil), educationLevels...) }

// Majors returns a copy of the major vocabulary.
func Majors() []string { return append([]string(nil), majors...) }

// Info describes where an artifact came from.
type Info struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	SHA256 string `json:"sha256"`
}

// Artifacts is the read-only prediction context. It is built once and
// shared by every request without locking.
type Artifacts struct {
	model     regression.Regressor
	scaler    regression.Scaler
	education *encoding.LabelEncoder
	major     *encoding.LabelEncoder
	columns   []string

	modelInfo  Info
	scalerInfo Info
}

// New assembles Artifacts from an already constructed model and scaler.
func New(m regression.Regressor, s regression.Scaler) (*Artifacts, error) {
	if m == nil || s == nil {
		return nil, fmt.Errorf("%w: model and scaler are required", ErrCorruptArtifact)
	}
	if m.NumFeatures() != model.NumFeatures {
		return nil, fmt.Errorf("%w: model expects %d features, want %d", ErrCorruptArtifact, m.NumFeatures(), model.NumFeatures)
	}
	if s.NumFeatures() != model.NumFeatures {
		return nil, fmt.Errorf("%w: scaler expects %d features, want %d", ErrCorruptArtifact, s.NumFeatures(), model.NumFeatures)
	}

	education, err := encoding.Fit(educationLevels, encoding.WithName("education_level"))
	if err != nil {
		return nil, err
	}
	major, err := encoding.Fit(majors, encoding.WithName("major"))
	if err != nil {
		return nil, err
	}

	return &Artifacts{
		model:     m,
		scaler:    s,
		education: education,
		major:     major,
		columns:   model.Columns(),
	}, nil
}

// Model returns the fitted regressor.
func (a *Artifacts) Model() regression.Regressor { return a.model }

// Scaler returns the fitted scaler.
func (a *Artifacts) Scaler() regression.Scaler { return a.scaler }

// Education returns the education label encoder.
func (a *Artifacts) Education() *encoding.LabelEncoder { return a.education }

// Major returns the major label encoder.
func (a *Artifacts) Major() *encoding.LabelEncoder { return a.major }

// Columns returns a copy of the canonical column order.
func (a *Artifacts) Columns() []string { return append([]string(nil), a.columns...) }

// ModelInfo describes the loaded model file.
func (a *Artifacts) ModelInfo() Info { return a.modelInfo }

// ScalerInfo describes the loaded scaler file.
func (a *Artifacts) ScalerInfo() Info { return a.scalerInfo }
