// Package features rebuilds the training-time feature vector for a single
// participant.
package features

import (
	"fmt"

	"github.com/okian/gaji/internal/domain/encoding"
	"github.com/okian/gaji/internal/domain/model"
)

// genderSynonyms maps raw gender inputs to their canonical label.
var genderSynonyms = map[string]string{
	"Pria":      model.GenderMale,
	"L":         model.GenderMale,
	"Perempuan": model.GenderFemale,
	"P":         model.GenderFemale,
}

var (
	genderLevels     = []string{model.GenderMale, model.GenderFemale}
	employmentLevels = []string{model.EmploymentNotEmployed, model.EmploymentEmployed}
)

// NormalizeGender maps a recognized synonym to its canonical label.
// Anything else is returned unchanged.
func NormalizeGender(raw string) string {
	if canonical, ok := genderSynonyms[raw]; ok {
		return canonical
	}
	return raw
}

// Reconstructor turns a Participant into the model's FeatureVector.
// It holds no mutable state and is safe for concurrent use.
type Reconstructor struct {
	education encoding.Encoder
	major     encoding.Encoder
	strict    bool
}

// New creates a Reconstructor using the given label encoders. Strict
// category handling is on by default.
func New(education, major encoding.Encoder, opts ...Option) *Reconstructor {
	r := &Reconstructor{
		education: education,
		major:     major,
		strict:    true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strict reports whether unknown one-hot categories are rejected.
func (r *Reconstructor) Strict() bool { return r.strict }

// Reconstruct builds the unscaled feature vector for p.
//
// The steps mirror the training pipeline: gender normalization, label
// encoding of education and major, one-hot expansion of gender and
// employment, zero-fill of absent columns, then projection onto the
// canonical column order.
func (r *Reconstructor) Reconstruct(p model.Participant) (model.FeatureVector, error) {
	var out model.FeatureVector

	gender := NormalizeGender(p.Gender)

	education, err := r.education.Encode(p.EducationLevel)
	if err != nil {
		return out, fmt.Errorf("encode education: %w", err)
	}
	major, err := r.major.Encode(p.Major)
	if err != nil {
		return out, fmt.Errorf("encode major: %w", err)
	}

	frame := map[string]float64{
		model.ColAge:           float64(p.Age),
		model.ColTrainingHours: float64(p.TrainingHours),
		model.ColExamScore:     p.ExamScore,
		model.ColEducation:     float64(education),
		model.ColMajor:         float64(major),
	}
	if err := r.expand(frame, "gender", model.GenderPrefix, gender, genderLevels); err != nil {
		return out, err
	}
	if err := r.expand(frame, "employment_status", model.EmploymentPrefix, p.EmploymentStatus, employmentLevels); err != nil {
		return out, err
	}

	// Columns missing from the frame stay zero; extra dummy columns are dropped.
	for i, col := range model.Columns() {
		out[i] = frame[col]
	}
	return out, nil
}

// expand sets the one-hot dummy column for value. In strict mode a value
// outside levels is an error; otherwise its dummy column is written and
// later discarded, leaving every expected flag at zero.
func (r *Reconstructor) expand(frame map[string]float64, field, prefix, value string, levels []string) error {
	if r.strict && !contains(levels, value) {
		return fmt.Errorf("%w: %s %q", encoding.ErrUnknownCategory, field, value)
	}
	frame[prefix+value] = 1
	return nil
}

func contains(levels []string, v string) bool {
	for _, l := range levels {
		if l == v {
			return true
		}
	}
	return false
}
