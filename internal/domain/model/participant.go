// Package model contains domain models passed between layers.
package model

import "fmt"

// Domain bounds for numeric participant attributes (inclusive).
const (
	MinAge           = 18
	MaxAge           = 60
	MinTrainingHours = 20
	MaxTrainingHours = 100
	MinExamScore     = 0.0
	MaxExamScore     = 100.0
)

// Canonical gender and employment labels as seen at training time.
const (
	GenderMale   = "Laki-laki"
	GenderFemale = "Wanita"

	EmploymentNotEmployed = "Belum Bekerja"
	EmploymentEmployed    = "Sudah Bekerja"
)

// Participant is one vocational-training participant submitted for prediction.
type Participant struct {
	Age              int
	TrainingHours    int
	ExamScore        float64
	EducationLevel   string
	Major            string
	Gender           string // canonical label or one of its synonyms
	EmploymentStatus string
}

// Validate checks the numeric attributes against their domain bounds.
// Categorical fields are checked by the encoders during reconstruction.
func (p Participant) Validate() error {
	switch {
	case p.Age < MinAge || p.Age > MaxAge:
		return fmt.Errorf("%w: age %d not in [%d, %d]", ErrOutOfRange, p.Age, MinAge, MaxAge)
	case p.TrainingHours < MinTrainingHours || p.TrainingHours > MaxTrainingHours:
		return fmt.Errorf("%w: training_hours %d not in [%d, %d]", ErrOutOfRange, p.TrainingHours, MinTrainingHours, MaxTrainingHours)
	case !(p.ExamScore >= MinExamScore && p.ExamScore <= MaxExamScore):
		// Written negated so NaN is rejected too.
		return fmt.Errorf("%w: exam_score %g not in [%g, %g]", ErrOutOfRange, p.ExamScore, MinExamScore, MaxExamScore)
	}
	return nil
}
