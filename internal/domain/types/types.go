// Package types contains common types used across the application
package types

// Prediction is the result of one reconstruct, scale and predict pipeline.
type Prediction struct {
	// Value is the raw model output, in millions.
	Value float64 `json:"value_millions"`
	// Salary is Value * 1,000,000.
	Salary float64 `json:"salary"`
	// Formatted renders Salary as currency, e.g. "Rp 4,700,000.00".
	Formatted string `json:"formatted"`
	// Features is the unscaled vector keyed by training column name.
	Features map[string]float64 `json:"features"`
	// Scaled is the scaled vector in canonical column order.
	Scaled []float64 `json:"scaled"`
}

// Range is an inclusive numeric bound with an input step.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// FormOptions lists the accepted values for every participant field.
type FormOptions struct {
	Age                Range    `json:"age"`
	TrainingHours      Range    `json:"training_hours"`
	ExamScore          Range    `json:"exam_score"`
	EducationLevels    []string `json:"education_levels"`
	Majors             []string `json:"majors"`
	Genders            []string `json:"genders"`
	EmploymentStatuses []string `json:"employment_statuses"`
	Columns            []string `json:"columns"`
}
