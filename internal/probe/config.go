package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumRecords int           // Number of valid records to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Seed       uint64        // Seed for record generation; equal seeds give equal records
	OutputFile string        // Optional file for generated records
	Verbose    bool          // Log every outcome
}

// Payload is the JSON body of POST /api/v1/predict. Numeric fields are
// pointers so that bad records can omit them.
type Payload struct {
	Age              *int     `json:"age,omitempty"`
	TrainingHours    *int     `json:"training_hours,omitempty"`
	ExamScore        *float64 `json:"exam_score,omitempty"`
	EducationLevel   string   `json:"education_level,omitempty"`
	Major            string   `json:"major,omitempty"`
	Gender           string   `json:"gender,omitempty"`
	EmploymentStatus string   `json:"employment_status,omitempty"`
}

// Record is one generated request with its expected outcome.
type Record struct {
	ID      string  `json:"id"`
	Payload Payload `json:"payload"`
	// Valid records must be answered with 200 and a positive salary;
	// the rest must be rejected with 400.
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Result is the parsed answer of a successful prediction.
type Result struct {
	Value     float64 `json:"value_millions"`
	Salary    float64 `json:"salary"`
	Formatted string  `json:"formatted"`
}

// errorBody mirrors the API error shape.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stats holds probe statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Passed     int
	Mismatched int
	Failed     int // transport errors
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
