package model

// NumFeatures is the width of the vector the model and scaler were fit on.
const NumFeatures = 9

// Training-time column names, in canonical order.
const (
	ColAge                   = "Usia"
	ColTrainingHours         = "Durasi_Jam"
	ColExamScore             = "Nilai_Ujian"
	ColEducation             = "Pendidikan"
	ColMajor                 = "Jurusan"
	ColGenderMale            = GenderPrefix + GenderMale
	ColGenderFemale          = GenderPrefix + GenderFemale
	ColEmploymentNotEmployed = EmploymentPrefix + EmploymentNotEmployed
	ColEmploymentEmployed    = EmploymentPrefix + EmploymentEmployed
)

// One-hot column prefixes.
const (
	GenderPrefix     = "Jenis_Kelamin_"
	EmploymentPrefix = "Status_Bekerja_"
)

// Positions within a FeatureVector.
const (
	IdxAge = iota
	IdxTrainingHours
	IdxExamScore
	IdxEducation
	IdxMajor
	IdxGenderMale
	IdxGenderFemale
	IdxEmploymentNotEmployed
	IdxEmploymentEmployed
)

var columns = [NumFeatures]string{
	IdxAge:                   ColAge,
	IdxTrainingHours:         ColTrainingHours,
	IdxExamScore:             ColExamScore,
	IdxEducation:             ColEducation,
	IdxMajor:                 ColMajor,
	IdxGenderMale:            ColGenderMale,
	IdxGenderFemale:          ColGenderFemale,
	IdxEmploymentNotEmployed: ColEmploymentNotEmployed,
	IdxEmploymentEmployed:    ColEmploymentEmployed,
}

// Columns returns a copy of the canonical column order.
func Columns() []string {
	out := make([]string, NumFeatures)
	copy(out, columns[:])
	return out
}

// FeatureVector is the unscaled, fixed-order input row for the model.
type FeatureVector [NumFeatures]float64

// Slice returns the vector as a freshly allocated slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// Named returns the vector keyed by column name.
func (v FeatureVector) Named() map[string]float64 {
	out := make(map[string]float64, NumFeatures)
	for i, name := range columns {
		out[name] = v[i]
	}
	return out
}
