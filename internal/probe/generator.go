package probe

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/gaji/internal/adapters/artifact"
	"github.com/okian/gaji/internal/domain/model"
)

// recordNamespace scopes the name-based uuids given to generated records.
var recordNamespace = uuid.MustParse("6f1c2a52-3f0e-4d43-9b55-0d7c1e3a8b21")

var (
	genders     = []string{model.GenderMale, model.GenderFemale, "Pria", "L", "Perempuan", "P"}
	employments = []string{model.EmploymentNotEmployed, model.EmploymentEmployed}
)

// generateRecords returns n valid records followed by the fixed set of bad
// records. The output depends only on n and seed.
func generateRecords(n int, seed uint64) []Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	education := artifact.EducationLevels()
	majors := artifact.Majors()

	records := make([]Record, 0, n+len(badPayloads()))
	for i := 0; i < n; i++ {
		age := model.MinAge + rng.IntN(model.MaxAge-model.MinAge+1)
		hours := model.MinTrainingHours + rng.IntN(model.MaxTrainingHours-model.MinTrainingHours+1)
		// One decimal, like the form input.
		score := float64(rng.IntN(int(model.MaxExamScore*10)+1)) / 10

		records = append(records, Record{
			ID: recordID(seed, i),
			Payload: Payload{
				Age:              &age,
				TrainingHours:    &hours,
				ExamScore:        &score,
				EducationLevel:   education[rng.IntN(len(education))],
				Major:            majors[rng.IntN(len(majors))],
				Gender:           genders[rng.IntN(len(genders))],
				EmploymentStatus: employments[rng.IntN(len(employments))],
			},
			Valid: true,
		})
	}

	for i, bad := range badPayloads() {
		records = append(records, Record{
			ID:      recordID(seed, n+i),
			Payload: bad.payload,
			Reason:  bad.reason,
		})
	}
	return records
}

func recordID(seed uint64, i int) string {
	name := strconv.FormatUint(seed, 10) + "/" + strconv.Itoa(i)
	return uuid.NewSHA1(recordNamespace, []byte(name)).String()
}

type badPayload struct {
	reason  string
	payload Payload
}

// badPayloads lists records the service must reject, one defect each.
func badPayloads() []badPayload {
	base := func(mutate func(*Payload)) Payload {
		age, hours, score := 25, 50, 75.0
		p := Payload{
			Age:              &age,
			TrainingHours:    &hours,
			ExamScore:        &score,
			EducationLevel:   "SMA",
			Major:            "Administrasi",
			Gender:           model.GenderMale,
			EmploymentStatus: model.EmploymentEmployed,
		}
		mutate(&p)
		return p
	}
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }

	return []badPayload{
		{"age below minimum", base(func(p *Payload) { p.Age = intp(model.MinAge - 1) })},
		{"age above maximum", base(func(p *Payload) { p.Age = intp(model.MaxAge + 1) })},
		{"training hours below minimum", base(func(p *Payload) { p.TrainingHours = intp(model.MinTrainingHours - 1) })},
		{"exam score above maximum", base(func(p *Payload) { p.ExamScore = floatp(model.MaxExamScore + 0.5) })},
		{"unknown education level", base(func(p *Payload) { p.EducationLevel = "S3" })},
		{"unknown major", base(func(p *Payload) { p.Major = "Tata Boga" })},
		{"unknown gender", base(func(p *Payload) { p.Gender = "X" })},
		{"unknown employment status", base(func(p *Payload) { p.EmploymentStatus = "Freelance" })},
		{"missing exam score", base(func(p *Payload) { p.ExamScore = nil })},
	}
}
