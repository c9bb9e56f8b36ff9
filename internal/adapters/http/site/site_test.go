package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/okian/gaji/internal/domain/encoding"
	"github.com/okian/gaji/internal/domain/model"
	"github.com/okian/gaji/internal/domain/types"
	"github.com/okian/gaji/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type stubPredictor struct {
	got  model.Participant
	pred types.Prediction
	err  error
}

func (s *stubPredictor) Predict(_ context.Context, p model.Participant) (types.Prediction, error) {
	s.got = p
	return s.pred, s.err
}

func (s *stubPredictor) Options() types.FormOptions {
	return types.FormOptions{
		Age:                types.Range{Min: 18, Max: 60, Step: 1, Default: 25},
		TrainingHours:      types.Range{Min: 20, Max: 100, Step: 1, Default: 50},
		ExamScore:          types.Range{Min: 0, Max: 100, Step: 0.1, Default: 75},
		EducationLevels:    []string{"D3", "S1", "SMA", "SMK"},
		Majors:             []string{"Administrasi", "Otomotif"},
		Genders:            []string{model.GenderMale, model.GenderFemale},
		EmploymentStatuses: []string{model.EmploymentNotEmployed, model.EmploymentEmployed},
	}
}

func validForm() url.Values {
	return url.Values{
		"age":               {"25"},
		"training_hours":    {"50"},
		"exam_score":        {"75.0"},
		"education_level":   {"SMA"},
		"major":             {"Administrasi"},
		"gender":            {model.GenderMale},
		"employment_status": {model.EmploymentEmployed},
	}
}

func post(mux http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestSiteHandler(t *testing.T) {
	Convey("Given the form site registered on a mux", t, func() {
		stub := &stubPredictor{pred: types.Prediction{Value: 4.7, Formatted: "Rp 4,700,000.00"}}
		mux := http.NewServeMux()
		Register(context.Background(), mux, stub)

		Convey("When requesting the form", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			body := w.Body.String()

			Convey("Then the form should render with bounds and vocabularies", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
				So(body, ShouldContainSubstring, "Input Data Peserta Baru")
				So(body, ShouldContainSubstring, `name="age" min="18" max="60"`)
				So(body, ShouldContainSubstring, `<option value="SMK">SMK</option>`)
				So(body, ShouldContainSubstring, `value="75.0"`)
				So(body, ShouldNotContainSubstring, "Hasil Prediksi")
			})
		})

		Convey("When submitting a valid form", func() {
			w := post(mux, validForm())

			Convey("Then the formatted salary should be shown", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "Hasil Prediksi")
				So(w.Body.String(), ShouldContainSubstring, "Rp 4,700,000.00")
			})

			Convey("And the record should be decoded field by field", func() {
				So(stub.got, ShouldResemble, model.Participant{
					Age: 25, TrainingHours: 50, ExamScore: 75,
					EducationLevel: "SMA", Major: "Administrasi",
					Gender: model.GenderMale, EmploymentStatus: model.EmploymentEmployed,
				})
			})

			Convey("And the submitted choices should stay selected", func() {
				So(w.Body.String(), ShouldContainSubstring, `<option value="SMA" selected>SMA</option>`)
			})
		})

		Convey("When a required field is missing", func() {
			form := validForm()
			form.Del("exam_score")
			w := post(mux, form)

			Convey("Then a visible error should be rendered", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `id="error"`)
			})
		})

		Convey("When a numeric field is malformed", func() {
			form := validForm()
			form.Set("age", "twenty")
			w := post(mux, form)

			Convey("Then a visible error should be rendered", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `id="error"`)
			})
		})

		Convey("When the predictor rejects a category", func() {
			stub.err = errors.Join(encoding.ErrUnknownCategory, errors.New("major \"Tata Boga\""))
			w := post(mux, validForm())

			Convey("Then the error should be shown as invalid input", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "Input tidak valid")
			})
		})

		Convey("When the predictor fails unexpectedly", func() {
			stub.err = errors.New("boom")
			w := post(mux, validForm())

			Convey("Then a server error page should be rendered", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "Prediksi gagal")
			})
		})

		Convey("When requesting another path", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

			Convey("Then it should return not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given a nil mux", t, func() {
		Convey("Then registration should panic", func() {
			So(func() { Register(context.Background(), nil, &stubPredictor{}) }, ShouldPanic)
		})
	})
}
