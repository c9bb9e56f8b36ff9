package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/okian/gaji/internal/adapters/artifact"
	service "github.com/okian/gaji/internal/app"
	"github.com/okian/gaji/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func loadShipped(t *testing.T) *artifact.Artifacts {
	t.Helper()
	dir := filepath.Join("..", "..", "artifacts")
	arts, err := artifact.Load(context.Background(),
		artifact.WithModelPath(filepath.Join(dir, "gradient_boosting_model.json")),
		artifact.WithScalerPath(filepath.Join(dir, "scaler.json")),
	)
	if err != nil {
		t.Fatalf("load shipped artifacts: %v", err)
	}
	return arts
}

func TestService_ShippedArtifacts(t *testing.T) {
	Convey("Given the service over the shipped artifacts", t, func() {
		svc, err := service.New(loadShipped(t))
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When predicting the reference participant", func() {
			pred, err := svc.Predict(ctx, reference())

			Convey("Then the gradient boosting output should match", func() {
				So(err, ShouldBeNil)
				So(pred.Value, ShouldAlmostEqual, 4.7, 1e-9)
				So(pred.Formatted, ShouldEqual, "Rp 4,700,000.00")
			})

			Convey("And the scaled vector should match the standard scaler", func() {
				So(pred.Scaled[model.IdxAge], ShouldAlmostEqual, -0.625, 1e-9)
				So(pred.Scaled[model.IdxTrainingHours], ShouldAlmostEqual, -0.5, 1e-9)
				So(pred.Scaled[model.IdxExamScore], ShouldAlmostEqual, 0, 1e-9)
				So(pred.Scaled[model.IdxEducation], ShouldAlmostEqual, 0.4, 1e-9)
			})
		})

		Convey("When predicting a graduate with a high score", func() {
			pred, err := svc.Predict(ctx, model.Participant{
				Age:              40,
				TrainingHours:    80,
				ExamScore:        90,
				EducationLevel:   "S1",
				Major:            "Otomotif",
				Gender:           model.GenderFemale,
				EmploymentStatus: model.EmploymentEmployed,
			})

			Convey("Then the salary should be higher than the reference", func() {
				So(err, ShouldBeNil)
				So(pred.Value, ShouldAlmostEqual, 6.425, 1e-9)
				So(pred.Formatted, ShouldEqual, "Rp 6,425,000.00")
			})
		})

		Convey("When predicting a young unemployed diploma holder", func() {
			pred, err := svc.Predict(ctx, model.Participant{
				Age:              19,
				TrainingHours:    30,
				ExamScore:        60,
				EducationLevel:   "D3",
				Major:            "Teknik Las",
				Gender:           "Pria",
				EmploymentStatus: model.EmploymentNotEmployed,
			})

			Convey("Then the low-score branch should apply", func() {
				So(err, ShouldBeNil)
				So(pred.Value, ShouldAlmostEqual, 4.4, 1e-9)
			})
		})

		Convey("Then stats should carry artifact metadata", func() {
			stats := svc.GetStats()
			info, ok := stats["model"].(artifact.Info)
			So(ok, ShouldBeTrue)
			So(info.Kind, ShouldEqual, artifact.KindGradientBoosting)
			So(info.SHA256, ShouldNotBeEmpty)
		})
	})
}
