package artifact_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/gaji/internal/adapters/artifact"
	"github.com/okian/gaji/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	modelFixture  = "testdata/gradient_boosting_model.json"
	scalerFixture = "testdata/scaler.json"
)

const columnsJSON = `["Usia","Durasi_Jam","Nilai_Ujian","Pendidikan","Jurusan","Jenis_Kelamin_Laki-laki","Jenis_Kelamin_Wanita","Status_Bekerja_Belum Bekerja","Status_Bekerja_Sudah Bekerja"]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given valid model and scaler files", t, func() {
		a, err := artifact.Load(ctx,
			artifact.WithModelPath(modelFixture),
			artifact.WithScalerPath(scalerFixture),
		)

		Convey("Then the artifacts should load", func() {
			So(err, ShouldBeNil)
			So(a, ShouldNotBeNil)
			So(a.Model().NumFeatures(), ShouldEqual, model.NumFeatures)
			So(a.Scaler().NumFeatures(), ShouldEqual, model.NumFeatures)
			So(a.Columns(), ShouldResemble, model.Columns())
		})

		Convey("And the encoders should use the canonical vocabularies", func() {
			So(a.Education().Classes(), ShouldResemble, []string{"D3", "S1", "SMA", "SMK"})
			So(a.Major().Classes(), ShouldResemble, []string{"Administrasi", "Desain Grafis", "Otomotif", "Teknik Las", "Teknik Listrik"})
			code, err := a.Education().Encode("SMA")
			So(err, ShouldBeNil)
			So(code, ShouldEqual, 2)
		})

		Convey("And metadata should describe both files", func() {
			So(a.ModelInfo().Kind, ShouldEqual, artifact.KindGradientBoosting)
			So(a.ModelInfo().Path, ShouldEqual, modelFixture)
			So(len(a.ModelInfo().SHA256), ShouldEqual, 64)
			So(a.ScalerInfo().Kind, ShouldEqual, artifact.KindStandardScaler)
		})

		Convey("And loading again should give an equivalent result", func() {
			b, err := artifact.Load(ctx,
				artifact.WithModelPath(modelFixture),
				artifact.WithScalerPath(scalerFixture),
			)
			So(err, ShouldBeNil)
			So(b.ModelInfo(), ShouldResemble, a.ModelInfo())
			So(b.ScalerInfo(), ShouldResemble, a.ScalerInfo())
		})
	})

	Convey("Given a missing model file", t, func() {
		_, err := artifact.Load(ctx,
			artifact.WithModelPath(filepath.Join(t.TempDir(), "nope.json")),
			artifact.WithScalerPath(scalerFixture),
		)

		Convey("Then it should fail with ErrMissingArtifact", func() {
			So(errors.Is(err, artifact.ErrMissingArtifact), ShouldBeTrue)
			So(errors.Is(err, artifact.ErrCorruptArtifact), ShouldBeFalse)
			So(err.Error(), ShouldContainSubstring, "nope.json")
		})
	})

	Convey("Given a missing scaler file", t, func() {
		_, err := artifact.Load(ctx,
			artifact.WithModelPath(modelFixture),
			artifact.WithScalerPath(filepath.Join(t.TempDir(), "scaler.json")),
		)
		So(errors.Is(err, artifact.ErrMissingArtifact), ShouldBeTrue)
	})

	Convey("Given corrupt artifacts", t, func() {
		dir := t.TempDir()

		cases := map[string]struct {
			model  string
			scaler string
		}{
			"truncated json": {
				model: `{"kind": "linear", "coef": [1, 2`,
			},
			"unknown field": {
				model: `{"kind": "linear", "weights": [1]}`,
			},
			"unknown model kind": {
				model: `{"kind": "random_forest"}`,
			},
			"linear model of the wrong width": {
				model: `{"kind": "linear", "coef": [1, 2, 3], "intercept": 1}`,
			},
			"feature names out of order": {
				model: `{"kind": "linear", "coef": [1,1,1,1,1,1,1,1,1], "feature_names": ["Durasi_Jam","Usia","Nilai_Ujian","Pendidikan","Jurusan","Jenis_Kelamin_Laki-laki","Jenis_Kelamin_Wanita","Status_Bekerja_Belum Bekerja","Status_Bekerja_Sudah Bekerja"]}`,
			},
			"tree splitting on an unknown feature": {
				model: `{"kind": "gradient_boosting", "init": 1, "learning_rate": 0.1, "trees": [{"children_left": [1,-1,-1], "children_right": [2,-1,-1], "feature": [12,-2,-2], "threshold": [0,-2,-2], "value": [0,1,2]}]}`,
			},
			"scaler with zero scale": {
				scaler: `{"kind": "standard", "mean": [0,0,0,0,0,0,0,0,0], "scale": [1,1,1,0,1,1,1,1,1]}`,
			},
			"scaler of the wrong width": {
				scaler: `{"kind": "standard", "mean": [0,0], "scale": [1,1]}`,
			},
			"unknown scaler kind": {
				scaler: `{"kind": "robust", "scale": [1]}`,
			},
		}

		for name, c := range cases {
			modelPath := modelFixture
			if c.model != "" {
				modelPath = writeFile(t, dir, strings.ReplaceAll(name, " ", "_")+"_model.json", c.model)
			}
			scalerPath := scalerFixture
			if c.scaler != "" {
				scalerPath = writeFile(t, dir, strings.ReplaceAll(name, " ", "_")+"_scaler.json", c.scaler)
			}

			_, err := artifact.Load(ctx, artifact.WithModelPath(modelPath), artifact.WithScalerPath(scalerPath))
			Convey("When loading with "+name, func() {
				So(errors.Is(err, artifact.ErrCorruptArtifact), ShouldBeTrue)
				So(errors.Is(err, artifact.ErrMissingArtifact), ShouldBeFalse)
			})
		}
	})

	Convey("Given a linear model and a min-max scaler", t, func() {
		dir := t.TempDir()
		modelPath := writeFile(t, dir, "linear.json", `{"kind": "linear", "feature_names": `+columnsJSON+`, "coef": [0.1,0.02,0.03,0.2,0.1,0.05,-0.05,-0.3,0.3], "intercept": 4.5}`)
		scalerPath := writeFile(t, dir, "minmax.json", `{"kind": "minmax", "min": [0,0,0,0,0,0,0,0,0], "scale": [1,1,1,1,1,1,1,1,1]}`)

		a, err := artifact.Load(ctx, artifact.WithModelPath(modelPath), artifact.WithScalerPath(scalerPath))

		Convey("Then both alternative kinds should load", func() {
			So(err, ShouldBeNil)
			So(a.ModelInfo().Kind, ShouldEqual, artifact.KindLinear)
			So(a.ScalerInfo().Kind, ShouldEqual, artifact.KindMinMaxScaler)
		})
	})
}

func TestLoad_DefaultPaths(t *testing.T) {
	Convey("Given a working directory with an artifacts folder", t, func() {
		modelData, err := os.ReadFile(modelFixture)
		So(err, ShouldBeNil)
		scalerData, err := os.ReadFile(scalerFixture)
		So(err, ShouldBeNil)

		dir := t.TempDir()
		So(os.MkdirAll(filepath.Join(dir, "artifacts"), 0o750), ShouldBeNil)
		writeFile(t, dir, artifact.DefaultModelPath, string(modelData))
		writeFile(t, dir, artifact.DefaultScalerPath, string(scalerData))
		t.Chdir(dir)

		Convey("When loading without path options", func() {
			a, err := artifact.Load(context.Background())

			Convey("Then the files should be resolved against the working directory", func() {
				So(err, ShouldBeNil)
				So(a.ModelInfo().Path, ShouldEqual, artifact.DefaultModelPath)
				So(a.ScalerInfo().Path, ShouldEqual, artifact.DefaultScalerPath)
			})
		})
	})

	Convey("Given a working directory without artifacts", t, func() {
		t.Chdir(t.TempDir())

		_, err := artifact.Load(context.Background())

		Convey("Then the default model path should be reported missing", func() {
			So(errors.Is(err, artifact.ErrMissingArtifact), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, artifact.DefaultModelPath)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given nil components", t, func() {
		_, err := artifact.New(nil, nil)
		So(errors.Is(err, artifact.ErrCorruptArtifact), ShouldBeTrue)
	})
}

func TestVocabularies(t *testing.T) {
	Convey("Given the exported vocabularies", t, func() {
		edu := artifact.EducationLevels()
		edu[0] = "changed"

		Convey("Then callers should receive copies", func() {
			So(artifact.EducationLevels()[0], ShouldEqual, "D3")
			So(len(artifact.Majors()), ShouldEqual, 5)
		})
	})
}
