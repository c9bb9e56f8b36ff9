package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/gaji/internal/adapters/artifact"
	app "github.com/okian/gaji/internal/app"
	"github.com/okian/gaji/internal/config"
	"github.com/okian/gaji/internal/domain/types"
	"github.com/okian/gaji/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func shippedArtifacts(t *testing.T) (string, string) {
	t.Helper()
	dir := filepath.Join("..", "artifacts")
	return filepath.Join(dir, "gradient_boosting_model.json"), filepath.Join(dir, "scaler.json")
}

func TestRun_ArtifactFailures(t *testing.T) {
	convey.Convey("Given a config pointing at a missing model file", t, func() {
		_, scaler := shippedArtifacts(t)
		_ = os.Setenv("GAJI_MODEL_PATH", filepath.Join(t.TempDir(), "missing.json"))
		_ = os.Setenv("GAJI_SCALER_PATH", scaler)
		_ = os.Setenv("GAJI_ADDR", "127.0.0.1:0")
		defer func() {
			_ = os.Unsetenv("GAJI_MODEL_PATH")
			_ = os.Unsetenv("GAJI_SCALER_PATH")
			_ = os.Unsetenv("GAJI_ADDR")
		}()

		convey.Convey("When running the application", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := run(ctx)

			convey.Convey("Then it should halt before serving with a readable message", func() {
				convey.So(errors.Is(err, artifact.ErrMissingArtifact), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "GAJI_MODEL_PATH")
				convey.So(ctx.Err(), convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given a corrupt scaler file", t, func() {
		model, _ := shippedArtifacts(t)
		bad := filepath.Join(t.TempDir(), "scaler.json")
		convey.So(os.WriteFile(bad, []byte("{"), 0o600), convey.ShouldBeNil)
		_ = os.Setenv("GAJI_MODEL_PATH", model)
		_ = os.Setenv("GAJI_SCALER_PATH", bad)
		defer func() {
			_ = os.Unsetenv("GAJI_MODEL_PATH")
			_ = os.Unsetenv("GAJI_SCALER_PATH")
		}()

		err := run(context.Background())

		convey.So(errors.Is(err, artifact.ErrCorruptArtifact), convey.ShouldBeTrue)
		convey.So(err.Error(), convey.ShouldContainSubstring, "re-export")
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the full handler over the shipped artifacts", t, func() {
		ctx := context.Background()
		modelPath, scalerPath := shippedArtifacts(t)
		arts, err := artifact.Load(ctx, artifact.WithModelPath(modelPath), artifact.WithScalerPath(scalerPath))
		convey.So(err, convey.ShouldBeNil)
		svc, err := app.New(arts)
		convey.So(err, convey.ShouldBeNil)

		cfg := config.New(ctx)
		cfg.CORSAllowedOrigins = []string{"https://example.org"}
		srv := httptest.NewServer(newHandler(ctx, cfg, svc))
		defer srv.Close()

		convey.Convey("When posting the reference record to the API", func() {
			body := `{"age":25,"training_hours":50,"exam_score":75,"education_level":"SMA",` +
				`"major":"Administrasi","gender":"L","employment_status":"Sudah Bekerja"}`
			req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/predict", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Origin", "https://example.org")
			resp, err := http.DefaultClient.Do(req)
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then the formatted salary should be returned", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				var pred types.Prediction
				convey.So(json.NewDecoder(resp.Body).Decode(&pred), convey.ShouldBeNil)
				convey.So(pred.Formatted, convey.ShouldEqual, "Rp 4,700,000.00")
			})

			convey.Convey("And middleware headers should be set", func() {
				convey.So(resp.Header.Get("X-Request-ID"), convey.ShouldNotBeEmpty)
				convey.So(resp.Header.Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "https://example.org")
			})
		})

		convey.Convey("When requesting each surface", func() {
			for _, path := range []string{"/", "/api/v1/options", "/stats", "/healthz", "/openapi.yaml", "/api-docs"} {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("When requesting an unknown path", func() {
			resp, err := http.Get(srv.URL + "/nope")
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestStartSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given a short-lived context", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		convey.Convey("Then the updater should return when it ends", func() {
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
		})
	})
}
