// Package probe drives a running service with generated records and
// verifies each answer.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/gaji/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// ErrVerificationFailed is returned when at least one answer did not match
// its record's expected outcome.
var ErrVerificationFailed = errors.New("verification failed")

// Run executes the complete probe and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.Workers < 1 {
		config.Workers = 1
	}
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting gaji probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("records", config.NumRecords),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Bool("verbose", config.Verbose))

	if err := checkServiceHealth(ctx, config); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	records := generateRecords(config.NumRecords, config.Seed)
	stats.Generated = len(records)

	submitRecords(ctx, config, records, stats)

	if config.OutputFile != "" {
		if err := saveRecordsToFile(ctx, config.OutputFile, records); err != nil {
			logger.Get().Warn(ctx, "failed to save records to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if stats.Mismatched > 0 || stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d mismatched, %d failed", ErrVerificationFailed, stats.Mismatched, stats.Failed)
	}
	logger.Get().Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+healthPath)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

// submitRecords posts records concurrently using a worker pool.
func submitRecords(ctx context.Context, config *Config, records []Record, stats *Stats) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + predictPath

	var submitted, passed, mismatched, failed int64

	recordChan := make(chan Record, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range recordChan {
				status, body, err := client.Predict(ctx, url, rec)
				atomic.AddInt64(&submitted, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					logger.Get().Warn(ctx, "request failed", logger.String("id", rec.ID), logger.Error(err))
					continue
				}
				if err := verify(rec, status, body); err != nil {
					atomic.AddInt64(&mismatched, 1)
					logger.Get().Warn(ctx, "unexpected answer", logger.String("id", rec.ID), logger.Error(err))
					continue
				}
				atomic.AddInt64(&passed, 1)
				if config.Verbose {
					logger.Get().Info(ctx, "answer verified",
						logger.String("id", rec.ID),
						logger.Bool("valid", rec.Valid),
						logger.Int("status", status))
				}
			}
		}()
	}

	go func() {
		defer close(recordChan)
		for _, rec := range records {
			select {
			case <-ctx.Done():
				return
			case recordChan <- rec:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Passed = int(atomic.LoadInt64(&passed))
	stats.Mismatched = int(atomic.LoadInt64(&mismatched))
	stats.Failed = int(atomic.LoadInt64(&failed))
}

// saveRecordsToFile writes the generated records as a JSON array.
func saveRecordsToFile(ctx context.Context, filename string, records []Record) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "records saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(stats *Stats) {
	var passRate, recordsPerSecond float64

	if stats.Submitted > 0 {
		passRate = float64(stats.Passed) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		recordsPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("passed", stats.Passed),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate),
		logger.Float64("recordsPerSecond", recordsPerSecond))
}
