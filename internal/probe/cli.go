package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/gaji/pkg/logger"
)

// SetupLogging configures logging to the console and, when logFile is not
// empty, to that file as well. The returned function closes the file.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	out := io.Writer(os.Stdout)
	closeFn := func() error { return nil }

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closeFn = file.Close
	}

	if err := logger.Init(logger.WithOutput(out)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closeFn, nil
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`Gaji Probe
==========

Posts generated participant records to a running service and checks every
answer: valid records must return 200 with a positive salary, known-bad
records must return 400.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8501")
  -records int
        Number of valid records to generate (default 200)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -seed uint
        Seed for record generation (default 1)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write the generated records to this JSON file
  -log string
        Also write log output to this file
  -verbose
        Log every verified answer
  -help
        Show this help message

Examples:
  go run ./cmd/probe -records 1000 -workers 16
  go run ./cmd/probe -url http://localhost:8080 -seed 42 -output records.json
`)
}
