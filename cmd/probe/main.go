package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/gaji/internal/probe"
)

// Default configuration constants.
const (
	defaultNumRecords   = 200
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultSeed         = 1
	defaultTimeout      = 10 * time.Second
	defaultProbeTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8501", "Base URL of the service")
		numRecords = flag.Int("records", defaultNumRecords, "Number of valid records to generate")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		seed       = flag.Uint64("seed", defaultSeed, "Seed for record generation")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write the generated records to this JSON file")
		logFile    = flag.String("log", "", "Also write log output to this file")
		verbose    = flag.Bool("verbose", false, "Log every verified answer")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	closeLog, err := probe.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)

	_, err = probe.Run(ctx, &probe.Config{
		BaseURL:    *baseURL,
		NumRecords: *numRecords,
		Workers:    *workers,
		Timeout:    *timeout,
		Seed:       *seed,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	})
	cancel()
	_ = closeLog()
	if err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
