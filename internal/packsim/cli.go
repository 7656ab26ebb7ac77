package packsim

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/futpack/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "packsim_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the pack simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Futpack Pack Simulation Tool
============================

A concurrent tool for exercising the pack-opening economy end to end:
it seeds a catalog, funds a collector, opens packs, resells a share of
the draws and verifies balance conservation and instance uniqueness.

Usage:
  go run cmd/packsim/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -catalog int
        Number of catalog entries to seed (default 200)
  -packs int
        Number of packs to open (default 1000)
  -sell-every int
        Quick-sell one of every N drawn instances, 0 to disable (default 4)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -admin string
        Acting admin user id (default "sim-admin")
  -user string
        Simulated collector user id (default "sim-collector")
  -log string
        Log file for simulation output (default: packsim_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/packsim/main.go

  # Heavier run against a local server
  go run cmd/packsim/main.go -packs 50000 -workers 16 -url http://localhost:8080
`)
}
