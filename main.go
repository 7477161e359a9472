package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.NoColor {
		color.NoColor = true // disables colorized output globally
	}

	logger := newLogger(cfg, stderr)

	// Single-line mode surfaces malformed lines instead of skipping them
	if cfg.DecodeLine != "" {
		o, err := DecodeObservation(cfg.DecodeLine)
		if err != nil {
			logger.Error("failed to decode line", "error", err)
			return 1
		}
		table := NewObservationTable()
		table.Append(o)
		if err := sinkFor(cfg, stdout).WriteTable(ctx, table); err != nil {
			logger.Error("failed to write output", "error", err)
			return 1
		}
		return 0
	}

	src, err := openSource(cfg.Input)
	if err != nil {
		logger.Error("failed to open source", "error", err)
		return 1
	}
	defer src.Close()

	metrics := NewMetrics()
	table, report, err := DecodeBatch(ctx, src, WithLogger(logger), WithMetrics(metrics))
	if err != nil {
		logger.Error("batch aborted", "error", err, "lines_read", report.Lines)
		return 1
	}

	if err := writeOutputs(ctx, cfg, table, stdout, logger); err != nil {
		logger.Error("failed to write output", "error", err)
		return 1
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("failed to write metrics", "error", err, "path", cfg.MetricsFile)
			return 1
		}
	}

	if cfg.Summary {
		fmt.Fprint(stderr, FormatReport(report))
	}

	return 0
}

// sinkFor selects the stdout sink for the configured format
func sinkFor(cfg *Config, w io.Writer) TableSink {
	switch cfg.Format {
	case formatCSV:
		return csvSink{w: w}
	case formatJSON:
		return jsonSink{w: w}
	default:
		return prettySink{w: w}
	}
}

// writeOutputs writes the table to stdout and, when configured, to SQLite
func writeOutputs(ctx context.Context, cfg *Config, table *ObservationTable, stdout io.Writer, logger *slog.Logger) error {
	if err := sinkFor(cfg, stdout).WriteTable(ctx, table); err != nil {
		return err
	}

	if cfg.SQLitePath == "" {
		return nil
	}

	db, err := NewSQLiteSink(cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.WriteTable(ctx, table); err != nil {
		return err
	}
	logger.Info("stored observations", "path", db.DBPath, "rows", table.Len())

	return nil
}
