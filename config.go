package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output formats accepted by -format
const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

// Config holds all command settings, populated from flags with environment defaults.
type Config struct {
	Input       string // file path, "" or "-" for stdin
	DecodeLine  string // single-line mode when set
	Format      string
	SQLitePath  string
	MetricsFile string
	LogLevel    string
	LogFormat   string
	NoColor     bool
	Summary     bool
}

// envOrDefault returns the environment value for key, or fallback when unset
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadConfig parses command-line arguments, applying METARTAB_* environment defaults.
func loadConfig(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("metartab", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Format, "format", envOrDefault("METARTAB_FORMAT", formatTable), "Output format: table, csv or json")
	fs.StringVar(&cfg.SQLitePath, "sqlite", envOrDefault("METARTAB_SQLITE", ""), "Also store observations in this SQLite database")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", envOrDefault("METARTAB_METRICS_FILE", ""), "Write batch metrics to this Prometheus textfile")
	fs.StringVar(&cfg.LogLevel, "log-level", envOrDefault("METARTAB_LOG_LEVEL", "info"), "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", envOrDefault("METARTAB_LOG_FORMAT", "text"), "Log format: text or json")
	fs.StringVar(&cfg.DecodeLine, "decode", "", "Decode a single report line and exit")
	fs.BoolVar(&cfg.NoColor, "no-color", os.Getenv("NO_COLOR") != "", "Disable color output")
	fs.BoolVar(&cfg.Summary, "summary", false, "Print a batch summary to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return nil, fmt.Errorf("expected at most one input file, got %d", len(remaining))
	}
	if len(remaining) == 1 {
		cfg.Input = remaining[0]
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	switch cfg.Format {
	case formatTable, formatCSV, formatJSON:
	default:
		return nil, fmt.Errorf("invalid format %q: must be table, csv or json", cfg.Format)
	}

	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.LogFormat)
	}

	if cfg.DecodeLine != "" && cfg.Input != "" {
		return nil, errors.New("-decode cannot be combined with an input file")
	}

	return cfg, nil
}
