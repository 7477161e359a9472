package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

const maxLineBytes = 1024 * 1024

// BatchReport summarizes what happened to each source line
type BatchReport struct {
	Lines       int
	Blank       int
	Comments    int
	Decoded     int
	Malformed   int
	Unparseable int
	Duration    time.Duration
}

// Skipped returns the number of lines that produced no row
func (r BatchReport) Skipped() int {
	return r.Blank + r.Comments + r.Malformed
}

// BatchOption configures DecodeBatch
type BatchOption func(*batchDecoder)

// WithLogger sets the logger used for per-line debug output
func WithLogger(logger *slog.Logger) BatchOption {
	return func(b *batchDecoder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMetrics records line outcomes and batch duration
func WithMetrics(m *Metrics) BatchOption {
	return func(b *batchDecoder) {
		b.metrics = m
	}
}

// WithClock swaps the time source used to measure the batch
func WithClock(c clockwork.Clock) BatchOption {
	return func(b *batchDecoder) {
		if c != nil {
			b.clock = c
		}
	}
}

type batchDecoder struct {
	logger  *slog.Logger
	metrics *Metrics
	clock   clockwork.Clock
}

// DecodeBatch reads r line by line and decodes every report line into the
// returned table. Blank, comment and malformed lines are skipped; only a
// failure of r itself is returned as an error.
func DecodeBatch(ctx context.Context, r io.Reader, opts ...BatchOption) (*ObservationTable, BatchReport, error) {
	b := &batchDecoder{
		logger: slog.New(slog.DiscardHandler),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b.run(ctx, r)
}

func (b *batchDecoder) run(ctx context.Context, r io.Reader) (*ObservationTable, BatchReport, error) {
	start := b.clock.Now()
	table := NewObservationTable()
	var report BatchReport

	reader := bufio.NewReaderSize(r, 64*1024)

	for {
		raw, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table, b.finish(report, start), &SourceReadError{Line: report.Lines, Err: err}
		}
		if err := ctx.Err(); err != nil {
			return table, b.finish(report, start), err
		}

		report.Lines++
		lineNo := report.Lines

		if tooLong {
			report.Malformed++
			b.count(outcomeMalformed)
			b.logger.Debug("skipping oversized line", "line", lineNo, "limit", maxLineBytes)
			continue
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			report.Blank++
			b.count(outcomeBlank)
			continue
		}
		if strings.HasPrefix(line, commentPrefix) {
			report.Comments++
			b.count(outcomeComment)
			continue
		}

		o, err := decodeObservation(line, func(token string, kind FieldKind, err error) {
			report.Unparseable++
			if b.metrics != nil {
				b.metrics.UnparseableSubfields.WithLabelValues(kind.String()).Inc()
			}
			b.logger.Debug("unparseable subfield", "line", lineNo, "token", token, "field", kind.String(), "error", err)
		})
		if err != nil {
			report.Malformed++
			b.count(outcomeMalformed)
			b.logger.Debug("skipping malformed line", "line", lineNo, "error", err)
			continue
		}

		table.Append(o)
		report.Decoded++
		b.count(outcomeDecoded)
	}

	report = b.finish(report, start)
	b.logger.Info("batch decoded",
		"lines", report.Lines,
		"decoded", report.Decoded,
		"skipped", report.Skipped(),
		"unparseable", report.Unparseable,
		"duration", report.Duration,
	)

	return table, report, nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is consumed to its end and reported as too long with no text.
func readLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	started, tooLong := false, false
	for {
		frag, isPrefix, err := r.ReadLine()
		if err != nil {
			if started && errors.Is(err, io.EOF) {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		started = true

		if !tooLong {
			if len(buf)+len(frag) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, frag...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func (b *batchDecoder) count(outcome string) {
	if b.metrics != nil {
		b.metrics.Lines.WithLabelValues(outcome).Inc()
	}
}

func (b *batchDecoder) finish(report BatchReport, start time.Time) BatchReport {
	report.Duration = b.clock.Since(start)
	if b.metrics != nil {
		b.metrics.BatchDuration.Observe(report.Duration.Seconds())
	}
	return report
}
