package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// TableSink receives a finished observation table
type TableSink interface {
	WriteTable(ctx context.Context, t *ObservationTable) error
}

// csvSink writes a header row followed by one row per observation
type csvSink struct {
	w io.Writer
}

func (s csvSink) WriteTable(_ context.Context, t *ObservationTable) error {
	cw := csv.NewWriter(s.w)
	if err := cw.Write(ColumnNames); err != nil {
		return fmt.Errorf("error writing csv header: %w", err)
	}

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		record := make([]string, len(row))
		for c, v := range row {
			cell, err := cellString(v)
			if err != nil {
				return err
			}
			record[c] = cell
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// jsonSink writes the table in column-oriented form: {"column": [values...]}
type jsonSink struct {
	w io.Writer
}

func (s jsonSink) WriteTable(_ context.Context, t *ObservationTable) error {
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")

	// Keep the column order stable in the output
	var b strings.Builder
	b.WriteString("{")
	for i, col := range t.Columns() {
		if i > 0 {
			b.WriteString(",")
		}
		name, _ := json.Marshal(col.Name)
		values, err := json.Marshal(col.Values)
		if err != nil {
			return fmt.Errorf("error encoding column %s: %w", col.Name, err)
		}
		b.Write(name)
		b.WriteString(":")
		b.Write(values)
	}
	b.WriteString("}")

	return enc.Encode(json.RawMessage(b.String()))
}

// cellString renders one table cell as text; absent values become ""
func cellString(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case []SkyLayer:
		data, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("error encoding sky layers: %w", err)
		}
		return string(data), nil
	default:
		return fmt.Sprint(val), nil
	}
}

// SQLiteSink stores observations in an SQLite database
type SQLiteSink struct {
	db     *sql.DB
	DBPath string
}

// NewSQLiteSink opens the database and creates the observations table if needed
func NewSQLiteSink(dbPath string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS observations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		station TEXT NOT NULL,
		ddhhmmZ TEXT NOT NULL,
		is_auto BOOLEAN NOT NULL,
		wind_dir TEXT,
		wind_spd_kt INTEGER,
		wind_gst_kt INTEGER,
		visibility_raw TEXT,
		visibility_sm REAL,
		sky_layers TEXT,
		ceiling_ft INTEGER,
		temp_c REAL,
		dewpoint_c REAL,
		altimeter_inHg REAL,
		remarks TEXT,
		precise_temp_c REAL,
		precise_dew_c REAL
	);
	CREATE INDEX IF NOT EXISTS idx_station ON observations(station);`

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteSink{db: db, DBPath: dbPath}, nil
}

// Close closes the database connection
func (s *SQLiteSink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WriteTable inserts every row of the table in a single transaction
func (s *SQLiteSink) WriteTable(ctx context.Context, t *ObservationTable) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ColumnNames)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO observations(%s) VALUES(%s)",
		strings.Join(ColumnNames, ", "), placeholders,
	))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < t.Len(); i++ {
		args := t.Row(i)
		if layers, ok := args[skyLayersColumn].([]SkyLayer); ok {
			encoded, err := cellString(layers)
			if err != nil {
				tx.Rollback()
				return err
			}
			args[skyLayersColumn] = encoded
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert row %d for %s: %w", i, args[2], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the number of stored observations
func (s *SQLiteSink) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM observations").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count observations: %w", err)
	}
	return n, nil
}
