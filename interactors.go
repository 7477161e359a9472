package main

import (
	"errors"
	"io"
	"os"
)

// stdinHasData reports whether input is being piped in on stdin
func stdinHasData() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice == 0
}

// openSource opens the input file, or stdin for "" and "-"
func openSource(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		if !stdinHasData() {
			return nil, &SourceReadError{Err: errors.New("no input file given and nothing piped on stdin")}
		}
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceReadError{Err: err}
	}
	return f, nil
}
