package testdata

import (
	"bufio"
	"compress/gzip"
	"embed"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed *.gz
var data embed.FS

// Counts of each kind of line in metar.txt.gz
const (
	METARLines     = 15
	METARBlank     = 1
	METARComments  = 2
	METARMalformed = 2
	METARDecoded   = 10
)

func newReader(t *testing.T, path string) io.Reader {
	f, err := data.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	r, err := gzip.NewReader(f)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, r.Close())
	})

	return r
}

func newScanner(t *testing.T, path string) *bufio.Scanner {
	scanner := bufio.NewScanner(newReader(t, path))
	t.Cleanup(func() {
		require.NoError(t, scanner.Err())
	})

	return scanner
}

// METAR returns a scanner over the sample report corpus
func METAR(t *testing.T) *bufio.Scanner {
	return newScanner(t, "metar.txt.gz")
}

// METARReader returns the decompressed sample report corpus
func METARReader(t *testing.T) io.Reader {
	return newReader(t, "metar.txt.gz")
}
