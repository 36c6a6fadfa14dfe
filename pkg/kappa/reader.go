package kappa

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	commentPrefix = "#"

	// maxLineBytes caps a single line of a whitespace separated file.
	maxLineBytes = 4 << 20
)

// row is one non-blank line of an input file split into fields.
type row struct {
	line   int
	fields []string
}

// readRows opens path and splits every non-blank, non-comment line into
// fields, either on commas or on runs of whitespace. The file is fully read
// and closed before returning.
func readRows(path string, comma bool) ([]row, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: file path required", ErrFile)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFile, path, err)
	}
	defer f.Close()

	if comma {
		return splitComma(path, f)
	}
	return splitWhitespace(path, f)
}

func splitWhitespace(path string, r io.Reader) ([]row, error) {
	var rows []row
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		rows = append(rows, row{line: n, fields: strings.Fields(line)})
	}
	if err := s.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: %s line %d longer than %d bytes: %w", ErrFormat, path, n+1, maxLineBytes, err)
		}
		return nil, fmt.Errorf("%w: error reading %s: %w", ErrFile, path, err)
	}
	return rows, nil
}

func splitComma(path string, r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
		}
		line, _ := cr.FieldPos(0)
		fields := make([]string, len(rec))
		for i, v := range rec {
			fields[i] = strings.TrimSpace(v)
		}
		rows = append(rows, row{line: line, fields: fields})
	}
	return rows, nil
}
