package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// commentPrefix starts a comment running to the end of the line.
const commentPrefix = "#"

// LoadTable reads a whitespace-delimited numeric text file into a Table.
// A missing file yields an error matching both ErrFileNotFound and fs.ErrNotExist.
func LoadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	return ReadTable(file, path)
}

// ReadTable parses rows of whitespace-separated floats from r. name is used in
// error messages and as the table name. Blank lines and everything after '#'
// are skipped; all data rows must have the same field count as the first.
func ReadTable(r io.Reader, name string) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var values []float64
	numCols := 0
	numRows := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, commentPrefix); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if numRows == 0 {
			numCols = len(fields)
		} else if len(fields) != numCols {
			return nil, &ParseError{
				Path: name,
				Line: lineNo,
				Msg:  fmt.Sprintf("expected %d fields, found %d", numCols, len(fields)),
			}
		}

		for i, field := range fields {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &ParseError{
					Path:  name,
					Line:  lineNo,
					Field: i + 1,
					Msg:   fmt.Sprintf("could not convert %q to float", field),
					Err:   err,
				}
			}
			values = append(values, val)
		}
		numRows++
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: name, Line: lineNo + 1, Msg: "failed to read line", Err: err}
	}

	if numRows == 0 {
		return nil, &ParseError{Path: name, Msg: "no data rows"}
	}

	return &Table{
		Name: name,
		data: mat.NewDense(numRows, numCols, values),
	}, nil
}
