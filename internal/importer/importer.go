package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cleared-dev/ynabsplit/internal/model"
)

// DefaultPath is the transactions export read when no path is configured.
const DefaultPath = "transactions.csv"

// Required header columns.
const (
	ColDate    = "Date"
	ColPayee   = "Payee"
	ColMemo    = "Memo"
	ColOutflow = "Outflow"
)

var requiredColumns = []string{ColDate, ColPayee, ColMemo, ColOutflow}

const utf8BOM = "\uFEFF"

// Load reads the CSV export at path. The file is closed before Load returns.
func Load(path string) ([]model.CSVRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	rows, err := ParseRows(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &FileAccessError{Path: path, Err: err}
	}
	return rows, nil
}

// ParseRows reads a header row followed by data rows. Blank lines are skipped and
// rows are returned in input order. A row may not have more fields than the header.
func ParseRows(r io.Reader) ([]model.CSVRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, wrapReadError(err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	var rows []model.CSVRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapReadError(err)
		}
		if isBlank(rec) {
			continue
		}

		line, _ := cr.FieldPos(0)
		if len(rec) > len(header) {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected %d fields, got %d (quote values that contain commas)", len(header), len(rec))}
		}
		row, err := cols.row(rec, len(rows))
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type columns map[string]int

func mapColumns(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
		for _, want := range requiredColumns {
			if strings.EqualFold(name, want) {
				if _, dup := cols[want]; !dup {
					cols[want] = i
				}
			}
		}
	}

	var missing []string
	for _, want := range requiredColumns {
		if _, ok := cols[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing column(s): %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func (c columns) row(rec []string, index int) (model.CSVRow, error) {
	get := func(name string) (string, error) {
		i := c[name]
		if i >= len(rec) {
			return "", fmt.Errorf("expected at least %d fields, got %d", i+1, len(rec))
		}
		return rec[i], nil
	}

	var row model.CSVRow
	var err error
	row.Index = index
	if row.Date, err = get(ColDate); err != nil {
		return model.CSVRow{}, err
	}
	if row.Payee, err = get(ColPayee); err != nil {
		return model.CSVRow{}, err
	}
	if row.Memo, err = get(ColMemo); err != nil {
		return model.CSVRow{}, err
	}
	if row.Outflow, err = get(ColOutflow); err != nil {
		return model.CSVRow{}, err
	}
	return row, nil
}

// isBlank reports whether every field is empty, e.g. a line of bare commas.
func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func wrapReadError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return err
}
