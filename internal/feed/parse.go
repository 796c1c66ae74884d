package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/agenthands/projectsearch/internal/core/model"
)

// Parse reads delimited text with a header row into raw rows keyed by header name.
// Ragged rows are tolerated: missing cells become empty strings and extra cells are dropped.
func Parse(text string, delimiter rune) ([]model.RawRow, error) {
	if delimiter == 0 {
		delimiter = ','
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, wrapCSVError(err)
	}
	for i, cell := range header {
		header[i] = cleanCell(cell)
		if header[i] == "" {
			header[i] = fmt.Sprintf("#%d", i+1)
		}
	}

	var rows []model.RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}

		row := make(model.RawRow, len(header))
		blank := true
		for i, name := range header {
			if _, dup := row[name]; dup {
				continue
			}
			var value string
			if i < len(record) {
				value = cleanCell(record[i])
			}
			if value != "" {
				blank = false
			}
			row[name] = value
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func wrapCSVError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	v = strings.TrimSpace(v)
	return norm.NFC.String(v)
}
