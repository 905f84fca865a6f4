// Package tabular decodes delimited text and inline literals into core.Dataset.
package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/raykavin/plotforge/pkg/core"
	"github.com/samber/lo"
)

const byteOrderMark = "\ufeff"

// Separator identifies the delimiter detected for a table
type Separator rune

const (
	Comma Separator = ','
	Tab   Separator = '\t'
)

// DetectSeparator picks tab when the header line has a tab and no comma
func DetectSeparator(header string) Separator {
	if strings.Contains(header, "\t") && !strings.Contains(header, ",") {
		return Tab
	}
	return Comma
}

// Decode turns delimited text into rows keyed by the header line.
// It returns an empty dataset when there is no header plus at least one row.
func Decode(text string) core.Dataset {
	text = strings.TrimPrefix(text, byteOrderMark)

	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return core.Dataset{}
	}

	var records [][]string
	switch DetectSeparator(lines[0]) {
	case Tab:
		records = lo.Map(lines, func(line string, _ int) []string {
			return splitTabbed(line)
		})
	default:
		var err error
		if records, err = readCommaSeparated(lines); err != nil {
			return core.Dataset{}
		}
	}

	if len(records) < 2 {
		return core.Dataset{}
	}

	headers := lo.Map(records[0], func(h string, _ int) string {
		return strings.TrimSpace(h)
	})

	rows := make(core.Dataset, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, parseRecord(headers, record))
	}

	return rows
}

// nonBlankLines splits text on line breaks and drops whitespace-only lines
func nonBlankLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return lo.Filter(lines, func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})
}

// readCommaSeparated parses RFC 4180 records, quoted separators included.
// A record with a stray or unterminated quote is dropped; an unterminated
// quote takes the lines after it along, as the format says it must.
func readCommaSeparated(lines []string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// splitTabbed splits a tab separated line and strips surrounding quotes
func splitTabbed(line string) []string {
	return lo.Map(strings.Split(line, "\t"), func(field string, _ int) string {
		field = strings.TrimSpace(field)
		if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
			return field[1 : len(field)-1]
		}
		return field
	})
}

// parseRecord builds a row; missing trailing fields become empty strings
func parseRecord(headers, record []string) core.Row {
	row := make(core.Row, len(headers))
	for i, header := range headers {
		if i >= len(record) {
			row[header] = ""
			continue
		}
		row[header] = Coerce(record[i])
	}
	return row
}

// Coerce converts a cell to float64 when it is a finite number, else keeps
// the trimmed text
func Coerce(cell string) any {
	cell = strings.TrimSpace(cell)
	if v, ok := core.ParseNumber(cell); ok {
		return v
	}
	return cell
}
