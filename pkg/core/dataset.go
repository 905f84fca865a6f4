package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/StudioSol/set"
	"github.com/samber/lo"
)

// Row is a single schema-free record: field name to scalar value.
// Values are float64, string or bool.
type Row map[string]any

// Dataset is an ordered sequence of rows. Order matters: line connectivity and
// first/last anchors read it as-is.
type Dataset []Row

// Len returns the number of rows
func (d Dataset) Len() int { return len(d) }

// IsEmpty reports whether the dataset holds no rows
func (d Dataset) IsEmpty() bool { return len(d) == 0 }

// Last returns the most recent n rows. n <= 0 or n >= Len returns d unchanged.
func (d Dataset) Last(n int) Dataset {
	if n <= 0 || n >= len(d) {
		return d
	}
	return d[len(d)-n:]
}

// Clone returns a shallow copy of every row so callers can add derived fields
func (d Dataset) Clone() Dataset {
	return lo.Map(d, func(row Row, _ int) Row {
		clone := make(Row, len(row)+1)
		for k, v := range row {
			clone[k] = v
		}
		return clone
	})
}

// Numbers extracts the numeric values of field, skipping rows where the field
// is missing or not numeric
func (d Dataset) Numbers(field string) Series[float64] {
	values := make(Series[float64], 0, len(d))
	for _, row := range d {
		if v, ok := Number(row[field]); ok {
			values = append(values, v)
		}
	}
	return values
}

// Categories returns the distinct string forms of field in first-seen order
func (d Dataset) Categories(field string) []string {
	seen := set.NewLinkedHashSetString()
	for _, row := range d {
		if v, ok := row[field]; ok {
			seen.Add(Text(v))
		}
	}

	categories := make([]string, 0, len(d))
	for category := range seen.Iter() {
		categories = append(categories, category)
	}
	return categories
}

// Find returns the first row whose field renders to the same text as value
func (d Dataset) Find(field string, value any) (Row, bool) {
	needle := Text(value)
	return lo.Find(d, func(row Row) bool {
		v, ok := row[field]
		return ok && Text(v) == needle
	})
}

// Number converts a scalar to float64. Numeric strings are accepted.
func Number(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, !math.IsNaN(value) && !math.IsInf(value, 0)
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case string:
		return ParseNumber(value)
	default:
		return 0, false
	}
}

// ParseNumber parses a trimmed, non-empty, finite number
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Text renders a scalar the way it appears in a source table
func Text(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}
