package tabular

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/raykavin/plotforge/pkg/core"
)

// IsLiteral reports whether text looks like inline bracket or brace data
func IsLiteral(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "[") || strings.HasPrefix(text, "{")
}

// IsShorthand reports whether text is a single-line label:value list
func IsShorthand(text string) bool {
	text = strings.TrimSpace(text)
	return text != "" && !IsLiteral(text) && !strings.ContainsAny(text, "\n\t") && strings.Contains(text, ":")
}

// ParseLiteral decodes inline data: a JSON array of objects, a JSON array of
// scalars, a single JSON object or the label:value shorthand
func ParseLiteral(text string) (core.Dataset, error) {
	text = strings.TrimSpace(strings.TrimPrefix(text, byteOrderMark))

	switch {
	case IsLiteral(text):
		return parseJSON(text)
	case IsShorthand(text):
		return ParseShorthand(text)
	default:
		return nil, fmt.Errorf("%w: expected [..], {..} or label:value", core.ErrMalformedLiteral)
	}
}

// ParseShorthand expands "label:value,label:value" into {x: label, y: value} rows
func ParseShorthand(text string) (core.Dataset, error) {
	var rows core.Dataset
	for _, pair := range strings.Split(text, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		sep := strings.LastIndex(pair, ":")
		if sep <= 0 {
			return nil, fmt.Errorf("%w: %q is not label:value", core.ErrMalformedLiteral, pair)
		}

		rows = append(rows, core.Row{
			"x": strings.TrimSpace(pair[:sep]),
			"y": Coerce(pair[sep+1:]),
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty shorthand", core.ErrMalformedLiteral)
	}
	return rows, nil
}

func parseJSON(text string) (core.Dataset, error) {
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedLiteral, err)
	}

	switch value := decoded.(type) {
	case map[string]any:
		return core.Dataset{core.Row(value)}, nil
	case []any:
		rows := make(core.Dataset, 0, len(value))
		for i, item := range value {
			switch entry := item.(type) {
			case map[string]any:
				rows = append(rows, core.Row(entry))
			case float64, string, bool:
				rows = append(rows, core.Row{"x": float64(i), "y": entry})
			default:
				return nil, fmt.Errorf("%w: unsupported element at index %d", core.ErrMalformedLiteral, i)
			}
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: top level must be an array or object", core.ErrMalformedLiteral)
	}
}
