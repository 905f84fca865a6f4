package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
	"github.com/raykavin/plotforge/pkg/tabular"
	"github.com/samber/lo"
)

const (
	fallbackBelow = "red"
	fallbackAbove = "green"
)

// ParseHLine parses "value[,color[,label]]". An empty color is left for the
// caller to default.
func ParseHLine(raw string) (HLine, error) {
	parts := strings.SplitN(raw, ",", 3)

	value, ok := core.ParseNumber(parts[0])
	if !ok {
		return HLine{}, fmt.Errorf("hline value %q is not a number", parts[0])
	}

	line := HLine{Value: value}
	if len(parts) > 1 {
		line.Color = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		line.Label = strings.TrimSpace(parts[2])
	}
	return line, nil
}

// ParseColorCondition parses "threshold,belowColor,aboveColor". Missing colors
// fall back to red below and green above.
func ParseColorCondition(raw string) (*ColorCondition, error) {
	parts := lo.Map(strings.Split(raw, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})

	threshold, ok := core.ParseNumber(parts[0])
	if !ok {
		return nil, fmt.Errorf("threshold %q is not a number", parts[0])
	}

	condition := &ColorCondition{Threshold: threshold, Below: fallbackBelow, Above: fallbackAbove}
	if len(parts) > 1 && parts[1] != "" {
		condition.Below = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		condition.Above = parts[2]
	}
	return condition, nil
}

// ParseTimeline parses either a JSON list of {x, label} objects or a single
// "x|label" entry
func ParseTimeline(raw string) ([]TimelineNote, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty annotation")
	}

	if strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{") {
		rows, err := tabular.ParseLiteral(raw)
		if err != nil {
			return nil, err
		}
		notes := make([]TimelineNote, 0, len(rows))
		for _, row := range rows {
			x, ok := row["x"]
			if !ok {
				return nil, fmt.Errorf("annotation %v has no x", row)
			}
			notes = append(notes, TimelineNote{X: x, Label: core.Text(row["label"])})
		}
		return notes, nil
	}

	x, label, _ := strings.Cut(raw, "|")
	return []TimelineNote{{X: tabular.Coerce(x), Label: strings.TrimSpace(label)}}, nil
}

// ParseDomain parses "lo,hi" (or a JSON pair) into an ascending domain
func ParseDomain(raw string) (spec.Domain, error) {
	raw = strings.TrimSpace(raw)

	var bounds []float64
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &bounds); err != nil {
			return spec.Domain{}, fmt.Errorf("%w: %v", core.ErrInvalidDomain, err)
		}
	} else {
		for _, part := range strings.Split(raw, ",") {
			v, ok := core.ParseNumber(part)
			if !ok {
				return spec.Domain{}, fmt.Errorf("%w: %q is not a number", core.ErrInvalidDomain, part)
			}
			bounds = append(bounds, v)
		}
	}

	if len(bounds) != 2 {
		return spec.Domain{}, fmt.Errorf("%w: got %d values", core.ErrInvalidDomain, len(bounds))
	}
	return spec.NewDomain(bounds[0], bounds[1])
}
