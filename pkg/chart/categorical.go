package chart

import (
	"math"

	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
	"github.com/samber/lo"
)

// seriesColors follow the theme accent, in this order
var seriesColors = []string{
	"#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Palette returns n colors starting with the theme accent
func Palette(theme config.Theme, n int) []string {
	colors := make([]string, n)
	for i := range colors {
		if i == 0 {
			colors[i] = theme.Accent
			continue
		}
		colors[i] = seriesColors[(i-1)%len(seriesColors)]
	}
	return colors
}

// categoryColor colors by field, keeping the first-seen order of its values
func categoryColor(cfg *config.Configuration, rows core.Dataset, field string) *spec.Channel {
	categories := rows.Categories(field)
	color := spec.Field(field, spec.Nominal)
	color.Scale = &spec.Scale{Domain: categories, Range: Palette(cfg.Theme, len(categories))}
	return color
}

// buildProportion draws a pie, or a donut with a hole of a fifth of the
// shorter side
func buildProportion(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	base := newBase(cfg, rows)
	category := lo.Ternary(cfg.Fields.Category != "", cfg.Fields.Category, cfg.Fields.X)

	arc := &spec.Mark{Type: spec.MarkArc, Stroke: cfg.Theme.CanvasBackground()}
	if cfg.Type == config.TypeDonut {
		arc.InnerRadius = 0.2 * float64(min(cfg.Width, cfg.Height))
	}

	theta := spec.Field(cfg.Fields.Y, spec.Quantitative)
	theta.Stack = true
	encoding := &spec.Encoding{
		Theta: theta,
		Color: categoryColor(cfg, rows, category),
	}

	if !cfg.Annotations.ShowValues {
		base.Spec.Mark = arc
		base.Spec.Encoding = encoding
		return base, nil
	}

	outer := float64(min(cfg.Width, cfg.Height)) / 2
	labels := encoding.Clone()
	labels.Color = nil
	labels.Text = &spec.Channel{Field: cfg.Fields.Y, Type: spec.Quantitative, Format: cfg.YFormat}

	base.Spec.Layers = []spec.Layer{
		{Mark: arc, Encoding: encoding},
		{
			Mark: &spec.Mark{
				Type:     spec.MarkText,
				Radius:   math.Round(outer * 0.8),
				Color:    cfg.Theme.Text,
				FontSize: 12,
			},
			Encoding: labels,
		},
	}
	return base, nil
}

// heatCellContrast is the fixed cut-off above which cell labels turn light
const heatCellContrast = 50

// buildHeatmap draws rects over two ordinal axes colored by a value
func buildHeatmap(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	base := newBase(cfg, rows)
	category := lo.Ternary(cfg.Fields.Category != "", cfg.Fields.Category, cfg.Fields.Y)

	scheme := cfg.Scheme
	if scheme == "" {
		scheme = lo.Ternary(cfg.Theme.Dark, "viridis", "blues")
	}

	x := spec.Field(cfg.Fields.X, spec.Ordinal)
	y := spec.Field(category, spec.Ordinal)
	if !cfg.ShowAxes {
		x.Axis, y.Axis = spec.NoAxis(), spec.NoAxis()
	}

	color := spec.Field(cfg.Fields.ColorValue, spec.Quantitative)
	color.Scale = &spec.Scale{Scheme: scheme}

	cells := spec.Layer{
		Mark:     &spec.Mark{Type: spec.MarkRect},
		Encoding: &spec.Encoding{X: x, Y: y, Color: color},
	}

	if !cfg.Annotations.CellLabels && !cfg.Annotations.ShowValues {
		base.Spec.Layer.Mark = cells.Mark
		base.Spec.Layer.Encoding = cells.Encoding
		return base, nil
	}

	text := spec.Value("#1f2937")
	text.Condition = &spec.Condition{
		Test:  spec.Datum(cfg.Fields.ColorValue) + " > " + core.Text(float64(heatCellContrast)),
		Value: "#ffffff",
	}

	base.Spec.Layers = []spec.Layer{
		cells,
		{
			Mark: &spec.Mark{Type: spec.MarkText, FontSize: 11},
			Encoding: &spec.Encoding{
				X:     x.Clone(),
				Y:     y.Clone(),
				Text:  &spec.Channel{Field: cfg.Fields.ColorValue, Type: spec.Quantitative, Format: cfg.YFormat},
				Color: text,
			},
		},
	}
	return base, nil
}
