package chart

import (
	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/metric"
	"github.com/raykavin/plotforge/pkg/spec"
)

const bullishField = "bullish"

// secondaryColor is used for the second axis when none is configured
const secondaryColor = "#F59E0B"

// buildCandlestick draws a low-high wick rule under an open-close bar, both
// colored by whether the period closed at or above its open
func buildCandlestick(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	base := newBase(cfg, rows)
	f := cfg.Fields

	base.Spec.Transform = []spec.Transform{{
		Calculate: spec.Datum(f.Close) + " >= " + spec.Datum(f.Open),
		As:        bullishField,
	}}

	color := spec.Field(bullishField, spec.Nominal)
	color.Scale = &spec.Scale{
		Domain: []bool{true, false},
		Range:  []string{cfg.Theme.Positive, cfg.Theme.Negative},
	}
	color.Legend = spec.NoLegend()

	// YChannel gives each layer its own copy of the same scale overrides
	wickY := YChannel(cfg, f.Low)
	bodyY := YChannel(cfg, f.Open)

	base.Spec.Layers = []spec.Layer{
		{
			Mark: &spec.Mark{Type: spec.MarkRule},
			Encoding: &spec.Encoding{
				X:     XChannel(cfg),
				Y:     wickY,
				Y2:    &spec.Channel{Field: f.High},
				Color: color,
			},
		},
		{
			Mark: &spec.Mark{Type: spec.MarkBar},
			Encoding: &spec.Encoding{
				X:     XChannel(cfg),
				Y:     bodyY,
				Y2:    &spec.Channel{Field: f.Close},
				Color: color.Clone(),
			},
		},
	}
	return base, nil
}

// buildStacked stacks bars from zero, one color per category
func buildStacked(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	base := newBase(cfg, rows)

	y := YChannel(cfg, cfg.Fields.Y)
	y.Stack = "zero"

	base.Spec.Mark = &spec.Mark{Type: spec.MarkBar}
	base.Spec.Encoding = &spec.Encoding{
		X:     XChannel(cfg),
		Y:     y,
		Color: categoryColor(cfg, rows, cfg.Fields.Color),
	}
	return base, nil
}

// buildMultiSeries draws one line per series
func buildMultiSeries(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	base := newBase(cfg, rows)

	mark := &spec.Mark{Type: spec.MarkLine, StrokeWidth: 2, Point: true}
	if cfg.Smooth {
		mark.Interpolate = "monotone"
	}

	base.Spec.Mark = mark
	base.Spec.Encoding = &spec.Encoding{
		X:     XChannel(cfg),
		Y:     YChannel(cfg, cfg.Fields.Y),
		Color: categoryColor(cfg, rows, cfg.Fields.Series),
	}
	return base, nil
}

// buildVolumeOverlay puts the primary series on the left axis and a faint
// volume bar on an independent right axis. The primary sits in a group that
// later annotations join, so they share its y scale. Focus rescaling and the
// change label are applied here since they must skip the volume layer.
func buildVolumeOverlay(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	a := cfg.Annotations
	base := newBase(cfg, rows)

	primaryY := YChannel(cfg, cfg.Fields.Y)
	primaryY.Axis = orient(primaryY.Axis, "left")
	primary := spec.Layer{
		Mark:     PrimaryMark(cfg),
		Encoding: &spec.Encoding{X: XChannel(cfg), Y: primaryY},
	}
	if a.FocusChange {
		if lo, hi, ok := metric.FocusDomain(rows.Numbers(cfg.Fields.Y)); ok {
			SetYDomain(spec.Domain{lo, hi}, &primary)
		}
	}

	volumeY := spec.Field(cfg.Fields.Volume, spec.Quantitative)
	volumeY.Axis = orient(&spec.Axis{Title: cfg.Fields.Volume}, "right")
	if !cfg.ShowAxes {
		volumeY.Axis = spec.NoAxis()
	}
	volume := spec.Layer{
		Mark:     &spec.Mark{Type: spec.MarkBar, Color: cfg.Theme.Neutral, Opacity: 0.3},
		Encoding: &spec.Encoding{X: XChannel(cfg), Y: volumeY},
	}

	group := spec.Layer{Group: []spec.Layer{primary}}
	if a.ShowChange {
		if layer, ok := ChangeLayer(cfg, rows, primary.Encoding); ok {
			group.Group = append(group.Group, layer)
		}
	}

	base.Spec.Layers = []spec.Layer{group, volume}
	base.Spec.Resolve = &spec.Resolve{Scale: map[string]string{"y": "independent"}}
	return base, nil
}

// buildDualAxis draws y and y2 as independent layers over a shared x. The
// left series is grouped so annotations land on its scale.
func buildDualAxis(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	base := newBase(cfg, rows)

	leftY := YChannel(cfg, cfg.Fields.Y)
	leftY.Axis = orient(leftY.Axis, "left")
	left := spec.Layer{
		Mark:     PrimaryMark(cfg),
		Encoding: &spec.Encoding{X: XChannel(cfg), Y: leftY},
	}

	secondary := cfg.Y2Color
	if secondary == "" {
		secondary = secondaryColor
	}
	rightMark := &spec.Mark{Type: cfg.Y2Type, Color: secondary}
	switch cfg.Y2Type {
	case spec.MarkLine:
		rightMark.StrokeWidth = 2
	case spec.MarkArea, spec.MarkBar:
		rightMark.Opacity = 0.5
	}

	rightY := spec.Field(cfg.Fields.Y2, spec.Quantitative)
	rightY.Axis = orient(&spec.Axis{Title: cfg.Fields.Y2}, "right")
	if !cfg.ShowAxes {
		rightY.Axis = spec.NoAxis()
	}
	right := spec.Layer{
		Mark:     rightMark,
		Encoding: &spec.Encoding{X: XChannel(cfg), Y: rightY},
	}

	base.Spec.Layers = []spec.Layer{{Group: []spec.Layer{left}}, right}
	base.Spec.Resolve = &spec.Resolve{Scale: map[string]string{"y": "independent"}}
	return base, nil
}

// ChangeLayer labels the last row with the signed first-to-last change of y.
// Rises use the negative color and falls the positive one, matching risk
// dashboards where a drop is good news. No change is drawn neutral.
func ChangeLayer(cfg *config.Configuration, rows core.Dataset, shared *spec.Encoding) (spec.Layer, bool) {
	values := rows.Numbers(cfg.Fields.Y)
	if values.Length() < 2 {
		return spec.Layer{}, false
	}

	pct, ok := metric.PercentChange(values.First(), values.Last(0))
	if !ok {
		return spec.Layer{}, false
	}

	color := cfg.Theme.Neutral
	switch {
	case pct > 0:
		color = cfg.Theme.Negative
	case pct < 0:
		color = cfg.Theme.Positive
	}

	last := lastNumericRow(rows, cfg.Fields.Y)
	return spec.Layer{
		Transform: spec.AtRow(last),
		Mark: &spec.Mark{
			Type:       spec.MarkText,
			Align:      "left",
			Dx:         6,
			FontWeight: "bold",
			FontSize:   13,
			Color:      color,
		},
		Encoding: &spec.Encoding{
			X:    shared.X.Follow(),
			Y:    shared.Y.Follow(),
			Text: spec.Value(metric.FormatChange(pct)),
		},
	}, true
}

func lastNumericRow(rows core.Dataset, field string) int {
	for i := len(rows) - 1; i >= 0; i-- {
		if _, ok := core.Number(rows[i][field]); ok {
			return i
		}
	}
	return len(rows) - 1
}

func orient(axis *spec.Axis, side string) *spec.Axis {
	if axis == nil {
		return &spec.Axis{Orient: side}
	}
	if axis.Disabled {
		return axis
	}
	axis.Orient = side
	return axis
}
