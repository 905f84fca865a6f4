package decorate

import (
	"fmt"

	"github.com/raykavin/plotforge/pkg/chart"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/metric"
	"github.com/raykavin/plotforge/pkg/spec"
	"github.com/samber/lo"
)

const labelOffset = 8

// FocusRecent keeps the last N rows, in order, for the document and every
// later stage. chart.Build already windows its rows, so over a built base this
// only matters when the stage is run on its own.
func FocusRecent(s State) State {
	n := s.Config.Annotations.FocusRecent
	if n <= 0 || n >= s.Rows.Len() {
		return s
	}

	next := s.withSpec()
	next.Rows = s.Rows.Last(n)
	next.Spec.Data = &spec.Data{Values: next.Rows}
	return next
}

// FocusChange rescales the y axis around the windowed values so small moves
// stay visible
func FocusChange(s State) State {
	// the volume overlay rescales its own primary layer
	if !s.Config.Annotations.FocusChange || s.Family == chart.FamilyVolume || !s.annotatable() {
		return s
	}

	values := s.Rows.Numbers(s.Config.Fields.Y).Values()
	if s.Family == chart.FamilyCandlestick {
		f := s.Config.Fields
		values = append(s.Rows.Numbers(f.Low).Values(), s.Rows.Numbers(f.High).Values()...)
	}

	low, high, ok := metric.FocusDomain(values)
	if !ok {
		return s
	}
	domain, err := spec.NewDomain(low, high)
	if err != nil {
		return s
	}

	next := s.withSpec()
	targets := []*spec.Layer{next.Spec.Primary()}
	if s.Family == chart.FamilyCandlestick {
		targets = []*spec.Layer{&next.Spec.Layers[0], &next.Spec.Layers[1]}
	}
	if !s.transposed() {
		chart.SetYDomain(domain, targets...)
		return next
	}

	// horizontal bars carry their values on x
	for _, layer := range targets {
		enc := layer.Encoding
		enc.X, enc.Y = enc.Y, enc.X
		chart.SetYDomain(domain, layer)
		enc.X, enc.Y = enc.Y, enc.X
	}
	return next
}

// ConditionalColor colors marks by whether y reaches the threshold. Bars,
// areas and points get a conditional color channel; a line is drawn neutral
// with colored points on top.
func ConditionalColor(s State) State {
	cc := s.Config.Annotations.ColorCondition
	if cc == nil || !s.annotatable() {
		return s
	}

	primary := s.Spec.Primary()
	if primary.Mark == nil || primary.Encoding.Color != nil {
		return s
	}

	color := spec.Value(cc.Below)
	color.Condition = &spec.Condition{
		Test:  fmt.Sprintf("%s >= %s", spec.Datum(s.valueField()), core.Text(cc.Threshold)),
		Value: cc.Above,
	}

	switch primary.Mark.Type {
	case spec.MarkBar, spec.MarkArea, spec.MarkPoint:
		next := s.withSpec()
		next.Spec.Primary().Encoding.Color = color
		return next
	case spec.MarkLine:
		next := s.withSpec()
		line := next.Spec.Primary().Mark
		line.Color = s.Config.Theme.Neutral
		line.Point = nil

		points := s.anchored()
		points.Color = color
		return next.with(spec.Layer{
			Mark:     &spec.Mark{Type: spec.MarkPoint, Filled: spec.Bool(true), Size: 60},
			Encoding: points,
		})
	default:
		return s
	}
}

// BarLabels writes each bar's value above it, or to its right when bars are
// horizontal
func BarLabels(s State) State {
	if !s.Config.Annotations.BarLabels || s.Family != chart.FamilyDefault || !s.annotatable() {
		return s
	}
	if m := s.Spec.Primary().Mark; m == nil || m.Type != spec.MarkBar {
		return s
	}

	mark := &spec.Mark{Type: spec.MarkText, Color: s.Config.Theme.Text, FontSize: 11}
	if s.transposed() {
		mark.Align, mark.Baseline, mark.Dx = "left", "middle", 4
	} else {
		mark.Align, mark.Baseline, mark.Dy = "center", "bottom", -4
	}

	enc := s.anchored()
	enc.Text = s.valueText()
	return s.with(spec.Layer{Mark: mark, Encoding: enc})
}

// ShowChange labels the last point with the first-to-last change
func ShowChange(s State) State {
	// the volume overlay draws its own change label
	if !s.Config.Annotations.ShowChange || s.Family == chart.FamilyVolume || !s.annotatable() {
		return s
	}

	cfg := *s.Config
	cfg.Fields.Y = s.valueField()
	layer, ok := chart.ChangeLayer(&cfg, s.Rows, s.anchored())
	if !ok {
		return s
	}
	return s.with(layer)
}

// ShowValues labels the highest point above and the lowest below. A flat
// series only gets the top label.
func ShowValues(s State) State {
	if !s.Config.Annotations.ShowValues || !s.annotatable() {
		return s
	}

	top, bottom, ok := extremes(s.Rows, s.valueField())
	if !ok {
		return s
	}

	layers := []spec.Layer{s.valueLabel(top, true)}
	if numberAt(s.Rows, bottom, s.valueField()) != numberAt(s.Rows, top, s.valueField()) {
		layers = append(layers, s.valueLabel(bottom, false))
	}
	return s.with(layers...)
}

func (s State) valueLabel(row int, above bool) spec.Layer {
	mark := &spec.Mark{Type: spec.MarkText, Color: s.Config.Theme.Text, FontSize: 11, FontWeight: "bold"}
	switch {
	case s.transposed() && above:
		mark.Align, mark.Dx = "left", labelOffset
	case s.transposed():
		mark.Align, mark.Dx = "right", -labelOffset
	case above:
		mark.Baseline, mark.Dy = "bottom", -labelOffset
	default:
		mark.Baseline, mark.Dy = "top", labelOffset
	}

	enc := s.anchored()
	enc.Text = s.valueText()
	return spec.Layer{Transform: spec.AtRow(row), Mark: mark, Encoding: enc}
}

func (s State) valueText() *spec.Channel {
	return &spec.Channel{Field: s.valueField(), Type: spec.Quantitative, Format: s.Config.YFormat}
}

// Timeline draws a dashed full-height rule at each annotated x, with its
// label near the top of the plot
func Timeline(s State) State {
	notes := s.Config.Annotations.Timeline
	if len(notes) == 0 || !s.annotatable() {
		return s
	}

	category := s.primary().X
	if s.transposed() {
		category = s.primary().Y
	}
	// place binds the annotated category, which runs along y for horizontal
	// bars
	place := func(at *spec.Channel) *spec.Encoding {
		if s.transposed() {
			return &spec.Encoding{Y: at}
		}
		return &spec.Encoding{X: at}
	}

	layers := make([]spec.Layer, 0, 2*len(notes))
	for _, note := range notes {
		at := &spec.Channel{Datum: note.X, Type: category.Type}
		layers = append(layers, spec.Layer{
			Transform: spec.AtRow(0),
			Mark: &spec.Mark{
				Type:        spec.MarkRule,
				Color:       s.Config.Theme.Neutral,
				StrokeDash:  spec.Dashed(),
				StrokeWidth: 1,
			},
			Encoding: place(at),
		})

		if note.Label == "" {
			continue
		}
		mark := &spec.Mark{
			Type:     spec.MarkText,
			Color:    s.Config.Theme.Text,
			Align:    "left",
			Baseline: "top",
			Dx:       4,
			Y:        4,
			FontSize: 11,
		}
		if s.transposed() {
			mark.Y, mark.Baseline, mark.Dx, mark.Dy = nil, "bottom", 4, -4
		}
		enc := place(at.Clone())
		enc.Text = spec.Value(note.Label)
		layers = append(layers, spec.Layer{Transform: spec.AtRow(0), Mark: mark, Encoding: enc})
	}
	return s.with(layers...)
}

// trendField is the y field of the trend line's own two-row dataset
const trendField = "trend"

// TrendLine fits y against row position and draws the fit from the first to
// the last row
func TrendLine(s State) State {
	if !s.Config.Annotations.TrendLine || !s.annotatable() {
		return s
	}

	field := s.valueField()
	numeric := core.Dataset(lo.Filter(s.Rows, func(row core.Row, _ int) bool {
		_, ok := core.Number(row[field])
		return ok
	}))
	trend, ok := metric.LinearTrend(numeric.Numbers(field).Values())
	if !ok {
		return s
	}

	xField := s.Config.Fields.X
	enc := s.anchored()
	value := lo.Ternary(s.transposed(), enc.X, enc.Y)
	value.Field = trendField

	last := len(numeric) - 1
	return s.with(spec.Layer{
		Data: &spec.Data{Values: core.Dataset{
			{xField: numeric[0][xField], trendField: trend.At(0)},
			{xField: numeric[last][xField], trendField: trend.At(last)},
		}},
		Mark: &spec.Mark{
			Type:        spec.MarkLine,
			Color:       s.Config.Theme.Text,
			Opacity:     0.7,
			StrokeDash:  spec.Dashed(),
			StrokeWidth: 1.5,
		},
		Encoding: enc,
	})
}

// MovingAverage adds a simple moving average column to the rows and draws it
// as a dotted line. Rows inside the warm-up window get no value.
func MovingAverage(s State) State {
	period := s.Config.Annotations.MovingAverage
	if period < 2 || !s.annotatable() {
		return s
	}

	field := s.valueField()
	column := fmt.Sprintf("%s_ma%d", field, period)

	positions := make([]int, 0, len(s.Rows))
	for i, row := range s.Rows {
		if _, ok := core.Number(row[field]); ok {
			positions = append(positions, i)
		}
	}

	averages, warmup := metric.MovingAverage(s.Rows.Numbers(field).Values(), period)
	if averages == nil {
		return s
	}

	rows := s.Rows.Clone()
	for i := warmup; i < len(averages); i++ {
		rows[positions[i]][column] = averages[i]
	}

	next := s.withSpec()
	next.Rows = rows
	next.Spec.Data = &spec.Data{Values: rows}

	enc := s.anchored()
	value := lo.Ternary(s.transposed(), enc.X, enc.Y)
	value.Field = column

	return next.with(spec.Layer{
		Mark: &spec.Mark{
			Type:        spec.MarkLine,
			Color:       s.Config.Theme.Accent,
			Opacity:     0.8,
			StrokeDash:  spec.Dotted(),
			StrokeWidth: 1.5,
		},
		Encoding: enc,
	})
}

// HLines draws each reference line as a dashed rule across the plot with an
// optional label at its right end
func HLines(s State) State {
	lines := s.Config.Annotations.HLines
	if len(lines) == 0 || !s.annotatable() {
		return s
	}

	layers := make([]spec.Layer, 0, 2*len(lines))
	for _, line := range lines {
		at := &spec.Channel{Datum: line.Value, Type: spec.Quantitative}
		rule := &spec.Encoding{Y: at}
		if s.transposed() {
			rule = &spec.Encoding{X: at}
		}
		layers = append(layers, spec.Layer{
			Transform: spec.AtRow(0),
			Mark: &spec.Mark{
				Type:        spec.MarkRule,
				Color:       line.Color,
				StrokeDash:  spec.Dashed(),
				StrokeWidth: 1.5,
			},
			Encoding: rule,
		})

		if line.Label == "" {
			continue
		}
		label := &spec.Encoding{
			X:    spec.Value("width"),
			Y:    at.Clone(),
			Text: spec.Value(line.Label),
		}
		mark := &spec.Mark{Type: spec.MarkText, Color: line.Color, Align: "right", Baseline: "bottom", Dy: -4, FontSize: 11}
		if s.transposed() {
			label.X, label.Y = at.Clone(), spec.Value(0)
			mark.Align, mark.Baseline, mark.Dy, mark.Dx = "left", "top", 4, 4
		}
		layers = append(layers, spec.Layer{
			Transform: spec.AtRow(0),
			Mark:      mark,
			Encoding:  label,
		})
	}
	return s.with(layers...)
}

// extremes returns the rows holding the highest and lowest numeric value of
// field. Ties keep the earliest row.
func extremes(rows core.Dataset, field string) (top, bottom int, ok bool) {
	top, bottom = -1, -1
	for i, row := range rows {
		v, numeric := core.Number(row[field])
		if !numeric {
			continue
		}
		if top < 0 || v > numberAt(rows, top, field) {
			top = i
		}
		if bottom < 0 || v < numberAt(rows, bottom, field) {
			bottom = i
		}
	}
	return top, bottom, top >= 0
}

func numberAt(rows core.Dataset, i int, field string) float64 {
	v, _ := core.Number(rows[i][field])
	return v
}
