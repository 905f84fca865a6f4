package decorate

import (
	"testing"

	"github.com/raykavin/plotforge/pkg/chart"
	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(values ...float64) core.Dataset {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	rows := make(core.Dataset, len(values))
	for i, v := range values {
		rows[i] = core.Row{"x": days[i%len(days)], "y": v}
	}
	return rows
}

func assemble(t *testing.T, opts config.Options, rows core.Dataset) (Result, *config.Configuration) {
	t.Helper()
	cfg, err := config.Resolve(opts)
	require.NoError(t, err)
	base, err := chart.Build(cfg, rows)
	require.NoError(t, err)
	return Assemble(base, cfg), cfg
}

func TestAssemble_NoDirectives(t *testing.T) {
	rows := series(1, 2, 3)
	result, _ := assemble(t, config.Options{Type: "bar"}, rows)

	require.Empty(t, result.Layers)
	require.Equal(t, rows, result.Rows)
	require.False(t, result.Spec.IsLayered())
}

func TestAssemble_LeavesBaseUntouched(t *testing.T) {
	cfg, err := config.Resolve(config.Options{
		Type:           "line",
		FocusRecent:    2,
		FocusChange:    true,
		ColorCondition: "2,#f00,#0f0",
	})
	require.NoError(t, err)
	base, err := chart.Build(cfg, series(1, 2, 3, 4))
	require.NoError(t, err)
	before := base.Spec.Clone()

	result := Assemble(base, cfg)

	require.Equal(t, before, base.Spec)
	require.Len(t, base.Spec.Data.Values, 2)
	require.Len(t, result.Spec.Data.Values, 2)
	require.Equal(t, "#9ca3af", result.Spec.Mark.Color)
	require.Equal(t, config.BrandAccent, base.Spec.Mark.Color)
}

func TestFocusRecent(t *testing.T) {
	rows := series(1, 2, 3, 4, 5)

	t.Run("windows the last rows in order", func(t *testing.T) {
		result, _ := assemble(t, config.Options{FocusRecent: 3}, rows)
		require.Equal(t, rows[2:], result.Rows)
		require.Equal(t, rows[2:], result.Spec.Data.Values)
	})

	t.Run("no-op when the window covers the dataset", func(t *testing.T) {
		for _, n := range []int{5, 50} {
			result, _ := assemble(t, config.Options{FocusRecent: n}, rows)
			require.Equal(t, rows, result.Rows)
		}
	})
}

func TestFocusChange(t *testing.T) {
	rows := series(100, 104, 98, 110, 106)
	result, _ := assemble(t, config.Options{FocusChange: true}, rows)

	scale := result.Spec.Encoding.Y.Scale
	require.NotNil(t, scale)
	domain, ok := scale.Domain.(spec.Domain)
	require.True(t, ok)
	require.Equal(t, spec.Domain{92, 116}, domain)
	require.Equal(t, spec.Bool(false), scale.Zero)

	// range 12, padded by 6 on each side
	assert.InDelta(t, 2*12, domain[1]-domain[0], 1)
	assert.GreaterOrEqual(t, domain[0], 0.0)
}

func TestFocusChange_ClampsAtZero(t *testing.T) {
	result, _ := assemble(t, config.Options{FocusChange: true}, series(1, 9))
	require.Equal(t, spec.Domain{0, 13}, result.Spec.Encoding.Y.Scale.Domain)
}

func TestFocusChange_NeedsTwoRows(t *testing.T) {
	result, _ := assemble(t, config.Options{FocusChange: true}, series(5))
	require.Nil(t, result.Spec.Encoding.Y.Scale)
}

func TestFocusChange_WindowedBeforeRescale(t *testing.T) {
	rows := series(0, 1000, 10, 20)
	result, _ := assemble(t, config.Options{FocusRecent: 2, FocusChange: true}, rows)
	require.Equal(t, spec.Domain{5, 25}, result.Spec.Encoding.Y.Scale.Domain)
}

func TestFocusChange_CandlestickRescalesBothLayers(t *testing.T) {
	rows := core.Dataset{
		{"x": "d1", "open": 10.0, "high": 14.0, "low": 8.0, "close": 12.0},
		{"x": "d2", "open": 12.0, "high": 13.0, "low": 9.0, "close": 9.5},
	}
	result, _ := assemble(t, config.Options{Type: "candlestick", FocusChange: true}, rows)

	want := spec.Domain{5, 17}
	require.Equal(t, want, result.Spec.Layers[0].Encoding.Y.Scale.Domain)
	require.Equal(t, want, result.Spec.Layers[1].Encoding.Y.Scale.Domain)
}

func TestConditionalColor_Bar(t *testing.T) {
	result, _ := assemble(t, config.Options{Type: "bar", ColorCondition: "50,#below,#above"}, series(10, 50, 80))

	color := result.Spec.Encoding.Color
	require.NotNil(t, color)
	require.Equal(t, "#below", color.Value)
	require.Equal(t, `datum["y"] >= 50`, color.Condition.Test)
	require.Equal(t, "#above", color.Condition.Value)
	require.Empty(t, result.Layers)
}

func TestConditionalColor_Line(t *testing.T) {
	result, cfg := assemble(t, config.Options{ColorCondition: "50"}, series(10, 50, 80))

	require.Equal(t, cfg.Theme.Neutral, result.Spec.Mark.Color)
	require.Nil(t, result.Spec.Mark.Point)

	require.Len(t, result.Layers, 1)
	points := result.Layers[0]
	require.Equal(t, spec.MarkPoint, points.Mark.Type)
	require.Equal(t, spec.Bool(true), points.Mark.Filled)
	require.Equal(t, "y", points.Encoding.Y.Field)
	require.Equal(t, "red", points.Encoding.Color.Value)
	require.Equal(t, "green", points.Encoding.Color.Condition.Value)
	require.Equal(t, `datum["y"] >= 50`, points.Encoding.Color.Condition.Test)
}

func TestConditionalColor_SkipsColoredFamilies(t *testing.T) {
	rows := core.Dataset{{"x": "a", "y": 1.0, "s": "one"}, {"x": "b", "y": 2.0, "s": "two"}}
	result, _ := assemble(t, config.Options{Series: "s", ColorCondition: "1"}, rows)

	require.Equal(t, "s", result.Spec.Encoding.Color.Field)
	require.Empty(t, result.Layers)
}

func TestBarLabels(t *testing.T) {
	t.Run("vertical", func(t *testing.T) {
		result, _ := assemble(t, config.Options{Type: "bar", BarLabels: true, YFormat: "integer"}, series(1, 2))
		require.Len(t, result.Layers, 1)
		label := result.Layers[0]
		require.Equal(t, spec.MarkText, label.Mark.Type)
		require.Equal(t, "bottom", label.Mark.Baseline)
		require.Equal(t, -4.0, label.Mark.Dy)
		require.Equal(t, ",.0f", label.Encoding.Text.Format)
		require.Equal(t, "y", label.Encoding.Y.Field)
	})

	t.Run("horizontal", func(t *testing.T) {
		result, _ := assemble(t, config.Options{Type: "bar", BarLabels: true, Horizontal: true}, series(1, 2))
		label := result.Layers[0]
		require.Equal(t, "left", label.Mark.Align)
		require.Equal(t, 4.0, label.Mark.Dx)
		require.Equal(t, "y", label.Encoding.X.Field)
		require.Equal(t, "x", label.Encoding.Y.Field)
	})

	t.Run("bars only", func(t *testing.T) {
		result, _ := assemble(t, config.Options{Type: "line", BarLabels: true}, series(1, 2))
		require.Empty(t, result.Layers)
	})
}

func TestShowChange(t *testing.T) {
	cases := []struct {
		values []float64
		text   string
		color  string
	}{
		{[]float64{100, 150}, "+50.0%", "#dc2626"},
		{[]float64{100, 50}, "-50.0%", "#16a34a"},
		{[]float64{100, 99.99}, "0.0%", "#9ca3af"},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			result, _ := assemble(t, config.Options{ShowChange: true}, series(tc.values...))
			require.Len(t, result.Layers, 1)
			label := result.Layers[0]
			require.Equal(t, tc.text, label.Encoding.Text.Value)
			require.Equal(t, tc.color, label.Mark.Color)
			require.Equal(t, spec.AtRow(1), label.Transform)
		})
	}
}

func TestShowChange_ZeroStart(t *testing.T) {
	result, _ := assemble(t, config.Options{ShowChange: true}, series(0, 10))
	require.Empty(t, result.Layers)
}

func TestShowChange_DrawnOnceForVolume(t *testing.T) {
	rows := core.Dataset{
		{"x": "a", "y": 100.0, "vol": 1.0},
		{"x": "b", "y": 150.0, "vol": 2.0},
	}
	result, _ := assemble(t, config.Options{Volume: "vol", ShowChange: true}, rows)

	require.Len(t, result.Spec.Layers, 2)
	require.Len(t, result.Spec.Layers[0].Group, 2)
	require.Empty(t, result.Layers)
}

func TestShowValues(t *testing.T) {
	result, _ := assemble(t, config.Options{ShowValues: true, YFormat: "dollar"}, series(5, 9, 2, 7))

	require.Len(t, result.Layers, 2)
	top, bottom := result.Layers[0], result.Layers[1]
	require.Equal(t, spec.AtRow(1), top.Transform)
	require.Equal(t, "bottom", top.Mark.Baseline)
	require.Equal(t, spec.AtRow(2), bottom.Transform)
	require.Equal(t, "top", bottom.Mark.Baseline)
	require.Equal(t, "$,.2f", top.Encoding.Text.Format)
}

func TestShowValues_FlatSeries(t *testing.T) {
	result, _ := assemble(t, config.Options{ShowValues: true}, series(3, 3, 3))
	require.Len(t, result.Layers, 1)
	require.Equal(t, spec.AtRow(0), result.Layers[0].Transform)
}

func TestTimeline(t *testing.T) {
	result, cfg := assemble(t, config.Options{Annotations: []string{"Tue|Launch", "Wed"}}, series(1, 2, 3))

	require.Len(t, result.Layers, 3)
	rule, label, bare := result.Layers[0], result.Layers[1], result.Layers[2]

	require.Equal(t, spec.MarkRule, rule.Mark.Type)
	require.Equal(t, spec.Dashed(), rule.Mark.StrokeDash)
	require.Equal(t, "Tue", rule.Encoding.X.Datum)
	require.Nil(t, rule.Encoding.Y, "rules span the full plot height")
	require.Equal(t, cfg.Theme.Neutral, rule.Mark.Color)

	require.Equal(t, spec.MarkText, label.Mark.Type)
	require.Equal(t, "Launch", label.Encoding.Text.Value)
	require.Equal(t, "top", label.Mark.Baseline)

	require.Equal(t, spec.MarkRule, bare.Mark.Type)
	require.Equal(t, "Wed", bare.Encoding.X.Datum)
}

func TestTrendLine(t *testing.T) {
	result, _ := assemble(t, config.Options{TrendLine: true}, series(2, 4, 6, 8))

	require.Len(t, result.Layers, 1)
	trend := result.Layers[0]
	require.Equal(t, spec.MarkLine, trend.Mark.Type)
	require.Equal(t, spec.Dashed(), trend.Mark.StrokeDash)
	require.Equal(t, "trend", trend.Encoding.Y.Field)
	require.Equal(t, "x", trend.Encoding.X.Field)

	values := trend.Data.Values
	require.Len(t, values, 2)
	assert.Equal(t, "Mon", values[0]["x"])
	assert.InDelta(t, 2.0, values[0]["trend"], 1e-9)
	assert.Equal(t, "Thu", values[1]["x"])
	assert.InDelta(t, 8.0, values[1]["trend"], 1e-9)
}

func TestTrendLine_UsesRowIndexNotX(t *testing.T) {
	rows := core.Dataset{
		{"x": 1.0, "y": 2.0},
		{"x": 2.0, "y": 4.0},
		{"x": 100.0, "y": 6.0},
	}
	result, _ := assemble(t, config.Options{TrendLine: true, XType: "quantitative"}, rows)

	values := result.Layers[0].Data.Values
	assert.Equal(t, 100.0, values[1]["x"])
	assert.InDelta(t, 6.0, values[1]["trend"], 1e-9)
}

func TestMovingAverage(t *testing.T) {
	result, cfg := assemble(t, config.Options{MovingAverage: 3}, series(3, 6, 9, 12))

	require.Len(t, result.Layers, 1)
	ma := result.Layers[0]
	require.Equal(t, "y_ma3", ma.Encoding.Y.Field)
	require.Equal(t, spec.Dotted(), ma.Mark.StrokeDash)
	require.Equal(t, cfg.Theme.Accent, ma.Mark.Color)

	rows := result.Spec.Data.Values
	require.NotContains(t, rows[0], "y_ma3")
	require.NotContains(t, rows[1], "y_ma3")
	assert.InDelta(t, 6.0, rows[2]["y_ma3"], 1e-9)
	assert.InDelta(t, 9.0, rows[3]["y_ma3"], 1e-9)
}

func TestHLines(t *testing.T) {
	result, cfg := assemble(t, config.Options{HLines: []string{"5", "8,#000000,Target"}}, series(1, 9))

	require.Len(t, result.Layers, 3)
	plain, rule, label := result.Layers[0], result.Layers[1], result.Layers[2]

	require.Equal(t, spec.MarkRule, plain.Mark.Type)
	require.Equal(t, 5.0, plain.Encoding.Y.Datum)
	require.Nil(t, plain.Encoding.X)
	require.Equal(t, cfg.Theme.Negative, plain.Mark.Color)

	require.Equal(t, "#000000", rule.Mark.Color)
	require.Equal(t, spec.Dashed(), rule.Mark.StrokeDash)

	require.Equal(t, "Target", label.Encoding.Text.Value)
	require.Equal(t, "right", label.Mark.Align)
	require.Equal(t, "width", label.Encoding.X.Value)
	require.Equal(t, 8.0, label.Encoding.Y.Datum)
}

func TestPipeline_Order(t *testing.T) {
	result, _ := assemble(t, config.Options{
		Type:           "bar",
		ColorCondition: "5",
		BarLabels:      true,
		ShowChange:     true,
		ShowValues:     true,
		Annotations:    []string{"Tue"},
		TrendLine:      true,
		MovingAverage:  2,
		HLines:         []string{"4"},
	}, series(2, 4, 6, 8))

	kinds := make([]string, len(result.Layers))
	for i, layer := range result.Layers {
		kinds[i] = string(layer.Mark.Type)
		if layer.Mark.Type == spec.MarkLine && layer.Data != nil {
			kinds[i] = "trend"
		}
	}
	require.Equal(t, []string{
		"text",  // bar labels
		"text",  // change
		"text",  // max
		"text",  // min
		"rule",  // timeline
		"trend", // trend line
		"line",  // moving average
		"rule",  // hline
	}, kinds)
	require.NotNil(t, result.Spec.Encoding.Color)
}

func TestAssemble_SkipsNonCartesianFamilies(t *testing.T) {
	result, _ := assemble(t, config.Options{
		Type:       "pie",
		TrendLine:  true,
		ShowChange: true,
		HLines:     []string{"1"},
	}, series(1, 2, 3))

	require.Empty(t, result.Layers)
}
