package chart

import (
	"testing"

	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, opts config.Options) *config.Configuration {
	t.Helper()
	cfg, err := config.Resolve(opts)
	require.NoError(t, err)
	return cfg
}

func weekdays() core.Dataset {
	return core.Dataset{
		{"x": "Mon", "y": 10.0},
		{"x": "Tue", "y": 25.0},
		{"x": "Wed", "y": 18.0},
	}
}

func TestClassify_Precedence(t *testing.T) {
	cases := []struct {
		name string
		opts config.Options
		want Family
	}{
		{"sparkline beats pie", config.Options{Sparkline: true, Type: "pie"}, FamilySparkline},
		{"pie", config.Options{Type: "pie"}, FamilyProportion},
		{"donut beats volume", config.Options{Type: "donut", Volume: "vol"}, FamilyProportion},
		{"heatmap", config.Options{Type: "heatmap", Y2: "other"}, FamilyHeatmap},
		{"candlestick beats volume", config.Options{Type: "candlestick", Volume: "vol"}, FamilyCandlestick},
		{"stacked needs color field", config.Options{Type: "bar", Stacked: true}, FamilyDefault},
		{"stacked", config.Options{Type: "bar", Stacked: true, ColorField: "region"}, FamilyStacked},
		{"multi series beats volume", config.Options{Series: "s", Volume: "vol"}, FamilyMultiSeries},
		{"series ignored for bars", config.Options{Type: "bar", Series: "s"}, FamilyDefault},
		{"volume beats y2", config.Options{Volume: "vol", Y2: "other"}, FamilyVolume},
		{"dual axis", config.Options{Type: "bar", Y2: "other"}, FamilyDualAxis},
		{"default", config.Options{Type: "area"}, FamilyDefault},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(resolve(t, tc.opts)))
		})
	}
}

func TestBuild_EmptyDataset(t *testing.T) {
	_, err := Build(resolve(t, config.Options{}), core.Dataset{})
	require.ErrorIs(t, err, core.ErrNoData)
}

func TestBuild_DefaultBar(t *testing.T) {
	base, err := Build(resolve(t, config.Options{Type: "bar"}), weekdays())
	require.NoError(t, err)

	doc := base.Spec
	require.False(t, doc.IsLayered())
	require.Equal(t, FamilyDefault, base.Family)
	require.Equal(t, spec.MarkBar, doc.Mark.Type)
	require.Equal(t, config.BrandAccent, doc.Mark.Color)

	enc := doc.Encoding
	require.Equal(t, "x", enc.X.Field)
	require.Equal(t, spec.Ordinal, enc.X.Type)
	require.Equal(t, "y", enc.Y.Field)
	require.Equal(t, spec.Quantitative, enc.Y.Type)
	require.Nil(t, enc.Y.Stack)
	require.Nil(t, enc.Color)
	require.Equal(t, weekdays(), doc.Data.Values)
}

func TestBuild_DefaultMarks(t *testing.T) {
	line, err := Build(resolve(t, config.Options{Smooth: true}), weekdays())
	require.NoError(t, err)
	require.Equal(t, spec.MarkLine, line.Spec.Mark.Type)
	require.Equal(t, true, line.Spec.Mark.Point)
	require.Equal(t, "monotone", line.Spec.Mark.Interpolate)

	area, err := Build(resolve(t, config.Options{Type: "area", Gradient: true}), weekdays())
	require.NoError(t, err)
	gradient, ok := area.Spec.Mark.Color.(spec.Gradient)
	require.True(t, ok)
	require.Equal(t, "#ffffff", gradient.Stops[0].Color)
	require.Equal(t, config.BrandAccent, gradient.Stops[1].Color)

	flat, err := Build(resolve(t, config.Options{Type: "area"}), weekdays())
	require.NoError(t, err)
	require.Equal(t, 0.3, flat.Spec.Mark.Opacity)

	point, err := Build(resolve(t, config.Options{Type: "point"}), weekdays())
	require.NoError(t, err)
	require.Equal(t, 60.0, point.Spec.Mark.Size)
}

func TestBuild_YAxisOverrides(t *testing.T) {
	zero := false
	base, err := Build(resolve(t, config.Options{
		YDomain: "0,100",
		YScale:  "sqrt",
		Zero:    &zero,
		YFormat: "percent",
		XType:   "temporal",
	}), weekdays())
	require.NoError(t, err)

	y := base.Spec.Encoding.Y
	require.Equal(t, spec.Domain{0, 100}, y.Scale.Domain)
	require.Equal(t, "sqrt", y.Scale.Type)
	require.Equal(t, spec.Bool(false), y.Scale.Zero)
	require.Equal(t, ".1%", y.Axis.Format)
	require.Equal(t, spec.Temporal, base.Spec.Encoding.X.Type)
}

func TestBuild_HorizontalBar(t *testing.T) {
	cfg := resolve(t, config.Options{Type: "bar", Horizontal: true, Sort: "desc"})
	vertical := resolve(t, config.Options{Type: "bar", Sort: "desc"})

	up, err := Build(vertical, weekdays())
	require.NoError(t, err)
	side, err := Build(cfg, weekdays())
	require.NoError(t, err)

	require.Equal(t, up.Spec.Encoding.X.Field, side.Spec.Encoding.Y.Field)
	require.Equal(t, up.Spec.Encoding.X.Type, side.Spec.Encoding.Y.Type)
	require.Equal(t, up.Spec.Encoding.Y.Field, side.Spec.Encoding.X.Field)
	require.Equal(t, up.Spec.Encoding.Y.Type, side.Spec.Encoding.X.Type)

	require.Equal(t, "-y", up.Spec.Encoding.X.Sort)
	require.Equal(t, "-x", side.Spec.Encoding.Y.Sort)
}

func TestTranspose_SortDirectives(t *testing.T) {
	for from, to := range map[string]string{"x": "y", "-x": "-y", "y": "x", "-y": "-x"} {
		enc := &spec.Encoding{
			X: &spec.Channel{Field: "cat", Sort: from},
			Y: &spec.Channel{Field: "val"},
		}
		Transpose(enc)
		require.Equal(t, "cat", enc.Y.Field)
		require.Equal(t, to, enc.Y.Sort, from)
	}
}

func TestBuild_StackedHorizontal(t *testing.T) {
	rows := core.Dataset{
		{"x": "Q1", "y": 4.0, "region": "north"},
		{"x": "Q1", "y": 6.0, "region": "south"},
	}
	base, err := Build(resolve(t, config.Options{
		Type: "bar", Stacked: true, ColorField: "region", Horizontal: true,
	}), rows)
	require.NoError(t, err)

	enc := base.Spec.Encoding
	require.Equal(t, FamilyStacked, base.Family)
	require.Equal(t, "y", enc.X.Field)
	require.Equal(t, "zero", enc.X.Stack)
	require.Equal(t, "x", enc.Y.Field)
	require.Equal(t, "region", enc.Color.Field)
	require.Equal(t, []string{"north", "south"}, enc.Color.Scale.Domain)
}

func TestBuild_Proportion(t *testing.T) {
	pie, err := Build(resolve(t, config.Options{Type: "pie"}), weekdays())
	require.NoError(t, err)
	require.False(t, pie.Spec.IsLayered())
	require.Equal(t, spec.MarkArc, pie.Spec.Mark.Type)
	require.Zero(t, pie.Spec.Mark.InnerRadius)
	require.Equal(t, "y", pie.Spec.Encoding.Theta.Field)
	require.Equal(t, "x", pie.Spec.Encoding.Color.Field)

	donut, err := Build(resolve(t, config.Options{Type: "donut", Category: "x"}), weekdays())
	require.NoError(t, err)
	require.Equal(t, 60.0, donut.Spec.Mark.InnerRadius)

	labeled, err := Build(resolve(t, config.Options{Type: "pie", ShowValues: true}), weekdays())
	require.NoError(t, err)
	require.Len(t, labeled.Spec.Layers, 2)
	require.Equal(t, spec.MarkText, labeled.Spec.Layers[1].Mark.Type)
	require.Equal(t, "y", labeled.Spec.Layers[1].Encoding.Text.Field)
}

func TestBuild_Heatmap(t *testing.T) {
	rows := core.Dataset{{"day": "Mon", "hour": "9", "value": 70.0}}

	light, err := Build(resolve(t, config.Options{Type: "heatmap", X: "day", Category: "hour"}), rows)
	require.NoError(t, err)
	enc := light.Spec.Encoding
	require.Equal(t, spec.Ordinal, enc.X.Type)
	require.Equal(t, "hour", enc.Y.Field)
	require.Equal(t, spec.Ordinal, enc.Y.Type)
	require.Equal(t, "value", enc.Color.Field)
	require.Equal(t, "blues", enc.Color.Scale.Scheme)

	dark, err := Build(resolve(t, config.Options{Type: "heatmap", X: "day", Category: "hour", Dark: true, CellLabels: true}), rows)
	require.NoError(t, err)
	require.Len(t, dark.Spec.Layers, 2)
	require.Equal(t, "viridis", dark.Spec.Layers[0].Encoding.Color.Scale.Scheme)
	label := dark.Spec.Layers[1].Encoding.Color
	require.Equal(t, `datum["value"] > 50`, label.Condition.Test)
}

func TestBuild_Candlestick(t *testing.T) {
	rows := core.Dataset{
		{"x": "d1", "open": 10.0, "high": 15.0, "low": 8.0, "close": 12.0},
		{"x": "d2", "open": 12.0, "high": 13.0, "low": 9.0, "close": 9.5},
	}
	base, err := Build(resolve(t, config.Options{Type: "candlestick", YDomain: "5,20", YScale: "log"}), rows)
	require.NoError(t, err)

	doc := base.Spec
	require.Len(t, doc.Layers, 2)
	require.Equal(t, `datum["close"] >= datum["open"]`, doc.Transform[0].Calculate)

	wick, body := doc.Layers[0], doc.Layers[1]
	require.Equal(t, spec.MarkRule, wick.Mark.Type)
	require.Equal(t, "low", wick.Encoding.Y.Field)
	require.Equal(t, "high", wick.Encoding.Y2.Field)
	require.Equal(t, spec.MarkBar, body.Mark.Type)
	require.Equal(t, "open", body.Encoding.Y.Field)
	require.Equal(t, "close", body.Encoding.Y2.Field)

	require.Equal(t, wick.Encoding.Y.Scale, body.Encoding.Y.Scale)
	require.NotSame(t, wick.Encoding.Y.Scale, body.Encoding.Y.Scale)
	require.Equal(t, []string{"#16a34a", "#dc2626"}, body.Encoding.Color.Scale.Range)
}

func TestBuild_VolumeOverlay(t *testing.T) {
	rows := core.Dataset{
		{"x": "d1", "y": 100.0, "vol": 5.0},
		{"x": "d2", "y": 120.0, "vol": 7.0},
		{"x": "d3", "y": 110.0, "vol": 6.0},
		{"x": "d4", "y": 150.0, "vol": 9.0},
	}
	base, err := Build(resolve(t, config.Options{
		Volume:      "vol",
		FocusRecent: 3,
		FocusChange: true,
		ShowChange:  true,
	}), rows)
	require.NoError(t, err)

	doc := base.Spec
	require.Len(t, base.Rows, 3)
	require.Equal(t, "d2", base.Rows[0]["x"])
	require.Equal(t, map[string]string{"y": "independent"}, doc.Resolve.Scale)
	require.Len(t, doc.Layers, 2)
	require.Len(t, doc.Layers[0].Group, 2)

	primary, change, volume := doc.Layers[0].Group[0], doc.Layers[0].Group[1], doc.Layers[1]
	require.Same(t, &doc.Layers[0].Group[0], doc.Primary())
	require.Equal(t, "left", primary.Encoding.Y.Axis.Orient)
	require.Equal(t, spec.Domain{90, 170}, primary.Encoding.Y.Scale.Domain)
	require.Equal(t, "vol", volume.Encoding.Y.Field)
	require.Equal(t, "right", volume.Encoding.Y.Axis.Orient)
	require.Equal(t, 0.3, volume.Mark.Opacity)

	require.Equal(t, "+25.0%", change.Encoding.Text.Value)
	require.Equal(t, "#dc2626", change.Mark.Color)
	require.Equal(t, spec.AtRow(2), change.Transform)
	require.Equal(t, "y", change.Encoding.Y.Field)
	require.Nil(t, change.Encoding.Y.Axis)
	require.Equal(t, primary.Encoding.Y.Scale, change.Encoding.Y.Scale)
}

func TestBuild_DualAxis(t *testing.T) {
	rows := core.Dataset{{"x": "a", "y": 1.0, "rate": 0.5}}
	base, err := Build(resolve(t, config.Options{Type: "bar", Y2: "rate", Y2Type: "line", Y2Color: "#123456"}), rows)
	require.NoError(t, err)

	doc := base.Spec
	require.Len(t, doc.Layers, 2)
	require.Len(t, doc.Layers[0].Group, 1)
	left := doc.Primary()
	assert.Equal(t, spec.MarkBar, left.Mark.Type)
	assert.Equal(t, config.BrandAccent, left.Mark.Color)
	assert.Equal(t, spec.MarkLine, doc.Layers[1].Mark.Type)
	assert.Equal(t, "#123456", doc.Layers[1].Mark.Color)
	assert.Equal(t, "rate", doc.Layers[1].Encoding.Y.Field)
	assert.Equal(t, "x", doc.Layers[1].Encoding.X.Field)
	assert.Equal(t, "independent", doc.Resolve.Scale["y"])
}

func TestBuild_Sparkline(t *testing.T) {
	base, err := Build(resolve(t, config.Options{Sparkline: true, Type: "pie"}), weekdays())
	require.NoError(t, err)

	doc := base.Spec
	require.Equal(t, spec.MarkLine, doc.Mark.Type)
	require.True(t, doc.Encoding.X.Axis.Disabled)
	require.True(t, doc.Encoding.Y.Axis.Disabled)
	require.Equal(t, "fit", doc.Autosize.Type)
	require.Equal(t, 80, doc.Width)
	require.Equal(t, 20, doc.Height)
}

func TestBuild_FocusRecentNarrowsCategories(t *testing.T) {
	rows := core.Dataset{
		{"x": "old", "y": 1.0},
		{"x": "mid", "y": 2.0},
		{"x": "new", "y": 3.0},
	}
	base, err := Build(resolve(t, config.Options{Type: "pie", FocusRecent: 1}), rows)
	require.NoError(t, err)

	require.Len(t, base.Rows, 1)
	require.Len(t, base.Spec.Data.Values, 1)
	require.Equal(t, []string{"new"}, colorDomain(t, base.Spec))
}

func TestBuild_FocusRecentNarrowsSeries(t *testing.T) {
	rows := core.Dataset{
		{"x": 1.0, "y": 1.0, "s": "a"},
		{"x": 2.0, "y": 2.0, "s": "b"},
		{"x": 3.0, "y": 3.0, "s": "c"},
		{"x": 4.0, "y": 4.0, "s": "b"},
	}
	base, err := Build(resolve(t, config.Options{Series: "s", FocusRecent: 2}), rows)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b"}, colorDomain(t, base.Spec))
}

func colorDomain(t *testing.T, doc *spec.Spec) any {
	t.Helper()
	enc := doc.Primary().Encoding
	require.NotNil(t, enc.Color)
	require.NotNil(t, enc.Color.Scale)
	return enc.Color.Scale.Domain
}
