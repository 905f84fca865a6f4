package config

import (
	"testing"

	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func warningOptions(cfg *Configuration) []string {
	options := make([]string, 0, len(cfg.Warnings))
	for _, w := range cfg.Warnings {
		options = append(options, w.Option)
	}
	return options
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(Options{})
	require.NoError(t, err)

	assert.Equal(t, TypeLine, cfg.Type)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
	assert.Equal(t, "x", cfg.Fields.X)
	assert.Equal(t, "y", cfg.Fields.Y)
	assert.Equal(t, BrandAccent, cfg.Theme.Accent)
	assert.Equal(t, FormatPNG, cfg.Output.Format)
	assert.Equal(t, spec.Ordinal, cfg.XType)
	assert.Equal(t, LegendRight, cfg.Legend)
	assert.True(t, cfg.ShowAxes)
	assert.Empty(t, cfg.Warnings)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	opts := Options{
		Preset:    "twitter",
		Sparkline: true,
		HLines:    []string{"10"},
		Set:       map[string]bool{},
	}
	_, err := Resolve(opts)
	require.NoError(t, err)

	require.Equal(t, 0, opts.Width)
	require.Empty(t, opts.Set)
	require.Equal(t, []string{"10"}, opts.HLines)
}

func TestResolve_Presets(t *testing.T) {
	t.Run("applies when sizes are defaults", func(t *testing.T) {
		cfg, err := Resolve(Options{Preset: "twitter"})
		require.NoError(t, err)
		require.Equal(t, 1200, cfg.Width)
		require.Equal(t, 675, cfg.Height)
	})

	t.Run("explicit sizes win", func(t *testing.T) {
		cfg, err := Resolve(Options{
			Preset: "instagram",
			Width:  500,
			Height: 250,
			Set:    map[string]bool{KeyWidth: true, KeyHeight: true},
		})
		require.NoError(t, err)
		require.Equal(t, 500, cfg.Width)
		require.Equal(t, 250, cfg.Height)
	})

	t.Run("only unset dimension follows the preset", func(t *testing.T) {
		cfg, err := Resolve(Options{Preset: "slack", Width: 999, Set: map[string]bool{KeyWidth: true}})
		require.NoError(t, err)
		require.Equal(t, 999, cfg.Width)
		require.Equal(t, 400, cfg.Height)
	})

	t.Run("unknown preset warns", func(t *testing.T) {
		cfg, err := Resolve(Options{Preset: "myspace"})
		require.NoError(t, err)
		require.Equal(t, DefaultWidth, cfg.Width)
		require.Equal(t, []string{"preset"}, warningOptions(cfg))
	})
}

func TestResolve_YFormat(t *testing.T) {
	cases := map[string]string{
		"percent":    ".1%",
		"dollar":     "$,.2f",
		"usd":        "$,.2f",
		"compact":    "~s",
		"integer":    ",.0f",
		"decimal2":   ".2f",
		"decimal4":   ".4f",
		"scientific": ".2e",
		",.3f":       ",.3f",
	}

	for in, want := range cases {
		cfg, err := Resolve(Options{YFormat: in})
		require.NoError(t, err)
		require.Equal(t, want, cfg.YFormat, in)
		require.Empty(t, cfg.Warnings, in)
	}

	cfg, err := Resolve(Options{YFormat: "euros"})
	require.NoError(t, err)
	require.Equal(t, "euros", cfg.YFormat)
	require.Equal(t, []string{"y-format"}, warningOptions(cfg))
}

func TestResolve_Sparkline(t *testing.T) {
	cfg, err := Resolve(Options{Sparkline: true, Title: "hidden"})
	require.NoError(t, err)
	require.Equal(t, SparklineWidth, cfg.Width)
	require.Equal(t, SparklineHeight, cfg.Height)
	require.False(t, cfg.ShowAxes)
	require.False(t, cfg.ShowTitle)
	require.True(t, cfg.Theme.Transparent)

	cfg, err = Resolve(Options{Sparkline: true, Width: 160, Set: map[string]bool{KeyWidth: true}})
	require.NoError(t, err)
	require.Equal(t, 160, cfg.Width)
	require.Equal(t, SparklineHeight, cfg.Height)
}

func TestResolve_Theme(t *testing.T) {
	cfg, err := Resolve(Options{Dark: true})
	require.NoError(t, err)
	require.Equal(t, darkPalette.Background, cfg.Theme.Background)
	require.Equal(t, darkPalette.Accent, cfg.Theme.Accent)

	cfg, err = Resolve(Options{Dark: true, Color: "#ff00ff", Background: "#000", Transparent: true})
	require.NoError(t, err)
	require.Equal(t, "#ff00ff", cfg.Theme.Accent)
	require.Equal(t, "#000", cfg.Theme.Background)
	require.Equal(t, "transparent", cfg.Theme.CanvasBackground())
	require.Equal(t, darkPalette.Negative, cfg.Theme.Negative)
}

func TestResolve_InlineShorthand(t *testing.T) {
	cfg, err := Resolve(Options{Data: "Mon:10,Tue:25"})
	require.NoError(t, err)
	require.Equal(t, core.Dataset{{"x": "Mon", "y": 10.0}, {"x": "Tue", "y": 25.0}}, cfg.Inline)

	_, err = Resolve(Options{Data: "[{broken"})
	var inputErr *core.InputError
	require.ErrorAs(t, err, &inputErr)
	require.ErrorIs(t, err, core.ErrMalformedLiteral)
}

func TestResolve_Annotations(t *testing.T) {
	cfg, err := Resolve(Options{
		HLines:         []string{"50,#000,Target, stretch", "oops", "20"},
		Annotations:    []string{"Tue|Launch", `[{"x":"Wed","label":"Fix"}]`},
		ColorCondition: "50",
		FocusRecent:    -3,
	})
	require.NoError(t, err)

	a := cfg.Annotations
	require.Equal(t, []HLine{
		{Value: 50, Color: "#000", Label: "Target, stretch"},
		{Value: 20, Color: lightPalette.Negative},
	}, a.HLines)
	require.Equal(t, []TimelineNote{{X: "Tue", Label: "Launch"}, {X: "Wed", Label: "Fix"}}, a.Timeline)
	require.Equal(t, &ColorCondition{Threshold: 50, Below: "red", Above: "green"}, a.ColorCondition)
	require.Zero(t, a.FocusRecent)
	require.Equal(t, []string{"hline"}, warningOptions(cfg))
}

func TestResolve_YDomain(t *testing.T) {
	cfg, err := Resolve(Options{YDomain: "10, 90"})
	require.NoError(t, err)
	require.Equal(t, &spec.Domain{10, 90}, cfg.YDomain)

	for _, raw := range []string{"90,10", "1", "1,2,3", "a,b"} {
		cfg, err = Resolve(Options{YDomain: raw})
		require.NoError(t, err)
		require.Nil(t, cfg.YDomain, raw)
		require.Equal(t, []string{"y-domain"}, warningOptions(cfg), raw)
	}
}

func TestResolve_OutputFormat(t *testing.T) {
	cases := []struct {
		opts Options
		want Format
	}{
		{Options{Output: "chart.png"}, FormatPNG},
		{Options{Output: "chart.SVG"}, FormatSVG},
		{Options{Output: "chart.json"}, FormatJSON},
		{Options{Output: "chart.png", Format: "svg"}, FormatSVG},
		{Options{Output: "chart"}, FormatPNG},
	}
	for _, tc := range cases {
		cfg, err := Resolve(tc.opts)
		require.NoError(t, err)
		require.Equal(t, tc.want, cfg.Output.Format, tc.opts.Output)
	}
}

func TestResolve_HorizontalOnlyForBars(t *testing.T) {
	cfg, err := Resolve(Options{Type: "line", Horizontal: true})
	require.NoError(t, err)
	require.False(t, cfg.Horizontal)

	cfg, err = Resolve(Options{Type: "bar", Horizontal: true, Sort: "desc"})
	require.NoError(t, err)
	require.True(t, cfg.Horizontal)
	require.Equal(t, "-y", cfg.Sort)
}
