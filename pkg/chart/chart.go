// Package chart builds the base document for each chart family. Families are
// picked by a fixed precedence when directives overlap.
package chart

import (
	"fmt"

	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
)

// Family is the strategy selected for a configuration
type Family string

const (
	FamilySparkline   Family = "sparkline"
	FamilyProportion  Family = "proportion"
	FamilyHeatmap     Family = "heatmap"
	FamilyCandlestick Family = "candlestick"
	FamilyStacked     Family = "stacked"
	FamilyMultiSeries Family = "multi-series"
	FamilyVolume      Family = "volume-overlay"
	FamilyDualAxis    Family = "dual-axis"
	FamilyDefault     Family = "default"
)

// Cartesian reports whether the family draws values against x and y, which
// is what the decorations annotate
func (f Family) Cartesian() bool {
	switch f {
	case FamilyProportion, FamilyHeatmap, FamilySparkline:
		return false
	default:
		return true
	}
}

// Base is the document a strategy produced plus what it was built from
type Base struct {
	Spec   *spec.Spec
	Family Family
	// Rows is the dataset the base reads; strategies that window their own
	// input store the window here
	Rows core.Dataset
}

// Strategy builds the base document of one family
type Strategy func(cfg *config.Configuration, rows core.Dataset) (*Base, error)

type rule struct {
	family  Family
	matches func(cfg *config.Configuration) bool
}

// precedence is evaluated top to bottom; the first match wins
var precedence = []rule{
	{FamilySparkline, func(c *config.Configuration) bool { return c.Sparkline }},
	{FamilyProportion, func(c *config.Configuration) bool { return c.Type == config.TypePie || c.Type == config.TypeDonut }},
	{FamilyHeatmap, func(c *config.Configuration) bool { return c.Type == config.TypeHeatmap }},
	{FamilyCandlestick, func(c *config.Configuration) bool { return c.Type == config.TypeCandlestick }},
	{FamilyStacked, func(c *config.Configuration) bool {
		return c.Type == config.TypeBar && c.Stacked && c.Fields.Color != ""
	}},
	{FamilyMultiSeries, func(c *config.Configuration) bool { return c.Type == config.TypeLine && c.Fields.Series != "" }},
	{FamilyVolume, func(c *config.Configuration) bool { return c.Fields.Volume != "" }},
	{FamilyDualAxis, func(c *config.Configuration) bool { return c.Fields.Y2 != "" }},
}

var strategies = map[Family]Strategy{
	FamilySparkline:   buildSparkline,
	FamilyProportion:  buildProportion,
	FamilyHeatmap:     buildHeatmap,
	FamilyCandlestick: buildCandlestick,
	FamilyStacked:     buildStacked,
	FamilyMultiSeries: buildMultiSeries,
	FamilyVolume:      buildVolumeOverlay,
	FamilyDualAxis:    buildDualAxis,
	FamilyDefault:     buildDefault,
}

// Classify returns the family that handles cfg
func Classify(cfg *config.Configuration) Family {
	for _, r := range precedence {
		if r.matches(cfg) {
			return r.family
		}
	}
	return FamilyDefault
}

// Build produces the base document for cfg over rows. Focus-recent windowing
// happens first so category domains only list what is drawn.
func Build(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	if rows.IsEmpty() {
		return nil, core.ErrNoData
	}
	rows = rows.Last(cfg.Annotations.FocusRecent)

	family := Classify(cfg)
	strategy, ok := strategies[family]
	if !ok {
		return nil, fmt.Errorf("no strategy registered for %s", family)
	}

	base, err := strategy(cfg, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", family, err)
	}
	base.Family = family

	if cfg.Horizontal && (family == FamilyDefault || family == FamilyStacked) {
		Transpose(base.Spec.Primary().Encoding)
	}
	return base, nil
}

func newBase(cfg *config.Configuration, rows core.Dataset) *Base {
	return &Base{
		Rows: rows,
		Spec: &spec.Spec{
			Schema: spec.SchemaURL,
			Width:  cfg.Width,
			Height: cfg.Height,
			Layer:  spec.Layer{Data: &spec.Data{Values: rows}},
		},
	}
}
