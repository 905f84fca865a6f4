package chart

import (
	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
)

// buildDefault draws a single line, bar, area or point mark
func buildDefault(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	base := newBase(cfg, rows)
	base.Spec.Mark = PrimaryMark(cfg)
	base.Spec.Encoding = &spec.Encoding{
		X: XChannel(cfg),
		Y: YChannel(cfg, cfg.Fields.Y),
	}
	return base, nil
}

// buildSparkline draws a bare line with no axes that fits its box
func buildSparkline(cfg *config.Configuration, rows core.Dataset) (*Base, error) {
	base := newBase(cfg, rows)
	base.Spec.Autosize = &spec.Autosize{Type: "fit", Contains: "padding"}

	mark := &spec.Mark{Type: spec.MarkLine, Color: cfg.Theme.Accent, StrokeWidth: 1.5}
	if cfg.Smooth {
		mark.Interpolate = "monotone"
	}

	y := spec.Field(cfg.Fields.Y, spec.Quantitative)
	y.Axis = spec.NoAxis()
	y.Scale = YScale(cfg)
	if y.Scale == nil {
		y.Scale = &spec.Scale{Zero: spec.Bool(false)}
	}

	x := spec.Field(cfg.Fields.X, cfg.XType)
	x.Axis = spec.NoAxis()

	base.Spec.Mark = mark
	base.Spec.Encoding = &spec.Encoding{X: x, Y: y}
	return base, nil
}
