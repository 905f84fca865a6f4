package chart

import (
	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/spec"
)

// XChannel binds the x field with the configured axis type and sort
func XChannel(cfg *config.Configuration) *spec.Channel {
	x := spec.Field(cfg.Fields.X, cfg.XType)
	if cfg.Sort != "" {
		x.Sort = cfg.Sort
	}
	if !cfg.ShowAxes {
		x.Axis = spec.NoAxis()
	} else if cfg.XType == spec.Ordinal || cfg.XType == spec.Nominal {
		x.Axis = &spec.Axis{LabelAngle: spec.Int(0)}
	}
	return x
}

// YChannel binds field as a quantitative y with the configured scale and
// axis format
func YChannel(cfg *config.Configuration, field string) *spec.Channel {
	y := spec.Field(field, spec.Quantitative)
	y.Scale = YScale(cfg)

	switch {
	case !cfg.ShowAxes:
		y.Axis = spec.NoAxis()
	case cfg.YFormat != "":
		y.Axis = &spec.Axis{Format: cfg.YFormat}
	}
	return y
}

// YScale returns the y scale overrides, or nil when there are none
func YScale(cfg *config.Configuration) *spec.Scale {
	if cfg.YDomain == nil && cfg.YScale == "" && cfg.Zero == nil {
		return nil
	}

	scale := &spec.Scale{Type: cfg.YScale}
	if cfg.YDomain != nil {
		scale.Domain = *cfg.YDomain
	}
	if cfg.Zero != nil {
		scale.Zero = spec.Bool(*cfg.Zero)
	}
	return scale
}

// SetYDomain replaces the y domain of every y channel in the given layers
func SetYDomain(domain spec.Domain, layers ...*spec.Layer) {
	for _, layer := range layers {
		if layer.Encoding == nil || layer.Encoding.Y == nil {
			continue
		}
		y := layer.Encoding.Y
		if y.Scale == nil {
			y.Scale = &spec.Scale{}
		}
		y.Scale.Domain = domain
		y.Scale.Zero = spec.Bool(false)
	}
}

// PrimaryMark is the mark used for the main series of line, bar, area and
// point charts
func PrimaryMark(cfg *config.Configuration) *spec.Mark {
	theme := cfg.Theme

	switch cfg.Type {
	case config.TypeBar:
		return &spec.Mark{Type: spec.MarkBar, Color: theme.Accent}
	case config.TypeArea:
		mark := &spec.Mark{Type: spec.MarkArea, Color: theme.Accent, Opacity: 0.3}
		if cfg.Gradient {
			mark.Opacity = 0
			mark.Color = spec.Gradient{
				Gradient: "linear",
				Stops: []spec.GradientStop{
					{Offset: 0, Color: theme.Background},
					{Offset: 1, Color: theme.Accent},
				},
				X1: 1, X2: 1, Y1: 1, Y2: 0,
			}
		}
		if cfg.Smooth {
			mark.Interpolate = "monotone"
		}
		return mark
	case config.TypePoint:
		return &spec.Mark{Type: spec.MarkPoint, Color: theme.Accent, Size: 60, Filled: spec.Bool(true)}
	default:
		mark := &spec.Mark{Type: spec.MarkLine, Color: theme.Accent, StrokeWidth: 2, Point: true}
		if cfg.Smooth {
			mark.Interpolate = "monotone"
		}
		return mark
	}
}

// transposedSort re-expresses a sort directive after x and y trade places
var transposedSort = map[string]string{
	"x":  "y",
	"-x": "-y",
	"y":  "x",
	"-y": "-x",
}

// Transpose swaps the x and y bindings of enc in place, carrying any sort
// directive over to the transposed axis
func Transpose(enc *spec.Encoding) {
	if enc == nil {
		return
	}

	enc.X, enc.Y = enc.Y, enc.X
	enc.X2, enc.Y2 = enc.Y2, enc.X2

	for _, channel := range []*spec.Channel{enc.X, enc.Y} {
		if channel == nil {
			continue
		}
		if sort, ok := channel.Sort.(string); ok {
			if transposed, known := transposedSort[sort]; known {
				channel.Sort = transposed
			}
		}
		if channel.Axis != nil && !channel.Axis.Disabled {
			channel.Axis.LabelAngle = nil
			if *channel.Axis == (spec.Axis{}) {
				channel.Axis = nil
			}
		}
	}
}
