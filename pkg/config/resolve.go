package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
	"github.com/raykavin/plotforge/pkg/tabular"
	"github.com/samber/lo"
)

// Resolve turns the raw option bag into a fresh Configuration. opts is never
// modified. Problems that have a sensible fallback are recorded as warnings;
// only a malformed inline literal is an error.
func Resolve(opts Options) (*Configuration, error) {
	r := resolver{opts: opts}
	cfg := &Configuration{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Padding:   defaultPadding,
		ShowAxes:  true,
		ShowTitle: true,
		Title:     opts.Title,
		Subtitle:  opts.Subtitle,
		Stacked:   opts.Stacked,
		Smooth:    opts.Smooth,
		Gradient:  opts.Gradient,
		Sparkline: opts.Sparkline,
		YScale:    strings.TrimSpace(opts.YScale),
		Zero:      opts.Zero,
		Y2Color:   opts.Y2Color,
	}

	if err := r.inline(cfg); err != nil {
		return nil, err
	}

	r.chartType(cfg)
	r.fields(cfg)
	r.geometry(cfg)
	r.formats(cfg)
	cfg.Theme = DeriveTheme(opts)
	r.sparkline(cfg)
	r.annotations(cfg)
	r.output(cfg)

	cfg.Horizontal = opts.Horizontal && cfg.Type == TypeBar
	cfg.Warnings = r.warnings
	return cfg, nil
}

type resolver struct {
	opts     Options
	warnings []Warning
}

func (r *resolver) warn(option, format string, args ...any) {
	r.warnings = append(r.warnings, Warning{Option: option, Message: fmt.Sprintf(format, args...)})
}

func (r *resolver) inline(cfg *Configuration) error {
	if strings.TrimSpace(r.opts.Data) == "" {
		return nil
	}

	rows, err := tabular.ParseLiteral(r.opts.Data)
	if err != nil {
		return &core.InputError{Source: "inline data", Err: err}
	}
	cfg.Inline = rows
	return nil
}

func (r *resolver) chartType(cfg *Configuration) {
	typ, ok := chartTypes[strings.ToLower(strings.TrimSpace(r.opts.Type))]
	if !ok {
		r.warn("type", "unknown chart type %q, using line", r.opts.Type)
		typ = TypeLine
	}
	cfg.Type = typ
}

func (r *resolver) fields(cfg *Configuration) {
	o := r.opts
	cfg.Fields = Fields{
		X:          lo.Ternary(o.X != "", o.X, DefaultX),
		Y:          lo.Ternary(o.Y != "", o.Y, DefaultY),
		Y2:         o.Y2,
		Category:   o.Category,
		Color:      o.ColorField,
		Series:     o.Series,
		Open:       lo.Ternary(o.Open != "", o.Open, "open"),
		High:       lo.Ternary(o.High != "", o.High, "high"),
		Low:        lo.Ternary(o.Low != "", o.Low, "low"),
		Close:      lo.Ternary(o.Close != "", o.Close, "close"),
		Volume:     o.Volume,
		ColorValue: lo.Ternary(o.ColorValue != "", o.ColorValue, "value"),
	}
}

// geometry applies explicit sizes, then a preset for any dimension still at
// its default
func (r *resolver) geometry(cfg *Configuration) {
	o := r.opts
	if o.IsSet(KeyWidth) && o.Width > 0 {
		cfg.Width = o.Width
	}
	if o.IsSet(KeyHeight) && o.Height > 0 {
		cfg.Height = o.Height
	}
	if o.IsSet(KeyPadding) && o.Padding >= 0 {
		cfg.Padding = o.Padding
	}

	if o.Preset == "" {
		return
	}

	size, ok := Presets[strings.ToLower(o.Preset)]
	if !ok {
		r.warn("preset", "unknown size preset %q, keeping %dx%d", o.Preset, cfg.Width, cfg.Height)
		return
	}
	if !o.IsSet(KeyWidth) {
		cfg.Width = size.Width
	}
	if !o.IsSet(KeyHeight) {
		cfg.Height = size.Height
	}
}

func (r *resolver) formats(cfg *Configuration) {
	o := r.opts

	if o.YFormat != "" {
		code, known := FormatCode(o.YFormat)
		if !known && bareWord.MatchString(o.YFormat) {
			r.warn("y-format", "unrecognized shorthand %q, passing it through as a format code", o.YFormat)
		}
		cfg.YFormat = code
	}

	xType, ok := xTypes[strings.ToLower(o.XType)]
	if !ok {
		r.warn("x-type", "unknown x axis type %q, using ordinal", o.XType)
		xType = spec.Ordinal
	}
	cfg.XType = xType

	if o.YDomain != "" {
		domain, err := ParseDomain(o.YDomain)
		if err != nil {
			r.warn("y-domain", "%v, ignoring", err)
		} else {
			cfg.YDomain = &domain
		}
	}

	cfg.Legend = strings.ToLower(strings.TrimSpace(o.Legend))
	if !legendPositions[cfg.Legend] {
		if cfg.Legend != "" {
			r.warn("legend", "unknown legend position %q, using right", o.Legend)
		}
		cfg.Legend = LegendRight
	}

	if o.Sort != "" {
		sort, ok := sortDirectives[strings.ToLower(o.Sort)]
		if !ok {
			r.warn("sort", "unknown sort order %q, ignoring", o.Sort)
		}
		cfg.Sort = sort
	}

	cfg.Scheme = o.Scheme
	cfg.Y2Type = spec.MarkLine
	if o.Y2Type != "" {
		mark, ok := markTypes[strings.ToLower(o.Y2Type)]
		if !ok {
			r.warn("y2-type", "unknown mark %q, using line", o.Y2Type)
			mark = spec.MarkLine
		}
		cfg.Y2Type = mark
	}
}

// sparkline forces the minimal geometry unless sizes were set explicitly
func (r *resolver) sparkline(cfg *Configuration) {
	if !cfg.Sparkline {
		return
	}

	if !r.opts.IsSet(KeyWidth) {
		cfg.Width = SparklineWidth
	}
	if !r.opts.IsSet(KeyHeight) {
		cfg.Height = SparklineHeight
	}
	if !r.opts.IsSet(KeyPadding) {
		cfg.Padding = 0
	}
	cfg.ShowAxes = false
	cfg.ShowTitle = false
	if !r.opts.IsSet(KeyBackground) && r.opts.Background == "" {
		cfg.Theme.Transparent = true
	}
}

func (r *resolver) annotations(cfg *Configuration) {
	o := r.opts
	a := Annotations{
		TrendLine:     o.TrendLine,
		FocusChange:   o.FocusChange,
		ShowChange:    o.ShowChange,
		ShowValues:    o.ShowValues,
		BarLabels:     o.BarLabels,
		CellLabels:    o.CellLabels,
		FocusRecent:   max(o.FocusRecent, 0),
		MovingAverage: max(o.MovingAverage, 0),
	}

	for _, raw := range o.HLines {
		line, err := ParseHLine(raw)
		if err != nil {
			r.warn("hline", "%v, skipping", err)
			continue
		}
		if line.Color == "" {
			line.Color = cfg.Theme.Negative
		}
		a.HLines = append(a.HLines, line)
	}

	for _, raw := range o.Annotations {
		notes, err := ParseTimeline(raw)
		if err != nil {
			r.warn("annotation", "%v, skipping", err)
			continue
		}
		a.Timeline = append(a.Timeline, notes...)
	}

	if o.ColorCondition != "" {
		condition, err := ParseColorCondition(o.ColorCondition)
		if err != nil {
			r.warn("color-condition", "%v, ignoring", err)
		} else {
			a.ColorCondition = condition
		}
	}

	cfg.Annotations = a
}

func (r *resolver) output(cfg *Configuration) {
	o := r.opts
	cfg.Output = Output{Path: o.Output, Watermark: o.Watermark, Format: FormatPNG}

	if o.Format != "" {
		switch format := Format(strings.ToLower(o.Format)); format {
		case FormatPNG, FormatSVG, FormatJSON:
			cfg.Output.Format = format
		default:
			r.warn("format", "unknown output format %q, using png", o.Format)
		}
		return
	}

	switch strings.ToLower(filepath.Ext(o.Output)) {
	case ".svg":
		cfg.Output.Format = FormatSVG
	case ".json":
		cfg.Output.Format = FormatJSON
	}
}
