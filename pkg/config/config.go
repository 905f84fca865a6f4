package config

import (
	"fmt"

	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
)

// ChartType is the requested chart family
type ChartType string

const (
	TypeLine        ChartType = "line"
	TypeBar         ChartType = "bar"
	TypeArea        ChartType = "area"
	TypePoint       ChartType = "point"
	TypePie         ChartType = "pie"
	TypeDonut       ChartType = "donut"
	TypeHeatmap     ChartType = "heatmap"
	TypeCandlestick ChartType = "candlestick"
)

// Format is the output encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

const (
	DefaultWidth  = 600
	DefaultHeight = 300
	DefaultX      = "x"
	DefaultY      = "y"
	BrandAccent   = "#4F46E5"

	SparklineWidth  = 80
	SparklineHeight = 20

	defaultPadding = 10
	defaultFont    = "Helvetica Neue, Arial, sans-serif"
)

// Fields holds the data field bound to each role
type Fields struct {
	X          string
	Y          string
	Y2         string
	Category   string
	Color      string
	Series     string
	Open       string
	High       string
	Low        string
	Close      string
	Volume     string
	ColorValue string
}

// HLine is a horizontal reference line
type HLine struct {
	Value float64
	Color string
	Label string
}

// TimelineNote marks an event on the x axis
type TimelineNote struct {
	X     any
	Label string
}

// ColorCondition colors marks by comparing y with Threshold
type ColorCondition struct {
	Threshold float64
	Below     string
	Above     string
}

// Annotations groups the decoration directives
type Annotations struct {
	HLines         []HLine
	Timeline       []TimelineNote
	TrendLine      bool
	FocusRecent    int
	FocusChange    bool
	ShowChange     bool
	ShowValues     bool
	BarLabels      bool
	CellLabels     bool
	ColorCondition *ColorCondition
	MovingAverage  int
}

// Output describes where and how the image is written
type Output struct {
	Path      string
	Format    Format
	Watermark string
}

// Configuration is the fully resolved set of options for one invocation
type Configuration struct {
	Type     ChartType
	Width    int
	Height   int
	Padding  int
	Fields   Fields
	Theme    Theme
	Title    string
	Subtitle string

	XType   spec.FieldType
	YFormat string
	YDomain *spec.Domain
	YScale  string
	Zero    *bool
	Legend  string
	Sort    string
	Scheme  string
	Y2Type  spec.MarkType
	Y2Color string

	ShowAxes  bool
	ShowTitle bool

	Stacked    bool
	Horizontal bool
	Sparkline  bool
	Smooth     bool
	Gradient   bool

	Annotations Annotations
	Output      Output

	// Inline holds rows expanded from an inline literal, if one was given
	Inline core.Dataset

	Warnings []Warning
}

// Warning is a non-fatal resolution problem; resolution continues with a
// fallback value
type Warning struct {
	Option  string
	Message string
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %s", w.Option, w.Message)
}

// HasLegend reports whether a legend should be drawn
func (c Configuration) HasLegend() bool {
	return c.Legend != LegendNone
}
