// Package spec models the declarative chart document handed to the rendering
// engine. The shape follows the Vega-Lite v5 JSON grammar.
package spec

import "github.com/raykavin/plotforge/pkg/core"

const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// MarkType is the geometric primitive of a layer
type MarkType string

const (
	MarkLine  MarkType = "line"
	MarkBar   MarkType = "bar"
	MarkArea  MarkType = "area"
	MarkPoint MarkType = "point"
	MarkArc   MarkType = "arc"
	MarkRule  MarkType = "rule"
	MarkRect  MarkType = "rect"
	MarkText  MarkType = "text"
)

// FieldType is the measurement type of an encoded field
type FieldType string

const (
	Quantitative FieldType = "quantitative"
	Ordinal      FieldType = "ordinal"
	Nominal      FieldType = "nominal"
	Temporal     FieldType = "temporal"
)

// Spec is the root document. A flat document uses the embedded Layer; a
// composite one fills Layers and leaves Mark nil.
type Spec struct {
	Schema     string    `json:"$schema,omitempty"`
	Title      *Title    `json:"title,omitempty"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	Autosize   *Autosize `json:"autosize,omitempty"`
	Padding    *int      `json:"padding,omitempty"`
	Background string    `json:"background,omitempty"`

	Layer
	Layers  []Layer  `json:"layer,omitempty"`
	Resolve *Resolve `json:"resolve,omitempty"`
	Config  *Config  `json:"config,omitempty"`
}

// Layer is one mark with its encodings. Data is set only when the layer reads
// a private dataset instead of the document's. A layer with Group set and no
// mark is a nested layer whose members share their scales.
type Layer struct {
	Data      *Data       `json:"data,omitempty"`
	Transform []Transform `json:"transform,omitempty"`
	Mark      *Mark       `json:"mark,omitempty"`
	Encoding  *Encoding   `json:"encoding,omitempty"`
	Group     []Layer     `json:"layer,omitempty"`
}

// Data references inline rows
type Data struct {
	Values core.Dataset `json:"values"`
}

// Transform is a single calculate, filter or window step
type Transform struct {
	Calculate string     `json:"calculate,omitempty"`
	Filter    string     `json:"filter,omitempty"`
	Window    []WindowOp `json:"window,omitempty"`
	As        string     `json:"as,omitempty"`
}

type WindowOp struct {
	Op string `json:"op"`
	As string `json:"as"`
}

// Mark holds the static properties of a mark
type Mark struct {
	Type        MarkType  `json:"type"`
	Color       any       `json:"color,omitempty"`
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	Opacity     float64   `json:"opacity,omitempty"`
	Size        float64   `json:"size,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	StrokeDash  []float64 `json:"strokeDash,omitempty"`
	Interpolate string    `json:"interpolate,omitempty"`
	Point       any       `json:"point,omitempty"`
	Filled      *bool     `json:"filled,omitempty"`
	InnerRadius float64   `json:"innerRadius,omitempty"`
	Radius      float64   `json:"radius,omitempty"`
	Align       string    `json:"align,omitempty"`
	Baseline    string    `json:"baseline,omitempty"`
	Dx          float64   `json:"dx,omitempty"`
	Dy          float64   `json:"dy,omitempty"`
	Y           any       `json:"y,omitempty"`
	FontSize    float64   `json:"fontSize,omitempty"`
	FontWeight  string    `json:"fontWeight,omitempty"`
	Tooltip     bool      `json:"tooltip,omitempty"`
	Clip        bool      `json:"clip,omitempty"`
}

// Gradient is a linear fill gradient, used for area marks
type Gradient struct {
	Gradient string         `json:"gradient"`
	Stops    []GradientStop `json:"stops"`
	X1       float64        `json:"x1"`
	X2       float64        `json:"x2"`
	Y1       float64        `json:"y1"`
	Y2       float64        `json:"y2"`
}

type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Encoding binds fields to visual channels
type Encoding struct {
	X       *Channel `json:"x,omitempty"`
	Y       *Channel `json:"y,omitempty"`
	X2      *Channel `json:"x2,omitempty"`
	Y2      *Channel `json:"y2,omitempty"`
	Color   *Channel `json:"color,omitempty"`
	Theta   *Channel `json:"theta,omitempty"`
	Text    *Channel `json:"text,omitempty"`
	Size    *Channel `json:"size,omitempty"`
	Opacity *Channel `json:"opacity,omitempty"`
}

// Channel is a single channel definition: a field, a datum or a constant value
type Channel struct {
	Field     string     `json:"field,omitempty"`
	Type      FieldType  `json:"type,omitempty"`
	Datum     any        `json:"datum,omitempty"`
	Value     any        `json:"value,omitempty"`
	Title     string     `json:"title,omitempty"`
	Aggregate string     `json:"aggregate,omitempty"`
	Stack     any        `json:"stack,omitempty"`
	Sort      any        `json:"sort,omitempty"`
	Format    string     `json:"format,omitempty"`
	Axis      *Axis      `json:"axis,omitempty"`
	Scale     *Scale     `json:"scale,omitempty"`
	Legend    *Legend    `json:"legend,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
}

// Axis configures a positional axis. Disabled renders as null, hiding it.
type Axis struct {
	Disabled   bool   `json:"-"`
	Format     string `json:"format,omitempty"`
	Title      string `json:"title,omitempty"`
	Orient     string `json:"orient,omitempty"`
	LabelAngle *int   `json:"labelAngle,omitempty"`
	Grid       *bool  `json:"grid,omitempty"`
	TitleColor string `json:"titleColor,omitempty"`
	LabelColor string `json:"labelColor,omitempty"`
}

// Scale overrides a channel's scale
type Scale struct {
	Domain any    `json:"domain,omitempty"`
	Type   string `json:"type,omitempty"`
	Zero   *bool  `json:"zero,omitempty"`
	Scheme string `json:"scheme,omitempty"`
	Range  any    `json:"range,omitempty"`
	Nice   *bool  `json:"nice,omitempty"`
}

// Legend configures a channel legend. Disabled renders as null.
type Legend struct {
	Disabled bool   `json:"-"`
	Orient   string `json:"orient,omitempty"`
	Title    string `json:"title,omitempty"`
}

// Condition picks Value for rows matching Test
type Condition struct {
	Test  string `json:"test"`
	Value any    `json:"value"`
}

type Title struct {
	Text          string  `json:"text"`
	Subtitle      string  `json:"subtitle,omitempty"`
	Color         string  `json:"color,omitempty"`
	SubtitleColor string  `json:"subtitleColor,omitempty"`
	Anchor        string  `json:"anchor,omitempty"`
	FontSize      float64 `json:"fontSize,omitempty"`
}

type Autosize struct {
	Type     string `json:"type"`
	Contains string `json:"contains,omitempty"`
}

type Resolve struct {
	Scale map[string]string `json:"scale"`
}

// Config carries document-wide style
type Config struct {
	Font   string       `json:"font,omitempty"`
	Axis   *AxisConfig  `json:"axis,omitempty"`
	Legend *LegendStyle `json:"legend,omitempty"`
	View   *ViewConfig  `json:"view,omitempty"`
}

type AxisConfig struct {
	LabelColor  string  `json:"labelColor,omitempty"`
	TitleColor  string  `json:"titleColor,omitempty"`
	GridColor   string  `json:"gridColor,omitempty"`
	DomainColor string  `json:"domainColor,omitempty"`
	TickColor   string  `json:"tickColor,omitempty"`
	LabelFont   string  `json:"labelFont,omitempty"`
	LabelSize   float64 `json:"labelFontSize,omitempty"`
}

type LegendStyle struct {
	Disable    bool   `json:"disable,omitempty"`
	LabelColor string `json:"labelColor,omitempty"`
	TitleColor string `json:"titleColor,omitempty"`
	Orient     string `json:"orient,omitempty"`
}

type ViewConfig struct {
	Stroke any `json:"stroke"`
}
