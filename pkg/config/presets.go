package config

import (
	"regexp"
	"strings"

	"github.com/raykavin/plotforge/pkg/spec"
)

// Size is a fixed canvas size
type Size struct {
	Width  int
	Height int
}

// Presets maps a platform name to its preferred canvas size
var Presets = map[string]Size{
	"twitter":   {1200, 675},
	"x":         {1200, 675},
	"linkedin":  {1200, 627},
	"instagram": {1080, 1080},
	"story":     {1080, 1920},
	"og":        {1200, 630},
	"slack":     {800, 400},
	"youtube":   {1280, 720},
	"github":    {1280, 640},
	"thumbnail": {300, 200},
}

// yFormats maps y-axis format shorthands to d3-format codes
var yFormats = map[string]string{
	"percent":    ".1%",
	"dollar":     "$,.2f",
	"usd":        "$,.2f",
	"compact":    "~s",
	"integer":    ",.0f",
	"decimal2":   ".2f",
	"decimal4":   ".4f",
	"scientific": ".2e",
}

var bareWord = regexp.MustCompile(`^[a-z]+[0-9]*$`)

// FormatCode expands a y-format shorthand. Unknown values pass through; known
// reports whether the value was a recognized shorthand.
func FormatCode(format string) (code string, known bool) {
	if code, ok := yFormats[strings.ToLower(strings.TrimSpace(format))]; ok {
		return code, true
	}
	return format, false
}

const (
	LegendNone   = "none"
	LegendTop    = "top"
	LegendBottom = "bottom"
	LegendLeft   = "left"
	LegendRight  = "right"
)

var legendPositions = map[string]bool{
	LegendNone: true, LegendTop: true, LegendBottom: true, LegendLeft: true, LegendRight: true,
}

var xTypes = map[string]spec.FieldType{
	"":             spec.Ordinal,
	"ordinal":      spec.Ordinal,
	"nominal":      spec.Nominal,
	"temporal":     spec.Temporal,
	"time":         spec.Temporal,
	"date":         spec.Temporal,
	"quantitative": spec.Quantitative,
	"linear":       spec.Quantitative,
	"number":       spec.Quantitative,
}

var chartTypes = map[string]ChartType{
	"":            TypeLine,
	"line":        TypeLine,
	"bar":         TypeBar,
	"area":        TypeArea,
	"point":       TypePoint,
	"scatter":     TypePoint,
	"pie":         TypePie,
	"donut":       TypeDonut,
	"heatmap":     TypeHeatmap,
	"candlestick": TypeCandlestick,
	"ohlc":        TypeCandlestick,
}

var markTypes = map[string]spec.MarkType{
	"line":  spec.MarkLine,
	"bar":   spec.MarkBar,
	"area":  spec.MarkArea,
	"point": spec.MarkPoint,
}

// sortDirectives normalizes user sort words into a sort expression against
// the categorical x channel
var sortDirectives = map[string]string{
	"asc":        "y",
	"ascending":  "y",
	"desc":       "-y",
	"descending": "-y",
	"x":          "x",
	"-x":         "-x",
	"y":          "y",
	"-y":         "-y",
}
