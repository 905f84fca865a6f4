// Package summary prints terminal reports about a chart: the resolved
// configuration, the layers of the emitted document and a preview of the
// plotted values.
package summary

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/plotforge/pkg/chart"
	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/metric"
	"github.com/raykavin/plotforge/pkg/spec"
	"github.com/samber/lo"
)

// Config renders the resolved options as a two-column table
func Config(cfg *config.Configuration, family chart.Family) string {
	f := cfg.Fields
	a := cfg.Annotations

	data := [][]string{
		{"Type", string(cfg.Type)},
		{"Family", string(family)},
		{"Size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)},
		{"Padding", strconv.Itoa(cfg.Padding)},
		{"Fields", fmt.Sprintf("x=%s y=%s", f.X, f.Y)},
		{"Theme", lo.Ternary(cfg.Theme.Dark, "dark", "light")},
		{"Accent", cfg.Theme.Accent},
		{"Background", cfg.Theme.CanvasBackground()},
		{"X type", string(cfg.XType)},
		{"Legend", cfg.Legend},
		{"Output", fmt.Sprintf("%s (%s)", lo.Ternary(cfg.Output.Path != "", cfg.Output.Path, "-"), cfg.Output.Format)},
	}

	optional := [][]string{
		{"Y2", f.Y2},
		{"Category", f.Category},
		{"Color field", f.Color},
		{"Series", f.Series},
		{"Volume", f.Volume},
		{"Y format", cfg.YFormat},
		{"Y scale", cfg.YScale},
		{"Sort", cfg.Sort},
		{"Title", cfg.Title},
		{"Subtitle", cfg.Subtitle},
		{"Watermark", cfg.Output.Watermark},
	}
	if cfg.YDomain != nil {
		optional = append(optional, []string{"Y domain", fmt.Sprintf("%g..%g", cfg.YDomain[0], cfg.YDomain[1])})
	}
	if a.FocusRecent > 0 {
		optional = append(optional, []string{"Focus recent", strconv.Itoa(a.FocusRecent)})
	}
	if a.MovingAverage > 0 {
		optional = append(optional, []string{"Moving avg", strconv.Itoa(a.MovingAverage)})
	}
	if a.ColorCondition != nil {
		cc := a.ColorCondition
		optional = append(optional, []string{"Color cond.", fmt.Sprintf("%g (%s / %s)", cc.Threshold, cc.Below, cc.Above)})
	}
	if len(a.HLines) > 0 {
		optional = append(optional, []string{"HLines", strconv.Itoa(len(a.HLines))})
	}
	if len(a.Timeline) > 0 {
		optional = append(optional, []string{"Annotations", strconv.Itoa(len(a.Timeline))})
	}

	flags := lo.Compact([]string{
		lo.Ternary(cfg.Stacked, "stacked", ""),
		lo.Ternary(cfg.Horizontal, "horizontal", ""),
		lo.Ternary(cfg.Sparkline, "sparkline", ""),
		lo.Ternary(cfg.Smooth, "smooth", ""),
		lo.Ternary(cfg.Gradient, "gradient", ""),
		lo.Ternary(a.FocusChange, "focus-change", ""),
		lo.Ternary(a.ShowChange, "show-change", ""),
		lo.Ternary(a.ShowValues, "show-values", ""),
		lo.Ternary(a.BarLabels, "bar-labels", ""),
		lo.Ternary(a.CellLabels, "cell-labels", ""),
		lo.Ternary(a.TrendLine, "trend-line", ""),
	})
	if len(flags) > 0 {
		optional = append(optional, []string{"Flags", strings.Join(flags, ", ")})
	}

	data = append(data, lo.Filter(optional, func(row []string, _ int) bool { return row[1] != "" })...)

	out := &strings.Builder{}
	table := tablewriter.NewWriter(out)
	table.AppendBulk(data)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	table.Render()
	return out.String()
}

// Layers lists the marks of a document in drawing order
func Layers(doc *spec.Spec) string {
	out := &strings.Builder{}
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "Mark", "X", "Y", "Data"})

	layers := marks(doc.Layers)
	if !doc.IsLayered() {
		layers = []spec.Layer{doc.Layer}
	}
	for i, layer := range layers {
		table.Append([]string{
			strconv.Itoa(i),
			describeMark(layer.Mark),
			describeChannel(layer.Encoding, func(e *spec.Encoding) *spec.Channel { return e.X }),
			describeChannel(layer.Encoding, func(e *spec.Encoding) *spec.Channel { return e.Y }),
			lo.Ternary(doc.IsLayered() && layer.Data != nil, "private", "shared"),
		})
	}
	table.SetFooter([]string{"", "", "", "rows", strconv.Itoa(dataLen(doc))})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)
	table.Render()
	return out.String()
}

// marks expands nested groups into the marks they hold, in drawing order
func marks(layers []spec.Layer) []spec.Layer {
	return lo.FlatMap(layers, func(layer spec.Layer, _ int) []spec.Layer {
		if layer.Group != nil {
			return marks(layer.Group)
		}
		return []spec.Layer{layer}
	})
}

// Stats renders count, extremes, mean and change of the numeric values of
// field
func Stats(rows core.Dataset, field string) string {
	values := rows.Numbers(field)

	data := [][]string{
		{"Field", field},
		{"Rows", strconv.Itoa(rows.Len())},
		{"Numeric", strconv.Itoa(values.Length())},
	}
	if values.Length() > 0 {
		low, high := values.Extent()
		data = append(data,
			[]string{"Min", formatValue(low)},
			[]string{"Max", formatValue(high)},
			[]string{"Mean", formatValue(metric.Mean(values.Values()))},
			[]string{"First", formatValue(values.First())},
			[]string{"Last", formatValue(values.Last(0))},
		)
		if pct, ok := metric.PercentChange(values.First(), values.Last(0)); ok {
			data = append(data, []string{"Change", metric.FormatChange(pct)})
		}
	}

	out := &strings.Builder{}
	table := tablewriter.NewWriter(out)
	table.AppendBulk(data)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Render()
	return out.String()
}

// Histogram prints the distribution of the numeric values of field
func Histogram(w io.Writer, rows core.Dataset, field string, bins int) error {
	values := rows.Numbers(field).Values()
	if len(values) == 0 {
		return core.ErrNoData
	}

	hist := histogram.Hist(bins, values)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}

func describeMark(mark *spec.Mark) string {
	if mark == nil {
		return "-"
	}
	if len(mark.StrokeDash) > 0 {
		return string(mark.Type) + " (dashed)"
	}
	return string(mark.Type)
}

func describeChannel(enc *spec.Encoding, pick func(*spec.Encoding) *spec.Channel) string {
	if enc == nil {
		return "-"
	}
	channel := pick(enc)
	switch {
	case channel == nil:
		return "-"
	case channel.Field != "":
		return channel.Field
	case channel.Datum != nil:
		return "= " + core.Text(channel.Datum)
	case channel.Value != nil:
		return "value " + core.Text(channel.Value)
	default:
		return "-"
	}
}

func dataLen(doc *spec.Spec) int {
	if doc.Data == nil {
		return 0
	}
	return doc.Data.Values.Len()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', int(min(core.NumDecPlaces(v), 4)), 64)
}
