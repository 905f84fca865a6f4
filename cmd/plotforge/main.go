package main

import (
	"fmt"
	"os"

	"github.com/raykavin/plotforge"
	"github.com/raykavin/plotforge/pkg/chart"
	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/input"
	"github.com/raykavin/plotforge/pkg/render"
	"github.com/raykavin/plotforge/pkg/summary"
	"github.com/spf13/cobra"
)

// Command line flags
var (
	opts       config.Options
	file       string
	configPath string
	engineDir  string
	timeout    string
	dryRun     bool
	bins       int
)

// flagKeys maps the flags whose explicit presence matters to the option keys
// tracked in config.Options.Set
var flagKeys = map[string]string{
	"width":      config.KeyWidth,
	"height":     config.KeyHeight,
	"background": config.KeyBackground,
	"color":      config.KeyColor,
	"padding":    config.KeyPadding,
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "plotforge",
		Short:         "Build chart images from tabular or inline data",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file with defaults (default ./plotforge.yaml)")
	rootCmd.AddCommand(buildGenerateCmd(), buildInspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(plotforge.ExitCode(err))
	}
}

func buildGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Render a chart to an image file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGenerate,
	}
	addChartFlags(generateCmd)

	generateCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output path; the extension picks the format (default chart.png)")
	generateCmd.Flags().StringVar(&opts.Format, "format", "", "Output format: png, svg or json")
	generateCmd.Flags().StringVar(&opts.Watermark, "watermark", "", "Text stamped in the bottom-right corner")
	generateCmd.Flags().StringVar(&engineDir, "engine-dir", "", "Directory holding vl2png and vl2svg")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Write the chart document instead of rendering it")

	return generateCmd
}

func buildInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the resolved options, layers and a preview of the data",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}
	addChartFlags(inspectCmd)
	inspectCmd.Flags().IntVar(&bins, "bins", 10, "Histogram bins for the value preview")

	return inspectCmd
}

func addChartFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	// Data
	flags.StringVarP(&opts.Data, "data", "d", "", `Inline data: [..], {..} or "label:value,..."`)
	flags.StringVarP(&file, "file", "f", "", "Data file (CSV, TSV, literal or a full chart document)")
	flags.StringVar(&timeout, "stdin-timeout", "", "How long to wait for piped data (e.g. 3s, 500ms)")

	// Chart
	flags.StringVarP(&opts.Type, "type", "t", "line", "Chart type: line, bar, area, point, pie, donut, heatmap, candlestick")
	flags.IntVarP(&opts.Width, "width", "W", 0, "Width in pixels")
	flags.IntVarP(&opts.Height, "height", "H", 0, "Height in pixels")
	flags.StringVar(&opts.Preset, "preset", "", "Size preset: twitter, linkedin, instagram, story, og, slack, youtube, github, thumbnail")
	flags.IntVar(&opts.Padding, "padding", 0, "Padding in pixels")

	// Fields
	flags.StringVar(&opts.X, "x", "", "X field (default x)")
	flags.StringVar(&opts.Y, "y", "", "Y field (default y)")
	flags.StringVar(&opts.Y2, "y2", "", "Second y field on an independent axis")
	flags.StringVar(&opts.Category, "category", "", "Category field for pie, donut and heatmap")
	flags.StringVar(&opts.ColorField, "color-field", "", "Field splitting stacked bars")
	flags.StringVar(&opts.Series, "series", "", "Field splitting lines into series")
	flags.StringVar(&opts.Open, "open", "", "Open field for candlesticks")
	flags.StringVar(&opts.High, "high", "", "High field for candlesticks")
	flags.StringVar(&opts.Low, "low", "", "Low field for candlesticks")
	flags.StringVar(&opts.Close, "close", "", "Close field for candlesticks")
	flags.StringVar(&opts.Volume, "volume", "", "Volume field drawn under the main series")
	flags.StringVar(&opts.ColorValue, "color-value", "", "Value field coloring heatmap cells (default value)")

	// Theme
	flags.BoolVar(&opts.Dark, "dark", false, "Dark theme")
	flags.BoolVar(&opts.Transparent, "transparent", false, "Transparent background")
	flags.StringVar(&opts.Color, "color", "", "Accent color")
	flags.StringVar(&opts.Background, "background", "", "Background color")
	flags.StringVar(&opts.Font, "font", "", "Font family")
	flags.StringVar(&opts.Scheme, "scheme", "", "Heatmap color scheme")

	// Format
	flags.StringVar(&opts.Title, "title", "", "Chart title")
	flags.StringVar(&opts.Subtitle, "subtitle", "", "Chart subtitle")
	flags.StringVar(&opts.XType, "x-type", "", "X axis type: ordinal, nominal, temporal, quantitative")
	flags.StringVar(&opts.YFormat, "y-format", "", "Y axis format: percent, dollar, compact, integer, decimal2, decimal4, scientific or a format code")
	flags.StringVar(&opts.YDomain, "y-domain", "", `Y axis domain as "lo,hi"`)
	flags.StringVar(&opts.YScale, "y-scale", "", "Y scale type, e.g. log or sqrt")
	flags.BoolVar(new(bool), "zero", true, "Start the y axis at zero")
	flags.StringVar(&opts.Legend, "legend", "", "Legend position: top, bottom, left, right or none")
	flags.StringVar(&opts.Sort, "sort", "", "Category order: asc, desc, x, -x, y, -y")
	flags.StringVar(&opts.Y2Type, "y2-type", "", "Mark for the second axis: line, bar, area, point")
	flags.StringVar(&opts.Y2Color, "y2-color", "", "Color of the second axis series")

	// Behavior
	flags.BoolVar(&opts.Stacked, "stacked", false, "Stack bars by --color-field")
	flags.BoolVar(&opts.Horizontal, "horizontal", false, "Horizontal bars")
	flags.BoolVar(&opts.Sparkline, "sparkline", false, "Minimal 80x20 line without axes")
	flags.BoolVar(&opts.Smooth, "smooth", false, "Smooth lines and areas")
	flags.BoolVar(&opts.Gradient, "gradient", false, "Gradient fill for areas")

	// Annotations
	flags.StringArrayVar(&opts.HLines, "hline", nil, `Reference line "value[,color[,label]]", repeatable`)
	flags.StringArrayVar(&opts.Annotations, "annotate", nil, `Timeline note "x|label" or a JSON list, repeatable`)
	flags.BoolVar(&opts.TrendLine, "trend", false, "Draw a least-squares trend line")
	flags.IntVar(&opts.FocusRecent, "focus-recent", 0, "Keep only the last N rows")
	flags.BoolVar(&opts.FocusChange, "focus-change", false, "Zoom the y axis on the visible values")
	flags.BoolVar(&opts.ShowChange, "show-change", false, "Label the first-to-last change")
	flags.BoolVar(&opts.ShowValues, "show-values", false, "Label the highest and lowest values")
	flags.BoolVar(&opts.BarLabels, "bar-labels", false, "Label each bar with its value")
	flags.BoolVar(&opts.CellLabels, "cell-labels", false, "Label each heatmap cell")
	flags.StringVar(&opts.ColorCondition, "color-condition", "", `Color by threshold "threshold,below,above"`)
	flags.IntVar(&opts.MovingAverage, "ma", 0, "Draw an N-period moving average")
}

// prepare merges the file and environment defaults under the flags and
// returns the data source
func prepare(cmd *cobra.Command, args []string) (input.Source, error) {
	settings, err := LoadSettings(configPath)
	if err != nil {
		return input.Source{}, fmt.Errorf("load settings: %w", err)
	}

	flags := cmd.Flags()
	opts.Set = make(map[string]bool)
	for flag, key := range flagKeys {
		if flags.Changed(flag) {
			opts.Set[key] = true
		}
	}

	if flags.Changed("zero") {
		zero, _ := flags.GetBool("zero")
		opts.Zero = &zero
	}
	if !flags.Changed("dark") {
		opts.Dark = settings.Dark()
	}
	if !flags.Changed("preset") {
		opts.Preset = settings.Preset
	}
	if !flags.Changed("color") && settings.Color != "" {
		opts.Color = settings.Color
	}
	if !flags.Changed("font") {
		opts.Font = settings.Font
	}
	if flags.Lookup("watermark") != nil && !flags.Changed("watermark") {
		opts.Watermark = settings.Watermark
	}
	if !flags.Changed("engine-dir") {
		engineDir = settings.EngineDir
	}
	if !flags.Changed("stdin-timeout") {
		timeout = settings.StdinTimeout
	}

	wait, err := input.ParseTimeout(timeout)
	if err != nil {
		return input.Source{}, err
	}

	src := input.Source{Path: file, Timeout: wait}
	if src.Path == "" && len(args) > 0 {
		src.Path = args[0]
	}
	if src.Path == "" && opts.Data == "" && stdinPiped() {
		src.Stdin = os.Stdin
	}
	return src, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	src, err := prepare(cmd, args)
	if err != nil {
		return err
	}

	options := []plotforge.Option{plotforge.WithEngineDir(engineDir)}
	if dryRun {
		options = append(options, plotforge.WithRenderer(render.JSONEngine{}))
		opts.Format = string(config.FormatJSON)
	}

	result, err := plotforge.New(options...).Generate(cmd.Context(), opts, src)
	if err != nil {
		return err
	}

	fmt.Println(result.Path)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	src, err := prepare(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, warning := range cfg.Warnings {
		fmt.Fprintln(out, "warning:", warning)
	}

	src.Inline = cfg.Inline
	payload, err := input.Resolve(cmd.Context(), src)
	if err != nil {
		return err
	}
	if payload.Kind == input.KindDocument {
		fmt.Fprintln(out, "input is a complete chart document; nothing to inspect")
		return nil
	}

	doc, family, err := plotforge.Document(cfg, payload.Rows)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "------ OPTIONS -------")
	fmt.Fprintln(out, summary.Config(cfg, family))
	fmt.Fprintln(out, "------ LAYERS -------")
	fmt.Fprintln(out, summary.Layers(doc))

	field := cfg.Fields.Y
	if family == chart.FamilyCandlestick {
		field = cfg.Fields.Close
	}
	fmt.Fprintln(out, "------ VALUES -------")
	fmt.Fprintln(out, summary.Stats(payload.Rows, field))
	if err := summary.Histogram(out, payload.Rows, field, bins); err != nil {
		plotforge.DefaultLog.WithError(err).Debug("no histogram")
	}
	fmt.Fprintln(out)
	return nil
}

// stdinPiped reports whether stdin is a pipe or file rather than a terminal
func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
