// Package config resolves the raw option bag of an invocation into a typed
// Configuration with defaults, shorthand expansion and a derived theme.
package config

// Option keys tracked in Options.Set. Only keys whose explicit presence
// changes resolution are listed.
const (
	KeyWidth      = "width"
	KeyHeight     = "height"
	KeyBackground = "background"
	KeyColor      = "color"
	KeyPadding    = "padding"
)

// Options is the raw, loosely typed bag produced by the shell layer. Values
// are kept as the user wrote them; Resolve interprets them.
type Options struct {
	Data string // inline literal or label:value shorthand

	Type   string
	Width  int
	Height int
	Preset string

	// Field bindings
	X          string
	Y          string
	Y2         string
	Category   string
	ColorField string
	Series     string
	Open       string
	High       string
	Low        string
	Close      string
	Volume     string
	ColorValue string

	// Theme
	Dark        bool
	Transparent bool
	Color       string
	Background  string
	Font        string
	Scheme      string

	// Format directives
	Title    string
	Subtitle string
	XType    string
	YFormat  string
	YDomain  string
	YScale   string
	Zero     *bool
	Legend   string
	Sort     string
	Y2Type   string
	Y2Color  string
	Padding  int

	// Behavior flags
	Stacked    bool
	Horizontal bool
	Sparkline  bool
	Smooth     bool
	Gradient   bool

	// Annotation directives
	HLines         []string
	Annotations    []string
	TrendLine      bool
	FocusRecent    int
	FocusChange    bool
	ShowChange     bool
	ShowValues     bool
	BarLabels      bool
	CellLabels     bool
	ColorCondition string
	MovingAverage  int

	// Output
	Output    string
	Format    string
	Watermark string

	// Set records the keys the caller set explicitly
	Set map[string]bool
}

// IsSet reports whether key was set explicitly by the caller
func (o Options) IsSet(key string) bool {
	return o.Set[key]
}
