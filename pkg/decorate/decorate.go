// Package decorate appends annotation layers to a base chart document. Stages
// run in a fixed order and each one only acts when its directive is set.
package decorate

import (
	"github.com/raykavin/plotforge/pkg/chart"
	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
)

// State is what flows between stages. Stages return a new State and never
// modify the one they were given.
type State struct {
	Config *config.Configuration
	Family chart.Family

	// Spec is the working copy of the base document. Stages that rescale the
	// y domain or recolor the primary mark edit this copy.
	Spec *spec.Spec

	// Layers are the decoration layers appended so far, in order
	Layers []spec.Layer

	// Rows is the working dataset, windowed by focus-recent
	Rows core.Dataset
}

// Stage is a single decoration step
type Stage func(State) State

// Result is the decorated base document plus the layers to append to it
type Result struct {
	Spec   *spec.Spec
	Layers []spec.Layer
	Rows   core.Dataset
}

// Pipeline is the ordered list of stages Assemble runs
var Pipeline = []Stage{
	FocusRecent,
	FocusChange,
	ConditionalColor,
	BarLabels,
	ShowChange,
	ShowValues,
	Timeline,
	TrendLine,
	MovingAverage,
	HLines,
}

// Assemble runs the pipeline over base. The base document is cloned first so
// the caller's copy is left as it was.
func Assemble(base *chart.Base, cfg *config.Configuration) Result {
	state := State{
		Config: cfg,
		Family: base.Family,
		Spec:   base.Spec.Clone(),
		Rows:   base.Rows,
	}

	for _, stage := range Pipeline {
		state = stage(state)
	}

	return Result{Spec: state.Spec, Layers: state.Layers, Rows: state.Rows}
}

// with returns a copy of s whose layer list can be appended to without
// sharing a backing array with s
func (s State) with(layers ...spec.Layer) State {
	next := s
	next.Layers = make([]spec.Layer, 0, len(s.Layers)+len(layers))
	next.Layers = append(next.Layers, s.Layers...)
	next.Layers = append(next.Layers, layers...)
	return next
}

// withSpec returns a copy of s holding its own clone of the working document
func (s State) withSpec() State {
	next := s
	next.Spec = s.Spec.Clone()
	return next
}

// primary is the encoding of the main series in the working document
func (s State) primary() *spec.Encoding {
	return s.Spec.Primary().Encoding
}

// annotatable reports whether x/y annotations make sense for the family
func (s State) annotatable() bool {
	return s.Family.Cartesian() && s.primary() != nil && s.primary().X != nil && s.primary().Y != nil
}

// transposed reports whether the value axis runs along x
func (s State) transposed() bool {
	return s.Config.Horizontal && (s.Family == chart.FamilyDefault || s.Family == chart.FamilyStacked)
}

// valueField is the field the value annotations read: close for
// candlesticks, y for everything else
func (s State) valueField() string {
	if s.Family == chart.FamilyCandlestick {
		return s.Config.Fields.Close
	}
	return s.Config.Fields.Y
}

// anchored returns x and y channels that follow the primary encoding with the
// value channel rebound to the value field
func (s State) anchored() *spec.Encoding {
	p := s.primary()
	enc := &spec.Encoding{X: p.X.Follow(), Y: p.Y.Follow()}

	value := enc.Y
	if s.transposed() {
		value = enc.X
	}
	value.Field = s.valueField()
	value.Stack = nil
	return enc
}
