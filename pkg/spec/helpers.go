package spec

import (
	"encoding/json"
	"fmt"

	"github.com/raykavin/plotforge/pkg/core"
)

// MarshalJSON renders a disabled axis as null
func (a Axis) MarshalJSON() ([]byte, error) {
	if a.Disabled {
		return []byte("null"), nil
	}
	type plain Axis
	return json.Marshal(plain(a))
}

// MarshalJSON renders a disabled legend as null
func (l Legend) MarshalJSON() ([]byte, error) {
	if l.Disabled {
		return []byte("null"), nil
	}
	type plain Legend
	return json.Marshal(plain(l))
}

// Domain is an explicit quantitative scale domain
type Domain [2]float64

// NewDomain validates that lo < hi
func NewDomain(lo, hi float64) (Domain, error) {
	if !(lo < hi) {
		return Domain{}, fmt.Errorf("%w: [%g, %g]", core.ErrInvalidDomain, lo, hi)
	}
	return Domain{lo, hi}, nil
}

// NoAxis hides an axis
func NoAxis() *Axis { return &Axis{Disabled: true} }

// NoLegend hides a legend
func NoLegend() *Legend { return &Legend{Disabled: true} }

// Bool returns a pointer to b, for optional boolean properties
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i
func Int(i int) *int { return &i }

// Field is a shorthand for a field channel
func Field(name string, typ FieldType) *Channel {
	return &Channel{Field: name, Type: typ}
}

// Value is a shorthand for a constant channel
func Value(v any) *Channel {
	return &Channel{Value: v}
}

// Dashed returns a stroke dash pattern
func Dashed() []float64 { return []float64{6, 4} }

// Dotted returns a dotted stroke dash pattern
func Dotted() []float64 { return []float64{2, 3} }

// Datum references a field of the current row in an expression
func Datum(field string) string {
	return fmt.Sprintf("datum[%q]", field)
}

const rowNumber = "__row"

// AtRow keeps only the row at zero-based position i of the layer's data
func AtRow(i int) []Transform {
	return []Transform{
		{Window: []WindowOp{{Op: "row_number", As: rowNumber}}},
		{Filter: fmt.Sprintf("datum.%s == %d", rowNumber, i+1)},
	}
}

// IsLayered reports whether the document is a composite of layers
func (s *Spec) IsLayered() bool { return len(s.Layers) > 0 }

// Primary returns the layer carrying the main series: the flat layer, or the
// first mark of a composite, looking inside a leading group
func (s *Spec) Primary() *Layer {
	if !s.IsLayered() {
		return &s.Layer
	}
	layer := &s.Layers[0]
	for len(layer.Group) > 0 {
		layer = &layer.Group[0]
	}
	return layer
}

// Annotate appends layers next to the primary layer so they share its x and
// y scales. In a composite whose first entry is a group the layers join that
// group; otherwise they are appended to the document.
func (s *Spec) Annotate(layers ...Layer) {
	if len(layers) == 0 {
		return
	}
	s.Flatten()
	if s.IsLayered() && s.Layers[0].Group != nil {
		s.Layers[0].Group = append(s.Layers[0].Group, layers...)
		return
	}
	s.Layers = append(s.Layers, layers...)
}

// Flatten moves a flat document's mark into a one-element layer list so more
// layers can be appended. Data stays at the document level.
func (s *Spec) Flatten() {
	if s.IsLayered() || s.Mark == nil {
		return
	}
	s.Layers = []Layer{{Transform: s.Transform, Mark: s.Mark, Encoding: s.Encoding}}
	s.Transform, s.Mark, s.Encoding = nil, nil, nil
}

// Clone returns a copy of the encoding whose channels can be changed without
// touching the original
func (e *Encoding) Clone() *Encoding {
	if e == nil {
		return &Encoding{}
	}
	return &Encoding{
		X:       e.X.Clone(),
		Y:       e.Y.Clone(),
		X2:      e.X2.Clone(),
		Y2:      e.Y2.Clone(),
		Color:   e.Color.Clone(),
		Theta:   e.Theta.Clone(),
		Text:    e.Text.Clone(),
		Size:    e.Size.Clone(),
		Opacity: e.Opacity.Clone(),
	}
}

// Clone copies the channel and its nested axis, scale and legend
func (c *Channel) Clone() *Channel {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Axis != nil {
		axis := *c.Axis
		clone.Axis = &axis
	}
	if c.Scale != nil {
		scale := *c.Scale
		clone.Scale = &scale
	}
	if c.Legend != nil {
		legend := *c.Legend
		clone.Legend = &legend
	}
	if c.Condition != nil {
		condition := *c.Condition
		clone.Condition = &condition
	}
	return &clone
}

// Follow copies a positional channel for an annotation layer. Field and scale
// are kept; a visible axis is left to the layer being followed, a hidden one
// stays hidden.
func (c *Channel) Follow() *Channel {
	clone := c.Clone()
	if clone != nil && clone.Axis != nil && !clone.Axis.Disabled {
		clone.Axis = nil
	}
	return clone
}

// Clone copies the mark
func (m *Mark) Clone() *Mark {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

// Clone copies a layer deeply enough for stages to rewrite marks and channels
func (l Layer) Clone() Layer {
	clone := l
	clone.Mark = l.Mark.Clone()
	if l.Encoding != nil {
		clone.Encoding = l.Encoding.Clone()
	}
	if l.Transform != nil {
		clone.Transform = append([]Transform(nil), l.Transform...)
	}
	if l.Group != nil {
		clone.Group = make([]Layer, len(l.Group))
		for i, member := range l.Group {
			clone.Group[i] = member.Clone()
		}
	}
	return clone
}

// Clone copies the document, layers included
func (s *Spec) Clone() *Spec {
	clone := *s
	clone.Layer = s.Layer.Clone()
	if s.Layers != nil {
		clone.Layers = make([]Layer, len(s.Layers))
		for i, layer := range s.Layers {
			clone.Layers[i] = layer.Clone()
		}
	}
	return &clone
}

// JSON encodes the document with indentation
func (s *Spec) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
