// Package emit merges a decorated base document with its annotation layers and
// applies the document-wide chrome.
package emit

import (
	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/spec"
)

const (
	titleSize = 16
	labelSize = 11
)

// Emit returns the final document. base is not modified. A flat base with no
// decorations stays flat; otherwise the decorations are appended, in the order
// given, beside the primary layer so they share its scales.
func Emit(base *spec.Spec, decorations []spec.Layer, cfg *config.Configuration) (*spec.Spec, error) {
	if base == nil || base.Data == nil || base.Data.Values.IsEmpty() {
		return nil, core.ErrNoData
	}

	doc := base.Clone()
	doc.Annotate(decorations...)

	theme := cfg.Theme
	doc.Background = theme.CanvasBackground()
	doc.Padding = spec.Int(cfg.Padding)

	if cfg.ShowTitle && cfg.Title != "" {
		doc.Title = &spec.Title{
			Text:          cfg.Title,
			Subtitle:      cfg.Subtitle,
			Color:         theme.Text,
			SubtitleColor: theme.Neutral,
			Anchor:        "start",
			FontSize:      titleSize,
		}
	}

	doc.Config = &spec.Config{
		Font: theme.Font,
		Axis: &spec.AxisConfig{
			LabelColor:  theme.Text,
			TitleColor:  theme.Text,
			GridColor:   theme.Grid,
			DomainColor: theme.Grid,
			TickColor:   theme.Grid,
			LabelFont:   theme.Font,
			LabelSize:   labelSize,
		},
		Legend: legend(cfg),
		View:   &spec.ViewConfig{},
	}
	return doc, nil
}

func legend(cfg *config.Configuration) *spec.LegendStyle {
	if !cfg.HasLegend() {
		return &spec.LegendStyle{Disable: true}
	}
	return &spec.LegendStyle{
		LabelColor: cfg.Theme.Text,
		TitleColor: cfg.Theme.Text,
		Orient:     cfg.Legend,
	}
}
