// Package plotforge turns options and tabular or literal data into a chart
// document and renders it through an external engine.
package plotforge

import (
	"context"
	"errors"
	"fmt"

	"github.com/raykavin/plotforge/pkg/chart"
	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/decorate"
	"github.com/raykavin/plotforge/pkg/emit"
	"github.com/raykavin/plotforge/pkg/input"
	"github.com/raykavin/plotforge/pkg/logger"
	"github.com/raykavin/plotforge/pkg/render"
	"github.com/raykavin/plotforge/pkg/spec"
)

// DefaultLog is the default logger instance
var DefaultLog logger.Logger

const defaultOutputName = "chart"

// Plotforge runs one invocation end to end: resolve, build, render, write
type Plotforge struct {
	logger   logger.Logger
	renderer render.Renderer
	write    func(path string, data []byte) error
}

// Result describes what an invocation produced
type Result struct {
	Config   *config.Configuration
	Family   chart.Family
	Document []byte
	Path     string
	Size     int
	// Passthrough is set when the input was a complete document that skipped
	// the chart pipeline
	Passthrough bool
}

// New creates a generator using the Vega CLI found on PATH unless another
// renderer is supplied
func New(options ...Option) *Plotforge {
	p := &Plotforge{
		logger:   DefaultLog,
		renderer: render.NewCLIEngine(""),
		write:    render.Write,
	}
	if p.logger == nil {
		p.logger = logger.Nop{}
	}

	for _, option := range options {
		option(p)
	}
	return p
}

// Build resolves opts and returns the chart document for rows without
// rendering it
func Build(opts config.Options, rows core.Dataset) (*spec.Spec, *config.Configuration, error) {
	cfg, err := config.Resolve(opts)
	if err != nil {
		return nil, nil, err
	}

	doc, _, err := Document(cfg, rows)
	if err != nil {
		return nil, nil, err
	}
	return doc, cfg, nil
}

// Document runs the chart pipeline for an already resolved configuration
func Document(cfg *config.Configuration, rows core.Dataset) (*spec.Spec, chart.Family, error) {
	base, err := chart.Build(cfg, rows)
	if err != nil {
		return nil, "", err
	}

	decorated := decorate.Assemble(base, cfg)
	doc, err := emit.Emit(decorated.Spec, decorated.Layers, cfg)
	if err != nil {
		return nil, base.Family, err
	}
	return doc, base.Family, nil
}

// Generate reads the data from src, builds the document and writes the
// rendered image to the configured output path
func (p *Plotforge) Generate(ctx context.Context, opts config.Options, src input.Source) (*Result, error) {
	cfg, err := config.Resolve(opts)
	if err != nil {
		return nil, err
	}
	for _, warning := range cfg.Warnings {
		p.logger.WithField("option", warning.Option).Warn(warning.Message)
	}

	src.Inline = cfg.Inline
	payload, err := input.Resolve(ctx, src)
	if err != nil {
		return nil, err
	}

	result := &Result{Config: cfg, Path: outputPath(cfg)}
	p.logger.WithFields(map[string]any{
		"source": payload.Origin,
		"kind":   payload.Kind.String(),
		"rows":   payload.Rows.Len(),
	}).Debug("input resolved")

	if payload.Kind == input.KindDocument {
		result.Document = payload.Document
		result.Passthrough = true
	} else {
		doc, family, err := Document(cfg, payload.Rows)
		if err != nil {
			return nil, err
		}
		result.Family = family

		if result.Document, err = doc.JSON(); err != nil {
			return nil, fmt.Errorf("encode document: %w", err)
		}
		p.logger.WithFields(map[string]any{
			"family": family,
			"layers": len(doc.Layers),
		}).Debug("document built")
	}

	image, err := p.renderer.Render(ctx, result.Document, cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	if image, err = render.Watermark(image, cfg.Output.Format, cfg.Output.Watermark); err != nil {
		return nil, err
	}

	if err := p.write(result.Path, image); err != nil {
		return nil, err
	}
	result.Size = len(image)

	p.logger.WithFields(map[string]any{
		"path":   result.Path,
		"format": cfg.Output.Format,
		"bytes":  result.Size,
	}).Info("chart written")
	return result, nil
}

// ExitCode maps an invocation error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, core.ErrRender):
		return 3
	case errors.Is(err, core.ErrNoData), errors.Is(err, core.ErrMalformedLiteral), errors.Is(err, core.ErrUnreadablePath):
		return 2
	default:
		return 1
	}
}

func outputPath(cfg *config.Configuration) string {
	if cfg.Output.Path != "" {
		return cfg.Output.Path
	}
	return fmt.Sprintf("%s.%s", defaultOutputName, cfg.Output.Format)
}
