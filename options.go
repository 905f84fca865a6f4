package plotforge

import (
	"github.com/raykavin/plotforge/pkg/logger"
	"github.com/raykavin/plotforge/pkg/render"
)

// Option is a functional option for configuring a Plotforge instance
type Option func(*Plotforge)

// WithLogger sets the logger, by default it uses DefaultLog
func WithLogger(log logger.Logger) Option {
	return func(p *Plotforge) {
		p.logger = log
	}
}

// WithRenderer replaces the Vega CLI engine, e.g. with render.JSONEngine for
// dry runs
func WithRenderer(renderer render.Renderer) Option {
	return func(p *Plotforge) {
		p.renderer = renderer
	}
}

// WithEngineDir runs the Vega CLI binaries from dir instead of PATH
func WithEngineDir(dir string) Option {
	return func(p *Plotforge) {
		p.renderer = render.NewCLIEngine(dir)
	}
}

// WithWriter replaces how the rendered image is stored, by default it is
// written to the output path
func WithWriter(write func(path string, data []byte) error) Option {
	return func(p *Plotforge) {
		p.write = write
	}
}
