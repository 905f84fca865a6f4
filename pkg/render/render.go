// Package render turns an emitted chart document into image bytes. The
// drawing itself is done by the Vega command line tools; this package feeds
// them, stamps an optional watermark and writes the result.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
)

// Renderer converts a chart document into the requested format
type Renderer interface {
	Render(ctx context.Context, doc []byte, format config.Format) ([]byte, error)
}

// binaries maps each image format to the Vega CLI tool producing it
var binaries = map[config.Format]string{
	config.FormatPNG: "vl2png",
	config.FormatSVG: "vl2svg",
}

// CLIEngine runs vl2png or vl2svg with the document on stdin
type CLIEngine struct {
	// Dir holds the binaries; empty means look them up on PATH
	Dir string
	// Scale is passed to vl2png as its scale factor when above 1
	Scale float64
}

// NewCLIEngine returns an engine using the binaries in dir
func NewCLIEngine(dir string) *CLIEngine {
	return &CLIEngine{Dir: dir}
}

func (e *CLIEngine) Render(ctx context.Context, doc []byte, format config.Format) ([]byte, error) {
	if format == config.FormatJSON {
		return JSONEngine{}.Render(ctx, doc, format)
	}

	name, ok := binaries[format]
	if !ok {
		return nil, &core.RenderError{Stage: "render", Err: fmt.Errorf("unsupported format %q", format)}
	}

	bin := name
	if e.Dir != "" {
		bin = filepath.Join(e.Dir, name)
	}

	var args []string
	if format == config.FormatPNG && e.Scale > 1 {
		args = append(args, "--scale", fmt.Sprintf("%g", e.Scale))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(doc)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, &core.RenderError{Stage: name, Err: err}
	}
	if stdout.Len() == 0 {
		return nil, &core.RenderError{Stage: name, Err: fmt.Errorf("empty output")}
	}
	return stdout.Bytes(), nil
}

// JSONEngine returns the document itself, for json output and dry runs
type JSONEngine struct{}

func (JSONEngine) Render(_ context.Context, doc []byte, _ config.Format) ([]byte, error) {
	if !json.Valid(doc) {
		return nil, &core.RenderError{Stage: "json", Err: fmt.Errorf("document is not valid JSON")}
	}
	return doc, nil
}

// Write stores data at path, creating missing parent directories
func Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &core.RenderError{Stage: "write", Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &core.RenderError{Stage: "write", Err: err}
	}
	return nil
}
