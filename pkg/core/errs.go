package core

import (
	"errors"
	"fmt"
)

var (
	ErrNoData           = errors.New("no usable data")
	ErrMalformedLiteral = errors.New("malformed data literal")
	ErrUnreadablePath   = errors.New("unreadable input path")
	ErrRender           = errors.New("render failed")
	ErrInvalidDomain    = errors.New("domain must be an ascending pair")
)

// InputError reports a problem with the data handed to the pipeline.
// Nothing is written when one is returned.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("input: %v", e.Err)
	}
	return fmt.Sprintf("input %s: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// RenderError wraps a failure of the external rendering or encoding stage
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRender) match any RenderError
func (e *RenderError) Is(target error) bool { return target == ErrRender }
