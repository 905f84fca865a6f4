// Package input locates the data of an invocation: an already parsed inline
// literal, a file, or standard input. The content kind is detected from the
// text itself.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/raykavin/plotforge/pkg/core"
	"github.com/raykavin/plotforge/pkg/tabular"
	"github.com/samber/lo"
	"github.com/xhit/go-str2duration/v2"
)

// DefaultTimeout bounds the wait for piped input
const DefaultTimeout = 3 * time.Second

// Kind is the detected content of an input
type Kind int

const (
	KindTabular Kind = iota
	KindLiteral
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindDocument:
		return "document"
	default:
		return "tabular"
	}
}

// documentKeys mark a brace-delimited input as a complete chart document
var documentKeys = []string{`"$schema"`, `"mark"`, `"layer"`}

// Source lists the places data may come from. The first one set wins:
// Inline, then Path, then Stdin.
type Source struct {
	Inline  core.Dataset
	Path    string
	Stdin   io.Reader
	Timeout time.Duration
}

// Payload is the resolved input. Document is set instead of Rows when the
// input was a complete chart document that bypasses the pipeline.
type Payload struct {
	Kind     Kind
	Origin   string
	Rows     core.Dataset
	Document []byte
}

// Resolve reads the first configured source and decodes it
func Resolve(ctx context.Context, src Source) (Payload, error) {
	switch {
	case len(src.Inline) > 0:
		return Payload{Kind: KindLiteral, Origin: "inline", Rows: src.Inline}, nil
	case src.Path != "":
		text, err := os.ReadFile(src.Path)
		if err != nil {
			return Payload{}, &core.InputError{Source: src.Path, Err: fmt.Errorf("%w: %v", core.ErrUnreadablePath, err)}
		}
		return Parse(string(text), src.Path)
	case src.Stdin != nil:
		text, err := ReadStdin(ctx, src.Stdin, src.Timeout)
		if err != nil {
			return Payload{}, &core.InputError{Source: "stdin", Err: err}
		}
		return Parse(text, "stdin")
	default:
		return Payload{}, &core.InputError{Err: core.ErrNoData}
	}
}

// Detect classifies text by its leading character and, for brace input, by
// the presence of document keys
func Detect(text string) Kind {
	text = strings.TrimSpace(strings.TrimPrefix(text, "\ufeff"))
	switch {
	case strings.HasPrefix(text, "{") && lo.ContainsBy(documentKeys, func(key string) bool {
		return strings.Contains(text, key)
	}):
		return KindDocument
	case tabular.IsLiteral(text), tabular.IsShorthand(text):
		return KindLiteral
	default:
		return KindTabular
	}
}

// Parse decodes text read from origin
func Parse(text, origin string) (Payload, error) {
	if strings.TrimSpace(text) == "" {
		return Payload{}, &core.InputError{Source: origin, Err: core.ErrNoData}
	}

	payload := Payload{Kind: Detect(text), Origin: origin}
	switch payload.Kind {
	case KindDocument:
		payload.Document = []byte(strings.TrimSpace(text))
		return payload, nil
	case KindLiteral:
		rows, err := tabular.ParseLiteral(text)
		if err != nil {
			return Payload{}, &core.InputError{Source: origin, Err: err}
		}
		payload.Rows = rows
	default:
		payload.Rows = tabular.Decode(text)
	}

	if payload.Rows.IsEmpty() {
		return Payload{}, &core.InputError{Source: origin, Err: core.ErrNoData}
	}
	return payload, nil
}

// firstReadSize is the buffer of the first, time-bounded read
const firstReadSize = 32 * 1024

// ReadStdin reads r to the end. Only the wait for the first bytes is bounded:
// when nothing arrives within timeout it gives up with core.ErrNoData, once
// data flows it is read to EOF however long that takes. A zero timeout uses
// DefaultTimeout.
func ReadStdin(ctx context.Context, r io.Reader, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	first, err := readFirst(ctx, r, timeout)
	if errors.Is(err, io.EOF) {
		return string(first), nil
	}
	if err != nil {
		return "", err
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(first) + string(rest), nil
}

// readFirst waits for the first chunk of r. On timeout or cancellation r is
// closed when it is an io.Closer, so the pending read returns.
func readFirst(ctx context.Context, r io.Reader, timeout time.Duration) ([]byte, error) {
	type chunk struct {
		data []byte
		err  error
	}
	done := make(chan chunk, 1)
	go func() {
		buf := make([]byte, firstReadSize)
		for {
			n, err := r.Read(buf)
			if n > 0 || err != nil {
				done <- chunk{buf[:n], err}
				return
			}
		}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		release(r)
		return nil, ctx.Err()
	case <-timer.C:
		release(r)
		return nil, fmt.Errorf("%w: nothing on stdin after %s", core.ErrNoData, timeout)
	case result := <-done:
		return result.data, result.err
	}
}

func release(r io.Reader) {
	if closer, ok := r.(io.Closer); ok {
		_ = closer.Close()
	}
}

// ParseTimeout parses a duration such as "3s", "500ms" or "1m30s". An empty
// value gives DefaultTimeout.
func ParseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTimeout, nil
	}

	timeout, err := str2duration.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("stdin timeout %q: %w", raw, err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("stdin timeout %q must be positive", raw)
	}
	return timeout, nil
}
