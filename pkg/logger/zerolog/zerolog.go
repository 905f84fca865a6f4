package zerolog

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options controls the console output
type Options struct {
	Level      string
	TimeLayout string
	Colored    bool
	JSON       bool
}

// New builds a zerolog logger writing to out. Diagnostics go to stderr in the
// CLI so stdout stays free for piped documents.
func New(out io.Writer, opts Options) (*zerolog.Logger, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	if opts.JSON {
		log := zerolog.New(out).With().Timestamp().Logger()
		return &log, nil
	}

	output := zerolog.ConsoleWriter{
		Out:           out,
		NoColor:       !opts.Colored,
		TimeFormat:    opts.TimeLayout,
		FormatLevel:   formatLevel,
		FormatMessage: formatMessage,
		FormatCaller:  formatCaller,
		FormatTimestamp: func(i interface{}) string {
			return formatTimestamp(i, opts.TimeLayout)
		},
	}

	log := zerolog.New(output).With().Timestamp().CallerWithSkipFrameCount(3).Logger()
	return &log, nil
}

func formatLevel(i interface{}) string {
	switch i {
	case zerolog.LevelTraceValue, zerolog.LevelDebugValue:
		return term.Cyanf("[%s]", strings.ToUpper(i.(string)[:3]))
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WRN]")
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue:
		return term.Redf("[%s]", strings.ToUpper(i.(string)[:3]))
	default:
		return term.Whitef("[???]")
	}
}

func formatMessage(i interface{}) string {
	const width = 60

	msg, ok := i.(string)
	if !ok || msg == "" {
		return ">"
	}
	if len(msg) < width {
		msg += strings.Repeat(" ", width-len(msg))
	}
	return term.Whitef("> %s", msg)
}

func formatCaller(i interface{}) string {
	const fileWidth = 16

	name, ok := i.(string)
	if !ok || name == "" {
		return ""
	}

	file, line, found := strings.Cut(filepath.Base(name), ":")
	if !found {
		return name
	}
	if len(file) > fileWidth {
		file = file[:fileWidth]
	}
	return term.Yellowf("[%-*s:%4s]", fileWidth, file, line)
}

func formatTimestamp(i interface{}, layout string) string {
	raw, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	if ts, err := time.ParseInLocation(time.RFC3339, raw, time.Local); err == nil {
		raw = ts.In(time.Local).Format(layout)
	}
	return term.Cyanf("[%s]", raw)
}
