// Package logging builds the zap logger used for diagnostics.
//
// Diagnostics go to stderr so that stdout carries only the report (or the
// MCP protocol when serving).
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported encodings
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options controls logger construction
type Options struct {
	Format  string // console (default) or json
	Verbose bool   // enable debug level
}

// New returns a logger writing to w
func New(w io.Writer, opts Options) (*zap.Logger, error) {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.CallerKey = ""
	enc.StacktraceKey = ""

	var encoder zapcore.Encoder
	switch opts.Format {
	case "", FormatConsole:
		encoder = zapcore.NewConsoleEncoder(enc)
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(enc)
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", opts.Format, FormatConsole, FormatJSON)
	}

	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core), nil
}
