// Package logging builds the zap logger shared by every step.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls the logger built by New.
type Options struct {
	Level    string // debug, info, warn, error; empty means info
	Encoding string // console or json; empty means console
	Debug    bool   // forces debug level
}

// New builds a logger writing info and below to stdout and errors to stderr, which is how
// workflow runners separate step logs from annotations.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encoding := strings.ToLower(opts.Encoding)
	if encoding == "" {
		encoding = "console"
	}
	if encoding != "console" && encoding != "json" {
		return nil, fmt.Errorf("invalid log encoding %q", opts.Encoding)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if encoding == "console" {
		// CI logs carry their own timestamps
		encCfg.TimeKey = ""
		encCfg.CallerKey = ""
	} else {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var enc zapcore.Encoder
	if encoding == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	stdout, closeOut, err := zap.Open("stdout")
	if err != nil {
		return nil, err
	}
	stderr, _, err := zap.Open("stderr")
	if err != nil {
		closeOut()
		return nil, err
	}

	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= level && l < zapcore.ErrorLevel })
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= level && l >= zapcore.ErrorLevel })

	core := zapcore.NewTee(
		zapcore.NewCore(enc, stdout, low),
		zapcore.NewCore(enc.Clone(), stderr, high),
	)
	return zap.New(core), nil
}
