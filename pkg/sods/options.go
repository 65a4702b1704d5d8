// Package sods decodes OpenDocument spreadsheets.
package sods

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/hrk/sods/pkg/sods/parser"
)

// Options configures decoding behavior.
type Options struct {
	// Logger receives diagnostics about malformed attributes that were
	// skipped. If nil, nothing is logged.
	Logger *zap.Logger
	// MaxRepeatCount is the largest row, column or cell repeat count that
	// is honoured. If zero, parser.DefaultMaxRepeat is used.
	MaxRepeatCount int
	// Locale is used when values are presented to people. Decoding itself
	// is locale independent.
	Locale language.Tag
}

// DefaultOptions returns default decoding options.
func DefaultOptions() Options {
	return Options{
		MaxRepeatCount: parser.DefaultMaxRepeat,
		Locale:         language.AmericanEnglish,
	}
}

// Log returns the configured logger or a no-op logger.
func (o Options) Log() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// MaxRepeat returns the effective repeat ceiling.
func (o Options) MaxRepeat() int {
	if o.MaxRepeatCount > 0 {
		return o.MaxRepeatCount
	}
	return parser.DefaultMaxRepeat
}

func (o Options) parserConfig() parser.Config {
	return parser.Config{
		MaxRepeat: o.MaxRepeat(),
		Log:       o.Log(),
	}
}
