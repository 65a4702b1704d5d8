package parser

import "go.uber.org/zap"

// DefaultMaxRepeat is the largest repeat count accepted for a single row,
// column or cell declaration. Larger declarations are dropped so that a few
// bytes of XML cannot request an arbitrarily large grid.
const DefaultMaxRepeat = 10 * 1000

// Config carries the settings shared by the decoders of one document.
type Config struct {
	// MaxRepeat overrides DefaultMaxRepeat when positive.
	MaxRepeat int
	// Log receives diagnostics for recoverable problems. Nil disables logging.
	Log *zap.Logger
}

func (c Config) maxRepeat() int {
	if c.MaxRepeat > 0 {
		return c.MaxRepeat
	}
	return DefaultMaxRepeat
}

func (c Config) log() *zap.Logger {
	if c.Log != nil {
		return c.Log
	}
	return zap.NewNop()
}
