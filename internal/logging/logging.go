// Package logging builds the process logger: a logr.Logger backed by zap.
//
// Verbosity follows logr: V(0) is info, V(DEBUG) and V(TRACE) are enabled by
// the "debug" and "trace" levels respectively. zapr maps V(n) to zap level -n.
package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used with logger.V(...).
const (
	DEBUG = 1
	TRACE = 2
)

// ErrUnknownLevel is returned for a level name New does not recognize.
var ErrUnknownLevel = errors.New("logging: unknown level")

// Verbosity maps a level name to a logr verbosity. Accepted names are
// "error", "info" (or empty), "debug" and "trace".
func Verbosity(level string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return 0, nil
	case "debug":
		return DEBUG, nil
	case "trace":
		return TRACE, nil
	case "error":
		return -int(zapcore.ErrorLevel), nil
	}

	return 0, fmt.Errorf("%q: %w", level, ErrUnknownLevel)
}

// New returns a logger writing to stderr. development selects zap's console
// encoder and stack traces on warnings; otherwise JSON is emitted.
func New(level string, development bool) (logr.Logger, error) {
	v, err := Verbosity(level)
	if err != nil {
		return logr.Discard(), err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-v))

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("logging: build zap logger: %w", err)
	}

	return zapr.NewLogger(zl), nil
}
