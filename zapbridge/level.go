package zapbridge

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlog/core"
)

// LevelFromZap maps a zap level onto the nearest NLog level. DPanic
// maps to Panic.
func LevelFromZap(l zapcore.Level) core.Level {
	switch {
	case l <= zapcore.DebugLevel:
		return core.DebugLevel
	case l == zapcore.InfoLevel:
		return core.InfoLevel
	case l == zapcore.WarnLevel:
		return core.WarnLevel
	case l == zapcore.ErrorLevel:
		return core.ErrorLevel
	case l == zapcore.FatalLevel:
		return core.FatalLevel
	default:
		return core.PanicLevel
	}
}

// LevelToZap maps an NLog level onto zap.
func LevelToZap(l core.Level) zapcore.Level {
	switch l {
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	case core.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.PanicLevel
	}
}

// EnablerFor enables zap levels at or above the given NLog level.
func EnablerFor(level core.Level) zapcore.LevelEnabler {
	return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return LevelFromZap(l) >= level
	})
}
