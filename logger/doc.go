// Package logger is the public API of NLog. Most users only need to
// import this package.
//
// A Logger is immutable after construction. Fields, level, clock and
// handler are set once via the Builder, so a Logger is safe for
// concurrent use without locking on the read path.
//
// The package initializes a default Logger (async, InfoLevel, text
// format to stdout) in init(). The package-level functions Info,
// Error, Debugf, etc. delegate to this default instance, so simple
// programs can log without any setup:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithCaller(true).
//	    Build()
//
// Child loggers with extra fields are created via With, which returns
// a new Logger that shares the same handler but carries additional
// default fields:
//
//	reqLog := log.With(logger.String("request_id", id))
//
// Structured key/value data can also travel as a map payload, which
// pattern layouts render with %K (every pair) or %K{key} (one value):
//
//	log.InfoMap("login", logger.Map("user", "alice", "method", "sso"))
//
// Level checks happen before any allocation, so filtered-out
// messages cost only a single integer comparison.
package logger
