// Package zapbridge lets zap loggers write through NLog handlers.
//
// Zap fields become the entry's map payload, so a pattern layout can
// select them with %K{key} the same way it does for entries logged via
// InfoMap:
//
//	h := handler.NewConsoleHandler(handler.ConsoleConfig{Formatter: layout})
//	log := zap.New(zapbridge.NewCore(h, zapbridge.EnablerFor(core.InfoLevel)))
//	log.Info("login", zap.String("user", "alice"))
package zapbridge

import (
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlog/core"
	"github.com/philipp01105/nlog/handler"
)

// Reserved payload keys for entry metadata zap carries outside fields.
const (
	LoggerKey = "logger"
	StackKey  = "stacktrace"
)

// Core is a zapcore.Core backed by an NLog handler.
type Core struct {
	zapcore.LevelEnabler
	handler handler.Handler
	fields  []zapcore.Field
}

var _ zapcore.Core = (*Core)(nil)

// NewCore wraps h. Entries below enab are dropped by Check.
func NewCore(h handler.Handler, enab zapcore.LevelEnabler) *Core {
	return &Core{LevelEnabler: enab, handler: h}
}

// NewLogger is shorthand for zap.New(NewCore(h, EnablerFor(level)), opts...).
func NewLogger(h handler.Handler, level core.Level, opts ...zap.Option) *zap.Logger {
	return zap.New(NewCore(h, EnablerFor(level)), opts...)
}

// With returns a core that adds fields to every entry.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

// Check adds c to ce when the entry's level is enabled.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts ent and fields into an NLog entry and hands it to the
// handler. Entries above error level are synced before returning.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	entry.Time = ent.Time
	entry.Level = LevelFromZap(ent.Level)
	entry.Message = ent.Message
	entry.Payload = c.payload(ent, fields)
	if ent.Caller.Defined {
		entry.Caller = core.CallerInfo{
			File:      ent.Caller.File,
			ShortFile: filepath.Base(ent.Caller.File),
			Line:      ent.Caller.Line,
			Function:  ent.Caller.Function,
			Defined:   true,
		}
	}

	err := c.handler.Handle(entry)
	if err == nil {
		if rc, ok := c.handler.(interface{ CanRecycleEntry() bool }); ok && rc.CanRecycleEntry() {
			core.PutEntry(entry)
		}
	}
	if ent.Level > zapcore.ErrorLevel {
		err = multierr.Append(err, c.Sync())
	}
	return err
}

// payload encodes the context and call fields into a map message.
// Later fields win on duplicate keys.
func (c *Core) payload(ent zapcore.Entry, fields []zapcore.Field) core.Message {
	if len(c.fields) == 0 && len(fields) == 0 && ent.LoggerName == "" && ent.Stack == "" {
		return nil
	}

	enc := zapcore.NewMapObjectEncoder()
	for i := range c.fields {
		c.fields[i].AddTo(enc)
	}
	for i := range fields {
		fields[i].AddTo(enc)
	}

	values := make(map[string]string, len(enc.Fields)+2)
	for k, v := range enc.Fields {
		values[k] = stringify(v)
	}
	if ent.LoggerName != "" {
		values[LoggerKey] = ent.LoggerName
	}
	if ent.Stack != "" {
		values[StackKey] = ent.Stack
	}
	return core.NewMapMessage(values)
}

func stringify(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Sync flushes the handler when it supports it.
func (c *Core) Sync() error {
	if s, ok := c.handler.(handler.Syncer); ok {
		return s.Sync()
	}
	return nil
}
