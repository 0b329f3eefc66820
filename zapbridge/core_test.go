package zapbridge

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlog/core"
	"github.com/philipp01105/nlog/handler"
	"github.com/philipp01105/nlog/pattern"
)

// recorder keeps copies of every entry it is handed.
type recorder struct {
	mu      sync.Mutex
	entries []core.Entry
	err     error
	syncs   int
}

func (r *recorder) Handle(e *core.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return r.err
}

func (r *recorder) Close() error { return nil }

func (r *recorder) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncs++
	return nil
}

func (r *recorder) last(t *testing.T) core.Entry {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.entries)
	return r.entries[len(r.entries)-1]
}

func payload(t *testing.T, e core.Entry) *core.MapMessage {
	t.Helper()
	m, ok := e.MapData()
	require.True(t, ok, "entry has no map payload")
	return m
}

func TestCore_WriteFields(t *testing.T) {
	rec := &recorder{}
	log := zap.New(NewCore(rec, zapcore.DebugLevel))

	log.Info("login",
		zap.String("user", "alice"),
		zap.Int("attempt", 2),
		zap.Bool("ok", true),
		zap.Duration("took", 1500*time.Millisecond),
		zap.Error(errors.New("boom")),
	)

	e := rec.last(t)
	assert.Equal(t, core.InfoLevel, e.Level)
	assert.Equal(t, "login", e.Message)
	assert.Equal(t, "{attempt=2, error=boom, ok=true, took=1.5s, user=alice}", payload(t, e).String())
}

func TestCore_NoFieldsNoPayload(t *testing.T) {
	rec := &recorder{}
	log := zap.New(NewCore(rec, zapcore.DebugLevel))

	log.Warn("plain")

	e := rec.last(t)
	assert.Nil(t, e.Payload)
	assert.Equal(t, core.WarnLevel, e.Level)
}

func TestCore_WithFields(t *testing.T) {
	rec := &recorder{}
	base := zap.New(NewCore(rec, zapcore.DebugLevel))
	child := base.With(zap.String("svc", "api"), zap.String("user", "ctx"))

	child.Info("a", zap.String("user", "call"))
	assert.Equal(t, "{svc=api, user=call}", payload(t, rec.last(t)).String())

	base.Info("b", zap.String("k", "v"))
	assert.Equal(t, "{k=v}", payload(t, rec.last(t)).String(), "parent must not see child fields")
}

func TestCore_NamedAndNested(t *testing.T) {
	rec := &recorder{}
	log := zap.New(NewCore(rec, zapcore.DebugLevel)).Named("http")

	log.Info("req", zap.Strings("tags", []string{"a", "b"}))

	m := payload(t, rec.last(t))
	v, ok := m.Get(LoggerKey)
	require.True(t, ok)
	assert.Equal(t, "http", v)
	v, ok = m.Get("tags")
	require.True(t, ok)
	assert.Equal(t, "[a b]", v)
}

func TestCore_Check(t *testing.T) {
	rec := &recorder{}
	log := zap.New(NewCore(rec, EnablerFor(core.WarnLevel)))

	log.Debug("no")
	log.Info("no")
	log.Warn("yes")
	log.Error("yes")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.entries, 2)
	assert.Equal(t, core.WarnLevel, rec.entries[0].Level)
	assert.Equal(t, core.ErrorLevel, rec.entries[1].Level)
}

func TestCore_Caller(t *testing.T) {
	rec := &recorder{}
	log := zap.New(NewCore(rec, zapcore.DebugLevel), zap.AddCaller())

	log.Info("here")

	e := rec.last(t)
	assert.True(t, e.Caller.Defined)
	assert.Equal(t, "core_test.go", e.Caller.ShortFile)
	assert.NotZero(t, e.Caller.Line)
}

func TestCore_WriteErrorAndSync(t *testing.T) {
	errHandle := errors.New("handle failed")
	rec := &recorder{err: errHandle}
	c := NewCore(rec, zapcore.DebugLevel)

	err := c.Write(zapcore.Entry{Level: zapcore.InfoLevel, Message: "x"}, nil)
	assert.ErrorIs(t, err, errHandle)
	assert.Zero(t, rec.syncs)

	rec.err = nil
	require.NoError(t, c.Write(zapcore.Entry{Level: zapcore.DPanicLevel, Message: "x"}, nil))
	assert.Equal(t, 1, rec.syncs, "entries above error level are synced")
	assert.Equal(t, core.PanicLevel, rec.last(t).Level)

	require.NoError(t, c.Sync())
	assert.Equal(t, 2, rec.syncs)
}

func TestCore_SyncWithoutSyncer(t *testing.T) {
	h := handler.NewConsoleHandler(handler.ConsoleConfig{Writer: &bytes.Buffer{}})
	assert.NoError(t, NewCore(h, zapcore.InfoLevel).Sync())
}

func TestCore_PatternLayout(t *testing.T) {
	var buf bytes.Buffer
	layout := pattern.MustNewLayout(pattern.Config{Pattern: "%p %m %K{user} %K%n", Charset: "latin1"})
	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:    &buf,
		Formatter: layout,
		Charset:   layout.Charset(),
	})
	log := NewLogger(h, core.InfoLevel)

	log.Info("login", zap.String("user", "josé"), zap.Int("id", 7))
	log.Debug("filtered")
	require.NoError(t, log.Sync())

	assert.Equal(t, []byte("INFO login jos\xe9 {id=7, user=jos\xe9}\n"), buf.Bytes())
}

func TestLevelMapping(t *testing.T) {
	tests := []struct {
		zap  zapcore.Level
		nlog core.Level
	}{
		{zapcore.DebugLevel, core.DebugLevel},
		{zapcore.InfoLevel, core.InfoLevel},
		{zapcore.WarnLevel, core.WarnLevel},
		{zapcore.ErrorLevel, core.ErrorLevel},
		{zapcore.DPanicLevel, core.PanicLevel},
		{zapcore.PanicLevel, core.PanicLevel},
		{zapcore.FatalLevel, core.FatalLevel},
	}

	for _, tt := range tests {
		t.Run(tt.zap.String(), func(t *testing.T) {
			assert.Equal(t, tt.nlog, LevelFromZap(tt.zap))
		})
	}

	for _, l := range []core.Level{core.DebugLevel, core.InfoLevel, core.WarnLevel, core.ErrorLevel, core.FatalLevel, core.PanicLevel} {
		assert.Equal(t, l, LevelFromZap(LevelToZap(l)), l.String())
	}
}

func TestEnablerFor(t *testing.T) {
	enab := EnablerFor(core.ErrorLevel)
	assert.False(t, enab.Enabled(zapcore.WarnLevel))
	assert.True(t, enab.Enabled(zapcore.ErrorLevel))
	assert.True(t, enab.Enabled(zapcore.DPanicLevel))
	assert.True(t, enab.Enabled(zapcore.FatalLevel))
}
