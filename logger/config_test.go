package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
)

func TestConfigFromMap(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]interface{}{
		"level":       "warn",
		"pattern":     "%p %K%n",
		"charset":     "latin1",
		"async":       "true",
		"buffer_size": 64,
	})
	require.NoError(t, err)

	want := DefaultConfig()
	want.Level = WarnLevel
	want.Pattern = "%p %K%n"
	want.Charset = "latin1"
	want.Async = true
	want.BufferSize = 64
	assert.Equal(t, want, cfg)
}

func TestConfigFromMap_Errors(t *testing.T) {
	_, err := ConfigFromMap(map[string]interface{}{"level": "loud"})
	assert.ErrorIs(t, err, core.ErrUnknownLevel)

	_, err = ConfigFromMap(map[string]interface{}{"colour": "red"})
	assert.ErrorContains(t, err, "colour")
}

func TestNew_PatternToWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Pattern = "%p %m %K{city}%n"
	cfg.Charset = "ISO-8859-1"
	cfg.Writer = &buf

	log, err := New(cfg)
	require.NoError(t, err)

	log.Debug("dropped")
	log.InfoMap("moved", Map("city", "Zürich"))
	require.NoError(t, log.Close())

	assert.Equal(t, []byte("INFO moved Z\xfcrich\n"), buf.Bytes())
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: DebugLevel, Format: "json", Writer: &buf})
	require.NoError(t, err)

	log.DebugMap("m", Map("a", "1"))
	assert.Contains(t, buf.String(), `"data":{"a":"1"}`)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg, err := ConfigFromMap(map[string]interface{}{
		"file":    path,
		"pattern": "%m|%K%n",
		"async":   true,
	})
	require.NoError(t, err)

	log, err := New(cfg)
	require.NoError(t, err)
	log.InfoMap("saved", Map("k", "v"))
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved|{k=v}\n", string(data))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{Format: "xml"})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = New(Config{Charset: "klingon"})
	assert.ErrorIs(t, err, charset.ErrUnknown)

	_, err = New(Config{Pattern: "%"})
	assert.Error(t, err)
}
