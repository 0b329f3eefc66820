package logger

import (
	"errors"
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
	"github.com/philipp01105/nlog/formatter"
	"github.com/philipp01105/nlog/handler"
	"github.com/philipp01105/nlog/pattern"
)

// ErrUnknownFormat is returned by New for a Format other than
// "pattern", "text" or "json".
var ErrUnknownFormat = errors.New("logger: unknown format")

// Config describes a Logger declaratively, typically decoded from a
// configuration file with ConfigFromMap.
type Config struct {
	// Level is the minimum level (default: InfoLevel)
	Level core.Level `mapstructure:"level"`
	// Format selects the formatter: "pattern" (default), "text" or "json"
	Format string `mapstructure:"format"`
	// Pattern is the layout used by the pattern format
	Pattern string `mapstructure:"pattern"`
	// Charset is the IANA name output is encoded under (default: UTF-8)
	Charset     string `mapstructure:"charset"`
	Caller      bool   `mapstructure:"caller"`
	CoarseClock bool   `mapstructure:"coarse_clock"`

	// File switches output from Writer to a rotating file
	File       string `mapstructure:"file"`
	MaxSize    int64  `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`

	Async      bool `mapstructure:"async"`
	BufferSize int  `mapstructure:"buffer_size"`

	// Writer is used when File is empty (default: os.Stdout)
	Writer io.Writer `mapstructure:"-"`
}

// DefaultConfig returns the configuration ConfigFromMap starts from.
func DefaultConfig() Config {
	return Config{
		Level:   InfoLevel,
		Format:  "pattern",
		Pattern: pattern.DefaultPattern,
	}
}

// ConfigFromMap decodes raw over DefaultConfig. Levels are given by
// name; unknown keys are rejected.
func ConfigFromMap(raw map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("logger config: %w", err)
	}
	return cfg, nil
}

// New builds a Logger and its handler from cfg. The caller owns the
// returned Logger and must Close it.
func New(cfg Config) (*Logger, error) {
	cs, err := charset.Lookup(cfg.Charset)
	if err != nil {
		return nil, fmt.Errorf("logger config: %w", err)
	}

	var f formatter.Formatter
	switch cfg.Format {
	case "", "pattern":
		layout, err := pattern.NewLayout(pattern.Config{Pattern: cfg.Pattern, Charset: cfg.Charset})
		if err != nil {
			return nil, fmt.Errorf("logger config: %w", err)
		}
		f = layout
	case "text":
		f = formatter.NewTextFormatter(formatter.Config{IncludeCaller: cfg.Caller})
	case "json":
		f = formatter.NewJSONFormatter(formatter.Config{IncludeCaller: cfg.Caller})
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, cfg.Format)
	}

	async := handler.AsyncConfig{Async: cfg.Async, BufferSize: cfg.BufferSize}
	var h handler.Handler
	if cfg.File != "" {
		fh, err := handler.NewFileHandler(handler.FileConfig{
			Filename:    cfg.File,
			Formatter:   f,
			Charset:     cs,
			MaxSize:     cfg.MaxSize,
			MaxBackups:  cfg.MaxBackups,
			AsyncConfig: async,
		})
		if err != nil {
			return nil, fmt.Errorf("logger config: %w", err)
		}
		h = fh
	} else {
		h = handler.NewConsoleHandler(handler.ConsoleConfig{
			Writer:      cfg.Writer,
			Formatter:   f,
			Charset:     cs,
			AsyncConfig: async,
		})
	}

	return NewBuilder().
		WithHandler(h).
		WithLevel(cfg.Level).
		WithCaller(cfg.Caller).
		WithCoarseClock(cfg.CoarseClock).
		Build(), nil
}
