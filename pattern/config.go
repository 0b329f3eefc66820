package pattern

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config configures a Layout.
type Config struct {
	// Pattern is the conversion pattern (default: DefaultPattern)
	Pattern string `mapstructure:"pattern"`
	// Charset is the IANA name used by Format and FormatTo (default: UTF-8)
	Charset string `mapstructure:"charset"`
	// Registry resolves converter keys (default: NewRegistry())
	Registry *Registry `mapstructure:"-"`
}

// ConfigFromMap decodes a raw configuration map, as found in decoded
// JSON or HCL blocks. Unknown keys are rejected.
func ConfigFromMap(raw map[string]interface{}) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("pattern config: %w", err)
	}
	return cfg, nil
}
