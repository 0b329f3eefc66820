package pattern

import (
	"bytes"
	"strings"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
)

// MapConverter renders the map payload of an entry. Without a key it
// writes every pair as {k1=v1, k2=v2}; with a key it writes only that
// key's value. Entries without a map payload, and maps missing the key,
// produce no output.
type MapConverter struct {
	base
	key    string
	hasKey bool
	cache  renderCache
}

// NewMapConverter creates a converter from the token options. Only the
// first option is used, as the key; it is not validated.
func NewMapConverter(options []string, info FormattingInfo) *MapConverter {
	c := &MapConverter{base: base{name: "MAP", style: "map", info: info}}
	if len(options) > 0 {
		c.key = options[0]
		c.hasKey = true
		c.name = "MAP{" + c.key + "}"
	}
	return c
}

// Key returns the selected key, if the converter has one.
func (c *MapConverter) Key() (string, bool) {
	return c.key, c.hasKey
}

// text resolves what the converter would output for entry.
func (c *MapConverter) text(entry *core.Entry) (string, bool) {
	m, ok := entry.MapData()
	if !ok {
		return "", false
	}
	if !c.hasKey {
		return c.cache.mapText(m), true
	}
	return m.Get(c.key)
}

// Format implements Converter.
func (c *MapConverter) Format(entry *core.Entry, dst *strings.Builder) {
	if s, ok := c.text(entry); ok {
		dst.WriteString(s)
	}
}

// FormatBinary implements BinaryConverter. Errors come only from the
// charset encoder.
func (c *MapConverter) FormatBinary(entry *core.Entry, dst *bytes.Buffer, cs *charset.Charset) error {
	s, ok := c.text(entry)
	if !ok {
		return nil
	}
	if cs.IsUTF8() {
		dst.WriteString(s)
		return nil
	}
	data, err := c.cache.encode(s, cs)
	if err != nil {
		return err
	}
	dst.Write(data)
	return nil
}
