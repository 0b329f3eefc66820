package pattern

import (
	"sync/atomic"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
)

// renderCache remembers the most recent rendering of a converter. Each
// slot holds an immutable snapshot that is replaced wholesale, so a
// reader either sees a complete snapshot for some source or nothing.
// Concurrent callers may overwrite each other's snapshot and recompute;
// they never get a result built from different data.
type renderCache struct {
	text    atomic.Pointer[textSnapshot]
	encoded atomic.Pointer[encodedSnapshot]
}

type textSnapshot struct {
	source *core.MapMessage
	text   string
}

type encodedSnapshot struct {
	text    string
	charset string
	data    []byte
}

// mapText returns the {k=v, ...} rendering of m.
func (c *renderCache) mapText(m *core.MapMessage) string {
	if s := c.text.Load(); s != nil && (s.source == m || s.source.Equal(m)) {
		return s.text
	}
	text := m.String()
	c.text.Store(&textSnapshot{source: m, text: text})
	return text
}

// encode returns text encoded under cs. The returned slice is shared
// with the cache and must not be modified.
func (c *renderCache) encode(text string, cs *charset.Charset) ([]byte, error) {
	name := cs.Name()
	if s := c.encoded.Load(); s != nil && s.charset == name && s.text == text {
		return s.data, nil
	}
	data, err := cs.Encode(text)
	if err != nil {
		return nil, err
	}
	c.encoded.Store(&encodedSnapshot{text: text, charset: name, data: data})
	return data, nil
}
