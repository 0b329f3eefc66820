package pattern

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
	"github.com/philipp01105/nlog/formatter"
)

// DefaultPattern is used when Config.Pattern is empty.
const DefaultPattern = "%d [%p] %m%n"

// Layout formats entries through a parsed pattern. It is immutable and
// safe for concurrent use; converter caches are the only shared state
// and they tolerate concurrent access.
type Layout struct {
	pattern    string
	converters []Converter
	infos      []FormattingInfo
	charset    *charset.Charset
}

var (
	_ formatter.Formatter         = (*Layout)(nil)
	_ formatter.WriterFormatter   = (*Layout)(nil)
	_ formatter.BufferFormatter   = (*Layout)(nil)
	_ formatter.EncodingFormatter = (*Layout)(nil)
)

// NewLayout parses cfg.Pattern and resolves cfg.Charset.
func NewLayout(cfg Config) (*Layout, error) {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	cs, err := charset.Lookup(cfg.Charset)
	if err != nil {
		return nil, err
	}
	converters, err := Parse(cfg.Pattern, cfg.Registry)
	if err != nil {
		return nil, err
	}
	l := &Layout{
		pattern:    cfg.Pattern,
		converters: converters,
		infos:      make([]FormattingInfo, len(converters)),
		charset:    cs,
	}
	for i, c := range converters {
		l.infos[i] = DefaultFormattingInfo()
		if cc, ok := c.(Configured); ok {
			l.infos[i] = cc.FormattingInfo()
		}
	}
	return l, nil
}

// MustNewLayout is like NewLayout but panics on error.
func MustNewLayout(cfg Config) *Layout {
	l, err := NewLayout(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

// Pattern returns the source pattern.
func (l *Layout) Pattern() string { return l.pattern }

// Charset returns the charset used by Format and FormatTo.
func (l *Layout) Charset() *charset.Charset { return l.charset }

// Converters returns the parsed converters in pattern order.
func (l *Layout) Converters() []Converter {
	out := make([]Converter, len(l.converters))
	copy(out, l.converters)
	return out
}

// AppendText appends the text rendering of entry to dst.
func (l *Layout) AppendText(entry *core.Entry, dst *strings.Builder) {
	for i, c := range l.converters {
		info := l.infos[i]
		if info.IsDefault() {
			c.Format(entry, dst)
			continue
		}
		var field strings.Builder
		c.Format(entry, &field)
		dst.WriteString(info.Apply(field.String()))
	}
}

// Text returns the text rendering of entry.
func (l *Layout) Text(entry *core.Entry) string {
	var sb strings.Builder
	l.AppendText(entry, &sb)
	return sb.String()
}

// FormatEncoded appends the rendering of entry encoded under cs to buf
// (implements formatter.EncodingFormatter). Encoder errors are returned
// as-is; buf may hold a partial line in that case.
//
// Converters encode their own fragments only when cs is stateless;
// otherwise the rendered line is encoded in one piece.
func (l *Layout) FormatEncoded(entry *core.Entry, buf *bytes.Buffer, cs *charset.Charset) error {
	if !cs.Stateless() {
		var sb strings.Builder
		l.AppendText(entry, &sb)
		return appendEncoded(buf, sb.String(), cs)
	}
	for i, c := range l.converters {
		info := l.infos[i]
		if info.IsDefault() {
			if err := formatBinary(c, entry, buf, cs); err != nil {
				return err
			}
			continue
		}
		var field strings.Builder
		c.Format(entry, &field)
		if err := appendEncoded(buf, info.Apply(field.String()), cs); err != nil {
			return err
		}
	}
	return nil
}

// FormatEntry appends the UTF-8 text rendering of entry to buf
// (implements formatter.BufferFormatter).
func (l *Layout) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	var sb strings.Builder
	l.AppendText(entry, &sb)
	buf.WriteString(sb.String())
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}

// Format encodes entry under the layout charset.
func (l *Layout) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := l.FormatEncoded(entry, buf, l.charset); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// FormatTo encodes entry under the layout charset and writes it to w.
func (l *Layout) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := l.FormatEncoded(entry, buf, l.charset); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
