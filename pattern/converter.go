package pattern

import (
	"bytes"
	"strings"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
)

// Converter renders one piece of an entry. Converters are created once
// per layout token and shared by every goroutine formatting through
// that layout, so implementations must be safe for concurrent use.
//
// A converter that has nothing to contribute for an entry writes
// nothing; it never reports an error for data it does not handle.
type Converter interface {
	// Name identifies the converter instance, e.g. "MAP{user}".
	Name() string
	// Style is the converter family, e.g. "map".
	Style() string
	// Format appends the text rendering of entry to dst.
	Format(entry *core.Entry, dst *strings.Builder)
}

// BinaryConverter is an optional interface for converters that can
// produce encoded bytes without going through an intermediate string.
// Converters that do not implement it are encoded from their Format
// output.
type BinaryConverter interface {
	// FormatBinary appends the rendering of entry, encoded under cs, to
	// dst. A nil cs means UTF-8.
	FormatBinary(entry *core.Entry, dst *bytes.Buffer, cs *charset.Charset) error
}

// Configured is implemented by converters that carry padding rules.
type Configured interface {
	FormattingInfo() FormattingInfo
}

// base holds the fields shared by every converter.
type base struct {
	name  string
	style string
	info  FormattingInfo
}

func (b *base) Name() string                   { return b.name }
func (b *base) Style() string                  { return b.style }
func (b *base) FormattingInfo() FormattingInfo { return b.info }

// formatBinary writes c's rendering of entry into dst, preferring the
// converter's own byte path.
func formatBinary(c Converter, entry *core.Entry, dst *bytes.Buffer, cs *charset.Charset) error {
	if bc, ok := c.(BinaryConverter); ok {
		return bc.FormatBinary(entry, dst, cs)
	}
	var sb strings.Builder
	c.Format(entry, &sb)
	return appendEncoded(dst, sb.String(), cs)
}

func appendEncoded(dst *bytes.Buffer, s string, cs *charset.Charset) error {
	if cs.IsUTF8() {
		dst.WriteString(s)
		return nil
	}
	out, err := cs.AppendEncode(dst.AvailableBuffer(), s)
	if err != nil {
		return err
	}
	dst.Write(out)
	return nil
}
