package pattern

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
)

// DefaultDateLayout is used by %d when no option is given.
const DefaultDateLayout = "2006-01-02 15:04:05.000"

// named date layouts accepted as %d options
var dateLayouts = map[string]string{
	"ISO8601":  "2006-01-02T15:04:05.000",
	"RFC3339":  time.RFC3339,
	"DEFAULT":  DefaultDateLayout,
	"ABSOLUTE": "15:04:05.000",
}

// literalConverter writes fixed text between tokens.
type literalConverter struct {
	base
	text string
}

func newLiteralConverter(text string) *literalConverter {
	return &literalConverter{base: base{name: "Literal", style: "literal", info: DefaultFormattingInfo()}, text: text}
}

func (c *literalConverter) Format(_ *core.Entry, dst *strings.Builder) {
	dst.WriteString(c.text)
}

func (c *literalConverter) FormatBinary(_ *core.Entry, dst *bytes.Buffer, cs *charset.Charset) error {
	return appendEncoded(dst, c.text, cs)
}

// levelConverter writes the level name.
type levelConverter struct{ base }

func newLevelConverter(_ []string, info FormattingInfo) Converter {
	return &levelConverter{base{name: "Level", style: "level", info: info}}
}

func (c *levelConverter) Format(entry *core.Entry, dst *strings.Builder) {
	dst.WriteString(entry.Level.String())
}

// messageConverter writes the formatted message.
type messageConverter struct{ base }

func newMessageConverter(_ []string, info FormattingInfo) Converter {
	return &messageConverter{base{name: "Message", style: "message", info: info}}
}

func (c *messageConverter) Format(entry *core.Entry, dst *strings.Builder) {
	dst.WriteString(entry.FormattedMessage())
}

// dateConverter writes the entry time. The option is a Go time layout,
// one of the named layouts, or UNIX_MILLIS.
type dateConverter struct {
	base
	layout string
	millis bool
	utc    bool
}

func newDateConverter(options []string, info FormattingInfo) Converter {
	c := &dateConverter{base: base{name: "Date", style: "date", info: info}, layout: DefaultDateLayout}
	if len(options) > 0 && options[0] != "" {
		switch opt := options[0]; {
		case opt == "UNIX_MILLIS":
			c.millis = true
		case dateLayouts[opt] != "":
			c.layout = dateLayouts[opt]
		default:
			c.layout = opt
		}
	}
	if len(options) > 1 && strings.EqualFold(options[1], "UTC") {
		c.utc = true
	}
	return c
}

func (c *dateConverter) Format(entry *core.Entry, dst *strings.Builder) {
	t := entry.Time
	if c.utc {
		t = t.UTC()
	}
	var scratch [64]byte
	if c.millis {
		dst.Write(strconv.AppendInt(scratch[:0], t.UnixMilli(), 10))
		return
	}
	dst.Write(t.AppendFormat(scratch[:0], c.layout))
}

// fileConverter writes the caller's short file name.
type fileConverter struct{ base }

func newFileConverter(_ []string, info FormattingInfo) Converter {
	return &fileConverter{base{name: "File", style: "file", info: info}}
}

func (c *fileConverter) Format(entry *core.Entry, dst *strings.Builder) {
	if entry.Caller.Defined {
		dst.WriteString(entry.Caller.ShortFile)
	}
}

// lineConverter writes the caller's line number.
type lineConverter struct{ base }

func newLineConverter(_ []string, info FormattingInfo) Converter {
	return &lineConverter{base{name: "Line", style: "line", info: info}}
}

func (c *lineConverter) Format(entry *core.Entry, dst *strings.Builder) {
	if entry.Caller.Defined {
		var scratch [20]byte
		dst.Write(strconv.AppendInt(scratch[:0], int64(entry.Caller.Line), 10))
	}
}

func newNewlineConverter(_ []string, _ FormattingInfo) Converter {
	c := newLiteralConverter("\n")
	c.name, c.style = "Line Sep", "lineSep"
	return c
}

func newMapConverter(options []string, info FormattingInfo) Converter {
	return NewMapConverter(options, info)
}
