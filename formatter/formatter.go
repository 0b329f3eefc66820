package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it directly to the writer
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// EncodingFormatter is an optional interface for formatters that can
// encode output under a caller-chosen charset. Handlers configured
// with a charset prefer it over the other paths.
type EncodingFormatter interface {
	// FormatEncoded appends the entry, encoded under cs, to buf.
	FormatEncoded(entry *core.Entry, buf *bytes.Buffer, cs *charset.Charset) error
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
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

// encodeTo formats entry with fill and encodes the result into buf.
func encodeTo(buf *bytes.Buffer, cs *charset.Charset, entry *core.Entry, fill func(*core.Entry, *bytes.Buffer)) error {
	if cs.IsUTF8() {
		fill(entry, buf)
		return nil
	}
	tmp := getBuffer()
	defer putBuffer(tmp)
	fill(entry, tmp)
	out, err := cs.AppendEncode(buf.AvailableBuffer(), tmp.String())
	if err != nil {
		return err
	}
	buf.Write(out)
	return nil
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
