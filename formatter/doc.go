// Package formatter defines how log entries are serialized into bytes.
//
// It exposes the Formatter interface, which returns a []byte, and three
// optional interfaces handlers probe for at construction time:
// WriterFormatter writes straight to an io.Writer, BufferFormatter
// fills a caller-owned bytes.Buffer, and EncodingFormatter encodes the
// output under a charset.Charset for sinks that are not UTF-8.
//
// Both built-in formatters (TextFormatter and JSONFormatter) implement
// all of them. They use a pooled bytes.Buffer internally and rely on
// Go's Append-style functions (time.AppendFormat, strconv.AppendInt)
// to avoid per-call allocations. Map payloads are rendered inline as
// {k1=v1, k2=v2} by the text formatter and as a nested "data" object
// by the JSON formatter. Pattern layouts live in the pattern package.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
