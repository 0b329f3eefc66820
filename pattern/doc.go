// Package pattern implements pattern layouts: a format string such as
//
//	%d{ISO8601} [%-5p] %m %MAP{request_id}%n
//
// is parsed once into a list of converters, and every entry is rendered
// by running those converters in order.
//
// Each converter has two output paths. Format appends text to a
// strings.Builder; FormatBinary (the optional BinaryConverter
// interface) appends bytes encoded under a charset.Charset. Layout
// uses the text path for BufferFormatter and the byte path for
// EncodingFormatter, so one layout can feed a UTF-8 console and a
// Latin-1 file in the same pass.
//
// Converters never fail on data they do not understand. The map
// converter (%K, %map, %MAP) writes nothing for entries without a map
// payload and nothing for a key the map does not contain. Only the
// charset encoder can return an error, and it is passed through
// unchanged.
//
// The map converter keeps a single-entry cache per output path,
// holding the last rendered map text and the last encoded bytes with
// their charset. Slots are swapped atomically as immutable snapshots,
// so a converter shared across goroutines never needs a lock and never
// returns a rendering of someone else's data.
package pattern
