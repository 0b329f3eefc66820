// Package charset resolves character encodings by their IANA name and
// encodes Go strings under them.
//
// Go strings are UTF-8, so encoding under UTF8 is the identity and
// never allocates. Other charsets go through golang.org/x/text;
// runes a charset cannot represent are replaced with the charset's
// substitution byte rather than failing the whole write.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUnknown is returned when a name matches no IANA charset.
	ErrUnknown = errors.New("charset: unknown charset")
	// ErrUnsupported is returned for registered charsets that have no encoder.
	ErrUnsupported = errors.New("charset: unsupported charset")
)

// Charset is an immutable, named character encoding. A nil *Charset
// behaves like UTF8.
type Charset struct {
	name      string
	enc       encoding.Encoding
	stateless bool
}

// UTF8 is the identity charset.
var UTF8 = &Charset{name: "UTF-8", stateless: true}

// Lookup returns the charset registered under name. Names are matched
// case-insensitively and aliases are accepted ("latin1", "utf8").
func Lookup(name string) (*Charset, error) {
	if name == "" || strings.EqualFold(name, UTF8.name) || strings.EqualFold(name, "utf8") {
		return UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	if enc == unicode.UTF8 {
		return UTF8, nil
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = name
	}
	c := &Charset{name: canonical, enc: enc}
	c.stateless = c.splits()
	return c, nil
}

// splits reports whether encoding two strings separately gives the
// same bytes as encoding their concatenation. Encoders that emit a
// byte order mark or shift sequences per call do not.
func (c *Charset) splits() bool {
	one, err1 := c.Encode("a")
	two, err2 := c.Encode("aa")
	if err1 != nil || err2 != nil {
		return false
	}
	return string(one)+string(one) == string(two)
}

// MustLookup is like Lookup but panics on error. It is meant for
// package-level variables.
func MustLookup(name string) *Charset {
	cs, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return cs
}

// Name returns the canonical IANA name.
func (c *Charset) Name() string {
	if c == nil {
		return UTF8.name
	}
	return c.name
}

// IsUTF8 reports whether encoding is the identity.
func (c *Charset) IsUTF8() bool {
	return c == nil || c.enc == nil
}

// Stateless reports whether fragments may be encoded one at a time and
// concatenated. When it is false a whole line must be encoded at once.
func (c *Charset) Stateless() bool {
	return c == nil || c.enc == nil || c.stateless
}

// String implements fmt.Stringer.
func (c *Charset) String() string { return c.Name() }

// AppendEncode appends s encoded under c to dst.
func (c *Charset) AppendEncode(dst []byte, s string) ([]byte, error) {
	if c.IsUTF8() {
		return append(dst, s...), nil
	}
	// Encoders carry transform state; one per call keeps c shareable.
	out, err := encoding.ReplaceUnsupported(c.enc.NewEncoder()).String(s)
	if err != nil {
		return dst, err
	}
	return append(dst, out...), nil
}

// Encode returns s encoded under c.
func (c *Charset) Encode(s string) ([]byte, error) {
	return c.AppendEncode(make([]byte, 0, len(s)), s)
}
