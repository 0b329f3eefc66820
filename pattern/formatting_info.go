package pattern

import (
	"strings"
	"unicode/utf8"
)

// FormattingInfo holds the width rules of a pattern token such as
// %-10.20m. Lengths are counted in runes. A zero MaxLength means no
// limit.
type FormattingInfo struct {
	// LeftAlign pads on the right instead of the left.
	LeftAlign bool
	// LeftTruncate drops leading runes when MaxLength is exceeded;
	// otherwise trailing runes are dropped.
	LeftTruncate bool
	MinLength    int
	MaxLength    int
}

// DefaultFormattingInfo applies no padding or truncation.
func DefaultFormattingInfo() FormattingInfo {
	return FormattingInfo{LeftTruncate: true}
}

// IsDefault reports whether f leaves text untouched.
func (f FormattingInfo) IsDefault() bool {
	return f.MinLength <= 0 && f.MaxLength <= 0
}

// Apply pads or truncates s.
func (f FormattingInfo) Apply(s string) string {
	if f.IsDefault() {
		return s
	}
	n := utf8.RuneCountInString(s)
	if f.MaxLength > 0 && n > f.MaxLength {
		if f.LeftTruncate {
			s = dropRunes(s, n-f.MaxLength)
		} else {
			s = keepRunes(s, f.MaxLength)
		}
		n = f.MaxLength
	}
	if n >= f.MinLength {
		return s
	}
	pad := strings.Repeat(" ", f.MinLength-n)
	if f.LeftAlign {
		return s + pad
	}
	return pad + s
}

func dropRunes(s string, n int) string {
	for i := 0; i < n && s != ""; i++ {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}

func keepRunes(s string, n int) string {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}
