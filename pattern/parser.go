package pattern

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDanglingPercent is returned when a pattern ends inside a token.
	ErrDanglingPercent = errors.New("pattern: dangling %")
	// ErrUnterminatedOption is returned for a '{' without matching '}'.
	ErrUnterminatedOption = errors.New("pattern: unterminated option")
	// ErrUnknownConverter is returned for a token no factory is registered for.
	ErrUnknownConverter = errors.New("pattern: unknown converter")
	// ErrWidthOverflow is returned for a width or precision above MaxWidth.
	ErrWidthOverflow = errors.New("pattern: width out of range")
)

// MaxWidth bounds the min and max lengths accepted in a pattern token.
const MaxWidth = 1 << 16

// Factory builds a converter from its token options and width rules.
type Factory func(options []string, info FormattingInfo) Converter

// Registry maps converter keys to factories. The zero value is empty;
// NewRegistry returns one preloaded with the built-in converters.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry with the built-in keys:
// d/date, p/level, m/msg/message, K/map/MAP, F/file, L/line and n.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(newDateConverter, "d", "date")
	r.Register(newLevelConverter, "p", "level")
	r.Register(newMessageConverter, "m", "msg", "message")
	r.Register(newMapConverter, "K", "map", "MAP")
	r.Register(newFileConverter, "F", "file")
	r.Register(newLineConverter, "L", "line")
	r.Register(newNewlineConverter, "n")
	return r
}

// Register binds f to each key, replacing earlier bindings.
func (r *Registry) Register(f Factory, keys ...string) {
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	for _, k := range keys {
		r.factories[k] = f
	}
}

func (r *Registry) lookup(key string) (Factory, bool) {
	f, ok := r.factories[key]
	return f, ok
}

// Parse turns a pattern such as "%d [%-5p] %MAP{user}%n" into its
// converters. Literal text becomes literal converters; "%%" is a
// literal percent sign.
func Parse(pattern string, reg *Registry) ([]Converter, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	p := &parser{src: pattern, reg: reg}
	return p.parse()
}

type parser struct {
	src     string
	pos     int
	reg     *Registry
	literal strings.Builder
	out     []Converter
}

func (p *parser) parse() ([]Converter, error) {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c != '%' {
			p.literal.WriteByte(c)
			p.pos++
			continue
		}
		start := p.pos
		p.pos++
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("%w at offset %d", ErrDanglingPercent, start)
		}
		if p.src[p.pos] == '%' {
			p.literal.WriteByte('%')
			p.pos++
			continue
		}
		if err := p.token(start); err != nil {
			return nil, err
		}
	}
	p.flushLiteral()
	return p.out, nil
}

func (p *parser) flushLiteral() {
	if p.literal.Len() == 0 {
		return
	}
	p.out = append(p.out, newLiteralConverter(p.literal.String()))
	p.literal.Reset()
}

// token parses one %[-][min][.[-]max]name{opt}... sequence.
func (p *parser) token(start int) error {
	info, err := p.formattingInfo()
	if err != nil {
		return err
	}

	nameStart := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	word := p.src[nameStart:p.pos]
	if word == "" {
		return fmt.Errorf("%w at offset %d", ErrDanglingPercent, start)
	}

	// Longest registered prefix wins; leftover letters are literal text.
	name, factory := "", Factory(nil)
	for n := len(word); n > 0; n-- {
		if f, ok := p.reg.lookup(word[:n]); ok {
			name, factory = word[:n], f
			break
		}
	}
	if factory == nil {
		return fmt.Errorf("%w %q at offset %d", ErrUnknownConverter, word, start)
	}
	rest := word[len(name):]

	var options []string
	if rest == "" {
		if options, err = p.options(); err != nil {
			return err
		}
	}

	p.flushLiteral()
	p.out = append(p.out, factory(options, info))
	p.literal.WriteString(rest)
	return nil
}

func (p *parser) formattingInfo() (FormattingInfo, error) {
	info := DefaultFormattingInfo()
	if p.peek('-') {
		info.LeftAlign = true
		p.pos++
	}
	var err error
	if info.MinLength, err = p.number(); err != nil {
		return info, err
	}
	if p.peek('.') {
		p.pos++
		if p.peek('-') {
			info.LeftTruncate = false
			p.pos++
		}
		if info.MaxLength, err = p.number(); err != nil {
			return info, err
		}
	}
	return info, nil
}

func (p *parser) options() ([]string, error) {
	var opts []string
	for p.peek('{') {
		end := strings.IndexByte(p.src[p.pos+1:], '}')
		if end < 0 {
			return nil, fmt.Errorf("%w at offset %d", ErrUnterminatedOption, p.pos)
		}
		opts = append(opts, p.src[p.pos+1:p.pos+1+end])
		p.pos += end + 2
	}
	return opts, nil
}

// number reads a decimal width, rejecting values above MaxWidth.
func (p *parser) number() (int, error) {
	start := p.pos
	n := 0
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		n = n*10 + int(p.src[p.pos]-'0')
		p.pos++
		if n > MaxWidth {
			return 0, fmt.Errorf("%w at offset %d", ErrWidthOverflow, start)
		}
	}
	return n, nil
}

func (p *parser) peek(c byte) bool {
	return p.pos < len(p.src) && p.src[p.pos] == c
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
