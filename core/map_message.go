package core

import (
	"slices"
	"strings"
)

// MapMessage is an immutable set of string key/value pairs with unique
// keys. Pairs are kept sorted by key, so iteration order and rendering
// are deterministic.
type MapMessage struct {
	pairs []pair
}

type pair struct {
	key, value string
}

func comparePairs(a, b pair) int { return strings.Compare(a.key, b.key) }

// NewMapMessage copies m into a new MapMessage.
func NewMapMessage(m map[string]string) *MapMessage {
	pairs := make([]pair, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, pair{key: k, value: v})
	}
	slices.SortFunc(pairs, comparePairs)
	return &MapMessage{pairs: pairs}
}

// MapMessageOf builds a MapMessage from alternating keys and values.
// A trailing key without a value is dropped; a repeated key keeps the
// last value.
func MapMessageOf(kv ...string) *MapMessage {
	pairs := make([]pair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, pair{key: kv[i], value: kv[i+1]})
	}
	return &MapMessage{pairs: normalize(pairs)}
}

// MapMessageFromFields renders each field's value as a string.
func MapMessageFromFields(fields []Field) *MapMessage {
	pairs := make([]pair, 0, len(fields))
	for _, f := range fields {
		pairs = append(pairs, pair{key: f.Key, value: f.StringValue()})
	}
	return &MapMessage{pairs: normalize(pairs)}
}

// normalize sorts pairs by key and collapses duplicates, keeping the
// value that appeared last.
func normalize(pairs []pair) []pair {
	slices.SortStableFunc(pairs, comparePairs)
	out := pairs[:0]
	for _, p := range pairs {
		if n := len(out); n > 0 && out[n-1].key == p.key {
			out[n-1].value = p.value
			continue
		}
		out = append(out, p)
	}
	return out
}

// With returns a copy of m with key set to value.
func (m *MapMessage) With(key, value string) *MapMessage {
	if m == nil {
		return MapMessageOf(key, value)
	}
	i, found := m.search(key)
	if found {
		pairs := slices.Clone(m.pairs)
		pairs[i].value = value
		return &MapMessage{pairs: pairs}
	}
	pairs := make([]pair, 0, len(m.pairs)+1)
	pairs = append(pairs, m.pairs[:i]...)
	pairs = append(pairs, pair{key: key, value: value})
	pairs = append(pairs, m.pairs[i:]...)
	return &MapMessage{pairs: pairs}
}

func (m *MapMessage) search(key string) (int, bool) {
	return slices.BinarySearchFunc(m.pairs, key, func(p pair, k string) int {
		return strings.Compare(p.key, k)
	})
}

// Len returns the number of pairs.
func (m *MapMessage) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Get returns the value stored under key.
func (m *MapMessage) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, found := m.search(key)
	if !found {
		return "", false
	}
	return m.pairs[i].value, true
}

// Range calls fn for each pair in key order until fn returns false.
func (m *MapMessage) Range(fn func(key, value string) bool) {
	if m == nil {
		return
	}
	for _, p := range m.pairs {
		if !fn(p.key, p.value) {
			return
		}
	}
}

// Keys returns the keys in iteration order.
func (m *MapMessage) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(k, _ string) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Equal reports whether m and other hold the same pairs.
func (m *MapMessage) Equal(other *MapMessage) bool {
	if m == other {
		return true
	}
	return slices.Equal(m.view(), other.view())
}

func (m *MapMessage) view() []pair {
	if m == nil {
		return nil
	}
	return m.pairs
}

// AppendTo appends the {k1=v1, k2=v2} rendering of m to dst.
func (m *MapMessage) AppendTo(dst []byte) []byte {
	dst = append(dst, '{')
	for i, p := range m.view() {
		if i > 0 {
			dst = append(dst, ',', ' ')
		}
		dst = append(dst, p.key...)
		dst = append(dst, '=')
		dst = append(dst, p.value...)
	}
	return append(dst, '}')
}

// String renders m as {k1=v1, k2=v2}. An empty map renders as {}.
func (m *MapMessage) String() string {
	n := 2
	for _, p := range m.view() {
		n += len(p.key) + len(p.value) + 3
	}
	return string(m.AppendTo(make([]byte, 0, n)))
}

// Format implements Message.
func (m *MapMessage) Format() string { return m.String() }

// KeyValues implements Message.
func (m *MapMessage) KeyValues() (*MapMessage, bool) { return m, m != nil }

func (*MapMessage) message() {}
