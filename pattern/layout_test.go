package pattern

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 123000000, time.UTC)

func sampleEntry() *core.Entry {
	return &core.Entry{
		Time:    fixedTime,
		Level:   core.WarnLevel,
		Message: "café closed",
		Payload: core.MapMessageOf("city", "Zürich", "id", "42"),
	}
}

func TestNewLayout_Defaults(t *testing.T) {
	l, err := NewLayout(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPattern, l.Pattern())
	assert.True(t, l.Charset().IsUTF8())
	assert.Equal(t, "2024-03-09 14:05:07.123 [WARN] café closed\n", l.Text(sampleEntry()))
}

func TestNewLayout_Errors(t *testing.T) {
	_, err := NewLayout(Config{Charset: "no-such-charset"})
	assert.ErrorIs(t, err, charset.ErrUnknown)

	_, err = NewLayout(Config{Pattern: "%zz"})
	assert.ErrorIs(t, err, ErrUnknownConverter)

	assert.Panics(t, func() { MustNewLayout(Config{Pattern: "%"}) })
}

func TestLayout_Text(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{pattern: "%K", want: "{city=Zürich, id=42}"},
		{pattern: "%K{id}", want: "42"},
		{pattern: "%K{missing}", want: ""},
		{pattern: "[%5K{id}]", want: "[   42]"},
		{pattern: "[%-5K{id}]", want: "[42   ]"},
		{pattern: "[%.4K]", want: "[=42}]"},
		{pattern: "[%.-4K]", want: "[{cit]"},
		{pattern: "%-5p|%m", want: "WARN |café closed"},
		{pattern: "%d{15:04:05}", want: "14:05:07"},
		{pattern: "%d{ABSOLUTE}", want: "14:05:07.123"},
		{pattern: "%d{ISO8601}", want: "2024-03-09T14:05:07.123"},
		{pattern: "%d{UNIX_MILLIS}", want: "1709993107123"},
		{pattern: "%F:%L", want: ":"},
	}

	entry := sampleEntry()
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			l := MustNewLayout(Config{Pattern: tt.pattern})
			assert.Equal(t, tt.want, l.Text(entry))

			var buf bytes.Buffer
			l.FormatEntry(entry, &buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLayout_DateUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	entry := &core.Entry{Time: fixedTime.In(loc)}

	assert.Equal(t, "16:05", MustNewLayout(Config{Pattern: "%d{15:04}"}).Text(entry))
	assert.Equal(t, "14:05", MustNewLayout(Config{Pattern: "%d{15:04}{UTC}"}).Text(entry))
}

func TestLayout_Caller(t *testing.T) {
	entry := &core.Entry{Caller: core.CallerInfo{Defined: true, ShortFile: "main.go", Line: 17}}
	assert.Equal(t, "main.go:17", MustNewLayout(Config{Pattern: "%F:%L"}).Text(entry))
}

func TestLayout_FormatEncoded(t *testing.T) {
	l := MustNewLayout(Config{Pattern: "%m %K{city} [%8K{city}]"})
	entry := sampleEntry()
	text := l.Text(entry)

	for _, name := range []string{"ISO-8859-1", "UTF-16BE", "windows-1252"} {
		t.Run(name, func(t *testing.T) {
			cs := charset.MustLookup(name)
			want, err := cs.Encode(text)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, l.FormatEncoded(entry, &buf, cs))
			assert.Equal(t, want, buf.Bytes())
		})
	}

	var buf bytes.Buffer
	require.NoError(t, l.FormatEncoded(entry, &buf, nil))
	assert.Equal(t, text, buf.String())
}

func TestLayout_FormatEncodedMatchesWholeLine(t *testing.T) {
	entry := &core.Entry{Level: core.InfoLevel, Payload: core.MapMessageOf("a", "1")}

	for _, name := range []string{"UTF-16", "ISO-8859-1", "ISO-2022-JP"} {
		t.Run(name, func(t *testing.T) {
			cs := charset.MustLookup(name)
			l := MustNewLayout(Config{Pattern: "%p %K%n", Charset: name})

			want, err := cs.Encode(l.Text(entry))
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, l.FormatEncoded(entry, &buf, cs))
			assert.Equal(t, want, buf.Bytes())

			got, err := l.Format(entry)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLayout_FormatEncodedUTF16SingleBOM(t *testing.T) {
	l := MustNewLayout(Config{Pattern: "%p %K%n", Charset: "UTF-16"})
	entry := &core.Entry{Level: core.InfoLevel, Payload: core.MapMessageOf("a", "1")}

	got, err := l.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(got, []byte{0xFE, 0xFF}))
	assert.Equal(t, []byte{0xFE, 0xFF, 0, 'I', 0, 'N', 0, 'F', 0, 'O', 0, ' '}, got[:12])
}

func TestLayout_FormatUsesLayoutCharset(t *testing.T) {
	l := MustNewLayout(Config{Pattern: "%K{city}%n", Charset: "latin1"})
	assert.Equal(t, "ISO-8859-1", l.Charset().Name())

	got, err := l.Format(sampleEntry())
	require.NoError(t, err)
	assert.Equal(t, []byte("Z\xfcrich\n"), got)

	var buf bytes.Buffer
	require.NoError(t, l.FormatTo(sampleEntry(), &buf))
	assert.Equal(t, got, buf.Bytes())
}

func TestLayout_FormatReturnsIndependentSlices(t *testing.T) {
	l := MustNewLayout(Config{Pattern: "%K", Charset: "latin1"})

	first, err := l.Format(sampleEntry())
	require.NoError(t, err)
	first[0] = 'X'

	second, err := l.Format(sampleEntry())
	require.NoError(t, err)
	assert.Equal(t, byte('{'), second[0])
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestLayout_FormatToPropagatesWriteError(t *testing.T) {
	l := MustNewLayout(Config{Pattern: "%m"})
	assert.ErrorIs(t, l.FormatTo(sampleEntry(), failingWriter{}), errWrite)
}

func TestLayout_NonMapEntries(t *testing.T) {
	l := MustNewLayout(Config{Pattern: "<%K><%K{a}>", Charset: "latin1"})
	for _, e := range []*core.Entry{
		{Message: "plain"},
		{Payload: core.TextMessage("text")},
	} {
		assert.Equal(t, "<><>", l.Text(e))
		got, err := l.Format(e)
		require.NoError(t, err)
		assert.Equal(t, "<><>", string(got))
	}
}

func TestLayout_ConvertersIsACopy(t *testing.T) {
	l := MustNewLayout(Config{Pattern: "%m %K"})
	cs := l.Converters()
	require.Len(t, cs, 3)
	cs[0] = nil
	assert.NotNil(t, l.Converters()[0])

	mc, ok := l.Converters()[2].(*MapConverter)
	require.True(t, ok)
	assert.Equal(t, "MAP", mc.Name())
}

func BenchmarkLayout_Format(b *testing.B) {
	l := MustNewLayout(Config{Pattern: "%d [%-5p] %m %K%n", Charset: "latin1"})
	entry := sampleEntry()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = l.Format(entry)
	}
}
