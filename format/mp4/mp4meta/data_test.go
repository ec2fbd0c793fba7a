package mp4meta

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func errKind(t *testing.T, err error) *Error {
	t.Helper()
	var e *Error
	require.True(t, errors.As(err, &e), "want *Error, got %v", err)
	return e
}

func TestParseUtf8(t *testing.T) {
	d := Unparsed(UTF8)
	err := d.Parse(bytes.NewReader([]byte{0x41, 0x42, 0x43}), 3)
	require.NoError(t, err)
	require.True(t, d.Equal(Utf8("ABC")))
	require.Equal(t, 3, d.Len())

	var buf bytes.Buffer
	require.NoError(t, d.WriteRaw(&buf))
	require.Equal(t, []byte{0x41, 0x42, 0x43}, buf.Bytes())
}

func TestParseTypedHead(t *testing.T) {
	payload := []byte{0, 0, 0, 1, 0, 0, 0, 0, 0x58, 0x59}

	d := Unparsed(TYPED)
	err := d.Parse(bytes.NewReader(payload), len(payload))
	require.NoError(t, err)
	require.True(t, d.Equal(Utf8("XY")))
}

func TestTypedRoundTrip(t *testing.T) {
	for _, d := range []Data{
		Reserved([]byte{1, 2, 3}),
		Utf8("hello"),
		Utf16("héllo"),
		Jpeg([]byte{0xff, 0xd8, 0xff}),
		Png([]byte{0x89, 0x50, 0x4e, 0x47}),
	} {
		var buf bytes.Buffer
		require.NoError(t, d.WriteTyped(&buf))
		require.Equal(t, 8+d.Len(), buf.Len())

		parsed := Unparsed(TYPED)
		err := parsed.Parse(bytes.NewReader(buf.Bytes()), buf.Len())
		require.NoError(t, err)
		require.True(t, parsed.Equal(d), "round trip of %s", d)
	}
}

func TestRawRoundTrip(t *testing.T) {
	cases := []struct {
		code int32
		d    Data
	}{
		{RESERVED, Reserved([]byte{0, 1, 2, 3, 0xff})},
		{UTF8, Utf8("ABC")},
		{JPEG, Jpeg([]byte{0xff, 0xd8})},
		{PNG, Png([]byte{0x89, 0x50})},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		require.NoError(t, c.d.WriteRaw(&buf))
		require.Equal(t, c.d.Len(), buf.Len())

		parsed := Unparsed(c.code)
		err := parsed.Parse(bytes.NewReader(buf.Bytes()), buf.Len())
		require.NoError(t, err)
		require.True(t, parsed.Equal(c.d))
	}
}

func TestUtf16RoundTrip(t *testing.T) {
	d := Utf16("grüße")
	require.Equal(t, 10, d.Len())

	var buf bytes.Buffer
	require.NoError(t, d.WriteRaw(&buf))
	require.Equal(t, 10, buf.Len())

	parsed := Unparsed(UTF16)
	err := parsed.Parse(bytes.NewReader(buf.Bytes()), buf.Len())
	require.NoError(t, err)
	require.True(t, parsed.Equal(d))
}

func TestUtf16OddLengthSkipsPad(t *testing.T) {
	// "AB" as big-endian code units, one pad byte, then a sentinel that
	// must not be consumed.
	r := bytes.NewReader([]byte{0, 0x41, 0, 0x42, 0, 0x7f})

	d := Unparsed(UTF16)
	require.NoError(t, d.Parse(r, 5))
	require.Equal(t, "AB", d.Text())

	pos, err := r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	require.Equal(t, int64(5), pos)
}

func TestUtf16LenCountsScalars(t *testing.T) {
	// U+1D11E needs a surrogate pair on the wire; Len still reports two
	// bytes per scalar.
	d := Utf16("\U0001d11e")
	require.Equal(t, 2, d.Len())

	var buf bytes.Buffer
	require.NoError(t, d.WriteRaw(&buf))
	require.Equal(t, 4, buf.Len())
}

func TestParseUnknownCode(t *testing.T) {
	for _, code := range []int32{BESIGNED, BEFLOAT32, QTMETA, AFFINETRANSFORMF64, 100} {
		d := Unparsed(code)
		err := d.Parse(bytes.NewReader([]byte{1, 2, 3, 4}), 4)
		e := errKind(t, err)
		require.Equal(t, ErrUnknownDataType, e.Kind)
		require.Equal(t, code, e.Code)
		require.False(t, d.IsParsed())
	}
}

func TestParseTwiceFails(t *testing.T) {
	d := Unparsed(UTF8)
	require.NoError(t, d.Parse(bytes.NewReader([]byte("AB")), 2))

	before := d
	err := d.Parse(bytes.NewReader([]byte("CD")), 2)
	require.Equal(t, ErrParsing, errKind(t, err).Kind)
	require.True(t, d.Equal(before))
}

func TestParseTypedShortHead(t *testing.T) {
	d := Unparsed(TYPED)
	err := d.Parse(bytes.NewReader(make([]byte, 8)), 8)
	require.Equal(t, ErrParsing, errKind(t, err).Kind)
	require.False(t, d.IsParsed())
}

func TestWriteUnparsedFails(t *testing.T) {
	d := Unparsed(UTF8)
	var buf bytes.Buffer

	err := d.WriteRaw(&buf)
	require.Equal(t, ErrUnwritableDataType, errKind(t, err).Kind)

	err = d.WriteTyped(&buf)
	require.Equal(t, ErrUnwritableDataType, errKind(t, err).Kind)
	require.Zero(t, buf.Len())
}

func TestParseInvalidUtf8(t *testing.T) {
	d := Unparsed(UTF8)
	err := d.Parse(bytes.NewReader([]byte{0xff, 0xfe, 0xfd}), 3)
	require.Equal(t, ErrEncoding, errKind(t, err).Kind)
	require.False(t, d.IsParsed())
}

func TestParseUnpairedSurrogate(t *testing.T) {
	// lone high surrogate followed by 'A'
	d := Unparsed(UTF16)
	err := d.Parse(bytes.NewReader([]byte{0xd8, 0x00, 0x00, 0x41}), 4)
	require.Equal(t, ErrEncoding, errKind(t, err).Kind)

	// lone low surrogate
	d = Unparsed(UTF16)
	err = d.Parse(bytes.NewReader([]byte{0xdc, 0x00}), 2)
	require.Equal(t, ErrEncoding, errKind(t, err).Kind)
}

func TestParseShortRead(t *testing.T) {
	d := Unparsed(RESERVED)
	err := d.Parse(bytes.NewReader([]byte{1, 2, 3}), 10)
	require.Equal(t, ErrIO, errKind(t, err).Kind)
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	require.False(t, d.IsParsed())
}
