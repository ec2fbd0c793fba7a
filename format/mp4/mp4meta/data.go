// Package mp4meta
// Created by RTT.
// Author: teocci@yandex.com on 2021-Nov-02
package mp4meta

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/teocci/go-mp4meta/utils/bits/pio"
)

// Table 3-5 well-known data type codes.
const (
	TYPED              int32 = -1
	RESERVED           int32 = 0
	UTF8               int32 = 1
	UTF16              int32 = 2
	UTF8SORT           int32 = 4
	UTF16SORT          int32 = 5
	JPEG               int32 = 13
	PNG                int32 = 14
	BESIGNED           int32 = 21
	BEUNSIGNED         int32 = 22
	BEFLOAT32          int32 = 23
	BEFLOAT64          int32 = 24
	QTMETA             int32 = 28
	EIGHTBITSIGNED     int32 = 65
	BE16BITSIGNED      int32 = 66
	BE32BITSIGNED      int32 = 67
	BEPOINTF32         int32 = 70
	BEDIMSF32          int32 = 71
	BERECTF32          int32 = 72
	BE64BITSIGNED      int32 = 74
	EIGHTBITUNSIGNED   int32 = 75
	BE16BITUNSIGNED    int32 = 76
	BE32BITUNSIGNED    int32 = 77
	BE64BITUNSIGNED    int32 = 78
	AFFINETRANSFORMF64 int32 = 79
)

// Data holds the payload of a leaf atom. It is one of Reserved, Utf8,
// Utf16, Jpeg, Png, or an unparsed value still waiting on its type code.
// Only the codes RESERVED, UTF8, UTF16, JPEG and PNG decode; every other
// code from the table above is recognized by name but fails Parse with
// ErrUnknownDataType.
type Data struct {
	kind   int32
	code   int32
	parsed bool
	text   string
	bytes  []byte
}

// Unparsed returns a pending value that decodes as code on Parse.
func Unparsed(code int32) Data {
	return Data{code: code}
}

func Reserved(b []byte) Data {
	return Data{kind: RESERVED, parsed: true, bytes: b}
}

func Utf8(s string) Data {
	return Data{kind: UTF8, parsed: true, text: s}
}

func Utf16(s string) Data {
	return Data{kind: UTF16, parsed: true, text: s}
}

func Jpeg(b []byte) Data {
	return Data{kind: JPEG, parsed: true, bytes: b}
}

func Png(b []byte) Data {
	return Data{kind: PNG, parsed: true, bytes: b}
}

func (d Data) IsParsed() bool {
	return d.parsed
}

// Kind returns the well-known code of the resolved variant, or the
// pending code of an unparsed value.
func (d Data) Kind() int32 {
	if !d.parsed {
		return d.code
	}
	return d.kind
}

// Text returns the string of a Utf8 or Utf16 value.
func (d Data) Text() string {
	return d.text
}

// Bytes returns the payload of a Reserved, Jpeg or Png value.
func (d Data) Bytes() []byte {
	return d.bytes
}

// Len returns the length in bytes. For Utf16 this is twice the number of
// Unicode scalars, which under-reports for text needing surrogate pairs;
// WriteRaw emits the full code-unit encoding either way.
func (d Data) Len() (n int) {
	if !d.parsed {
		return
	}
	switch d.kind {
	case UTF8:
		n = len(d.text)
	case UTF16:
		n = 2 * utf8.RuneCountInString(d.text)
	default:
		n = len(d.bytes)
	}
	return
}

// Parse decodes length bytes from r into the resolved variant. Decoding
// is one-shot: a value parses at most once, and a failed Parse leaves it
// unparsed. A pending code of TYPED reads the effective code from an
// 8 byte head first.
func (d *Data) Parse(r io.ReadSeeker, length int) error {
	if d.parsed {
		return parseErr("data already parsed")
	}

	code := d.code
	l := length
	if code == TYPED {
		if length <= 8 {
			return parseErr("typed data head too short")
		}
		var hd [4]byte
		if _, err := io.ReadFull(r, hd[:]); err != nil {
			return ioErr("read datatype code", err)
		}
		code = pio.I32BE(hd[:])
		// skipping 4 byte data offset
		if _, err := r.Seek(4, io.SeekCurrent); err != nil {
			return ioErr("skip data offset", err)
		}
		l -= 8
	}

	switch code {
	case RESERVED, JPEG, PNG:
		b, err := readBytes(r, l)
		if err != nil {
			return err
		}
		d.kind, d.bytes = code, b
	case UTF8:
		s, err := readUtf8(r, l)
		if err != nil {
			return err
		}
		d.kind, d.text = UTF8, s
	case UTF16:
		s, err := readUtf16(r, l)
		if err != nil {
			return err
		}
		d.kind, d.text = UTF16, s
	default:
		return unknownTypeErr(code)
	}

	d.parsed = true
	d.code = 0
	return nil
}

// WriteRaw writes the payload bytes without any head. Utf16 text is
// re-encoded as big-endian code units, not copied from the source.
func (d Data) WriteRaw(w io.Writer) error {
	if !d.parsed {
		return unwritableErr("unparsed data cannot be written")
	}

	switch d.kind {
	case UTF8:
		if _, err := io.WriteString(w, d.text); err != nil {
			return ioErr("write utf-8 payload", err)
		}
	case UTF16:
		units := utf16.Encode([]rune(d.text))
		b := make([]byte, 2*len(units))
		for i, u := range units {
			pio.PutU16BE(b[2*i:], u)
		}
		if _, err := w.Write(b); err != nil {
			return ioErr("write utf-16 payload", err)
		}
	default:
		if _, err := w.Write(d.bytes); err != nil {
			return ioErr("write payload", err)
		}
	}
	return nil
}

// WriteTyped writes the 8 byte head, a big-endian type code followed by a
// zeroed locale field, then the raw payload.
func (d Data) WriteTyped(w io.Writer) error {
	if !d.parsed {
		return unwritableErr("unparsed data cannot be written")
	}

	var hd [8]byte
	pio.PutI32BE(hd[0:], d.kind)
	if _, err := w.Write(hd[:]); err != nil {
		return ioErr("write datatype head", err)
	}
	return d.WriteRaw(w)
}

// Equal reports variant-aware equality.
func (d Data) Equal(other Data) bool {
	if d.parsed != other.parsed {
		return false
	}
	if !d.parsed {
		return d.code == other.code
	}
	if d.kind != other.kind {
		return false
	}
	switch d.kind {
	case UTF8, UTF16:
		return d.text == other.text
	default:
		return bytes.Equal(d.bytes, other.bytes)
	}
}

func (d Data) String() string {
	if !d.parsed {
		return fmt.Sprintf("Unparsed{%d}", d.code)
	}
	switch d.kind {
	case RESERVED:
		return fmt.Sprintf("Reserved{%d bytes}", len(d.bytes))
	case UTF8:
		return fmt.Sprintf("UTF8{%q}", d.text)
	case UTF16:
		return fmt.Sprintf("UTF16{%q}", d.text)
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	}
	return fmt.Sprintf("Data{%d}", d.kind)
}

func readBytes(r io.Reader, length int) ([]byte, error) {
	b := make([]byte, length)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, ioErr("read payload", err)
	}
	return b, nil
}

func readUtf8(r io.Reader, length int) (string, error) {
	b, err := readBytes(r, length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", encodingErr("invalid utf-8 sequence")
	}
	return string(b), nil
}

func readUtf16(r io.ReadSeeker, length int) (string, error) {
	b, err := readBytes(r, length&^1)
	if err != nil {
		return "", err
	}
	if length%2 == 1 {
		if _, err := r.Seek(1, io.SeekCurrent); err != nil {
			return "", ioErr("skip pad byte", err)
		}
	}

	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = pio.U16BE(b[2*i:])
	}
	return decodeUtf16(units)
}

// decodeUtf16 rejects unpaired surrogates where utf16.Decode would
// substitute U+FFFD.
func decodeUtf16(units []uint16) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u < 0xd800 || u >= 0xe000:
			sb.WriteRune(rune(u))
		case u < 0xdc00:
			if i+1 >= len(units) || units[i+1] < 0xdc00 || units[i+1] >= 0xe000 {
				return "", encodingErr("unpaired utf-16 surrogate")
			}
			sb.WriteRune(utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
		default:
			return "", encodingErr("unpaired utf-16 surrogate")
		}
	}
	return sb.String(), nil
}
