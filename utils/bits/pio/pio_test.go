package pio

import (
	"bytes"
	"testing"
)

func TestU32BE(t *testing.T) {
	b := []byte{0x12, 0x34, 0x56, 0x78}
	if U32BE(b) != 0x12345678 {
		t.Errorf("U32BE = %x", U32BE(b))
	}
	out := make([]byte, 4)
	PutU32BE(out, 0x12345678)
	if !bytes.Equal(out, b) {
		t.Errorf("PutU32BE = %x", out)
	}
}

func TestI32BE(t *testing.T) {
	b := []byte{0xff, 0xff, 0xff, 0xff}
	if I32BE(b) != -1 {
		t.Errorf("I32BE = %d", I32BE(b))
	}
	out := make([]byte, 4)
	PutI32BE(out, -1)
	if !bytes.Equal(out, b) {
		t.Errorf("PutI32BE = %x", out)
	}
}

func TestU16BE(t *testing.T) {
	b := []byte{0xab, 0xcd}
	if U16BE(b) != 0xabcd {
		t.Errorf("U16BE = %x", U16BE(b))
	}
	out := make([]byte, 2)
	PutU16BE(out, 0xabcd)
	if !bytes.Equal(out, b) {
		t.Errorf("PutU16BE = %x", out)
	}
}

func TestU64BE(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if U64BE(b) != 0x0102030405060708 {
		t.Errorf("U64BE = %x", U64BE(b))
	}
	out := make([]byte, 8)
	PutU64BE(out, 0x0102030405060708)
	if !bytes.Equal(out, b) {
		t.Errorf("PutU64BE = %x", out)
	}
}
