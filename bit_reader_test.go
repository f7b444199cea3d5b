// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"bytes"
	"testing"
)

// mustPanicKind runs fn and returns the kind of the *Error it panics with.
func mustPanicKind(t *testing.T, fn func()) ErrorKind {
	t.Helper()
	var kind ErrorKind
	func() {
		defer func() {
			ex, ok := recover().(*Error)
			if !ok {
				t.Fatal("expected a decode failure")
			}
			kind = ex.Kind
		}()
		fn()
	}()
	return kind
}

func TestBitReader(t *testing.T) {
	var br bitReader
	br.Init([]byte{0xac, 0x55})

	if v := br.ReadBits(4); v != 0x0c {
		t.Errorf("ReadBits(4) = %#x, want 0xc", v)
	}
	if v := br.ReadBits(4); v != 0x0a {
		t.Errorf("ReadBits(4) = %#x, want 0xa", v)
	}
	if got := br.BitsRead(); got != 8 {
		t.Errorf("BitsRead() = %d, want 8", got)
	}
	if v := br.ReadBits(8); v != 0x55 {
		t.Errorf("ReadBits(8) = %#x, want 0x55", v)
	}
	if got := br.BitsRead(); got != 16 {
		t.Errorf("BitsRead() = %d, want 16", got)
	}
}

func TestBitReaderCrossByte(t *testing.T) {
	var br bitReader
	br.Init([]byte{0xac, 0x55})

	if v := br.ReadBits(4); v != 0x0c {
		t.Errorf("ReadBits(4) = %#x, want 0xc", v)
	}
	// The next 12 bits span the byte boundary, low bits first.
	if v := br.ReadBits(12); v != 0x55a {
		t.Errorf("ReadBits(12) = %#x, want 0x55a", v)
	}
}

func TestBitReaderPads(t *testing.T) {
	var br bitReader
	br.Init([]byte{0xff, 0x11})

	if v := br.ReadBits(3); v != 0x07 {
		t.Errorf("ReadBits(3) = %#x, want 0x7", v)
	}
	if v := br.ReadPads(); v != 0x1f {
		t.Errorf("ReadPads() = %#x, want 0x1f", v)
	}
	if got := br.BitsRead(); got != 8 {
		t.Errorf("BitsRead() = %d, want 8", got)
	}
	if v := br.ReadPads(); v != 0 {
		t.Errorf("ReadPads() = %#x, want 0", v)
	}
	if v := br.ReadBits(8); v != 0x11 {
		t.Errorf("ReadBits(8) = %#x, want 0x11", v)
	}
}

func TestBitReaderBytes(t *testing.T) {
	var br bitReader
	br.Init([]byte{0x0f, 0x11, 0x22, 0x33, 0x44})

	// Force part of the input into the bit buffer.
	if v := br.ReadBits(8); v != 0x0f {
		t.Errorf("ReadBits(8) = %#x, want 0xf", v)
	}
	dst := br.ReadBytes(nil, 3)
	if want := []byte{0x11, 0x22, 0x33}; !bytes.Equal(dst, want) {
		t.Errorf("ReadBytes() = %x, want %x", dst, want)
	}
	if got := br.BitsRead(); got != 32 {
		t.Errorf("BitsRead() = %d, want 32", got)
	}

	kind := mustPanicKind(t, func() { br.ReadBytes(nil, 2) })
	if kind != UnexpectedEOF {
		t.Errorf("ReadBytes() error kind = %v, want %v", kind, UnexpectedEOF)
	}
}

func TestBitReaderEOF(t *testing.T) {
	var br bitReader
	br.Init([]byte{0xff})

	kind := mustPanicKind(t, func() { br.ReadBits(9) })
	if kind != UnexpectedEOF {
		t.Errorf("ReadBits() error kind = %v, want %v", kind, UnexpectedEOF)
	}
}

func TestBitReaderSymbols(t *testing.T) {
	// Fixed literal codes for 'a' and 'b' followed by the EOB marker:
	//	'a' => 10010001, 'b' => 10010010, EOB => 0000000
	// Codes are transmitted MSB first, packed LSB first into bytes.
	var br bitReader
	br.Init([]byte{0x89, 0x49, 0x00})

	if sym := br.ReadSymbol(&litTree); sym != 'a' {
		t.Errorf("ReadSymbol() = %d, want %d", sym, 'a')
	}
	sym, ok := br.TryReadSymbol(&litTree)
	if !ok || sym != 'b' {
		t.Errorf("TryReadSymbol() = (%d, %v), want (%d, true)", sym, ok, 'b')
	}
	if sym := br.ReadSymbol(&litTree); sym != endBlockSym {
		t.Errorf("ReadSymbol() = %d, want %d", sym, endBlockSym)
	}
}

func TestBitReaderEmptyTree(t *testing.T) {
	var br bitReader
	br.Init([]byte{0xff})
	var pd prefixDecoder
	pd.Init(nil)

	if _, ok := br.TryReadSymbol(&pd); ok {
		t.Error("TryReadSymbol() succeeded on an empty tree")
	}
	kind := mustPanicKind(t, func() { br.ReadSymbol(&pd) })
	if kind != InvalidHuffmanCode {
		t.Errorf("ReadSymbol() error kind = %v, want %v", kind, InvalidHuffmanCode)
	}
}

func TestBitReaderOffset(t *testing.T) {
	// Distance symbol 4 takes 1 extra bit: base 5, plus bit 1 => 6.
	var br bitReader
	br.Init([]byte{0x01})

	if v := br.ReadOffset(4, distLUT[:]); v != 6 {
		t.Errorf("ReadOffset(4) = %d, want 6", v)
	}
}
