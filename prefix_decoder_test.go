// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lzcat/flate/internal/testutil"
)

func makeCodes(lens []uint32) []prefixCode {
	var codes []prefixCode
	for sym, cl := range lens {
		if cl > 0 {
			codes = append(codes, prefixCode{sym: uint32(sym), len: cl})
		}
	}
	return codes
}

// readSymbols decodes cnt symbols from a BitGen string using pd.
func readSymbols(t *testing.T, pd *prefixDecoder, bitgen string, cnt int) []uint {
	t.Helper()
	var br bitReader
	br.Init(testutil.MustDecodeBitGen(bitgen))
	syms := make([]uint, cnt)
	for i := range syms {
		syms[i] = br.ReadSymbol(pd)
	}
	return syms
}

func TestPrefixDecoder(t *testing.T) {
	// The example code from RFC section 3.2.2. The eight symbols with lengths
	// (3, 3, 3, 3, 3, 2, 4, 4) get the canonical codes:
	//	sym 5: 00
	//	sym 0: 010, sym 1: 011, sym 2: 100, sym 3: 101, sym 4: 110
	//	sym 6: 1110, sym 7: 1111
	var pd prefixDecoder
	pd.Init(makeCodes([]uint32{3, 3, 3, 3, 3, 2, 4, 4}))

	got := readSymbols(t, &pd, `<<<
		> 00 010 011 100 101 110 1110 1111
	`, 8)
	want := []uint{5, 0, 1, 2, 3, 4, 6, 7}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("decoded symbol mismatch (-got +want):\n%s", diff)
	}
}

func TestPrefixDecoderDeep(t *testing.T) {
	// A maximally skewed tree forces codes past the first-level chunks table
	// and into the link tables.
	lens := make([]uint32, 16)
	for i := 0; i < 15; i++ {
		lens[i] = uint32(i + 1)
	}
	lens[15] = 15

	var pd prefixDecoder
	pd.Init(makeCodes(lens))
	if pd.chunkBits != prefixMaxChunkBits {
		t.Errorf("chunkBits = %d, want %d", pd.chunkBits, prefixMaxChunkBits)
	}
	if len(pd.links) == 0 {
		t.Error("expected link tables for codes past the chunks table")
	}

	got := readSymbols(t, &pd, `<<<
		> 0 111111111111110 111111111111111 10
	`, 4)
	want := []uint{0, 14, 15, 1}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("decoded symbol mismatch (-got +want):\n%s", diff)
	}
}

func TestPrefixDecoderDeterministic(t *testing.T) {
	// Rebuilding a decoder from the same code lengths must reproduce the
	// exact same tables, including when the decoder is being reused.
	lens := []uint32{4, 4, 4, 4, 4, 3, 3, 3, 2, 0, 0, 4}

	var pd1, pd2 prefixDecoder
	pd1.Init(makeCodes(lens))
	pd2.Init(makeCodes([]uint32{1, 1}))
	pd2.Init(makeCodes(lens))

	opts := cmp.AllowUnexported(prefixDecoder{})
	if diff := cmp.Diff(pd1, pd2, opts); diff != "" {
		t.Errorf("decoder table mismatch (-first +second):\n%s", diff)
	}
}

func TestPrefixDecoderInvalid(t *testing.T) {
	vectors := []struct {
		desc string
		lens []uint32
	}{
		{"over-subscribed", []uint32{1, 1, 1}},
		{"over-subscribed deep", []uint32{1, 2, 2, 2}},
		{"under-subscribed", []uint32{2, 2, 2}},
		{"under-subscribed single", []uint32{2}},
	}

	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			var pd prefixDecoder
			kind := mustPanicKind(t, func() { pd.Init(makeCodes(v.lens)) })
			if kind != InvalidHuffmanTable {
				t.Errorf("Init() error kind = %v, want %v", kind, InvalidHuffmanTable)
			}
		})
	}
}

func TestHandleDegenerateCodes(t *testing.T) {
	codes := handleDegenerateCodes([]prefixCode{{sym: 0, len: 1}}, numDistCodes)

	var pd prefixDecoder
	pd.Init(codes)

	got := readSymbols(t, &pd, "<<< > 0 1", 2)
	want := []uint{0, numDistCodes}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("decoded symbol mismatch (-got +want):\n%s", diff)
	}
}

func TestFixedTrees(t *testing.T) {
	// Spot-check the fixed literal tree from RFC section 3.2.6:
	//	sym   0: 00110000
	//	sym 144: 110010000
	//	sym 256: 0000000
	//	sym 280: 11000000
	got := readSymbols(t, &litTree, `<<<
		> 00110000 110010000 0000000 11000000
	`, 4)
	want := []uint{0, 144, 256, 280}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("decoded symbol mismatch (-got +want):\n%s", diff)
	}

	// All fixed distance codes are five bits wide.
	got = readSymbols(t, &distTree, `<<<
		> 00000 11101 01111
	`, 3)
	want = []uint{0, 29, 15}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("decoded symbol mismatch (-got +want):\n%s", diff)
	}
}
