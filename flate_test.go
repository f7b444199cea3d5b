// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate_test

import (
	"bytes"
	stdflate "compress/flate"
	"errors"
	"fmt"
	"io"
	"testing"

	kpflate "github.com/klauspost/compress/flate"
	"github.com/lzcat/flate"
	"github.com/lzcat/flate/internal/testutil"
)

type encoderFunc func(input []byte, level int) ([]byte, error)

func stdEncode(input []byte, level int) ([]byte, error) {
	bb := new(bytes.Buffer)
	zw, err := stdflate.NewWriter(bb, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(input); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

func kpEncode(input []byte, level int) ([]byte, error) {
	bb := new(bytes.Buffer)
	zw, err := kpflate.NewWriter(bb, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(input); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

func testCorpora() map[string][]byte {
	rn := testutil.NewRand(0)
	var repeats []byte
	for len(repeats) < 1e5 {
		phrase := rn.Bytes(1 + rn.Intn(32))
		repeats = append(repeats, bytes.Repeat(phrase, 1+rn.Intn(8))...)
	}
	return map[string][]byte{
		"nil":     nil,
		"binary":  testutil.NewRand(1).Bytes(1e5),
		"zeros":   make([]byte, 1e5),
		"repeats": repeats[:1e5],
		"text": testutil.ResizeData(
			[]byte("the quick brown fox jumped over the lazy dog. "), 1e5),
	}
}

// TestRoundTrip checks that streams produced by independent encoders at all
// compression levels decode back to the original input.
func TestRoundTrip(t *testing.T) {
	encoders := map[string]encoderFunc{"std": stdEncode, "kp": kpEncode}
	levels := []int{0, 1, 6, 9}

	for corpusName, data := range testCorpora() {
		for encName, enc := range encoders {
			for _, lvl := range levels {
				name := fmt.Sprintf("%s:%s:%d", corpusName, encName, lvl)
				t.Run(name, func(t *testing.T) {
					stream, err := enc(data, lvl)
					if err != nil {
						t.Fatalf("unexpected encode error: %v", err)
					}
					output, err := flate.Inflate(stream)
					if err != nil {
						t.Fatalf("unexpected Inflate error: %v", err)
					}
					if !bytes.Equal(output, data) {
						t.Errorf("output mismatch: got %d bytes, want %d bytes",
							len(output), len(data))
					}

					// Data beyond the final block must be ignored.
					output, err = flate.Inflate(append(stream, 0xde, 0xad))
					if err != nil {
						t.Fatalf("unexpected Inflate error with trailing data: %v", err)
					}
					if !bytes.Equal(output, data) {
						t.Error("output mismatch with trailing data")
					}

					// Truncating the stream must fail with a truncation error.
					_, err = flate.Inflate(stream[:len(stream)-1])
					if !errors.Is(err, io.ErrUnexpectedEOF) {
						t.Errorf("error mismatch on truncated input: got %v, want %v",
							err, io.ErrUnexpectedEOF)
					}
				})
			}
		}
	}
}

func benchmarkInflate(b *testing.B, n int) {
	data := testutil.ResizeData(
		[]byte("the quick brown fox jumped over the lazy dog. "), n)
	stream, err := stdEncode(data, 6)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(n))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := flate.Inflate(stream); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkInflate1e4(b *testing.B) { benchmarkInflate(b, 1e4) }
func BenchmarkInflate1e5(b *testing.B) { benchmarkInflate(b, 1e5) }
func BenchmarkInflate1e6(b *testing.B) { benchmarkInflate(b, 1e6) }
