// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the performance of various DEFLATE implementations
// with respect to encode speed, decode speed, and ratio.
package bench

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	strconv "github.com/dsnet/golib/unitconv"
)

// An Encoder compresses input at the given level and returns the stream.
type Encoder func(input []byte, level int) ([]byte, error)

// A Decoder decompresses a stream and returns the original input.
type Decoder func(input []byte) ([]byte, error)

var (
	Encoders map[string]Encoder
	Decoders map[string]Decoder
)

func RegisterEncoder(name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[string]Encoder)
	}
	Encoders[name] = enc
}

func RegisterDecoder(name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[string]Decoder)
	}
	Decoders[name] = dec
}

// BenchmarkEncoder benchmarks a single encoder on the given input data using
// the selected compression level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if _, err := enc(input, lvl); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			output, err := dec(input)
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(output)))
		}
	})
}

// Result is a single benchmark measurement.
type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// FormatRate formats a decompression or compression rate given in MB/s.
func FormatRate(r float64) string {
	return fmt.Sprintf("%6.2f MB/s", r)
}

// FormatSize formats a byte count using an IEC binary prefix.
func FormatSize(n int) string {
	s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
	return strings.Replace(s, ".00", "", -1) + "B"
}

// BenchmarkEncoderSuite runs benchmarks across all named encoders, corpora,
// levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(corpora)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(corpora)*len(levels)*len(sizes)]string
func BenchmarkEncoderSuite(encs, corpora []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, corpora, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			result := BenchmarkEncoder(input, Encoders[enc], lvl)
			if result.N == 0 {
				return Result{}
			}
			us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
			return Result{R: float64(result.Bytes) / us}
		})
}

// BenchmarkDecoderSuite runs benchmarks across all named decoders, corpora,
// levels, and sizes. The ref encoder generates the pre-compressed input so
// that every decoder sees the same stream.
//
// The values returned have the following structure:
//	results: [len(corpora)*len(levels)*len(sizes)][len(decs)]Result
//	names:   [len(corpora)*len(levels)*len(sizes)]string
func BenchmarkDecoderSuite(decs, corpora []string, levels, sizes []int, ref Encoder, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(decs, corpora, levels, sizes, tick,
		func(input []byte, dec string, lvl int) Result {
			output, err := ref(input, lvl)
			if err != nil {
				return Result{}
			}

			result := BenchmarkDecoder(output, Decoders[dec])
			if result.N == 0 {
				return Result{}
			}
			us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
			return Result{R: float64(result.Bytes) / us}
		})
}

// BenchmarkRatioSuite measures compression ratios across all named encoders,
// corpora, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(corpora)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(corpora)*len(levels)*len(sizes)]string
func BenchmarkRatioSuite(encs, corpora []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, corpora, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			output, err := Encoders[enc](input, lvl)
			if err != nil {
				return Result{}
			}
			return Result{R: float64(len(input)) / float64(len(output))}
		})
}

type benchFunc func(input []byte, codec string, level int) Result

func benchmarkSuite(codecs, corpora []string, levels, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(corpora) * len(levels) * len(sizes)
	d1 := len(codecs)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every codec, corpus, level, and size.
	var i int
	for _, f := range corpora {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := LoadCorpus(f, n)
				name := fmt.Sprintf("%s:%d:%s", f, l, FormatSize(len(b)))
				for j, c := range codecs {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil {
						results[i][j] = run(b, c, l)
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}
