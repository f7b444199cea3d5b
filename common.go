// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package flate implements a decoder for the DEFLATE compressed data format,
// described in RFC 1951. It operates on whole buffers: the entire compressed
// stream is provided up front and the entire decompressed output is returned,
// or a typed error describing the first format violation encountered.
//
// The package does not implement compression, nor the gzip or zlib container
// formats that commonly wrap raw DEFLATE streams.
package flate

const endBlockSym = 256

// allocUint32s returns a slice with length n, reusing s if possible.
func allocUint32s(s []uint32, n int) []uint32 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]uint32, n, n*3/2)
}

// extendSliceUint32s returns a slice-of-slices with length n,
// reusing s if possible.
func extendSliceUint32s(s [][]uint32, n int) [][]uint32 {
	if cap(s) >= n {
		return s[:n]
	}
	ss := make([][]uint32, n, n*3/2)
	copy(ss, s[:cap(s)])
	return ss
}
