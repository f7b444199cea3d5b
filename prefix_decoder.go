// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import "math/bits"

const (
	prefixCountBits = 4 // Number of bits to hold the bit-length of a code

	prefixCountMask    = (1 << prefixCountBits) - 1
	prefixMaxChunkBits = 9 // This can be tuned for better performance
)

// prefixDecoder is a canonical prefix code in table-driven form. The symbol
// assignment follows RFC section 3.2.2: codes are handed out in increasing
// order of code length and, within a length, in increasing order of symbol.
//
// Rather than walking a pointer tree bit-by-bit, decoding indexes a
// first-level chunks table with the low bits of the bit buffer. Codes longer
// than chunkBits spill into second-level link tables. Code values are stored
// bit-reversed so that they can be matched directly against the LSB-first
// bit buffer.
type prefixDecoder struct {
	chunks    []uint32   // First-level lookup map
	links     [][]uint32 // Second-level lookup map
	chunkMask uint32     // Mask the width of the chunks table
	linkMask  uint32     // Mask the width of the link table
	numSyms   uint32     // Number of symbols
	chunkBits uint32     // Bit-width of the chunks table
	minBits   uint32     // The minimum number of bits to safely make progress
}

// Init initializes the prefixDecoder according to the codes provided.
// The symbols provided must be unique and in ascending order, with only the
// sym and len fields populated; Init generates the canonical code values.
//
// Init raises InvalidHuffmanTable if the code lengths do not form a complete
// prefix code. Degenerate single-symbol codes must be expanded with
// handleDegenerateCodes before being passed in.
func (pd *prefixDecoder) Init(codes []prefixCode) {
	// Handle special case trees.
	if len(codes) <= 1 {
		switch {
		case len(codes) == 0: // Empty tree (raises if used later)
			*pd = prefixDecoder{chunks: pd.chunks[:0], links: pd.links[:0], numSyms: 0}
		case len(codes) == 1: // Single code tree (bit-width of zero)
			*pd = prefixDecoder{
				chunks:  append(pd.chunks[:0], codes[0].sym<<prefixCountBits),
				links:   pd.links[:0],
				numSyms: 1,
			}
		}
		return
	}

	// Compute basic statistics on the symbols.
	var bitCnts [maxPrefixBits + 1]uint
	var minBits, maxBits uint = maxPrefixBits + 1, 0
	symLast := -1
	for _, c := range codes {
		if c.len == 0 || int(c.sym) <= symLast {
			raise(InvalidHuffmanTable) // Not sorted or zero-length code
		}
		if minBits > uint(c.len) {
			minBits = uint(c.len)
		}
		if maxBits < uint(c.len) {
			maxBits = uint(c.len)
		}
		bitCnts[c.len]++     // Histogram of bit counts
		symLast = int(c.sym) // Keep track of last symbol
	}

	// Compute the next code for a symbol of a given bit length.
	var nextCodes [maxPrefixBits + 2]uint
	var code uint
	for i := minBits; i <= maxBits; i++ {
		code <<= 1
		nextCodes[i] = code
		code += bitCnts[i]
	}
	if code != 1<<maxBits {
		raise(InvalidHuffmanTable) // Tree is under or over subscribed
	}

	// Allocate chunks table if necessary.
	pd.numSyms = uint32(len(codes))
	pd.minBits = uint32(minBits)
	pd.chunkBits = uint32(maxBits)
	if pd.chunkBits > prefixMaxChunkBits {
		pd.chunkBits = prefixMaxChunkBits
	}
	numChunks := 1 << pd.chunkBits
	pd.chunks = allocUint32s(pd.chunks, numChunks)
	pd.chunkMask = uint32(numChunks - 1)

	// Allocate links tables if necessary.
	pd.links = pd.links[:0]
	pd.linkMask = 0
	if uint(pd.chunkBits) < maxBits {
		numLinks := 1 << (maxBits - uint(pd.chunkBits))
		pd.linkMask = uint32(numLinks - 1)

		baseCode := nextCodes[pd.chunkBits+1] >> 1
		pd.links = extendSliceUint32s(pd.links, numChunks-int(baseCode))
		for linkIdx := range pd.links {
			code := reverseBits(baseCode+uint(linkIdx), uint(pd.chunkBits))
			pd.links[linkIdx] = allocUint32s(pd.links[linkIdx], numLinks)
			pd.chunks[code] = uint32(linkIdx<<prefixCountBits) | (pd.chunkBits + 1)
		}
	}

	// Fill out chunks and links tables with values.
	for _, c := range codes {
		chunk := c.sym<<prefixCountBits | c.len
		c.val = reverseBits(nextCodes[c.len], uint(c.len))
		nextCodes[c.len]++

		if c.len <= pd.chunkBits {
			skip := 1 << uint(c.len)
			for i := int(c.val); i < len(pd.chunks); i += skip {
				pd.chunks[i] = chunk
			}
		} else {
			linkIdx := pd.chunks[c.val&pd.chunkMask] >> prefixCountBits
			links := pd.links[linkIdx]
			skip := 1 << uint(c.len-pd.chunkBits)
			for i := int(c.val >> pd.chunkBits); i < len(links); i += skip {
				links[i] = chunk
			}
		}
	}
}

// RFC section 3.2.7 allows degenerate prefix trees with only one node, but
// requires a single bit for that node. This causes an unbalanced tree where
// the "1" code is unused. The canonical prefix code generation algorithm
// breaks with this.
//
// To handle this case, we artificially insert another node for the "1" code
// using a symbol larger than the alphabet to force an error later if the code
// ends up getting used.
func handleDegenerateCodes(codes []prefixCode, invalidSym uint) []prefixCode {
	if len(codes) != 1 {
		return codes
	}
	return append(codes, prefixCode{sym: uint32(invalidSym), len: 1})
}

// reverseBits reverses the lower n bits of v.
func reverseBits(v uint, n uint) uint32 {
	return bits.Reverse32(uint32(v) << (32 - n))
}
