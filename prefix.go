// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

const maxPrefixBits = 15

const (
	maxNumCLenSyms = 19  // Size of the code-lengths alphabet
	maxNumLitSyms  = 286 // Largest valid literal/length alphabet
	maxNumDistSyms = 30  // Largest valid distance alphabet

	numLitCodes  = 288 // Number of codes the fixed literal tree defines
	numDistCodes = 32  // Number of codes the fixed distance tree defines
)

var (
	lenLUT   [maxNumLitSyms - 257]rangeCode // RFC section 3.2.5
	distLUT  [maxNumDistSyms]rangeCode      // RFC section 3.2.5
	litTree  prefixDecoder                  // RFC section 3.2.6
	distTree prefixDecoder                  // RFC section 3.2.6
)

type rangeCode struct {
	base uint32 // Starting base offset of the range
	bits uint32 // Bit-width of a subsequent integer to add to base offset
}

type prefixCode struct {
	sym uint32 // The symbol being mapped
	val uint32 // Value of the prefix code (must be in [0..1<<len])
	len uint32 // Bit length of the prefix code
}

var (
	// RFC section 3.2.7.
	// Transmission order of the code lengths for the code-lengths alphabet.
	clenLens = [maxNumCLenSyms]uint{
		16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
	}
)

func init() {
	initPrefixLUTs()
}

func initPrefixLUTs() {
	// These come from the RFC section 3.2.5.
	for i, base := 0, 3; i < len(lenLUT)-1; i++ {
		nb := uint(i/4 - 1)
		if i < 4 {
			nb = 0
		}
		lenLUT[i] = rangeCode{base: uint32(base), bits: uint32(nb)}
		base += 1 << nb
	}
	lenLUT[len(lenLUT)-1] = rangeCode{base: 258, bits: 0}

	// These come from the RFC section 3.2.5.
	for i, base := 0, 1; i < len(distLUT); i++ {
		nb := uint(i/2 - 1)
		if i < 2 {
			nb = 0
		}
		distLUT[i] = rangeCode{base: uint32(base), bits: uint32(nb)}
		base += 1 << nb
	}

	// These come from the RFC section 3.2.6.
	var litCodes [numLitCodes]prefixCode
	for i := 0; i < 144; i++ {
		litCodes[i] = prefixCode{sym: uint32(i), len: 8}
	}
	for i := 144; i < 256; i++ {
		litCodes[i] = prefixCode{sym: uint32(i), len: 9}
	}
	for i := 256; i < 280; i++ {
		litCodes[i] = prefixCode{sym: uint32(i), len: 7}
	}
	for i := 280; i < numLitCodes; i++ {
		litCodes[i] = prefixCode{sym: uint32(i), len: 8}
	}
	litTree.Init(litCodes[:])

	// These come from the RFC section 3.2.6.
	var distCodes [numDistCodes]prefixCode
	for i := 0; i < numDistCodes; i++ {
		distCodes[i] = prefixCode{sym: uint32(i), len: 5}
	}
	distTree.Init(distCodes[:])
}
