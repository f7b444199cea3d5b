// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

// The bitReader extracts bits from an in-memory buffer in the LSB-first order
// that DEFLATE requires: bits within a byte are consumed from the least
// significant position to the most significant position.
//
// Bytes are drained from the input slice into a 64-bit bit buffer. Keeping the
// buffer as full as possible lets the TryReadBits and TryReadSymbol fast paths
// succeed on nearly every call during the symbol decoding loop.

type bitReader struct {
	data    []byte // Input buffer; never mutated
	pos     int    // Number of bytes drained from data into bufBits
	bufBits uint64 // Buffer to hold some bits
	numBits uint   // Number of valid bits in bufBits

	// Local copy of decoder to reduce memory allocations.
	prefix prefixDecoder
}

func (br *bitReader) Init(data []byte) {
	*br = bitReader{data: data, prefix: br.prefix}
}

// BitsRead reports the number of bits consumed so far.
func (br *bitReader) BitsRead() int64 {
	return 8*int64(br.pos) - int64(br.numBits)
}

// FeedBits fills the bit buffer with as many bits as the input has left and
// ensures that at least nb bits are available, raising UnexpectedEOF if the
// input cannot satisfy that.
func (br *bitReader) FeedBits(nb uint) {
	for br.numBits <= 56 && br.pos < len(br.data) {
		br.bufBits |= uint64(br.data[br.pos]) << br.numBits
		br.numBits += 8
		br.pos++
	}
	if br.numBits < nb {
		raise(UnexpectedEOF)
	}
}

// TryReadBits attempts to read nb bits using the contents of the bit buffer
// alone. It returns the value and whether it succeeded.
//
// This method is designed to be inlined for performance reasons.
func (br *bitReader) TryReadBits(nb uint) (uint, bool) {
	if br.numBits < nb {
		return 0, false
	}
	val := uint(br.bufBits & uint64(1<<nb-1))
	br.bufBits >>= nb
	br.numBits -= nb
	return val, true
}

// ReadBits reads nb bits in LSB order from the input.
func (br *bitReader) ReadBits(nb uint) uint {
	br.FeedBits(nb)
	val := uint(br.bufBits & uint64(1<<nb-1))
	br.bufBits >>= nb
	br.numBits -= nb
	return val
}

// ReadPads reads 0-7 bits from the bit buffer to achieve byte-alignment.
func (br *bitReader) ReadPads() uint {
	nb := br.numBits % 8
	val := uint(br.bufBits & uint64(1<<nb-1))
	br.bufBits >>= nb
	br.numBits -= nb
	return val
}

// ReadBytes appends the next n raw input bytes to dst.
// The bit buffer must be byte-aligned when this is called.
func (br *bitReader) ReadBytes(dst []byte, n int) []byte {
	if br.numBits%8 != 0 {
		panic("flate: internal error: non-aligned bit buffer")
	}
	for br.numBits > 0 && n > 0 {
		dst = append(dst, byte(br.bufBits))
		br.bufBits >>= 8
		br.numBits -= 8
		n--
	}
	if n > len(br.data)-br.pos {
		raise(UnexpectedEOF)
	}
	dst = append(dst, br.data[br.pos:br.pos+n]...)
	br.pos += n
	return dst
}

// TryReadSymbol attempts to decode the next symbol using the contents of the
// bit buffer alone. It returns the decoded symbol and whether it succeeded.
//
// This method is designed to be inlined for performance reasons.
func (br *bitReader) TryReadSymbol(pd *prefixDecoder) (uint, bool) {
	if br.numBits < uint(pd.minBits) || len(pd.chunks) == 0 {
		return 0, false
	}
	chunk := pd.chunks[uint32(br.bufBits)&pd.chunkMask]
	nb := uint(chunk & prefixCountMask)
	if nb > br.numBits || nb > uint(pd.chunkBits) {
		return 0, false
	}
	br.bufBits >>= nb
	br.numBits -= nb
	return uint(chunk >> prefixCountBits), true
}

// ReadSymbol reads the next prefix symbol using the provided prefixDecoder.
func (br *bitReader) ReadSymbol(pd *prefixDecoder) uint {
	if len(pd.chunks) == 0 {
		raise(InvalidHuffmanCode) // Decode with empty tree
	}

	nb := uint(pd.minBits)
	for {
		br.FeedBits(nb)
		chunk := pd.chunks[uint32(br.bufBits)&pd.chunkMask]
		nb = uint(chunk & prefixCountMask)
		if nb > uint(pd.chunkBits) {
			linkIdx := chunk >> prefixCountBits
			chunk = pd.links[linkIdx][uint32(br.bufBits>>pd.chunkBits)&pd.linkMask]
			nb = uint(chunk & prefixCountMask)
		}
		if nb <= br.numBits {
			br.bufBits >>= nb
			br.numBits -= nb
			return uint(chunk >> prefixCountBits)
		}
	}
}

// ReadOffset reads an offset value using the provided rangeCodes indexed by
// the given symbol.
func (br *bitReader) ReadOffset(sym uint, rcs []rangeCode) uint {
	rc := rcs[sym]
	return uint(rc.base) + br.ReadBits(uint(rc.bits))
}

// ReadPrefixCodes reads the literal and distance prefix codes according to
// RFC section 3.2.7.
func (br *bitReader) ReadPrefixCodes(hl, hd *prefixDecoder) {
	numLitSyms := br.ReadBits(5) + 257
	numDistSyms := br.ReadBits(5) + 1
	numCLenSyms := br.ReadBits(4) + 4
	if numLitSyms > maxNumLitSyms || numDistSyms > maxNumDistSyms {
		raise(InvalidHuffmanTable)
	}

	// Read the code-lengths prefix table.
	var codeCLensArr [maxNumCLenSyms]prefixCode // Sorted, but may have holes
	for _, sym := range clenLens[:numCLenSyms] {
		clen := br.ReadBits(3)
		if clen > 0 {
			codeCLensArr[sym] = prefixCode{sym: uint32(sym), len: uint32(clen)}
		}
	}
	codeCLens := codeCLensArr[:0] // Compact the array to have no holes
	for _, c := range codeCLensArr {
		if c.len > 0 {
			codeCLens = append(codeCLens, c)
		}
	}
	codeCLens = handleDegenerateCodes(codeCLens, maxNumCLenSyms)
	br.prefix.Init(codeCLens)

	// Use the code-lengths table to decode the HLIT and HDIST prefix tables.
	var codesArr [numLitCodes + numDistCodes]prefixCode
	var clenLast uint
	codeLits := codesArr[:0]
	codeDists := codesArr[numLitCodes:numLitCodes]
	appendCode := func(sym, clen uint) {
		if sym < numLitSyms {
			pc := prefixCode{sym: uint32(sym), len: uint32(clen)}
			codeLits = append(codeLits, pc)
		} else {
			pc := prefixCode{sym: uint32(sym - numLitSyms), len: uint32(clen)}
			codeDists = append(codeDists, pc)
		}
	}
	for sym, maxSyms := uint(0), numLitSyms+numDistSyms; sym < maxSyms; {
		clen := br.ReadSymbol(&br.prefix)
		if clen < 16 {
			// Literal bit-length symbol used.
			if clen > 0 {
				appendCode(sym, clen)
			}
			clenLast = clen
			sym++
		} else {
			// Repeater symbol used.
			var repCnt uint
			switch repSym := clen; repSym {
			case 16:
				if sym == 0 {
					raise(InvalidHuffmanTable) // No previous length to repeat
				}
				clen = clenLast
				repCnt = 3 + br.ReadBits(2)
			case 17:
				clen = 0
				repCnt = 3 + br.ReadBits(3)
			case 18:
				clen = 0
				repCnt = 11 + br.ReadBits(7)
			default:
				raise(InvalidHuffmanCode) // Unused branch of a degenerate tree
			}

			if clen > 0 {
				for symEnd := sym + repCnt; sym < symEnd; sym++ {
					appendCode(sym, clen)
				}
			} else {
				sym += repCnt
			}
			if sym > maxSyms {
				raise(InvalidHuffmanTable) // Repeater overran the alphabets
			}
		}
	}

	codeLits = handleDegenerateCodes(codeLits, numLitCodes)
	hl.Init(codeLits)
	codeDists = handleDegenerateCodes(codeDists, numDistCodes)
	hd.Init(codeDists)
}
