// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

// decoder holds the state for a single whole-buffer decode.
type decoder struct {
	rd  bitReader // Bit stream over the input buffer
	out []byte    // Decoded output; also serves as the back-reference window

	// Local copies of the dynamic trees to reduce memory allocations.
	dynLitTree  prefixDecoder
	dynDistTree prefixDecoder
}

// Inflate decompresses a complete DEFLATE stream held in input and returns
// the decompressed bytes. The stream must consist of a sequence of blocks
// ending with one that has the final-block flag set; any input remaining
// after that block is ignored.
//
// If the stream is malformed, Inflate returns a nil output and an *Error
// identifying the first violation and its bit offset.
func Inflate(input []byte) ([]byte, error) {
	var d decoder
	return d.decode(input)
}

func (d *decoder) decode(input []byte) (output []byte, err error) {
	defer d.errRecover(&err)
	d.rd.Init(input)

	for last := false; !last; {
		last = d.rd.ReadBits(1) == 1
		switch d.rd.ReadBits(2) {
		case 0:
			// Raw, uncompressed block (RFC section 3.2.4).
			d.readRawBlock()
		case 1:
			// Fixed prefix block (RFC section 3.2.6).
			d.readBlock(&litTree, &distTree)
		case 2:
			// Dynamic prefix block (RFC section 3.2.7).
			d.rd.ReadPrefixCodes(&d.dynLitTree, &d.dynDistTree)
			d.readBlock(&d.dynLitTree, &d.dynDistTree)
		default:
			// Reserved block (RFC section 3.2.3).
			raise(InvalidBlockType)
		}
	}
	return d.out, nil
}

// readRawBlock reads a raw, uncompressed block according to
// RFC section 3.2.4.
func (d *decoder) readRawBlock() {
	d.rd.ReadPads() // Discard bits until byte-aligned

	n := uint16(d.rd.ReadBits(16))
	nn := uint16(d.rd.ReadBits(16))
	if n^nn != 0xffff {
		raise(InvalidStoredBlockLength)
	}
	d.out = d.rd.ReadBytes(d.out, int(n))
}

// readBlock decodes a single block using the provided literal and distance
// prefix trees according to RFC section 3.2.3.
func (d *decoder) readBlock(litTree, distTree *prefixDecoder) {
	for {
		litSym, ok := d.rd.TryReadSymbol(litTree)
		if !ok {
			litSym = d.rd.ReadSymbol(litTree)
		}
		switch {
		case litSym < endBlockSym:
			// Literal symbol.
			d.out = append(d.out, byte(litSym))
		case litSym == endBlockSym:
			// End-of-block symbol.
			return
		case litSym < maxNumLitSyms:
			// Decode the copy length.
			rc := lenLUT[litSym-257]
			extra, ok := d.rd.TryReadBits(uint(rc.bits))
			if !ok {
				extra = d.rd.ReadBits(uint(rc.bits))
			}
			cpyLen := int(rc.base) + int(extra)

			// Decode the copy distance.
			distSym, ok := d.rd.TryReadSymbol(distTree)
			if !ok {
				distSym = d.rd.ReadSymbol(distTree)
			}
			if distSym >= maxNumDistSyms {
				if distSym < numDistCodes {
					raise(InvalidDistanceCode) // Reserved symbol 30 or 31
				}
				raise(InvalidHuffmanCode) // Unused branch of a degenerate tree
			}
			dist := int(d.rd.ReadOffset(distSym, distLUT[:]))

			d.writeCopy(dist, cpyLen)
		case litSym < numLitCodes:
			raise(InvalidLengthCode) // Reserved symbol 286 or 287
		default:
			raise(InvalidHuffmanCode) // Unused branch of a degenerate tree
		}
	}
}

// writeCopy copies length bytes from dist bytes back in the output.
// The copy may overlap its own destination, in which case the already
// written portion repeats.
func (d *decoder) writeCopy(dist, length int) {
	if dist > len(d.out) {
		raise(InvalidBackReference)
	}
	pos := len(d.out) - dist
	for i := 0; i < length; i++ {
		d.out = append(d.out, d.out[pos])
		pos++
	}
}
