// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"fmt"
	"io"
	"runtime"
)

// ErrorKind identifies the format violation that aborted a decode.
type ErrorKind int

const (
	// UnexpectedEOF indicates that a bit or byte read was requested beyond
	// the end of the input buffer.
	UnexpectedEOF ErrorKind = iota

	// InvalidBlockType indicates a block header with the reserved BTYPE 3.
	InvalidBlockType

	// InvalidStoredBlockLength indicates a stored block whose NLEN field is
	// not the bitwise complement of its LEN field.
	InvalidStoredBlockLength

	// InvalidHuffmanTable indicates a transmitted code length sequence that
	// cannot form a valid prefix code: the lengths are over-subscribed,
	// under-subscribed with more than one symbol defined, or the dynamic
	// table description itself is malformed.
	InvalidHuffmanTable

	// InvalidHuffmanCode indicates a bit sequence that does not resolve to
	// any symbol of the prefix code in use.
	InvalidHuffmanCode

	// InvalidLengthCode indicates the reserved literal/length symbols
	// 286 and 287.
	InvalidLengthCode

	// InvalidDistanceCode indicates the reserved distance symbols 30 and 31.
	InvalidDistanceCode

	// InvalidBackReference indicates a back-reference whose distance exceeds
	// the number of bytes produced so far.
	InvalidBackReference
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEOF:
		return "unexpected end of input"
	case InvalidBlockType:
		return "invalid block type"
	case InvalidStoredBlockLength:
		return "invalid stored block length"
	case InvalidHuffmanTable:
		return "invalid huffman table"
	case InvalidHuffmanCode:
		return "invalid huffman code"
	case InvalidLengthCode:
		return "invalid length code"
	case InvalidDistanceCode:
		return "invalid distance code"
	case InvalidBackReference:
		return "invalid back reference"
	default:
		return "unknown error"
	}
}

// Error is the error type returned for all failures to decode a stream.
type Error struct {
	Kind ErrorKind

	// Offset is the bit offset into the input at which the violation was
	// detected, or -1 if unknown.
	Offset int64
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return "flate: " + e.Kind.String()
	}
	return fmt.Sprintf("flate: %s at bit offset %d", e.Kind, e.Offset)
}

// Unwrap allows errors.Is(err, io.ErrUnexpectedEOF) to match truncation
// failures.
func (e *Error) Unwrap() error {
	if e.Kind == UnexpectedEOF {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// raise aborts the decode in progress. The offset annotation is filled in
// when the panic is recovered at the API boundary.
func raise(k ErrorKind) {
	panic(&Error{Kind: k, Offset: -1})
}

// errRecover converts a raised decode error into a returned error.
// Runtime errors and foreign panic values resume panicking.
func (d *decoder) errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case *Error:
		if ex.Offset < 0 {
			ex.Offset = d.rd.BitsRead()
		}
		*err = ex
	default:
		panic(ex)
	}
}
