// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_kp_lib

package bench

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

func init() {
	RegisterEncoder("kp",
		func(input []byte, lvl int) ([]byte, error) {
			bb := new(bytes.Buffer)
			zw, err := flate.NewWriter(bb, lvl)
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
		})
	RegisterDecoder("kp",
		func(input []byte) ([]byte, error) {
			zr := flate.NewReader(bytes.NewReader(input))
			defer zr.Close()
			return io.ReadAll(zr)
		})
}
