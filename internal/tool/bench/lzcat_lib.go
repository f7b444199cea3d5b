// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import "github.com/lzcat/flate"

func init() {
	RegisterDecoder("lzcat", flate.Inflate)
}
