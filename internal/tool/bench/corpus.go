// Copyright 2025, The flate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"errors"

	"github.com/lzcat/flate/internal/testutil"
)

// Synthetic corpora exercising the interesting extremes of LZ77 and prefix
// coding: incompressible noise, trivially compressible runs, mid-entropy
// repeated phrases, and plain text.
var corpora = map[string]func(n int) []byte{
	"zeros": func(n int) []byte {
		return make([]byte, n)
	},
	"random": func(n int) []byte {
		return testutil.NewRand(0).Bytes(n)
	},
	"repeats": func(n int) []byte {
		rn := testutil.NewRand(0)
		var b []byte
		for len(b) < n {
			phrase := rn.Bytes(1 + rn.Intn(32))
			b = append(b, bytes.Repeat(phrase, 1+rn.Intn(8))...)
		}
		return b[:n]
	},
	"digits": func(n int) []byte {
		rn := testutil.NewRand(0)
		b := make([]byte, n)
		for i := range b {
			b[i] = '0' + byte(rn.Intn(10))
		}
		return b
	},
	"text": func(n int) []byte {
		const phrase = "the quick brown fox jumped over the lazy dog. "
		return testutil.ResizeData([]byte(phrase), n)
	},
}

// CorpusNames lists the available corpora.
func CorpusNames() []string {
	return []string{"zeros", "random", "repeats", "digits", "text"}
}

// LoadCorpus generates n bytes of the named corpus. The content is
// deterministic for a given name and size.
func LoadCorpus(name string, n int) ([]byte, error) {
	gen, ok := corpora[name]
	if !ok {
		return nil, errors.New("bench: unknown corpus: " + name)
	}
	return gen(n), nil
}
