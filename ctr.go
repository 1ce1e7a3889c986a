// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

import "crypto/cipher"

// blockSize is the belt block cipher's block length in octets.
const blockSize = 16

// incCounter increments a 16-octet big-endian counter in place, carrying
// across the whole width. This mirrors the big-endian increment the
// retrieved AES-CTR-DRBG keystream engine performs on its counter vector,
// matching spec.md's big-endian counter representation.
func incCounter(ctr []byte) {
	assert(len(ctr) == blockSize, "incCounter: counter must be 16 octets")
	for i := len(ctr) - 1; i >= 0; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			return
		}
	}
}

// keystreamCursor generates the DWP CTR keystream block-at-a-time and
// XORs it into caller-supplied buffers, buffering any unused tail octets
// of the current keystream block across calls so that StepE/StepD may be
// invoked with inputs of arbitrary, non-block-aligned length, exactly as
// spec.md's streaming model requires.
//
// This is the belt analogue of the retrieved engine's fillBlocks: encrypt
// the counter to produce one keystream block, XOR it into the request,
// advance the counter, repeat; any leftover keystream octets from a
// partial final block are cached in buf and spent before encrypting the
// next counter value.
type keystreamCursor struct {
	block cipher.Block
	ctr   [blockSize]byte
	buf   [blockSize]byte
	used  int // octets of buf already consumed; used == blockSize means buf is empty
}

// newKeystreamCursor creates a cursor seeded at ctr (copied; the original
// is not retained or mutated). block must be a belt cipher.Block.
func newKeystreamCursor(block cipher.Block, ctr []byte) keystreamCursor {
	assert(len(ctr) == blockSize, "newKeystreamCursor: counter must be 16 octets")
	c := keystreamCursor{block: block, used: blockSize}
	copy(c.ctr[:], ctr)
	return c
}

// xorKeystream XORs len(dst) octets of keystream into src, writing the
// result to dst. dst and src must have equal length; dst may alias src
// (in-place XOR) as belt's own StepE/StepD require for overlapping
// ciphertext-equals-plaintext-buffer usage.
func (c *keystreamCursor) xorKeystream(dst, src []byte) {
	assertf(len(dst) == len(src), "xorKeystream: dst/src length mismatch %d != %d", len(dst), len(src))

	n := len(src)
	for n > 0 {
		if c.used == blockSize {
			c.block.Encrypt(c.buf[:], c.ctr[:])
			incCounter(c.ctr[:])
			c.used = 0
		}

		avail := blockSize - c.used
		take := avail
		if take > n {
			take = n
		}

		for i := 0; i < take; i++ {
			dst[i] = src[i] ^ c.buf[c.used+i]
		}

		dst = dst[take:]
		src = src[take:]
		n -= take
		c.used += take
	}
}

// zero wipes the cursor's secret state: the running counter and any
// buffered keystream octets. The cipher.Block itself is left to the
// caller to release (it holds the expanded key schedule).
func (c *keystreamCursor) zero() {
	for i := range c.ctr {
		c.ctr[i] = 0
	}
	for i := range c.buf {
		c.buf[i] = 0
	}
	c.used = blockSize
}
