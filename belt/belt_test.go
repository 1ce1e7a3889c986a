// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package belt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCipher_BadKeyLength(t *testing.T) {
	is := assert.New(t)
	for _, n := range []int{0, 1, 15, 17, 23, 25, 31, 33, 64} {
		_, err := NewCipher(make([]byte, n))
		is.ErrorIs(err, ErrBadKeyLength, "key length %d", n)
	}
}

func TestNewCipher_AcceptedKeyLengths(t *testing.T) {
	require := require.New(t)
	for _, n := range []int{16, 24, 32} {
		c, err := NewCipher(make([]byte, n))
		require.NoError(err)
		require.Equal(blockSize, c.BlockSize())
	}
}

func TestBlockCipher_RoundTrip(t *testing.T) {
	is := assert.New(t)

	keys := [][]byte{
		bytes.Repeat([]byte{0x00}, 16),
		bytes.Repeat([]byte{0xFF}, 16),
		bytes.Repeat([]byte{0xAB}, 24),
		bytes.Repeat([]byte{0x5C}, 32),
		[]byte("0123456789abcdef"),
	}

	plaintexts := [][]byte{
		make([]byte, 16),
		bytes.Repeat([]byte{0xFF}, 16),
		[]byte("belt-dwp-testblk"),
	}

	for _, key := range keys {
		c, err := NewCipher(key)
		is.NoError(err)

		for _, pt := range plaintexts {
			ct := make([]byte, blockSize)
			c.Encrypt(ct, pt)

			got := make([]byte, blockSize)
			c.Decrypt(got, ct)

			is.Equal(pt, got, "round trip mismatch for key %x", key)
		}
	}
}

func TestBlockCipher_EncryptIsDeterministic(t *testing.T) {
	is := assert.New(t)

	key := bytes.Repeat([]byte{0x11}, 16)
	pt := bytes.Repeat([]byte{0x22}, 16)

	c1, _ := NewCipher(key)
	c2, _ := NewCipher(key)

	ct1 := make([]byte, blockSize)
	ct2 := make([]byte, blockSize)
	c1.Encrypt(ct1, pt)
	c2.Encrypt(ct2, pt)

	is.Equal(ct1, ct2)
}

func TestBlockCipher_DifferentKeysProduceDifferentCiphertext(t *testing.T) {
	is := assert.New(t)

	pt := bytes.Repeat([]byte{0x33}, 16)

	c1, _ := NewCipher(bytes.Repeat([]byte{0x01}, 16))
	c2, _ := NewCipher(bytes.Repeat([]byte{0x02}, 16))

	ct1 := make([]byte, blockSize)
	ct2 := make([]byte, blockSize)
	c1.Encrypt(ct1, pt)
	c2.Encrypt(ct2, pt)

	is.NotEqual(ct1, ct2)
}

func TestBlockCipher_EncryptChangesInput(t *testing.T) {
	is := assert.New(t)

	c, _ := NewCipher(bytes.Repeat([]byte{0x44}, 16))
	pt := bytes.Repeat([]byte{0x00}, 16)

	ct := make([]byte, blockSize)
	c.Encrypt(ct, pt)

	is.NotEqual(pt, ct)
}

func FuzzBlockCipher_RoundTrip(f *testing.F) {
	f.Add(make([]byte, 16), make([]byte, 16))
	f.Add(bytes.Repeat([]byte{0xFF}, 24), bytes.Repeat([]byte{0xAA}, 16))
	f.Add(bytes.Repeat([]byte{0x5A}, 32), bytes.Repeat([]byte{0x5A}, 16))

	f.Fuzz(func(t *testing.T, key, pt []byte) {
		if len(key) != 16 && len(key) != 24 && len(key) != 32 {
			t.Skip()
		}
		if len(pt) != blockSize {
			t.Skip()
		}

		c, err := NewCipher(key)
		if err != nil {
			t.Fatalf("NewCipher: %v", err)
		}

		ct := make([]byte, blockSize)
		c.Encrypt(ct, pt)

		got := make([]byte, blockSize)
		c.Decrypt(got, ct)

		if !bytes.Equal(pt, got) {
			t.Fatalf("round trip failed for key %x pt %x", key, pt)
		}
	})
}
