// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

import (
	"bytes"
	"testing"
)

func FuzzWrapUnwrap_RoundTrip(f *testing.F) {
	f.Add(
		bytes.Repeat([]byte{0x01}, 16),
		bytes.Repeat([]byte{0x02}, 16),
		[]byte("header"),
		[]byte("payload octets of arbitrary length"),
		16,
	)
	f.Add(
		bytes.Repeat([]byte{0x00}, 32),
		bytes.Repeat([]byte{0x00}, 16),
		[]byte{},
		[]byte{},
		8,
	)
	f.Add(
		bytes.Repeat([]byte{0xFF}, 24),
		bytes.Repeat([]byte{0xFF}, 16),
		[]byte("x"),
		bytes.Repeat([]byte{0xAB}, 200),
		12,
	)

	f.Fuzz(func(t *testing.T, key, iv, header, plaintext []byte, tagLen int) {
		if len(key) != 16 && len(key) != 24 && len(key) != 32 {
			t.Skip()
		}
		if len(iv) != blockSize {
			t.Skip()
		}
		if tagLen < MinTagLen || tagLen > MaxTagLen {
			t.Skip()
		}

		ct := make([]byte, len(plaintext))
		tag, err := Wrap(ct, key, iv, header, plaintext, tagLen)
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}

		pt := make([]byte, len(ct))
		if err := Unwrap(pt, key, iv, header, ct, tag); err != nil {
			t.Fatalf("Unwrap: %v", err)
		}

		if !bytes.Equal(pt, plaintext) {
			t.Fatalf("round trip mismatch: got %x want %x", pt, plaintext)
		}
	})
}

func FuzzWrap_TamperedTagAlwaysRejected(f *testing.F) {
	f.Add(bytes.Repeat([]byte{0x07}, 16), bytes.Repeat([]byte{0x08}, 16), []byte("payload"), 0)

	f.Fuzz(func(t *testing.T, key, iv, plaintext []byte, flipByte int) {
		if len(key) != 16 {
			t.Skip()
		}
		if len(iv) != blockSize {
			t.Skip()
		}
		if len(plaintext) == 0 {
			t.Skip()
		}

		ct := make([]byte, len(plaintext))
		tag, err := Wrap(ct, key, iv, nil, plaintext, 16)
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}

		idx := ((flipByte % len(tag)) + len(tag)) % len(tag)
		tag[idx] ^= 0x01

		dst := make([]byte, len(ct))
		err = Unwrap(dst, key, iv, nil, ct, tag)
		if err == nil {
			t.Fatalf("Unwrap accepted a tampered tag")
		}
	})
}
