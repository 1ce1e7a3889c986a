// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

import (
	"strconv"
	"testing"

	"golang.org/x/exp/constraints"
)

// sumSizes totals a set of benchmark payload sizes, used to report the
// aggregate bytes a sub-benchmark table exercises.
func sumSizes[T constraints.Integer](sizes []T) T {
	var total T
	for _, s := range sizes {
		total += s
	}
	return total
}

func benchmarkWrap(b *testing.B, payloadLen int) {
	key, iv := testKeyIV()
	header := []byte("benchmark header")
	plaintext := make([]byte, payloadLen)
	dst := make([]byte, payloadLen)

	b.SetBytes(int64(payloadLen))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Wrap(dst, key, iv, header, plaintext, 16); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWrap_64(b *testing.B)    { benchmarkWrap(b, 64) }
func BenchmarkWrap_1024(b *testing.B)  { benchmarkWrap(b, 1024) }
func BenchmarkWrap_16384(b *testing.B) { benchmarkWrap(b, 16384) }

func BenchmarkWrap_Sizes(b *testing.B) {
	sizes := []int{64, 1024, 16384}
	b.Logf("benchmarking %d total payload bytes across %d sizes", sumSizes(sizes), len(sizes))
	for _, sz := range sizes {
		sz := sz
		b.Run(sizeLabel(sz), func(b *testing.B) { benchmarkWrap(b, sz) })
	}
}

func sizeLabel(n int) string {
	if n >= 1024 {
		return "size_" + strconv.Itoa(n/1024) + "KiB"
	}
	return "size_" + strconv.Itoa(n) + "B"
}

func BenchmarkUnwrap_1024(b *testing.B) {
	key, iv := testKeyIV()
	header := []byte("benchmark header")
	plaintext := make([]byte, 1024)
	ct := make([]byte, len(plaintext))

	tag, err := Wrap(ct, key, iv, header, plaintext, 16)
	if err != nil {
		b.Fatal(err)
	}

	dst := make([]byte, len(ct))
	b.SetBytes(int64(len(plaintext)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Unwrap(dst, key, iv, header, ct, tag); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPolyMul(b *testing.B) {
	a := fieldElement{lo: 0x1122334455667788, hi: 0x99AABBCCDDEEFF00}
	r := fieldElement{lo: 0xFFEEDDCCBBAA9988, hi: 0x7766554433221100}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a = polyMul(a, r)
	}
	_ = a
}

func BenchmarkNewState(b *testing.B) {
	key, iv := testKeyIV()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := NewState(key, iv)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := s.StepG(16); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewPooledState(b *testing.B) {
	key, iv := testKeyIV()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := NewPooledState(key, iv)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := s.StepG(16); err != nil {
			b.Fatal(err)
		}
		PutState(s)
	}
}
