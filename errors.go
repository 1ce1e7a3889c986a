// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

import "errors"

// Sentinel errors returned by the one-shot and streaming DWP operations.
//
// Per the DWP error taxonomy, only input-validation failures and
// cryptographic verification failures are ever returned as errors.
// Precondition violations (wrong call order, aliasing violations, double
// finalization) are programmer errors and are reported by panicking via
// assert instead — see assert_debug.go.
var (
	// ErrBadKeyLength is returned when a key is not 16, 24, or 32 octets.
	ErrBadKeyLength = errors.New("dwp: key length must be 16, 24, or 32 octets")

	// ErrBadIVLength is returned when an IV is not exactly 16 octets.
	ErrBadIVLength = errors.New("dwp: iv must be 16 octets")

	// ErrBadInput is returned when an argument is invalid and no more
	// specific sentinel applies: a dst whose length differs from the
	// input in Wrap/Unwrap, or a tag length outside [MinTagLen, MaxTagLen]
	// in StepG/StepV (and so in Wrap/Unwrap). Bad key or IV lengths and
	// buffer overlap have their own sentinels below.
	ErrBadInput = errors.New("dwp: bad input")

	// ErrBufferOverlap is returned when two buffers that must be disjoint
	// alias each other.
	ErrBufferOverlap = errors.New("dwp: buffers must be disjoint")

	// ErrBadMAC is returned by Unwrap and StepV when the computed tag does
	// not match the supplied tag. The destination buffer is left untouched.
	ErrBadMAC = errors.New("dwp: mac verification failed")

	// ErrNilCipherFactory is returned when a nil cipher factory is supplied
	// via WithCipherFactory.
	ErrNilCipherFactory = errors.New("dwp: nil cipher factory")

	// ErrOutOfMemory mirrors the C original's allocator-failure path. It
	// is kept for interface parity with the spec's error taxonomy; no
	// function in this package returns it, since Go's runtime aborts on
	// allocation failure rather than reporting it.
	ErrOutOfMemory = errors.New("dwp: out of memory")
)
