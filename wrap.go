// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

// Wrap is the one-shot authenticated-encryption operation: it encrypts
// plaintext into dst under key and iv, authenticating header alongside
// it, and returns a tag of tagLen octets (8 <= tagLen <= 16).
//
// dst and plaintext may be the same slice (in-place encryption) or
// entirely disjoint; any other overlap returns ErrBufferOverlap. header
// may alias dst, which is why StepI runs before plaintext is ever
// copied into dst: belt_dwp.c's own callers rely on being able to wrap a
// buffer "in place" with a header drawn from the same backing array.
func Wrap(dst, key, iv, header, plaintext []byte, tagLen int, opts ...Option) ([]byte, error) {
	if !validKeyLen(len(key)) {
		return nil, ErrBadKeyLength
	}
	if len(iv) != blockSize {
		return nil, ErrBadIVLength
	}
	if len(dst) != len(plaintext) {
		return nil, ErrBadInput
	}
	if overlapsInvalidly(dst, plaintext) {
		return nil, ErrBufferOverlap
	}

	s, err := NewState(key, iv, opts...)
	if err != nil {
		return nil, err
	}

	s.StepI(header)
	s.StepE(dst, plaintext)
	return s.StepG(tagLen)
}

// Unwrap is the one-shot authenticated-decryption operation: it verifies
// tag against header and ciphertext under key and iv, and only if
// verification succeeds decrypts ciphertext into dst. On ErrBadMAC, dst
// is left untouched (spec.md's "decrypt nothing on a failed tag" rule),
// matching belt_dwp.c's beltDWPUnwrap which never writes through the
// destination pointer before the MAC check passes.
//
// dst and ciphertext may alias (in-place decryption) or be disjoint;
// any other overlap returns ErrBufferOverlap.
func Unwrap(dst, key, iv, header, ciphertext, tag []byte, opts ...Option) error {
	if !validKeyLen(len(key)) {
		return ErrBadKeyLength
	}
	if len(iv) != blockSize {
		return ErrBadIVLength
	}
	if len(dst) != len(ciphertext) {
		return ErrBadInput
	}
	if overlapsInvalidly(dst, ciphertext) {
		return ErrBufferOverlap
	}

	s, err := NewState(key, iv, opts...)
	if err != nil {
		return err
	}

	s.StepI(header)

	// Absorb and verify before ever touching dst, so a failed tag check
	// never exposes unauthenticated plaintext through dst, even if dst
	// aliases ciphertext.
	s.phase = PhasePayload
	s.absorbPayload(ciphertext)
	if err := s.StepV(tag); err != nil {
		return err
	}

	// Tag verified: it is now safe to produce plaintext, using a fresh
	// keystream cursor since the session State above has already been
	// zeroized by StepV.
	s2, err := NewState(key, iv, opts...)
	if err != nil {
		return err
	}
	defer s2.zero()
	s2.StepI(header)
	s2.keystream.xorKeystream(dst, ciphertext)

	return nil
}

// overlapsInvalidly reports whether a and b overlap in any way other
// than being the same slice or fully disjoint.
func overlapsInvalidly(a, b []byte) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	if &a[0] == &b[0] {
		return false
	}
	return slicesOverlap(a, b)
}
