// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

// The universal hash accumulator absorbs header octets and then payload
// (ciphertext) octets into a single running GF(2^128) accumulator using
// Horner's rule: accum = (accum XOR block) * r, where r is the
// authentication subkey derived at Start. Two independent 64-bit bit
// counters track how many header and payload bits have been absorbed;
// both are folded into one final block at StepG/StepV time. This mirrors
// belt_dwp.c's len[0]/len[1] fields and its absorption loop structure,
// generalized so the header and payload phases share one code path
// instead of being duplicated per STB 34.101.31 §6.

// absorbBlock folds one full 16-octet block into the accumulator:
// accum = (accum XOR block) * r.
func (s *State) absorbBlock(block []byte) {
	assert(len(block) == blockSize, "absorbBlock: block must be 16 octets")
	s.accum = s.accum.xor(loadFieldElement(block)).mulR(s.r)
}

// mulR is polyMul(e, r) written as a method for readability at call
// sites that read like Horner's rule.
func (e fieldElement) mulR(r fieldElement) fieldElement {
	return polyMul(e, r)
}

// absorbHeader feeds header octets into the accumulator. It may be
// called any number of times while the State is in PhaseHeader; octets
// are buffered internally until a full block accumulates.
func (s *State) absorbHeader(data []byte) {
	assertf(s.phase == PhaseHeader, "absorbHeader: called in phase %s, want header", s.phase)
	assert(uint64(len(data)) <= (^uint64(0)-s.lenHeaderBits)/8, "absorbHeader: header bit length would exceed 2^64-1")
	s.lenHeaderBits += uint64(len(data)) * 8
	s.absorbInto(&s.headerPartial, &s.headerPartialLen, data)
}

// absorbPayload feeds payload (always ciphertext, per spec.md §4.2) octets
// into the accumulator. Callable in PhaseHeader or PhasePayload; the
// first call closes out any pending partial header block with zero
// padding before switching phases, matching belt_dwp.c's phase-boundary
// handling.
func (s *State) absorbPayload(data []byte) {
	assertf(s.phase == PhaseHeader || s.phase == PhasePayload,
		"absorbPayload: called in phase %s, want header or payload", s.phase)

	// closeHeaderPhase is a no-op once the partial header block is empty,
	// so it runs unconditionally: callers may already have set
	// PhasePayload before calling in.
	s.closeHeaderPhase()
	s.phase = PhasePayload

	assert(uint64(len(data)) <= (^uint64(0)-s.lenPayloadBits)/8, "absorbPayload: payload bit length would exceed 2^64-1")
	s.lenPayloadBits += uint64(len(data)) * 8
	s.absorbInto(&s.payloadPartial, &s.payloadPartialLen, data)
}

// closeHeaderPhase pads any partial header block with zero octets and
// absorbs it, per spec.md §4.4's "zero-pad the final partial block of
// each phase, once, at the phase boundary" rule. A fully-empty partial
// (no header bytes at all, or an exact multiple already absorbed) is a
// no-op, matching belt_dwp.c which never absorbs a block of all zero
// padding.
func (s *State) closeHeaderPhase() {
	if s.headerPartialLen == 0 {
		return
	}
	var block [blockSize]byte
	copy(block[:], s.headerPartial[:s.headerPartialLen])
	s.absorbBlock(block[:])
	s.headerPartialLen = 0
	for i := range s.headerPartial {
		s.headerPartial[i] = 0
	}
}

// closePayloadPhase is the payload-side counterpart of closeHeaderPhase,
// invoked once at StepG/StepV time.
func (s *State) closePayloadPhase() {
	if s.payloadPartialLen == 0 {
		return
	}
	var block [blockSize]byte
	copy(block[:], s.payloadPartial[:s.payloadPartialLen])
	s.absorbBlock(block[:])
	s.payloadPartialLen = 0
	for i := range s.payloadPartial {
		s.payloadPartial[i] = 0
	}
}

// absorbInto is the shared "buffer until a full block, then absorb"
// routine used by both absorbHeader and absorbPayload.
func (s *State) absorbInto(partial *[blockSize]byte, partialLen *int, data []byte) {
	if *partialLen > 0 {
		n := copy(partial[*partialLen:], data)
		*partialLen += n
		data = data[n:]
		if *partialLen < blockSize {
			return
		}
		s.absorbBlock(partial[:])
		*partialLen = 0
	}

	for len(data) >= blockSize {
		s.absorbBlock(data[:blockSize])
		data = data[blockSize:]
	}

	if len(data) > 0 {
		*partialLen = copy(partial[:], data)
	}
}

// finalizeHash closes both phases (header first, then payload, each
// idempotent if already closed) and folds the two 64-bit bit-length
// counters into one last block, producing the accumulator value used to
// derive the authentication tag. This corresponds to belt_dwp.c's final
// "absorb len[0] || len[1]" step in beltDWPStepG_internal.
func (s *State) finalizeHash() fieldElement {
	if s.phase == PhaseHeader {
		s.closeHeaderPhase()
	}
	s.closePayloadPhase()

	var lenBlock [blockSize]byte
	putUint64LE(lenBlock[0:8], s.lenHeaderBits)
	putUint64LE(lenBlock[8:16], s.lenPayloadBits)
	s.absorbBlock(lenBlock[:])

	return s.accum
}

func putUint64LE(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * uint(i)))
	}
}
