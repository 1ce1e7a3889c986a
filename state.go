// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

import (
	"crypto/cipher"
	"crypto/subtle"
)

// MaxTagLen is the longest authentication tag StepG/Wrap will produce.
const MaxTagLen = blockSize

// MinTagLen is the shortest authentication tag StepV/Unwrap will accept.
const MinTagLen = 8

// State holds one DWP session: the expanded block cipher, the running
// CTR keystream cursor, the universal-hash accumulator, and the phase
// the session is in. Its fields correspond to belt_dwp.c's
// belt_dwp_st (ctr, r, t/mac accumulator, len, block, filled), split
// across this file, ctr.go and uhash.go instead of one flat C struct.
//
// A State is single-use: Start (via NewState) begins a session, and
// StepG or StepV ends it and zeroizes all secret material. It is not
// safe for concurrent use by multiple goroutines.
type State struct {
	cipher cipher.Block
	phase  Phase

	keystream keystreamCursor

	r     fieldElement // authentication subkey, r = E(iv)
	accum fieldElement // running universal-hash accumulator

	lenHeaderBits  uint64
	lenPayloadBits uint64

	headerPartial     [blockSize]byte
	headerPartialLen  int
	payloadPartial    [blockSize]byte
	payloadPartialLen int

	maxHeaderLen uint64
	headerFedLen uint64
}

// NewState derives a fresh DWP session from key and iv and returns it in
// PhaseHeader, ready for StepI followed by StepE/StepD/StepA. key must be
// 16, 24, or 32 octets; iv must be exactly 16 octets (spec.md §4.1). The
// zero value of Option list selects belt.NewCipher as the block cipher.
func NewState(key, iv []byte, opts ...Option) (*State, error) {
	s, block, err := startState(key, iv, opts)
	if err != nil {
		return nil, err
	}
	initState(s, block, iv)
	return s, nil
}

// startState validates key/iv, builds the configured cipher, and returns
// a freshly allocated State with its non-cryptographic fields set. It is
// shared by NewState and NewPooledState so the two constructors cannot
// drift apart on key derivation.
func startState(key, iv []byte, opts []Option) (*State, cipher.Block, error) {
	if !validKeyLen(len(key)) {
		return nil, nil, ErrBadKeyLength
	}
	if len(iv) != blockSize {
		return nil, nil, ErrBadIVLength
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	block, err := cfg.cipherFactory(key)
	if err != nil {
		return nil, nil, err
	}
	assertf(block.BlockSize() == blockSize, "startState: cipher factory returned block size %d, want %d", block.BlockSize(), blockSize)

	return &State{
		cipher:       block,
		phase:        PhaseHeader,
		maxHeaderLen: cfg.maxHeaderLen,
	}, block, nil
}

// initState derives r and seeds the keystream cursor on an already
// allocated State, shared by NewState and NewPooledState.
func initState(s *State, block cipher.Block, iv []byte) {
	s.r = deriveR(block, iv)
	startCtr := keystreamStartCounter(iv)
	s.keystream = newKeystreamCursor(block, startCtr[:])
}

// deriveR computes the universal-hash subkey r = belt-encrypt(iv), per
// belt_dwp.c's Start (copy the IV-seeded counter into r, then encrypt
// it in place).
func deriveR(block cipher.Block, iv []byte) fieldElement {
	var rBlock [blockSize]byte
	block.Encrypt(rBlock[:], iv)
	r := loadFieldElement(rBlock[:])
	zeroBytes(rBlock[:])
	return r
}

// keystreamStartCounter returns iv advanced by one: the counter value
// the CTR keystream actually begins encrypting from. r is derived
// directly from iv (see deriveR), so starting the keystream one step
// ahead keeps the two encrypted blocks distinct — otherwise the first
// produced keystream block would equal r exactly, and any caller who
// knows 16 bytes of plaintext at offset 0 could recover the
// authentication subkey from the matching ciphertext.
func keystreamStartCounter(iv []byte) [blockSize]byte {
	var ctr [blockSize]byte
	copy(ctr[:], iv)
	incCounter(ctr[:])
	return ctr
}

func validKeyLen(n int) bool {
	return n == 16 || n == 24 || n == 32
}

// StepI absorbs header (associated, unencrypted) octets. It may be
// called any number of times, but only while the State is still in
// PhaseHeader: the first StepE, StepD, or StepA call closes the header
// phase permanently, matching the "I* before E|A" call order spec.md
// mandates. Calling StepI after the header phase has closed is a
// programmer error.
func (s *State) StepI(header []byte) {
	assertf(s.phase == PhaseHeader, "StepI: called in phase %s, want header", s.phase)

	s.headerFedLen += uint64(len(header))
	assertf(s.headerFedLen <= s.maxHeaderLen, "StepI: header length %d exceeds configured maximum %d", s.headerFedLen, s.maxHeaderLen)

	s.absorbHeader(header)
}

// StepE encrypts src into dst and folds the resulting ciphertext into
// the running hash (encrypt-then-MAC). dst and src must have equal
// length and must either be disjoint or fully overlapping (dst == src,
// i.e. in-place encryption); any other overlap is a programmer error,
// since belt_dwp.c only ever has callers do in-place or disjoint
// buffers. The first non-empty call transitions the State out of
// PhaseHeader; a zero-length call is a no-op with respect to phase, so
// StepI may still follow it.
func (s *State) StepE(dst, src []byte) {
	assertf(s.phase != PhaseFinalized, "StepE: called in phase %s", s.phase)
	assertValidOverlap(dst, src)

	s.keystream.xorKeystream(dst, src)
	if len(dst) > 0 {
		s.phase = PhasePayload
		s.absorbPayload(dst)
	}
}

// StepD decrypts src into dst, folding the ciphertext (src, the input
// actually received from the wire) into the hash before producing
// plaintext. This ordering — absorb before decrypt — is what lets dst
// alias src for in-place decryption without corrupting the value fed to
// the hash, per spec.md's aliasing rules.
func (s *State) StepD(dst, src []byte) {
	assertf(s.phase != PhaseFinalized, "StepD: called in phase %s", s.phase)
	assertValidOverlap(dst, src)

	if len(src) > 0 {
		s.phase = PhasePayload
		s.absorbPayload(src)
	}
	s.keystream.xorKeystream(dst, src)
}

// StepA absorbs additional payload-phase octets into the hash without
// encrypting or decrypting them: trailing associated data that follows
// the ciphertext on the wire but, unlike the header, is counted against
// the payload bit-length counter rather than the header one. This
// generalizes belt_dwp.c's "beltDWPStepA" which exists for exactly this
// purpose. Like StepE/StepD, a zero-length call does not transition the
// phase.
func (s *State) StepA(data []byte) {
	assertf(s.phase != PhaseFinalized, "StepA: called in phase %s", s.phase)
	if len(data) > 0 {
		s.phase = PhasePayload
		s.absorbPayload(data)
	}
}

// StepG finalizes the session and returns a tag of tagLen octets
// (8 <= tagLen <= 16). It zeroizes all secret state before returning,
// successfully or not, and moves the State to PhaseFinalized; any
// further streaming call on it is a programmer error.
func (s *State) StepG(tagLen int) ([]byte, error) {
	assertf(s.phase != PhaseFinalized, "StepG: called in phase %s", s.phase)
	defer func() {
		s.zero()
		s.phase = PhaseFinalized
	}()

	if tagLen < MinTagLen || tagLen > MaxTagLen {
		return nil, ErrBadInput
	}

	tag := s.computeTag()
	s.phase = PhaseFinalized
	return tag[:tagLen], nil
}

// StepV finalizes the session and compares the computed tag against
// wantTag in constant time, returning ErrBadMAC on mismatch. Like
// StepG, it always zeroizes secret state and moves to PhaseFinalized,
// regardless of the outcome.
func (s *State) StepV(wantTag []byte) error {
	assertf(s.phase != PhaseFinalized, "StepV: called in phase %s", s.phase)
	defer func() {
		s.zero()
		s.phase = PhaseFinalized
	}()

	if len(wantTag) < MinTagLen || len(wantTag) > MaxTagLen {
		return ErrBadInput
	}

	tag := s.computeTag()
	s.phase = PhaseFinalized

	if subtle.ConstantTimeCompare(tag[:len(wantTag)], wantTag) != 1 {
		return ErrBadMAC
	}
	return nil
}

// computeTag derives the final 16-octet tag by finalizing the hash and
// encrypting the result under the session's block cipher, matching
// belt_dwp.c's beltDWPStepG_internal: the finalized accumulator is
// encrypted directly, not XORed with a keystream block.
func (s *State) computeTag() [blockSize]byte {
	h := s.finalizeHash()

	var hBlock [blockSize]byte
	storeFieldElement(hBlock[:], h)

	var tag [blockSize]byte
	s.cipher.Encrypt(tag[:], hBlock[:])
	return tag
}

// zero wipes every piece of secret state the State holds. It is called
// via defer from StepG/StepV so that it runs on every exit path,
// including a panic unwinding through computeTag.
func (s *State) zero() {
	s.r = fieldElement{}
	s.accum = fieldElement{}
	s.lenHeaderBits = 0
	s.lenPayloadBits = 0
	zeroBytes(s.headerPartial[:])
	zeroBytes(s.payloadPartial[:])
	s.headerPartialLen = 0
	s.payloadPartialLen = 0
	s.keystream.zero()
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// assertValidOverlap enforces the aliasing rule shared by StepE and
// StepD: dst and src must either be the exact same slice (in-place) or
// entirely disjoint. Partial overlap is a programmer error because
// neither the keystream XOR nor the hash absorption is written to
// tolerate it.
func assertValidOverlap(dst, src []byte) {
	assertf(len(dst) == len(src), "dst/src length mismatch %d != %d", len(dst), len(src))
	if len(dst) == 0 {
		return
	}
	if &dst[0] == &src[0] {
		return
	}
	assert(!slicesOverlap(dst, src), "dst and src must be disjoint or identical")
}

func slicesOverlap(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	aStart, aEnd := sliceAddr(a), sliceAddr(a)+uintptr(len(a))
	bStart, bEnd := sliceAddr(b), sliceAddr(b)+uintptr(len(b))
	return aStart < bEnd && bStart < aEnd
}
