// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

import "sync"

// statePool recycles the *State allocation itself (not its cryptographic
// material, which is always rederived) across short-lived sessions, the
// same role the teacher's randomBytesPool plays for its random-byte
// scratch buffers: avoid an allocation per call on a hot path without
// sharing any secret state between uses.
var statePool = sync.Pool{
	New: func() interface{} {
		return new(State)
	},
}

// NewPooledState behaves exactly like NewState, but obtains its backing
// *State from a package-level sync.Pool instead of allocating one.
// Callers that use NewPooledState must release the returned State with
// PutState once finished — typically right after StepG/StepV, since a
// finalized State is never otherwise useful. Discarding a pooled State
// without calling PutState is safe (it is simply never recycled) but
// forgoes the pool's benefit.
func NewPooledState(key, iv []byte, opts ...Option) (*State, error) {
	fresh, block, err := startState(key, iv, opts)
	if err != nil {
		return nil, err
	}

	s := statePool.Get().(*State)
	*s = *fresh
	initState(s, block, iv)

	return s, nil
}

// PutState returns a finalized State to the pool for reuse. It is safe
// to call on a State that has already been zeroized by StepG/StepV (the
// common case) or on one that never reached finalization; either way
// PutState wipes all fields itself before returning the struct to the
// pool, so no secret material survives into the next borrower.
func PutState(s *State) {
	if s == nil {
		return
	}
	s.zero()
	*s = State{}
	statePool.Put(s)
}
