// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package dwp implements DWP, the authenticated-encryption mode defined
// by STB 34.101.31 ("belt") §6: CTR-mode encryption composed with a
// GF(2^128) universal hash over a header and the resulting ciphertext,
// producing an authentication tag bound to the session's nonce.
//
// Two APIs are provided. Wrap and Unwrap are one-shot operations for
// callers who hold the whole header and payload in memory at once.
// NewState and its StepI/StepE/StepD/StepA/StepG/StepV methods expose
// the underlying streaming state machine for callers processing data
// incrementally, with call order enforced by the Phase a State is in:
// header absorption (StepI) must finish before payload processing
// (StepE, StepD, StepA) begins, and either StepG or StepV ends the
// session permanently.
//
// The block cipher itself is pluggable via CipherFactory and defaults
// to belt.NewCipher; see the dwp/belt subpackage.
package dwp
