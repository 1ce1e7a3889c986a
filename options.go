// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

import (
	"crypto/cipher"

	"github.com/agievich/beltdwp/belt"
)

// CipherFactory builds the underlying 16-octet block cipher from a key.
// The default, belt.NewCipher, is the only cipher spec.md recognizes for
// DWP; WithCipherFactory exists so tests can substitute a fixed-output
// stub and so the state machine stays decoupled from any one cipher
// implementation, the way the teacher config decouples the generator
// from any one PRNG source.
type CipherFactory func(key []byte) (cipher.Block, error)

// config holds the resolved settings for a State, built by applying
// Options over defaultConfig.
type config struct {
	cipherFactory CipherFactory
	maxHeaderLen  uint64
}

// Option configures a State at construction time.
type Option func(*config)

// defaultConfig returns the out-of-the-box configuration: belt.NewCipher
// as the block cipher, and an effectively unbounded header length.
func defaultConfig() config {
	return config{
		cipherFactory: belt.NewCipher,
		maxHeaderLen:  1<<63 - 1,
	}
}

// WithCipherFactory overrides the block cipher construction function.
// Passing a nil factory is a configuration error reported via
// ErrNilCipherFactory.
func WithCipherFactory(factory CipherFactory) Option {
	return func(c *config) {
		c.cipherFactory = factory
	}
}

// WithMaxHeaderLen caps the total number of header octets a State will
// accept across all StepI calls. Exceeding it is a programmer error
// reported by an assertion panic in StepI; builds with -tags release
// compile that check out and do not enforce the cap.
// There is no such limit in belt_dwp.c; it is exposed here purely as a
// defensive guard for callers that absorb untrusted, unbounded headers.
func WithMaxHeaderLen(n uint64) Option {
	return func(c *config) {
		c.maxHeaderLen = n
	}
}

func buildConfig(opts []Option) (config, error) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.cipherFactory == nil {
		return config{}, ErrNilCipherFactory
	}
	return c, nil
}
