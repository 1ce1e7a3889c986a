// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build !release

package dwp

import "fmt"

// assertionsEnabled is true in debug builds (the default). Build with
// -tags release to compile precondition checks out entirely, matching the
// spec's "debug-mode assertion; release mode is undefined behavior for
// performance" taxonomy for programmer errors.
const assertionsEnabled = true

// assert panics with msg if cond is false. assert is reserved for
// programmer errors: precondition violations such as calling StepI after
// payload absorption has begun, or stepping a finalized State. These are
// never returned as recoverable errors.
func assert(cond bool, msg string) {
	if !cond {
		panic("dwp: assertion failed: " + msg)
	}
}

// assertf is assert with a formatted message.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("dwp: assertion failed: "+format, args...))
	}
}
