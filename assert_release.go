// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build release

package dwp

// assertionsEnabled is false in release builds (-tags release). Precondition
// checks compile to no-ops; violating a precondition is undefined behavior,
// traded for the cost of the check on the hot path.
const assertionsEnabled = false

// assert is a no-op in release builds.
func assert(cond bool, msg string) {}

// assertf is a no-op in release builds.
func assertf(cond bool, format string, args ...interface{}) {}
