// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

import "unsafe"

// sliceAddr returns the address of a byte slice's backing array, used
// only to detect partial aliasing between caller-supplied buffers. It
// never dereferences the pointer or escapes it beyond an address
// comparison.
func sliceAddr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
