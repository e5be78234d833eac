//go:build cgo

// Package cabi allocates result messages on the C heap so that a foreign
// caller may hold them after the Go call returns.
package cabi

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// Allocator implements boundary.Allocator with malloc and free.
type Allocator struct{}

// CString copies s into a malloc'd, NUL-terminated buffer.
func (Allocator) CString(s string) unsafe.Pointer {
	return unsafe.Pointer(C.CString(s))
}

// Free releases a buffer returned by CString.
func (Allocator) Free(p unsafe.Pointer) {
	C.free(p)
}
