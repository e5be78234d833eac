package boundary

import (
	"testing"
	"unsafe"
)

// heapAllocator stands in for the C heap. It keeps every live buffer reachable
// and flags frees of unknown pointers.
type heapAllocator struct {
	t      *testing.T
	live   map[unsafe.Pointer][]byte
	allocs int
	frees  int
}

func newHeapAllocator(t *testing.T) *heapAllocator {
	t.Helper()
	a := &heapAllocator{t: t, live: make(map[unsafe.Pointer][]byte)}
	t.Cleanup(func() {
		if len(a.live) != 0 {
			t.Errorf("%d result message(s) never released", len(a.live))
		}
	})
	return a
}

func (a *heapAllocator) CString(s string) unsafe.Pointer {
	buf := append([]byte(s), 0)
	p := unsafe.Pointer(&buf[0])
	a.live[p] = buf
	a.allocs++
	return p
}

func (a *heapAllocator) Free(p unsafe.Pointer) {
	if _, ok := a.live[p]; !ok {
		a.t.Errorf("free of unknown or already released pointer %p", p)
		return
	}
	delete(a.live, p)
	a.frees++
}

// cstr returns a NUL-terminated copy of s owned by the test.
func cstr(s string) unsafe.Pointer {
	buf := append([]byte(s), 0)
	return unsafe.Pointer(&buf[0])
}

// cbytes is cstr for arbitrary, possibly non-UTF-8, bytes.
func cbytes(b ...byte) unsafe.Pointer {
	buf := append(append([]byte{}, b...), 0)
	return unsafe.Pointer(&buf[0])
}

// consume reads a result and releases it.
func consume(b *Bridge, r Result) Outcome {
	out := r.Outcome()
	b.Release(r)
	return out
}
