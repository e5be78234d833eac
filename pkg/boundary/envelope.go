package boundary

import (
	"strings"
	"unsafe"
)

// DiagnosticMessage replaces a result message that cannot be represented as a
// C string, i.e. one containing a NUL byte.
const DiagnosticMessage = "result message could not be encoded (embedded NUL byte)"

// Result mirrors the C struct returned across the boundary:
//
//	typedef struct { int success; char* message; } OperationResult;
//
// Message always points to a NUL-terminated buffer obtained from the bridge's
// Allocator. Whoever holds the Result owns that buffer and must hand it back
// through Bridge.Release exactly once. Releasing twice, releasing a Result the
// bridge did not produce, or reading Message after release is undefined; none
// of these is detected at runtime.
type Result struct {
	Success int32
	Message unsafe.Pointer
}

// Outcome is the Go-side view of a result, used by in-process callers that do
// not cross the C boundary.
type Outcome struct {
	Success bool   `yaml:"success" json:"success"`
	Message string `yaml:"message" json:"message"`
}

// Allocator owns the memory behind result messages. Memory handed to a foreign
// host must come from the foreign heap; see internal/cabi.
type Allocator interface {
	// CString copies s into a new NUL-terminated buffer. s never contains NUL.
	CString(s string) unsafe.Pointer
	// Free releases a buffer returned by CString.
	Free(p unsafe.Pointer)
}

// Ok reports whether the result signals success.
func (r Result) Ok() bool {
	return r.Success != 0
}

// Text copies the result message without taking ownership of it. It must not be
// called after the result has been released.
func (r Result) Text() string {
	if r.Message == nil {
		return ""
	}
	return string(borrowBytes(r.Message))
}

// Outcome copies r into its Go-side form. The result still has to be released.
func (r Result) Outcome() Outcome {
	return Outcome{Success: r.Ok(), Message: r.Text()}
}

func (b *Bridge) failure(msg string) Result {
	return b.envelope(false, msg)
}

func (b *Bridge) fromOutcome(o Outcome) Result {
	return b.envelope(o.Success, o.Message)
}

func (b *Bridge) envelope(ok bool, msg string) Result {
	if strings.IndexByte(msg, 0) >= 0 {
		msg = DiagnosticMessage
	}
	r := Result{Message: b.alloc.CString(msg)}
	if ok {
		r.Success = 1
	}
	return r
}

// Release frees the message buffer of a Result returned by one of the entry
// points. It must be called exactly once per Result. A nil message is ignored.
func (b *Bridge) Release(r Result) {
	if r.Message == nil {
		return
	}
	b.alloc.Free(r.Message)
}
