//go:build unix

package errors

import (
	stderrors "errors"

	"golang.org/x/sys/unix"
)

func isCrossDeviceErrno(err error) bool {
	return stderrors.Is(err, unix.EXDEV)
}
