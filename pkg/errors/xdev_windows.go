//go:build windows

package errors

import (
	stderrors "errors"

	"golang.org/x/sys/windows"
)

func isCrossDeviceErrno(err error) bool {
	return stderrors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
