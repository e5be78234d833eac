//go:build !unix && !windows

package errors

func isCrossDeviceErrno(error) bool {
	return false
}
