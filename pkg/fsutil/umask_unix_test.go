//go:build unix

package fsutil

import (
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

// umask reads the process umask without changing it.
func umask(t *testing.T) os.FileMode {
	t.Helper()
	old := unix.Umask(0)
	unix.Umask(old)
	return os.FileMode(old)
}
