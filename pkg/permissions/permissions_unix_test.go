//go:build unix

package permissions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet_RoundTrip(t *testing.T) {
	modes := []Mode{0o644, 0o600, 0o755, 0o700, 0o444, 0o640, 0o000, 0o777}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "f.txt")
			require.NoError(t, os.WriteFile(path, nil, 0o600))

			require.NoError(t, Set(path, mode))
			got, err := Get(path)
			require.NoError(t, err)
			assert.Equal(t, mode, got)
		})
	}
}

func TestSet_IgnoresUmask(t *testing.T) {
	path := filepath.Join(t.TempDir(), "open.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	require.NoError(t, Set(path, 0o777))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o777), info.Mode().Perm())
}

func TestSet_StickyDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shared")
	require.NoError(t, os.Mkdir(dir, 0o755))

	require.NoError(t, Set(dir, Sticky|0o755))
	got, err := Get(dir)
	require.NoError(t, err)
	assert.Equal(t, Sticky|0o755, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSticky)
}

func TestFlags_RoundTripAllModes(t *testing.T) {
	for m := Mode(0); m <= PermMask; m++ {
		flags, err := FlagsFromMode(m)
		require.NoError(t, err)
		back, err := flags.Mode()
		require.NoError(t, err)
		require.Equal(t, m, back, "mode %s", m)
	}
}

func TestFlags_String(t *testing.T) {
	flags, err := FlagsFromMode(0o751)
	require.NoError(t, err)
	assert.Equal(t, "rwxr-x--x", flags.String())
	assert.Equal(t, Triple{Read: true, Write: true, Execute: true}, flags.Owner)
	assert.Equal(t, Triple{Read: true, Execute: true}, flags.Group)
	assert.Equal(t, Triple{Execute: true}, flags.Others)
}

func TestFlags_DropsSpecialBits(t *testing.T) {
	flags, err := FlagsFromMode(SetUID | 0o755)
	require.NoError(t, err)
	mode, err := flags.Mode()
	require.NoError(t, err)
	assert.Equal(t, Mode(0o755), mode)
}

func TestSetFlags_GetFlags(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "d")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, Set(dir, Sticky|0o755))

	want := Flags{
		Owner:  Triple{Read: true, Write: true, Execute: true},
		Group:  Triple{Read: true, Execute: true},
		Others: Triple{},
	}
	require.NoError(t, SetFlags(dir, want))

	got, err := GetFlags(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	mode, err := Get(dir)
	require.NoError(t, err)
	assert.Equal(t, Sticky|0o750, mode, "special bits should be preserved")
}
