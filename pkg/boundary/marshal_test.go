package boundary

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/fsops/pkg/errors"
)

func TestPathFromHandle(t *testing.T) {
	tests := []struct {
		name    string
		handle  unsafe.Pointer
		want    Path
		wantErr error
	}{
		{name: "ascii", handle: cstr("/tmp/x/file.txt"), want: "/tmp/x/file.txt"},
		{name: "relative path kept as is", handle: cstr("a/../b/./c"), want: "a/../b/./c"},
		{name: "empty", handle: cstr(""), want: ""},
		{name: "multibyte", handle: cstr("/tmp/données/日本.txt"), want: "/tmp/données/日本.txt"},
		{name: "null handle", handle: nil, wantErr: errors.ErrNullPointer},
		{name: "invalid utf-8", handle: cbytes(0xff, 0xfe, 'a'), wantErr: errors.ErrInvalidEncoding},
		{name: "truncated sequence", handle: cbytes('/', 0xe6, 0x97), wantErr: errors.ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PathFromHandle(tt.handle)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathFromHandleCopies(t *testing.T) {
	buf := []byte("/tmp/abc\x00")
	p, err := PathFromHandle(unsafe.Pointer(&buf[0]))
	require.NoError(t, err)

	buf[5] = 'X'
	assert.Equal(t, "/tmp/abc", p.String())
}

func TestPathFromHandleStopsAtFirstNUL(t *testing.T) {
	buf := []byte("/tmp/a\x00/ignored\x00")
	p, err := PathFromHandle(unsafe.Pointer(&buf[0]))
	require.NoError(t, err)
	assert.Equal(t, Path("/tmp/a"), p)
}
