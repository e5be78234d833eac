package fsutil

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cperrin88/fsops/pkg/errors"
	"github.com/cperrin88/fsops/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	require.NoError(t, NewEngine(Options{}).CreateFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Zero(t, info.Size())
}

func TestCreateFile_TruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.txt")
	e := NewEngine(Options{})

	require.NoError(t, e.CreateFile(path))
	require.NoError(t, os.WriteFile(path, []byte("some content"), 0o644))

	require.NoError(t, e.CreateFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestCreateFile_MissingParent(t *testing.T) {
	err := NewEngine(Options{}).CreateFile(filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCreateFilePerm(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.txt")

	file, err := CreateFilePerm(testFile, 0o600)
	require.NoError(t, err)
	_, err = file.WriteString("test content")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	content, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test content", string(content))
}

func TestRename_File(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.txt")
	dst := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(src, []byte("Hello, World!"), 0o644))

	require.NoError(t, NewEngine(Options{}).Rename(src, dst))

	assertRelocated(t, src, dst, "Hello, World!")
}

func TestRename_MissingSource(t *testing.T) {
	dir := t.TempDir()

	err := NewEngine(Options{}).Rename(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.NoFileExists(t, filepath.Join(dir, "dst"))
}

func TestMove_File(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.txt")
	dst := filepath.Join(dir, "destination.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, NewEngine(Options{}).Move(src, dst))

	assertRelocated(t, src, dst, "payload")
}

func TestMove_DirectoryWithFallbackEnabled(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source_dir")
	dst := filepath.Join(dir, "destination_dir")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "subdir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "subdir", "file2.txt"), []byte("content2"), 0o644))

	require.NoError(t, NewEngine(Options{CrossVolumeFallback: true}).Move(src, dst))

	assertRelocated(t, filepath.Join(src, "subdir", "file2.txt"), filepath.Join(dst, "subdir", "file2.txt"), "content2")
	assert.NoDirExists(t, src)
}

func TestMove_MissingSource(t *testing.T) {
	dir := t.TempDir()

	err := NewEngine(Options{CrossVolumeFallback: true}).Move(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

// crossVolumeRename makes every rename fail the way hosts report a move
// between storage volumes.
func crossVolumeRename(t *testing.T) {
	t.Helper()
	orig := rename
	rename = func(oldPath, newPath string) error {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: stderrors.New("invalid cross-device link")}
	}
	t.Cleanup(func() { rename = orig })
}

func TestRename_CrossVolumeNeverFallsBack(t *testing.T) {
	crossVolumeRename(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "source.txt")
	dst := filepath.Join(dir, "destination.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	err := NewEngine(Options{CrossVolumeFallback: true}).Rename(src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCrossVolume)
	assert.FileExists(t, src)
	assert.NoFileExists(t, dst)
}

func TestMove_CrossVolumeFailsByDefault(t *testing.T) {
	crossVolumeRename(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "source.txt")
	dst := filepath.Join(dir, "destination.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	err := NewEngine(Options{}).Move(src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCrossVolume)
	assert.Equal(t, errors.CodeCrossVolume, errors.GetCode(err))
	assert.FileExists(t, src)
	assert.NoFileExists(t, dst)
}

func TestMove_CrossVolumeFallback(t *testing.T) {
	crossVolumeRename(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "source_dir")
	dst := filepath.Join(dir, "destination_dir")
	files := map[string]string{
		"file1.txt":                          "content1",
		filepath.Join("subdir", "file2.txt"): "content2",
	}
	testutil.WriteTree(t, src, files)

	require.NoError(t, NewEngine(Options{CrossVolumeFallback: true}).Move(src, dst))

	assert.Equal(t, files, testutil.ReadTree(t, dst))
	assert.NoDirExists(t, src)
}

func TestMove_CrossVolumeFallbackSourceRemovalFails(t *testing.T) {
	crossVolumeRename(t)
	origRemoveAll := removeAll
	removeAll = func(path string) error {
		return &os.PathError{Op: "unlinkat", Path: path, Err: os.ErrPermission}
	}
	t.Cleanup(func() { removeAll = origRemoveAll })

	dir := t.TempDir()
	src := filepath.Join(dir, "source_dir")
	dst := filepath.Join(dir, "destination_dir")
	testutil.WriteTree(t, src, map[string]string{"file.txt": "payload"})

	err := NewEngine(Options{CrossVolumeFallback: true}).Move(src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "copied to "+dst+" but failed to remove source")
	assert.DirExists(t, src, "source is kept when it cannot be removed")
	assert.Equal(t, map[string]string{"file.txt": "payload"}, testutil.ReadTree(t, dst))
}

func TestCopy_File(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.txt")
	dst := filepath.Join(dir, "destination.txt")
	require.NoError(t, os.WriteFile(src, []byte("Copy test content"), 0o644))

	require.NoError(t, NewEngine(Options{}).Copy(src, dst))

	copied, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "Copy test content", string(copied))
	assert.FileExists(t, src)
}

func TestCopy_FilePreservesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("only the read-only attribute exists on Windows")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "tool.sh")
	dst := filepath.Join(dir, "copy.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o600))
	require.NoError(t, os.Chmod(src, 0o750))
	require.NoError(t, os.WriteFile(dst, []byte("older and longer content"), 0o644))

	require.NoError(t, NewEngine(Options{}).Copy(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(content))
}

func TestCopy_DirectoryTree(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src_dir")
	dst := filepath.Join(dir, "dst_dir")
	files := map[string]string{
		"file1.txt":                                 "one",
		filepath.Join("sub", "file2.txt"):           "two",
		filepath.Join("sub", "deeper", "file3.bin"): "\x00\x01\x02",
	}
	testutil.WriteTree(t, src, files)
	require.NoError(t, os.Mkdir(filepath.Join(src, "empty"), 0o755))

	require.NoError(t, NewEngine(Options{}).Copy(src, dst))

	for rel, want := range files {
		got, err := os.ReadFile(filepath.Join(dst, rel))
		require.NoError(t, err, rel)
		assert.Equal(t, want, string(got), rel)
	}
	assert.DirExists(t, filepath.Join(dst, "empty"))
	assert.Equal(t, testutil.ReadTree(t, src), testutil.ReadTree(t, dst))
}

func TestCopy_SkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on Windows")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "src_dir")
	dst := filepath.Join(dir, "dst_dir")
	testutil.WriteTree(t, src, map[string]string{
		"file1.txt":                       "one",
		filepath.Join("sub", "file2.txt"): "two",
	})
	require.NoError(t, os.Symlink(filepath.Join(src, "file1.txt"), filepath.Join(src, "link")))
	require.NoError(t, os.Symlink(src, filepath.Join(src, "sub", "loop")))

	require.NoError(t, NewEngine(Options{}).Copy(src, dst))

	assert.FileExists(t, filepath.Join(dst, "file1.txt"))
	assert.FileExists(t, filepath.Join(dst, "sub", "file2.txt"))
	_, err := os.Lstat(filepath.Join(dst, "link"))
	assert.True(t, os.IsNotExist(err), "link should be omitted")
	_, err = os.Lstat(filepath.Join(dst, "sub", "loop"))
	assert.True(t, os.IsNotExist(err), "loop should be omitted")

	testutil.AssertNoSymlinks(t, dst)
}

func TestCopy_IntoExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	testutil.WriteTree(t, src, map[string]string{"a.txt": "new"})
	testutil.WriteTree(t, dst, map[string]string{"a.txt": "old", "b.txt": "untouched"})

	require.NoError(t, NewEngine(Options{}).Copy(src, dst))

	a, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(a))
	assert.FileExists(t, filepath.Join(dst, "b.txt"))
}

func TestCopy_MissingSource(t *testing.T) {
	dir := t.TempDir()

	err := NewEngine(Options{}).Copy(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.NoDirExists(t, filepath.Join(dir, "dst"))
}

func TestCopy_IntoItself(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	testutil.WriteTree(t, src, map[string]string{"a.txt": "a"})

	err := NewEngine(Options{}).Copy(src, filepath.Join(src, "nested"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrIO)
	assert.NoDirExists(t, filepath.Join(src, "nested"))
}

func TestCopy_IntoItselfThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on Windows")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	testutil.WriteTree(t, src, map[string]string{"a.txt": "a"})
	alias := filepath.Join(dir, "alias")
	require.NoError(t, os.Symlink(src, alias))

	err := NewEngine(Options{}).Copy(src, filepath.Join(alias, "nested"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrIO)
	assert.NoDirExists(t, filepath.Join(src, "nested"))
	assert.Equal(t, map[string]string{"a.txt": "a"}, testutil.ReadTree(t, src))
}

func TestCopy_ThroughSymlinkedParent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on Windows")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	testutil.WriteTree(t, src, map[string]string{"a.txt": "a"})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "backups"), 0o755))
	alias := filepath.Join(dir, "latest")
	require.NoError(t, os.Symlink(filepath.Join(dir, "backups"), alias))

	require.NoError(t, NewEngine(Options{}).Copy(src, filepath.Join(alias, "src")))
	assert.FileExists(t, filepath.Join(dir, "backups", "src", "a.txt"))
}

func TestCopy_DirectoryOntoItself(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	testutil.WriteTree(t, src, map[string]string{"a.txt": "a"})

	err := NewEngine(Options{}).Copy(src, src)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrIO)
	assert.Equal(t, map[string]string{"a.txt": "a"}, testutil.ReadTree(t, src))
}

func TestCopy_FileOntoItself(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("precious"), 0o644))

	err := NewEngine(Options{}).Copy(path, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrIO)
	assert.Contains(t, err.Error(), "same file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(content))
}

func TestCopy_FileOntoHardLink(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	link := filepath.Join(dir, "notes-link.txt")
	require.NoError(t, os.WriteFile(src, []byte("precious"), 0o644))
	if err := os.Link(src, link); err != nil {
		t.Skipf("hard links not supported here: %v", err)
	}

	err := NewEngine(Options{}).Copy(src, link)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrIO)

	content, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(content))
}

func TestCopy_DirectoryChildLinkedIntoDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	testutil.WriteTree(t, src, map[string]string{"a.txt": "precious"})
	require.NoError(t, os.Mkdir(dst, 0o755))
	if err := os.Link(filepath.Join(src, "a.txt"), filepath.Join(dst, "a.txt")); err != nil {
		t.Skipf("hard links not supported here: %v", err)
	}

	err := NewEngine(Options{}).Copy(src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrIO)
	assert.Equal(t, map[string]string{"a.txt": "precious"}, testutil.ReadTree(t, src))
}

func TestCopy_SiblingWithSharedPrefix(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data")
	testutil.WriteTree(t, src, map[string]string{"a.txt": "a"})

	require.NoError(t, NewEngine(Options{}).Copy(src, filepath.Join(dir, "data-backup")))
	assert.FileExists(t, filepath.Join(dir, "data-backup", "a.txt"))
}

func TestCopy_FailsFastWithoutRollback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission test on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	testutil.WriteTree(t, src, map[string]string{"ok.txt": "fine", "secret.txt": "hidden"})
	require.NoError(t, os.Chmod(filepath.Join(src, "secret.txt"), 0o000))

	err := NewEngine(Options{}).Copy(src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrPermissionDenied)
	assert.DirExists(t, dst, "partial destination is left in place")
}

func assertRelocated(t *testing.T, src, dst, content string) {
	t.Helper()
	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be gone")
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}
