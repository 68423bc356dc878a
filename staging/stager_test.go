package staging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/value"
)

func writeFile(t *testing.T, dir, name, content string) value.File {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return value.File{Path: path, OriginalName: name, MimeType: "text/plain"}
}

func newLocal(t *testing.T) *Stager {
	t.Helper()
	s, err := New(Config{Dir: t.TempDir(), Local: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStageForSend_ScopeRemovedOnClose(t *testing.T) {
	s := newLocal(t)
	src := t.TempDir()
	a := writeFile(t, src, "a.txt", "alpha")
	b := writeFile(t, src, "b.csv", "1,2,3")

	scope, err := s.StageForSend(context.Background(), a, b)
	require.NoError(t, err)

	staged := scope.Files()
	require.Len(t, staged, 2)
	for i, f := range staged {
		require.NotEqual(t, []value.File{a, b}[i].Path, f.Path)
		require.Equal(t, []value.File{a, b}[i].OriginalName, f.OriginalName)
		require.FileExists(t, f.Path)
	}
	require.Equal(t, ".csv", filepath.Ext(staged[1].Path))

	content, err := os.ReadFile(staged[0].Path)
	require.NoError(t, err)
	require.Equal(t, "alpha", string(content))

	require.NoError(t, scope.Close())
	for _, f := range staged {
		require.NoFileExists(t, f.Path)
	}
	require.NoDirExists(t, filepath.Dir(staged[0].Path))

	// Sources are untouched.
	require.FileExists(t, a.Path)
	require.NoError(t, scope.Close())
}

func TestStageForSend_BatchIsAllOrNothing(t *testing.T) {
	root := t.TempDir()
	s, err := New(Config{Dir: root, Local: true})
	require.NoError(t, err)
	defer s.Close()

	good := writeFile(t, t.TempDir(), "good.txt", "ok")
	missing := value.File{Path: filepath.Join(root, "nope.txt")}

	scope, err := s.StageForSend(context.Background(), good, missing)
	require.ErrorIs(t, err, errors.ErrInvalidData)
	require.Nil(t, scope)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Empty(t, entries, "no partially staged scope may remain")
}

func TestStageForSend_CancelledContextCleansUp(t *testing.T) {
	root := t.TempDir()
	s, err := New(Config{Dir: root, Local: true})
	require.NoError(t, err)
	defer s.Close()

	f := writeFile(t, t.TempDir(), "x.bin", "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.StageForSend(ctx, f)
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRemoteStager_Unsupported(t *testing.T) {
	s, err := New(Config{Local: false})
	require.NoError(t, err)
	defer s.Close()

	f := writeFile(t, t.TempDir(), "a.txt", "a")

	_, err = s.StageForSend(context.Background(), f)
	require.ErrorIs(t, err, errors.ErrUnsupportedKind)

	_, err = s.Materialize(context.Background(), f)
	require.ErrorIs(t, err, errors.ErrUnsupportedKind)
}

func TestMaterialize_OwnedUntilRelease(t *testing.T) {
	s := newLocal(t)
	engineDir := t.TempDir()
	returned := writeFile(t, engineDir, "result.dat", "payload")

	owned, err := s.Materialize(context.Background(), returned)
	require.NoError(t, err)
	require.NotEqual(t, returned.Path, owned.Path)
	require.Equal(t, "result.dat", owned.OriginalName)
	require.Equal(t, 1, s.Owned())

	// The engine discarding its copy does not affect the owned value.
	require.NoError(t, os.Remove(returned.Path))
	content, err := os.ReadFile(owned.Path)
	require.NoError(t, err)
	require.Equal(t, "payload", string(content))

	info, err := os.Stat(owned.Path)
	require.NoError(t, err)
	require.Zero(t, info.Mode().Perm()&0o222, "owned files are read-only")

	require.NoError(t, s.Release(owned))
	require.NoFileExists(t, owned.Path)
	require.Equal(t, 0, s.Owned())

	require.ErrorIs(t, s.Release(owned), errors.ErrInvalidArgument)
}

func TestClose_RemovesOwnedAndOwnDir(t *testing.T) {
	s, err := New(Config{Local: true})
	require.NoError(t, err)

	f := writeFile(t, t.TempDir(), "a.txt", "a")
	owned, err := s.Materialize(context.Background(), f)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoFileExists(t, owned.Path)
	require.NoDirExists(t, s.dir)
}

func TestRelease_OnlyDropsNamedFile(t *testing.T) {
	s := newLocal(t)
	engineDir := t.TempDir()
	ctx := context.Background()

	var owned []value.File
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		f, err := s.Materialize(ctx, writeFile(t, engineDir, name, name))
		require.NoError(t, err)
		owned = append(owned, f)
	}

	require.NoError(t, s.Release(owned[1]))
	require.NoFileExists(t, owned[1].Path)
	require.FileExists(t, owned[0].Path)
	require.FileExists(t, owned[2].Path)
	require.Equal(t, 2, s.Owned())

	// A freed handle is reused without disturbing the remaining entries.
	again, err := s.Materialize(ctx, writeFile(t, engineDir, "d.txt", "d"))
	require.NoError(t, err)
	require.NoError(t, s.Release(owned[2]))
	require.FileExists(t, again.Path)
	require.FileExists(t, owned[0].Path)

	require.NoError(t, s.Close())
	require.NoFileExists(t, again.Path)
	require.ErrorIs(t, s.Release(owned[0]), errors.ErrInvalidArgument)
}
