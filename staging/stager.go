package staging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/value"
)

// Config controls where files are staged and whether the engine shares
// this machine's filesystem.
type Config struct {
	// Dir is the parent directory for staged and owned files. Empty means
	// a fresh directory under os.TempDir, removed again on Close.
	Dir string

	// Local is true when the engine runs on this machine.
	Local bool
}

// Stager moves File payloads across the engine boundary.
type Stager struct {
	dir     string
	ownsDir bool
	local   bool
	owned   *Table

	mu     sync.Mutex
	byPath map[string]Handle
}

// New creates a stager. A remote stager is valid but refuses every file
// operation with unsupported_kind.
func New(cfg Config) (*Stager, error) {
	s := &Stager{local: cfg.Local, owned: NewTable(), byPath: make(map[string]Handle)}
	if !cfg.Local {
		return s, nil
	}
	if cfg.Dir == "" {
		dir, err := os.MkdirTemp("", "datapin-")
		if err != nil {
			return nil, errors.Wrap(errors.PhaseStage, errors.KindInvalidData, err, "create staging directory")
		}
		s.dir = dir
		s.ownsDir = true
		return s, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, errors.Wrap(errors.PhaseStage, errors.KindInvalidData, err, "create staging directory")
	}
	s.dir = cfg.Dir
	return s, nil
}

// Local reports whether the engine shares this machine's filesystem.
func (s *Stager) Local() bool {
	return s != nil && s.local
}

// StageForSend copies files into a scope directory the engine can read for
// the duration of one request. Every file is validated before anything is
// copied, and a failure part way through removes what was already staged:
// the caller either gets a scope holding all files or an error and no files.
// The returned scope must be closed on every exit path.
func (s *Stager) StageForSend(ctx context.Context, files ...value.File) (*Scope, error) {
	if !s.Local() {
		return nil, errors.UnsupportedKind(errors.PhaseStage, nil, value.KindFile.String(),
			"file content requires an engine on the local machine")
	}

	for i, f := range files {
		if err := checkSource(f.Path); err != nil {
			return nil, errors.New(errors.PhaseStage, errors.KindInvalidData).
				Path("files[" + strconv.Itoa(i) + "]").
				Detail("cannot stage %q", f.Path).
				Cause(err).
				Build()
		}
	}

	dir, err := os.MkdirTemp(s.dir, "send-")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStage, errors.KindInvalidData, err, "create request scope")
	}
	scope := &Scope{dir: dir, files: make([]value.File, 0, len(files))}

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			scope.Close()
			return nil, err
		}
		dst := filepath.Join(dir, stagedName(f))
		if err := copyFile(f.Path, dst, 0o600); err != nil {
			scope.Close()
			return nil, errors.New(errors.PhaseStage, errors.KindInvalidData).
				Path("files[" + strconv.Itoa(i) + "]").
				Detail("stage %q", f.Path).
				Cause(err).
				Build()
		}
		staged := f
		staged.Path = dst
		scope.files = append(scope.files, staged)
	}

	Logger().Debug("staged files for send",
		zap.String("scope", dir),
		zap.Int("count", len(files)))
	return scope, nil
}

// Materialize copies a file the engine returned into storage owned by the
// stager, so the value stays valid after the request and after the engine
// discards its own copy. The copy is read-only and lives until Release or
// Close.
func (s *Stager) Materialize(ctx context.Context, f value.File) (value.File, error) {
	if !s.Local() {
		return value.File{}, errors.UnsupportedKind(errors.PhaseStage, nil, value.KindFile.String(),
			"file content requires an engine on the local machine")
	}
	if err := ctx.Err(); err != nil {
		return value.File{}, err
	}
	if err := checkSource(f.Path); err != nil {
		return value.File{}, errors.New(errors.PhaseStage, errors.KindInvalidData).
			Detail("engine returned unreadable file %q", f.Path).
			Cause(err).
			Build()
	}

	ownedDir := filepath.Join(s.dir, "owned")
	if err := os.MkdirAll(ownedDir, 0o700); err != nil {
		return value.File{}, errors.Wrap(errors.PhaseStage, errors.KindInvalidData, err, "create owned directory")
	}
	dst := filepath.Join(ownedDir, stagedName(f))
	if err := copyFile(f.Path, dst, 0o400); err != nil {
		return value.File{}, errors.Wrap(errors.PhaseStage, errors.KindInvalidData, err, "materialize "+f.Path)
	}
	h, err := s.owned.Insert(ownedFile(dst))
	if err != nil {
		removeQuietly(dst)
		return value.File{}, errors.Wrap(errors.PhaseStage, errors.KindInvalidData, err, "register owned file")
	}
	s.mu.Lock()
	s.byPath[dst] = h
	s.mu.Unlock()

	out := f
	out.Path = dst
	if out.OriginalName == "" {
		out.OriginalName = filepath.Base(f.Path)
	}
	return out, nil
}

// Release removes an owned file returned by Materialize before the stager
// is closed. Releasing a path the stager does not own is an error.
func (s *Stager) Release(f value.File) error {
	s.mu.Lock()
	h, ok := s.byPath[f.Path]
	delete(s.byPath, f.Path)
	s.mu.Unlock()
	if !ok {
		return errors.InvalidArgument(errors.PhaseStage, nil, fmt.Sprintf("%q is not an owned file", f.Path))
	}
	s.owned.Remove(h)
	return nil
}

// Owned returns the number of owned files still held.
func (s *Stager) Owned() int {
	return s.owned.Len()
}

// Close removes every owned file, and the staging directory if the stager
// created it.
func (s *Stager) Close() error {
	s.mu.Lock()
	clear(s.byPath)
	s.mu.Unlock()
	if err := s.owned.Close(); err != nil {
		return err
	}
	if s.ownsDir {
		if err := os.RemoveAll(s.dir); err != nil {
			return errors.Wrap(errors.PhaseStage, errors.KindInvalidData, err, "remove staging directory")
		}
	}
	return nil
}

// Scope owns the files staged for one request.
type Scope struct {
	dir    string
	files  []value.File
	closed bool
}

// Files returns the staged copies, in the order they were given.
func (sc *Scope) Files() []value.File {
	if sc == nil {
		return nil
	}
	return append([]value.File(nil), sc.files...)
}

// Close removes every staged file. It is safe to call on a nil scope and
// more than once.
func (sc *Scope) Close() error {
	if sc == nil || sc.closed {
		return nil
	}
	sc.closed = true
	if err := os.RemoveAll(sc.dir); err != nil {
		Logger().Warn("failed to remove staged files",
			zap.String("scope", sc.dir),
			zap.Error(err))
		return err
	}
	return nil
}

type ownedFile string

func (f ownedFile) Drop() {
	removeQuietly(string(f))
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		Logger().Warn("failed to remove owned file",
			zap.String("path", path),
			zap.Error(err))
	}
}

func stagedName(f value.File) string {
	ext := filepath.Ext(f.OriginalName)
	if ext == "" {
		ext = filepath.Ext(f.Path)
	}
	return uuid.NewString() + ext
}

func checkSource(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Chmod(dst, perm)
}
