package fsys

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Backend identifies the storage behind an Adapter.
type Backend string

// Backend constants.
const (
	BackendVirtual Backend = "virtual"
	BackendDisk    Backend = "disk"
	BackendDryRun  Backend = "dry-run"
)

// Permissions for generated files and directories.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// Adapter reads and writes workspace-relative paths.
type Adapter interface {
	Exists(p string) (bool, error)
	Read(p string) (string, error)
	// Write replaces the whole file or leaves it untouched on failure.
	Write(p, content string) error
	EnsureDir(p string) error
	Backend() Backend
}

// Error reports a failed filesystem operation.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// aferoAdapter implements Adapter on top of an afero filesystem that is
// already rooted at the workspace.
type aferoAdapter struct {
	fs      afero.Fs
	backend Backend
}

// NewVirtual returns an adapter over an in-memory tree. A nil tree gets a
// fresh afero.MemMapFs. root is the workspace root inside the tree.
func NewVirtual(tree afero.Fs, root string) Adapter {
	if tree == nil {
		tree = afero.NewMemMapFs()
	}
	return &aferoAdapter{fs: rooted(tree, root), backend: BackendVirtual}
}

// NewDisk returns an adapter over the real filesystem rooted at root.
func NewDisk(root string) Adapter {
	return &aferoAdapter{fs: rooted(afero.NewOsFs(), root), backend: BackendDisk}
}

func rooted(fs afero.Fs, root string) afero.Fs {
	if root == "" || root == "/" || root == string(filepath.Separator) {
		return fs
	}
	return afero.NewBasePathFs(fs, root)
}

func (a *aferoAdapter) Backend() Backend { return a.backend }

func (a *aferoAdapter) Exists(p string) (bool, error) {
	name, err := clean(p)
	if err != nil {
		return false, &Error{Op: "exists", Path: p, Err: err}
	}
	ok, err := afero.Exists(a.fs, name)
	if err != nil {
		return false, &Error{Op: "exists", Path: p, Err: err}
	}
	return ok, nil
}

func (a *aferoAdapter) Read(p string) (string, error) {
	name, err := clean(p)
	if err != nil {
		return "", &Error{Op: "read", Path: p, Err: err}
	}
	data, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return "", &Error{Op: "read", Path: p, Err: err}
	}
	return string(data), nil
}

func (a *aferoAdapter) EnsureDir(p string) error {
	name, err := clean(p)
	if err != nil {
		return &Error{Op: "mkdir", Path: p, Err: err}
	}
	if err := a.fs.MkdirAll(name, DirPerm); err != nil {
		return &Error{Op: "mkdir", Path: p, Err: err}
	}
	return nil
}

// Write stages content in a temp file next to the target and renames it
// into place, so a failed write never leaves a truncated file behind.
func (a *aferoAdapter) Write(p, content string) error {
	name, err := clean(p)
	if err != nil {
		return &Error{Op: "write", Path: p, Err: err}
	}
	dir := path.Dir(name)
	if err := a.fs.MkdirAll(dir, DirPerm); err != nil {
		return &Error{Op: "write", Path: p, Err: err}
	}

	tmp, err := afero.TempFile(a.fs, dir, "."+path.Base(name)+".tmp-*")
	if err != nil {
		return &Error{Op: "write", Path: p, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		a.fs.Remove(tmpName)
		return &Error{Op: "write", Path: p, Err: err}
	}
	if err := tmp.Close(); err != nil {
		a.fs.Remove(tmpName)
		return &Error{Op: "write", Path: p, Err: err}
	}
	if err := a.fs.Chmod(tmpName, FilePerm); err != nil {
		a.fs.Remove(tmpName)
		return &Error{Op: "write", Path: p, Err: err}
	}
	if err := a.fs.Rename(tmpName, name); err != nil {
		a.fs.Remove(tmpName)
		return &Error{Op: "write", Path: p, Err: err}
	}
	return nil
}

var errEscapesRoot = errors.New("path escapes workspace root")

// clean normalises a workspace-relative slash path and rejects paths that
// leave the workspace.
func clean(p string) (string, error) {
	p = filepath.ToSlash(p)
	if path.IsAbs(p) {
		return "", errEscapesRoot
	}
	c := path.Clean(p)
	if c == ".." || strings.HasPrefix(c, "../") {
		return "", errEscapesRoot
	}
	if c == "." {
		return "/", nil
	}
	return "/" + c, nil
}
