package fsys

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestVirtualWriteRead(t *testing.T) {
	tree := afero.NewMemMapFs()
	a := NewVirtual(tree, "/")

	if err := a.Write("libs/contract/x/package.json", "{}"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := a.Read("libs/contract/x/package.json")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got != "{}" {
		t.Errorf("Read() = %q, want %q", got, "{}")
	}

	// The underlying tree sees the same file.
	data, err := afero.ReadFile(tree, "/libs/contract/x/package.json")
	if err != nil {
		t.Fatalf("tree read: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("tree content = %q", data)
	}
}

func TestVirtualRootedSubdirectory(t *testing.T) {
	tree := afero.NewMemMapFs()
	a := NewVirtual(tree, "/repo")

	if err := a.Write("a.txt", "hi"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if ok, _ := afero.Exists(tree, "/repo/a.txt"); !ok {
		t.Error("expected /repo/a.txt in the tree")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	tree := afero.NewMemMapFs()
	a := NewVirtual(tree, "/")

	if err := a.Write("dir/file.ts", "export {}"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	entries, err := afero.ReadDir(tree, "/dir")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "file.ts" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want [file.ts]", names)
	}
}

func TestWriteFailureKeepsExistingContent(t *testing.T) {
	base := afero.NewMemMapFs()
	if err := afero.WriteFile(base, "/keep.txt", []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}
	a := NewVirtual(afero.NewReadOnlyFs(base), "/")

	err := a.Write("keep.txt", "replacement")
	if err == nil {
		t.Fatal("expected write to read-only tree to fail")
	}
	var fsErr *Error
	if !errors.As(err, &fsErr) {
		t.Fatalf("error type = %T, want *fsys.Error", err)
	}
	if fsErr.Op != "write" || fsErr.Path != "keep.txt" {
		t.Errorf("error = %+v", fsErr)
	}

	data, _ := afero.ReadFile(base, "/keep.txt")
	if string(data) != "original" {
		t.Errorf("content = %q, want original", data)
	}
}

func TestExistsAndEnsureDir(t *testing.T) {
	a := NewVirtual(nil, "/")

	ok, err := a.Exists("libs")
	if err != nil || ok {
		t.Fatalf("Exists() = %v, %v; want false, nil", ok, err)
	}
	if err := a.EnsureDir("libs/feature"); err != nil {
		t.Fatalf("EnsureDir() error: %v", err)
	}
	ok, err = a.Exists("libs/feature")
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v; want true, nil", ok, err)
	}
}

func TestReadMissing(t *testing.T) {
	a := NewVirtual(nil, "/")
	_, err := a.Read("nope.txt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestPathEscapeRejected(t *testing.T) {
	a := NewVirtual(nil, "/")
	for _, p := range []string{"../outside", "/abs/path", "a/../../b"} {
		if err := a.Write(p, "x"); err == nil {
			t.Errorf("Write(%q) should fail", p)
		} else if !strings.Contains(err.Error(), "escapes workspace root") {
			t.Errorf("Write(%q) error = %v", p, err)
		}
	}
}

func TestDisk(t *testing.T) {
	root := t.TempDir()
	a := NewDisk(root)
	if a.Backend() != BackendDisk {
		t.Errorf("Backend() = %q", a.Backend())
	}

	if err := a.Write("pkg/src/index.ts", "export {}\n"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "pkg", "src", "index.ts"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "export {}\n" {
		t.Errorf("content = %q", data)
	}

	info, err := os.Stat(filepath.Join(root, "pkg", "src", "index.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != FilePerm {
		t.Errorf("permissions = %o, want %o", perm, FilePerm)
	}
}
