package fsys

import (
	"testing"

	"github.com/spf13/afero"
)

// countingAdapter counts writes that reach it.
type countingAdapter struct {
	Adapter
	writes int
	dirs   int
}

func (c *countingAdapter) Write(p, content string) error {
	c.writes++
	return c.Adapter.Write(p, content)
}

func (c *countingAdapter) EnsureDir(p string) error {
	c.dirs++
	return c.Adapter.EnsureDir(p)
}

func TestDryRunNeverWritesInner(t *testing.T) {
	inner := &countingAdapter{Adapter: NewVirtual(nil, "/")}
	plan := DryRun(inner)

	if err := plan.Write("libs/a/package.json", "{}"); err != nil {
		t.Fatal(err)
	}
	if err := plan.EnsureDir("libs/a/src"); err != nil {
		t.Fatal(err)
	}
	if err := plan.Write("libs/a/src/index.ts", "export {}"); err != nil {
		t.Fatal(err)
	}

	if inner.writes != 0 || inner.dirs != 0 {
		t.Errorf("inner saw %d writes and %d mkdirs, want 0", inner.writes, inner.dirs)
	}

	files := plan.Files()
	if len(files) != 2 {
		t.Fatalf("Files() = %v", files)
	}
	if files[0].Path != "libs/a/package.json" || files[0].Bytes != 2 {
		t.Errorf("files[0] = %+v", files[0])
	}
	if files[1].Path != "libs/a/src/index.ts" {
		t.Errorf("files[1] = %+v", files[1])
	}
}

func TestDryRunReadsThrough(t *testing.T) {
	tree := afero.NewMemMapFs()
	afero.WriteFile(tree, "/package.json", []byte(`{"name":"@acme/root"}`), 0644)
	plan := DryRun(NewVirtual(tree, "/"))

	got, err := plan.Read("package.json")
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"name":"@acme/root"}` {
		t.Errorf("Read() = %q", got)
	}

	plan.Write("libs/x/file.ts", "planned")
	if ok, _ := plan.Exists("libs/x"); !ok {
		t.Error("planned parent directory should exist in the plan")
	}
	if ok, _ := afero.Exists(tree, "/libs/x/file.ts"); ok {
		t.Error("dry run leaked a file into the tree")
	}
	if got, _ := plan.Read("libs/x/file.ts"); got != "planned" {
		t.Errorf("Read() of planned file = %q", got)
	}
}

func TestTrackerRecordsOnlySuccessfulWrites(t *testing.T) {
	base := afero.NewMemMapFs()
	tr := Track(NewVirtual(base, "/"))

	if err := tr.Write("a.txt", "a"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Write("../b.txt", "b"); err == nil {
		t.Fatal("expected escape error")
	}
	if err := tr.Write("c/d.txt", "d"); err != nil {
		t.Fatal(err)
	}

	got := tr.Written()
	if len(got) != 2 || got[0] != "a.txt" || got[1] != "c/d.txt" {
		t.Errorf("Written() = %v", got)
	}
}
