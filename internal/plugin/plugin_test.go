package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/monogen-dev/monogen/internal/config"
	"github.com/monogen-dev/monogen/internal/generator"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/metadata"
	"github.com/monogen-dev/monogen/internal/scaffold"
	"github.com/monogen-dev/monogen/internal/validation"
	"github.com/monogen-dev/monogen/internal/workspace"
)

// --- Helpers ---

type recordingHost struct {
	libs    []metadata.Library
	configs []scaffold.ProjectConfig
	err     error
}

func (h *recordingHost) RegisterProject(lib metadata.Library, cfg scaffold.ProjectConfig) error {
	h.libs = append(h.libs, lib)
	h.configs = append(h.configs, cfg)
	return h.err
}

// isolateHome points the default config file at an empty home directory.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvName(config.KeyScope), "")
	t.Setenv(config.EnvName(config.KeyLibrariesRoot), "")
}

func unscopedTree(t *testing.T) afero.Fs {
	t.Helper()
	tree := afero.NewMemMapFs()
	if err := afero.WriteFile(tree, "/nx.json", []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return tree
}

func newTree(t *testing.T, lockfile string) afero.Fs {
	t.Helper()
	isolateHome(t)
	tree := afero.NewMemMapFs()
	files := map[string]string{
		"/package.json": `{"name": "@acme/source", "workspaces": ["packages/*"]}`,
		"/nx.json":      `{}`,
	}
	if lockfile != "" {
		files["/"+lockfile] = ""
	}
	for p, content := range files {
		if err := afero.WriteFile(tree, p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return tree
}

// --- Tests ---

func TestGeneratorRegistersProject(t *testing.T) {
	tree := newTree(t, "pnpm-lock.yaml")
	host := &recordingHost{}

	task, err := Generator(library.KindFeature, WithHost(host))(tree, map[string]any{
		"name":       "checkout",
		"includeRPC": true,
	})
	if err != nil {
		t.Fatalf("generator failed: %v", err)
	}

	if task.Outcome.Workspace.InterfaceType != workspace.InterfaceBuildPlugin {
		t.Errorf("InterfaceType = %q", task.Outcome.Workspace.InterfaceType)
	}
	if diff := cmp.Diff([]string{"pnpm install"}, task.Next); diff != "" {
		t.Errorf("Next mismatch (-want +got):\n%s", diff)
	}
	if len(host.libs) != 1 || host.libs[0].PackageName != "@acme/feature-checkout" {
		t.Fatalf("registered = %+v", host.libs)
	}
	if host.configs[0].Name != "feature-checkout" {
		t.Errorf("project config name = %q", host.configs[0].Name)
	}

	root := "/" + task.Outcome.Result.ProjectRoot
	for _, f := range []string{"/package.json", "/project.json", "/src/lib/rpc/handlers.ts"} {
		if ok, _ := afero.Exists(tree, root+f); !ok {
			t.Errorf("missing %s%s in tree", root, f)
		}
	}
}

func TestGeneratorDryRun(t *testing.T) {
	tree := newTree(t, "")
	host := &recordingHost{}

	task, err := Generator(library.KindContract, WithHost(host))(tree, map[string]any{
		"name":   "orders",
		"dryRun": true,
	})
	if err != nil {
		t.Fatalf("generator failed: %v", err)
	}
	if !task.Outcome.DryRun() || task.Next != nil {
		t.Errorf("task = %+v", task)
	}
	if len(host.libs) != 0 {
		t.Error("dry run registered a project")
	}
}

func TestGeneratorValidationError(t *testing.T) {
	_, err := Generator(library.KindInfra)(newTree(t, ""), map[string]any{"name": "cache"})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want a validation error", err)
	}
}

func TestGeneratorHostFailure(t *testing.T) {
	host := &recordingHost{err: errors.New("graph locked")}

	_, err := Generator(library.KindContract, WithHost(host))(newTree(t, ""), map[string]any{"name": "orders"})

	var execErr *generator.ExecutionError
	if !errors.As(err, &execErr) || execErr.Stage != generator.StageRegister {
		t.Fatalf("err = %v, want a register-stage failure", err)
	}
	if len(execErr.FilesWritten) == 0 {
		t.Error("FilesWritten should list the staged files")
	}
}

func TestWithScopeFallback(t *testing.T) {
	isolateHome(t)
	tree := unscopedTree(t)

	task, err := Generator(library.KindContract, WithScope("@corp"), WithLibrariesRoot("modules"))(tree, map[string]any{"name": "orders"})
	if err != nil {
		t.Fatalf("generator failed: %v", err)
	}
	if task.Outcome.Result.PackageName != "@corp/contract-orders" {
		t.Errorf("PackageName = %q", task.Outcome.Result.PackageName)
	}
	if task.Outcome.Result.ProjectRoot != "modules/contract/orders" {
		t.Errorf("ProjectRoot = %q", task.Outcome.Result.ProjectRoot)
	}
	if diff := cmp.Diff([]string{"npm install"}, task.Next); diff != "" {
		t.Errorf("Next mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratorUsesConfiguredSettings(t *testing.T) {
	isolateHome(t)
	path := config.FilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "scope: \"@corp\"\nlibraries_root: modules\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	task, err := Generator(library.KindContract)(unscopedTree(t), map[string]any{"name": "orders"})
	if err != nil {
		t.Fatalf("generator failed: %v", err)
	}
	if task.Outcome.Result.PackageName != "@corp/contract-orders" {
		t.Errorf("PackageName = %q", task.Outcome.Result.PackageName)
	}
	if task.Outcome.Result.ProjectRoot != "modules/contract/orders" {
		t.Errorf("ProjectRoot = %q", task.Outcome.Result.ProjectRoot)
	}
}

func TestGeneratorConfiguredScopeFromEnvironment(t *testing.T) {
	isolateHome(t)
	t.Setenv(config.EnvName(config.KeyScope), "@envscope")

	task, err := Generator(library.KindContract)(unscopedTree(t), map[string]any{"name": "orders"})
	if err != nil {
		t.Fatalf("generator failed: %v", err)
	}
	if task.Outcome.Result.PackageName != "@envscope/contract-orders" {
		t.Errorf("PackageName = %q", task.Outcome.Result.PackageName)
	}
}

func TestWithScopeOverridesConfiguredScope(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scope: \"@corp\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	gen := Generator(library.KindContract, WithConfigFile(path), WithScope("@team"))
	task, err := gen(unscopedTree(t), map[string]any{"name": "orders"})
	if err != nil {
		t.Fatalf("generator failed: %v", err)
	}
	if task.Outcome.Result.PackageName != "@team/contract-orders" {
		t.Errorf("PackageName = %q", task.Outcome.Result.PackageName)
	}
}

func TestGeneratorUnreadableConfig(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scope: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tree := unscopedTree(t)
	_, err := Generator(library.KindContract, WithConfigFile(path))(tree, map[string]any{"name": "orders"})
	if err == nil {
		t.Fatal("expected an error for a malformed config file")
	}
	if ok, _ := afero.DirExists(tree, "/packages"); ok {
		t.Error("tree was modified despite the config error")
	}
}

func TestCollection(t *testing.T) {
	c := Collection()
	if len(c) != len(library.Kinds) {
		t.Fatalf("len = %d", len(c))
	}
	for _, k := range library.Kinds {
		if c[string(k)] == nil {
			t.Errorf("missing generator for %s", k)
		}
	}
}
