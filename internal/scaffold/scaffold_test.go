package scaffold

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/monogen-dev/monogen/internal/fsys"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/metadata"
	"github.com/monogen-dev/monogen/internal/workspace"
)

var nxWorkspace = workspace.Context{
	Root:           "/repo",
	Type:           workspace.TypeNx,
	Scope:          "@acme",
	PackageManager: workspace.PackageManagerPnpm,
	LibrariesRoot:  "libs",
}

func computeLib(req library.Request, ws workspace.Context) metadata.Library {
	return metadata.Compute(metadata.InputFrom(req), ws)
}

func TestGenerateWritesFilesInOrder(t *testing.T) {
	fs := fsys.NewVirtual(nil, "")
	req := library.Request{Kind: library.KindContract, Name: "product-review"}
	lib := computeLib(req, nxWorkspace)

	written, err := Generate(fs, lib, req, nxWorkspace)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	want := []string{
		"libs/contract/product-review/package.json",
		"libs/contract/product-review/tsconfig.json",
		"libs/contract/product-review/tsconfig.lib.json",
		"libs/contract/product-review/tsconfig.spec.json",
		"libs/contract/product-review/project.json",
		"libs/contract/product-review/README.md",
	}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Errorf("written mismatch (-want +got):\n%s", diff)
	}
	for _, p := range written {
		if ok, _ := fs.Exists(p); !ok {
			t.Errorf("%s not on the tree", p)
		}
	}
}

func TestPackageJSON(t *testing.T) {
	fs := fsys.NewVirtual(nil, "")
	req := library.Request{Kind: library.KindFeature, Name: "search", Platform: library.PlatformBrowser, IncludeClientServer: true}
	lib := computeLib(req, nxWorkspace)
	if _, err := Generate(fs, lib, req, nxWorkspace); err != nil {
		t.Fatal(err)
	}

	var pkg struct {
		Name         string                     `json:"name"`
		Version      string                     `json:"version"`
		Description  string                     `json:"description"`
		Exports      map[string]json.RawMessage `json:"exports"`
		Keywords     []string                   `json:"keywords"`
		Dependencies map[string]string          `json:"dependencies"`
	}
	readJSON(t, fs, "libs/feature/search/package.json", &pkg)

	if pkg.Name != "@acme/feature-search" {
		t.Errorf("name = %q", pkg.Name)
	}
	if pkg.Version != "0.1.0" {
		t.Errorf("version = %q", pkg.Version)
	}
	if pkg.Description != "Search feature library" {
		t.Errorf("description = %q", pkg.Description)
	}
	var root map[string]string
	if err := json.Unmarshal(pkg.Exports["."], &root); err != nil {
		t.Fatalf("exports[.]: %v", err)
	}
	if root["browser"] != "./src/index.js" {
		t.Errorf("exports[.] = %v, want a browser condition", root)
	}
	if diff := cmp.Diff([]string{"type:feature", "scope:search"}, pkg.Keywords); diff != "" {
		t.Errorf("keywords (-want +got):\n%s", diff)
	}
	if pkg.Dependencies["react"] == "" || pkg.Dependencies["effect"] == "" {
		t.Errorf("dependencies = %v", pkg.Dependencies)
	}
}

func TestExportConditionByPlatform(t *testing.T) {
	tests := []struct {
		platform library.Platform
		want     string
	}{
		{library.PlatformNode, "node"},
		{library.PlatformBrowser, "browser"},
		{library.PlatformEdge, "worker"},
		{library.PlatformUniversal, ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := exportCondition(tt.platform); got != tt.want {
			t.Errorf("exportCondition(%q) = %q, want %q", tt.platform, got, tt.want)
		}
	}
}

func TestTSConfigLib(t *testing.T) {
	tests := []struct {
		platform library.Platform
		lib      []string
		types    []string
	}{
		{library.PlatformNode, []string{"es2022"}, []string{"node"}},
		{library.PlatformBrowser, []string{"es2022", "dom", "dom.iterable"}, []string{}},
		{library.PlatformUniversal, []string{"es2022", "dom", "dom.iterable"}, []string{"node"}},
		{library.PlatformEdge, []string{"es2022"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			fs := fsys.NewVirtual(nil, "")
			req := library.Request{Kind: library.KindInfra, Name: "cache", Platform: tt.platform, InfraType: library.InfraCache}
			lib := computeLib(req, nxWorkspace)
			if _, err := Generate(fs, lib, req, nxWorkspace); err != nil {
				t.Fatal(err)
			}

			var cfg struct {
				CompilerOptions struct {
					OutDir string   `json:"outDir"`
					Lib    []string `json:"lib"`
					Types  []string `json:"types"`
				} `json:"compilerOptions"`
			}
			readJSON(t, fs, "libs/infra/cache/tsconfig.lib.json", &cfg)
			if diff := cmp.Diff(tt.lib, cfg.CompilerOptions.Lib); diff != "" {
				t.Errorf("lib (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.types, cfg.CompilerOptions.Types); diff != "" {
				t.Errorf("types (-want +got):\n%s", diff)
			}
			if cfg.CompilerOptions.OutDir != "../../../dist/out-tsc" {
				t.Errorf("outDir = %q", cfg.CompilerOptions.OutDir)
			}
		})
	}
}

func TestTSConfigExtendsBaseWhenPresent(t *testing.T) {
	tree := afero.NewMemMapFs()
	fs := fsys.NewVirtual(tree, "/")
	req := library.Request{Kind: library.KindContract, Name: "orders"}
	lib := computeLib(req, nxWorkspace)

	if _, err := Generate(fs, lib, req, nxWorkspace); err != nil {
		t.Fatal(err)
	}
	without := readGenerated(t, fs, "libs/contract/orders/tsconfig.json")
	assertNotContains(t, without, `"extends"`)
	assertValidJSON(t, without)

	fs = fsys.NewVirtual(afero.NewMemMapFs(), "/")
	if err := fs.Write("tsconfig.base.json", "{}"); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(fs, lib, req, nxWorkspace); err != nil {
		t.Fatal(err)
	}
	with := readGenerated(t, fs, "libs/contract/orders/tsconfig.json")
	assertContains(t, with, `"extends": "../../../tsconfig.base.json",`)
	assertValidJSON(t, with)
}

func TestProjectJSON(t *testing.T) {
	req := library.Request{Kind: library.KindContract, Name: "product-review"}

	t.Run("nx", func(t *testing.T) {
		fs := fsys.NewVirtual(nil, "")
		lib := computeLib(req, nxWorkspace)
		if _, err := Generate(fs, lib, req, nxWorkspace); err != nil {
			t.Fatal(err)
		}
		var cfg ProjectConfig
		readJSON(t, fs, "libs/contract/product-review/project.json", &cfg)
		if cfg.Name != "contract-product-review" || cfg.ProjectType != "library" {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.SourceRoot != "libs/contract/product-review/src" {
			t.Errorf("sourceRoot = %q", cfg.SourceRoot)
		}
		build, ok := cfg.Targets["build"]
		if !ok {
			t.Fatalf("no build target in %v", cfg.Targets)
		}
		if build.Options["outputPath"] != "dist/libs/contract/product-review" {
			t.Errorf("outputPath = %q", build.Options["outputPath"])
		}
		for _, name := range []string{"test", "lint"} {
			if _, ok := cfg.Targets[name]; !ok {
				t.Errorf("missing %s target", name)
			}
		}
	})

	t.Run("standalone", func(t *testing.T) {
		ws := nxWorkspace
		ws.Type = workspace.TypeStandalone
		fs := fsys.NewVirtual(nil, "")
		lib := computeLib(req, ws)
		if _, err := Generate(fs, lib, req, ws); err != nil {
			t.Fatal(err)
		}
		content := readGenerated(t, fs, "libs/contract/product-review/project.json")
		assertNotContains(t, content, "targets")
		assertNotContains(t, content, "$schema")
		assertContains(t, content, `"projectType": "library"`)
	})
}

func TestReadme(t *testing.T) {
	fs := fsys.NewVirtual(nil, "")
	req := library.Request{Kind: library.KindProvider, Name: "payments", ExternalService: "Stripe"}
	ws := nxWorkspace
	ws.Type = workspace.TypeStandalone
	ws.PackageManager = workspace.PackageManagerNpm
	lib := computeLib(req, ws)
	if _, err := Generate(fs, lib, req, ws); err != nil {
		t.Fatal(err)
	}

	readme := readGenerated(t, fs, "libs/provider/payments/README.md")
	assertContains(t, readme, "# @acme/provider-payments\n")
	assertContains(t, readme, "| Platform | node |")
	assertContains(t, readme, "`type:provider`, `scope:payments`")
	assertContains(t, readme, `import * as payments from "@acme/provider-payments";`)
	assertContains(t, readme, "- Wraps the Stripe SDK behind an Effect service.")
	assertContains(t, readme, "npx tsc -p libs/provider/payments/tsconfig.lib.json")
}

func TestDataAccessDependsOnContract(t *testing.T) {
	req := library.Request{Kind: library.KindDataAccess, Name: "orders", ContractLibrary: "orders"}
	lib := computeLib(req, nxWorkspace)
	deps := dependencies(lib, req)

	found := false
	for _, d := range deps {
		if d.Name == "@acme/contract-orders" && d.Version == "workspace:*" {
			found = true
		}
	}
	if !found {
		t.Errorf("dependencies = %v, want @acme/contract-orders", deps)
	}
}

func TestGenerateStopsOnWriteFailure(t *testing.T) {
	tree := afero.NewMemMapFs()
	if err := tree.MkdirAll("/libs/contract/x", 0o755); err != nil {
		t.Fatal(err)
	}
	fs := fsys.NewVirtual(afero.NewReadOnlyFs(tree), "/")
	req := library.Request{Kind: library.KindContract, Name: "xy"}
	lib := computeLib(req, nxWorkspace)

	written, err := Generate(fs, lib, req, nxWorkspace)
	if err == nil {
		t.Fatal("expected error on read-only tree")
	}
	if len(written) != 0 {
		t.Errorf("written = %v, want none", written)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	req := library.Request{Kind: library.KindFeature, Name: "checkout", IncludeRPC: true, Tags: []string{"team:web"}}
	lib := computeLib(req, nxWorkspace)

	first := fsys.NewVirtual(nil, "")
	second := fsys.NewVirtual(nil, "")
	if _, err := Generate(first, lib, req, nxWorkspace); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(second, lib, req, nxWorkspace); err != nil {
		t.Fatal(err)
	}
	for _, name := range Files {
		p := "libs/feature/checkout/" + name
		if a, b := readGenerated(t, first, p), readGenerated(t, second, p); a != b {
			t.Errorf("%s differs between runs", name)
		}
	}
}

// --- Helpers ---

func readGenerated(t *testing.T, fs fsys.Adapter, p string) string {
	t.Helper()
	content, err := fs.Read(p)
	if err != nil {
		t.Fatalf("reading %s: %v", p, err)
	}
	return content
}

func readJSON(t *testing.T, fs fsys.Adapter, p string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(readGenerated(t, fs, p)), v); err != nil {
		t.Fatalf("%s is not valid JSON: %v", p, err)
	}
}

func assertValidJSON(t *testing.T, content string) {
	t.Helper()
	if !json.Valid([]byte(content)) {
		t.Errorf("invalid JSON:\n%s", content)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q, got:\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("expected content NOT to contain %q", substr)
	}
}
