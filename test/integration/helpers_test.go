//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupWorkspace creates an nx + pnpm workspace in a temp dir and points
// HOME at another one so no user config leaks in.
func setupWorkspace(t *testing.T) string {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"MONOGEN_SCOPE", "MONOGEN_LIBRARIES_ROOT"} {
		t.Setenv(k, "")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "@acme/source",
  "private": true,
  "workspaces": ["libs/*/*"],
  "devDependencies": {"nx": "^19.2.0"}
}
`)
	writeFile(t, filepath.Join(root, "nx.json"), "{}\n")
	writeFile(t, filepath.Join(root, "pnpm-lock.yaml"), "lockfileVersion: '9.0'\n")
	writeFile(t, filepath.Join(root, "tsconfig.base.json"), "{}\n")
	if err := os.MkdirAll(filepath.Join(root, "libs"), 0755); err != nil {
		t.Fatalf("creating libs: %v", err)
	}
	return root
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
