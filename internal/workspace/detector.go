package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
)

// MaxDepth bounds the upward walk from the start path.
const MaxDepth = 10

// File names that mark a directory as a workspace root.
const (
	NxConfigFile        = "nx.json"
	PnpmWorkspaceFile   = "pnpm-workspace.yaml"
	PnpmLockFile        = "pnpm-lock.yaml"
	YarnLockFile        = "yarn.lock"
	LernaConfigFile     = "lerna.json"
	TurboConfigFile     = "turbo.json"
	PackageManifestFile = "package.json"
)

// rootMarkers qualify a directory as a workspace root on their own.
var rootMarkers = []string{
	NxConfigFile,
	PnpmWorkspaceFile,
	PnpmLockFile,
	LernaConfigFile,
	TurboConfigFile,
}

// LibrariesRootCandidates are checked in order when choosing where
// libraries live.
var LibrariesRootCandidates = []string{
	"packages/libs",
	"libs",
	"packages",
	"src/libs",
}

// kindDirs are the per-kind directories a libraries root may contain.
var kindDirs = []string{"contract", "data-access", "feature", "provider", "infra"}

// DetectionError reports that no usable workspace root was found.
type DetectionError struct {
	StartPath string
	Message   string
	Err       error
}

func (e *DetectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (from %s): %v", e.Message, e.StartPath, e.Err)
	}
	return fmt.Sprintf("%s (from %s)", e.Message, e.StartPath)
}

func (e *DetectionError) Unwrap() error { return e.Err }

// Detector finds workspace roots. The zero value uses the built-in
// candidate list and an empty fallback scope.
type Detector struct {
	// FallbackScope is used when the root package.json name is not scoped.
	FallbackScope string
	// LibrariesRoot, when set, is used verbatim instead of the candidates.
	LibrariesRoot string
}

// NewDetector returns a Detector with the given fallback scope.
func NewDetector(fallbackScope, librariesRoot string) *Detector {
	return &Detector{FallbackScope: fallbackScope, LibrariesRoot: librariesRoot}
}

// packageManifest holds the root package.json fields detection reads.
type packageManifest struct {
	Name            string            `json:"name"`
	Workspaces      json.RawMessage   `json:"workspaces"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (m *packageManifest) hasWorkspaces() bool {
	raw := bytes.TrimSpace(m.Workspaces)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// Detect walks upward from startPath and returns the first workspace root
// found within MaxDepth levels.
func (d *Detector) Detect(fs afero.Fs, startPath string, iface InterfaceType) (*Context, error) {
	start := filepath.Clean(startPath)
	root, err := findRoot(fs, start)
	if err != nil {
		return nil, err
	}

	manifest, err := readManifest(fs, root)
	if err != nil {
		return nil, &DetectionError{StartPath: start, Message: "reading root " + PackageManifestFile, Err: err}
	}

	ctx := &Context{
		Root:           root,
		Type:           TypeStandalone,
		Scope:          d.scopeFor(manifest),
		PackageManager: detectPackageManager(fs, root),
		InterfaceType:  iface,
		LibrariesRoot:  d.librariesRoot(fs, root),
	}
	if exists(fs, filepath.Join(root, NxConfigFile)) {
		ctx.Type = TypeNx
	}
	if manifest != nil {
		ctx.ToolVersion = toolVersion(manifest)
	}
	return ctx, nil
}

// findRoot returns the first ancestor of start (inclusive) that qualifies.
func findRoot(fs afero.Fs, start string) (string, error) {
	current := start
	for depth := 0; depth <= MaxDepth; depth++ {
		if isRoot(fs, current) {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", &DetectionError{
		StartPath: start,
		Message:   fmt.Sprintf("no monorepo root found within %d levels", MaxDepth),
	}
}

// isRoot reports whether dir holds a root marker or a package.json with
// workspaces. A broken package.json below the real root is skipped.
func isRoot(fs afero.Fs, dir string) bool {
	for _, marker := range rootMarkers {
		if exists(fs, filepath.Join(dir, marker)) {
			return true
		}
	}
	m, err := readManifest(fs, dir)
	return err == nil && m != nil && m.hasWorkspaces()
}

// readManifest returns nil, nil when dir has no package.json.
func readManifest(fs afero.Fs, dir string) (*packageManifest, error) {
	data, err := afero.ReadFile(fs, filepath.Join(dir, PackageManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var m packageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", PackageManifestFile, err)
	}
	return &m, nil
}

func detectPackageManager(fs afero.Fs, root string) PackageManager {
	switch {
	case exists(fs, filepath.Join(root, PnpmLockFile)):
		return PackageManagerPnpm
	case exists(fs, filepath.Join(root, YarnLockFile)):
		return PackageManagerYarn
	default:
		return PackageManagerNpm
	}
}

func (d *Detector) scopeFor(m *packageManifest) string {
	if m != nil {
		if scope, ok := ScopeOf(m.Name); ok {
			return scope
		}
	}
	return d.FallbackScope
}

// ScopeOf returns "@x" for a scoped package name "@x/y".
func ScopeOf(name string) (string, bool) {
	if !strings.HasPrefix(name, "@") {
		return "", false
	}
	i := strings.Index(name, "/")
	if i <= 1 {
		return "", false
	}
	return name[:i], true
}

func (d *Detector) librariesRoot(fs afero.Fs, root string) string {
	if d.LibrariesRoot != "" {
		return path.Clean(filepath.ToSlash(d.LibrariesRoot))
	}

	firstExisting := ""
	for _, candidate := range LibrariesRootCandidates {
		dir := filepath.Join(root, filepath.FromSlash(candidate))
		if !isDir(fs, dir) {
			continue
		}
		for _, kind := range kindDirs {
			if isDir(fs, filepath.Join(dir, kind)) {
				return candidate
			}
		}
		if firstExisting == "" {
			firstExisting = candidate
		}
	}
	if firstExisting != "" {
		return firstExisting
	}
	return LibrariesRootCandidates[0]
}

// toolVersion normalises the declared nx version ("^19.2.0" → "19.2.0").
// Unparseable ranges are returned as written.
func toolVersion(m *packageManifest) string {
	raw, ok := m.DevDependencies["nx"]
	if !ok {
		raw, ok = m.Dependencies["nx"]
	}
	if !ok {
		return ""
	}
	trimmed := strings.TrimLeft(strings.TrimSpace(raw), "^~>=v ")
	if v, err := semver.NewVersion(trimmed); err == nil {
		return v.String()
	}
	return raw
}

func exists(fs afero.Fs, p string) bool {
	ok, err := afero.Exists(fs, p)
	return err == nil && ok
}

func isDir(fs afero.Fs, p string) bool {
	ok, err := afero.DirExists(fs, p)
	return err == nil && ok
}
