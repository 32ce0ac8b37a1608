package workspace

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// ExistingLibrary is a library found under the libraries root.
type ExistingLibrary struct {
	Kind        string `json:"kind"`                  // e.g., "contract"
	Name        string `json:"name"`                  // directory name, e.g., "payment"
	PackageName string `json:"packageName,omitempty"` // name from package.json, may be empty
	Path        string `json:"path"`                  // workspace-relative, slash separated
}

// ListLibraries returns the libraries already present under
// {LibrariesRoot}/{kind}/. Only directories holding a package.json count.
// Results are sorted by kind order, then name.
func ListLibraries(fs afero.Fs, ctx *Context) ([]ExistingLibrary, error) {
	var result []ExistingLibrary
	base := filepath.Join(ctx.Root, filepath.FromSlash(ctx.LibrariesRoot))

	for _, kind := range kindDirs {
		kindDir := filepath.Join(base, kind)
		if !isDir(fs, kindDir) {
			continue
		}
		entries, err := afero.ReadDir(fs, kindDir)
		if err != nil {
			continue // skip unreadable kind directories
		}

		var found []ExistingLibrary
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			libDir := filepath.Join(kindDir, entry.Name())
			data, err := afero.ReadFile(fs, filepath.Join(libDir, PackageManifestFile))
			if err != nil {
				continue
			}
			lib := ExistingLibrary{
				Kind: kind,
				Name: entry.Name(),
				Path: ctx.LibrariesRoot + "/" + kind + "/" + entry.Name(),
			}
			var m packageManifest
			if json.Unmarshal(data, &m) == nil {
				lib.PackageName = m.Name
			}
			found = append(found, lib)
		}
		sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
		result = append(result, found...)
	}
	return result, nil
}
