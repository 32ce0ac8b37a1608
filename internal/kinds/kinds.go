package kinds

import (
	"fmt"
	"path"
	"strings"

	"github.com/monogen-dev/monogen/internal/fsys"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/metadata"
	"github.com/monogen-dev/monogen/internal/templates"
)

// File is one source file of a library, relative to its source root.
type File struct {
	Path       string
	Definition templates.Definition
}

// Generator writes the src/ tree for one library kind.
type Generator struct {
	kind  library.Kind
	files func(req library.Request) []File
	vars  func(lib metadata.Library, req library.Request) templates.Map
}

var generators = map[library.Kind]*Generator{
	library.KindContract:   {kind: library.KindContract, files: contractFiles},
	library.KindDataAccess: {kind: library.KindDataAccess, files: dataAccessFiles, vars: dataAccessVars},
	library.KindFeature:    {kind: library.KindFeature, files: featureFiles},
	library.KindProvider:   {kind: library.KindProvider, files: providerFiles, vars: providerVars},
	library.KindInfra:      {kind: library.KindInfra, files: infraFiles, vars: infraVars},
}

// For returns the generator for k.
func For(k library.Kind) (*Generator, error) {
	g, ok := generators[k]
	if !ok {
		return nil, fmt.Errorf("no generator for library kind %q", k)
	}
	return g, nil
}

// Kind reports the library kind g generates.
func (g *Generator) Kind() library.Kind { return g.kind }

// Files returns the files req produces, barrel last.
func (g *Generator) Files(req library.Request) []File {
	files := g.files(req)
	return append(files, barrel(g.kind, files))
}

// Vars returns the substitutions available to g's definitions: the
// metadata record plus any kind-specific values taken from req.
func (g *Generator) Vars(lib metadata.Library, req library.Request) templates.Vars {
	if g.vars == nil {
		return lib
	}
	return templates.With(lib, g.vars(lib, req))
}

// Generate renders every file and writes it under lib.SourceRoot. All
// files are rendered before the first write, so a template error leaves
// the tree untouched. The returned paths are relative to the workspace
// root, in write order.
func (g *Generator) Generate(fs fsys.Adapter, lib metadata.Library, req library.Request) ([]string, error) {
	vars := g.Vars(lib, req)
	files := g.Files(req)

	rendered := make([]string, len(files))
	for i, f := range files {
		content, err := templates.Render(f.Definition, vars)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", f.Path, err)
		}
		rendered[i] = content
	}

	var written []string
	for i, f := range files {
		p := path.Join(lib.SourceRoot, f.Path)
		if err := fs.EnsureDir(path.Dir(p)); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", f.Path, err)
		}
		if err := fs.Write(p, rendered[i]); err != nil {
			return written, fmt.Errorf("writing %s: %w", f.Path, err)
		}
		written = append(written, p)
	}
	return written, nil
}

func barrel(k library.Kind, files []File) File {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "export * from \"./%s\"\n", strings.TrimSuffix(f.Path, ".ts"))
	}
	return File{
		Path: "index.ts",
		Definition: templates.Definition{
			ID: string(k) + "/index",
			Meta: templates.Meta{
				Title:       "{packageName}",
				Description: "{description}",
				ModuleTag:   "{packageName}",
			},
			Sections: []templates.Section{{Content: b.String()}},
		},
	}
}

// moduleTag is the @module value for a lib file.
func moduleTag(p string) string {
	return "{packageName}/" + strings.TrimSuffix(p, ".ts")
}
