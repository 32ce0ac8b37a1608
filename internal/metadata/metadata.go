package metadata

import (
	"fmt"
	"path"
	"strings"

	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/workspace"
)

// Input holds the request fields metadata depends on.
type Input struct {
	Name        string
	Kind        library.Kind
	Directory   string
	Description string
	Tags        []string
	Platform    library.Platform
	Version     string
}

// InputFrom extracts the metadata input from a validated request.
func InputFrom(req library.Request) Input {
	return Input{
		Name:        req.Name,
		Kind:        req.Kind,
		Directory:   req.Directory,
		Description: req.Description,
		Tags:        req.Tags,
		Platform:    req.Platform,
		Version:     req.Version,
	}
}

// Library is the derived metadata for one generated library.
type Library struct {
	Name           string       `json:"name"`
	ClassName      string       `json:"className"`
	PropertyName   string       `json:"propertyName"`
	FileName       string       `json:"fileName"`
	ConstantName   string       `json:"constantName"`
	DomainName     string       `json:"domainName"`
	ProjectName    string       `json:"projectName"`
	PackageName    string       `json:"packageName"`
	ProjectRoot    string       `json:"projectRoot"`
	SourceRoot     string       `json:"sourceRoot"`
	DistRoot       string       `json:"distRoot"`
	Tags           []string     `json:"tags"`
	Description    string       `json:"description"`
	LibraryType    library.Kind `json:"libraryType"`
	OffsetFromRoot string       `json:"offsetFromRoot"`

	Scope    string           `json:"scope"`
	Platform library.Platform `json:"platform,omitempty"`
	Version  string           `json:"version"`
}

// Compute derives Library from in and ws. It does not read ws beyond its
// Scope and LibrariesRoot.
func Compute(in Input, ws workspace.Context) Library {
	projectName := string(in.Kind) + "-" + in.Name

	projectRoot := path.Join(ws.LibrariesRoot, string(in.Kind), in.Name)
	if in.Directory != "" {
		projectRoot = path.Join(in.Directory, in.Name)
	}

	description := in.Description
	if description == "" {
		description = fmt.Sprintf("%s %s library", DomainName(in.Name), in.Kind.Label())
	}

	platform := in.Platform
	if platform == "" {
		platform = in.Kind.DefaultPlatform()
	}

	version := in.Version
	if version == "" {
		version = library.DefaultVersion
	}

	return Library{
		Name:           in.Name,
		ClassName:      ClassName(in.Name),
		PropertyName:   PropertyName(in.Name),
		FileName:       FileName(in.Name),
		ConstantName:   ConstantName(in.Name),
		DomainName:     DomainName(in.Name),
		ProjectName:    projectName,
		PackageName:    ws.Scope + "/" + projectName,
		ProjectRoot:    projectRoot,
		SourceRoot:     projectRoot + "/src",
		DistRoot:       "dist/" + projectRoot,
		Tags:           composeTags(in.Kind, in.Name, in.Tags),
		Description:    description,
		LibraryType:    in.Kind,
		OffsetFromRoot: OffsetFromRoot(projectRoot),
		Scope:          ws.Scope,
		Platform:       platform,
		Version:        version,
	}
}

// composeTags builds type:, scope: and caller tags, de-duplicated in
// first-seen order. A caller-supplied scope: tag replaces the default one.
func composeTags(kind library.Kind, name string, extra []string) []string {
	scopeTag := "scope:" + name
	for _, t := range extra {
		if strings.HasPrefix(t, "scope:") {
			scopeTag = t
			break
		}
	}

	candidates := append([]string{"type:" + string(kind), scopeTag}, extra...)
	seen := make(map[string]bool, len(candidates))
	tags := make([]string, 0, len(candidates))
	for _, t := range candidates {
		if seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// OffsetFromRoot returns the relative path from projectRoot back to the
// workspace root, e.g. "libs/contract/x" → "../../../".
func OffsetFromRoot(projectRoot string) string {
	clean := path.Clean(projectRoot)
	if clean == "." || clean == "" {
		return "./"
	}
	return strings.Repeat("../", strings.Count(clean, "/")+1)
}

// Tokens exposes the metadata as template substitutions. The token names
// are the JSON field names.
func (l Library) Tokens() map[string]string {
	return map[string]string{
		"name":           l.Name,
		"className":      l.ClassName,
		"propertyName":   l.PropertyName,
		"fileName":       l.FileName,
		"constantName":   l.ConstantName,
		"domainName":     l.DomainName,
		"projectName":    l.ProjectName,
		"packageName":    l.PackageName,
		"projectRoot":    l.ProjectRoot,
		"sourceRoot":     l.SourceRoot,
		"distRoot":       l.DistRoot,
		"description":    l.Description,
		"libraryType":    string(l.LibraryType),
		"offsetFromRoot": l.OffsetFromRoot,
		"scope":          l.Scope,
		"platform":       string(l.Platform),
		"version":        l.Version,
	}
}

// Lookup implements templates.Vars.
func (l Library) Lookup(token string) (string, bool) {
	v, ok := l.Tokens()[token]
	return v, ok
}
