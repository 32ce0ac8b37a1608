package fsys

import (
	"path"
	"strings"
)

// PlannedFile is a write a dry run would have performed.
type PlannedFile struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// Plan is an Adapter that answers reads from its inner adapter but keeps
// every write in memory. The inner adapter never sees Write or EnsureDir.
type Plan struct {
	inner   Adapter
	order   []string
	content map[string]string
	dirs    map[string]bool
}

// DryRun wraps inner so that writes are simulated.
func DryRun(inner Adapter) *Plan {
	return &Plan{
		inner:   inner,
		content: make(map[string]string),
		dirs:    make(map[string]bool),
	}
}

func (p *Plan) Backend() Backend { return BackendDryRun }

func (p *Plan) Exists(name string) (bool, error) {
	key, err := clean(name)
	if err != nil {
		return false, &Error{Op: "exists", Path: name, Err: err}
	}
	if _, ok := p.content[key]; ok || p.dirs[key] {
		return true, nil
	}
	return p.inner.Exists(name)
}

func (p *Plan) Read(name string) (string, error) {
	key, err := clean(name)
	if err != nil {
		return "", &Error{Op: "read", Path: name, Err: err}
	}
	if c, ok := p.content[key]; ok {
		return c, nil
	}
	return p.inner.Read(name)
}

func (p *Plan) Write(name, content string) error {
	key, err := clean(name)
	if err != nil {
		return &Error{Op: "write", Path: name, Err: err}
	}
	if _, seen := p.content[key]; !seen {
		p.order = append(p.order, key)
	}
	p.content[key] = content
	p.markDirs(path.Dir(key))
	return nil
}

func (p *Plan) EnsureDir(name string) error {
	key, err := clean(name)
	if err != nil {
		return &Error{Op: "mkdir", Path: name, Err: err}
	}
	p.markDirs(key)
	return nil
}

func (p *Plan) markDirs(dir string) {
	for dir != "/" && dir != "." {
		p.dirs[dir] = true
		dir = path.Dir(dir)
	}
}

// Files returns the simulated writes in the order they were made.
func (p *Plan) Files() []PlannedFile {
	files := make([]PlannedFile, 0, len(p.order))
	for _, key := range p.order {
		files = append(files, PlannedFile{
			Path:  strings.TrimPrefix(key, "/"),
			Bytes: len(p.content[key]),
		})
	}
	return files
}
