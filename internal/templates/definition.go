package templates

// Meta describes the documentation header of a rendered file.
type Meta struct {
	Title       string
	Description string
	ModuleTag   string
}

// Import is one import statement source and the names taken from it.
type Import struct {
	From     string
	Items    []string
	TypeOnly bool
}

// Section is a block of file content. Title, when set, renders as a
// divider comment above the content.
type Section struct {
	Title   string
	Content string
}

// Definition is a pure description of a file's shape.
type Definition struct {
	ID       string
	Meta     Meta
	Imports  []Import
	Sections []Section
}

// Vars resolves token names to values.
type Vars interface {
	Lookup(token string) (string, bool)
}

// Map is the simplest Vars.
type Map map[string]string

// Lookup implements Vars.
func (m Map) Lookup(token string) (string, bool) {
	v, ok := m[token]
	return v, ok
}

// With layers extra values over base. Extra wins on conflicts.
func With(base Vars, extra Map) Vars {
	return layered{base: base, extra: extra}
}

type layered struct {
	base  Vars
	extra Map
}

func (l layered) Lookup(token string) (string, bool) {
	if v, ok := l.extra[token]; ok {
		return v, true
	}
	return l.base.Lookup(token)
}
