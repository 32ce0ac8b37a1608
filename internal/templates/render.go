package templates

import (
	"fmt"
	"sort"
	"strings"
)

// MissingTokenError reports tokens a definition uses that have no value.
type MissingTokenError struct {
	DefinitionID string
	Tokens       []string
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("template %s: no value for %s", e.DefinitionID, "{"+strings.Join(e.Tokens, "}, {")+"}")
}

const divider = "// ============================================================================"

// Render produces the source text for def. Every token must resolve
// through vars; otherwise a *MissingTokenError is returned and no text.
func Render(def Definition, vars Vars) (string, error) {
	if err := Check(def, vars); err != nil {
		return "", err
	}

	var b strings.Builder
	writeHeader(&b, def.Meta, vars)

	if imports := importBlock(def.Imports, vars); imports != "" {
		b.WriteString("\n")
		b.WriteString(imports)
	}

	for _, s := range def.Sections {
		b.WriteString("\n")
		if s.Title != "" {
			b.WriteString(divider + "\n")
			b.WriteString("// " + substitute(s.Title, vars) + "\n")
			b.WriteString(divider + "\n\n")
		}
		content := strings.TrimRight(substitute(s.Content, vars), "\n")
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Check reports whether vars covers every token def uses, without
// rendering.
func Check(def Definition, vars Vars) error {
	var missing []string
	for _, tok := range Tokens(def) {
		if _, ok := vars.Lookup(tok); !ok {
			missing = append(missing, tok)
		}
	}
	if len(missing) > 0 {
		return &MissingTokenError{DefinitionID: def.ID, Tokens: missing}
	}
	return nil
}

// Tokens returns the sorted set of tokens def requires.
func Tokens(def Definition) []string {
	seen := make(map[string]bool)
	collect := func(s string) {
		for _, t := range scanTokens(s) {
			seen[t] = true
		}
	}

	collect(def.Meta.Title)
	collect(def.Meta.Description)
	collect(def.Meta.ModuleTag)
	for _, imp := range def.Imports {
		collect(imp.From)
		for _, item := range imp.Items {
			collect(item)
		}
	}
	for _, s := range def.Sections {
		collect(s.Title)
		collect(s.Content)
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// commentSafe keeps substituted text from closing the doc comment.
var commentSafe = strings.NewReplacer("*/", "*\\/")

func writeHeader(b *strings.Builder, meta Meta, vars Vars) {
	b.WriteString("/**\n")
	b.WriteString(" * " + commentSafe.Replace(substitute(meta.Title, vars)) + "\n")
	if meta.Description != "" {
		b.WriteString(" *\n")
		for _, line := range strings.Split(commentSafe.Replace(substitute(meta.Description, vars)), "\n") {
			if line == "" {
				b.WriteString(" *\n")
				continue
			}
			b.WriteString(" * " + line + "\n")
		}
	}
	if meta.ModuleTag != "" {
		b.WriteString(" *\n")
		b.WriteString(" * @module " + commentSafe.Replace(substitute(meta.ModuleTag, vars)) + "\n")
	}
	b.WriteString(" */\n")
}

// importGroup collects the items imported from one source.
type importGroup struct {
	from  string
	items []string
	seen  map[string]bool
}

func (g *importGroup) add(items []string) {
	for _, item := range items {
		if !g.seen[item] {
			g.seen[item] = true
			g.items = append(g.items, item)
		}
	}
}

// importBlock groups imports by source in first-appearance order. Type-only
// and value imports from one source become two statements, type first.
func importBlock(imports []Import, vars Vars) string {
	type key struct {
		from     string
		typeOnly bool
	}
	groups := make(map[key]*importGroup)
	var sources []string
	seenSource := make(map[string]bool)

	for _, imp := range imports {
		from := substitute(imp.From, vars)
		items := make([]string, len(imp.Items))
		for i, item := range imp.Items {
			items[i] = substitute(item, vars)
		}
		k := key{from: from, typeOnly: imp.TypeOnly}
		g, ok := groups[k]
		if !ok {
			g = &importGroup{from: from, seen: make(map[string]bool)}
			groups[k] = g
		}
		g.add(items)
		if !seenSource[from] {
			seenSource[from] = true
			sources = append(sources, from)
		}
	}

	var b strings.Builder
	for _, from := range sources {
		// A value import of a name supersedes a type-only import of it.
		values := groups[key{from: from}]
		if g := groups[key{from: from, typeOnly: true}]; g != nil {
			var typeItems []string
			for _, item := range g.items {
				if values == nil || !values.seen[item] {
					typeItems = append(typeItems, item)
				}
			}
			if len(typeItems) > 0 {
				fmt.Fprintf(&b, "import type { %s } from \"%s\"\n", strings.Join(typeItems, ", "), from)
			}
		}
		if values != nil && len(values.items) > 0 {
			fmt.Fprintf(&b, "import { %s } from \"%s\"\n", strings.Join(values.items, ", "), from)
		}
	}
	return b.String()
}
