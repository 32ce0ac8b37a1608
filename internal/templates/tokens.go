package templates

import "strings"

func isTokenStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTokenChar(c byte) bool {
	return isTokenStart(c) || (c >= '0' && c <= '9')
}

// tokenAt returns the token name and the index just past its closing
// brace when s[i] opens a {token}; ok is false otherwise.
func tokenAt(s string, i int) (name string, next int, ok bool) {
	if s[i] != '{' || i+1 >= len(s) || !isTokenStart(s[i+1]) {
		return "", 0, false
	}
	j := i + 1
	for j < len(s) && isTokenChar(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '}' {
		return "", 0, false
	}
	return s[i+1 : j], j + 1, true
}

// scanTokens lists the tokens in s in order of appearance. An escaped
// brace ("{{") never starts a token.
func scanTokens(s string) []string {
	var out []string
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], "{{") {
			i += 2
			continue
		}
		if name, next, ok := tokenAt(s, i); ok {
			out = append(out, name)
			i = next
			continue
		}
		i++
	}
	return out
}

// substitute replaces tokens with their values and unescapes "{{".
// Callers run Check first, so every token resolves.
func substitute(s string, vars Vars) string {
	if !strings.Contains(s, "{") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], "{{") {
			b.WriteByte('{')
			i += 2
			continue
		}
		if name, next, ok := tokenAt(s, i); ok {
			v, _ := vars.Lookup(name)
			b.WriteString(v)
			i = next
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
