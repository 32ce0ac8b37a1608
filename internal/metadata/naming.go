package metadata

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// segments splits a kebab-case name, dropping empty parts.
func segments(name string) []string {
	var out []string
	for _, s := range strings.Split(name, "-") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ClassName converts "product-review" to "ProductReview".
func ClassName(name string) string {
	var b strings.Builder
	for _, s := range segments(name) {
		b.WriteString(capitalize(s))
	}
	return b.String()
}

// PropertyName converts "product-review" to "productReview".
func PropertyName(name string) string {
	var b strings.Builder
	for i, s := range segments(name) {
		if i == 0 {
			b.WriteString(s)
			continue
		}
		b.WriteString(capitalize(s))
	}
	return b.String()
}

// FileName returns the kebab-case name unchanged.
func FileName(name string) string {
	return name
}

// ConstantName converts "product-review" to "PRODUCT_REVIEW".
func ConstantName(name string) string {
	return strings.ToUpper(strings.Join(segments(name), "_"))
}

// DomainName converts "product-review" to "Product Review".
func DomainName(name string) string {
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(segments(name), " "))
}
