package templates

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func sampleDefinition() Definition {
	return Definition{
		ID: "sample/service",
		Meta: Meta{
			Title:       "{className} Service",
			Description: "Service interface for {domainName}.",
			ModuleTag:   "{packageName}/service",
		},
		Imports: []Import{
			{From: "effect", Items: []string{"Context", "Effect"}},
			{From: "effect", Items: []string{"Layer"}, TypeOnly: true},
			{From: "./errors", Items: []string{"{className}Error"}, TypeOnly: true},
			{From: "effect", Items: []string{"Effect", "Layer"}},
		},
		Sections: []Section{
			{Title: "Service Tag", Content: "export class {className}Service {}\n"},
			{Content: "export const {constantName}_KEY = \"{fileName}\""},
		},
	}
}

func sampleVars() Map {
	return Map{
		"className":    "ProductReview",
		"domainName":   "Product Review",
		"packageName":  "@acme/contract-product-review",
		"constantName": "PRODUCT_REVIEW",
		"fileName":     "product-review",
	}
}

func TestRender(t *testing.T) {
	got, err := Render(sampleDefinition(), sampleVars())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := `/**
 * ProductReview Service
 *
 * Service interface for Product Review.
 *
 * @module @acme/contract-product-review/service
 */

import { Context, Effect, Layer } from "effect"
import type { ProductReviewError } from "./errors"

// ============================================================================
// Service Tag
// ============================================================================

export class ProductReviewService {}

export const PRODUCT_REVIEW_KEY = "product-review"
`
	if got != want {
		t.Errorf("Render() mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRenderMissingToken(t *testing.T) {
	vars := sampleVars()
	delete(vars, "fileName")
	delete(vars, "domainName")

	out, err := Render(sampleDefinition(), vars)
	if out != "" {
		t.Errorf("Render() returned output on failure: %q", out)
	}
	var missing *MissingTokenError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingTokenError", err)
	}
	if !reflect.DeepEqual(missing.Tokens, []string{"domainName", "fileName"}) {
		t.Errorf("Tokens = %v", missing.Tokens)
	}
	if !strings.Contains(err.Error(), "sample/service") || !strings.Contains(err.Error(), "{fileName}") {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestTokens(t *testing.T) {
	got := Tokens(sampleDefinition())
	want := []string{"className", "constantName", "domainName", "fileName", "packageName"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestBracesThatAreNotTokens(t *testing.T) {
	def := Definition{
		ID:   "braces",
		Meta: Meta{Title: "Braces"},
		Sections: []Section{{Content: "import { Effect } from \"effect\"\nconst x = {}\nconst y = `${{name}`\nconst z = {1}"}},
	}
	if toks := Tokens(def); len(toks) != 0 {
		t.Fatalf("Tokens() = %v, want none", toks)
	}
	got, err := Render(def, Map{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "import { Effect } from \"effect\"") {
		t.Errorf("spaced braces altered:\n%s", got)
	}
	if !strings.Contains(got, "const y = `${name}`") {
		t.Errorf("escaped brace not unescaped:\n%s", got)
	}
	if !strings.Contains(got, "const z = {1}") {
		t.Errorf("numeric braces altered:\n%s", got)
	}
}

func TestRenderNoImports(t *testing.T) {
	def := Definition{
		ID:       "plain",
		Meta:     Meta{Title: "Plain"},
		Sections: []Section{{Content: "export {}"}},
	}
	got, err := Render(def, Map{})
	if err != nil {
		t.Fatal(err)
	}
	want := "/**\n * Plain\n */\n\nexport {}\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestTypeOnlyImportSupersededByValue(t *testing.T) {
	def := Definition{
		ID:   "imports",
		Meta: Meta{Title: "Imports"},
		Imports: []Import{
			{From: "effect", Items: []string{"Effect"}, TypeOnly: true},
			{From: "effect", Items: []string{"Effect"}},
		},
	}
	got, err := Render(def, Map{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "import type") {
		t.Errorf("type import should be dropped when the value is imported:\n%s", got)
	}
	if !strings.Contains(got, "import { Effect } from \"effect\"") {
		t.Errorf("missing value import:\n%s", got)
	}
}

func TestWith(t *testing.T) {
	vars := With(Map{"a": "1", "b": "2"}, Map{"b": "3", "c": "4"})
	for tok, want := range map[string]string{"a": "1", "b": "3", "c": "4"} {
		if got, ok := vars.Lookup(tok); !ok || got != want {
			t.Errorf("Lookup(%q) = %q, %v; want %q", tok, got, ok, want)
		}
	}
	if _, ok := vars.Lookup("d"); ok {
		t.Error("Lookup(d) should fail")
	}
}

func TestHeaderCannotBeClosedBySubstitutedText(t *testing.T) {
	def := Definition{
		ID: "sample/barrel",
		Meta: Meta{
			Title:       "{className}",
			Description: "{description}",
			ModuleTag:   "{packageName}",
		},
		Sections: []Section{{Content: "export * from \"./lib/errors\"\n"}},
	}
	vars := Map{
		"className":   "Orders",
		"description": "Orders */ export const injected = 1 /*",
		"packageName": "@acme/contract-orders",
	}

	got, err := Render(def, vars)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	header := got[:strings.Index(got, " */\n")+len(" */\n")]
	if strings.Count(got, "*/") != 1 {
		t.Errorf("header closed early:\n%s", got)
	}
	if !strings.Contains(header, `Orders *\/ export const injected = 1 /*`) {
		t.Errorf("description not escaped inside the header:\n%s", header)
	}
	if strings.Contains(got[len(header):], "injected") {
		t.Errorf("description leaked into code:\n%s", got)
	}
}
