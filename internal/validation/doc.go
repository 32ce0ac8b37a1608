// Package validation decodes generation requests. Each library kind has an
// embedded JSON Schema extending a shared base; a request is checked against
// its kind's schema before any workspace detection or filesystem access, and
// every failure is reported with the offending field path.
package validation
