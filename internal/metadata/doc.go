// Package metadata derives every naming, path and tag value a generated
// library needs from the requested name, kind and detected workspace.
// Compute is pure: identical inputs always give identical output and it
// never fails once the name has passed validation.
package metadata
