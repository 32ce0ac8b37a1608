// Package fsys is the filesystem adapter generation runs against. One
// interface covers an in-memory tree (build-plugin and tests) and the real
// disk (CLI and MCP server); both are afero filesystems rooted at the
// workspace, so callers only ever see workspace-relative slash paths.
package fsys
