// Package workspace locates the monorepo root a library is generated into
// and infers its tooling: nx or standalone layout, package manager, npm
// scope and the directory libraries live under. Detection runs against an
// afero filesystem so the same rules apply to the real disk and to a
// build-tool's virtual tree.
package workspace
