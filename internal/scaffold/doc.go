// Package scaffold writes the supporting files every generated library
// needs: package manifest, TypeScript compiler configs, project descriptor
// and README. The domain sources under src/ are written by package kinds.
//
// Text files are rendered from embedded text/template files; project.json
// is marshalled from ProjectConfig so a build-plugin host can register the
// same value it finds on disk.
package scaffold
