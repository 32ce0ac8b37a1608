// Package plugin is the in-process entry point for build tools that embed
// the generators. A host hands over its virtual tree and raw options; the
// generator stages files in that tree and reports the project through the
// host's Host implementation. Nothing touches the real disk until the host
// commits its tree.
package plugin
