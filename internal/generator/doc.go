// Package generator runs a library request through the generation
// pipeline:
//
//	validate → detect workspace → build adapter → compute metadata →
//	check project root → generate infrastructure → generate {kind} library →
//	register project → result
//
// Stages run in order and stop at the first failure, which is returned as
// an *ExecutionError. Nothing is retried and nothing is rolled back: the
// error lists the files written before the failing stage.
package generator
