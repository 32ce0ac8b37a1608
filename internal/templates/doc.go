// Package templates renders declarative file definitions into TypeScript
// source. A Definition is plain data: header metadata, imports and ordered
// sections whose text may contain {token} placeholders. Render substitutes
// every token from a Vars value and refuses to emit a file with a token it
// cannot resolve.
//
// Literal braces that would read as a token, such as a template literal's
// ${x}, are written with a doubled opening brace: ${{x}.
package templates
