// Package library defines the library kinds monogen can generate and the
// decoded request shape shared by every front end. Requests are produced by
// the validation package; nothing here touches the filesystem.
package library
