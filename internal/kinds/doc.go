// Package kinds holds the template definitions for each library kind and
// writes a library's src/ tree from them. Every kind ends its tree with a
// barrel src/index.ts that re-exports the lib files in write order.
package kinds
