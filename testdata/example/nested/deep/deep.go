// Package deep sits below a directory with no Go files of its own, so its
// parent surfaces as a namespace package.
package deep

// Depth reports how far down this package lives.
const Depth = 2
