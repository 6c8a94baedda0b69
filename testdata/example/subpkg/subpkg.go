// Package subpkg is a nested fixture package.
package subpkg

// Message exposes a sample constant for tests.
const Message = "hi"
