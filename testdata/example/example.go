// Package example is a fixture tree for the Go discovery frontend.
package example

// Answer documents an exported constant.
const Answer = 42

// Greeter produces greeting messages.
type Greeter struct {
	Name string
}

// Greet returns a friendly message.
func (g *Greeter) Greet() string {
	return "hello " + g.Name
}
