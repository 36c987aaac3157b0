// Package a imports a package whose tests do not compile.
package a

import "github.com/seitarof/go-explorer/testdata/brk/b"

// Wrapper holds an Item.
type Wrapper struct {
	Inner b.Item
}

// Use builds an Item.
func Use(name string) b.Item {
	return b.Item{Name: name}
}
