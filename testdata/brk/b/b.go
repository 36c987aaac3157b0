// Package b compiles on its own; its test file does not.
package b

// Item is imported by package a.
type Item struct {
	Name string
}
