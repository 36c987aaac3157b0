// Package habitat describes where animals live.
package habitat

// Area is a named region.
type Area struct {
	Name string
	Size float64
}

// Biome is a kind of area.
type Biome int

const (
	Forest Biome = iota
	Desert
)
