// Package zoo is a fixture for exploration tests.
package zoo

import "github.com/seitarof/go-explorer/testdata/zoo/habitat"

// MaxAnimals bounds the registry.
const MaxAnimals = 64

// Registry holds every animal by name.
var Registry = map[string]Animal{}

// Greeter builds greetings.
var Greeter = func(name string) string { return "hello " + name }

// Animal is anything that can speak.
type Animal interface {
	// Speak returns the animal's sound.
	Speak() string
}

// Pet is an Animal with a name.
type Pet interface {
	Animal
	Name() string
}

// Base carries identity shared by all animals.
type Base struct {
	// ID is unique per zoo.
	ID  int
	Tag string
}

// Describe renders the identity.
func (b *Base) Describe() string { return b.Tag }

// Legs counts legs.
type Legs struct {
	Count int
}

// Dog is a four legged pet.
type Dog struct {
	Base
	Legs
	// Owner is who takes care of the dog.
	Owner string
	home  habitat.Area
}

// Speak barks.
func (d Dog) Speak() string { return "woof" }

// Name returns the tag.
func (d *Dog) Name() string { return d.Tag }

// Fetch returns how many items were fetched.
func (d *Dog) Fetch(items []string, limit int) (int, error) {
	if len(items) < limit {
		return len(items), nil
	}
	return limit, nil
}

// Puppy is a young dog.
type Puppy struct {
	*Dog
	AgeWeeks int
}

type Celsius float64

// NewDog builds a dog living in area.
func NewDog(owner string, area habitat.Area) *Dog {
	return &Dog{Owner: owner, home: area}
}

type Empty struct{}

type unexported struct{}

// Tags labels an animal.
type Tags struct {
	Code string
}

// Chip is an implanted identifier.
type Chip struct {
	Code string
}

// Tracked embeds two types that both declare Code.
type Tracked struct {
	Tags
	Chip
	Name string
}
