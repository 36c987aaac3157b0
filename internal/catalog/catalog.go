package catalog

import (
	"fmt"
	"sort"
)

// Category is the bucket a member is sorted into.
type Category string

const (
	CategoryModules    Category = "modules"
	CategoryClasses    Category = "classes"
	CategoryFunctions  Category = "functions"
	CategoryProperties Category = "properties"
	CategoryOthers     Category = "others"
)

// Order is the canonical bucket order. Flat indexes depend on it.
var Order = []Category{
	CategoryModules,
	CategoryClasses,
	CategoryFunctions,
	CategoryProperties,
	CategoryOthers,
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryModules, CategoryClasses, CategoryFunctions, CategoryProperties, CategoryOthers:
		return true
	}
	return false
}

// Member is one (category, name) entry of a flat list.
type Member struct {
	Category Category `json:"category" yaml:"category"`
	Name     string   `json:"name" yaml:"name"`
}

// FlatList is a catalog flattened in canonical order.
type FlatList []Member

// Names returns the member names in list order.
func (f FlatList) Names() []string {
	out := make([]string, 0, len(f))
	for _, m := range f {
		out = append(out, m.Name)
	}
	return out
}

// Find returns the member with the given name.
func (f FlatList) Find(name string) (Member, bool) {
	for _, m := range f {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Clone returns a copy of f.
func (f FlatList) Clone() FlatList {
	if f == nil {
		return nil
	}
	out := make(FlatList, len(f))
	copy(out, f)
	return out
}

// Catalog maps every category to a sorted, duplicate-free list of names.
type Catalog map[Category][]string

// New returns a catalog with all buckets present and empty.
func New() Catalog {
	c := make(Catalog, len(Order))
	for _, cat := range Order {
		c[cat] = []string{}
	}
	return c
}

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for cat, names := range c {
		out[cat] = append([]string{}, names...)
	}
	return out
}

// Counts holds bucket sizes plus the overall total.
type Counts struct {
	Modules    int `json:"modules" yaml:"modules"`
	Classes    int `json:"classes" yaml:"classes"`
	Functions  int `json:"functions" yaml:"functions"`
	Properties int `json:"properties" yaml:"properties"`
	Others     int `json:"others" yaml:"others"`
	Total      int `json:"total" yaml:"total"`
}

// Classifier assigns a category to one member name.
type Classifier func(name string) (Category, error)

// Categorize classifies each distinct name exactly once and returns the
// sorted buckets. The first classification error aborts.
func Categorize(names []string, classify Classifier) (Catalog, error) {
	c := New()
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		cat, err := classify(name)
		if err != nil {
			return nil, fmt.Errorf("classify %q: %w", name, err)
		}
		if !cat.Valid() {
			cat = CategoryOthers
		}
		c[cat] = append(c[cat], name)
	}
	for _, cat := range Order {
		sort.Strings(c[cat])
	}
	return c, nil
}

// Flatten concatenates the buckets in canonical order.
func Flatten(c Catalog) FlatList {
	flat := make(FlatList, 0, c.Len())
	for _, cat := range Order {
		for _, name := range c[cat] {
			flat = append(flat, Member{Category: cat, Name: name})
		}
	}
	return flat
}

// FromFlat rebuilds a catalog from a flat list, keeping list order inside
// each bucket.
func FromFlat(flat FlatList) Catalog {
	c := New()
	for _, m := range flat {
		c[m.Category] = append(c[m.Category], m.Name)
	}
	return c
}

// Len returns the number of names across all buckets.
func (c Catalog) Len() int {
	n := 0
	for _, cat := range Order {
		n += len(c[cat])
	}
	return n
}

// Has reports whether name is listed under cat.
func (c Catalog) Has(cat Category, name string) bool {
	for _, n := range c[cat] {
		if n == name {
			return true
		}
	}
	return false
}

// CountsOf returns per-bucket sizes of c.
func CountsOf(c Catalog) Counts {
	counts := Counts{
		Modules:    len(c[CategoryModules]),
		Classes:    len(c[CategoryClasses]),
		Functions:  len(c[CategoryFunctions]),
		Properties: len(c[CategoryProperties]),
		Others:     len(c[CategoryOthers]),
	}
	counts.Total = counts.Modules + counts.Classes + counts.Functions + counts.Properties + counts.Others
	return counts
}
