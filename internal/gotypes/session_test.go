package gotypes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/go-explorer/internal/catalog"
	"github.com/seitarof/go-explorer/internal/explore"
	"github.com/seitarof/go-explorer/internal/heritage"
)

func TestSession_WalkZoo(t *testing.T) {
	s, err := explore.OpenModule(New(), zooPkg)
	require.NoError(t, err)

	want := catalog.Catalog{
		catalog.CategoryModules:    {"habitat"},
		catalog.CategoryClasses:    {"Animal", "Base", "Celsius", "Chip", "Dog", "Empty", "Legs", "Pet", "Puppy", "Tags", "Tracked", "unexported"},
		catalog.CategoryFunctions:  {"Greeter", "NewDog"},
		catalog.CategoryProperties: nil,
		catalog.CategoryOthers:     {"MaxAnimals", "Registry"},
	}
	got := s.Catalog()
	for _, cat := range catalog.Order {
		if diff := cmp.Diff(want[cat], got[cat], cmp.Comparer(sameStrings)); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", cat, diff)
		}
	}

	require.NoError(t, s.StepIn("Dog"))
	require.Nil(t, s.LastError())
	require.Equal(t, zooPkg+".Dog", s.Trace())
	require.Equal(t, []string{"Describe", "Fetch", "Name", "Speak"}, s.Catalog()[catalog.CategoryFunctions])

	sig, ok, err := s.Signature("Fetch")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "(items []string, limit int) (int, error)", sig)

	sig, ok, err = s.Signature("Speak")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "(Dog) string", sig)

	// methods have no members, so the session stays on Dog
	require.NoError(t, s.StepIn("Fetch"))
	require.NotNil(t, s.LastError())
	require.Equal(t, explore.KindExplorationComplete, s.LastError().Kind)
	require.Equal(t, zooPkg+".Dog", s.Trace())

	require.NoError(t, s.StepIn("home"))
	require.Equal(t, []string{"Name", "Size"}, s.Catalog()[catalog.CategoryProperties])

	st := s.Status()
	restored, err := explore.Restore(New(), st)
	require.NoError(t, err)
	require.Equal(t, s.Path(), restored.Path())

	require.NoError(t, s.StepOut(5))
	require.Equal(t, 1, s.Depth())
}

func TestSession_HeritageOfZoo(t *testing.T) {
	s, err := explore.OpenModule(New(), zooPkg)
	require.NoError(t, err)

	g, err := s.Heritage("Puppy", "Pet")
	require.NoError(t, err)

	wantNodes := []heritage.Node{
		{Class: "Animal", Module: zooPkg, Kind: heritage.KindBase},
		{Class: "Base", Module: zooPkg, Kind: heritage.KindBase},
		{Class: "Dog", Module: zooPkg, Kind: heritage.KindDerived},
		{Class: "Legs", Module: zooPkg, Kind: heritage.KindBase},
		{Class: "Pet", Module: zooPkg, Kind: heritage.KindDerived},
		{Class: "Puppy", Module: zooPkg, Kind: heritage.KindDerived},
	}
	if diff := cmp.Diff(wantNodes, g.Nodes); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
	wantEdges := map[string][]string{
		"Animal": {"Pet"},
		"Base":   {"Dog"},
		"Dog":    {"Puppy"},
		"Legs":   {"Dog"},
	}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSession_BrokenImportKeepsParentListing(t *testing.T) {
	const pkgA = "github.com/seitarof/go-explorer/testdata/brk/a"

	s, err := explore.OpenModule(New(WithTests(true)), pkgA)
	require.NoError(t, err)
	require.Nil(t, s.LastError())
	require.Equal(t, 3, s.Counts().Total)
	require.Equal(t, []string{"b"}, s.Catalog()[catalog.CategoryModules])

	// the broken import only fails once it is entered
	require.NoError(t, s.StepIn("b"))
	require.NotNil(t, s.LastError())
	require.Equal(t, explore.KindAttributeError, s.LastError().Kind)
	require.Equal(t, pkgA, s.Trace())
	require.Equal(t, 3, s.Counts().Total)
}
