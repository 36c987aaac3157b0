package heritage

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/seitarof/go-explorer/internal/provider"
)

type fakeClass struct {
	name   string
	module string
	bases  []string
	broken bool
}

func (c *fakeClass) ID() string { return c.module + "." + c.name }

type fakeSource struct {
	classes map[string]*fakeClass
	calls   map[string]int
}

func newFakeSource(classes ...*fakeClass) *fakeSource {
	src := &fakeSource{classes: map[string]*fakeClass{}, calls: map[string]int{}}
	for _, c := range classes {
		src.classes[c.name] = c
	}
	return src
}

func (s *fakeSource) handle(name string) provider.Handle {
	return s.classes[name]
}

func (s *fakeSource) Bases(h provider.Handle) ([]provider.Handle, error) {
	c := h.(*fakeClass)
	s.calls[c.name]++
	if c.broken {
		return nil, provider.ErrUnavailable
	}
	out := make([]provider.Handle, 0, len(c.bases))
	for _, b := range c.bases {
		out = append(out, s.classes[b])
	}
	return out, nil
}

func (s *fakeSource) DisplayName(h provider.Handle) string { return h.(*fakeClass).name }

func (s *fakeSource) ModuleName(h provider.Handle) string { return h.(*fakeClass).module }

func TestBuild_RootOnlyClassIsSingleBaseNode(t *testing.T) {
	src := newFakeSource(&fakeClass{name: "OrderedDict", module: "collections"})

	g := New(src).Build([]provider.Handle{src.handle("OrderedDict")})

	want := Graph{
		Nodes: []Node{{Class: "OrderedDict", Module: "collections", Kind: KindBase}},
		Edges: map[string][]string{},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_DiamondIsDeduplicatedAndMemoized(t *testing.T) {
	src := newFakeSource(
		&fakeClass{name: "Base", module: "m"},
		&fakeClass{name: "Left", module: "m", bases: []string{"Base"}},
		&fakeClass{name: "Right", module: "m", bases: []string{"Base"}},
		&fakeClass{name: "Child", module: "m", bases: []string{"Left", "Right"}},
	)

	g := New(src).Build([]provider.Handle{
		src.handle("Child"),
		src.handle("Left"),
		src.handle("Base"),
	})

	want := Graph{
		Nodes: []Node{
			{Class: "Base", Module: "m", Kind: KindBase},
			{Class: "Child", Module: "m", Kind: KindDerived},
			{Class: "Left", Module: "m", Kind: KindDerived},
			{Class: "Right", Module: "m", Kind: KindDerived},
		},
		Edges: map[string][]string{
			"Base":  {"Left", "Right"},
			"Left":  {"Child"},
			"Right": {"Child"},
		},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("Build() mismatch (-want +got):\n%s", diff)
	}
	if src.calls["Base"] != 1 {
		t.Fatalf("Base visited %d times, want 1", src.calls["Base"])
	}
}

func TestBuild_BrokenBaseKeepsPartialGraph(t *testing.T) {
	src := newFakeSource(
		&fakeClass{name: "Hidden", module: "ext", broken: true},
		&fakeClass{name: "Wrapper", module: "m", bases: []string{"Hidden"}},
		&fakeClass{name: "Plain", module: "m"},
	)

	g := New(src).Build([]provider.Handle{src.handle("Wrapper"), src.handle("Plain")})

	want := Graph{
		Nodes: []Node{
			{Class: "Plain", Module: "m", Kind: KindBase},
			{Class: "Wrapper", Module: "m", Kind: KindDerived},
		},
		Edges: map[string][]string{"Hidden": {"Wrapper"}},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	g := New(newFakeSource()).Build(nil)
	if !g.Empty() || len(g.Edges) != 0 {
		t.Fatalf("expected empty graph, got %#v", g)
	}
}

func TestBuild_CycleTerminates(t *testing.T) {
	src := newFakeSource(
		&fakeClass{name: "A", module: "m", bases: []string{"B"}},
		&fakeClass{name: "B", module: "m", bases: []string{"A"}},
	)

	g := New(src).Build([]provider.Handle{src.handle("A")})
	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %#v", g.Nodes)
	}
}
