package heritage

import (
	"sort"

	"go.uber.org/zap"

	"github.com/seitarof/go-explorer/internal/provider"
)

// Kind classifies a node of the graph.
type Kind string

const (
	// KindBase marks a class rooted directly at the universal root type.
	KindBase Kind = "base"
	// KindDerived marks a class with at least one non-root base.
	KindDerived Kind = "derived"
)

// Node is one class of the graph.
type Node struct {
	Class  string `json:"class" yaml:"class"`
	Module string `json:"module" yaml:"module"`
	Kind   Kind   `json:"kind" yaml:"kind"`
}

// Graph is the inheritance graph of a set of classes. Edges map a parent
// class name to the names of the classes that build on it.
type Graph struct {
	Nodes []Node              `json:"nodes" yaml:"nodes"`
	Edges map[string][]string `json:"edges" yaml:"edges"`
}

// Source is the slice of the reflection provider the builder needs.
type Source interface {
	Bases(h provider.Handle) ([]provider.Handle, error)
	DisplayName(h provider.Handle) string
	ModuleName(h provider.Handle) string
}

// Builder walks base chains into a Graph.
type Builder interface {
	Build(classes []provider.Handle) Graph
}

type builderImpl struct {
	src    Source
	logger *zap.Logger
}

// Option configures a Builder.
type Option func(*builderImpl)

// WithLogger sets the logger used for skipped branches.
func WithLogger(l *zap.Logger) Option {
	return func(b *builderImpl) {
		if l != nil {
			b.logger = l
		}
	}
}

// New returns the default builder.
func New(src Source, opts ...Option) Builder {
	b := &builderImpl{src: src, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type buildState struct {
	visited map[string]bool
	kinds   map[string]Kind
	nodes   map[Node]struct{}
	edges   map[string]map[string]struct{}
}

func (b *builderImpl) Build(classes []provider.Handle) Graph {
	st := &buildState{
		visited: map[string]bool{},
		kinds:   map[string]Kind{},
		nodes:   map[Node]struct{}{},
		edges:   map[string]map[string]struct{}{},
	}
	for _, cls := range classes {
		b.visit(cls, st)
	}
	return st.graph()
}

func (b *builderImpl) visit(cls provider.Handle, st *buildState) {
	id := cls.ID()
	if st.visited[id] {
		return
	}
	st.visited[id] = true

	name := b.src.DisplayName(cls)
	bases, err := b.src.Bases(cls)
	if err != nil {
		b.logger.Warn("heritage: base chain unavailable, branch skipped",
			zap.String("class", name),
			zap.Error(err))
		return
	}

	if len(bases) == 0 {
		st.addNode(id, Node{Class: name, Module: b.src.ModuleName(cls), Kind: KindBase})
		return
	}

	st.addNode(id, Node{Class: name, Module: b.src.ModuleName(cls), Kind: KindDerived})
	for _, base := range bases {
		st.addEdge(b.src.DisplayName(base), name)
		b.visit(base, st)
	}
}

func (st *buildState) addNode(id string, n Node) {
	// first classification seen for a class identity wins
	if kind, ok := st.kinds[id]; ok {
		n.Kind = kind
	} else {
		st.kinds[id] = n.Kind
	}
	st.nodes[n] = struct{}{}
}

func (st *buildState) addEdge(parent, child string) {
	children, ok := st.edges[parent]
	if !ok {
		children = map[string]struct{}{}
		st.edges[parent] = children
	}
	children[child] = struct{}{}
}

func (st *buildState) graph() Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(st.nodes)),
		Edges: make(map[string][]string, len(st.edges)),
	}
	for n := range st.nodes {
		g.Nodes = append(g.Nodes, n)
	}
	sort.Slice(g.Nodes, func(i, j int) bool {
		if g.Nodes[i].Class != g.Nodes[j].Class {
			return g.Nodes[i].Class < g.Nodes[j].Class
		}
		if g.Nodes[i].Module != g.Nodes[j].Module {
			return g.Nodes[i].Module < g.Nodes[j].Module
		}
		return g.Nodes[i].Kind < g.Nodes[j].Kind
	})

	for parent, children := range st.edges {
		list := make([]string, 0, len(children))
		for c := range children {
			list = append(list, c)
		}
		sort.Strings(list)
		g.Edges[parent] = list
	}
	return g
}

// Empty reports whether g has no nodes.
func (g Graph) Empty() bool {
	return len(g.Nodes) == 0
}
