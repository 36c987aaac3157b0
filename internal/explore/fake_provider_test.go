package explore

import (
	"errors"
	"fmt"

	"github.com/seitarof/go-explorer/internal/catalog"
	"github.com/seitarof/go-explorer/internal/provider"
)

var errBrokenMembers = errors.New("members exploded")

type fakeNode struct {
	id       string
	name     string
	module   string
	category catalog.Category
	typ      string
	doc      string
	sig      string
	listErr  error
	children map[string]*fakeNode
	bases    []*fakeNode
}

func (n *fakeNode) ID() string { return n.id }

func node(name string, cat catalog.Category, children ...*fakeNode) *fakeNode {
	n := &fakeNode{name: name, category: cat, children: map[string]*fakeNode{}}
	for _, c := range children {
		n.children[c.name] = c
	}
	return n
}

// seal assigns ids and modules top-down.
func seal(n *fakeNode, prefix, module string) *fakeNode {
	n.id = prefix + n.name
	if n.module == "" {
		n.module = module
	}
	for _, c := range n.children {
		seal(c, n.id+".", module)
	}
	return n
}

type fakeProvider struct {
	roots      map[string]*fakeNode
	listCalls  int
	resolveErr map[string]error
}

func newFakeProvider(roots ...*fakeNode) *fakeProvider {
	p := &fakeProvider{roots: map[string]*fakeNode{}, resolveErr: map[string]error{}}
	for _, r := range roots {
		p.roots[r.name] = seal(r, "", r.name)
	}
	return p
}

func (p *fakeProvider) ResolveRoot(name string) (provider.Handle, error) {
	r, ok := p.roots[name]
	if !ok {
		return nil, fmt.Errorf("root %q: %w", name, provider.ErrNotFound)
	}
	return r, nil
}

func (p *fakeProvider) ResolveChild(h provider.Handle, name string) (provider.Handle, error) {
	n := h.(*fakeNode)
	if err, ok := p.resolveErr[n.id+"."+name]; ok {
		return nil, err
	}
	c, ok := n.children[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", n.id, name, provider.ErrNotFound)
	}
	return c, nil
}

func (p *fakeProvider) ListMembers(h provider.Handle) ([]string, error) {
	p.listCalls++
	n := h.(*fakeNode)
	if n.listErr != nil {
		return nil, n.listErr
	}
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	return names, nil
}

func (p *fakeProvider) ClassifyMember(h provider.Handle, name string) (catalog.Category, error) {
	c, err := p.ResolveChild(h, name)
	if err != nil {
		return "", err
	}
	return c.(*fakeNode).category, nil
}

func (p *fakeProvider) Doc(h provider.Handle) (string, bool, error) {
	n := h.(*fakeNode)
	return n.doc, n.doc != "", nil
}

func (p *fakeProvider) Signature(h provider.Handle) (string, bool, error) {
	n := h.(*fakeNode)
	return n.sig, n.sig != "", nil
}

func (p *fakeProvider) TypeName(h provider.Handle) (string, bool, error) {
	n := h.(*fakeNode)
	return n.typ, n.typ != "", nil
}

func (p *fakeProvider) Bases(h provider.Handle) ([]provider.Handle, error) {
	n := h.(*fakeNode)
	if n.category != catalog.CategoryClasses {
		return nil, provider.ErrNotClass
	}
	out := make([]provider.Handle, 0, len(n.bases))
	for _, b := range n.bases {
		out = append(out, b)
	}
	return out, nil
}

func (p *fakeProvider) DisplayName(h provider.Handle) string { return h.(*fakeNode).name }

func (p *fakeProvider) ModuleName(h provider.Handle) string { return h.(*fakeNode).module }

// collectionsFixture mirrors a small slice of a standard library module.
func collectionsFixture() *fakeProvider {
	ordered := node("OrderedDict", catalog.CategoryClasses,
		&fakeNode{name: "MoveToEnd", category: catalog.CategoryFunctions, typ: "method", sig: "(self, key, last=True)", doc: "Move an existing element to the end."},
		&fakeNode{name: "Keys", category: catalog.CategoryFunctions, typ: "method", sig: "(self)"},
		&fakeNode{name: "Len", category: catalog.CategoryProperties, typ: "int"},
	)
	ordered.typ = "class"
	ordered.doc = "Dictionary that remembers insertion order."

	dict := node("Dict", catalog.CategoryClasses,
		&fakeNode{name: "Get", category: catalog.CategoryFunctions, typ: "method"},
	)
	ordered.bases = []*fakeNode{dict}

	root := node("collections", catalog.CategoryModules,
		ordered,
		dict,
		node("Deque", catalog.CategoryClasses,
			&fakeNode{name: "Append", category: catalog.CategoryFunctions},
		),
		&fakeNode{name: "NamedTuple", category: catalog.CategoryFunctions, typ: "function", sig: "(typename, fieldNames)"},
		node("abc", catalog.CategoryModules,
			node("Empty", catalog.CategoryClasses),
		),
		node("Broken", catalog.CategoryClasses),
		&fakeNode{name: "_private", category: catalog.CategoryOthers},
		&fakeNode{name: "Hollow", category: catalog.CategoryOthers},
	)
	root.typ = "module"
	root.doc = "High-performance container datatypes."

	p := newFakeProvider(root)
	root.children["Broken"].listErr = errBrokenMembers
	return p
}
