// Package gotypes implements provider.Provider over Go packages loaded with
// golang.org/x/tools/go/packages.
//
// Packages map to modules, named types to classes, functions and methods to
// functions, struct fields to properties, and constants and variables to
// others. A type's bases are the named types it embeds.
package gotypes

import (
	"fmt"
	"go/token"
	"go/types"
	"sort"

	"go.uber.org/zap"

	"github.com/seitarof/go-explorer/internal/catalog"
	"github.com/seitarof/go-explorer/internal/provider"
)

// builtinModule is the module name reported for predeclared objects.
const builtinModule = "builtin"

type cacheEntry struct {
	pkg *loadedPackage
	err error
}

type providerImpl struct {
	dir    string
	tags   []string
	tests  bool
	fset   *token.FileSet
	logger *zap.Logger
	rules  []rule

	cache   map[string]cacheEntry
	members map[string]map[string]memberCandidate
}

// Option configures the provider.
type Option func(*providerImpl)

// WithDir sets the directory packages are resolved from.
func WithDir(dir string) Option {
	return func(p *providerImpl) { p.dir = dir }
}

// WithBuildTags sets build tags passed to the loader.
func WithBuildTags(tags ...string) Option {
	return func(p *providerImpl) { p.tags = append([]string(nil), tags...) }
}

// WithTests includes _test.go files of loaded packages.
func WithTests(enabled bool) Option {
	return func(p *providerImpl) { p.tests = enabled }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *providerImpl) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a provider backed by go/packages. It is not safe for
// concurrent use.
func New(opts ...Option) provider.Provider {
	p := &providerImpl{
		fset:    newFileSet(),
		logger:  zap.NewNop(),
		rules:   defaultRules(),
		cache:   map[string]cacheEntry{},
		members: map[string]map[string]memberCandidate{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *providerImpl) ResolveRoot(name string) (provider.Handle, error) {
	if name == "" {
		return nil, fmt.Errorf("empty package path: %w", provider.ErrNotFound)
	}
	lp, err := p.loadPackage(name)
	if err != nil {
		return nil, err
	}
	return packageHandle(lp.pkg.Types), nil
}

func (p *providerImpl) ResolveChild(ph provider.Handle, name string) (provider.Handle, error) {
	h, err := asHandle(ph)
	if err != nil {
		return nil, err
	}

	if h.kind == kindPackage {
		return p.resolvePackageMember(h, name)
	}

	members := p.typeMembers(h)
	cand, ok := members[name]
	if !ok {
		return nil, fmt.Errorf("%s has no member %q: %w", h.id, name, provider.ErrNotFound)
	}
	child := objectHandle(cand.obj, h.id+"."+name)
	if child.owner == "" && child.kind == kindField {
		child.owner = cand.owner
	}
	return child, nil
}

func (p *providerImpl) resolvePackageMember(h *handle, name string) (provider.Handle, error) {
	if obj := h.pkg.Scope().Lookup(name); obj != nil {
		if tn, ok := obj.(*types.TypeName); ok {
			return typeNameHandle(tn), nil
		}
		return objectHandle(obj, h.id+"."+name), nil
	}

	imp := importNamed(h.pkg, name)
	if imp == nil {
		return nil, fmt.Errorf("package %s has no member %q: %w", h.id, name, provider.ErrNotFound)
	}
	lp, err := p.loadPackage(imp.Path())
	if err != nil {
		return nil, fmt.Errorf("import %s of %s: %w", imp.Path(), h.id, err)
	}
	return packageHandle(lp.pkg.Types), nil
}

func (p *providerImpl) ListMembers(ph provider.Handle) ([]string, error) {
	h, err := asHandle(ph)
	if err != nil {
		return nil, err
	}

	if h.kind == kindPackage {
		names := h.pkg.Scope().Names()
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			seen[n] = true
		}
		for _, imp := range h.pkg.Imports() {
			if !seen[imp.Name()] {
				seen[imp.Name()] = true
				names = append(names, imp.Name())
			}
		}
		sort.Strings(names)
		return names, nil
	}

	return sortedNames(p.typeMembers(h)), nil
}

// ClassifyMember answers imports from the importing package's type data.
// The imported package itself is only loaded when it is stepped into.
func (p *providerImpl) ClassifyMember(ph provider.Handle, name string) (catalog.Category, error) {
	h, err := asHandle(ph)
	if err != nil {
		return "", err
	}
	if h.kind == kindPackage && h.pkg.Scope().Lookup(name) == nil && importNamed(h.pkg, name) != nil {
		return catalog.CategoryModules, nil
	}

	child, err := p.ResolveChild(h, name)
	if err != nil {
		return "", err
	}
	return classify(p.rules, child.(*handle)), nil
}

func (p *providerImpl) Bases(ph provider.Handle) ([]provider.Handle, error) {
	h, err := asHandle(ph)
	if err != nil {
		return nil, err
	}
	if h.kind != kindType {
		return nil, fmt.Errorf("%s: %w", h.id, provider.ErrNotClass)
	}

	bases, valid := embeddedBases(h.obj.Type())
	if !valid {
		return nil, fmt.Errorf("%s embeds an invalid type: %w", h.id, provider.ErrUnavailable)
	}
	out := make([]provider.Handle, 0, len(bases))
	for _, tn := range bases {
		out = append(out, typeNameHandle(tn))
	}
	return out, nil
}

func (p *providerImpl) DisplayName(ph provider.Handle) string {
	h, err := asHandle(ph)
	if err != nil {
		return ""
	}
	if h.kind == kindPackage {
		return h.pkg.Path()
	}
	return h.obj.Name()
}

func (p *providerImpl) ModuleName(ph provider.Handle) string {
	h, err := asHandle(ph)
	if err != nil {
		return ""
	}
	if h.kind == kindPackage {
		return h.pkg.Path()
	}
	return objectPath(h.obj)
}

// typeMembers lists what a selector can reach from the handle's value type.
// Results are cached by handle ID.
func (p *providerImpl) typeMembers(h *handle) map[string]memberCandidate {
	if cached, ok := p.members[h.id]; ok {
		return cached
	}
	var members map[string]memberCandidate
	if t := h.valueType(); t != nil {
		members = collectTypeMembers(t)
	} else {
		members = map[string]memberCandidate{}
	}
	p.members[h.id] = members
	return members
}

// importNamed finds the import of pkg whose package name is name. Ties are
// broken by import path.
func importNamed(pkg *types.Package, name string) *types.Package {
	var found *types.Package
	for _, imp := range pkg.Imports() {
		if imp.Name() != name {
			continue
		}
		if found == nil || imp.Path() < found.Path() {
			found = imp
		}
	}
	return found
}

func asHandle(ph provider.Handle) (*handle, error) {
	h, ok := ph.(*handle)
	if !ok || h == nil {
		return nil, fmt.Errorf("foreign handle %T: %w", ph, provider.ErrUnavailable)
	}
	return h, nil
}
