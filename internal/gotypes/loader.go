package gotypes

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/seitarof/go-explorer/internal/provider"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedImports |
	packages.NeedModule

type loadedPackage struct {
	pkg  *packages.Package
	doc  string
	docs map[string]string
}

// loadPackage loads pkgPath once per provider. Later calls for the same path
// return the cached result, failures included.
func (p *providerImpl) loadPackage(pkgPath string) (*loadedPackage, error) {
	if cached, ok := p.cache[pkgPath]; ok {
		return cached.pkg, cached.err
	}
	lp, err := p.load(pkgPath)
	p.cache[pkgPath] = cacheEntry{pkg: lp, err: err}
	if lp != nil && lp.pkg.PkgPath != "" && lp.pkg.PkgPath != pkgPath {
		p.cache[lp.pkg.PkgPath] = cacheEntry{pkg: lp}
	}
	return lp, err
}

func (p *providerImpl) load(pkgPath string) (*loadedPackage, error) {
	cfg := &packages.Config{
		Mode:  loadMode,
		Dir:   p.dir,
		Fset:  p.fset,
		Tests: p.tests,
	}
	if len(p.tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(p.tags, ",")}
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPath, err)
	}
	pkg := pickPackage(pkgs, pkgPath)
	if pkg == nil || pkg.Types == nil || pkg.Name == "" {
		return nil, fmt.Errorf("package %q: %w", pkgPath, provider.ErrNotFound)
	}
	if len(pkg.Errors) > 0 {
		for _, e := range pkg.Errors {
			p.logger.Warn("gotypes: package error", zap.String("package", pkgPath), zap.String("error", e.Error()))
		}
		return nil, fmt.Errorf("package %q has compilation errors: %w", pkgPath, provider.ErrUnavailable)
	}

	p.logger.Debug("gotypes: package loaded",
		zap.String("package", pkg.PkgPath),
		zap.Int("files", len(pkg.Syntax)))

	doc, docs := indexDocs(pkg.Syntax)
	return &loadedPackage{pkg: pkg, doc: doc, docs: docs}, nil
}

// pickPackage prefers the variant of pkgPath with the most files, which is
// the test-augmented one when tests are loaded.
func pickPackage(pkgs []*packages.Package, pkgPath string) *packages.Package {
	var best *packages.Package
	for _, pkg := range pkgs {
		if pkg.PkgPath != pkgPath || strings.HasSuffix(pkg.ID, ".test") {
			continue
		}
		if best == nil || len(pkg.Syntax) > len(best.Syntax) {
			best = pkg
		}
	}
	if best == nil && len(pkgs) > 0 {
		best = pkgs[0]
	}
	return best
}

// indexDocs maps declaration keys to doc text. Package level declarations
// use their name; methods, fields and interface methods use Type.Name.
func indexDocs(files []*ast.File) (string, map[string]string) {
	docs := map[string]string{}
	pkgDoc := ""

	sorted := make([]*ast.File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Doc != nil && sorted[j].Doc == nil
	})

	for _, f := range sorted {
		if pkgDoc == "" && f.Doc != nil {
			pkgDoc = strings.TrimSpace(f.Doc.Text())
		}
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				key := d.Name.Name
				if d.Recv != nil && len(d.Recv.List) > 0 {
					key = receiverName(d.Recv.List[0].Type) + "." + key
				}
				putDoc(docs, key, d.Doc)
			case *ast.GenDecl:
				indexGenDecl(docs, d)
			}
		}
	}
	return pkgDoc, docs
}

func indexGenDecl(docs map[string]string, d *ast.GenDecl) {
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			doc := s.Doc
			if doc == nil && !d.Lparen.IsValid() {
				doc = d.Doc
			}
			putDoc(docs, s.Name.Name, doc)
			indexTypeMembers(docs, s.Name.Name, s.Type)
		case *ast.ValueSpec:
			doc := s.Doc
			if doc == nil {
				doc = s.Comment
			}
			if doc == nil && !d.Lparen.IsValid() {
				doc = d.Doc
			}
			for _, name := range s.Names {
				putDoc(docs, name.Name, doc)
			}
		}
	}
}

func indexTypeMembers(docs map[string]string, typeName string, expr ast.Expr) {
	var fields *ast.FieldList
	switch t := expr.(type) {
	case *ast.StructType:
		fields = t.Fields
	case *ast.InterfaceType:
		fields = t.Methods
	}
	if fields == nil {
		return
	}
	for _, field := range fields.List {
		doc := field.Doc
		if doc == nil {
			doc = field.Comment
		}
		if len(field.Names) == 0 {
			if name := receiverName(field.Type); name != "" {
				putDoc(docs, typeName+"."+name, doc)
			}
			continue
		}
		for _, name := range field.Names {
			putDoc(docs, typeName+"."+name.Name, doc)
		}
	}
}

func putDoc(docs map[string]string, key string, cg *ast.CommentGroup) {
	if cg == nil || key == "" {
		return
	}
	if text := strings.TrimSpace(cg.Text()); text != "" {
		docs[key] = text
	}
}

// receiverName extracts the base type name from a receiver or embedded
// field expression such as *List, List[T] or pkg.Type.
func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.ParenExpr:
		return receiverName(t.X)
	}
	return ""
}

func newFileSet() *token.FileSet {
	return token.NewFileSet()
}
