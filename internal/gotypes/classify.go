package gotypes

import (
	"go/types"

	"github.com/seitarof/go-explorer/internal/catalog"
)

// rule tries to place one member into a category.
type rule interface {
	Name() string
	Try(h *handle) (catalog.Category, bool)
}

// defaultRules is the classification chain: module, class, callable,
// property. Members no rule claims fall into others.
func defaultRules() []rule {
	return []rule{
		moduleRule{},
		classRule{},
		callableRule{},
		propertyRule{},
	}
}

type moduleRule struct{}

func (moduleRule) Name() string { return "module" }

func (moduleRule) Try(h *handle) (catalog.Category, bool) {
	return catalog.CategoryModules, h.kind == kindPackage
}

type classRule struct{}

func (classRule) Name() string { return "class" }

func (classRule) Try(h *handle) (catalog.Category, bool) {
	return catalog.CategoryClasses, h.kind == kindType
}

type callableRule struct{}

func (callableRule) Name() string { return "callable" }

func (callableRule) Try(h *handle) (catalog.Category, bool) {
	switch h.kind {
	case kindFunc, kindMethod:
		return catalog.CategoryFunctions, true
	case kindVar:
		_, isFunc := h.obj.Type().Underlying().(*types.Signature)
		return catalog.CategoryFunctions, isFunc
	case kindOther:
		_, isBuiltin := h.obj.(*types.Builtin)
		return catalog.CategoryFunctions, isBuiltin
	}
	return "", false
}

type propertyRule struct{}

func (propertyRule) Name() string { return "property" }

func (propertyRule) Try(h *handle) (catalog.Category, bool) {
	return catalog.CategoryProperties, h.kind == kindField
}

func classify(rules []rule, h *handle) catalog.Category {
	for _, r := range rules {
		if cat, ok := r.Try(h); ok {
			return cat
		}
	}
	return catalog.CategoryOthers
}
