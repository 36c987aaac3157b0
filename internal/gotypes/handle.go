package gotypes

import (
	"go/types"
)

type handleKind int

const (
	kindPackage handleKind = iota
	kindType
	kindFunc
	kindMethod
	kindField
	kindVar
	kindConst
	kindOther
)

func (k handleKind) String() string {
	switch k {
	case kindPackage:
		return "package"
	case kindType:
		return "type"
	case kindFunc:
		return "func"
	case kindMethod:
		return "method"
	case kindField:
		return "field"
	case kindVar:
		return "var"
	case kindConst:
		return "const"
	default:
		return "other"
	}
}

// handle points at a package or at one object inside it.
type handle struct {
	kind handleKind
	id   string

	// pkg is set for package handles only.
	pkg *types.Package
	obj types.Object

	// owner is the declaring type name of fields and methods, used to find
	// their documentation.
	owner string
}

func (h *handle) ID() string { return h.id }

func packageHandle(pkg *types.Package) *handle {
	return &handle{kind: kindPackage, id: pkg.Path(), pkg: pkg}
}

func objectHandle(obj types.Object, id string) *handle {
	h := &handle{obj: obj, id: id}
	switch v := obj.(type) {
	case *types.TypeName:
		h.kind = kindType
	case *types.Func:
		h.kind = kindFunc
		if sig, ok := v.Type().(*types.Signature); ok && sig.Recv() != nil {
			h.kind = kindMethod
			h.owner = recvOwner(sig)
		}
	case *types.Var:
		h.kind = kindVar
		if v.IsField() {
			h.kind = kindField
		}
	case *types.Const:
		h.kind = kindConst
	default:
		h.kind = kindOther
	}
	return h
}

// typeNameHandle identifies a type by package path and name so the same
// type reached through different routes shares an ID.
func typeNameHandle(tn *types.TypeName) *handle {
	return objectHandle(tn, objectPath(tn)+"."+tn.Name())
}

func objectPath(obj types.Object) string {
	if obj.Pkg() == nil {
		return builtinModule
	}
	return obj.Pkg().Path()
}

// recvOwner returns the name of the named type a method is declared on.
func recvOwner(sig *types.Signature) string {
	if sig.Recv() == nil {
		return ""
	}
	if named, ok := derefType(sig.Recv().Type()).(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}

// valueType returns the type whose members a handle exposes, or nil.
func (h *handle) valueType() types.Type {
	switch h.kind {
	case kindType, kindField, kindVar, kindConst:
		return h.obj.Type()
	default:
		return nil
	}
}

func (h *handle) docKey() string {
	if h.obj == nil {
		return ""
	}
	if h.owner != "" {
		return h.owner + "." + h.obj.Name()
	}
	return h.obj.Name()
}
