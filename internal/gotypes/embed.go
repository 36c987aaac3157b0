package gotypes

import (
	"go/types"
	"sort"
)

type memberCandidate struct {
	obj       types.Object
	owner     string
	depth     int
	ambiguous bool
}

// collectTypeMembers lists the fields and methods selectable on a value of
// type t, promoted ones included. Shallower members shadow deeper ones and
// same-depth conflicts are dropped, following Go selector rules.
func collectTypeMembers(t types.Type) map[string]memberCandidate {
	candidates := map[string]memberCandidate{}
	base := derefType(t)

	owner := ""
	if named, ok := base.(*types.Named); ok {
		owner = named.Obj().Name()
	}
	if st, ok := base.Underlying().(*types.Struct); ok {
		visiting := map[*types.Struct]bool{st: true}
		collectFields(st, owner, 0, candidates, visiting)
	}

	if ms := methodSetOf(base); ms != nil {
		for i := 0; i < ms.Len(); i++ {
			sel := ms.At(i)
			fn, ok := sel.Obj().(*types.Func)
			if !ok {
				continue
			}
			fnOwner := owner
			if sig, ok := fn.Type().(*types.Signature); ok {
				if o := recvOwner(sig); o != "" {
					fnOwner = o
				}
			}
			addCandidate(candidates, fn.Name(), memberCandidate{
				obj:   fn,
				owner: fnOwner,
				depth: len(sel.Index()) - 1,
			})
		}
	}

	out := make(map[string]memberCandidate, len(candidates))
	for name, cand := range candidates {
		if cand.ambiguous {
			continue
		}
		out[name] = cand
	}
	return out
}

func collectFields(
	st *types.Struct,
	owner string,
	depth int,
	out map[string]memberCandidate,
	visiting map[*types.Struct]bool,
) {
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		addCandidate(out, f.Name(), memberCandidate{obj: f, owner: owner, depth: depth})
		if !f.Embedded() {
			continue
		}
		embeddedStruct, embeddedName := resolveEmbeddedStruct(f.Type())
		if embeddedStruct == nil || visiting[embeddedStruct] {
			continue
		}
		visiting[embeddedStruct] = true
		collectFields(embeddedStruct, embeddedName, depth+1, out, visiting)
		delete(visiting, embeddedStruct)
	}
}

func addCandidate(out map[string]memberCandidate, name string, cand memberCandidate) {
	existing, ok := out[name]
	if !ok || cand.depth < existing.depth {
		out[name] = cand
		return
	}
	if cand.depth > existing.depth {
		return
	}
	if existing.obj != cand.obj {
		existing.ambiguous = true
		out[name] = existing
	}
}

func methodSetOf(t types.Type) *types.MethodSet {
	if types.IsInterface(t) {
		return types.NewMethodSet(t)
	}
	switch t.(type) {
	case *types.Named, *types.Struct:
		return types.NewMethodSet(types.NewPointer(t))
	}
	return nil
}

func resolveEmbeddedStruct(t types.Type) (*types.Struct, string) {
	switch v := t.(type) {
	case *types.Alias:
		return resolveEmbeddedStruct(v.Rhs())
	case *types.Named:
		if st, ok := v.Underlying().(*types.Struct); ok {
			return st, v.Obj().Name()
		}
	case *types.Pointer:
		return resolveEmbeddedStruct(v.Elem())
	}
	return nil, ""
}

// embeddedBases returns the named types embedded in t, in declaration
// order. Invalid embedded types are reported through the bool result.
func embeddedBases(t types.Type) ([]*types.TypeName, bool) {
	var (
		bases []*types.TypeName
		valid = true
	)
	add := func(et types.Type) {
		et = derefType(et)
		switch v := et.(type) {
		case *types.Named:
			bases = append(bases, v.Obj())
		case *types.Basic:
			if v.Kind() == types.Invalid {
				valid = false
			}
		}
	}

	switch under := types.Unalias(t).Underlying().(type) {
	case *types.Struct:
		for i := 0; i < under.NumFields(); i++ {
			if f := under.Field(i); f.Embedded() {
				add(f.Type())
			}
		}
	case *types.Interface:
		for i := 0; i < under.NumEmbeddeds(); i++ {
			add(under.EmbeddedType(i))
		}
	}
	return bases, valid
}

func derefType(t types.Type) types.Type {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		return types.Unalias(ptr.Elem())
	}
	return t
}

func sortedNames(m map[string]memberCandidate) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
