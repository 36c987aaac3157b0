package gotypes

import (
	"bytes"
	"fmt"
	"go/types"
	"strings"

	"github.com/seitarof/go-explorer/internal/provider"
)

func (p *providerImpl) Doc(ph provider.Handle) (string, bool, error) {
	h, err := asHandle(ph)
	if err != nil {
		return "", false, err
	}

	if h.kind == kindPackage {
		lp, err := p.loadPackage(h.pkg.Path())
		if err != nil {
			return "", false, err
		}
		return lp.doc, lp.doc != "", nil
	}

	pkg := h.obj.Pkg()
	if pkg == nil {
		return "", false, nil
	}
	lp, err := p.loadPackage(pkg.Path())
	if err != nil {
		return "", false, fmt.Errorf("docs of %s: %w", h.id, err)
	}
	doc, ok := lp.docs[h.docKey()]
	return doc, ok, nil
}

// Signature renders callables as "(params) results". Methods carry their
// receiver as a leading self parameter.
func (p *providerImpl) Signature(ph provider.Handle) (string, bool, error) {
	h, err := asHandle(ph)
	if err != nil {
		return "", false, err
	}
	if h.obj == nil {
		return "", false, nil
	}

	sig, ok := h.obj.Type().Underlying().(*types.Signature)
	if !ok {
		return "", false, nil
	}
	qual := types.RelativeTo(h.obj.Pkg())

	var buf bytes.Buffer
	types.WriteSignature(&buf, sig, qual)
	out := buf.String()

	if h.kind == kindMethod && sig.Recv() != nil {
		recv := provider.SelfMarker + " " + types.TypeString(sig.Recv().Type(), qual)
		if strings.HasPrefix(out, "()") {
			out = "(" + recv + out[1:]
		} else {
			out = "(" + recv + ", " + out[1:]
		}
	}
	return out, true, nil
}

func (p *providerImpl) TypeName(ph provider.Handle) (string, bool, error) {
	h, err := asHandle(ph)
	if err != nil {
		return "", false, err
	}

	switch h.kind {
	case kindPackage, kindType, kindFunc, kindMethod:
		return h.kind.String(), true, nil
	case kindField, kindVar, kindConst:
		return types.TypeString(h.obj.Type(), types.RelativeTo(h.obj.Pkg())), true, nil
	}
	if _, ok := h.obj.(*types.Builtin); ok {
		return "builtin", true, nil
	}
	return "", false, nil
}
