package analyze

import (
	"fmt"
	"go/types"
	"sort"
)

// Method is one method carried by a resolved type, with its signature
// rendered for emission.
type Method struct {
	Name string
	// Abstract marks interface members: the name is promised but has no
	// declared body on the type itself.
	Abstract bool
	// Params holds the parameter declarations ("v int", "vs ...any") and
	// Args the matching call-site arguments ("v", "vs..."). Results holds
	// the result types. Imports lists the packages the signature names.
	Params  []string
	Args    []string
	Results []string
	Imports []string
}

// Methods resolves a qualified type name and returns its methods.
// Interfaces contribute their exported members as abstract. Other named
// types contribute the exported methods of their pointer method set, which
// covers both value and pointer receivers.
func (a *Analyzer) Methods(qualified string) ([]Method, error) {
	tn, err := a.Lookup(qualified)
	if err != nil {
		return nil, err
	}

	if iface, ok := tn.Type().Underlying().(*types.Interface); ok {
		out := make([]Method, 0, iface.NumMethods())
		for i := 0; i < iface.NumMethods(); i++ {
			fn := iface.Method(i)
			if !fn.Exported() {
				continue
			}

			out = append(out, renderMethod(fn, true))
		}

		sortMethods(out)

		return out, nil
	}

	mset := types.NewMethodSet(types.NewPointer(tn.Type()))

	out := make([]Method, 0, mset.Len())

	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		out = append(out, renderMethod(fn, false))
	}

	sortMethods(out)

	return out, nil
}

// MarkerType returns the expression generated code uses to name a marker
// type, plus the import path that expression needs.
func (a *Analyzer) MarkerType(qualified string) (string, string, error) {
	tn, err := a.Lookup(qualified)
	if err != nil {
		return "", "", err
	}

	return tn.Pkg().Name() + "." + tn.Name(), tn.Pkg().Path(), nil
}

func renderMethod(fn *types.Func, abstract bool) Method {
	m := Method{Name: fn.Name(), Abstract: abstract}

	seen := map[string]struct{}{}
	qualifier := func(p *types.Package) string {
		if _, ok := seen[p.Path()]; !ok {
			seen[p.Path()] = struct{}{}
			m.Imports = append(m.Imports, p.Path())
		}

		return p.Name()
	}

	sig := fn.Type().(*types.Signature)

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)

		name := p.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("a%d", i)
		}

		typ := types.TypeString(p.Type(), qualifier)
		arg := name

		if sig.Variadic() && i == params.Len()-1 {
			if sl, ok := p.Type().(*types.Slice); ok {
				typ = "..." + types.TypeString(sl.Elem(), qualifier)
			}

			arg += "..."
		}

		m.Params = append(m.Params, name+" "+typ)
		m.Args = append(m.Args, arg)
	}

	results := sig.Results()
	for i := 0; i < results.Len(); i++ {
		m.Results = append(m.Results, types.TypeString(results.At(i).Type(), qualifier))
	}

	return m
}

func sortMethods(ms []Method) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name })
}
