package gen

import (
	"sort"
	"strings"

	"record-composer/internal/analyze"
	"record-composer/internal/classify"
	"record-composer/internal/common"
	"record-composer/internal/errors"
	"record-composer/internal/record"
	"record-composer/protocol"
)

// Method is one composed operation method, ready for emission.
type Method struct {
	Op      string
	Lines   []string
	Imports []string
}

// noInherit lists operations never copied from a delegate type's method
// set. Their bodies consult the record's own slots first; extracting them
// from a marker would wire the delegate's attribute protocol straight
// through and shadow the record's fields.
var noInherit = map[string]struct{}{
	"GetAttr": {},
	"SetAttr": {},
}

// reservedNames are methods the record builder always emits itself.
var reservedNames = map[string]struct{}{
	"String":      {},
	"Fields":      {},
	"Get":         {},
	"Set":         {},
	"AsMap":       {},
	"ExportState": {},
	"ImportState": {},
}

// Composer resolves delegation requests into concrete methods. Conflicts
// between delegations resolve first-declared-wins; names the user already
// authored in a sidecar file, computed members, and builder-reserved names
// are never generated.
type Composer struct {
	analyzer *analyze.Analyzer
}

func NewComposer(analyzer *analyze.Analyzer) *Composer {
	return &Composer{analyzer: analyzer}
}

// Compose returns the delegated methods for one record, in resolution
// order. userMethods lists method names the output directory's sidecar
// files already declare on this record type.
func (c *Composer) Compose(d *record.Decl, cls *classify.Classified, userMethods []string) ([]Method, error) {
	frozen := d.Mutability() == record.Frozen

	seen := map[string]struct{}{}
	for _, name := range userMethods {
		seen[name] = struct{}{}
	}

	for _, f := range cls.Computed {
		seen[common.Exported(f.Name)] = struct{}{}
	}

	// Frozen records read through exported getters; an operation sharing a
	// getter's name would collide in the same method set.
	if frozen {
		for _, name := range cls.FieldOrder() {
			seen[common.Exported(name)] = struct{}{}
		}
	}

	var out []Method

	for _, dele := range cls.Delegations {
		ctx := protocol.Context{
			Recv: "r",
			Type: d.Name,
		}

		fieldIdent := common.Exported(dele.Field)
		if frozen {
			fieldIdent = common.Unexported(dele.Field)
		}

		ops, forwards, err := c.resolveOps(d.Name, dele)
		if err != nil {
			return nil, err
		}

		for _, op := range ops {
			if _, done := seen[op]; done {
				continue
			}

			if _, reserved := reservedNames[op]; reserved {
				continue
			}

			if frozen && protocol.MutatesRecord(op) {
				continue
			}

			ctx.Delegate = delegateExpr(ctx.Recv, fieldIdent, dele.Type, op)

			lines, err := protocol.Render(op, ctx)
			if err != nil {
				return nil, errors.Wrapf(err, "record %s, field %s", d.Name, dele.Field)
			}

			imports := protocol.Imports(op)
			if dele.Type == "" {
				imports = append(imports, "record-composer/ops")
			}

			seen[op] = struct{}{}
			out = append(out, Method{Op: op, Lines: lines, Imports: imports})
		}

		// Marker members outside the catalog forward verbatim, the same
		// first-declared-wins and reserved-name rules applying.
		for _, fwd := range forwards {
			name := fwd.method.Name
			if _, done := seen[name]; done {
				continue
			}

			if _, reserved := reservedNames[name]; reserved {
				continue
			}

			target := ctx.Recv + "." + fieldIdent
			imports := append([]string(nil), fwd.method.Imports...)

			if dele.Type == "" {
				target += ".(" + fwd.typeExpr + ")"
				imports = append(imports, fwd.typeImport)
			}

			seen[name] = struct{}{}
			out = append(out, Method{
				Op:      name,
				Lines:   forwardLines(ctx.Recv, d.Name, target, fwd.method),
				Imports: imports,
			})
		}
	}

	return out, nil
}

// forward is one marker member without a catalog template; its body is a
// verbatim call through the delegate, signature and all.
type forward struct {
	method analyze.Method
	// typeExpr and typeImport name the marker type, for the assertion an
	// untyped field needs.
	typeExpr   string
	typeImport string
}

// resolveOps expands one delegation request into catalog operation names,
// preserving request order, plus the verbatim forwards a type marker
// contributes beyond the catalog.
func (c *Composer) resolveOps(recordName string, dele classify.Delegation) ([]string, []forward, error) {
	var (
		out  []string
		fwds []forward
	)

	for _, ref := range dele.Decl.Ops {
		switch {
		case ref.IsTypeMarker():
			names, extra, err := c.markerOps(ref.TypeTarget())
			if err != nil {
				return nil, nil, errors.Wrapf(err, "record %s, field %s", recordName, dele.Field)
			}

			out = append(out, names...)
			fwds = append(fwds, extra...)

		case protocol.IsCategory(ref.Raw):
			names, _ := protocol.Expand(protocol.Category(ref.Raw))
			out = append(out, names...)

		case protocol.Known(ref.Raw):
			out = append(out, ref.Raw)

		default:
			return nil, nil, errors.Wrapf(errors.ErrTemplateNotFound,
				"record %s, field %s: %q", recordName, dele.Field, ref.Raw)
		}
	}

	return out, fwds, nil
}

// markerOps resolves a type marker to the operation names its method set
// covers, plus verbatim forwards for every other exported member. Attribute
// hooks are excluded; they are synthesized fresh so the record's own slots
// stay visible.
func (c *Composer) markerOps(qualified string) ([]string, []forward, error) {
	if c.analyzer == nil {
		return nil, nil, errors.Wrapf(errors.ErrUnknownType,
			"type marker %q needs analyze packages configured", qualified)
	}

	methods, err := c.analyzer.Methods(qualified)
	if err != nil {
		return nil, nil, err
	}

	typeExpr, typeImport, err := c.analyzer.MarkerType(qualified)
	if err != nil {
		return nil, nil, err
	}

	var (
		out  []string
		fwds []forward
	)

	for _, m := range methods {
		if _, skip := noInherit[m.Name]; skip {
			continue
		}

		if !protocol.Known(m.Name) {
			fwds = append(fwds, forward{method: m, typeExpr: typeExpr, typeImport: typeImport})
			continue
		}

		out = append(out, m.Name)
	}

	sort.Strings(out)

	return out, fwds, nil
}

// forwardLines renders the body of one verbatim forward.
func forwardLines(recv, typ, target string, m analyze.Method) []string {
	head := "func (" + recv + " *" + typ + ") " + m.Name +
		"(" + strings.Join(m.Params, ", ") + ")"

	switch len(m.Results) {
	case 0:
	case 1:
		head += " " + m.Results[0]
	default:
		head += " (" + strings.Join(m.Results, ", ") + ")"
	}

	call := target + "." + m.Name + "(" + strings.Join(m.Args, ", ") + ")"

	body := "\t" + call
	if len(m.Results) > 0 {
		body = "\treturn " + call
	}

	return []string{head + " {", body, "}"}
}

// delegateExpr builds the expression an operation body forwards to. Typed
// fields call directly; untyped fields assert to the operation's interface.
func delegateExpr(recv, fieldIdent, typ, op string) string {
	e := recv + "." + fieldIdent
	if typ == "" {
		e += ".(" + protocol.Iface(op) + ")"
	}

	return e
}
