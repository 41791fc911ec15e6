package protocol

import (
	"bytes"
	"text/template"

	"record-composer/internal/errors"
)

// Context carries the per-record values substituted into an operation body.
// Rendering is pure string substitution; no record data is evaluated here.
type Context struct {
	// Recv is the receiver variable name, e.g. "r".
	Recv string
	// Type is the record type name, e.g. "Stack".
	Type string
	// Delegate is the expression the operation forwards to, e.g. "r.Head"
	// or "r.Head.(ops.IterOp)" when the field's declared type is any.
	Delegate string
}

// Render returns the method body lines for op with the context substituted.
// An operation absent from both the catalog expansion and the template store
// fails with ErrTemplateNotFound, reported with the offending name.
func Render(op string, ctx Context) ([]string, error) {
	lines, ok := templates[op]
	if !ok {
		return nil, errors.Wrapf(errors.ErrTemplateNotFound, "%q", op)
	}

	data := map[string]any{
		"recv":     ctx.Recv,
		"type":     ctx.Type,
		"delegate": ctx.Delegate,
	}

	out := make([]string, len(lines))

	for i, line := range lines {
		tmpl, err := template.New("line").Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template line for %q", op)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, errors.Wrapf(err, "rendering %q", op)
		}

		out[i] = buf.String()
	}

	return out, nil
}

// Known reports whether op has a template.
func Known(op string) bool {
	_, ok := templates[op]
	return ok
}

// Iface returns the ops-package interface a delegate of unknown type is
// asserted to for the operation, e.g. "ops.AddOp" for Add. The mapping is
// mechanical: operation name plus the "Op" suffix.
func Iface(op string) string {
	return "ops." + op + "Op"
}

// Imports returns the extra imports a rendered operation body needs. The
// result is the caller's to own; appending to it never touches the store.
func Imports(op string) []string {
	return append([]string(nil), opImports[op]...)
}

// Operations returns every operation name in the template store, in
// registration order.
func Operations() []string {
	out := make([]string, len(operationOrder))
	copy(out, operationOrder)

	return out
}

// MutatesRecord reports whether the operation writes record attributes.
// Frozen records do not compose these; their write path always fails.
func MutatesRecord(op string) bool {
	return op == "SetAttr" || op == "DelAttr"
}
