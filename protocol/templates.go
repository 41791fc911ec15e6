package protocol

import (
	"strings"
)

// The template store: operation name -> method body lines with {{.recv}},
// {{.type}}, and {{.delegate}} placeholders. Only the canonical templates
// below are hand-authored; every other operation body is derived from them
// in init() by symbol substitution and cached here. The derivation runs
// exactly once per process.
var templates map[string][]string

// opImports lists extra imports a rendered operation body needs.
var opImports map[string][]string

// operationOrder preserves registration order for deterministic listing.
var operationOrder []string

// Canonical templates. The method names and signatures present here are the
// substitution anchors for the derived operations.
var (
	// Left binary operation: "receiver op other".
	binaryLeftTemplate = []string{
		"func ({{.recv}} *{{.type}}) Add(other any) any {",
		"\treturn {{.delegate}}.Add(other)",
		"}",
	}

	// Right binary operation: "other op receiver".
	binaryRightTemplate = []string{
		"func ({{.recv}} *{{.type}}) RAdd(other any) any {",
		"\treturn {{.delegate}}.RAdd(other)",
		"}",
	}

	// In-place binary operation.
	inPlaceTemplate = []string{
		"func ({{.recv}} *{{.type}}) AddAssign(other any) {",
		"\t{{.delegate}}.AddAssign(other)",
		"}",
	}

	// Indexed get/set pair.
	indexGetTemplate = []string{
		"func ({{.recv}} *{{.type}}) GetIndex(key any) (any, error) {",
		"\treturn {{.delegate}}.GetIndex(key)",
		"}",
	}
	indexSetTemplate = []string{
		"func ({{.recv}} *{{.type}}) SetIndex(key, value any) error {",
		"\treturn {{.delegate}}.SetIndex(key, value)",
		"}",
	}

	// Attribute get/set pair. These consult the record's own slots before
	// falling through to the delegate; they are never copied from a
	// delegate's method set, which would recurse through the delegate's own
	// attribute protocol.
	attrGetTemplate = []string{
		"func ({{.recv}} *{{.type}}) GetAttr(name string) (any, error) {",
		"\tif v, ok := {{.recv}}.slot(name); ok {",
		"\t\treturn v, nil",
		"\t}",
		"\treturn {{.delegate}}.GetAttr(name)",
		"}",
	}
	attrSetTemplate = []string{
		"func ({{.recv}} *{{.type}}) SetAttr(name string, value any) error {",
		"\tif handled, err := {{.recv}}.setSlot(name, value); handled {",
		"\t\treturn err",
		"\t}",
		"\treturn {{.delegate}}.SetAttr(name, value)",
		"}",
	}

	// Unary forward operation; iteration is the canonical instance, and the
	// coercion operations substitute its name and result type.
	iterTemplate = []string{
		"func ({{.recv}} *{{.type}}) Iter() iter.Seq[any] {",
		"\treturn {{.delegate}}.Iter()",
		"}",
	}
)

// substitute returns a copy of lines with every occurrence of old replaced
// by new.
func substitute(lines []string, old, new string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.ReplaceAll(line, old, new)
	}

	return out
}

func register(name string, lines []string, imports ...string) {
	templates[name] = lines
	operationOrder = append(operationOrder, name)

	if len(imports) > 0 {
		opImports[name] = imports
	}
}

func init() {
	templates = make(map[string][]string)
	opImports = make(map[string][]string)

	// Forward/reverse/in-place triads for every binary category.
	for _, b := range binaryOps {
		register(b.name, substitute(binaryLeftTemplate, "Add", b.name))
		register("R"+b.name, substitute(binaryRightTemplate, "RAdd", "R"+b.name))
		register(b.name+"Assign", substitute(inPlaceTemplate, "AddAssign", b.name+"Assign"))
	}

	// Comparisons derive from the left-binary canonical with a bool result.
	for _, cat := range []Category{CatEq, CatNe, CatGt, CatLt, CatGe, CatLe} {
		name := comparisonOps[cat]
		lines := substitute(binaryLeftTemplate, "Add", name)
		register(name, substitute(lines, ") any {", ") bool {"))
	}

	// Membership derives from the right-binary canonical: "v in receiver".
	{
		lines := substitute(binaryRightTemplate, "RAdd", "Contains")
		lines = substitute(lines, "(other any) any", "(v any) bool")
		register("Contains", substitute(lines, "Contains(other)", "Contains(v)"))
	}

	// Unary operations derive from the iteration canonical.
	for _, name := range []string{"Pos", "Neg", "Invert", "Abs"} {
		lines := substitute(iterTemplate, "Iter() iter.Seq[any]", name+"() any")
		register(name, substitute(lines, ".Iter()", "."+name+"()"))
	}

	// Iteration itself, its reverse, and the iteration-derived coercions.
	register("Iter", iterTemplate, "iter")
	register("Reversed", substitute(iterTemplate, "Iter", "Reversed"), "iter")

	coercions := []struct{ name, result string }{
		{"String", "string"},
		{"Bytes", "[]byte"},
		{"Hash", "uint64"},
		{"Bool", "bool"},
		{"Len", "int"},
		{"Int", "int64"},
		{"Float", "float64"},
		{"Complex", "complex128"},
	}
	for _, c := range coercions {
		lines := substitute(iterTemplate, "Iter() iter.Seq[any]", c.name+"() "+c.result)
		register(c.name, substitute(lines, ".Iter()", "."+c.name+"()"))
	}

	// Indexing triad.
	register("GetIndex", indexGetTemplate)
	register("SetIndex", indexSetTemplate)
	{
		lines := substitute(indexSetTemplate, "SetIndex(key, value any) error", "DelIndex(key any) error")
		register("DelIndex", substitute(lines, "SetIndex(key, value)", "DelIndex(key)"))
	}

	// Attribute hooks.
	register("GetAttr", attrGetTemplate)
	register("SetAttr", attrSetTemplate)
	{
		lines := substitute(indexSetTemplate, "SetIndex(key, value any) error", "DelAttr(name string) error")
		register("DelAttr", substitute(lines, "SetIndex(key, value)", "DelAttr(name)"))
	}
	{
		lines := substitute(inPlaceTemplate, "AddAssign(other any)", "BindName(owner any, name string)")
		register("BindName", substitute(lines, "BindName(other)", "BindName(owner, name)"))
	}

	// Call.
	{
		lines := substitute(binaryLeftTemplate, "Add(other any) any", "Call(args ...any) any")
		register("Call", substitute(lines, "Call(other)", "Call(args...)"))
	}

	// Context-scoping pair.
	{
		lines := substitute(iterTemplate, "Iter() iter.Seq[any]", "Enter() (any, error)")
		register("Enter", substitute(lines, ".Iter()", ".Enter()"))
	}
	{
		lines := substitute(binaryLeftTemplate, "Add(other any) any", "Exit(err error) error")
		register("Exit", substitute(lines, "Exit(other)", "Exit(err)"))
	}

	// Disposal.
	{
		lines := substitute(inPlaceTemplate, "AddAssign(other any)", "Drop()")
		register("Drop", substitute(lines, "Drop(other)", "Drop()"))
	}

	// Suspension-point coercion.
	{
		lines := substitute(binaryLeftTemplate, "Add(other any) any", "Await(ctx context.Context) (any, error)")
		register("Await", substitute(lines, "Await(other)", "Await(ctx)"), "context")
	}
}
