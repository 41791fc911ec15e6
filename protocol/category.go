// Package protocol holds the operator-protocol catalog and the template
// store for the record composer.
//
// The catalog maps symbolic operator categories ("+", "==", "[]", "for", …)
// to the concrete operation names each category expands to. The template
// store holds the method bodies rendered for delegated operations. Both are
// built once in init() and never mutated afterward, so they are safe to
// share across concurrent record generations without locking.
package protocol

type Category string

// The symbolic operator categories a delegation request may name.
const (
	CatAdd      Category = "+"
	CatSub      Category = "-"
	CatMul      Category = "*"
	CatMatMul   Category = "@"
	CatDiv      Category = "/"
	CatFloorDiv Category = "//"
	CatMod      Category = "%"
	CatPow      Category = "**"
	CatLsh      Category = "<<"
	CatRsh      Category = ">>"
	CatAnd      Category = "&"
	CatXor      Category = "^"
	CatOr       Category = "|"
	CatInvert   Category = "~"
	CatEq       Category = "=="
	CatNe       Category = "!="
	CatGt       Category = ">"
	CatLt       Category = "<"
	CatGe       Category = ">="
	CatLe       Category = "<="
	CatCall     Category = "()"
	CatIndex    Category = "[]"
	CatAttr     Category = "."
	CatIn       Category = "in"
	CatFor      Category = "for"
	CatWith     Category = "with"
	CatDel      Category = "del"
	CatAwait    Category = "await"
)

// binaryOp pairs a symbolic category with the base name of its
// forward/reverse/in-place operation triad.
type binaryOp struct {
	cat  Category
	name string
}

var binaryOps = []binaryOp{
	{CatAdd, "Add"},
	{CatSub, "Sub"},
	{CatMul, "Mul"},
	{CatMatMul, "MatMul"},
	{CatDiv, "Div"},
	{CatFloorDiv, "FloorDiv"},
	{CatMod, "Mod"},
	{CatPow, "Pow"},
	{CatLsh, "Lsh"},
	{CatRsh, "Rsh"},
	{CatAnd, "And"},
	{CatXor, "Xor"},
	{CatOr, "Or"},
}

var comparisonOps = map[Category]string{
	CatEq: "Equal",
	CatNe: "NotEqual",
	CatGt: "Greater",
	CatLt: "Less",
	CatGe: "GreaterEqual",
	CatLe: "LessEqual",
}

// catalog maps each category to the ordered operation names it expands to.
// Built once in init; read-only afterward.
var catalog map[Category][]string

// categoryOrder preserves the declaration order of the categories for
// deterministic listing.
var categoryOrder []Category

func init() {
	catalog = make(map[Category][]string)

	add := func(cat Category, names ...string) {
		catalog[cat] = names
		categoryOrder = append(categoryOrder, cat)
	}

	for _, b := range binaryOps {
		add(b.cat, b.name, "R"+b.name, b.name+"Assign")
	}

	add(CatInvert, "Invert")

	// Comparisons are forward-only, six independent operations.
	add(CatEq, comparisonOps[CatEq])
	add(CatNe, comparisonOps[CatNe])
	add(CatGt, comparisonOps[CatGt])
	add(CatLt, comparisonOps[CatLt])
	add(CatGe, comparisonOps[CatGe])
	add(CatLe, comparisonOps[CatLe])

	add(CatCall, "Call")
	add(CatIndex, "GetIndex", "SetIndex", "DelIndex")
	add(CatAttr, "GetAttr", "SetAttr", "DelAttr", "BindName")
	add(CatIn, "Contains")
	add(CatFor, "Iter")
	add(CatWith, "Enter", "Exit")
	add(CatDel, "Drop")
	add(CatAwait, "Await")
}

// Expand returns the ordered operation names for a category.
func Expand(cat Category) ([]string, bool) {
	names, ok := catalog[cat]
	return names, ok
}

// IsCategory reports whether s is a known category symbol.
func IsCategory(s string) bool {
	_, ok := catalog[Category(s)]
	return ok
}

// Categories returns all category symbols in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)

	return out
}
