// Package ops defines the operator-protocol hooks a composed record can
// delegate to one of its fields, plus the runtime helpers generated code
// relies on.
//
// Each hook is a single-method interface named after the operation with an
// "Op" suffix, so rendered forwarders can assert a delegate of unknown type
// mechanically: operation Add asserts to ops.AddOp, Iter to ops.IterOp, and
// so on. Delegates with a concrete declared type skip the assertion and get
// the method call checked at compile time instead.
//
// Reverse binary hooks receive the same operand but are expected to compute
// the flipped expression: RAdd(other) is "other + receiver", not
// "receiver + other". The List and Dict reference containers implement the
// hooks accordingly.
package ops

import (
	"context"
	"iter"
)

// Forward binary operations.
type (
	AddOp      interface{ Add(other any) any }
	SubOp      interface{ Sub(other any) any }
	MulOp      interface{ Mul(other any) any }
	MatMulOp   interface{ MatMul(other any) any }
	DivOp      interface{ Div(other any) any }
	FloorDivOp interface{ FloorDiv(other any) any }
	ModOp      interface{ Mod(other any) any }
	PowOp      interface{ Pow(other any) any }
	LshOp      interface{ Lsh(other any) any }
	RshOp      interface{ Rsh(other any) any }
	AndOp      interface{ And(other any) any }
	XorOp      interface{ Xor(other any) any }
	OrOp       interface{ Or(other any) any }
)

// Reverse binary operations ("other op receiver").
type (
	RAddOp      interface{ RAdd(other any) any }
	RSubOp      interface{ RSub(other any) any }
	RMulOp      interface{ RMul(other any) any }
	RMatMulOp   interface{ RMatMul(other any) any }
	RDivOp      interface{ RDiv(other any) any }
	RFloorDivOp interface{ RFloorDiv(other any) any }
	RModOp      interface{ RMod(other any) any }
	RPowOp      interface{ RPow(other any) any }
	RLshOp      interface{ RLsh(other any) any }
	RRshOp      interface{ RRsh(other any) any }
	RAndOp      interface{ RAnd(other any) any }
	RXorOp      interface{ RXor(other any) any }
	ROrOp       interface{ ROr(other any) any }
)

// In-place binary operations.
type (
	AddAssignOp      interface{ AddAssign(other any) }
	SubAssignOp      interface{ SubAssign(other any) }
	MulAssignOp      interface{ MulAssign(other any) }
	MatMulAssignOp   interface{ MatMulAssign(other any) }
	DivAssignOp      interface{ DivAssign(other any) }
	FloorDivAssignOp interface{ FloorDivAssign(other any) }
	ModAssignOp      interface{ ModAssign(other any) }
	PowAssignOp      interface{ PowAssign(other any) }
	LshAssignOp      interface{ LshAssign(other any) }
	RshAssignOp      interface{ RshAssign(other any) }
	AndAssignOp      interface{ AndAssign(other any) }
	XorAssignOp      interface{ XorAssign(other any) }
	OrAssignOp       interface{ OrAssign(other any) }
)

// Unary operations.
type (
	PosOp    interface{ Pos() any }
	NegOp    interface{ Neg() any }
	InvertOp interface{ Invert() any }
	AbsOp    interface{ Abs() any }
)

// Comparison operations. The six hooks are independent; a delegate
// implements whichever subset makes sense for it.
type (
	EqualOp        interface{ Equal(other any) bool }
	NotEqualOp     interface{ NotEqual(other any) bool }
	GreaterOp      interface{ Greater(other any) bool }
	LessOp         interface{ Less(other any) bool }
	GreaterEqualOp interface{ GreaterEqual(other any) bool }
	LessEqualOp    interface{ LessEqual(other any) bool }
)

// Indexing operations.
type (
	GetIndexOp interface{ GetIndex(key any) (any, error) }
	SetIndexOp interface{ SetIndex(key, value any) error }
	DelIndexOp interface{ DelIndex(key any) error }
)

// Attribute operations. GetAttr and SetAttr are never forwarded to a
// delegate as-is; the composer synthesizes fresh bodies that consult the
// record's own slots first, then fall through to the delegate. Forwarding
// them blindly would recurse through the delegate's own attribute protocol.
type (
	GetAttrOp  interface{ GetAttr(name string) (any, error) }
	SetAttrOp  interface{ SetAttr(name string, value any) error }
	DelAttrOp  interface{ DelAttr(name string) error }
	BindNameOp interface{ BindName(owner any, name string) }
)

// Membership, iteration, and call operations.
type (
	ContainsOp interface{ Contains(v any) bool }
	IterOp     interface{ Iter() iter.Seq[any] }
	ReversedOp interface{ Reversed() iter.Seq[any] }
	CallOp     interface{ Call(args ...any) any }
)

// Context-scoping, disposal, and suspension operations.
type (
	EnterOp interface{ Enter() (any, error) }
	ExitOp  interface{ Exit(err error) error }
	DropOp  interface{ Drop() }
	AwaitOp interface {
		Await(ctx context.Context) (any, error)
	}
)

// Coercion operations, derived from the iteration template.
type (
	StringOp  interface{ String() string }
	BytesOp   interface{ Bytes() []byte }
	HashOp    interface{ Hash() uint64 }
	BoolOp    interface{ Bool() bool }
	LenOp     interface{ Len() int }
	IntOp     interface{ Int() int64 }
	FloatOp   interface{ Float() float64 }
	ComplexOp interface{ Complex() complex128 }
)

// Exporter is implemented by values that can export themselves to a map.
// Generated AsMap methods recurse into nested exporters.
type Exporter interface {
	AsMap() map[string]any
}

// StateExporter is the opaque-serialization surface of generated records:
// ExportState yields field values in field order, ImportState assigns them
// back into the slots without re-invoking the constructor.
type StateExporter interface {
	ExportState() []any
	ImportState(vals []any) error
}

// ExportValue returns v.AsMap() if v is an Exporter, otherwise v unchanged.
func ExportValue(v any) any {
	if e, ok := v.(Exporter); ok {
		return e.AsMap()
	}

	return v
}
