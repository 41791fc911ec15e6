package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-composer/internal/analyze"
	"record-composer/internal/classify"
	"record-composer/internal/errors"
	"record-composer/internal/record"
)

func compose(t *testing.T, d *record.Decl, userMethods ...string) []Method {
	t.Helper()

	cls, err := classify.Classify(d)
	require.NoError(t, err)

	methods, err := NewComposer(nil).Compose(d, cls, userMethods)
	require.NoError(t, err)

	return methods
}

func opNames(methods []Method) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, m.Op)
	}

	return out
}

func TestComposeFirstDeclaredWins(t *testing.T) {
	d := &record.Decl{
		Name: "Pair",
		Fields: []record.FieldDecl{
			{
				Name:     "left",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "+"}, {Raw: "=="}}},
			},
			{
				Name:     "right",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "+"}, {Raw: "=="}, {Raw: "-"}}},
			},
		},
	}

	methods := compose(t, d)
	assert.Equal(t, []string{"Add", "RAdd", "AddAssign", "Equal", "Sub", "RSub", "SubAssign"}, opNames(methods))

	// Both contested operations forward to the first declaring field.
	assert.Contains(t, methods[0].Lines[1], "r.Left.(ops.AddOp)")
	assert.Contains(t, methods[3].Lines[1], "r.Left.(ops.EqualOp)")
	assert.Contains(t, methods[4].Lines[1], "r.Right.(ops.SubOp)")
}

func TestComposeSkipsUserAndReservedNames(t *testing.T) {
	d := &record.Decl{
		Name: "Wrapped",
		Fields: []record.FieldDecl{
			{
				Name:     "inner",
				Required: true,
				Delegate: &record.DelegateDecl{
					Ops: record.OpRefArray{{Raw: "String"}, {Raw: "Len"}, {Raw: "Bool"}},
				},
			},
		},
	}

	// String is builder-reserved, Len is user-authored; only Bool lands.
	methods := compose(t, d, "Len")
	assert.Equal(t, []string{"Bool"}, opNames(methods))
}

func TestComposeSkipsComputedMembers(t *testing.T) {
	d := &record.Decl{
		Name: "Area",
		Fields: []record.FieldDecl{
			{Name: "len", Computed: true},
			{
				Name:     "shape",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "Len"}, {Raw: "Iter"}}},
			},
		},
	}

	methods := compose(t, d)
	assert.Equal(t, []string{"Iter"}, opNames(methods))
}

func TestComposeUnknownOperation(t *testing.T) {
	d := &record.Decl{
		Name: "Bad",
		Fields: []record.FieldDecl{
			{
				Name:     "v",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "Frobnicate"}}},
			},
		},
	}

	cls, err := classify.Classify(d)
	require.NoError(t, err)

	_, err = NewComposer(nil).Compose(d, cls, nil)
	require.Error(t, err)
	assert.True(t, errors.IsTemplateNotFound(err))
	assert.Contains(t, err.Error(), "Frobnicate")
}

func methodByOp(methods []Method, op string) (Method, bool) {
	for _, m := range methods {
		if m.Op == op {
			return m, true
		}
	}

	return Method{}, false
}

func TestComposeTypeMarkerForwardsExtraMethods(t *testing.T) {
	a := analyze.NewAnalyzer()
	require.NoError(t, a.Load("record-composer/ops"))

	d := &record.Decl{
		Name: "Bag",
		Fields: []record.FieldDecl{
			{
				Name:     "data",
				Type:     "ops.Dict",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "type:ops.Dict"}}},
			},
		},
	}

	cls, err := classify.Classify(d)
	require.NoError(t, err)

	methods, err := NewComposer(a).Compose(d, cls, nil)
	require.NoError(t, err)

	names := opNames(methods)
	assert.Contains(t, names, "Len")
	assert.Contains(t, names, "GetIndex")

	// Keys has no catalog template; it forwards verbatim, signature intact.
	keys, ok := methodByOp(methods, "Keys")
	require.True(t, ok)
	assert.Equal(t, "func (r *Bag) Keys() []string {", keys.Lines[0])
	assert.Equal(t, "\treturn r.Data.Keys()", keys.Lines[1])

	// Builder-owned names never forward.
	assert.NotContains(t, names, "String")
	assert.NotContains(t, names, "AsMap")
}

func TestComposeTypeMarkerAssertsUntypedForwards(t *testing.T) {
	a := analyze.NewAnalyzer()
	require.NoError(t, a.Load("record-composer/ops"))

	d := &record.Decl{
		Name: "Loose",
		Fields: []record.FieldDecl{
			{
				Name:     "data",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "type:ops.Dict"}}},
			},
		},
	}

	cls, err := classify.Classify(d)
	require.NoError(t, err)

	methods, err := NewComposer(a).Compose(d, cls, nil)
	require.NoError(t, err)

	keys, ok := methodByOp(methods, "Keys")
	require.True(t, ok)
	assert.Equal(t, "\treturn r.Data.(ops.Dict).Keys()", keys.Lines[1])
	assert.Contains(t, keys.Imports, "record-composer/ops")
}

func TestComposeTypeMarkerNeedsAnalyzer(t *testing.T) {
	d := &record.Decl{
		Name: "Marked",
		Fields: []record.FieldDecl{
			{
				Name:     "v",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "type:ops.List"}}},
			},
		},
	}

	cls, err := classify.Classify(d)
	require.NoError(t, err)

	_, err = NewComposer(nil).Compose(d, cls, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownType))
}
