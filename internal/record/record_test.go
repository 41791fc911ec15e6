package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDecl = `
package: records
analyze: "./..."

records:
  - name: LinkedStack
    doc: holds a LIFO sequence.
    fields:
      - name: items
        type: ops.List
        delegate:
          ops: ["+", "for", "type:ops.List"]
          default: ops.NewList()
      - name: label
        type: string
        default: '"stack"'

  - name: Point
    frozen: true
    layout: [cache]
    fields:
      - name: x
        type: float64
      - name: y
        type: float64
`

func TestParseDeclarationFile(t *testing.T) {
	f, err := Parse([]byte(sampleDecl))
	require.NoError(t, err)

	assert.Equal(t, "records", f.Package)

	// Defaults fill in unset optionals.
	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "./generated", f.Output)

	// Scalar-or-list fields accept a bare string.
	assert.Equal(t, StringArray{"./..."}, f.Analyze)

	require.Len(t, f.Records, 2)

	stack := f.Records[0]
	require.Len(t, stack.Fields, 2)

	items := stack.Fields[0]
	require.NotNil(t, items.Delegate)
	require.Len(t, items.Delegate.Ops, 3)
	assert.Equal(t, "+", items.Delegate.Ops[0].Raw)
	assert.False(t, items.Delegate.Ops[0].IsTypeMarker())
	assert.True(t, items.Delegate.Ops[2].IsTypeMarker())
	assert.Equal(t, "ops.List", items.Delegate.Ops[2].TypeTarget())
	require.NotNil(t, items.Delegate.Default)
	assert.Equal(t, "ops.NewList()", *items.Delegate.Default)

	point := f.Records[1]
	assert.True(t, point.Frozen)
	assert.Equal(t, Frozen, point.Mutability())
	assert.Equal(t, StringArray{"cache"}, point.Layout)
	assert.True(t, point.Fields[0].IsAnnotation())
}

func TestParseSingleOpAsScalar(t *testing.T) {
	f, err := Parse([]byte(`
package: records
records:
  - name: Box
    fields:
      - name: v
        delegate:
          ops: "+"
`))
	require.NoError(t, err)
	require.Len(t, f.Records[0].Fields[0].Delegate.Ops, 1)
	assert.Equal(t, "+", f.Records[0].Fields[0].Delegate.Ops[0].Raw)
}

func TestMarshalRoundTrip(t *testing.T) {
	f, err := Parse([]byte(sampleDecl))
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f.Records[0].Fields[0].Delegate.Ops, back.Records[0].Fields[0].Delegate.Ops)
	assert.Equal(t, f.Records[1].Layout, back.Records[1].Layout)
}

func TestValidateAcceptsSample(t *testing.T) {
	f, err := Parse([]byte(sampleDecl))
	require.NoError(t, err)

	diags := Validate(f)
	assert.True(t, diags.IsValid(), diags.String())
}

func TestValidateRejectsEmbeds(t *testing.T) {
	f, err := Parse([]byte(`
package: records
records:
  - name: Child
    embeds: Base
    fields:
      - name: v
        type: int
`))
	require.NoError(t, err)

	diags := Validate(f)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.String(), "inheritance")
	assert.Contains(t, diags.String(), "delegate")
}

func TestValidateRejectsUnknownOperation(t *testing.T) {
	f, err := Parse([]byte(`
package: records
records:
  - name: Box
    fields:
      - name: v
        delegate:
          ops: ["Frobnicate"]
`))
	require.NoError(t, err)

	diags := Validate(f)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.String(), "Frobnicate")
}

func TestValidateRejectsConflictsAndDuplicates(t *testing.T) {
	f, err := Parse([]byte(`
package: records
records:
  - name: Box
    fields:
      - name: v
        type: int
        required: true
        default: "1"
      - name: v
        type: int
      - name: get
        type: int
      - name: a
        variadic: positional
      - name: b
        variadic: positional
`))
	require.NoError(t, err)

	diags := Validate(f)
	require.True(t, diags.HasErrors())

	out := diags.String()
	assert.Contains(t, out, "required and defaulted")
	assert.Contains(t, out, `duplicate field "v"`)
	assert.Contains(t, out, "built-in surface")
	assert.Contains(t, out, "variadic")
}

func TestValidateComputedStringAllowed(t *testing.T) {
	f, err := Parse([]byte(`
package: records
records:
  - name: Styled
    fields:
      - name: v
        type: int
      - name: string
        computed: true
`))
	require.NoError(t, err)

	// A computed member may claim the representation slot; a plain field
	// with the same name may not.
	assert.False(t, Validate(f).HasErrors())

	f.Records[0].Fields[1].Computed = false
	diags := Validate(f)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.String(), "built-in surface")
}

func TestValidateMissingPackage(t *testing.T) {
	diags := Validate(&File{})
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.String(), "package")
}
