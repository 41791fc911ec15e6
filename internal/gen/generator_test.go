package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-composer/internal/errors"
	"record-composer/internal/record"
)

func strp(s string) *string { return &s }

func generate(t *testing.T, records ...record.Decl) []GeneratedFile {
	t.Helper()

	f := &record.File{
		Package: "records",
		Output:  t.TempDir(),
		Records: records,
	}

	g := New(Config{})

	files, err := g.Generate(f)
	require.NoError(t, err)
	require.Len(t, files, len(records))

	for _, file := range files {
		require.NotNil(t, file.Source, file.Name)
	}

	return files
}

func TestGenerateBasicRecord(t *testing.T) {
	files := generate(t, record.Decl{
		Name: "Point",
		Fields: []record.FieldDecl{
			{Name: "x", Type: "float64"},
			{Name: "y", Type: "float64"},
			{Name: "label", Type: "string", Default: strp(`"p"`)},
		},
	})

	require.Equal(t, "point_gen.go", files[0].Name)
	src := string(files[0].Source)

	assert.Contains(t, src, "// Code generated by record-composer. DO NOT EDIT.")
	assert.Contains(t, src, "type Point struct {")
	assert.Contains(t, src, "func NewPoint(x float64, y float64, opts ...PointOption) *Point {")
	assert.Contains(t, src, "func WithLabel(v string) PointOption {")
	assert.Contains(t, src, `Label: "p",`)
	assert.Contains(t, src, `var pointFieldOrder = []string{"x", "y", "label"}`)
	assert.Contains(t, src, "func (r *Point) String() string {")
	assert.Contains(t, src, `"Point(x=%v, y=%v, label=%v)"`)
	assert.Contains(t, src, "func (r *Point) AsMap() map[string]any {")
	assert.Contains(t, src, "func (r *Point) ImportState(state []any) error {")
}

func TestGenerateTypedDelegation(t *testing.T) {
	files := generate(t, record.Decl{
		Name: "Stack",
		Fields: []record.FieldDecl{
			{
				Name: "head",
				Type: "ops.List",
				Delegate: &record.DelegateDecl{
					Ops:     record.OpRefArray{{Raw: "+"}, {Raw: "for"}, {Raw: "=="}},
					Default: strp("ops.NewList()"),
				},
			},
		},
	})

	src := string(files[0].Source)

	// Typed delegates are called directly, no interface assertion.
	assert.Contains(t, src, "func (r *Stack) Add(other any) any {")
	assert.Contains(t, src, "return r.Head.Add(other)")
	assert.Contains(t, src, "func (r *Stack) RAdd(other any) any {")
	assert.Contains(t, src, "func (r *Stack) AddAssign(other any) {")
	assert.Contains(t, src, "func (r *Stack) Iter() iter.Seq[any] {")
	assert.Contains(t, src, "func (r *Stack) Equal(other any) bool {")
	assert.Contains(t, src, `"iter"`)
	assert.Contains(t, src, "Head: ops.NewList(),")
}

func TestGenerateUntypedDelegateAsserts(t *testing.T) {
	files := generate(t, record.Decl{
		Name: "Box",
		Fields: []record.FieldDecl{
			{
				Name:     "value",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "+"}}},
			},
		},
	})

	src := string(files[0].Source)

	assert.Contains(t, src, "return r.Value.(ops.AddOp).Add(other)")
	assert.Contains(t, src, "return r.Value.(ops.RAddOp).RAdd(other)")
}

func TestGenerateFrozenRecord(t *testing.T) {
	files := generate(t, record.Decl{
		Name:   "Point",
		Frozen: true,
		Fields: []record.FieldDecl{
			{Name: "x", Type: "float64"},
			{Name: "y", Type: "float64"},
		},
	})

	src := string(files[0].Source)

	// Fields are unexported, read through generated getters, and every
	// write through the dynamic path fails.
	assert.Contains(t, src, "\tx float64")
	assert.Contains(t, src, "func (r *Point) X() float64 {")
	assert.Contains(t, src, "func (r *Point) Y() float64 {")
	assert.Contains(t, src, `ops.FrozenError("Point")`)
	assert.NotContains(t, src, "func WithX")
}

func TestGenerateFrozenSkipsAttributeWrites(t *testing.T) {
	files := generate(t, record.Decl{
		Name:   "Sealed",
		Frozen: true,
		Fields: []record.FieldDecl{
			{
				Name:     "inner",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "."}}},
			},
		},
	})

	src := string(files[0].Source)

	assert.Contains(t, src, "func (r *Sealed) GetAttr(name string) (any, error) {")
	assert.NotContains(t, src, "func (r *Sealed) SetAttr(")
	assert.NotContains(t, src, "func (r *Sealed) DelAttr(")
}

func TestGenerateAttributeHooksGuardSlots(t *testing.T) {
	files := generate(t, record.Decl{
		Name: "Proxy",
		Fields: []record.FieldDecl{
			{
				Name:     "target",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "."}}},
			},
		},
	})

	src := string(files[0].Source)

	// The hooks check the record's own slots before forwarding.
	assert.Contains(t, src, "if v, ok := r.slot(name); ok {")
	assert.Contains(t, src, "if handled, err := r.setSlot(name, value); handled {")
	assert.Contains(t, src, "return r.Target.(ops.GetAttrOp).GetAttr(name)")

	// Get and Set route through the composed hooks.
	assert.Contains(t, src, "return r.GetAttr(name)")
	assert.Contains(t, src, "return r.SetAttr(name, value)")
}

func TestGenerateEscapeSetattrBypassesHook(t *testing.T) {
	files := generate(t, record.Decl{
		Name:          "Raw",
		EscapeSetattr: true,
		Fields: []record.FieldDecl{
			{
				Name:     "target",
				Required: true,
				Delegate: &record.DelegateDecl{Ops: record.OpRefArray{{Raw: "."}}},
			},
		},
	})

	src := string(files[0].Source)

	assert.Contains(t, src, "func (r *Raw) SetAttr(name string, value any) error {")
	assert.NotContains(t, src,
		"func (r *Raw) Set(name string, value any) error {\n\treturn r.SetAttr(name, value)")
	assert.Contains(t, src, "if handled, err := r.setSlot(name, value); handled {")
}

func TestGenerateUserStringSuppressed(t *testing.T) {
	dir := t.TempDir()

	sidecar := `package records

func (r *Box) String() string { return "box" }
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "box_hooks.go"), []byte(sidecar), 0o644))

	f := &record.File{
		Package: "records",
		Output:  dir,
		Records: []record.Decl{
			{Name: "Box", Fields: []record.FieldDecl{{Name: "v", Type: "int"}}},
		},
	}

	files, err := New(Config{}).Generate(f)
	require.NoError(t, err)

	src := string(files[0].Source)

	// The user's representation wins; a second String on the same type
	// would not compile, and nothing else needs fmt.
	assert.NotContains(t, src, "func (r *Box) String()")
	assert.NotContains(t, src, `"fmt"`)
	assert.Contains(t, src, "func (r *Box) AsMap() map[string]any {")
}

func TestGenerateComputedStringSuppressed(t *testing.T) {
	files := generate(t, record.Decl{
		Name: "Styled",
		Fields: []record.FieldDecl{
			{Name: "v", Type: "int"},
			{Name: "string", Computed: true},
		},
	})

	src := string(files[0].Source)

	assert.NotContains(t, src, "func (r *Styled) String()")
	assert.NotContains(t, src, `"fmt"`)
}

func TestGenerateTypeMarkerForwarders(t *testing.T) {
	f := &record.File{
		Package: "records",
		Output:  t.TempDir(),
		Records: []record.Decl{
			{
				Name: "Registry",
				Fields: []record.FieldDecl{
					{
						Name: "entries",
						Type: "ops.Dict",
						Delegate: &record.DelegateDecl{
							Ops:     record.OpRefArray{{Raw: "type:ops.Dict"}},
							Default: strp("ops.NewDict()"),
						},
					},
				},
			},
		},
	}

	files, err := New(Config{Analyze: []string{"record-composer/ops"}}).Generate(f)
	require.NoError(t, err)

	src := string(files[0].Source)

	// Catalog members render from templates, everything else forwards.
	assert.Contains(t, src, "func (r *Registry) Len() int {")
	assert.Contains(t, src, "func (r *Registry) Keys() []string {")
	assert.Contains(t, src, "return r.Entries.Keys()")

	// AsMap stays the generated exporter, never the delegate's.
	assert.Contains(t, src, `"entries": ops.ExportValue(r.Entries),`)
}

func TestGeneratePostInitHook(t *testing.T) {
	files := generate(t, record.Decl{
		Name: "Norm",
		Fields: []record.FieldDecl{
			{Name: "v", Type: "float64"},
			{Name: "init", Computed: true},
		},
	})

	src := string(files[0].Source)

	assert.Contains(t, src, "r.init()")
}

func TestGenerateVariadicCaptures(t *testing.T) {
	files := generate(t, record.Decl{
		Name: "Invocation",
		Fields: []record.FieldDecl{
			{Name: "name", Type: "string"},
			{Name: "args", Variadic: record.VariadicPositional},
			{Name: "kwargs", Variadic: record.VariadicKeyword},
		},
	})

	src := string(files[0].Source)

	assert.Contains(t, src, "Args []any")
	assert.Contains(t, src, "Kwargs map[string]any")
	assert.Contains(t, src, "func WithArgs(vs ...any) InvocationOption {")
	assert.Contains(t, src, "func WithKwargs(v map[string]any) InvocationOption {")
}

func TestGenerateEmbedsRejected(t *testing.T) {
	f := &record.File{
		Package: "records",
		Output:  t.TempDir(),
		Records: []record.Decl{
			{Name: "Child", Embeds: record.StringArray{"Base"}},
		},
	}

	g := New(Config{})

	_, err := g.Generate(f)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInheritance))
	assert.Contains(t, err.Error(), "Child")
}
