package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-composer/ops"
)

func TestDictIndexing(t *testing.T) {
	t.Parallel()

	d := ops.NewDict()

	require.NoError(t, d.SetIndex("a", 1))
	require.NoError(t, d.SetIndex("b", 2))

	v, err := d.GetIndex("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = d.GetIndex("missing")
	require.Error(t, err)

	require.NoError(t, d.DelIndex("a"))
	_, err = d.GetIndex("a")
	require.Error(t, err)
	require.Error(t, d.DelIndex("a"))

	// Keys must be strings.
	_, err = d.GetIndex(42)
	require.Error(t, err)
}

func TestDictPredicates(t *testing.T) {
	t.Parallel()

	d := ops.Dict{"x": 1, "y": 2}

	// Membership tests keys, mirroring map iteration semantics.
	assert.True(t, d.Contains("x"))
	assert.False(t, d.Contains("z"))

	assert.Equal(t, 2, d.Len())
	assert.True(t, d.Bool())
	assert.False(t, ops.NewDict().Bool())

	assert.True(t, d.Equal(ops.Dict{"y": 2, "x": 1}))
	assert.False(t, d.Equal(ops.Dict{"x": 1}))
	assert.True(t, d.NotEqual(ops.Dict{"x": 1}))
}

func TestDictIterationIsSorted(t *testing.T) {
	t.Parallel()

	d := ops.Dict{"b": 2, "a": 1, "c": 3}

	assert.Equal(t, []string{"a", "b", "c"}, d.Keys())

	var got []any
	for k := range d.Iter() {
		got = append(got, k)
	}
	assert.Equal(t, []any{"a", "b", "c"}, got)
}

func TestDictAsMapRecurses(t *testing.T) {
	t.Parallel()

	inner := ops.Dict{"deep": true}
	d := ops.Dict{"inner": inner, "n": 1}

	m := d.AsMap()
	assert.Equal(t, 1, m["n"])
	assert.Equal(t, map[string]any{"deep": true}, m["inner"])
}

func TestExportValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, ops.ExportValue(5))
	assert.Equal(t, map[string]any{"k": 1}, ops.ExportValue(ops.Dict{"k": 1}))
}
