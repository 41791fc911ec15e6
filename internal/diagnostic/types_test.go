package diagnostic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsAccumulate(t *testing.T) {
	d := &Diagnostics{}
	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning("empty_delegation", "delegation request lists no operations", "Stack", "items")
	assert.True(t, d.IsValid())

	d.AddError("duplicate_field", `duplicate field "x"`, "Point", "x")
	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())

	err := d.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate_field")
}

func TestDiagnosticsMerge(t *testing.T) {
	a := &Diagnostics{}
	a.AddError("one", "first", "", "")

	b := Diagnostics{}
	b.AddError("two", "second", "", "")
	b.AddInfo("note", "aside", "", "")

	a.Merge(b)
	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Infos, 1)
}

func TestDiagnosticFormatting(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Code:     "inheritance",
		Message:  "records are not allowed to embed other types",
		Record:   "Child",
	}

	assert.Equal(t, "[Child]: [inheritance] records are not allowed to embed other types", d.String())
}

func TestRenderWritesAllSeverities(t *testing.T) {
	d := &Diagnostics{}
	d.AddInfo("i", "background", "", "")
	d.AddWarning("w", "heads up", "", "")
	d.AddError("e", "broken", "", "")

	var buf bytes.Buffer
	Render(&buf, d)

	out := buf.String()
	assert.Contains(t, out, "background")
	assert.Contains(t, out, "heads up")
	assert.Contains(t, out, "broken")

	assert.Equal(t, "1 errors, 1 warnings", Summary(d))
}
