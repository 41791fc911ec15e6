package gen

import (
	"bytes"
	"text/template"

	"record-composer/internal/errors"
)

// fieldData is one struct field prepared for emission, in authoritative
// field order.
type fieldData struct {
	// Name is the declared field name, used as the map and repr key.
	Name string
	// Ident is the struct field identifier.
	Ident string
	// Type is the Go type, normalized to "any" when undeclared.
	Type string
	// AnyType short-circuits type assertions in the dynamic write paths.
	AnyType bool
	// Getter is the read accessor name, set for frozen records only.
	Getter string
}

// recordData is everything the record template consumes. All resolution
// happens before rendering; the template itself only arranges text.
type recordData struct {
	Package string
	Name    string
	Doc     string
	Frozen  bool
	// EmitString is false when the user already supplies the record's
	// representation; the default String is then withheld.
	EmitString bool
	// GuardedSet routes the dynamic Set through the composed attribute
	// hook instead of writing slots directly.
	GuardedSet bool
	HasGetAttr bool

	Fields  []fieldData
	Plan    *Plan
	Methods []Method

	StdImports   []string
	OtherImports []string

	OrderVar   string
	OptionType string
	Ctor       string
}

const recordTemplate = `// Code generated by record-composer. DO NOT EDIT.

package {{.Package}}

import (
{{- range .StdImports}}
	"{{.}}"
{{- end}}
{{- if .OtherImports}}
{{end}}
{{- range .OtherImports}}
	"{{.}}"
{{- end}}
)

{{if .Doc}}// {{.Name}} {{.Doc}}
{{- else}}// {{.Name}} is a generated record.
{{- end}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Ident}} {{.Type}}
{{- end}}
}
{{if .Plan.Options}}
// {{.OptionType}} configures the optional fields of {{.Ctor}}.
type {{.OptionType}} func(*{{.Name}})
{{range .Plan.Options}}
{{- if and .Capture (not .Keyword) (eq .Type "[]any")}}
// {{.FuncName}} supplies the positional capture {{.Name}}.
func {{.FuncName}}(vs ...any) {{$.OptionType}} {
	return func(r *{{$.Name}}) { r.{{.Ident}} = vs }
}
{{else if .Capture}}
// {{.FuncName}} supplies the {{if .Keyword}}keyword{{else}}positional{{end}} capture {{.Name}}.
func {{.FuncName}}(v {{.Type}}) {{$.OptionType}} {
	return func(r *{{$.Name}}) { r.{{.Ident}} = v }
}
{{else}}
// {{.FuncName}} overrides the default of {{.Name}}.
func {{.FuncName}}(v {{.Type}}) {{$.OptionType}} {
	return func(r *{{$.Name}}) { r.{{.Ident}} = v }
}
{{end}}{{end}}{{end}}
// {{.Ctor}} constructs a {{.Name}}.{{if .Plan.Options}} Required fields are positional;
// defaulted fields and captures are set through options.{{end}}
func {{.Ctor}}({{range $i, $p := .Plan.Required}}{{if $i}}, {{end}}{{$p.Arg}} {{$p.Type}}{{end}}{{if .Plan.Options}}{{if .Plan.Required}}, {{end}}opts ...{{.OptionType}}{{end}}) *{{.Name}} {
	r := &{{.Name}}{
{{- range .Plan.Options}}{{if .Default}}
		{{.Ident}}: {{.Default}},
{{- end}}{{end}}
	}
{{- range .Plan.Required}}
	r.{{.Ident}} = {{.Arg}}
{{- end}}
{{- if .Plan.Options}}
	for _, opt := range opts {
		opt(r)
	}
{{- end}}
{{- if .Plan.HasPostInit}}
	r.init()
{{- end}}
	return r
}

// {{.OrderVar}} is the record's authoritative field order: layout slots
// first, then constructor parameters in parameter order.
var {{.OrderVar}} = []string{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}"{{$f.Name}}"{{end}}}

// Fields returns the field names in their fixed order.
func (r *{{.Name}}) Fields() []string {
	out := make([]string, len({{.OrderVar}}))
	copy(out, {{.OrderVar}})
	return out
}

func (r *{{.Name}}) slot(name string) (any, bool) {
	switch name {
{{- range .Fields}}
	case "{{.Name}}":
		return r.{{.Ident}}, true
{{- end}}
	}
	return nil, false
}
{{if .Frozen}}
func (r *{{.Name}}) setSlot(name string, value any) (bool, error) {
	for _, f := range {{.OrderVar}} {
		if f == name {
			return true, ops.FrozenError("{{.Name}}")
		}
	}
	return false, nil
}
{{- else}}
func (r *{{.Name}}) setSlot(name string, value any) (bool, error) {
	switch name {
{{- range .Fields}}
	case "{{.Name}}":
{{- if .AnyType}}
		r.{{.Ident}} = value
		return true, nil
{{- else}}
		v, ok := value.({{.Type}})
		if !ok {
			return true, ops.FieldTypeError("{{$.Name}}", "{{.Name}}", "{{.Type}}", value)
		}
		r.{{.Ident}} = v
		return true, nil
{{- end}}
{{- end}}
	}
	return false, nil
}
{{- end}}

// Get returns the named field's value.
func (r *{{.Name}}) Get(name string) (any, error) {
	if v, ok := r.slot(name); ok {
		return v, nil
	}
{{- if .HasGetAttr}}
	return r.GetAttr(name)
{{- else}}
	return nil, ops.UnknownFieldError("{{.Name}}", name)
{{- end}}
}

// Set updates the named field's value.{{if .Frozen}} It always fails with
// ops.ErrFrozen for known fields; the record is frozen.{{end}}
func (r *{{.Name}}) Set(name string, value any) error {
{{- if .GuardedSet}}
	return r.SetAttr(name, value)
{{- else}}
	if handled, err := r.setSlot(name, value); handled {
		return err
	}
	return ops.UnknownFieldError("{{.Name}}", name)
{{- end}}
}

{{if .EmitString -}}
// String renders the record in constructor form.
func (r *{{.Name}}) String() string {
	return fmt.Sprintf("{{.Name}}({{range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.Name}}=%v{{end}})"{{range .Fields}}, r.{{.Ident}}{{end}})
}

{{end -}}
// AsMap exports the record as a name-to-value map, recursing into nested
// exportable values.
func (r *{{.Name}}) AsMap() map[string]any {
	return map[string]any{
{{- range .Fields}}
		"{{.Name}}": ops.ExportValue(r.{{.Ident}}),
{{- end}}
	}
}

// ExportState returns the field values in field order.
func (r *{{.Name}}) ExportState() []any {
	return []any{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}r.{{$f.Ident}}{{end}}}
}

// ImportState overwrites the fields from a value sequence in field order.
// It bypasses defaults, options, and the init hook, and works on frozen
// records; it is the rehydration path, not a mutation path.
func (r *{{.Name}}) ImportState(state []any) error {
	if len(state) != len({{.OrderVar}}) {
		return ops.StateSizeError("{{.Name}}", len({{.OrderVar}}), len(state))
	}
{{- range $i, $f := .Fields}}
{{- if $f.AnyType}}
	r.{{$f.Ident}} = state[{{$i}}]
{{- else}}
	if v, ok := state[{{$i}}].({{$f.Type}}); ok {
		r.{{$f.Ident}} = v
	} else {
		return ops.FieldTypeError("{{$.Name}}", "{{$f.Name}}", "{{$f.Type}}", state[{{$i}}])
	}
{{- end}}
{{- end}}
	return nil
}
{{if .Frozen}}
{{- range .Fields}}
// {{.Getter}} returns the {{.Name}} field.
func (r *{{$.Name}}) {{.Getter}}() {{.Type}} {
	return r.{{.Ident}}
}
{{end}}
{{- end}}
{{- range .Methods}}
{{range .Lines}}{{.}}
{{end}}
{{- end}}`

var recordTmpl = template.Must(template.New("record").Parse(recordTemplate))

// renderRecord produces the unformatted source for one record.
func renderRecord(data *recordData) ([]byte, error) {
	var buf bytes.Buffer
	if err := recordTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "rendering record %s", data.Name)
	}

	return buf.Bytes(), nil
}
