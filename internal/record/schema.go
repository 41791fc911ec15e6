package record

import (
	"strings"

	"record-composer/internal/common"
	"record-composer/internal/errors"
)

// File represents the root of a YAML record declaration file.
// This is the authoritative, human-authored declaration surface.
type File struct {
	// Version of the declaration schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Package is the name of the Go package generated code belongs to.
	Package string `yaml:"package"`

	// Output is the directory generated files are written to.
	Output string `yaml:"output,omitempty"`

	// Analyze lists Go package patterns to load for type-extraction
	// markers (e.g. "sort", "./mypkg").
	Analyze StringArray `yaml:"analyze,omitempty"`

	// Imports lists extra import paths for packages referenced by field
	// types and default expressions, e.g. "time". A path is copied into a
	// generated file only when the file uses its package.
	Imports StringArray `yaml:"imports,omitempty"`

	// Records is the ordered list of record declarations.
	Records []Decl `yaml:"records"`
}

// Decl declares one record type.
type Decl struct {
	// Name is the generated type name.
	Name string `yaml:"name"`

	// Doc is an optional doc comment for the generated type.
	Doc string `yaml:"doc,omitempty"`

	// Frozen makes instances immutable after construction: fields render
	// unexported with getters, and the dynamic write path always fails.
	// Frozen implies EscapeSetattr.
	Frozen bool `yaml:"frozen,omitempty"`

	// EscapeSetattr makes constructor assignments bypass a composed or
	// user-defined SetAttr hook and write slots directly.
	EscapeSetattr bool `yaml:"escape_setattr,omitempty"`

	// Embeds is rejected: records do not inherit. Present in the schema so
	// the builder can fail with a pointed message instead of a YAML error.
	Embeds StringArray `yaml:"embeds,omitempty"`

	// Layout lists extra slot names that are part of the attribute set but
	// not constructor parameters. A field name listed here keeps its
	// layout-only role even if it also carries a value.
	Layout StringArray `yaml:"layout,omitempty"`

	// Fields is the ordered field declaration list.
	Fields []FieldDecl `yaml:"fields"`
}

// VariadicKind marks a field as a variadic capture slot.
type VariadicKind string

const (
	VariadicNone       VariadicKind = ""
	VariadicPositional VariadicKind = "positional"
	VariadicKeyword    VariadicKind = "keyword"
)

// IsValid returns true if the kind is a recognized value.
func (v VariadicKind) IsValid() bool {
	return v == VariadicNone || v == VariadicPositional || v == VariadicKeyword
}

// FieldDecl declares one field of a record.
//
// Exactly one declaration style applies per field:
//   - required: true                  -> required positional (the marker)
//   - default: <Go literal expr>     -> defaulted keyword
//   - variadic: positional|keyword   -> variadic capture slot
//   - computed: true                 -> user-authored member, not a parameter
//   - delegate: {...}                -> delegation request
//   - type only, nothing else        -> annotation-style required positional
type FieldDecl struct {
	// Name is the field name, unique within the record.
	Name string `yaml:"name"`

	// Type is the Go type expression for the field. Empty means any.
	Type string `yaml:"type,omitempty"`

	// Required is the required-field marker.
	Required bool `yaml:"required,omitempty"`

	// Default is a literal Go expression used when the field is not
	// supplied at construction.
	Default *string `yaml:"default,omitempty"`

	// Variadic marks the field as a variadic capture slot.
	Variadic VariadicKind `yaml:"variadic,omitempty"`

	// Computed marks a member the user authors in a sidecar file. Computed
	// fields are excluded from the constructor entirely.
	Computed bool `yaml:"computed,omitempty"`

	// Delegate requests operator-protocol forwarding to this field.
	Delegate *DelegateDecl `yaml:"delegate,omitempty"`
}

// IsAnnotation reports whether the field is declared by type annotation
// alone. Annotation-only fields are required positional and are ordered
// ahead of marker-required fields.
func (f *FieldDecl) IsAnnotation() bool {
	return f.Type != "" &&
		!f.Required &&
		f.Default == nil &&
		f.Variadic == VariadicNone &&
		!f.Computed &&
		f.Delegate == nil
}

// EffectiveDefault returns the field's default expression, looking through
// a delegation request's own default.
func (f *FieldDecl) EffectiveDefault() *string {
	if f.Default != nil {
		return f.Default
	}

	if f.Delegate != nil {
		return f.Delegate.Default
	}

	return nil
}

// DelegateDecl is a delegation request: the declaring field's value handles
// the requested operations on the record's behalf.
type DelegateDecl struct {
	// Ops is the ordered set of requested operations: category symbols,
	// explicit operation names, or "type:pkg.Type" extraction markers.
	Ops OpRefArray `yaml:"ops"`

	// Default is a literal expression used when the delegate is not
	// supplied at construction.
	Default *string `yaml:"default,omitempty"`

	// CapturesArgs makes the delegate field the positional variadic
	// capture slot.
	CapturesArgs bool `yaml:"captures_args,omitempty"`

	// CapturesKwargs makes the delegate field the keyword variadic
	// capture slot.
	CapturesKwargs bool `yaml:"captures_kwargs,omitempty"`
}

// typeMarkerPrefix introduces an extraction marker naming an existing type.
const typeMarkerPrefix = "type:"

// OpRef is one requested operation: a category symbol, an explicit
// operation name, or an extraction marker.
type OpRef struct {
	Raw string
}

// IsTypeMarker reports whether the reference is a "type:pkg.Type" marker.
func (o OpRef) IsTypeMarker() bool {
	return strings.HasPrefix(o.Raw, typeMarkerPrefix)
}

// TypeTarget returns the type named by an extraction marker.
func (o OpRef) TypeTarget() string {
	return strings.TrimPrefix(o.Raw, typeMarkerPrefix)
}

// String returns the raw reference.
func (o OpRef) String() string {
	return o.Raw
}

// MarshalYAML implements yaml.Marshaler so declarations round-trip.
func (o OpRef) MarshalYAML() (any, error) {
	return o.Raw, nil
}

// OpRefArray is a collection of OpRef that can be unmarshaled from either a
// single string or a list of strings.
type OpRefArray []OpRef

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *OpRefArray) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*a = OpRefArray{{Raw: single}}
		return nil
	}

	var multi []string
	if err := unmarshal(&multi); err == nil {
		out := make(OpRefArray, len(multi))
		for i, s := range multi {
			out[i] = OpRef{Raw: s}
		}

		*a = out

		return nil
	}

	return errors.New("expected string or list of strings for ops")
}

// StringArray is a string slice that can be unmarshaled from a single
// string or a list.
type StringArray []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringArray) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*s = []string{single}
		return nil
	}

	var multi []string
	if err := unmarshal(&multi); err == nil {
		*s = multi
		return nil
	}

	return errors.New("expected string or list of strings")
}

// MutabilityMode is the write-path mode of a generated record.
type MutabilityMode int

const (
	// Mutable records assign fields normally; a composed SetAttr hook, if
	// any, participates in constructor assignment.
	Mutable MutabilityMode = iota
	// GuardedMutable records bypass any SetAttr hook in the constructor.
	GuardedMutable
	// Frozen records reject every write after construction.
	Frozen
)

// String returns a human-readable mode name.
func (m MutabilityMode) String() string {
	switch m {
	case Mutable:
		return "mutable"
	case GuardedMutable:
		return "guarded"
	case Frozen:
		return "frozen"
	default:
		return common.UnknownStr
	}
}

// Mutability returns the record's write-path mode. Frozen implies the
// guarded constructor path.
func (d *Decl) Mutability() MutabilityMode {
	switch {
	case d.Frozen:
		return Frozen
	case d.EscapeSetattr:
		return GuardedMutable
	default:
		return Mutable
	}
}
