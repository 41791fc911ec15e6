// Package classify partitions a record's declared fields into the
// constructor-relevant buckets: required positional, defaulted keyword,
// variadic captures, computed members, and delegation requests.
package classify

import (
	"record-composer/internal/common"
	"record-composer/internal/errors"
	"record-composer/internal/record"
)

// FieldKind is the classification bucket of a declared field.
type FieldKind int

const (
	KindRequiredPositional FieldKind = iota
	KindDefaultedKeyword
	KindVariadicPositional
	KindVariadicKeyword
	KindComputed
)

// String returns a human-readable kind name.
func (k FieldKind) String() string {
	switch k {
	case KindRequiredPositional:
		return "required"
	case KindDefaultedKeyword:
		return "defaulted"
	case KindVariadicPositional:
		return "variadic-positional"
	case KindVariadicKeyword:
		return "variadic-keyword"
	case KindComputed:
		return "computed"
	default:
		return common.UnknownStr
	}
}

// Field is one classified field.
type Field struct {
	Name      string
	Type      string
	Kind      FieldKind
	Default   *string
	DeclOrder int
	// Annotated marks annotation-style required fields, which precede
	// marker-required fields in the constructor.
	Annotated bool
	// Delegate is non-nil when the field carries a delegation request.
	Delegate *record.DelegateDecl
}

// Delegation is one ordered delegation request.
type Delegation struct {
	// Field is the delegate target: the field whose value handles the
	// requested operations.
	Field string
	// Type is the field's declared Go type; empty means any.
	Type string
	Decl record.DelegateDecl
}

// Classified is the classifier's output.
type Classified struct {
	Required      []Field
	Defaulted     []Field
	VarPositional *Field
	VarKeyword    *Field
	Computed      []Field
	// Delegations preserves declaration order; the composer resolves them
	// first-declared-wins.
	Delegations []Delegation
	// Layout lists slot-only names: part of the attribute set, never
	// constructor parameters.
	Layout []string
}

// Classify partitions the declaration's fields. Rules, in priority order:
// required marker, delegation request, variadic marker, computed member,
// annotation-only, concrete default. Annotation-only fields are required
// and reordered ahead of marker-required fields; names in the layout list
// are never reinterpreted as defaulted.
func Classify(d *record.Decl) (*Classified, error) {
	cls := &Classified{Layout: append([]string{}, d.Layout...)}

	layoutSet := map[string]struct{}{}
	for _, name := range d.Layout {
		layoutSet[name] = struct{}{}
	}

	seen := map[string]struct{}{}

	var annotated, marked []Field

	for i := range d.Fields {
		fd := &d.Fields[i]

		if _, dup := seen[fd.Name]; dup {
			return nil, errors.Wrapf(errors.ErrClassification,
				"record %s: field %q declared twice", d.Name, fd.Name)
		}

		seen[fd.Name] = struct{}{}

		f := Field{
			Name:      fd.Name,
			Type:      fd.Type,
			DeclOrder: i,
			Delegate:  fd.Delegate,
		}

		switch {
		case fd.Computed:
			f.Kind = KindComputed
			cls.Computed = append(cls.Computed, f)

		case fd.Delegate != nil:
			cls.Delegations = append(cls.Delegations, Delegation{
				Field: fd.Name,
				Type:  fd.Type,
				Decl:  *fd.Delegate,
			})

			switch {
			case fd.Delegate.CapturesArgs:
				f.Kind = KindVariadicPositional
				if err := cls.setVarPositional(d.Name, f); err != nil {
					return nil, err
				}
			case fd.Delegate.CapturesKwargs:
				f.Kind = KindVariadicKeyword
				if err := cls.setVarKeyword(d.Name, f); err != nil {
					return nil, err
				}
			case fd.EffectiveDefault() != nil:
				f.Kind = KindDefaultedKeyword
				f.Default = fd.EffectiveDefault()
				cls.Defaulted = append(cls.Defaulted, f)
			default:
				f.Kind = KindRequiredPositional
				marked = append(marked, f)
			}

		case fd.Variadic == record.VariadicPositional:
			f.Kind = KindVariadicPositional
			if err := cls.setVarPositional(d.Name, f); err != nil {
				return nil, err
			}

		case fd.Variadic == record.VariadicKeyword:
			f.Kind = KindVariadicKeyword
			if err := cls.setVarKeyword(d.Name, f); err != nil {
				return nil, err
			}

		case fd.Required:
			f.Kind = KindRequiredPositional
			marked = append(marked, f)

		case fd.IsAnnotation():
			f.Kind = KindRequiredPositional
			f.Annotated = true
			annotated = append(annotated, f)

		case fd.Default != nil:
			if _, layoutOnly := layoutSet[fd.Name]; layoutOnly {
				// Layout-only marker: the slot exists, the value does not
				// become a constructor default.
				continue
			}

			f.Kind = KindDefaultedKeyword
			f.Default = fd.Default
			cls.Defaulted = append(cls.Defaulted, f)

		default:
			// Bare name with no type and no marker: required.
			f.Kind = KindRequiredPositional
			marked = append(marked, f)
		}
	}

	// Annotation order wins: annotated fields precede every other required
	// field, each group keeping declaration order.
	cls.Required = append(annotated, marked...)

	return cls, nil
}

func (c *Classified) setVarPositional(recordName string, f Field) error {
	if c.VarPositional != nil {
		return errors.Wrapf(errors.ErrClassification,
			"record %s: positional variadic captures %q and %q", recordName, c.VarPositional.Name, f.Name)
	}

	c.VarPositional = &f

	return nil
}

func (c *Classified) setVarKeyword(recordName string, f Field) error {
	if c.VarKeyword != nil {
		return errors.Wrapf(errors.ErrClassification,
			"record %s: keyword variadic captures %q and %q", recordName, c.VarKeyword.Name, f.Name)
	}

	c.VarKeyword = &f

	return nil
}

// ParamOrder returns the constructor parameter list in its fixed order:
// required fields (annotated first), then defaulted fields, then the
// variadic captures.
func (c *Classified) ParamOrder() []Field {
	out := make([]Field, 0, len(c.Required)+len(c.Defaulted)+2)
	out = append(out, c.Required...)
	out = append(out, c.Defaulted...)

	if c.VarPositional != nil {
		out = append(out, *c.VarPositional)
	}

	if c.VarKeyword != nil {
		out = append(out, *c.VarKeyword)
	}

	return out
}

// FieldOrder returns the authoritative attribute set: layout slots first,
// then constructor parameters in parameter order.
func (c *Classified) FieldOrder() []string {
	params := c.ParamOrder()
	out := make([]string, 0, len(c.Layout)+len(params))
	out = append(out, c.Layout...)

	for _, f := range params {
		out = append(out, f.Name)
	}

	return out
}

// PostInitHook is the conventional computed-member name called at the end
// of the synthesized constructor.
const PostInitHook = "init"

// HasComputed reports whether a computed member with the given name exists.
func (c *Classified) HasComputed(name string) bool {
	for _, f := range c.Computed {
		if f.Name == name {
			return true
		}
	}

	return false
}

// HasPostInit reports whether the record declares the post-init hook.
func (c *Classified) HasPostInit() bool {
	return c.HasComputed(PostInitHook)
}
