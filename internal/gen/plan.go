package gen

import (
	"record-composer/internal/classify"
	"record-composer/internal/common"
	"record-composer/internal/errors"
	"record-composer/internal/record"
)

// Param is one synthesized constructor parameter.
type Param struct {
	// Name is the declared field name, e.g. "head".
	Name string
	// Arg is the parameter identifier in the constructor signature.
	Arg string
	// Ident is the struct field identifier the value lands in.
	Ident string
	// Type is the Go type, "any" when the declaration gave none.
	Type string
}

// Option is a defaulted or capturing parameter, rendered as a functional
// option rather than a positional argument.
type Option struct {
	Param
	// FuncName is the With-prefixed option constructor name.
	FuncName string
	// Default is the Go expression assigned when the option is absent.
	// Empty for capture options, whose absence leaves the zero value.
	Default string
	// Capture marks variadic captures: positional options collect ...any,
	// keyword options take a map.
	Capture bool
	// Keyword distinguishes the keyword capture from the positional one.
	Keyword bool
}

// Plan is the constructor plan for one record. The plan, not the rendered
// signature, is the authority on parameter order: required fields first
// with annotated ones ahead of marker-required ones, then defaulted
// fields, then the positional capture, then the keyword capture.
type Plan struct {
	Record   string
	Required []Param
	Options  []Option
	// HasPostInit ends the constructor with a call to the init hook.
	HasPostInit bool
}

// BuildPlan turns a classified declaration into a constructor plan.
func BuildPlan(d *record.Decl, cls *classify.Classified) (*Plan, error) {
	frozen := d.Mutability() == record.Frozen

	ident := func(name string) string {
		if frozen {
			return common.Unexported(name)
		}

		return common.Exported(name)
	}

	param := func(f classify.Field, typ string) Param {
		if typ == "" {
			typ = "any"
		}

		return Param{
			Name:  f.Name,
			Arg:   common.Unexported(f.Name),
			Ident: ident(f.Name),
			Type:  typ,
		}
	}

	p := &Plan{Record: d.Name, HasPostInit: cls.HasPostInit()}

	for _, f := range cls.Required {
		p.Required = append(p.Required, param(f, f.Type))
	}

	for _, f := range cls.Defaulted {
		if f.Default == nil {
			return nil, errors.AssertionFailedf(
				"record %s: defaulted field %q has no default expression", d.Name, f.Name)
		}

		p.Options = append(p.Options, Option{
			Param:    param(f, f.Type),
			FuncName: "With" + common.Exported(f.Name),
			Default:  *f.Default,
		})
	}

	if f := cls.VarPositional; f != nil {
		typ := f.Type
		if typ == "" {
			typ = "[]any"
		}

		p.Options = append(p.Options, Option{
			Param:    param(*f, typ),
			FuncName: "With" + common.Exported(f.Name),
			Capture:  true,
		})
	}

	if f := cls.VarKeyword; f != nil {
		typ := f.Type
		if typ == "" {
			typ = "map[string]any"
		}

		p.Options = append(p.Options, Option{
			Param:    param(*f, typ),
			FuncName: "With" + common.Exported(f.Name),
			Capture:  true,
			Keyword:  true,
		})
	}

	// Every constructor parameter must land in exactly one bucket.
	if got := len(p.Required) + len(p.Options); got != len(cls.ParamOrder()) {
		return nil, errors.AssertionFailedf(
			"record %s: plan covers %d parameters, classifier produced %d",
			d.Name, got, len(cls.ParamOrder()))
	}

	return p, nil
}
