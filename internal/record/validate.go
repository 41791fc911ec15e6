package record

import (
	"fmt"
	"go/token"

	"record-composer/internal/common"
	"record-composer/internal/diagnostic"
	"record-composer/protocol"
)

// reservedFieldNames are the members every generated record carries; a
// field whose exported form matches one would collide in the method set.
var reservedFieldNames = map[string]struct{}{
	"String":      {},
	"Fields":      {},
	"Get":         {},
	"Set":         {},
	"AsMap":       {},
	"ExportState": {},
	"ImportState": {},
}

// Validate performs structural validation of a declaration file. This is a
// declaration-shape check only; operation resolution against loaded types
// happens later, during composition.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "declaration file is nil", "", "")
		return res
	}

	if f.Package == "" {
		res.AddError("missing_package", "declaration file has no package name", "", "")
	}

	seenRecords := map[string]struct{}{}

	for i := range f.Records {
		d := &f.Records[i]
		if d.Name == "" {
			res.AddError("missing_record_name", "record declaration has no name", "", "")
			continue
		}

		if _, ok := seenRecords[d.Name]; ok {
			res.AddError("duplicate_record", fmt.Sprintf("duplicate record %q", d.Name), d.Name, "")
			continue
		}

		seenRecords[d.Name] = struct{}{}

		validateDecl(res, d)
	}

	return res
}

func validateDecl(res *diagnostic.Diagnostics, d *Decl) {
	if len(d.Embeds) > 0 {
		res.AddError("inheritance",
			"records are not allowed to embed other types; declare a delegate field for composition instead",
			d.Name, "")
	}

	seenFields := map[string]struct{}{}

	var posVariadics, kwVariadics []string

	for i := range d.Fields {
		fd := &d.Fields[i]
		if fd.Name == "" {
			res.AddError("missing_field_name", "field declaration has no name", d.Name, "")
			continue
		}

		if !token.IsIdentifier(fd.Name) {
			res.AddError("invalid_field_name",
				fmt.Sprintf("field name %q is not a valid identifier", fd.Name), d.Name, fd.Name)
		}

		if _, ok := seenFields[fd.Name]; ok {
			res.AddError("duplicate_field", fmt.Sprintf("duplicate field %q", fd.Name), d.Name, fd.Name)
			continue
		}

		// A computed member may take the String slot; the builder then
		// withholds its default representation in favor of the user's.
		exported := common.Exported(fd.Name)
		if _, reserved := reservedFieldNames[exported]; reserved && !(fd.Computed && exported == "String") {
			res.AddError("reserved_field_name",
				fmt.Sprintf("field %q collides with the record's built-in surface", fd.Name),
				d.Name, fd.Name)
		}

		seenFields[fd.Name] = struct{}{}

		validateField(res, d, fd, &posVariadics, &kwVariadics)
	}

	// At most one variadic capture slot of each flavor per record.
	if common.IsMultiple(posVariadics) {
		res.AddError("classification_ambiguity",
			fmt.Sprintf("multiple positional variadic captures: %v", posVariadics), d.Name, "")
	}

	if common.IsMultiple(kwVariadics) {
		res.AddError("classification_ambiguity",
			fmt.Sprintf("multiple keyword variadic captures: %v", kwVariadics), d.Name, "")
	}
}

func validateField(res *diagnostic.Diagnostics, d *Decl, fd *FieldDecl, posVariadics, kwVariadics *[]string) {
	if !fd.Variadic.IsValid() {
		res.AddError("invalid_variadic",
			fmt.Sprintf("variadic must be %q or %q, got %q", VariadicPositional, VariadicKeyword, fd.Variadic),
			d.Name, fd.Name)
	}

	if fd.Variadic == VariadicPositional {
		*posVariadics = append(*posVariadics, fd.Name)
	}

	if fd.Variadic == VariadicKeyword {
		*kwVariadics = append(*kwVariadics, fd.Name)
	}

	if fd.Computed && (fd.Required || fd.Default != nil || fd.Variadic != VariadicNone) {
		res.AddError("conflicting_declaration",
			"computed fields take no constructor role", d.Name, fd.Name)
	}

	if fd.Required && fd.Default != nil {
		res.AddError("conflicting_declaration",
			"a field cannot be both required and defaulted", d.Name, fd.Name)
	}

	dg := fd.Delegate
	if dg == nil {
		return
	}

	if common.IsEmpty(dg.Ops) {
		res.AddWarning("empty_delegation", "delegation request lists no operations", d.Name, fd.Name)
	}

	// A request with a default is never also a variadic-capture request.
	if dg.Default != nil && (dg.CapturesArgs || dg.CapturesKwargs) {
		res.AddError("conflicting_declaration",
			"a delegation request with a default cannot also capture a variadic slot", d.Name, fd.Name)
	}

	if dg.CapturesArgs {
		*posVariadics = append(*posVariadics, fd.Name)
	}

	if dg.CapturesKwargs {
		*kwVariadics = append(*kwVariadics, fd.Name)
	}

	for _, op := range dg.Ops {
		if op.IsTypeMarker() {
			if op.TypeTarget() == "" {
				res.AddError("invalid_type_marker", "extraction marker names no type", d.Name, fd.Name)
			}

			continue
		}

		// Explicit names and category symbols must resolve now; anything
		// else would surface as a render-time TemplateNotFound.
		if !protocol.IsCategory(op.Raw) && !protocol.Known(op.Raw) {
			res.AddError("unknown_operation",
				fmt.Sprintf("operation %q is neither a category symbol nor a known operation", op.Raw),
				d.Name, fd.Name)
		}
	}
}
