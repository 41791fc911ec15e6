// Package gen turns validated record declarations into Go source files.
// Each record becomes one generated file holding the struct definition,
// the synthesized constructor, the fixed attribute surface, and the
// delegated operation methods.
package gen

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"record-composer/internal/analyze"
	"record-composer/internal/classify"
	"record-composer/internal/common"
	"record-composer/internal/errors"
	"record-composer/internal/logging"
	"record-composer/internal/record"
)

// Config tunes a generation run.
type Config struct {
	// OutputDir is where generated files land; sidecar files there are
	// scanned for user-authored methods. Overrides the file's own output
	// setting when non-empty.
	OutputDir string
	// Analyze lists extra package patterns loaded for type markers, on top
	// of the declaration file's own analyze list.
	Analyze []string
}

// Generator runs the declaration-to-source pipeline.
type Generator struct {
	cfg      Config
	log      *zap.SugaredLogger
	analyzer *analyze.Analyzer
}

// New creates a Generator.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg, log: logging.Logger}
}

// GeneratedFile is one rendered output file.
type GeneratedFile struct {
	// Name is the file name within the output directory, e.g.
	// "linked_stack_gen.go".
	Name string
	// Source is the gofmt-formatted file content. Nil when formatting
	// failed; Unformatted then holds the raw render for debugging.
	Source      []byte
	Unformatted []byte
}

// OutputDir resolves the effective output directory for a file.
func (g *Generator) OutputDir(f *record.File) string {
	if g.cfg.OutputDir != "" {
		return g.cfg.OutputDir
	}

	return f.Output
}

// Generate renders every record in the declaration file. The file must
// already be structurally valid; run record.Validate first.
func (g *Generator) Generate(f *record.File) ([]GeneratedFile, error) {
	if err := g.loadAnalyzer(f); err != nil {
		return nil, err
	}

	userMethods, err := analyze.UserMethods(g.OutputDir(f))
	if err != nil {
		return nil, err
	}

	composer := NewComposer(g.analyzer)

	out := make([]GeneratedFile, 0, len(f.Records))

	for i := range f.Records {
		d := &f.Records[i]

		file, err := g.generateRecord(f, d, composer, userMethods[d.Name])
		if err != nil {
			return out, errors.Wrapf(err, "record %s", d.Name)
		}

		out = append(out, *file)

		if file.Source == nil {
			return out, errors.Newf("record %s: generated source does not format", d.Name)
		}

		g.log.Debugw("record generated", "record", d.Name, "file", file.Name)
	}

	return out, nil
}

func (g *Generator) generateRecord(f *record.File, d *record.Decl, composer *Composer, userMethods []string) (*GeneratedFile, error) {
	if len(d.Embeds) > 0 {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInheritance, "record %s embeds %s", d.Name, strings.Join(d.Embeds, ", ")),
			"records do not inherit; delegate the needed operations to a field instead")
	}

	cls, err := classify.Classify(d)
	if err != nil {
		return nil, err
	}

	plan, err := BuildPlan(d, cls)
	if err != nil {
		return nil, err
	}

	methods, err := composer.Compose(d, cls, userMethods)
	if err != nil {
		return nil, err
	}

	data := g.buildRecordData(f, d, cls, plan, methods, userMethods)

	raw, err := renderRecord(data)
	if err != nil {
		return nil, err
	}

	file := &GeneratedFile{Name: common.SnakeCase(d.Name) + analyze.GeneratedSuffix}

	formatted, err := formatSource(raw)
	if err != nil {
		g.log.Errorw("generated source does not format",
			"record", d.Name, "error", err)

		file.Unformatted = raw

		return file, nil
	}

	file.Source = formatted

	return file, nil
}

func (g *Generator) loadAnalyzer(f *record.File) error {
	patterns := append([]string{}, g.cfg.Analyze...)
	patterns = append(patterns, f.Analyze...)

	if common.IsEmpty(patterns) {
		return nil
	}

	if g.analyzer == nil {
		g.analyzer = analyze.NewAnalyzer()
	}

	return g.analyzer.Load(patterns...)
}

func (g *Generator) buildRecordData(f *record.File, d *record.Decl, cls *classify.Classified, plan *Plan, methods []Method, userMethods []string) *recordData {
	frozen := d.Mutability() == record.Frozen

	declared := map[string]*record.FieldDecl{}
	for i := range d.Fields {
		declared[d.Fields[i].Name] = &d.Fields[i]
	}

	var fields []fieldData

	for _, name := range cls.FieldOrder() {
		typ := "any"
		if fd, ok := declared[name]; ok && fd.Type != "" {
			typ = fd.Type
		}

		// Capture slots default their types like the plan does.
		if cls.VarPositional != nil && cls.VarPositional.Name == name && typ == "any" {
			typ = "[]any"
		}

		if cls.VarKeyword != nil && cls.VarKeyword.Name == name && typ == "any" {
			typ = "map[string]any"
		}

		fld := fieldData{
			Name:    name,
			Ident:   common.Exported(name),
			Type:    typ,
			AnyType: typ == "any",
		}

		if frozen {
			fld.Ident = common.Unexported(name)
			fld.Getter = common.Exported(name)
		}

		fields = append(fields, fld)
	}

	hasOp := func(op string) bool {
		for _, m := range methods {
			if m.Op == op {
				return true
			}
		}

		return false
	}

	// The default representation is attached only when the user has not
	// supplied one, either as a sidecar method or as a computed member.
	userString := common.Contains(userMethods, "String")
	for _, cf := range cls.Computed {
		if common.Exported(cf.Name) == "String" {
			userString = true
		}
	}

	data := &recordData{
		Package:    f.Package,
		Name:       d.Name,
		Doc:        d.Doc,
		Frozen:     frozen,
		EmitString: !userString,
		GuardedSet: d.Mutability() == record.Mutable && hasOp("SetAttr"),
		HasGetAttr: hasOp("GetAttr"),
		Fields:     fields,
		Plan:       plan,
		Methods:    methods,
		OrderVar:   common.Unexported(d.Name) + "FieldOrder",
		OptionType: d.Name + "Option",
		Ctor:       "New" + d.Name,
	}

	data.StdImports, data.OtherImports = collectImports(f, data)

	return data
}

// collectImports gathers the imports a generated file needs: the ops
// runtime, operation extras, "fmt" when the representation is generated,
// and any declared file import whose package qualifier appears in a field
// type or default expression.
func collectImports(f *record.File, data *recordData) (std, other []string) {
	stdSet := map[string]struct{}{}
	otherSet := map[string]struct{}{"record-composer/ops": {}}

	// Only the generated String uses fmt.
	if data.EmitString {
		stdSet["fmt"] = struct{}{}
	}

	for _, m := range data.Methods {
		for _, imp := range m.Imports {
			if strings.Contains(imp, "/") {
				otherSet[imp] = struct{}{}
			} else {
				stdSet[imp] = struct{}{}
			}
		}
	}

	var exprs []string
	for _, fld := range data.Fields {
		exprs = append(exprs, fld.Type)
	}

	for _, opt := range data.Plan.Options {
		if opt.Default != "" {
			exprs = append(exprs, opt.Default)
		}
	}

	for _, imp := range f.Imports {
		base := imp
		if i := strings.LastIndex(imp, "/"); i >= 0 {
			base = imp[i+1:]
		}

		if !qualifierUsed(exprs, base) {
			continue
		}

		if strings.Contains(imp, "/") || !isStdlibish(imp) {
			otherSet[imp] = struct{}{}
		} else {
			stdSet[imp] = struct{}{}
		}
	}

	return sortedKeys(stdSet), sortedKeys(otherSet)
}

// isStdlibish guesses whether a slash-free import path is standard library.
// Module paths without dots or slashes are rare enough that the guess only
// affects import grouping, never correctness.
func isStdlibish(path string) bool {
	return !strings.Contains(path, ".")
}

// qualifierUsed reports whether pkg appears as a "pkg." qualifier in any of
// the expressions.
func qualifierUsed(exprs []string, pkg string) bool {
	needle := pkg + "."

	for _, expr := range exprs {
		idx := strings.Index(expr, needle)
		for idx >= 0 {
			if idx == 0 || !isIdentByte(expr[idx-1]) {
				return true
			}

			next := strings.Index(expr[idx+1:], needle)
			if next < 0 {
				break
			}

			idx += 1 + next
		}
	}

	return false
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}
