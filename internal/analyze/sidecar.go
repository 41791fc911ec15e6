package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"record-composer/internal/errors"
)

// GeneratedSuffix marks files owned by the generator. Everything else in
// the output directory is user-authored and wins over generated methods.
const GeneratedSuffix = "_gen.go"

// UserMethods parses the user-authored Go files in dir and returns, per
// receiver type name, the method names declared there. Generated and test
// files are skipped. A missing directory yields an empty map, since the
// first generation run predates any sidecar code.
func UserMethods(dir string) (map[string][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}

		return nil, errors.Wrapf(err, "read output dir %s", dir)
	}

	fset := token.NewFileSet()
	out := map[string][]string{}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}

		if strings.HasSuffix(name, GeneratedSuffix) || strings.HasSuffix(name, "_test.go") {
			continue
		}

		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", name)
		}

		collectMethods(file, out)
	}

	return out, nil
}

func collectMethods(file *ast.File, out map[string][]string) {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}

		recv := receiverName(fn.Recv.List[0].Type)
		if recv == "" {
			continue
		}

		out[recv] = append(out[recv], fn.Name.Name)
	}
}

// receiverName unwraps pointer and generic receivers down to the type name.
func receiverName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}
