// Package analyze resolves Go types behind delegation markers. A marker
// names a type such as "ops.List"; the loader finds the type in the
// configured packages and reports which operation methods it carries.
package analyze

import (
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"record-composer/internal/common"
	"record-composer/internal/errors"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and answers type lookups against them.
type Analyzer struct {
	pkgs []*packages.Package
}

// NewAnalyzer creates an empty Analyzer. Call Load before Lookup.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Load loads the given package patterns (e.g. "./...", "record-composer/ops")
// into the analyzer. It may be called more than once; later loads extend the
// searchable set.
func (a *Analyzer) Load(patterns ...string) error {
	if common.IsEmpty(patterns) {
		return nil
	}

	cfg := &packages.Config{Mode: LoadMode}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return errors.Wrap(err, "load packages")
	}

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return errors.Wrapf(errors.New(e.Msg), "package %s", pkg.PkgPath)
		}
	}

	a.pkgs = append(a.pkgs, pkgs...)

	return nil
}

// Lookup resolves a qualified type name of the form "pkg.Name". The package
// part matches either the package name or a suffix of its import path.
func (a *Analyzer) Lookup(qualified string) (*types.TypeName, error) {
	dot := strings.LastIndex(qualified, ".")
	if dot <= 0 || dot == len(qualified)-1 {
		return nil, errors.Wrapf(errors.ErrUnknownType,
			"%q is not of the form pkg.Name", qualified)
	}

	pkgPart, name := qualified[:dot], qualified[dot+1:]

	for _, pkg := range a.pkgs {
		if pkg.Name != pkgPart && !hasPathSuffix(pkg.PkgPath, pkgPart) {
			continue
		}

		obj := pkg.Types.Scope().Lookup(name)
		if obj == nil {
			continue
		}

		tn, ok := obj.(*types.TypeName)
		if !ok {
			return nil, errors.Wrapf(errors.ErrUnknownType,
				"%s is not a type", qualified)
		}

		return tn, nil
	}

	return nil, errors.Wrapf(errors.ErrUnknownType,
		"type %s not found in loaded packages", qualified)
}

func hasPathSuffix(path, suffix string) bool {
	return path == suffix || strings.HasSuffix(path, "/"+suffix)
}
