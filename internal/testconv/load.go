package testconv

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"
)

// ErrNoPackages is returned by Load when the patterns match no package.
var ErrNoPackages = errors.New("testconv: no packages matched")

// Load loads the packages matching patterns, relative to dir, together with
// their test files and inspects them.
func Load(ctx context.Context, dir string, patterns ...string) (*Report, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Fset:    fset,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
		Tests:   true,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, ErrNoPackages
	}

	// With Tests set, a package shows up once per test variant, each
	// carrying the same files again.
	seen := map[string]bool{}
	var files []*ast.File
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s: %w", pkg.PkgPath, pkg.Errors[0])
		}
		if strings.HasSuffix(pkg.ID, ".test") {
			continue
		}
		for _, f := range pkg.Syntax {
			name := fset.Position(f.Package).Filename
			if seen[name] {
				continue
			}
			seen[name] = true
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, ErrNoPackages
	}
	return Inspect(fset, files), nil
}
