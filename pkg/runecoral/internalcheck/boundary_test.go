package internalcheck

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const (
	modulePath   = "github.com/hotg-ai/runecoral-go"
	bindingsPath = modulePath + "/internal/bindings"
)

// sourceFile is a parsed file together with the package it belongs to. Files
// excluded by build constraints are included.
type sourceFile struct {
	pkg  string
	path string
	file *ast.File
}

func loadModule(t *testing.T) []sourceFile {
	t.Helper()

	cfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles,
		Dir:   filepath.Join("..", "..", ".."),
		Tests: true,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		t.Fatalf("load module: %v", err)
	}

	seen := make(map[string]bool)
	fset := token.NewFileSet()
	var files []sourceFile
	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.PkgPath, ".test") {
			continue
		}
		for _, path := range append(append([]string{}, pkg.GoFiles...), pkg.IgnoredFiles...) {
			if seen[path] || !strings.HasSuffix(path, ".go") {
				continue
			}
			seen[path] = true

			f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly|parser.ParseComments)
			if err != nil {
				t.Fatalf("parse %s: %v", path, err)
			}
			files = append(files, sourceFile{pkg: pkg.PkgPath, path: path, file: f})
		}
	}
	if len(files) == 0 {
		t.Fatal("no source files found")
	}
	return files
}

func imports(f *ast.File, path string) bool {
	for _, spec := range f.Imports {
		if p, err := strconv.Unquote(spec.Path.Value); err == nil && p == path {
			return true
		}
	}
	return false
}

// basePackage strips the test variant suffix go/packages adds, e.g.
// "pkg [pkg.test]" and "pkg_test".
func basePackage(p string) string {
	p, _, _ = strings.Cut(p, " ")
	return strings.TrimSuffix(p, "_test")
}

func TestNativeImportsConfinedToBindings(t *testing.T) {
	var findings []string
	for _, sf := range loadModule(t) {
		if basePackage(sf.pkg) == bindingsPath {
			continue
		}
		for _, forbidden := range []string{"C", "github.com/ebitengine/purego"} {
			if imports(sf.file, forbidden) {
				findings = append(findings, fmt.Sprintf("%s: imports %q outside internal/bindings", sf.path, forbidden))
			}
		}
	}
	if len(findings) > 0 {
		t.Fatalf("native boundary violation:\n%s", strings.Join(findings, "\n"))
	}
}

func TestUnsafeConfined(t *testing.T) {
	allowedPackages := map[string]bool{
		bindingsPath:                  true,
		bindingsPath + "/bindingstest": true,
	}
	allowedFiles := map[string]bool{
		"element.go": true,
	}

	var findings []string
	for _, sf := range loadModule(t) {
		if !imports(sf.file, "unsafe") {
			continue
		}
		pkg := basePackage(sf.pkg)
		if allowedPackages[pkg] {
			continue
		}
		if pkg == modulePath+"/pkg/runecoral" && allowedFiles[filepath.Base(sf.path)] {
			continue
		}
		findings = append(findings, fmt.Sprintf("%s: imports unsafe", sf.path))
	}
	if len(findings) > 0 {
		t.Fatalf("unsafe policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func TestCgoFilesRequireRuneCoralTag(t *testing.T) {
	var findings []string
	for _, sf := range loadModule(t) {
		if !imports(sf.file, "C") {
			continue
		}
		expr := buildConstraint(sf.file)
		if expr == nil {
			findings = append(findings, fmt.Sprintf("%s: cgo file without a //go:build line", sf.path))
			continue
		}
		// With every other tag satisfied the file must still be excluded.
		if expr.Eval(func(tag string) bool { return tag != "runecoral" }) {
			findings = append(findings, fmt.Sprintf("%s: cgo file builds without the runecoral tag", sf.path))
		}
	}
	if len(findings) > 0 {
		t.Fatalf("cgo build tag policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func buildConstraint(f *ast.File) constraint.Expr {
	for _, group := range f.Comments {
		if group.Pos() > f.Package {
			break
		}
		for _, c := range group.List {
			if constraint.IsGoBuild(c.Text) {
				expr, err := constraint.Parse(c.Text)
				if err == nil {
					return expr
				}
			}
		}
	}
	return nil
}
