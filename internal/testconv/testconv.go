// Package testconv checks activity packages against the repository's test
// conventions: every exported function has a test, and every assertion
// carries a message that identifies the failing case.
package testconv

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Finding is a single convention violation.
type Finding struct {
	Pos  token.Position
	Name string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Pos, f.Name)
}

// Report collects the violations found in a set of files.
type Report struct {
	// Untested lists exported top-level functions with no matching Test
	// function in the same directory.
	Untested []Finding
	// Unlabelled lists testify assertions called without a message.
	Unlabelled []Finding
	// Duplicated lists literal assertion messages already used earlier in
	// the same file.
	Duplicated []Finding
}

// Clean reports whether no violation was found.
func (r *Report) Clean() bool {
	return len(r.Untested) == 0 && len(r.Unlabelled) == 0 && len(r.Duplicated) == 0
}

func (r *Report) String() string {
	if r.Clean() {
		return "no violations"
	}
	var b strings.Builder
	if len(r.Untested) > 0 {
		b.WriteString("untested functions:\n")
		for _, f := range r.Untested {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	if len(r.Unlabelled) > 0 {
		b.WriteString("assertions without message:\n")
		for _, f := range r.Unlabelled {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	if len(r.Duplicated) > 0 {
		b.WriteString("duplicated assertion messages:\n")
		for _, f := range r.Duplicated {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	return b.String()
}

// arity is the number of fixed arguments of each testify v1.8 assertion,
// counting the leading TestingT. A call with more arguments carries a
// message. Fail, FailNow and the f-suffixed variants take a mandatory
// message and are not listed.
var arity = map[string]int{
	"Condition":           2,
	"Contains":            3,
	"DirExists":           2,
	"ElementsMatch":       3,
	"Empty":               2,
	"Equal":               3,
	"EqualError":          3,
	"EqualValues":         3,
	"Error":               2,
	"ErrorAs":             3,
	"ErrorContains":       3,
	"ErrorIs":             3,
	"Eventually":          4,
	"Exactly":             3,
	"False":               2,
	"FileExists":          2,
	"Greater":             3,
	"GreaterOrEqual":      3,
	"HTTPBodyContains":    6,
	"HTTPBodyNotContains": 6,
	"HTTPError":           5,
	"HTTPRedirect":        5,
	"HTTPStatusCode":      6,
	"HTTPSuccess":         5,
	"Implements":          3,
	"InDelta":             4,
	"InDeltaMapValues":    4,
	"InDeltaSlice":        4,
	"InEpsilon":           4,
	"InEpsilonSlice":      4,
	"IsDecreasing":        2,
	"IsIncreasing":        2,
	"IsNonDecreasing":     2,
	"IsNonIncreasing":     2,
	"IsType":              3,
	"JSONEq":              3,
	"Len":                 3,
	"Less":                3,
	"LessOrEqual":         3,
	"Negative":            2,
	"Never":               4,
	"Nil":                 2,
	"NoDirExists":         2,
	"NoError":             2,
	"NoFileExists":        2,
	"NotContains":         3,
	"NotEmpty":            2,
	"NotEqual":            3,
	"NotEqualValues":      3,
	"NotErrorIs":          3,
	"NotNil":              2,
	"NotPanics":           2,
	"NotRegexp":           3,
	"NotSame":             3,
	"NotSubset":           3,
	"NotZero":             2,
	"Panics":              2,
	"PanicsWithError":     3,
	"PanicsWithValue":     3,
	"Positive":            2,
	"Regexp":              3,
	"Same":                3,
	"Subset":              3,
	"True":                2,
	"WithinDuration":      4,
	"WithinRange":         4,
	"YAMLEq":              3,
	"Zero":                2,
}

const (
	assertPath  = "github.com/stretchr/testify/assert"
	requirePath = "github.com/stretchr/testify/require"
)

type funcDecl struct {
	name string
	pos  token.Position
}

// assertion is a testify assertion call. msg is nil when the call carries
// no message.
type assertion struct {
	call *ast.CallExpr
	msg  ast.Expr
}

// Inspect checks the given files. Files are grouped by directory, so test
// files only count for the functions declared next to them.
func Inspect(fset *token.FileSet, files []*ast.File) *Report {
	funcs := map[string][]funcDecl{}
	tests := map[string][]string{}
	report := &Report{}

	for _, file := range files {
		filename := fset.Position(file.Package).Filename
		dir := filepath.Dir(filename)
		isTest := strings.HasSuffix(filename, "_test.go")
		pkgs := testifyNames(file)
		messages := map[string]bool{}

		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			if !isTest {
				if fn.Recv == nil && fn.Name.IsExported() {
					funcs[dir] = append(funcs[dir], funcDecl{name: fn.Name.Name, pos: fset.Position(fn.Name.Pos())})
				}
				continue
			}
			if strings.HasPrefix(fn.Name.Name, "Test") {
				tests[dir] = append(tests[dir], strings.TrimPrefix(fn.Name.Name, "Test"))
			}
			for _, a := range assertions(fn, pkgs) {
				if a.msg == nil {
					report.Unlabelled = append(report.Unlabelled, Finding{
						Pos:  fset.Position(a.call.Pos()),
						Name: types.ExprString(a.call.Fun),
					})
					continue
				}
				lit, ok := a.msg.(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					continue
				}
				if messages[lit.Value] {
					report.Duplicated = append(report.Duplicated, Finding{
						Pos:  fset.Position(lit.Pos()),
						Name: lit.Value,
					})
				}
				messages[lit.Value] = true
			}
		}
	}

	for dir, decls := range funcs {
		for _, d := range decls {
			if !hasTest(tests[dir], d.name) {
				report.Untested = append(report.Untested, Finding{Pos: d.pos, Name: d.name})
			}
		}
	}

	sortFindings(report.Untested)
	sortFindings(report.Unlabelled)
	sortFindings(report.Duplicated)
	return report
}

// hasTest reports whether one of tests, with the Test prefix removed,
// names the function: a case-insensitive match followed by the end of the
// name, an underscore or an upper-case letter. TestSumaDeCeros covers
// Suma but not Sum.
func hasTest(tests []string, name string) bool {
	for _, t := range tests {
		if len(t) < len(name) || !strings.EqualFold(t[:len(name)], name) {
			continue
		}
		if len(t) == len(name) {
			return true
		}
		if c := t[len(name)]; c == '_' || ('A' <= c && c <= 'Z') {
			return true
		}
	}
	return false
}

// testifyNames returns the names under which file imports testify's
// assert and require packages. Blank and dot imports are ignored.
func testifyNames(file *ast.File) map[string]bool {
	names := map[string]bool{}
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || (p != assertPath && p != requirePath) {
			continue
		}
		name := path.Base(p)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		names[name] = true
	}
	return names
}

// assertions returns the testify assertions in fn. Besides package-level
// calls it understands assertion objects: values bound to assert.New or
// require.New, and the receiver of a suite method (or its Require() and
// Assert()).
func assertions(fn *ast.FuncDecl, pkgs map[string]bool) []assertion {
	if fn.Body == nil || (len(pkgs) == 0 && fn.Recv == nil) {
		return nil
	}

	objects := map[string]bool{}
	recv := ""
	if fn.Recv != nil && len(fn.Recv.List) > 0 && len(fn.Recv.List[0].Names) > 0 {
		recv = fn.Recv.List[0].Names[0].Name
		if recv != "_" {
			objects[recv] = true
		}
	}
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.AssignStmt:
			if len(n.Lhs) != len(n.Rhs) {
				return true
			}
			for i, rhs := range n.Rhs {
				if id, ok := n.Lhs[i].(*ast.Ident); ok && isNewCall(rhs, pkgs) {
					objects[id.Name] = true
				}
			}
		case *ast.ValueSpec:
			if len(n.Names) != len(n.Values) {
				return true
			}
			for i, v := range n.Values {
				if isNewCall(v, pkgs) {
					objects[n.Names[i].Name] = true
				}
			}
		}
		return true
	})

	var found []assertion
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		want, ok := arity[sel.Sel.Name]
		if !ok {
			return true
		}
		switch {
		case isPackage(sel.X, pkgs):
		case isObject(sel.X, objects, recv):
			// Assertion objects carry their own TestingT.
			want--
		default:
			return true
		}
		a := assertion{call: call}
		if call.Ellipsis.IsValid() {
			a.msg = call.Args[len(call.Args)-1]
		} else if len(call.Args) > want {
			a.msg = call.Args[want]
		}
		found = append(found, a)
		return true
	})
	return found
}

// isPackage reports whether x refers to an imported testify package. A
// local declaration shadowing the import name resolves to an object and
// does not count.
func isPackage(x ast.Expr, pkgs map[string]bool) bool {
	id, ok := x.(*ast.Ident)
	return ok && id.Obj == nil && pkgs[id.Name]
}

func isNewCall(x ast.Expr, pkgs map[string]bool) bool {
	call, ok := x.(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	return ok && sel.Sel.Name == "New" && isPackage(sel.X, pkgs)
}

func isObject(x ast.Expr, objects map[string]bool, recv string) bool {
	switch x := x.(type) {
	case *ast.Ident:
		return objects[x.Name]
	case *ast.CallExpr:
		sel, ok := x.Fun.(*ast.SelectorExpr)
		if !ok || len(x.Args) != 0 || recv == "" {
			return false
		}
		id, ok := sel.X.(*ast.Ident)
		return ok && id.Name == recv && (sel.Sel.Name == "Require" || sel.Sel.Name == "Assert")
	}
	return false
}

func sortFindings(fs []Finding) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].Pos.Filename != fs[j].Pos.Filename {
			return fs[i].Pos.Filename < fs[j].Pos.Filename
		}
		if fs[i].Pos.Line != fs[j].Pos.Line {
			return fs[i].Pos.Line < fs[j].Pos.Line
		}
		return fs[i].Pos.Column < fs[j].Pos.Column
	})
}
