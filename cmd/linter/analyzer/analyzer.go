package analyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "forbiddencalls"
	analyzerDoc  = "reports panic and process-terminating calls (os.Exit, log.Fatal*, zerolog Fatal/Panic) outside main"
)

// Analyzer checks for forbidden function calls in the code.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// forbidden lists package-level functions that may only be called from main.
var forbidden = map[string]map[string]bool{
	"os": {"Exit": true},
	"log": {
		"Fatal": true, "Fatalf": true, "Fatalln": true,
		"Panic": true, "Panicf": true, "Panicln": true,
	},
	"github.com/rs/zerolog/log": {"Fatal": true, "Panic": true},
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.CallExpr)(nil),
	}

	insp.WithStack(nodeFilter, func(node ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		callExpr, ok := node.(*ast.CallExpr)
		if !ok {
			return true
		}
		checkCall(pass, callExpr, inMain(stack))
		return true
	})

	return nil, nil
}

// inMain reports whether the innermost enclosing function declaration is
// main. Calls inside closures declared in main count as main.
func inMain(stack []ast.Node) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		if fn, ok := stack[i].(*ast.FuncDecl); ok {
			return fn.Recv == nil && fn.Name.Name == "main"
		}
	}
	return false
}

func checkCall(pass *analysis.Pass, callExpr *ast.CallExpr, allowed bool) {
	switch fn := callExpr.Fun.(type) {
	case *ast.Ident:
		if fn.Name == "panic" && isBuiltin(pass, fn) {
			pass.Reportf(callExpr.Pos(), "panic is forbidden")
		}
	case *ast.SelectorExpr:
		if allowed {
			return
		}
		if pkgPath, ok := importedPackage(pass, fn); ok && forbidden[pkgPath][fn.Sel.Name] {
			pass.Reportf(callExpr.Pos(), "%s.%s is forbidden outside main function", packageName(fn), fn.Sel.Name)
		}
	}
}

func isBuiltin(pass *analysis.Pass, ident *ast.Ident) bool {
	if pass.TypesInfo == nil {
		return true
	}
	_, ok := pass.TypesInfo.Uses[ident].(*types.Builtin)
	return ok
}

func importedPackage(pass *analysis.Pass, sel *ast.SelectorExpr) (string, bool) {
	ident, ok := sel.X.(*ast.Ident)
	if !ok || pass.TypesInfo == nil {
		return "", false
	}

	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return "", false
	}

	return pkgName.Imported().Path(), true
}

func packageName(sel *ast.SelectorExpr) string {
	return sel.X.(*ast.Ident).Name
}
