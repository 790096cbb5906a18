// Package noexit запрещает прямой вызов os.Exit в функции main пакета main.
// Завершение процесса должно идти через graceful shutdown сервера.
package noexit

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer сообщает о каждом вызове os.Exit внутри main.main.
var Analyzer = &analysis.Analyzer{
	Name:     "noexit",
	Doc:      "запрещает использовать os.Exit в функции main пакета main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Nodes([]ast.Node{(*ast.FuncDecl)(nil), (*ast.CallExpr)(nil)}, func(n ast.Node, push bool) bool {
		switch node := n.(type) {
		case *ast.FuncDecl:
			// заходим только в main без получателя
			return push && node.Name.Name == "main" && node.Recv == nil
		case *ast.CallExpr:
			if push && isOSExit(pass, node) {
				pass.Reportf(node.Pos(), "вызов os.Exit в функции main запрещён")
			}
		}
		return true
	})
	return nil, nil
}

func isOSExit(pass *analysis.Pass, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	return ok && fn.FullName() == "os.Exit"
}
