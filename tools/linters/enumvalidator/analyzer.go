// Package enumvalidator reports string literals stored into enum-typed
// struct fields. An enum is a named string type with at least one constant
// declared in its own package, such as model.Priority or operation.Name.
// Use the constants so a typo cannot produce a value no switch handles.
package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "enumvalidator",
	Doc:      "reports string literals assigned to enum-typed struct fields",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	enums := map[*types.TypeName]bool{}

	nodeFilter := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.CompositeLit)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.AssignStmt:
			if len(n.Lhs) != len(n.Rhs) {
				return
			}
			for i, lhs := range n.Lhs {
				sel, ok := lhs.(*ast.SelectorExpr)
				if !ok || !isStringLiteral(n.Rhs[i]) {
					continue
				}
				if _, isField := pass.TypesInfo.ObjectOf(sel.Sel).(*types.Var); !isField {
					continue
				}
				if isEnum(enums, pass.TypesInfo.TypeOf(sel)) {
					pass.Reportf(n.Rhs[i].Pos(), "enum field %s assigned string literal", sel.Sel.Name)
				}
			}

		case *ast.CompositeLit:
			for _, elt := range n.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok || !isStringLiteral(kv.Value) {
					continue
				}
				key, ok := kv.Key.(*ast.Ident)
				if !ok {
					continue
				}
				field, ok := pass.TypesInfo.ObjectOf(key).(*types.Var)
				if !ok || !field.IsField() {
					continue
				}
				if isEnum(enums, field.Type()) {
					pass.Reportf(kv.Value.Pos(), "enum field %s assigned string literal", key.Name)
				}
			}
		}
	})

	return nil, nil
}

func isStringLiteral(expr ast.Expr) bool {
	lit, ok := ast.Unparen(expr).(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}

// isEnum caches its answer per type name; scanning a package scope for
// constants is linear in the package size.
func isEnum(cache map[*types.TypeName]bool, t types.Type) bool {
	if t == nil {
		return false
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsString == 0 {
		return false
	}

	obj := named.Obj()
	if known, seen := cache[obj]; seen {
		return known
	}

	found := false
	if pkg := obj.Pkg(); pkg != nil {
		scope := pkg.Scope()
		for _, name := range scope.Names() {
			if c, isConst := scope.Lookup(name).(*types.Const); isConst && types.Identical(c.Type(), named) {
				found = true
				break
			}
		}
	}
	cache[obj] = found
	return found
}
