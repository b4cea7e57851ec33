package sema

import (
	"spicy/internal/ast"
)

// walkStmt обходит оператор вглубь и вызывает visit для каждого
// выражения в нём (включая вложенные).
func (a *analysis) walkStmt(id ast.StmtID, visit func(ast.ExprID)) {
	if !id.IsValid() {
		return
	}
	stmt := a.builder.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtBlock:
		data, _ := a.builder.Stmts.Block(id)
		for _, child := range data.Stmts {
			a.walkStmt(child, visit)
		}
	case ast.StmtExpr:
		data, _ := a.builder.Stmts.Expr(id)
		a.walkExpr(data.Expr, visit)
	case ast.StmtAssign:
		data, _ := a.builder.Stmts.Assign(id)
		a.walkExpr(data.Target, visit)
		a.walkExpr(data.Value, visit)
	case ast.StmtReturn:
		data, _ := a.builder.Stmts.Return(id)
		a.walkExpr(data.Value, visit)
	case ast.StmtIf:
		data, _ := a.builder.Stmts.If(id)
		a.walkExpr(data.Cond, visit)
		a.walkStmt(data.Then, visit)
		for _, arm := range data.Elifs {
			a.walkExpr(arm.Cond, visit)
			a.walkStmt(arm.Body, visit)
		}
		a.walkStmt(data.Else, visit)
	case ast.StmtWhile:
		data, _ := a.builder.Stmts.While(id)
		a.walkExpr(data.Cond, visit)
		a.walkStmt(data.Body, visit)
	case ast.StmtFor:
		data, _ := a.builder.Stmts.For(id)
		a.walkExpr(data.Iter, visit)
		a.walkStmt(data.Body, visit)
	case ast.StmtRaise:
		data, _ := a.builder.Stmts.Raise(id)
		a.walkExpr(data.Value, visit)
	}
}

// walkExpr обходит выражение вглубь, вызывая visit на каждом узле.
func (a *analysis) walkExpr(id ast.ExprID, visit func(ast.ExprID)) {
	if !id.IsValid() {
		return
	}
	visit(id)
	expr := a.builder.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprFString:
		data, _ := a.builder.Exprs.FString(id)
		for _, part := range data.Parts {
			a.walkExpr(part.Expr, visit)
		}
	case ast.ExprBinary:
		data, _ := a.builder.Exprs.Binary(id)
		a.walkExpr(data.Left, visit)
		a.walkExpr(data.Right, visit)
	case ast.ExprUnary:
		data, _ := a.builder.Exprs.Unary(id)
		a.walkExpr(data.Operand, visit)
	case ast.ExprCall:
		data, _ := a.builder.Exprs.Call(id)
		a.walkExpr(data.Callee, visit)
		for _, arg := range data.Args {
			a.walkExpr(arg, visit)
		}
	case ast.ExprMember:
		data, _ := a.builder.Exprs.Member(id)
		a.walkExpr(data.Object, visit)
	case ast.ExprIndex:
		data, _ := a.builder.Exprs.Index(id)
		a.walkExpr(data.Object, visit)
		a.walkExpr(data.Index, visit)
	case ast.ExprSlice:
		data, _ := a.builder.Exprs.Slice(id)
		a.walkExpr(data.Object, visit)
		a.walkExpr(data.Lo, visit)
		a.walkExpr(data.Hi, visit)
		a.walkExpr(data.Step, visit)
	case ast.ExprList:
		data, _ := a.builder.Exprs.List(id)
		for _, elem := range data.Elems {
			a.walkExpr(elem, visit)
		}
	case ast.ExprTuple:
		data, _ := a.builder.Exprs.Tuple(id)
		for _, elem := range data.Elems {
			a.walkExpr(elem, visit)
		}
	case ast.ExprDict:
		data, _ := a.builder.Exprs.Dict(id)
		for i := range data.Keys {
			a.walkExpr(data.Keys[i], visit)
			a.walkExpr(data.Values[i], visit)
		}
	}
}
