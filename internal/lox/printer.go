package lox

import "strings"

// ASTPrinter renders an expression tree as a fully-parenthesized Lisp-like
// string. It exists purely as a test and debugging aid: nothing in the
// interpreter pipeline depends on it, but it's the fastest way for a test
// to assert on parser output without hand-walking the tree.
type ASTPrinter struct{}

func (p *ASTPrinter) Print(expr Expr) string {
	result, _ := expr.Accept(p)
	return result.(string)
}

func (p *ASTPrinter) parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(p.Print(e))
	}
	b.WriteString(")")
	return b.String()
}

func (p *ASTPrinter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	return p.parenthesize("= "+expr.Name.Lexeme, expr.Val), nil
}

func (p *ASTPrinter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	return p.parenthesize(expr.Op.Lexeme, expr.Lhs, expr.Rhs), nil
}

func (p *ASTPrinter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	return p.parenthesize("call", append([]Expr{expr.Callee}, expr.Args...)...), nil
}

func (p *ASTPrinter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	return p.parenthesize("get "+expr.Name.Lexeme, expr.Obj), nil
}

func (p *ASTPrinter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	return p.parenthesize("group", expr.Expr), nil
}

func (p *ASTPrinter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	if expr.Val == nil {
		return "nil", nil
	}
	return stringify(expr.Val), nil
}

func (p *ASTPrinter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	return p.parenthesize(expr.Op.Lexeme, expr.Lhs, expr.Rhs), nil
}

func (p *ASTPrinter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	return p.parenthesize("set "+expr.Name.Lexeme, expr.Obj, expr.Val), nil
}

func (p *ASTPrinter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	return "(super " + expr.Method.Lexeme + ")", nil
}

func (p *ASTPrinter) VisitTernaryExpr(expr *TernaryExpr) (interface{}, error) {
	return p.parenthesize("?:", expr.Cond, expr.Then, expr.Else), nil
}

func (p *ASTPrinter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return "this", nil
}

func (p *ASTPrinter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	return p.parenthesize(expr.Op.Lexeme, expr.Rhs), nil
}

func (p *ASTPrinter) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	return expr.Name.Lexeme, nil
}
