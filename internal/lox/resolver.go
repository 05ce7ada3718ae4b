package lox

import "github.com/sirupsen/logrus"

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionMethod
	functionInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver is the static pass between parsing and interpretation. It
// walks the statement list once, computing a scope-distance for every
// variable-use, `this`, and `super` expression, and flags the handful of
// errors that only make sense once lexical scoping is known (self-init,
// redeclaration, return/this/super/break misuse).
type Resolver struct {
	interp          *Interpreter
	reporter        Reporter
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
	loopDepth       int
}

func NewResolver(interp *Interpreter, reporter Reporter) *Resolver {
	return &Resolver{interp: interp, reporter: reporter}
}

func (r *Resolver) ResolveStmts(statements []Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
	logrus.Debug("lox: resolve complete")
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	stmt.Accept(r)
}

func (r *Resolver) resolveExpr(expr Expr) {
	expr.Accept(r)
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) declare(name *Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peekScope()
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.ReportToken(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name *Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr Expr, name *Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.interp.resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
	// Not found in any scope: treated as a global.
}

func (r *Resolver) resolveFunction(fn *FunctionStmt, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.ResolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) VisitBlockStmt(stmt *BlockStmt) (interface{}, error) {
	r.beginScope()
	r.ResolveStmts(stmt.Stmts)
	r.endScope()
	return nil, nil
}

func (r *Resolver) VisitBreakStmt(stmt *BreakStmt) (interface{}, error) {
	if r.loopDepth == 0 {
		r.reporter.ReportToken(stmt.Keyword, "Can't use 'break' outside of a loop.")
	}
	return nil, nil
}

func (r *Resolver) VisitClassStmt(stmt *ClassStmt) (interface{}, error) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Super != nil && stmt.Super.Name.Lexeme == stmt.Name.Lexeme {
		r.reporter.ReportToken(stmt.Super.Name, "A class can't inherit from itself.")
	}

	if stmt.Super != nil {
		r.currentClass = classSubclass
		r.resolveExpr(stmt.Super)

		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range stmt.Methods {
		declType := functionMethod
		if method.Name.Lexeme == "init" {
			declType = functionInitializer
		}
		r.resolveFunction(method, declType)
	}

	r.endScope()
	if stmt.Super != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil, nil
}

func (r *Resolver) VisitExprStmt(stmt *ExprStmt) (interface{}, error) {
	r.resolveExpr(stmt.Expr)
	return nil, nil
}

func (r *Resolver) VisitFunctionStmt(stmt *FunctionStmt) (interface{}, error) {
	r.declare(stmt.Name)
	r.define(stmt.Name)
	r.resolveFunction(stmt, functionFunction)
	return nil, nil
}

func (r *Resolver) VisitIfStmt(stmt *IfStmt) (interface{}, error) {
	r.resolveExpr(stmt.Cond)
	r.resolveStmt(stmt.ThenBranch)
	if stmt.ElseBranch != nil {
		r.resolveStmt(stmt.ElseBranch)
	}
	return nil, nil
}

func (r *Resolver) VisitPrintStmt(stmt *PrintStmt) (interface{}, error) {
	r.resolveExpr(stmt.Expr)
	return nil, nil
}

func (r *Resolver) VisitReturnStmt(stmt *ReturnStmt) (interface{}, error) {
	if r.currentFunction == functionNone {
		r.reporter.ReportToken(stmt.Keyword, "Can't return from top-level code.")
	}
	if stmt.Val != nil {
		if r.currentFunction == functionInitializer {
			r.reporter.ReportToken(stmt.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(stmt.Val)
	}
	return nil, nil
}

func (r *Resolver) VisitVarStmt(stmt *VarStmt) (interface{}, error) {
	r.declare(stmt.Name)
	if stmt.Init != nil {
		r.resolveExpr(stmt.Init)
	}
	r.define(stmt.Name)
	return nil, nil
}

func (r *Resolver) VisitWhileStmt(stmt *WhileStmt) (interface{}, error) {
	r.resolveExpr(stmt.Cond)
	r.loopDepth++
	r.resolveStmt(stmt.Body)
	r.loopDepth--
	return nil, nil
}

func (r *Resolver) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	r.resolveExpr(expr.Val)
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	r.resolveExpr(expr.Lhs)
	r.resolveExpr(expr.Rhs)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	r.resolveExpr(expr.Callee)
	for _, arg := range expr.Args {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	r.resolveExpr(expr.Obj)
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	r.resolveExpr(expr.Expr)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	r.resolveExpr(expr.Lhs)
	r.resolveExpr(expr.Rhs)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	r.resolveExpr(expr.Val)
	r.resolveExpr(expr.Obj)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	switch r.currentClass {
	case classNone:
		r.reporter.ReportToken(expr.Keyword, "Can't use 'super' outside of a class.")
	case classClass:
		r.reporter.ReportToken(expr.Keyword, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitTernaryExpr(expr *TernaryExpr) (interface{}, error) {
	r.resolveExpr(expr.Cond)
	r.resolveExpr(expr.Then)
	r.resolveExpr(expr.Else)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	if r.currentClass == classNone {
		r.reporter.ReportToken(expr.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	r.resolveExpr(expr.Rhs)
	return nil, nil
}

func (r *Resolver) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	if len(r.scopes) != 0 {
		if defined, ok := r.peekScope()[expr.Name.Lexeme]; ok && !defined {
			r.reporter.ReportToken(expr.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}
