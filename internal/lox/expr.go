package lox

// Code in this file has the shape of generator output (it is hand-maintained;
// no generator is checked in) — one struct, one constructor, and one Accept method per expression
// variant, dispatching to a matching ExprVisitor method.

type Expr interface {
	Accept(visitor ExprVisitor) (interface{}, error)
}
type ExprVisitor interface {
	VisitAssignExpr(expr *AssignExpr) (interface{}, error)
	VisitBinaryExpr(expr *BinaryExpr) (interface{}, error)
	VisitCallExpr(expr *CallExpr) (interface{}, error)
	VisitGetExpr(expr *GetExpr) (interface{}, error)
	VisitGroupingExpr(expr *GroupingExpr) (interface{}, error)
	VisitLiteralExpr(expr *LiteralExpr) (interface{}, error)
	VisitLogicalExpr(expr *LogicalExpr) (interface{}, error)
	VisitSetExpr(expr *SetExpr) (interface{}, error)
	VisitSuperExpr(expr *SuperExpr) (interface{}, error)
	VisitTernaryExpr(expr *TernaryExpr) (interface{}, error)
	VisitThisExpr(expr *ThisExpr) (interface{}, error)
	VisitUnaryExpr(expr *UnaryExpr) (interface{}, error)
	VisitVarExpr(expr *VarExpr) (interface{}, error)
}

type AssignExpr struct {
	Name *Token
	Val  Expr
}

func NewAssignExpr(Name *Token, Val Expr) *AssignExpr {
	return &AssignExpr{Name, Val}
}
func (expr *AssignExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitAssignExpr(expr)
}

type BinaryExpr struct {
	Lhs Expr
	Op  *Token
	Rhs Expr
}

func NewBinaryExpr(Lhs Expr, Op *Token, Rhs Expr) *BinaryExpr {
	return &BinaryExpr{Lhs, Op, Rhs}
}
func (expr *BinaryExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitBinaryExpr(expr)
}

type CallExpr struct {
	Callee Expr
	Paren  *Token
	Args   []Expr
}

func NewCallExpr(Callee Expr, Paren *Token, Args []Expr) *CallExpr {
	return &CallExpr{Callee, Paren, Args}
}
func (expr *CallExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitCallExpr(expr)
}

type GetExpr struct {
	Obj  Expr
	Name *Token
}

func NewGetExpr(Obj Expr, Name *Token) *GetExpr {
	return &GetExpr{Obj, Name}
}
func (expr *GetExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitGetExpr(expr)
}

type GroupingExpr struct {
	Expr Expr
}

func NewGroupingExpr(Expr Expr) *GroupingExpr {
	return &GroupingExpr{Expr}
}
func (expr *GroupingExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitGroupingExpr(expr)
}

type LiteralExpr struct {
	Val interface{}
}

func NewLiteralExpr(Val interface{}) *LiteralExpr {
	return &LiteralExpr{Val}
}
func (expr *LiteralExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitLiteralExpr(expr)
}

type LogicalExpr struct {
	Lhs Expr
	Op  *Token
	Rhs Expr
}

func NewLogicalExpr(Lhs Expr, Op *Token, Rhs Expr) *LogicalExpr {
	return &LogicalExpr{Lhs, Op, Rhs}
}
func (expr *LogicalExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitLogicalExpr(expr)
}

type SetExpr struct {
	Obj  Expr
	Name *Token
	Val  Expr
}

func NewSetExpr(Obj Expr, Name *Token, Val Expr) *SetExpr {
	return &SetExpr{Obj, Name, Val}
}
func (expr *SetExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitSetExpr(expr)
}

type SuperExpr struct {
	Keyword *Token
	Method  *Token
}

func NewSuperExpr(Keyword *Token, Method *Token) *SuperExpr {
	return &SuperExpr{Keyword, Method}
}
func (expr *SuperExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitSuperExpr(expr)
}

type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

func NewTernaryExpr(Cond Expr, Then Expr, Else Expr) *TernaryExpr {
	return &TernaryExpr{Cond, Then, Else}
}
func (expr *TernaryExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitTernaryExpr(expr)
}

type ThisExpr struct {
	Keyword *Token
}

func NewThisExpr(Keyword *Token) *ThisExpr {
	return &ThisExpr{Keyword}
}
func (expr *ThisExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitThisExpr(expr)
}

type UnaryExpr struct {
	Op  *Token
	Rhs Expr
}

func NewUnaryExpr(Op *Token, Rhs Expr) *UnaryExpr {
	return &UnaryExpr{Op, Rhs}
}
func (expr *UnaryExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitUnaryExpr(expr)
}

type VarExpr struct {
	Name *Token
}

func NewVarExpr(Name *Token) *VarExpr {
	return &VarExpr{Name}
}
func (expr *VarExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitVarExpr(expr)
}
