package lox

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Interpreter walks a resolved statement list and evaluates it against an
// environment chain. It owns the one long-lived mutable state this
// language has: the globals frame and the locals map produced by the
// resolver.
type Interpreter struct {
	globals     *environment
	environment *environment
	locals      map[Expr]int
	output      io.Writer
	reporter    Reporter
	isREPL      bool
}

func NewInterpreter(output io.Writer, reporter Reporter, isREPL bool) *Interpreter {
	globals := newEnvironment(nil)
	globals.define("clock", clockFn{})

	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[Expr]int),
		output:      output,
		reporter:    reporter,
		isREPL:      isREPL,
	}
}

// Interpret runs every statement in order, stopping and reporting at the
// first runtime error. The interpreter itself survives a runtime error:
// globals and previously-defined functions/classes remain usable, which is
// what lets the REPL keep going after a bad line.
func (in *Interpreter) Interpret(statements []Stmt) {
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			if rtErr, ok := err.(*runtimeError); ok {
				in.reporter.ReportRuntime(rtErr)
			}
			return
		}
	}
}

func (in *Interpreter) VisitBlockStmt(stmt *BlockStmt) (interface{}, error) {
	return nil, in.execBlock(stmt.Stmts, newEnvironment(in.environment))
}

func (in *Interpreter) VisitBreakStmt(stmt *BreakStmt) (interface{}, error) {
	return nil, breakSignal{}
}

func (in *Interpreter) VisitClassStmt(stmt *ClassStmt) (interface{}, error) {
	var super *class
	if stmt.Super != nil {
		superVal, err := in.eval(stmt.Super)
		if err != nil {
			return nil, err
		}
		var ok bool
		super, ok = superVal.(*class)
		if !ok {
			return nil, newRuntimeError(stmt.Super.Name, "Superclass must be a class.")
		}
	}

	in.environment.define(stmt.Name.Lexeme, nil)

	if stmt.Super != nil {
		in.environment = newEnvironment(in.environment)
		in.environment.define("super", super)
	}

	methods := make(map[string]*function)
	for _, method := range stmt.Methods {
		isInitializer := method.Name.Lexeme == "init"
		methods[method.Name.Lexeme] = newFunction(method, in.environment, isInitializer)
	}
	cls := newClass(stmt.Name.Lexeme, super, methods)

	if stmt.Super != nil {
		in.environment = in.environment.enclosing
	}

	if err := in.environment.assign(stmt.Name, cls); err != nil {
		return nil, err
	}
	return nil, nil
}

func (in *Interpreter) VisitExprStmt(stmt *ExprStmt) (interface{}, error) {
	value, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	if in.isREPL {
		switch stmt.Expr.(type) {
		case *AssignExpr:
			// Assignment statements aren't printed at the prompt.
		default:
			fmt.Fprintln(in.output, stringify(value))
		}
	}
	return nil, nil
}

func (in *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) (interface{}, error) {
	fn := newFunction(stmt, in.environment, false)
	in.environment.define(stmt.Name.Lexeme, fn)
	return nil, nil
}

func (in *Interpreter) VisitIfStmt(stmt *IfStmt) (interface{}, error) {
	cond, err := in.eval(stmt.Cond)
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return in.exec(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		return in.exec(stmt.ElseBranch)
	}
	return nil, nil
}

func (in *Interpreter) VisitPrintStmt(stmt *PrintStmt) (interface{}, error) {
	value, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(in.output, stringify(value))
	return nil, nil
}

func (in *Interpreter) VisitVarStmt(stmt *VarStmt) (interface{}, error) {
	var value interface{}
	if stmt.Init != nil {
		var err error
		value, err = in.eval(stmt.Init)
		if err != nil {
			return nil, err
		}
	}
	if value == nil {
		return nil, newRuntimeError(stmt.Name, "A variable must be initialized before it can be used.")
	}
	in.environment.define(stmt.Name.Lexeme, value)
	return nil, nil
}

func (in *Interpreter) VisitReturnStmt(stmt *ReturnStmt) (interface{}, error) {
	var value interface{}
	if stmt.Val != nil {
		var err error
		value, err = in.eval(stmt.Val)
		if err != nil {
			return nil, err
		}
	}
	return nil, &returnSignal{value: value}
}

func (in *Interpreter) VisitWhileStmt(stmt *WhileStmt) (interface{}, error) {
	for {
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return nil, err
		}
		if !truthy(cond) {
			return nil, nil
		}
		if _, err := in.exec(stmt.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil, nil
			}
			return nil, err
		}
	}
}

func (in *Interpreter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	value, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}

	if distance, ok := in.locals[expr]; ok {
		in.environment.assignAt(distance, expr.Name.Lexeme, value)
		return value, nil
	}
	if err := in.globals.assign(expr.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(expr.Rhs)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case GREATER:
		return in.compare(expr.Op, lhs, rhs, func(a, b float64) bool { return a > b }, func(a, b int) bool { return a > b })
	case GREATER_EQUAL:
		return in.compare(expr.Op, lhs, rhs, func(a, b float64) bool { return a >= b }, func(a, b int) bool { return a >= b })
	case LESS:
		return in.compare(expr.Op, lhs, rhs, func(a, b float64) bool { return a < b }, func(a, b int) bool { return a < b })
	case LESS_EQUAL:
		return in.compare(expr.Op, lhs, rhs, func(a, b float64) bool { return a <= b }, func(a, b int) bool { return a <= b })
	case BANG_EQUAL:
		return !isEqual(lhs, rhs), nil
	case EQUAL_EQUAL:
		return isEqual(lhs, rhs), nil
	case MINUS:
		l, r, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case PLUS:
		lStr, lIsStr := lhs.(string)
		rStr, rIsStr := rhs.(string)
		if lIsStr || rIsStr {
			left := lStr
			if !lIsStr {
				left = stringify(lhs)
			}
			right := rStr
			if !rIsStr {
				right = stringify(rhs)
			}
			return left + right, nil
		}
		lNum, lIsNum := lhs.(float64)
		rNum, rIsNum := rhs.(float64)
		if lIsNum && rIsNum {
			return lNum + rNum, nil
		}
		return nil, newRuntimeError(expr.Op, "Operands must be two numbers or two strings.")
	case SLASH:
		l, r, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, newRuntimeError(expr.Op, "Cannot divide by zero.")
		}
		return l / r, nil
	case STAR:
		l, r, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	}
	panic("lox: unreachable binary operator " + expr.Op.Type.String())
}

// compare implements the relational operators' dual contract: compare by
// length when both operands are strings, otherwise require numbers and
// compare numerically.
func (in *Interpreter) compare(op *Token, lhs, rhs interface{}, numCmp func(a, b float64) bool, lenCmp func(a, b int) bool) (interface{}, error) {
	if lStr, ok := lhs.(string); ok {
		if rStr, ok := rhs.(string); ok {
			return lenCmp(len(lStr), len(rStr)), nil
		}
	}
	l, r, err := checkNumberOperands(op, lhs, rhs)
	if err != nil {
		return nil, err
	}
	return numCmp(l, r), nil
}

func (in *Interpreter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	callee, err := in.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	// Arguments are evaluated left-to-right; this is user-visible since Lox
	// expressions may have side effects.
	args := make([]interface{}, 0, len(expr.Args))
	for _, argExpr := range expr.Args {
		argVal, err := in.eval(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, argVal)
	}

	call, ok := callee.(callable)
	if !ok {
		return nil, newRuntimeError(expr.Paren, "Can only call functions and classes.")
	}
	if len(args) != call.arity() {
		return nil, newRuntimeError(expr.Paren, fmt.Sprintf("Expected %d arguments but got %d.", call.arity(), len(args)))
	}
	logrus.WithField("callee", call.String()).Debug("lox: call")
	return call.call(in, args)
}

func (in *Interpreter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Obj)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*instance)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Only instances have properties.")
	}
	return inst.get(expr.Name)
}

func (in *Interpreter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	return in.eval(expr.Expr)
}

func (in *Interpreter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	return expr.Val, nil
}

func (in *Interpreter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Lhs)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Type {
	case OR:
		if truthy(lhs) {
			return lhs, nil
		}
	case AND:
		if !truthy(lhs) {
			return lhs, nil
		}
	}
	return in.eval(expr.Rhs)
}

func (in *Interpreter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Obj)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*instance)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Only instances have fields.")
	}
	value, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}
	inst.set(expr.Name, value)
	return value, nil
}

func (in *Interpreter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	distance := in.locals[expr]
	super := in.environment.getAt(distance, "super").(*class)
	this := in.environment.getAt(distance-1, "this").(*instance)

	method, ok := super.findMethod(expr.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(expr.Method, "Undefined property '"+expr.Method.Lexeme+"'.")
	}
	return method.bind(this), nil
}

func (in *Interpreter) VisitTernaryExpr(expr *TernaryExpr) (interface{}, error) {
	cond, err := in.eval(expr.Cond)
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return in.eval(expr.Then)
	}
	return in.eval(expr.Else)
}

func (in *Interpreter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return in.lookUpVar(expr.Keyword, expr)
}

func (in *Interpreter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	right, err := in.eval(expr.Rhs)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Type {
	case BANG:
		return !truthy(right), nil
	case MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(expr.Op, "Operand must be a number.")
		}
		return -num, nil
	}
	panic("lox: unreachable unary operator " + expr.Op.Type.String())
}

func (in *Interpreter) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	return in.lookUpVar(expr.Name, expr)
}

func (in *Interpreter) execBlock(statements []Stmt, env *environment) error {
	previous := in.environment
	in.environment = env
	defer func() {
		in.environment = previous
	}()
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(stmt Stmt) (interface{}, error) {
	return stmt.Accept(in)
}

func (in *Interpreter) eval(expr Expr) (interface{}, error) {
	return expr.Accept(in)
}

// resolve records the resolver's output: the lexical distance from the
// frame active when `expr` is evaluated to the frame that declares it.
// Called only during resolution, never after interpretation begins.
func (in *Interpreter) resolve(expr Expr, distance int) {
	in.locals[expr] = distance
}

func (in *Interpreter) lookUpVar(name *Token, expr Expr) (interface{}, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.getAt(distance, name.Lexeme), nil
	}
	return in.globals.get(name)
}

func checkNumberOperands(op *Token, lhs, rhs interface{}) (float64, float64, error) {
	l, lOk := lhs.(float64)
	r, rOk := rhs.(float64)
	if !lOk || !rOk {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return l, r, nil
}

func truthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		text := strconv.FormatFloat(v, 'f', -1, 64)
		return strings.TrimSuffix(text, ".0")
	case bool:
		if v {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
