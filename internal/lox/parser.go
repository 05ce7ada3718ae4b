package lox

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// parseError is the internal sentinel a parsing method raises on
// malformed syntax. It is always caught by declaration() so that parsing
// can recover and keep looking for further errors; it is never surfaced
// to the driver directly (the reporter has already recorded it).
type parseError struct{}

func (parseError) Error() string { return "parse error" }

const maxArgs = 255

// Parser is a recursive-descent, one-token-lookahead parser over a fixed
// token sequence.
type Parser struct {
	reporter Reporter
	tokens   []*Token
	current  int
}

func NewParser(tokens []*Token, reporter Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse runs the parser to completion, returning every statement it could
// recover to. Errors are reported as they're found; the caller checks the
// reporter's HadError flag to decide whether to proceed to resolution.
func (p *Parser) Parse() []Stmt {
	var statements []Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	logrus.WithField("count", len(statements)).Debug("lox: parse complete")
	return statements
}

func (p *Parser) declaration() (result Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				result = nil
				return
			}
			panic(r)
		}
	}()

	if p.match(CLASS) {
		return p.classDeclaration()
	}
	if p.match(FUN) {
		return p.function("function")
	}
	if p.match(VAR) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) classDeclaration() Stmt {
	name := p.consume(IDENTIFIER, "Expect class name.")

	var superclass *VarExpr
	if p.match(LESS) {
		p.consume(IDENTIFIER, "Expect superclass name.")
		superclass = NewVarExpr(p.previous())
	}

	p.consume(LEFT_BRACE, "Expect '{' before class body.")

	var methods []*FunctionStmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}

	p.consume(RIGHT_BRACE, "Expect '}' after class body.")
	return NewClassStmt(name, superclass, methods)
}

func (p *Parser) function(kind string) *FunctionStmt {
	name := p.consume(IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	p.consume(LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind))

	var params []*Token
	if !p.check(RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.error(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(IDENTIFIER, "Expect parameter name."))
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(LEFT_BRACE, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()
	return NewFunctionStmt(name, params, body)
}

func (p *Parser) varDeclaration() Stmt {
	name := p.consume(IDENTIFIER, "Expect variable name.")
	var initializer Expr
	if p.match(EQUAL) {
		initializer = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after variable declaration.")
	return NewVarStmt(name, initializer)
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(FOR):
		return p.forStatement()
	case p.match(IF):
		return p.ifStatement()
	case p.match(PRINT):
		return p.printStatement()
	case p.match(RETURN):
		return p.returnStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(BREAK):
		return p.breakStatement()
	case p.match(LEFT_BRACE):
		return NewBlockStmt(p.block())
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) breakStatement() Stmt {
	keyword := p.previous()
	p.consume(SEMICOLON, "Expect ';' after 'break'.")
	return NewBreakStmt(keyword)
}

func (p *Parser) forStatement() Stmt {
	p.consume(LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer Stmt
	switch {
	case p.match(SEMICOLON):
		initializer = nil
	case p.match(VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition Expr
	if !p.check(SEMICOLON) {
		condition = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after loop condition.")

	var increment Expr
	if !p.check(RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = NewBlockStmt([]Stmt{body, NewExprStmt(increment)})
	}
	if condition == nil {
		condition = NewLiteralExpr(true)
	}
	body = NewWhileStmt(condition, body)

	if initializer != nil {
		body = NewBlockStmt([]Stmt{initializer, body})
	}
	return body
}

func (p *Parser) whileStatement() Stmt {
	p.consume(LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return NewWhileStmt(condition, body)
}

func (p *Parser) ifStatement() Stmt {
	p.consume(LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(ELSE) {
		elseBranch = p.statement()
	}
	return NewIfStmt(condition, thenBranch, elseBranch)
}

func (p *Parser) printStatement() Stmt {
	value := p.expression()
	p.consume(SEMICOLON, "Expect ';' after value.")
	return NewPrintStmt(value)
}

func (p *Parser) returnStatement() Stmt {
	keyword := p.previous()
	var value Expr
	if !p.check(SEMICOLON) {
		value = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after return value.")
	return NewReturnStmt(keyword, value)
}

func (p *Parser) expressionStatement() Stmt {
	expr := p.expression()
	p.consume(SEMICOLON, "Expect ';' after expression.")
	return NewExprStmt(expr)
}

func (p *Parser) block() []Stmt {
	var statements []Stmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(RIGHT_BRACE, "Expect '}' after block.")
	return statements
}

func (p *Parser) expression() Expr {
	return p.assignment()
}

func (p *Parser) assignment() Expr {
	expr := p.ternary()

	if p.match(EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *VarExpr:
			return NewAssignExpr(e.Name, value)
		case *GetExpr:
			return NewSetExpr(e.Obj, e.Name, value)
		default:
			p.error(equals, "Invalid assignment target.")
		}
	}
	return expr
}

// ternary binds looser than logical-or and tighter than assignment, and
// is right-associative: `a ? b : c ? d : e` parses as `a ? b : (c ? d : e)`.
func (p *Parser) ternary() Expr {
	expr := p.logicalOr()
	if p.match(QUESTION_MARK) {
		then := p.expression()
		p.consume(COLON, "Expect ':' after then branch of ternary expression.")
		elseBranch := p.ternary()
		return NewTernaryExpr(expr, then, elseBranch)
	}
	return expr
}

func (p *Parser) logicalOr() Expr {
	expr := p.logicalAnd()
	for p.match(OR) {
		op := p.previous()
		right := p.logicalAnd()
		expr = NewLogicalExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) logicalAnd() Expr {
	expr := p.equality()
	for p.match(AND) {
		op := p.previous()
		right := p.equality()
		expr = NewLogicalExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(BANG_EQUAL, EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = NewBinaryExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.match(GREATER, GREATER_EQUAL, LESS, LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = NewBinaryExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.match(MINUS, PLUS) {
		op := p.previous()
		right := p.factor()
		expr = NewBinaryExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(SLASH, STAR) {
		op := p.previous()
		right := p.unary()
		expr = NewBinaryExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(BANG, MINUS) {
		op := p.previous()
		right := p.unary()
		return NewUnaryExpr(op, right)
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(DOT):
			name := p.consume(IDENTIFIER, "Expect property name after '.'.")
			expr = NewGetExpr(expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.error(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren := p.consume(RIGHT_PAREN, "Expect ')' after arguments.")
	return NewCallExpr(callee, paren, args)
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(FALSE):
		return NewLiteralExpr(false)
	case p.match(TRUE):
		return NewLiteralExpr(true)
	case p.match(NIL):
		return NewLiteralExpr(nil)
	case p.match(NUMBER, STRING):
		return NewLiteralExpr(p.previous().Literal)
	case p.match(SUPER):
		keyword := p.previous()
		p.consume(DOT, "Expect '.' after 'super'.")
		method := p.consume(IDENTIFIER, "Expect superclass method name.")
		return NewSuperExpr(keyword, method)
	case p.match(THIS):
		return NewThisExpr(p.previous())
	case p.match(IDENTIFIER):
		return NewVarExpr(p.previous())
	case p.match(LEFT_PAREN):
		expr := p.expression()
		p.consume(RIGHT_PAREN, "Expect ')' after expression.")
		return NewGroupingExpr(expr)
	}
	panic(p.error(p.peek(), "Expect expression."))
}

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t TokenType, message string) *Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.error(p.peek(), message))
}

func (p *Parser) check(t TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() *Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) peek() *Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() *Token {
	return p.tokens[p.current-1]
}

func (p *Parser) error(tok *Token, message string) parseError {
	p.reporter.ReportToken(tok, message)
	return parseError{}
}

func (p *Parser) synchronize() {
	switch p.peek().Type {
	case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
		// The offending token already starts the next statement; keep it.
		return
	}
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		p.advance()
	}
}
