// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Recursive-descent parser building the AST from a materialized
//          token slice, using the Result backtracking scheme (result.go) to
//          try speculative productions without losing the deepest diagnostic.
// ==============================================================================================

package parser

import (
	"eloq/ast"
	"eloq/diag"
	"eloq/position"
	"eloq/token"
)

// Parser walks a fixed token slice by index, advancing and reversing as
// productions are tried and (sometimes) abandoned.
type Parser struct {
	tokens     []token.Token
	tokenIndex int
	current    token.Token
}

// Parse tokenizes nothing itself — it consumes an already-lexed stream and
// returns the top-level statements List, or the first diagnostic hit.
func Parse(tokens []token.Token) (ast.Node, *diag.Diagnostic) {
	p := &Parser{tokens: tokens, tokenIndex: -1}
	p.advance()
	res := p.statements()
	if res.Err == nil && !p.current.Is(token.EOF) {
		return nil, diag.New(diag.InvalidSyntax, p.current.Start, p.current.End,
			"Expected '+', '-', '*' or '/'")
	}
	return res.Node, res.Err
}

func (p *Parser) advance() token.Token {
	p.tokenIndex++
	p.updateCurrent()
	return p.current
}

func (p *Parser) reverse(amount int) token.Token {
	p.tokenIndex -= amount
	p.updateCurrent()
	return p.current
}

func (p *Parser) updateCurrent() {
	if p.tokenIndex < len(p.tokens) {
		p.current = p.tokens[p.tokenIndex]
	}
}

// ---------------------------------------------------------------------------
// statements
// ---------------------------------------------------------------------------

func (p *Parser) statements() *Result {
	res := NewResult()
	var statements []ast.Node
	start := p.current.Start

	for p.current.Is(token.NEWLINE) {
		res.RegisterAdvancement()
		p.advance()
	}

	statement := res.Register(p.expression())
	if res.Err != nil {
		return res
	}
	statements = append(statements, statement)

	moreStatements := true
	for {
		newlineCount := 0
		for p.current.Is(token.NEWLINE) {
			res.RegisterAdvancement()
			p.advance()
			newlineCount++
		}
		if newlineCount == 0 {
			moreStatements = false
		}
		if !moreStatements {
			break
		}
		statement := res.TryRegister(p.expression())
		if statement == nil {
			p.reverse(res.ToReverseCount)
			moreStatements = false
			continue
		}
		statements = append(statements, statement)
	}

	return res.Success(ast.NewList(statements, position.NewSpan(start, p.current.End)))
}

// ---------------------------------------------------------------------------
// list / dictionary literals
// ---------------------------------------------------------------------------

func (p *Parser) listExpression() *Result {
	res := NewResult()
	var elements []ast.Node
	start := p.current.Start

	if !p.current.Is(token.LSQUARE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '['"))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.current.Is(token.RSQUARE) {
		res.RegisterAdvancement()
		p.advance()
	} else {
		elements = append(elements, res.Register(p.expression()))
		if res.Err != nil {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End,
				"Expected ']', 'take', 'whether', 'StartCycle', 'AsLongAs', 'Method', int, float, identifier"))
		}

		for p.current.Is(token.COMMA) {
			res.RegisterAdvancement()
			p.advance()

			elements = append(elements, res.Register(p.expression()))
			if res.Err != nil {
				return res
			}
		}

		if !p.current.Is(token.RSQUARE) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected ',' or ']'"))
		}
		res.RegisterAdvancement()
		p.advance()
	}

	return res.Success(ast.NewList(elements, position.NewSpan(start, p.current.End)))
}

func (p *Parser) dictionaryExpression() *Result {
	res := NewResult()
	var keys, values []ast.Node
	start := p.current.Start

	if !p.current.Is(token.LBRACE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '{'"))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.current.Is(token.RBRACE) {
		res.RegisterAdvancement()
		p.advance()
	} else {
		keys = append(keys, res.Register(p.expression()))
		if res.Err != nil {
			return res
		}
		if !p.current.Is(token.COLON) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected ':'"))
		}
		res.RegisterAdvancement()
		p.advance()

		values = append(values, res.Register(p.expression()))
		if res.Err != nil {
			return res
		}

		for p.current.Is(token.COMMA) {
			res.RegisterAdvancement()
			p.advance()

			keys = append(keys, res.Register(p.expression()))
			if res.Err != nil {
				return res
			}
			if !p.current.Is(token.COLON) {
				return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected ':'"))
			}
			res.RegisterAdvancement()
			p.advance()

			values = append(values, res.Register(p.expression()))
			if res.Err != nil {
				return res
			}
		}

		if !p.current.Is(token.RBRACE) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
		}
		res.RegisterAdvancement()
		p.advance()
	}

	return res.Success(ast.NewDictionary(keys, values, position.NewSpan(start, p.current.End)))
}

// ---------------------------------------------------------------------------
// StartCycle / AsLongAs
// ---------------------------------------------------------------------------

func (p *Parser) forExpression() *Result {
	res := NewResult()
	start := p.current.Start

	if !p.current.IsKeyword("StartCycle") {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected 'StartCycle'"))
	}
	res.RegisterAdvancement()
	p.advance()

	if !p.current.Is(token.IDENTIFIER) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected identifier"))
	}
	varName := p.current
	res.RegisterAdvancement()
	p.advance()

	if !p.current.Is(token.EQUAL) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '='"))
	}
	res.RegisterAdvancement()
	p.advance()

	startValue := res.Register(p.expression())
	if res.Err != nil {
		return res
	}

	if !p.current.Is(token.COLON) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected ':'"))
	}
	res.RegisterAdvancement()
	p.advance()

	endValue := res.Register(p.expression())
	if res.Err != nil {
		return res
	}

	var stepValue ast.Node
	if p.current.Is(token.COLON) {
		res.RegisterAdvancement()
		p.advance()

		stepValue = res.Register(p.expression())
		if res.Err != nil {
			return res
		}
	}

	if !p.current.Is(token.LBRACE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '{'"))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.current.Is(token.NEWLINE) {
		res.RegisterAdvancement()
		p.advance()

		body := res.Register(p.statements())
		if res.Err != nil {
			return res
		}

		if !p.current.Is(token.RBRACE) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
		}
		res.RegisterAdvancement()
		end := p.advance().End

		return res.Success(ast.NewFor(varName, startValue, endValue, stepValue, body, true, position.NewSpan(start, end)))
	}

	body := res.Register(p.expression())
	if res.Err != nil {
		return res
	}

	if !p.current.Is(token.RBRACE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
	}
	res.RegisterAdvancement()
	end := p.advance().End

	return res.Success(ast.NewFor(varName, startValue, endValue, stepValue, body, false, position.NewSpan(start, end)))
}

func (p *Parser) whileExpression() *Result {
	res := NewResult()
	start := p.current.Start

	if !p.current.IsKeyword("AsLongAs") {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected 'AsLongAs'"))
	}
	res.RegisterAdvancement()
	p.advance()

	if !p.current.Is(token.LPAREN) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '('"))
	}
	res.RegisterAdvancement()
	p.advance()

	condition := res.Register(p.expression())
	if res.Err != nil {
		return res
	}

	if p.current.Is(token.RPAREN) {
		res.RegisterAdvancement()
		p.advance()
	}

	if !p.current.Is(token.LBRACE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '{'"))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.current.Is(token.NEWLINE) {
		res.RegisterAdvancement()
		p.advance()

		body := res.Register(p.statements())
		if res.Err != nil {
			return res
		}

		if !p.current.Is(token.RBRACE) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
		}
		res.RegisterAdvancement()
		end := p.advance().End

		return res.Success(ast.NewWhile(condition, body, true, position.NewSpan(start, end)))
	}

	body := res.Register(p.expression())
	if res.Err != nil {
		return res
	}

	if !p.current.Is(token.RBRACE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
	}
	res.RegisterAdvancement()
	end := p.advance().End

	return res.Success(ast.NewWhile(condition, body, false, position.NewSpan(start, end)))
}

// ---------------------------------------------------------------------------
// whether / further / ifnot
// ---------------------------------------------------------------------------

type ifCaseSet struct {
	cases    []ast.IfCase
	elseBody ast.Node
	hasElse  bool
	discard  bool
}

func (p *Parser) ifExpression() *Result {
	res := NewResult()
	start := p.current.Start
	set := res.Register(p.ifExpressionCases("whether"))
	if res.Err != nil {
		return res
	}
	cs := set.(ifSetNode).set
	end := p.tokens[p.tokenIndex-1].End
	return res.Success(ast.NewIf(cs.cases, cs.elseBody, cs.discard, cs.hasElse, position.NewSpan(start, end)))
}

// ifExpressionC parses the trailing `ifnot { ... }` clause, if present.
func (p *Parser) ifExpressionC() *Result {
	res := NewResult()
	var elseBody ast.Node
	discard := false
	hasElse := false

	if p.current.IsKeyword("ifnot") {
		res.RegisterAdvancement()
		p.advance()

		if !p.current.Is(token.LBRACE) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '{'"))
		}
		res.RegisterAdvancement()
		p.advance()

		if p.current.Is(token.NEWLINE) {
			res.RegisterAdvancement()
			p.advance()

			statements := res.Register(p.statements())
			if res.Err != nil {
				return res
			}
			elseBody, discard, hasElse = statements, true, true

			if !p.current.Is(token.RBRACE) {
				return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
			}
			res.RegisterAdvancement()
			p.advance()
		} else {
			expr := res.Register(p.expression())
			if res.Err != nil {
				return res
			}
			elseBody, discard, hasElse = expr, false, true

			if !p.current.Is(token.RBRACE) {
				return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
			}
			res.RegisterAdvancement()
			p.advance()
		}
	}

	return res.Success(nil).withIfSet(&ifCaseSet{elseBody: elseBody, hasElse: hasElse, discard: discard})
}

func (p *Parser) ifExpressionB() *Result {
	return p.ifExpressionCases("further")
}

// ifExpressionBOrC resolves to either another `further` chain or a trailing
// `ifnot`/nothing, mirroring the original's tuple-returning sub-parsers.
func (p *Parser) ifExpressionBOrC() *Result {
	res := NewResult()
	set := &ifCaseSet{}

	if p.current.IsKeyword("further") {
		sub := res.Register(p.ifExpressionB())
		if res.Err != nil {
			return res
		}
		set = sub.(ifSetNode).set
	} else {
		sub := res.Register(p.ifExpressionC())
		if res.Err != nil {
			return res
		}
		set = sub.(ifSetNode).set
	}

	return res.Success(nil).withIfSet(set)
}

func (p *Parser) ifExpressionCases(caseKeyword string) *Result {
	res := NewResult()
	var cases []ast.IfCase

	if !p.current.IsKeyword(caseKeyword) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '"+caseKeyword+"'"))
	}
	res.RegisterAdvancement()
	p.advance()

	condition := res.Register(p.expression())
	if res.Err != nil {
		return res
	}

	if !p.current.Is(token.LBRACE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '{'"))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.current.Is(token.NEWLINE) {
		res.RegisterAdvancement()
		p.advance()

		statements := res.Register(p.statements())
		if res.Err != nil {
			return res
		}
		cases = append(cases, ast.IfCase{Condition: condition, Body: statements, DiscardBody: true})
	} else {
		expr := res.Register(p.expression())
		if res.Err != nil {
			return res
		}
		cases = append(cases, ast.IfCase{Condition: condition, Body: expr, DiscardBody: false})
	}

	if !p.current.Is(token.RBRACE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
	}
	res.RegisterAdvancement()
	p.advance()

	sub := res.Register(p.ifExpressionBOrC())
	if res.Err != nil {
		return res
	}
	tail := sub.(ifSetNode).set
	cases = append(cases, tail.cases...)

	return res.Success(nil).withIfSet(&ifCaseSet{cases: cases, elseBody: tail.elseBody, hasElse: tail.hasElse, discard: tail.discard})
}

// withIfSet stashes an *ifCaseSet alongside a Result's Node field — the
// grammar's if-clause sub-parsers return a (cases, else_case) tuple in the
// distilled-from source; Go has no ad-hoc tuple, so the set rides along as
// the Node itself (type-asserted back out by the caller).
func (r *Result) withIfSet(set *ifCaseSet) *Result {
	r.Node = ifSetNode{set}
	return r
}

// ifSetNode lets an *ifCaseSet satisfy ast.Node so it can travel through
// Result.Node; it is never part of the real tree and nothing renders it.
type ifSetNode struct{ set *ifCaseSet }

func (ifSetNode) Span() (s position.Span) { return }
func (ifSetNode) String() string          { return "" }

// ---------------------------------------------------------------------------
// call / complex / power / factor / term / comp / arith / expression
// ---------------------------------------------------------------------------

func (p *Parser) call() *Result {
	res := NewResult()
	start := p.current.Start
	atom := res.Register(p.complex())
	if res.Err != nil {
		return res
	}

	if p.current.Is(token.LPAREN) {
		res.RegisterAdvancement()
		p.advance()

		var args []ast.Node

		if p.current.Is(token.RPAREN) {
			res.RegisterAdvancement()
			p.advance()
		} else {
			args = append(args, res.Register(p.expression()))
			if res.Err != nil {
				return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End,
					"Expected ')', 'take', 'whether', 'StartCycle', 'AsLongAs', 'Method', int, float, identifier"))
			}

			for p.current.Is(token.COMMA) {
				res.RegisterAdvancement()
				p.advance()

				args = append(args, res.Register(p.expression()))
				if res.Err != nil {
					return res
				}
			}

			if p.current.Is(token.RPAREN) {
				res.RegisterAdvancement()
				p.advance()
			}
		}
		return res.Success(ast.NewCall(atom, args, position.NewSpan(start, p.tokens[p.tokenIndex-1].End)))
	}
	return res.Success(atom)
}

func (p *Parser) complex() *Result {
	res := NewResult()
	tok := p.current

	switch {
	case tok.Is(token.INT) || tok.Is(token.FLOAT):
		res.RegisterAdvancement()
		p.advance()
		return res.Success(ast.NewNumber(tok))

	case tok.Is(token.STRING):
		res.RegisterAdvancement()
		p.advance()
		return res.Success(ast.NewString(tok))

	case tok.Is(token.IDENTIFIER):
		res.RegisterAdvancement()
		p.advance()
		return res.Success(ast.NewVarAccess(tok))

	case tok.Is(token.LPAREN):
		res.RegisterAdvancement()
		p.advance()
		expr := res.Register(p.expression())
		if res.Err != nil {
			return res
		}
		if p.current.Is(token.RPAREN) {
			res.RegisterAdvancement()
			p.advance()
			return res.Success(expr)
		}
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected ')'"))

	case tok.Is(token.LSQUARE):
		listExpr := res.Register(p.listExpression())
		if res.Err != nil {
			return res
		}
		return res.Success(listExpr)

	case tok.Is(token.LBRACE):
		dictExpr := res.Register(p.dictionaryExpression())
		if res.Err != nil {
			return res
		}
		return res.Success(dictExpr)

	case tok.IsKeyword("whether"):
		ifExpr := res.Register(p.ifExpression())
		if res.Err != nil {
			return res
		}
		return res.Success(ifExpr)

	case tok.IsKeyword("StartCycle"):
		forExpr := res.Register(p.forExpression())
		if res.Err != nil {
			return res
		}
		return res.Success(forExpr)

	case tok.IsKeyword("AsLongAs"):
		whileExpr := res.Register(p.whileExpression())
		if res.Err != nil {
			return res
		}
		return res.Success(whileExpr)

	case tok.IsKeyword("Method"):
		funcDef := res.Register(p.funcDef())
		if res.Err != nil {
			return res
		}
		return res.Success(funcDef)
	}

	return res.Failure(diag.New(diag.InvalidSyntax, tok.Start, tok.End,
		"Expected int, float, identifier, '+', '-' or '('"))
}

func (p *Parser) power() *Result {
	return p.binaryOp(p.call, p.factor, func(t token.Token) bool { return t.Is(token.POWER) })
}

func (p *Parser) factor() *Result {
	res := NewResult()
	tok := p.current

	if tok.Is(token.PLUS) || tok.Is(token.MINUS) {
		res.RegisterAdvancement()
		p.advance()
		factor := res.Register(p.factor())
		if res.Err != nil {
			return res
		}
		return res.Success(ast.NewUnaryOp(tok, factor))
	}

	return p.power()
}

func (p *Parser) term() *Result {
	return p.binaryOp(p.factor, p.factor, func(t token.Token) bool {
		switch t.Kind {
		case token.MULTIPLY, token.DIVIDE, token.INDEX, token.FLOORDIVIDE, token.MODULO:
			return true
		}
		return false
	})
}

func (p *Parser) compExpression() *Result {
	res := NewResult()

	if p.current.IsKeyword("not") {
		operator := p.current
		res.RegisterAdvancement()
		p.advance()

		node := res.Register(p.compExpression())
		if res.Err != nil {
			return res
		}
		return res.Success(ast.NewUnaryOp(operator, node))
	}

	node := res.Register(p.binaryOp(p.arithExpression, p.arithExpression, func(t token.Token) bool {
		switch t.Kind {
		case token.EE, token.NE, token.LT, token.LTE, token.GT, token.GTE:
			return true
		}
		return false
	}))
	if res.Err != nil {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End,
			"Expected int, float, identifier, '+', '-', '(', 'not'"))
	}
	return res.Success(node)
}

func (p *Parser) arithExpression() *Result {
	return p.binaryOp(p.term, p.term, func(t token.Token) bool {
		return t.Is(token.PLUS) || t.Is(token.MINUS)
	})
}

func (p *Parser) expression() *Result {
	res := NewResult()

	if p.current.IsKeyword("take") {
		res.RegisterAdvancement()
		p.advance()

		if !p.current.Is(token.IDENTIFIER) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected identifier"))
		}
		varName := p.current
		res.RegisterAdvancement()
		p.advance()

		if !p.current.Is(token.EQUAL) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '='"))
		}
		res.RegisterAdvancement()
		p.advance()

		expr := res.Register(p.expression())
		if res.Err != nil {
			return res
		}
		return res.Success(ast.NewVarAssign(varName, expr))
	}

	node := res.Register(p.binaryOp(p.compExpression, p.compExpression, func(t token.Token) bool {
		return t.IsKeyword("and") || t.IsKeyword("or")
	}))
	if res.Err != nil {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End,
			"Expected 'take', int, float, identifier, '+', '-', '*', '/'"))
	}
	return res.Success(node)
}

func (p *Parser) funcDef() *Result {
	res := NewResult()
	start := p.current.Start

	if !p.current.IsKeyword("Method") {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected 'Method'"))
	}
	res.RegisterAdvancement()
	p.advance()

	var nameTok *token.Token
	if p.current.Is(token.IDENTIFIER) {
		tok := p.current
		nameTok = &tok
		res.RegisterAdvancement()
		p.advance()

		if !p.current.Is(token.LPAREN) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '('"))
		}
	} else {
		if !p.current.Is(token.LPAREN) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected identifier or '('"))
		}
	}
	res.RegisterAdvancement()
	p.advance()

	var params []token.Token
	if p.current.Is(token.IDENTIFIER) {
		params = append(params, p.current)
		res.RegisterAdvancement()
		p.advance()

		for p.current.Is(token.COMMA) {
			res.RegisterAdvancement()
			p.advance()

			if !p.current.Is(token.IDENTIFIER) {
				return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected identifier"))
			}
			params = append(params, p.current)
			res.RegisterAdvancement()
			p.advance()
		}

		if !p.current.Is(token.RPAREN) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected ',' or ')'"))
		}
	} else {
		if !p.current.Is(token.RPAREN) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected identifier or ')'"))
		}
	}
	res.RegisterAdvancement()
	p.advance()

	if p.current.Is(token.LBRACE) {
		res.RegisterAdvancement()
		p.advance()

		body := res.Register(p.expression())
		if res.Err != nil {
			return res
		}

		if !p.current.Is(token.RBRACE) {
			return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
		}
		res.RegisterAdvancement()
		end := p.advance().End

		return res.Success(ast.NewFuncDef(nameTok, params, body, false, position.NewSpan(start, end)))
	}

	if !p.current.Is(token.NEWLINE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '{' or Newline"))
	}
	res.RegisterAdvancement()
	p.advance()

	body := res.Register(p.statements())
	if res.Err != nil {
		return res
	}

	if !p.current.Is(token.RBRACE) {
		return res.Failure(diag.New(diag.InvalidSyntax, p.current.Start, p.current.End, "Expected '}'"))
	}
	res.RegisterAdvancement()
	end := p.advance().End

	return res.Success(ast.NewFuncDef(nameTok, params, body, true, position.NewSpan(start, end)))
}

// binaryOp implements the distilled-from source's BinaryOperation: parse a
// left-hand side with fn1, then while the current token satisfies match,
// consume it as an operator and fold in a right-hand side parsed with fn2.
func (p *Parser) binaryOp(fn1, fn2 func() *Result, match func(token.Token) bool) *Result {
	res := NewResult()
	left := res.Register(fn1())
	if res.Err != nil {
		return res
	}

	for match(p.current) {
		operator := p.current
		res.RegisterAdvancement()
		p.advance()

		right := res.Register(fn2())
		if res.Err != nil {
			return res
		}
		left = ast.NewBinaryOp(left, operator, right)
	}

	return res.Success(left)
}
