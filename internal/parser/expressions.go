package parser

import (
	"strconv"

	"github.com/funvibe/numpad/internal/ast"
	"github.com/funvibe/numpad/internal/diagnostics"
	"github.com/funvibe/numpad/internal/token"
)

// Operator precedence tiers, loosest first. Comparisons bind loosest, the
// fused two-character operators tightest. All tiers associate left.
const (
	_ int = iota
	LOWEST
	COMPARE // ..  .+  .-
	SUM     // +  -
	PRODUCT // /  *
	FUSED   // /+  /-  *+  *-
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.ErrP005, p.curToken, "expression nesting too deep")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(diagnostics.ErrP001, p.curToken,
			"unexpected token in expression", p.curToken.Lexeme)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for {
		op, opPrec, ok := p.peekOperator()
		if !ok || precedence >= opPrec {
			return left
		}
		left = p.parseInfixExpression(left, op, opPrec)
		if left == nil {
			return nil
		}
	}
}

// peekOperator reports the binary operator beginning at the peek token,
// if any. Two-character operators need the second token of lookahead. A
// '.' followed by anything other than '.', '+' or '-' is list or
// statement structure, and '/' followed by '.' closes a list, so both
// end the expression instead.
func (p *Parser) peekOperator() (string, int, bool) {
	switch p.peekToken.Type {
	case token.DOT:
		switch p.peekSecond().Type {
		case token.DOT:
			return "..", COMPARE, true
		case token.PLUS:
			return ".+", COMPARE, true
		case token.MINUS:
			return ".-", COMPARE, true
		}
	case token.PLUS:
		return "+", SUM, true
	case token.MINUS:
		return "-", SUM, true
	case token.SLASH:
		switch p.peekSecond().Type {
		case token.PLUS:
			return "/+", FUSED, true
		case token.MINUS:
			return "/-", FUSED, true
		case token.DOT:
			// '/.' never continues an expression
		default:
			return "/", PRODUCT, true
		}
	case token.ASTERISK:
		switch p.peekSecond().Type {
		case token.PLUS:
			return "*+", FUSED, true
		case token.MINUS:
			return "*-", FUSED, true
		default:
			return "*", PRODUCT, true
		}
	}
	return "", 0, false
}

// parseInfixExpression consumes the operator tokens and the right
// operand. Passing the operator's own precedence to parseExpression makes
// every tier left-associative.
func (p *Parser) parseInfixExpression(left ast.Expression, op string, prec int) ast.Expression {
	p.nextToken() // cur = first operator token
	tok := p.curToken
	if len(op) == 2 {
		p.nextToken() // cur = second operator token
	}
	p.nextToken() // cur = first token of the right operand
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(diagnostics.ErrP003, p.curToken,
			"number out of range", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: v}
}

// parseZeroLiteral handles the two roles of a leading zero: alone it is
// the literal 0, directly before a number it negates it ("05" is -5).
func (p *Parser) parseZeroLiteral() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.NUMBER) {
		p.nextToken()
		v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			p.addError(diagnostics.ErrP003, p.curToken,
				"number out of range", p.curToken.Literal)
			return nil
		}
		return &ast.IntegerLiteral{Token: tok, Value: -v}
	}
	return &ast.IntegerLiteral{Token: tok, Value: 0}
}

func (p *Parser) parseSlotReference() ast.Expression {
	tok := p.curToken
	name, ok := p.parseSlotName()
	if !ok {
		return nil
	}
	return &ast.SlotReference{Token: tok, Name: name}
}

// parseListLiteral parses /.e1.e2/. with one or more dot-separated
// elements. The '/' of the closing '/.' is distinguishable from a divide
// because a divide is never followed by '.'.
func (p *Parser) parseListLiteral() ast.Expression {
	lit := &ast.ListLiteral{Token: p.curToken}
	if !p.expectPeek(token.DOT) {
		return nil
	}
	for {
		p.nextToken() // cur = first token of the element
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		lit.Elements = append(lit.Elements, elem)

		if p.peekTokenIs(token.SLASH) && p.peekSecondIs(token.DOT) {
			p.nextToken() // cur = '/'
			p.nextToken() // cur = '.'
			return lit
		}
		if !p.expectPeek(token.DOT) {
			return nil
		}
	}
}
