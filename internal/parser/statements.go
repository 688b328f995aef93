package parser

import (
	"fmt"
	"strconv"

	"github.com/funvibe/numpad/internal/ast"
	"github.com/funvibe/numpad/internal/diagnostics"
	"github.com/funvibe/numpad/internal/token"
)

// parseStatement dispatches on the marker after the introducing newline:
// '*' assigns or defines, '/' conditions, '+/' loops. curToken is the
// newline; the marker is the peek token.
func (p *Parser) parseStatement() ast.Statement {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.ErrP005, p.peekToken, "statement nesting too deep")
		p.skipToNewline()
		return nil
	}

	switch p.peekToken.Type {
	case token.ASTERISK:
		p.nextToken()
		return p.parseSetStatement()
	case token.SLASH:
		p.nextToken()
		return p.parseIfStatement()
	case token.PLUS:
		p.nextToken()
		return p.parseWhileStatement()
	default:
		p.addError(diagnostics.ErrP001, p.peekToken,
			"expected a statement", p.peekToken.Lexeme)
		p.skipToNewline()
		return nil
	}
}

// parseSetStatement parses the three statement forms that start with a
// slot: plain assignment, indexed assignment and function definition. The
// form is decided by the token after the slot name: '/' starts an index
// path, '.' at end of line starts a definition, '.' followed by an
// expression is an assignment.
func (p *Parser) parseSetStatement() ast.Statement {
	tok := p.curToken // '*'
	name, ok := p.parseSlotName()
	if !ok {
		p.skipToNewline()
		return nil
	}

	switch {
	case p.peekTokenIs(token.SLASH):
		return p.parseSetIndexedStatement(tok, name)
	case p.peekTokenIs(token.DOT) && p.peekSecondIs(token.NEWLINE):
		p.nextToken() // cur = '.'
		return p.parseDefineStatement(tok, name)
	case p.peekTokenIs(token.DOT):
		p.nextToken() // cur = '.'
		p.nextToken() // cur = first expression token
		value := p.parseExpression(LOWEST)
		if value == nil {
			p.skipToNewline()
			return nil
		}
		return &ast.SetStatement{Token: tok, Name: name, Value: value}
	default:
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected '.' or '/' after slot name", p.peekToken.Lexeme)
		p.skipToNewline()
		return nil
	}
}

// parseSlotName reads the digits of a slot reference, curToken being the
// '*' sigil. "*5" and "*05" are distinct names; "*00" is the accumulator.
func (p *Parser) parseSlotName() (string, bool) {
	switch {
	case p.peekTokenIs(token.NUMBER):
		p.nextToken()
		return "*" + p.curToken.Literal, true
	case p.peekTokenIs(token.ZERO):
		p.nextToken()
		switch {
		case p.peekTokenIs(token.NUMBER):
			p.nextToken()
			return "*0" + p.curToken.Literal, true
		case p.peekTokenIs(token.ZERO):
			p.nextToken()
			return "*00", true
		}
		p.addError(diagnostics.ErrP003, p.peekToken,
			"malformed slot name", p.peekToken.Lexeme)
		return "", false
	default:
		p.addError(diagnostics.ErrP003, p.peekToken,
			"malformed slot name", p.peekToken.Lexeme)
		return "", false
	}
}

func (p *Parser) parseSetIndexedStatement(tok token.Token, name string) ast.Statement {
	stmt := &ast.SetIndexedStatement{Token: tok, Name: name}

	for p.peekTokenIs(token.SLASH) {
		p.nextToken() // cur = '/'
		step := p.parseIndexStep()
		if step == nil {
			p.skipToNewline()
			return nil
		}
		stmt.Path = append(stmt.Path, step)
	}
	if !p.expectPeek(token.DOT) {
		p.skipToNewline()
		return nil
	}
	p.nextToken() // cur = first expression token
	value := p.parseExpression(LOWEST)
	if value == nil {
		p.skipToNewline()
		return nil
	}
	stmt.Value = value
	return stmt
}

// parseIndexStep parses one step of an index path: a number, a zero or a
// slot reference. Steps resolve to list indices at execution time.
func (p *Parser) parseIndexStep() ast.Expression {
	switch {
	case p.peekTokenIs(token.NUMBER):
		p.nextToken()
		v, ok := p.parseNumberToken()
		if !ok {
			return nil
		}
		return &ast.IntegerLiteral{Token: p.curToken, Value: v}
	case p.peekTokenIs(token.ZERO):
		p.nextToken()
		return &ast.IntegerLiteral{Token: p.curToken, Value: 0}
	case p.peekTokenIs(token.ASTERISK):
		p.nextToken()
		tok := p.curToken
		name, ok := p.parseSlotName()
		if !ok {
			return nil
		}
		return &ast.SlotReference{Token: tok, Name: name}
	default:
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected an index after '/'", p.peekToken.Lexeme)
		return nil
	}
}

// parseDefineStatement parses a function definition. The header "*N ."
// ends its line; the following lines form the parameter list, any number
// of "<index> . . <value>" overrides closed by a "<count> ." line, and
// then the body block.
func (p *Parser) parseDefineStatement(tok token.Token, name string) ast.Statement {
	stmt := &ast.DefineStatement{Token: tok, Name: name}

	type override struct {
		tok   token.Token
		index int64
		value int64
	}
	var overrides []override
	var count int64

	for {
		if !p.expectPeek(token.NEWLINE) {
			p.skipToNewline()
			return nil
		}
		var n int64
		var nTok token.Token
		switch {
		case p.peekTokenIs(token.NUMBER):
			p.nextToken()
			nTok = p.curToken
			v, ok := p.parseNumberToken()
			if !ok {
				p.skipToNewline()
				return nil
			}
			n = v
		case p.peekTokenIs(token.ZERO):
			p.nextToken()
			nTok = p.curToken
		default:
			p.addError(diagnostics.ErrP004, p.peekToken,
				"expected a parameter count or override", p.peekToken.Lexeme)
			p.skipToNewline()
			return nil
		}
		if !p.expectPeek(token.DOT) {
			p.skipToNewline()
			return nil
		}
		if !p.peekTokenIs(token.DOT) {
			count = n
			break
		}
		p.nextToken() // cur = second '.'
		value, ok := p.parseSignedNumber()
		if !ok {
			p.skipToNewline()
			return nil
		}
		overrides = append(overrides, override{tok: nTok, index: n, value: value})
	}

	if count > MaxParameterCount {
		p.addError(diagnostics.ErrP004, p.curToken,
			fmt.Sprintf("parameter count exceeds %d", MaxParameterCount))
		p.skipToNewline()
		return nil
	}

	stmt.Defaults = make([]int64, count)
	// Overrides textually closer to the count line apply first, so the
	// first override of an index wins.
	for i := len(overrides) - 1; i >= 0; i-- {
		o := overrides[i]
		if o.index >= count {
			p.addError(diagnostics.ErrP004, o.tok,
				fmt.Sprintf("override index %d out of range for parameter count %d", o.index, count))
			continue
		}
		stmt.Defaults[o.index] = o.value
	}

	stmt.Body = p.parseBlock(tok, false)
	return stmt
}

// parseSignedNumber reads an integer where a leading zero negates the
// number that follows it: "5" is 5, "05" is -5, a lone "0" is zero.
func (p *Parser) parseSignedNumber() (int64, bool) {
	switch {
	case p.peekTokenIs(token.NUMBER):
		p.nextToken()
		return p.parseNumberToken()
	case p.peekTokenIs(token.ZERO):
		p.nextToken()
		if p.peekTokenIs(token.NUMBER) {
			p.nextToken()
			v, ok := p.parseNumberToken()
			if !ok {
				return 0, false
			}
			return -v, true
		}
		return 0, true
	default:
		p.addError(diagnostics.ErrP004, p.peekToken,
			"expected an integer value", p.peekToken.Lexeme)
		return 0, false
	}
}

func (p *Parser) parseNumberToken() (int64, bool) {
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(diagnostics.ErrP003, p.curToken,
			"number out of range", p.curToken.Literal)
		return 0, false
	}
	return v, true
}

// parseIfStatement parses "/ <condition>" and its block. A '-' line after
// the block introduces the else branch; it binds to the innermost
// conditional whose block it terminates.
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		p.skipToNewline()
		return nil
	}
	stmt.Consequence = p.parseBlock(stmt.Token, true)
	if p.peekTokenIs(token.MINUS) {
		p.nextToken() // cur = '-'
		stmt.Alternative = p.parseBlock(p.curToken, false)
	}
	return stmt
}

// parseWhileStatement parses "+/ <condition>" and its block, curToken
// being the '+' marker.
func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	if !p.expectPeek(token.SLASH) {
		p.skipToNewline()
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		p.skipToNewline()
		return nil
	}
	stmt.Body = p.parseBlock(stmt.Token, false)
	return stmt
}
