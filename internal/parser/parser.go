// Package parser turns the token stream into a statement tree. Statements
// are introduced by a newline and a marker token; blocks are closed by a
// blank line. The grammar has no keywords, so dispatch works entirely on
// one or two tokens of lookahead.
package parser

import (
	"fmt"

	"github.com/funvibe/numpad/internal/ast"
	"github.com/funvibe/numpad/internal/diagnostics"
	"github.com/funvibe/numpad/internal/pipeline"
	"github.com/funvibe/numpad/internal/token"
)

// MaxRecursionDepth bounds statement and expression nesting so malformed
// input degrades into a diagnostic instead of a stack overflow.
const MaxRecursionDepth = 500

// MaxParameterCount bounds the declared parameter count of a definition.
const MaxParameterCount = 255

type prefixParseFn func() ast.Expression

type Parser struct {
	tokens []token.Token
	pos    int // index of the token after peekToken

	curToken  token.Token
	peekToken token.Token

	ctx   *pipeline.PipelineContext
	depth int

	prefixParseFns map[token.TokenType]prefixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	// Start of input counts as a line boundary, so a program whose first
	// unit body omits the blank line after its header still parses.
	if len(tokens) == 0 || tokens[0].Type != token.NEWLINE {
		tokens = append([]token.Token{{Type: token.NEWLINE, Lexeme: "\n", Line: 1, Column: 1}}, tokens...)
	}
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.NUMBER:   p.parseIntegerLiteral,
		token.ZERO:     p.parseZeroLiteral,
		token.ASTERISK: p.parseSlotReference,
		token.SLASH:    p.parseListLiteral,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.tokenAt(p.pos)
	p.pos++
}

func (p *Parser) tokenAt(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return token.Token{Type: token.EOF}
}

// peekSecond is the token after peekToken. Two-character operators and
// block terminators need this second token of lookahead.
func (p *Parser) peekSecond() token.Token {
	return p.tokenAt(p.pos)
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }
func (p *Parser) peekSecondIs(t token.TokenType) bool {
	return p.peekSecond().Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(diagnostics.ErrP002, p.peekToken,
		fmt.Sprintf("expected next token to be %s", t), p.peekToken.Lexeme)
	return false
}

func (p *Parser) addError(code string, tok token.Token, message string, got ...interface{}) {
	err := diagnostics.NewError(code, tok, message, got...)
	err.File = p.ctx.FilePath
	p.ctx.Errors = append(p.ctx.Errors, err)
}

// skipToNewline advances to just before the next newline so statement
// parsing can resynchronize after an error.
func (p *Parser) skipToNewline() {
	for !p.curTokenIs(token.EOF) && !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream. Every statement starts on
// its own line; blank lines between top-level statements are tolerated,
// which keeps concatenated unit bodies parseable regardless of trailing
// newlines in the source files.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.NEWLINE) {
			p.addError(diagnostics.ErrP001, p.curToken,
				"statements must start on a new line", p.curToken.Lexeme)
			p.skipToNewline()
			p.nextToken()
			continue
		}
		if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

// parseBlock parses statements until a blank line (or end of input)
// closes the block. The closing newline is consumed; the one after it is
// left for the enclosing statement. With stopAtElse a '-' line also
// terminates the block, leaving the '-' as the peek token.
func (p *Parser) parseBlock(tok token.Token, stopAtElse bool) *ast.BlockStatement {
	block := &ast.BlockStatement{Token: tok}

	for {
		if p.peekTokenIs(token.EOF) {
			p.nextToken()
			return block
		}
		if !p.peekTokenIs(token.NEWLINE) {
			p.addError(diagnostics.ErrP001, p.peekToken,
				"expected end of line", p.peekToken.Lexeme)
			p.skipToNewline()
			continue
		}
		if p.peekSecondIs(token.NEWLINE) || p.peekSecondIs(token.EOF) {
			p.nextToken() // consume the closing newline
			return block
		}
		if stopAtElse && p.peekSecondIs(token.MINUS) {
			p.nextToken() // consume the closing newline, '-' becomes peek
			return block
		}

		p.nextToken() // cur = statement intro newline
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
}
