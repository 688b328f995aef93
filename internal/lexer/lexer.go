package lexer

import (
	"unicode/utf8"

	"github.com/funvibe/numpad/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	prev         rune // raw char immediately before the current one
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	// The start of input counts as a line start, so leading dots are
	// indentation there too.
	l.prev = '\n'
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.prev = l.ch

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '\n':
		tok = newToken(token.NEWLINE, l.ch, l.line, l.column)
	case '.':
		tok = newToken(token.DOT, l.ch, l.line, l.column)
	case '/':
		tok = newToken(token.SLASH, l.ch, l.line, l.column)
	case '*':
		tok = newToken(token.ASTERISK, l.ch, l.line, l.column)
	case '-':
		tok = newToken(token.MINUS, l.ch, l.line, l.column)
	case '+':
		tok = newToken(token.PLUS, l.ch, l.line, l.column)
	case '0':
		// A zero never extends into a number: "00" is two ZERO tokens,
		// "05" is ZERO NUMBER.
		tok = newToken(token.ZERO, l.ch, l.line, l.column)
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: l.line, Column: l.column}
	default:
		if isDigit(l.ch) {
			line, col := l.line, l.column
			literal := l.readNumber()
			return token.Token{Type: token.NUMBER, Lexeme: literal, Literal: literal, Line: line, Column: col}
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

// Tokenize consumes the whole input and returns the token slice,
// terminated by an EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\r' {
			l.readChar()
		}

		// A comment runs to the end of the line and consumes the newline,
		// so a trailing comment swallows the statement separator.
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			if l.ch == '\n' {
				l.readChar()
			}
			continue
		}

		// A dot run directly after a newline is indentation, not DOT tokens.
		if l.ch == '.' && l.prev == '\n' {
			for l.ch == '.' {
				l.readChar()
			}
			continue
		}

		return
	}
}

// readNumber consumes a digit run starting with 1-9. Interior zeros
// belong to the number; only a leading zero lexes as ZERO.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) || l.ch == '0' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func isDigit(ch rune) bool {
	return ch >= '1' && ch <= '9'
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}
