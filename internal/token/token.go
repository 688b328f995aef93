package token

type TokenType string

// Token is a single lexical unit of a numpad program.
// Lexeme holds the raw source text, Literal the processed value
// (for single-character tokens the two are identical).
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Structural
	NEWLINE TokenType = "NEWLINE" // statement separator and block terminator
	DOT     TokenType = "DOT"

	// Operator characters. Two-character operators (.., .+, .-, /+, /-,
	// *+, *-) are combined by the parser, not the lexer.
	SLASH    TokenType = "SLASH"
	ASTERISK TokenType = "ASTERISK"
	MINUS    TokenType = "MINUS"
	PLUS     TokenType = "PLUS"

	// Literals. A standalone '0' never extends into a number, so "05" is
	// ZERO NUMBER (a negative literal) and "00" is ZERO ZERO.
	NUMBER TokenType = "NUMBER"
	ZERO   TokenType = "ZERO"
)
