// Package diagnostics defines the coded, positional errors produced by the
// front end and the module resolver. Runtime errors travel as evaluator
// error objects and are converted to an R001 diagnostic at the backend
// boundary.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/numpad/internal/token"
)

const (
	// Lexer
	ErrL001 = "L001" // illegal character

	// Parser
	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // expected a specific token
	ErrP003 = "P003" // malformed slot or number
	ErrP004 = "P004" // malformed parameter list
	ErrP005 = "P005" // recursion depth limit exceeded

	// Modules
	ErrM001 = "M001" // unit not found
	ErrM002 = "M002" // import cycle

	// Runtime
	ErrR001 = "R001" // runtime error
)

// Error is a diagnostic with a stable code and a source position.
type Error struct {
	Code    string
	Message string
	File    string
	Line    int
	Column  int
}

// NewError builds a diagnostic from a token. Extra arguments name the
// offending input and are appended as "(got 'x')".
func NewError(code string, tok token.Token, message string, got ...interface{}) *Error {
	if len(got) > 0 {
		message = fmt.Sprintf("%s (got '%v')", message, got[0])
	}
	return &Error{
		Code:    code,
		Message: message,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (e *Error) Error() string {
	pos := e.File
	if e.Line > 0 {
		pos = fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
	}
	if pos == "" {
		return fmt.Sprintf("[%s] error: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: [%s] error: %s", pos, e.Code, e.Message)
}
