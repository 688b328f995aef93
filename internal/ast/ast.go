// Package ast defines the statement tree produced by the parser and
// consumed by the evaluator. String() renders a canonical, readable form
// (not necessarily re-parseable source) used by tests and trace output.
package ast

import (
	"strconv"
	"strings"

	"github.com/funvibe/numpad/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
}

// TokenProvider is implemented by nodes that can report the token they
// were parsed from, for error positions.
type TokenProvider interface {
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every statement tree the parser produces.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	parts := make([]string, 0, len(p.Statements))
	for _, s := range p.Statements {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "\n")
}

// BlockStatement is the body of a definition, conditional or loop.
type BlockStatement struct {
	Token      token.Token // the token introducing the block owner
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

func (bs *BlockStatement) String() string {
	parts := make([]string, 0, len(bs.Statements))
	for _, s := range bs.Statements {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "; ")
}

// SetStatement assigns an expression result to a slot: *5.<expr>
type SetStatement struct {
	Token token.Token // the '*' token
	Name  string      // slot name including the sigil, e.g. "*5", "*00"
	Value Expression
}

func (ss *SetStatement) statementNode()       {}
func (ss *SetStatement) TokenLiteral() string { return ss.Token.Lexeme }
func (ss *SetStatement) GetToken() token.Token {
	if ss == nil {
		return token.Token{}
	}
	return ss.Token
}

func (ss *SetStatement) String() string {
	return ss.Name + " . " + ss.Value.String()
}

// SetIndexedStatement assigns into a list element: *5/1/*3.<expr>
// Path steps are integer literals or slot references, resolved at
// execution time.
type SetIndexedStatement struct {
	Token token.Token // the '*' token
	Name  string
	Path  []Expression
	Value Expression
}

func (sis *SetIndexedStatement) statementNode()       {}
func (sis *SetIndexedStatement) TokenLiteral() string { return sis.Token.Lexeme }
func (sis *SetIndexedStatement) GetToken() token.Token {
	if sis == nil {
		return token.Token{}
	}
	return sis.Token
}

func (sis *SetIndexedStatement) String() string {
	var out strings.Builder
	out.WriteString(sis.Name)
	for _, step := range sis.Path {
		out.WriteString("/")
		out.WriteString(step.String())
	}
	out.WriteString(" . ")
	out.WriteString(sis.Value.String())
	return out.String()
}

// DefineStatement binds a function to a slot. Defaults holds one value per
// parameter, zero unless overridden in the parameter list.
type DefineStatement struct {
	Token    token.Token // the '*' token
	Name     string
	Defaults []int64
	Body     *BlockStatement
}

func (ds *DefineStatement) statementNode()       {}
func (ds *DefineStatement) TokenLiteral() string { return ds.Token.Lexeme }
func (ds *DefineStatement) GetToken() token.Token {
	if ds == nil {
		return token.Token{}
	}
	return ds.Token
}

func (ds *DefineStatement) String() string {
	defaults := make([]string, 0, len(ds.Defaults))
	for _, d := range ds.Defaults {
		defaults = append(defaults, strconv.FormatInt(d, 10))
	}
	return ds.Name + " . fn(" + strings.Join(defaults, ", ") + ") { " + ds.Body.String() + " }"
}

// IfStatement runs Consequence when the condition is truthy, otherwise the
// optional Alternative.
type IfStatement struct {
	Token       token.Token // the '/' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

func (is *IfStatement) String() string {
	out := "if " + is.Condition.String() + " { " + is.Consequence.String() + " }"
	if is.Alternative != nil {
		out += " else { " + is.Alternative.String() + " }"
	}
	return out
}

// WhileStatement re-evaluates the condition before each iteration.
type WhileStatement struct {
	Token     token.Token // the '+' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " { " + ws.Body.String() + " }"
}

// IntegerLiteral is a number, possibly negative ("05" is -5).
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}

func (il *IntegerLiteral) String() string { return strconv.FormatInt(il.Value, 10) }

// SlotReference reads a slot: *5, *05, *00.
type SlotReference struct {
	Token token.Token // the '*' token
	Name  string      // including the sigil
}

func (sr *SlotReference) expressionNode()      {}
func (sr *SlotReference) TokenLiteral() string { return sr.Token.Lexeme }
func (sr *SlotReference) GetToken() token.Token {
	if sr == nil {
		return token.Token{}
	}
	return sr.Token
}

func (sr *SlotReference) String() string { return sr.Name }

// ListLiteral is /.e1.e2/. with at least one element.
type ListLiteral struct {
	Token    token.Token // the opening '/' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token {
	if ll == nil {
		return token.Token{}
	}
	return ll.Token
}

func (ll *ListLiteral) String() string {
	parts := make([]string, 0, len(ll.Elements))
	for _, el := range ll.Elements {
		parts = append(parts, el.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// InfixExpression is a binary operation. Operator is the surface form,
// one of: .. .+ .- + - * / /+ /- *+ *-
type InfixExpression struct {
	Token    token.Token // the first operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}
