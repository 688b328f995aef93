// Package evaluator implements the tree-walking runtime: slot scopes, the
// operator tables and function invocation.
package evaluator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/funvibe/numpad/internal/ast"
)

// maxEvalDepth is the maximum nesting depth of Eval calls.
// Prevents stack overflow from infinite recursion in user programs.
const maxEvalDepth = 10000

type Evaluator struct {
	// Context for cancellation between evaluation steps
	Context context.Context

	// Logger receives trace events: slot writes, lookups, operator
	// applications, calls and branch decisions
	Logger zerolog.Logger

	// evalDepth tracks the current nesting depth of Eval calls to prevent stack overflow
	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{Logger: zerolog.Nop()}
}

// Eval evaluates a node. Expressions produce a value; statements produce
// nil, or an *Error when they fail.
func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	// Check recursion depth to prevent Go stack overflow
	e.evalDepth++
	if e.evalDepth > maxEvalDepth {
		e.evalDepth--
		return newError("maximum recursion depth exceeded")
	}
	defer func() { e.evalDepth-- }()

	// Check for cancellation
	if e.Context != nil {
		select {
		case <-e.Context.Done():
			return newError("execution cancelled: %v", e.Context.Err())
		default:
		}
	}

	obj := e.evalCore(node, env)
	if err, ok := obj.(*Error); ok {
		if err.Line == 0 && node != nil {
			if provider, ok := node.(ast.TokenProvider); ok {
				tok := provider.GetToken()
				err.Line = tok.Line
				err.Column = tok.Column
			}
		}
	}
	return obj
}

func (e *Evaluator) evalCore(node ast.Node, env *Environment) Object {
	switch node := node.(type) {
	// Statements
	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, env)
	case *ast.SetStatement:
		return e.evalSetStatement(node, env)
	case *ast.SetIndexedStatement:
		return e.evalSetIndexedStatement(node, env)
	case *ast.DefineStatement:
		return e.evalDefineStatement(node, env)
	case *ast.IfStatement:
		return e.evalIfStatement(node, env)
	case *ast.WhileStatement:
		return e.evalWhileStatement(node, env)

	// Expressions
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *ast.SlotReference:
		return e.evalSlotReference(node, env)
	case *ast.ListLiteral:
		return e.evalListLiteral(node, env)
	case *ast.InfixExpression:
		return e.evalInfix(node, env)
	}
	return newError("unknown node type: %T", node)
}

func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) Object {
	for _, stmt := range program.Statements {
		if result := e.Eval(stmt, env); isError(result) {
			return result
		}
	}
	return nil
}

// evalBlockStatement runs the block in the current environment. Blocks
// never open a scope of their own; only a function call does.
func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *Environment) Object {
	for _, stmt := range block.Statements {
		if result := e.Eval(stmt, env); isError(result) {
			return result
		}
	}
	return nil
}

func (e *Evaluator) evalSetStatement(node *ast.SetStatement, env *Environment) Object {
	value := e.Eval(node.Value, env)
	if isError(value) {
		return value
	}
	env.Set(node.Name, value)
	if ev := e.Logger.Trace(); ev.Enabled() {
		ev.Str("slot", node.Name).Str("value", value.Inspect()).Msg("set")
	}
	return nil
}

// evalSetIndexedStatement writes through an index path into a list held
// by a slot, mutating the list in place. Every binding of the same list
// observes the write.
func (e *Evaluator) evalSetIndexedStatement(node *ast.SetIndexedStatement, env *Environment) Object {
	value := e.Eval(node.Value, env)
	if isError(value) {
		return value
	}

	target, ok := env.Get(node.Name)
	if !ok {
		return newError("slot %s is not defined", node.Name)
	}
	list, isList := target.(*List)
	if !isList {
		return newError("slot %s does not hold a list (got %s)", node.Name, target.Type())
	}

	for i, step := range node.Path {
		idxObj := e.Eval(step, env)
		if isError(idxObj) {
			return idxObj
		}
		idx, isInt := idxObj.(*Integer)
		if !isInt {
			return newError("list index must be an integer (got %s)", idxObj.Type())
		}
		if idx.Value < 0 || idx.Value >= int64(len(list.Elements)) {
			return newError("list index %d out of range (length %d)", idx.Value, len(list.Elements))
		}

		if i == len(node.Path)-1 {
			list.Elements[idx.Value] = value
			break
		}
		next, isList := list.Elements[idx.Value].(*List)
		if !isList {
			return newError("step %d of %s does not hold a list (got %s)",
				i+1, node.Name, list.Elements[idx.Value].Type())
		}
		list = next
	}

	if ev := e.Logger.Trace(); ev.Enabled() {
		ev.Str("slot", node.Name).Str("value", value.Inspect()).Msg("set indexed")
	}
	return nil
}

func (e *Evaluator) evalDefineStatement(node *ast.DefineStatement, env *Environment) Object {
	defaults := make([]Object, len(node.Defaults))
	for i, d := range node.Defaults {
		defaults[i] = &Integer{Value: d}
	}
	fn := &Function{
		Name:     node.Name,
		Defaults: defaults,
		Body:     node.Body,
	}
	env.Set(node.Name, fn)
	e.Logger.Trace().Str("slot", node.Name).Int("params", len(defaults)).Msg("define")
	return nil
}

func (e *Evaluator) evalIfStatement(node *ast.IfStatement, env *Environment) Object {
	condition := e.Eval(node.Condition, env)
	if isError(condition) {
		return condition
	}
	if isTruthy(condition) {
		e.Logger.Trace().Msg("if passed")
		return e.Eval(node.Consequence, env)
	}
	e.Logger.Trace().Msg("if failed")
	if node.Alternative != nil {
		return e.Eval(node.Alternative, env)
	}
	return nil
}

func (e *Evaluator) evalWhileStatement(node *ast.WhileStatement, env *Environment) Object {
	for {
		condition := e.Eval(node.Condition, env)
		if isError(condition) {
			return condition
		}
		if !isTruthy(condition) {
			e.Logger.Trace().Msg("while ended")
			return nil
		}
		e.Logger.Trace().Msg("while continued")
		if result := e.Eval(node.Body, env); isError(result) {
			return result
		}
	}
}

func (e *Evaluator) evalSlotReference(node *ast.SlotReference, env *Environment) Object {
	value, ok := env.Get(node.Name)
	if !ok {
		return newError("slot %s is not defined", node.Name)
	}
	if ev := e.Logger.Trace(); ev.Enabled() {
		ev.Str("slot", node.Name).Str("value", value.Inspect()).Msg("lookup")
	}
	return value
}

func (e *Evaluator) evalListLiteral(node *ast.ListLiteral, env *Environment) Object {
	elements := make([]Object, 0, len(node.Elements))
	for _, el := range node.Elements {
		value := e.Eval(el, env)
		if isError(value) {
			return value
		}
		elements = append(elements, value)
	}
	return &List{Elements: elements}
}

func (e *Evaluator) evalInfix(node *ast.InfixExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	result := e.evalInfixExpression(node.Operator, left, right, env)
	if ev := e.Logger.Trace(); ev.Enabled() {
		ev.Str("op", node.Operator).
			Str("left", left.Inspect()).
			Str("right", right.Inspect()).
			Str("result", result.Inspect()).
			Msg("operator")
	}
	return result
}
