package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/numpad/internal/ast"
)

type ObjectType string

const (
	INTEGER_OBJ  = "INTEGER"
	LIST_OBJ     = "LIST"
	FUNCTION_OBJ = "FUNCTION"
	ERROR_OBJ    = "ERROR"
)

// Object is a runtime value: an integer, a list, a function, or an error
// in flight.
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Integer is a 64-bit signed integer. Arithmetic wraps on overflow.
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

// List is a mutable sequence. Lists are shared by reference: an indexed
// assignment through one slot is visible through every slot bound to the
// same list. Operators that grow or shrink a list build a new one and
// leave the operand untouched.
type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }

func (l *List) Inspect() string {
	return inspectList(l, make(map[*List]bool))
}

func inspectList(l *List, seen map[*List]bool) string {
	if seen[l] {
		return "[...]"
	}
	seen[l] = true

	parts := make([]string, 0, len(l.Elements))
	for _, el := range l.Elements {
		if inner, ok := el.(*List); ok {
			parts = append(parts, inspectList(inner, seen))
		} else {
			parts = append(parts, el.Inspect())
		}
	}

	delete(seen, l)
	return "[" + strings.Join(parts, ", ") + "]"
}

// Function is a callable: per-parameter default values and a body. A
// function captures nothing from where it was defined; each call runs in
// a fresh child of the calling scope.
type Function struct {
	Name     string
	Defaults []Object
	Body     *ast.BlockStatement
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }

func (f *Function) Inspect() string {
	if f.Name != "" {
		return fmt.Sprintf("fn %s/%d", f.Name, len(f.Defaults))
	}
	return fmt.Sprintf("fn/%d", len(f.Defaults))
}

// Error carries a runtime failure up through evaluation. Line and Column
// are filled in from the nearest node that knows its position.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }

func (e *Error) Inspect() string {
	if e.Line > 0 {
		return fmt.Sprintf("ERROR at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return "ERROR: " + e.Message
}

// maxEqualDepth bounds structural comparison so that self-referential
// lists cannot overflow the Go stack.
const maxEqualDepth = 1000

// objectsEqual compares two values. Integers compare by value, lists by
// length and elementwise equality, functions by identity.
func objectsEqual(a, b Object) bool {
	return objectsEqualDepth(a, b, 0)
}

func objectsEqualDepth(a, b Object, depth int) bool {
	if depth > maxEqualDepth {
		return false
	}
	switch a := a.(type) {
	case *Integer:
		other, ok := b.(*Integer)
		return ok && a.Value == other.Value
	case *List:
		other, ok := b.(*List)
		if !ok || len(a.Elements) != len(other.Elements) {
			return false
		}
		if a == other {
			return true
		}
		for i := range a.Elements {
			if !objectsEqualDepth(a.Elements[i], other.Elements[i], depth+1) {
				return false
			}
		}
		return true
	case *Function:
		other, ok := b.(*Function)
		return ok && a == other
	}
	return false
}
