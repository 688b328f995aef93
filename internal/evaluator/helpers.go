package evaluator

import "fmt"

var (
	intZero = &Integer{Value: 0}
	intOne  = &Integer{Value: 1}
)

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

// isTruthy applies the language's truth rule: an integer is true when
// non-zero, a list when non-empty, a function always.
func isTruthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Integer:
		return obj.Value != 0
	case *List:
		return len(obj.Elements) > 0
	case *Function:
		return true
	}
	return false
}

func boolToInteger(v bool) *Integer {
	if v {
		return intOne
	}
	return intZero
}

func intPow(n, m int64) int64 {
	if m < 0 {
		return 0
	}
	if m == 0 {
		return 1
	}
	var result int64 = 1
	for i := int64(0); i < m; i++ {
		result *= n
	}
	return result
}
