package evaluator

// evalInfixExpression dispatches on the runtime types of both operands.
// The (function, list) pairing is reserved for invocation via '-'; every
// other pairing resolves through the tables below.
func (e *Evaluator) evalInfixExpression(operator string, left, right Object, env *Environment) Object {
	switch {
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerInfixExpression(operator, left.(*Integer), right.(*Integer))
	case left.Type() == FUNCTION_OBJ && right.Type() == LIST_OBJ:
		if operator != "-" {
			return newError("operator %s not supported between %s and %s",
				operator, left.Type(), right.Type())
		}
		return e.applyFunction(left.(*Function), right.(*List), env)
	case left.Type() == LIST_OBJ && right.Type() == INTEGER_OBJ:
		return evalListIntegerInfixExpression(operator, left.(*List), right.(*Integer))
	case left.Type() == INTEGER_OBJ && right.Type() == LIST_OBJ:
		return evalIntegerListInfixExpression(operator, left.(*Integer), right.(*List))
	case left.Type() == LIST_OBJ && right.Type() == LIST_OBJ:
		return evalListListInfixExpression(operator, left.(*List), right.(*List))
	default:
		return newError("operator %s not supported between %s and %s",
			operator, left.Type(), right.Type())
	}
}

func evalIntegerInfixExpression(operator string, left, right *Integer) Object {
	l, r := left.Value, right.Value
	switch operator {
	case "..":
		return boolToInteger(l == r)
	case ".+":
		return boolToInteger(l > r)
	case ".-":
		return boolToInteger(l < r)
	case "+":
		return &Integer{Value: l + r}
	case "-":
		return &Integer{Value: l - r}
	case "*":
		return &Integer{Value: l * r}
	case "/":
		return divideIntegers(l, r)
	case "/+":
		return modIntegers(l, r)
	case "/-":
		return floorDivIntegers(l, r)
	case "*+":
		return powIntegers(l, r)
	case "*-":
		return logIntegers(l, r)
	default:
		return newError("operator %s not supported between %s and %s",
			operator, INTEGER_OBJ, INTEGER_OBJ)
	}
}

// divideIntegers produces a plain integer for an exact quotient. An
// inexact quotient becomes a decimal pair [mantissa, exponent]: the
// dividend is scaled by 10 until the division comes out exact, up to ten
// times, and the scaled quotient is truncated. mantissa*10^exponent is
// the approximation of the true quotient.
func divideIntegers(l, r int64) Object {
	if r == 0 {
		return newError("division by zero")
	}
	if l%r == 0 {
		return &Integer{Value: l / r}
	}

	num := l
	steps := 0
	for num%r != 0 && steps < 10 {
		num *= 10
		steps++
	}
	return &List{Elements: []Object{
		&Integer{Value: num / r},
		&Integer{Value: int64(-steps)},
	}}
}

// modIntegers is the floored modulo: the result takes the sign of the
// divisor, so -7 /+ 3 is 2 and 7 /+ -3 is -2.
func modIntegers(l, r int64) Object {
	if r == 0 {
		return newError("division by zero")
	}
	m := l % r
	if m != 0 && (m < 0) != (r < 0) {
		m += r
	}
	return &Integer{Value: m}
}

// floorDivIntegers rounds the quotient toward negative infinity, so
// -7 /- 3 is -3.
func floorDivIntegers(l, r int64) Object {
	if r == 0 {
		return newError("division by zero")
	}
	q := l / r
	if l%r != 0 && (l < 0) != (r < 0) {
		q--
	}
	return &Integer{Value: q}
}

// powIntegers raises l to the r-th power. A negative exponent yields the
// truncated reciprocal: 0 for |l| > 1, 1 or -1 when l is 1 or -1.
func powIntegers(l, r int64) Object {
	if r >= 0 {
		return &Integer{Value: intPow(l, r)}
	}
	switch {
	case l == 0:
		return newError("zero cannot be raised to a negative power")
	case l == 1:
		return &Integer{Value: 1}
	case l == -1:
		if r%2 == 0 {
			return &Integer{Value: 1}
		}
		return &Integer{Value: -1}
	default:
		return &Integer{Value: 0}
	}
}

// logIntegers computes the floor of log base r of l by repeated
// multiplication, never leaving integer arithmetic. p stays at or below
// l/r before each multiply, so it cannot overflow.
func logIntegers(l, r int64) Object {
	if l <= 0 {
		return newError("logarithm of a non-positive number")
	}
	if r < 2 {
		return newError("logarithm base must be at least 2")
	}
	var k int64
	p := int64(1)
	for p <= l/r {
		p *= r
		k++
	}
	return &Integer{Value: k}
}

func evalListIntegerInfixExpression(operator string, left *List, right *Integer) Object {
	length := int64(len(left.Elements))
	switch operator {
	case "..":
		return boolToInteger(length == right.Value)
	case ".+":
		return boolToInteger(length > right.Value)
	case ".-":
		return boolToInteger(length < right.Value)
	case "+":
		// Appending builds a new list; the operand keeps its elements.
		elements := make([]Object, 0, len(left.Elements)+1)
		elements = append(elements, left.Elements...)
		elements = append(elements, right)
		return &List{Elements: elements}
	case "-":
		idx := right.Value
		if idx < 0 || idx >= length {
			return newError("list index %d out of range (length %d)", idx, length)
		}
		elements := make([]Object, 0, len(left.Elements)-1)
		elements = append(elements, left.Elements[:idx]...)
		elements = append(elements, left.Elements[idx+1:]...)
		return &List{Elements: elements}
	case "/":
		idx := right.Value
		if idx < 0 || idx >= length {
			return newError("list index %d out of range (length %d)", idx, length)
		}
		return left.Elements[idx]
	case "/+":
		// Tail from idx. An index past the end is an empty list.
		idx := right.Value
		if idx < 0 {
			return newError("slice index %d must not be negative", idx)
		}
		if idx > length {
			idx = length
		}
		elements := make([]Object, length-idx)
		copy(elements, left.Elements[idx:])
		return &List{Elements: elements}
	case "/-":
		// Head up to idx, exclusive.
		idx := right.Value
		if idx < 0 {
			return newError("slice index %d must not be negative", idx)
		}
		if idx > length {
			idx = length
		}
		elements := make([]Object, idx)
		copy(elements, left.Elements[:idx])
		return &List{Elements: elements}
	default:
		return newError("operator %s not supported between %s and %s",
			operator, LIST_OBJ, INTEGER_OBJ)
	}
}

// evalIntegerListInfixExpression compares an integer against a list's
// length. Only the three comparisons are defined for this pairing.
func evalIntegerListInfixExpression(operator string, left *Integer, right *List) Object {
	length := int64(len(right.Elements))
	switch operator {
	case "..":
		return boolToInteger(left.Value == length)
	case ".+":
		return boolToInteger(left.Value > length)
	case ".-":
		return boolToInteger(left.Value < length)
	default:
		return newError("operator %s not supported between %s and %s",
			operator, INTEGER_OBJ, LIST_OBJ)
	}
}

func evalListListInfixExpression(operator string, left, right *List) Object {
	switch operator {
	case "..":
		return boolToInteger(objectsEqual(left, right))
	case ".+":
		return boolToInteger(len(left.Elements) > len(right.Elements))
	case ".-":
		return boolToInteger(len(left.Elements) < len(right.Elements))
	case "+":
		// The right list goes in as a single element, not spliced.
		elements := make([]Object, 0, len(left.Elements)+1)
		elements = append(elements, left.Elements...)
		elements = append(elements, right)
		return &List{Elements: elements}
	case "*":
		elements := make([]Object, 0, len(left.Elements)+len(right.Elements))
		elements = append(elements, left.Elements...)
		elements = append(elements, right.Elements...)
		return &List{Elements: elements}
	case "/+":
		return boolToInteger(containsAll(left, right))
	case "/-":
		return boolToInteger(containsAll(right, left))
	default:
		return newError("operator %s not supported between %s and %s",
			operator, LIST_OBJ, LIST_OBJ)
	}
}

// containsAll reports whether every element of members occurs somewhere
// in set, compared structurally.
func containsAll(set, members *List) bool {
	for _, m := range members.Elements {
		found := false
		for _, s := range set.Elements {
			if objectsEqual(s, m) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
