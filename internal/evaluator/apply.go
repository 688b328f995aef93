package evaluator

import (
	"github.com/funvibe/numpad/internal/config"
)

// applyFunction invokes fn with the elements of args as arguments.
// Missing arguments are filled in from the defaults; the caller's list is
// never modified. The body runs in a fresh child of the calling scope
// with *01..*0N bound and the accumulator zeroed, and the call's value is
// whatever the accumulator holds when the body finishes.
func (e *Evaluator) applyFunction(fn *Function, args *List, env *Environment) Object {
	callArgs := args.Elements
	if len(callArgs) < len(fn.Defaults) {
		merged := make([]Object, len(callArgs), len(fn.Defaults))
		copy(merged, callArgs)
		callArgs = append(merged, fn.Defaults[len(callArgs):]...)
	}

	child := NewEnclosedEnvironment(env)
	for i, arg := range callArgs {
		child.Set(config.ParamSlot(i+1), arg)
	}
	child.Set(config.AccumulatorSlot, intZero)

	if ev := e.Logger.Trace(); ev.Enabled() {
		ev.Str("function", fn.Inspect()).Int("args", len(callArgs)).Msg("call")
	}

	if result := e.Eval(fn.Body, child); isError(result) {
		return result
	}

	value, _ := child.Get(config.AccumulatorSlot)
	return value
}
