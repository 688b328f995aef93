package config

import "strconv"

// Version is the interpreter version reported by --version.
const Version = "0.3.0"

const SourceFileExt = ".npd"

// SourceFileExtensions are the recognized source file extensions, in
// resolution order.
var SourceFileExtensions = []string{".npd", ".txt"}

// DefaultLibDir is where unit resolution falls back when a unit is not
// found next to the entry file.
const DefaultLibDir = "lib"

// DefaultParamDelimiter separates the values of the --param argument.
const DefaultParamDelimiter = ","

// Well-known slot names
const (
	SlotSigil = "*"

	// AccumulatorSlot receives the result of a program or function call.
	AccumulatorSlot = "*00"
)

// ParamSlot names the slot seeded with the value at the given index:
// ParamSlot(0) is the accumulator, ParamSlot(1) the first parameter, and
// the tenth parameter lands in "*010".
func ParamSlot(i int) string {
	return SlotSigil + "0" + strconv.Itoa(i)
}
