package backend_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/numpad/internal/ast"
	"github.com/funvibe/numpad/internal/backend"
	"github.com/funvibe/numpad/internal/evaluator"
	"github.com/funvibe/numpad/internal/lexer"
	"github.com/funvibe/numpad/internal/parser"
	"github.com/funvibe/numpad/internal/pipeline"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(source)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		var msgs []string
		for _, e := range ctx.Errors {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("parsing failed:\n%s\nsource: %q", strings.Join(msgs, "\n"), source)
	}
	return ctx.AstRoot
}

func TestRunResultIsTheAccumulator(t *testing.T) {
	result, err := backend.NewTreeWalk().RunProgram(parseSource(t, "*00 . 2 + 3\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "5", result.Inspect())
}

func TestRunDefaultResultIsZero(t *testing.T) {
	result, err := backend.NewTreeWalk().RunProgram(parseSource(t, ""), nil)
	require.NoError(t, err)
	assert.Equal(t, "0", result.Inspect())
}

func TestRunSeedsParameters(t *testing.T) {
	program := parseSource(t, "*00 . *01 + *02\n")
	result, err := backend.NewTreeWalk().RunProgram(program, []int64{7, 8, 9})
	require.NoError(t, err)
	assert.Equal(t, "17", result.Inspect())
}

// The accumulator is zeroed after seeding, so the value seeded into *00
// is gone before the first statement runs: only parameters past the
// first are readable.
func TestFirstParameterIsClobbered(t *testing.T) {
	program := parseSource(t, "*5 . *00\n")
	result, err := backend.NewTreeWalk().RunProgram(program, []int64{7})
	require.NoError(t, err)
	assert.Equal(t, "0", result.Inspect())
}

// Runtime failures are results, not Go errors: the caller decides how to
// surface them.
func TestRuntimeErrorComesBackAsObject(t *testing.T) {
	result, err := backend.NewTreeWalk().RunProgram(parseSource(t, "*00 . 1 / 0\n"), nil)
	require.NoError(t, err)
	errObj, ok := result.(*evaluator.Error)
	require.True(t, ok, "expected an error object, got %v", result)
	assert.Equal(t, "division by zero", errObj.Message)
}

func TestRunRefusesWithoutProgram(t *testing.T) {
	ctx := pipeline.NewPipelineContext("")
	_, err := backend.NewTreeWalk().Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no program to execute")
}

func TestName(t *testing.T) {
	assert.Equal(t, "tree-walk", backend.NewTreeWalk().Name())
}
