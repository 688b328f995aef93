package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/numpad/internal/ast"
	"github.com/funvibe/numpad/internal/diagnostics"
	"github.com/funvibe/numpad/internal/lexer"
	"github.com/funvibe/numpad/internal/parser"
	"github.com/funvibe/numpad/internal/pipeline"
)

// parse runs the lexer and the parser over input and returns the program
// together with any diagnostics.
func parse(t *testing.T, input string) (*ast.Program, []*diagnostics.Error) {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	return ctx.AstRoot, ctx.Errors
}

// parseClean parses input and fails the test on any diagnostic.
func parseClean(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, errs := parse(t, input)
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("parsing failed:\n%s\ninput: %q", strings.Join(msgs, "\n"), input)
	}
	return program
}

func TestParseProgram(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"simple_set",
			"*5 . 3\n",
			"*5 . 3",
		},
		{
			"set_without_spaces",
			"*5.3\n",
			"*5 . 3",
		},
		{
			"set_without_trailing_newline",
			"*5 . 3",
			"*5 . 3",
		},
		{
			"negative_literal",
			"*5 . 05\n",
			"*5 . -5",
		},
		{
			"zero_literal",
			"*5 . 0\n",
			"*5 . 0",
		},
		{
			"padded_slot_is_distinct",
			"*05 . *00\n",
			"*05 . *00",
		},
		{
			"sum_left_associative",
			"*5 . 1 - 2 - 3\n",
			"*5 . ((1 - 2) - 3)",
		},
		{
			"product_binds_tighter_than_sum",
			"*5 . 1 + 2 * 3\n",
			"*5 . (1 + (2 * 3))",
		},
		{
			"comparison_binds_loosest",
			"*5 . 1 + 2 .. 3\n",
			"*5 . ((1 + 2) .. 3)",
		},
		{
			"comparisons_left_associative",
			"*5 . 1 .. 2 .+ 3 .- 4\n",
			"*5 . (((1 .. 2) .+ 3) .- 4)",
		},
		{
			"fused_binds_tightest",
			"*5 . 2 * 3 *+ 2\n",
			"*5 . (2 * (3 *+ 2))",
		},
		{
			"fused_left_associative",
			"*5 . 2 *+ 3 *+ 2\n",
			"*5 . ((2 *+ 3) *+ 2)",
		},
		{
			"floored_modulo_above_divide",
			"*5 . 8 / 2 /+ 3\n",
			"*5 . (8 / (2 /+ 3))",
		},
		{
			"floor_division",
			"*5 . 8 /- 3\n",
			"*5 . (8 /- 3)",
		},
		{
			"floor_logarithm",
			"*5 . 9 *- 2\n",
			"*5 . (9 *- 2)",
		},
		{
			"negative_operand",
			"*5 . 1 + 05\n",
			"*5 . (1 + -5)",
		},
		{
			"list_literal",
			"*5 . /.1.2.3/.\n",
			"*5 . [1, 2, 3]",
		},
		{
			"singleton_list",
			"*5 . /.7/.\n",
			"*5 . [7]",
		},
		{
			"nested_list",
			"*5 . /./.1/..2/.\n",
			"*5 . [[1], 2]",
		},
		{
			"list_of_expressions",
			"*5 . /.1 + 2.*6/.\n",
			"*5 . [(1 + 2), *6]",
		},
		{
			"comparison_inside_list",
			"*5 . /.1 .. 2.3/.\n",
			"*5 . [(1 .. 2), 3]",
		},
		{
			"divide_after_list_close",
			"*5 . /.1.2/. / 2\n",
			"*5 . ([1, 2] / 2)",
		},
		{
			"invocation",
			"*5 . *9 - /.1.2/.\n",
			"*5 . (*9 - [1, 2])",
		},
		{
			"set_indexed",
			"*5/0 . 7\n",
			"*5/0 . 7",
		},
		{
			"set_indexed_path",
			"*5/1/0/*6 . 8\n",
			"*5/1/0/*6 . 8",
		},
		{
			"define_no_params",
			"*9 .\n0 .\n*00 . 1\n",
			"*9 . fn() { *00 . 1 }",
		},
		{
			"define_with_defaults",
			"*9 .\n0 . . 10\n1 . . 20\n2 .\n*00 . *01 + *02\n",
			"*9 . fn(10, 20) { *00 . (*01 + *02) }",
		},
		{
			"define_unset_defaults_are_zero",
			"*9 .\n1 . . 7\n3 .\n*00 . *02\n",
			"*9 . fn(0, 7, 0) { *00 . *02 }",
		},
		{
			"define_negative_default",
			"*9 .\n0 . . 05\n1 .\n*00 . *01\n",
			"*9 . fn(-5) { *00 . *01 }",
		},
		{
			"define_empty_body",
			"*9 .\n0 .\n",
			"*9 . fn() {  }",
		},
		{
			"define_dotted_indentation",
			"*9 .\n1 .\n..*00 . *01\n",
			"*9 . fn(0) { *00 . *01 }",
		},
		{
			"if_statement",
			"/ *5\n*6 . 1\n",
			"if *5 { *6 . 1 }",
		},
		{
			"if_else",
			"/ *5\n*6 . 1\n-\n*6 . 2\n",
			"if *5 { *6 . 1 } else { *6 . 2 }",
		},
		{
			"else_binds_innermost",
			"/ 1\n/ 2\n*5 . 1\n-\n*5 . 2\n",
			"if 1 { if 2 { *5 . 1 } else { *5 . 2 } }",
		},
		{
			"blank_line_rebinds_else_to_outer",
			"/ 1\n/ 2\n*5 . 1\n\n-\n*5 . 2\n",
			"if 1 { if 2 { *5 . 1 } } else { *5 . 2 }",
		},
		{
			"while_loop",
			"+/ *5\n*5 . *5 - 1\n",
			"while *5 { *5 . (*5 - 1) }",
		},
		{
			"while_multi_statement_body",
			"+/ *5 .+ 0\n*6 . *6 + *5\n*5 . *5 - 1\n",
			"while (*5 .+ 0) { *6 . (*6 + *5); *5 . (*5 - 1) }",
		},
		{
			"consecutive_statements",
			"*5 . 1\n*6 . 2\n",
			"*5 . 1\n*6 . 2",
		},
		{
			"blank_lines_between_statements",
			"\n\n*5 . 1\n\n\n*6 . 2\n\n",
			"*5 . 1\n*6 . 2",
		},
		{
			"statement_after_block",
			"/ 1\n*5 . 1\n\n*6 . 2\n",
			"if 1 { *5 . 1 }\n*6 . 2",
		},
		{
			"comment_line_disappears",
			"*5 . 1\n# note\n*6 . 2\n",
			"*5 . 1\n*6 . 2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program := parseClean(t, tc.input)
			assert.Equal(t, tc.expected, program.String())
		})
	}
}

func TestDefineDefaults(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []int64
	}{
		{
			"unset_defaults_are_zero",
			"*9 .\n1 . . 20\n3 .\n*00 . 1\n",
			[]int64{0, 20, 0},
		},
		{
			"first_override_of_an_index_wins",
			"*9 .\n0 . . 5\n0 . . 7\n1 .\n*00 . 1\n",
			[]int64{5},
		},
		{
			"negative_override",
			"*9 .\n0 . . 03\n1 . . 0\n2 .\n*00 . 1\n",
			[]int64{-3, 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program := parseClean(t, tc.input)
			require.Len(t, program.Statements, 1)
			def, ok := program.Statements[0].(*ast.DefineStatement)
			require.True(t, ok, "expected a definition, got %T", program.Statements[0])
			assert.Equal(t, tc.expected, def.Defaults)
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		code     string
		contains string
	}{
		{
			"statement_must_start_with_marker",
			"5 . 3\n",
			diagnostics.ErrP001, "expected a statement",
		},
		{
			"trailing_tokens_at_top_level",
			"*5 . 1 1\n",
			diagnostics.ErrP001, "statements must start on a new line",
		},
		{
			"trailing_tokens_in_block",
			"/ 1\n*5 . 1 1\n",
			diagnostics.ErrP001, "expected end of line",
		},
		{
			"operator_without_operand",
			"*5 . +\n",
			diagnostics.ErrP001, "unexpected token in expression",
		},
		{
			"missing_dot_after_slot",
			"*5 3\n",
			diagnostics.ErrP002, "expected '.' or '/' after slot name",
		},
		{
			"missing_index_after_slash",
			"*5/ . 7\n",
			diagnostics.ErrP002, "expected an index after '/'",
		},
		{
			"while_without_slash",
			"+ 1\n",
			diagnostics.ErrP002, "expected next token to be",
		},
		{
			"malformed_slot_name",
			"** . 1\n",
			diagnostics.ErrP003, "malformed slot name",
		},
		{
			"lone_zero_slot",
			"*0 . 1\n",
			diagnostics.ErrP003, "malformed slot name",
		},
		{
			"number_out_of_range",
			"*5 . 99999999999999999999\n",
			diagnostics.ErrP003, "number out of range",
		},
		{
			"define_param_list_junk",
			"*9 .\n*1 .\n",
			diagnostics.ErrP004, "expected a parameter count or override",
		},
		{
			"define_count_too_large",
			"*9 .\n256 .\n*00 . 1\n",
			diagnostics.ErrP004, "parameter count exceeds 255",
		},
		{
			"override_index_out_of_range",
			"*9 .\n2 . . 5\n1 .\n*00 . 1\n",
			diagnostics.ErrP004, "override index 2 out of range for parameter count 1",
		},
		{
			"override_value_missing",
			"*9 .\n0 . . *\n1 .\n",
			diagnostics.ErrP004, "expected an integer value",
		},
		{
			"expression_nesting_too_deep",
			"*5 . " + strings.Repeat("/.", 520) + "0\n",
			diagnostics.ErrP005, "expression nesting too deep",
		},
		{
			"statement_nesting_too_deep",
			strings.Repeat("/ 1\n", 520),
			diagnostics.ErrP005, "statement nesting too deep",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := parse(t, tc.input)
			require.NotEmpty(t, errs, "input: %q", tc.input)
			for _, e := range errs {
				if e.Code == tc.code && strings.Contains(e.Message, tc.contains) {
					return
				}
			}
			var msgs []string
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
			t.Fatalf("expected %s error containing %q, got:\n%s", tc.code, tc.contains, strings.Join(msgs, "\n"))
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, errs := parse(t, "5 . 3\n")
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.ErrP001, errs[0].Code)
	assert.Equal(t, 1, errs[0].Line)
	assert.Equal(t, 1, errs[0].Column)
}

// An out-of-range override is reported but does not abort the definition;
// the remaining defaults keep their declared count.
func TestOverrideOutOfRangeRecovers(t *testing.T) {
	program, errs := parse(t, "*9 .\n2 . . 5\n1 .\n*00 . 1\n")
	require.NotEmpty(t, errs)
	require.Len(t, program.Statements, 1)
	def, ok := program.Statements[0].(*ast.DefineStatement)
	require.True(t, ok, "expected a definition, got %T", program.Statements[0])
	assert.Equal(t, []int64{0}, def.Defaults)
}

func TestParserProcessor(t *testing.T) {
	ctx := pipeline.NewPipelineContext("*5 . 1\n")
	ctx.FilePath = "prog.npd"
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)

	require.Empty(t, ctx.Errors)
	require.NotNil(t, ctx.AstRoot)
	assert.Equal(t, "prog.npd", ctx.AstRoot.File)
	assert.Equal(t, "*5 . 1", ctx.AstRoot.String())
}
