package parser

import (
	"github.com/funvibe/numpad/internal/pipeline"
)

// ParserProcessor builds the statement tree from the token stream. It
// runs even when the lexer reported errors so one pass surfaces as many
// diagnostics as possible.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(ctx.Tokens, ctx)
	program := p.ParseProgram()
	program.File = ctx.FilePath
	ctx.AstRoot = program

	ctx.Logger.Trace().
		Int("statements", len(program.Statements)).
		Int("errors", len(ctx.Errors)).
		Msg("parse complete")

	return ctx
}
