package lexer

import (
	"github.com/funvibe/numpad/internal/diagnostics"
	"github.com/funvibe/numpad/internal/pipeline"
	"github.com/funvibe/numpad/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)
	ctx.Tokens = l.Tokenize()

	for _, tok := range ctx.Tokens {
		if tok.Type == token.ILLEGAL {
			err := diagnostics.NewError(diagnostics.ErrL001, tok, "illegal character", tok.Lexeme)
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
		}
	}

	return ctx
}
