// Package pipeline chains the processing stages (lexing, parsing,
// execution) over a shared context.
package pipeline

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/funvibe/numpad/internal/ast"
	"github.com/funvibe/numpad/internal/diagnostics"
	"github.com/funvibe/numpad/internal/token"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries a program through the stages.
type PipelineContext struct {
	RunID      string // correlates trace events of one run
	UnitName   string // entry unit name, "" for ad-hoc source
	FilePath   string // resolved entry file path, "" for ad-hoc source
	SourceCode string // assembled program text

	Tokens  []token.Token
	AstRoot *ast.Program
	Errors  []*diagnostics.Error

	Params []int64 // seeds for slots *00, *01, ...

	// Result holds the final accumulator value after execution.
	// Typed as interface{} to keep this package free of the evaluator
	// import; consumers assert to evaluator.Object.
	Result interface{}

	Logger zerolog.Logger
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		RunID:      uuid.NewString(),
		SourceCode: source,
		Logger:     zerolog.Nop(),
	}
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages run even after earlier errors so all
// diagnostics are collected; execution itself refuses to start on errors.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
