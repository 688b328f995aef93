package fuzz

import (
	"strings"
	"testing"

	"github.com/funvibe/numpad/internal/lexer"
	"github.com/funvibe/numpad/internal/modules"
	"github.com/funvibe/numpad/internal/parser"
	"github.com/funvibe/numpad/internal/pipeline"
)

// FuzzParseProgram feeds arbitrary source through the front end. Malformed
// input must come back as diagnostics, never a panic, and whatever tree the
// parser does build must render.
func FuzzParseProgram(f *testing.F) {
	f.Add("*5 . 1 + 2 * 3\n")
	f.Add("/ *5\n*6 . /.1.2/.\n-\n*6 . 0\n")
	f.Add("+/ *5\n*5 . *5 - 1\n")
	f.Add("*9 .\n0 . . 10\n1 .\n*00 . *01\n")
	f.Add("*5 . /./.1/..2/.\n*5/0/0 . 9\n")
	f.Add("*5 .. .\n")
	f.Add("# comment\n\n\n*00 . 05\n")
	f.Add(strings.Repeat("/ 1\n", 40) + "*00 . 1\n")

	f.Fuzz(func(t *testing.T, input string) {
		ctx := pipeline.NewPipelineContext(input)
		ctx = (&lexer.LexerProcessor{}).Process(ctx)
		ctx = (&parser.ParserProcessor{}).Process(ctx)

		if ctx.AstRoot == nil {
			t.Fatal("parser returned no tree at all")
		}
		_ = ctx.AstRoot.String()
	})
}

// FuzzResolve hands the resolver adversarial unit headers. Resolution must
// always finish: cyclic graphs with an error, acyclic ones with the
// assembled text.
func FuzzResolve(f *testing.F) {
	f.Add("dep\n*1 . 1\n", "\n*2 . 2\n")
	f.Add("dep.dep\n*1 . 1\n", "main.main\n*2 . 2\n")
	f.Add("dep.extra\n*1 . 1\n", "main\n*2 . 2\n")
	f.Add("extra.dep.extra\n*1 . 1\n", "extra\n*2 . 2\n")
	f.Add("\r\n*1 . 1\n", "dep\n*2 . 2\n")

	f.Fuzz(func(t *testing.T, entryText, depText string) {
		source := modules.MapSource{
			"main":  entryText,
			"dep":   depText,
			"extra": "\n*3 . 3\n",
		}
		text, err := modules.NewResolver(source).Resolve("main")
		if err == nil && !strings.HasSuffix(text, "\n") {
			t.Errorf("assembled text %q does not end with a newline", text)
		}
	})
}
