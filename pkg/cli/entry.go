// Package cli implements the numpad command line: argument scanning,
// workspace configuration, unit resolution and the run pipeline.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/funvibe/numpad/internal/backend"
	"github.com/funvibe/numpad/internal/config"
	"github.com/funvibe/numpad/internal/evaluator"
	"github.com/funvibe/numpad/internal/lexer"
	"github.com/funvibe/numpad/internal/modules"
	"github.com/funvibe/numpad/internal/parser"
	"github.com/funvibe/numpad/internal/pipeline"
)

const usage = `Usage: numpad [options] <unit>

Runs the numpad program in <unit>. The name may be given with or without
its extension; imports named on the unit's first line are resolved from
the unit's directory, then from the shared library directory.

Options:
  -p, --param <values>   integer parameters, separated by ','
  -v, --verbose          trace execution to stderr
      --version          print the version
  -h, --help             show this help
`

type options struct {
	unit    string
	param   string
	verbose bool
	help    bool
	version bool
}

func scanArgs(args []string) (*options, error) {
	opts := &options{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "--version":
			opts.version = true
		case arg == "-v" || arg == "--verbose":
			opts.verbose = true
		case arg == "-p" || arg == "--param":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			i++
			opts.param = args[i]
		case strings.HasPrefix(arg, "--param="):
			opts.param = strings.TrimPrefix(arg, "--param=")
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown option %s", arg)
		default:
			if opts.unit != "" {
				return nil, fmt.Errorf("unexpected argument %s", arg)
			}
			opts.unit = arg
		}
	}
	return opts, nil
}

// Run executes the command line and returns the process exit code. All
// output goes through stdout and stderr so tests can run it in-process.
func Run(args []string, stdout, stderr io.Writer) int {
	opts, err := scanArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		fmt.Fprint(stderr, usage)
		return 1
	}
	if opts.help {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if opts.version {
		fmt.Fprintln(stdout, "numpad "+config.Version)
		return 0
	}
	if opts.unit == "" {
		fmt.Fprint(stderr, usage)
		return 1
	}

	dir := filepath.Dir(opts.unit)
	cfg, cfgDir, err := discoverConfig(dir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	logger := newLogger(stderr, opts.verbose || cfg.Trace)

	params, err := parseParams(opts.param, cfg.ParamDelimiter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	if len(params) > 0 {
		logger.Debug().Ints64("params", params).Msg("parameters loaded")
	} else {
		logger.Debug().Msg("no parameters loaded")
	}

	name := filepath.Base(opts.unit)
	for _, ext := range cfg.Extensions {
		if strings.HasSuffix(name, ext) {
			name = strings.TrimSuffix(name, ext)
			break
		}
	}

	libDir := cfg.LibDir
	if !filepath.IsAbs(libDir) && cfgDir != "" {
		libDir = filepath.Join(cfgDir, libDir)
	}

	source := modules.NewFileSource(dir, libDir, cfg.Extensions)
	source.Logger = logger
	resolver := modules.NewResolver(source)
	resolver.Logger = logger

	text, err := resolver.Resolve(name)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	initialContext := pipeline.NewPipelineContext(text)
	initialContext.UnitName = name
	initialContext.FilePath = opts.unit
	initialContext.Params = params
	initialContext.Logger = logger.With().Str("run_id", initialContext.RunID).Logger()

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		backend.NewExecutionProcessor(backend.NewTreeWalk()),
	)
	finalContext := processingPipeline.Run(initialContext)

	if len(finalContext.Errors) > 0 {
		fmt.Fprintln(stderr, "Processing failed with errors:")
		for _, perr := range finalContext.Errors {
			fmt.Fprintf(stderr, "- %s\n", perr.Error())
		}
		return 1
	}

	result, ok := finalContext.Result.(evaluator.Object)
	if !ok || result == nil {
		fmt.Fprintln(stderr, "Error: execution produced no result")
		return 1
	}

	fmt.Fprintf(stdout, "Result: %s\n", result.Inspect())
	return 0
}

func discoverConfig(dir string) (*config.WorkspaceConfig, string, error) {
	path, err := config.FindConfig(dir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return config.DefaultConfig(), "", nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, filepath.Dir(path), nil
}

// newLogger builds the trace logger: human-readable on a terminal,
// JSON lines otherwise, disabled entirely unless tracing was asked for.
func newLogger(stderr io.Writer, trace bool) zerolog.Logger {
	if !trace {
		return zerolog.Nop()
	}
	var out io.Writer = stderr
	if f, ok := stderr.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(zerolog.TraceLevel).With().Timestamp().Logger()
}

func parseParams(param, delim string) ([]int64, error) {
	if param == "" {
		return nil, nil
	}
	parts := strings.Split(param, delim)
	values := make([]int64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter %q: expected an integer", part)
		}
		values = append(values, v)
	}
	return values, nil
}
