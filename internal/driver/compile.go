package driver

import (
	"context"
	"errors"
	"fmt"

	"bajzel/internal/ast"
	"bajzel/internal/diag"
	"bajzel/internal/eval"
	"bajzel/internal/lexer"
	"bajzel/internal/observ"
	"bajzel/internal/parser"
	"bajzel/internal/source"
	"bajzel/internal/token"
	"bajzel/internal/trace"
)

// Stage is the last pipeline pass Compile runs.
type Stage uint8

const (
	StageTokenize Stage = iota + 1
	StageParse
	StageEval
)

type Options struct {
	MaxDiagnostics int
	// Stage defaults to StageEval.
	Stage    Stage
	Observer PhaseObserver
	// EmitTimings appends an OBS6001 diagnostic with the phase report.
	EmitTimings bool
}

// Result holds every artifact produced up to the failing or final stage.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Program *ast.Program
	Env     *eval.ProgramEnv
	Bag     *diag.Bag
	Timer   *observ.Timer
}

type compilation struct {
	ctx  context.Context
	opts Options
	res  *Result
}

// Compile loads path ("-" reads stdin) and runs the pipeline up to opts.Stage.
// The returned Result is never nil; its Bag holds the diagnostics for every
// failure, including the one returned as error.
func Compile(ctx context.Context, path string, opts Options) (*Result, error) {
	c := newCompilation(ctx, opts)
	_, done := c.phase("load")
	id, err := c.res.FileSet.Load(path)
	if err != nil {
		done("failed")
		c.res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, err.Error()))
		return c.res, fmt.Errorf("load %s: %w", path, err)
	}
	c.res.File = c.res.FileSet.Get(id)
	done(fmt.Sprintf("%d bytes", len(c.res.File.Content)))
	return c.res, c.run(path)
}

// CompileSource runs the pipeline over an in-memory file.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	c := newCompilation(ctx, opts)
	c.res.File = c.res.FileSet.Get(c.res.FileSet.AddVirtual(name, src))
	return c.res, c.run(name)
}

// Tokenize, Parse and Evaluate are Compile stopped at the matching stage.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*Result, error) {
	return Compile(ctx, path, Options{MaxDiagnostics: maxDiagnostics, Stage: StageTokenize})
}

func Parse(ctx context.Context, path string, maxDiagnostics int) (*Result, error) {
	return Compile(ctx, path, Options{MaxDiagnostics: maxDiagnostics, Stage: StageParse})
}

func Evaluate(ctx context.Context, path string, maxDiagnostics int) (*Result, error) {
	return Compile(ctx, path, Options{MaxDiagnostics: maxDiagnostics, Stage: StageEval})
}

func newCompilation(ctx context.Context, opts Options) *compilation {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Stage == 0 {
		opts.Stage = StageEval
	}
	return &compilation{
		ctx:  ctx,
		opts: opts,
		res: &Result{
			FileSet: source.NewFileSet(),
			Bag:     diag.NewBag(opts.MaxDiagnostics),
			Timer:   observ.NewTimer(),
		},
	}
}

func (c *compilation) run(path string) error {
	root, ctx := trace.StartSpan(c.ctx, trace.ScopeDriver, "compile")
	c.ctx = ctx
	err := c.passes()
	if c.opts.EmitTimings {
		report := c.res.Timer.Report()
		appendTimingDiagnostic(c.res.Bag, timingPayload{
			Kind:    "compile",
			Path:    path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	if err != nil {
		root.End("error")
		return err
	}
	root.End("")
	return nil
}

func (c *compilation) passes() error {
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: c.res.Bag})

	_, done := c.phase("lex")
	c.res.Tokens = lexer.Tokenize(c.res.File, lexer.Options{Reporter: reporter})
	done(fmt.Sprintf("%d tokens", len(c.res.Tokens)))
	if c.opts.Stage == StageTokenize {
		return nil
	}

	_, done = c.phase("parse")
	prog, err := parser.ParseTokens(c.res.Tokens, parser.Options{Reporter: reporter})
	if err != nil {
		done("failed")
		return fmt.Errorf("parse: %w", err)
	}
	c.res.Program = prog
	done(fmt.Sprintf("%d statements", prog.Len()))
	if c.opts.Stage == StageParse {
		return nil
	}

	ctx, done := c.phase("eval")
	env, err := evaluate(ctx, prog)
	if err != nil {
		done("failed")
		c.reportEvalError(err)
		return fmt.Errorf("eval: %w", err)
	}
	c.res.Env = env
	done(fmt.Sprintf("%d groups", len(env.Groups())))
	return nil
}

// evaluate steps the evaluator statement by statement so each one shows up
// in debug traces.
func evaluate(ctx context.Context, prog *ast.Program) (*eval.ProgramEnv, error) {
	ev := eval.New()
	for _, st := range prog.Stmts {
		trace.Point(ctx, trace.ScopeNode, st.Kind().String(), st.String())
		if err := ev.Step(st); err != nil {
			return nil, err
		}
	}
	return ev.Finish()
}

func (c *compilation) reportEvalError(err error) {
	var ee *eval.Error
	if !errors.As(err, &ee) {
		c.res.Bag.Add(diag.NewError(diag.SemaInfo, source.Span{File: c.res.File.ID}, err.Error()))
		return
	}
	msg := ee.Msg
	if msg == "" {
		msg = ee.Kind.String()
	}
	sp := ee.Span
	sp.File = c.res.File.ID
	d := diag.NewError(ee.Code(), sp, msg)
	if ee.Err != nil {
		d = d.WithNote(sp, ee.Err.Error())
	}
	c.res.Bag.Add(d)
}
