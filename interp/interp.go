// ==============================================================================================
// FILE: interp/interp.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: The library entry point. Wires lexer -> parser -> evaluator into
//          a single Run call, owns the root context's built-in bindings,
//          and layers ambient zap logging / uuid correlation over the
//          pipeline without touching its semantics.
// ==============================================================================================

package interp

import (
	"time"

	gocontext "context"

	"go.uber.org/zap"

	"github.com/google/uuid"

	"eloq/builtins"
	"eloq/context"
	"eloq/diag"
	"eloq/evaluator"
	"eloq/lexer"
	"eloq/parser"
	"eloq/position"
	"eloq/value"
)

// Runner holds the ambient logger a host embeds this interpreter with.
// Nothing about evaluation semantics depends on it; it exists purely to
// give every invocation a correlation id and phase timings in the logs,
// the same role zap plays in the reference corpus's service drivers.
type Runner struct {
	Logger *zap.SugaredLogger
}

// NewRunner builds a Runner around logger. A nil logger falls back to
// zap's no-op logger so callers that don't care about logging can pass
// nil without crashing the phase-timing calls below.
func NewRunner(logger *zap.SugaredLogger) *Runner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Runner{Logger: logger}
}

// Run lexes, parses, and evaluates text (named filename for diagnostics).
// The caller's gocontext.Context is honored only as a soft, additive
// deadline: it does not inject a cancellation point into evaluation
// itself (spec.md §5 — no suspension point, no yielding), but a host can
// still wrap it in a goroutine with gocontext.WithTimeout to bound total
// wall-clock time, matching the kind of host-imposed timeout spec.md
// explicitly allows while still treating unbounded resource limits as a
// Non-goal.
func (r *Runner) Run(ctx gocontext.Context, filename, text string) (value.Value, *diag.Diagnostic) {
	runID := uuid.New().String()
	log := r.Logger.With("run_id", runID, "filename", filename)

	type outcome struct {
		val value.Value
		err *diag.Diagnostic
	}
	done := make(chan outcome, 1)

	go func() {
		v, d := r.runSync(log, filename, text)
		done <- outcome{v, d}
	}()

	select {
	case o := <-done:
		return o.val, o.err
	case <-ctx.Done():
		log.Warnw("interpreter run abandoned: host deadline exceeded", "error", ctx.Err())
		zero := position.Position{}
		return nil, diag.NewRuntime(zero, zero, "host deadline exceeded", nil)
	}
}

func (r *Runner) runSync(log *zap.SugaredLogger, filename, text string) (value.Value, *diag.Diagnostic) {
	lexStart := time.Now()
	tokens, err := lexer.Tokenize(filename, text)
	if err != nil {
		log.Warnw("lex error", "phase", "lex", "details", err.Error())
		return nil, err
	}
	log.Debugw("lexed", "phase", "lex", "tokens", len(tokens), "elapsed", time.Since(lexStart))

	parseStart := time.Now()
	tree, err := parser.Parse(tokens)
	if err != nil {
		log.Warnw("parse error", "phase", "parse", "details", err.Error())
		return nil, err
	}
	log.Debugw("parsed", "phase", "parse", "elapsed", time.Since(parseStart))

	rootCtx := context.New("<program>")
	rootCtx.Symbols = context.NewSymbolTable(nil)
	builtins.Register(rootCtx)

	evalStart := time.Now()
	result, err := evaluator.Eval(tree, rootCtx)
	if err != nil {
		log.Errorw("runtime error", "phase", "eval", "details", err.Error())
		return nil, err
	}
	log.Debugw("evaluated", "phase", "eval", "elapsed", time.Since(evalStart))
	return result, nil
}

// Run is the package-level convenience wrapper for embedders that do not
// need a shared Runner (and therefore do not care about logging
// configuration or a host deadline) — the common case per spec.md §6's
// Run(filename, text) → (value?, error?) signature.
func Run(filename, text string) (value.Value, *diag.Diagnostic) {
	r := NewRunner(nil)
	return r.Run(gocontext.Background(), filename, text)
}
