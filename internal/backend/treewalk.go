package backend

import (
	"fmt"
	"io"
	"log"

	"github.com/funvibe/ember/internal/evaluator"
	"github.com/funvibe/ember/internal/pipeline"
)

// TreeWalkBackend runs the tree-walking evaluator.
type TreeWalkBackend struct {
	Out      io.Writer
	Scope    evaluator.ScopePolicy
	MaxDepth int
	Logger   *log.Logger // optional; nil disables tracing
}

// NewTreeWalk creates a new tree-walk backend writing program output to out.
func NewTreeWalk(out io.Writer) *TreeWalkBackend {
	return &TreeWalkBackend{Out: out}
}

func (b *TreeWalkBackend) Name() string { return "tree" }

// Run evaluates ctx.AstRoot. A fresh top-level scope is created unless the
// context already carries one.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Object, error) {
	if ctx.AstRoot == nil {
		return nil, fmt.Errorf("no tree to execute")
	}
	if ctx.Env == nil {
		ctx.Env = evaluator.NewEnvironment()
	}

	eval := evaluator.New(b.Out,
		evaluator.WithScope(b.Scope),
		evaluator.WithMaxDepth(b.MaxDepth),
	)
	b.logf("[%s] evaluating %s (backend=%s, scope=%s, max depth=%d)", ctx.RunID, ctx.FilePath, b.Name(), eval.Scope, eval.MaxDepth)

	result, err := eval.Eval(ctx.AstRoot, ctx.Env)
	if err != nil {
		b.logf("[%s] %s failed: %v", ctx.RunID, ctx.FilePath, err)
		return nil, err
	}
	b.logf("[%s] %s finished: %s", ctx.RunID, ctx.FilePath, evaluator.TypeName(result))
	return result, nil
}

func (b *TreeWalkBackend) logf(format string, a ...interface{}) {
	if b.Logger != nil {
		b.Logger.Printf(format, a...)
	}
}
