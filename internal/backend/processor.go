// Package backend provides the pipeline stages that load a tree document
// and execute it.
package backend

import (
	"github.com/funvibe/ember/internal/evaluator"
	"github.com/funvibe/ember/internal/pipeline"
	"github.com/funvibe/ember/internal/treefile"
)

// Backend evaluates the tree held by a pipeline context. Name identifies
// the backend in -v logs.
type Backend interface {
	Run(ctx *pipeline.PipelineContext) (evaluator.Object, error)
	Name() string
}

// LoadProcessor decodes ctx.Source into ctx.AstRoot.
type LoadProcessor struct{}

func (LoadProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.AstRoot != nil {
		return ctx
	}
	root, err := treefile.Parse(ctx.Source)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.AstRoot = root
	return ctx
}

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}

	result, err := p.Backend.Run(ctx)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Result = result
	return ctx
}
