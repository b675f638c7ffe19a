package pipeline

import (
	"github.com/funvibe/ember/internal/ast"
	"github.com/funvibe/ember/internal/evaluator"
)

// PipelineContext carries one document through the processing stages.
type PipelineContext struct {
	FilePath string // Source path, "<stdin>" when read from standard input
	Source   []byte
	RunID    string // Unique id used to correlate log lines and diagnostics

	AstRoot ast.Node
	Env     *evaluator.Environment
	Result  evaluator.Object

	Errors []error
}

// NewPipelineContext creates a context for a document already read into memory.
func NewPipelineContext(path string, source []byte, runID string) *PipelineContext {
	return &PipelineContext{FilePath: path, Source: source, RunID: runID}
}

// Failed reports whether any stage recorded an error.
func (c *PipelineContext) Failed() bool {
	return len(c.Errors) > 0
}

// Processor is one stage of a pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		// Each stage checks ctx.Failed() itself.
		ctx = processor.Process(ctx)
	}
	return ctx
}
