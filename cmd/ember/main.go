// Command ember evaluates expression-tree documents.
//
// Usage:
//
//	ember [flags] [file or directory ...]
//	ember -i
//
// With no arguments the document is read from standard input. Each document
// runs in a fresh top-level scope; a failing document is reported and the
// remaining ones still run. With -i each input line is a flow-style document
// and all lines share one scope.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/funvibe/ember/internal/backend"
	"github.com/funvibe/ember/internal/config"
	"github.com/funvibe/ember/internal/evaluator"
	"github.com/funvibe/ember/internal/pipeline"
	"github.com/funvibe/ember/internal/prettyprinter"
	"github.com/funvibe/ember/internal/treefile"

	"github.com/google/uuid"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	scope      string
	maxDepth   int
	color      string
	print      bool
	dump       bool
	result     bool
	verbose    bool
	repl       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, map[string]bool, error) {
	opts := &options{}
	fs := flag.NewFlagSet("ember", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to config file (default ./"+config.ConfigFileName+" if present)")
	fs.StringVar(&opts.scope, "scope", config.ScopeDynamic, "function scope policy: dynamic or global")
	fs.IntVar(&opts.maxDepth, "max-depth", config.DefaultMaxDepth, "maximum evaluation nesting depth")
	fs.StringVar(&opts.color, "color", config.ColorAuto, "colour diagnostics: auto, always or never")
	fs.BoolVar(&opts.print, "print", false, "print each tree as pseudo-source instead of running it")
	fs.BoolVar(&opts.dump, "dump", false, "re-encode each tree as YAML instead of running it")
	fs.BoolVar(&opts.result, "result", false, "print the value of each document after running it")
	fs.BoolVar(&opts.verbose, "v", false, "log each run to stderr")
	fs.BoolVar(&opts.repl, "i", false, "read tree documents interactively, one per line, in a shared scope")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ember [flags] [file or directory ...]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, fs.Args(), set, nil
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(opts *options, set map[string]bool) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath, false)
	} else {
		cfg, err = config.Load(config.ConfigFileName, true)
	}
	if err != nil {
		return nil, err
	}
	if set["scope"] {
		cfg.Scope = opts.scope
	}
	if set["max-depth"] {
		cfg.MaxDepth = opts.maxDepth
	}
	if set["color"] {
		cfg.Color = opts.color
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, paths, set, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(opts, set)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}
	scope, err := evaluator.ParseScopePolicy(cfg.Scope)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}

	rep := &reporter{out: stderr, color: useColor(cfg.Color, stderr)}

	var logger *log.Logger
	if opts.verbose {
		logger = log.New(stderr, "ember: ", log.Ltime|log.Lmsgprefix)
	}

	tree := &backend.TreeWalkBackend{
		Out:      stdout,
		Scope:    scope,
		MaxDepth: cfg.MaxDepth,
		Logger:   logger,
	}

	if opts.repl {
		session := newReplSession(newLineReader(stdin), stdout, rep, tree)
		if session.run() {
			return 1
		}
		return 0
	}

	docs, err := collectDocuments(paths, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	var stages []pipeline.Processor
	stages = append(stages, backend.LoadProcessor{})
	switch {
	case opts.print:
		stages = append(stages, printStage(stdout))
	case opts.dump:
		stages = append(stages, dumpStage(stdout))
	default:
		stages = append(stages, backend.NewExecutionProcessor(tree))
		if opts.result {
			stages = append(stages, resultStage(stdout))
		}
	}
	p := pipeline.New(stages...)

	status := 0
	for _, doc := range docs {
		ctx := pipeline.NewPipelineContext(doc.path, doc.source, uuid.NewString())
		if doc.err != nil {
			ctx.Errors = append(ctx.Errors, doc.err)
		}
		ctx = p.Run(ctx)
		if ctx.Failed() {
			status = 1
			for _, err := range ctx.Errors {
				rep.report(ctx, err)
			}
		}
	}
	return status
}

type document struct {
	path   string
	source []byte
	err    error
}

// collectDocuments reads every named file; directories contribute their tree
// documents in lexical order. No paths means standard input.
func collectDocuments(paths []string, stdin io.Reader) ([]document, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []document{{path: "<stdin>", source: data}}, nil
	}

	var docs []document
	for _, path := range paths {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, err
			}
			var names []string
			for _, e := range entries {
				if !e.IsDir() && isTreeFile(e.Name()) && e.Name() != config.ConfigFileName {
					names = append(names, e.Name())
				}
			}
			sort.Strings(names)
			for _, name := range names {
				docs = append(docs, readDocument(filepath.Join(path, name)))
			}
			continue
		}
		docs = append(docs, readDocument(path))
	}
	return docs, nil
}

func readDocument(path string) document {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{path: path, err: err}
	}
	return document{path: path, source: data}
}

// isTreeFile checks if a file has a recognized tree document extension
func isTreeFile(path string) bool {
	for _, ext := range config.TreeFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func printStage(out io.Writer) pipeline.Processor {
	return pipeline.ProcessorFunc(func(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
		if ctx.Failed() {
			return ctx
		}
		fmt.Fprint(out, prettyprinter.Print(ctx.AstRoot))
		return ctx
	})
}

func dumpStage(out io.Writer) pipeline.Processor {
	return pipeline.ProcessorFunc(func(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
		if ctx.Failed() {
			return ctx
		}
		data, err := treefile.Encode(ctx.AstRoot)
		if err != nil {
			ctx.Errors = append(ctx.Errors, err)
			return ctx
		}
		out.Write(data)
		return ctx
	})
}

func resultStage(out io.Writer) pipeline.Processor {
	return pipeline.ProcessorFunc(func(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
		if ctx.Failed() || ctx.Result == nil {
			return ctx
		}
		fmt.Fprintln(out, ctx.Result.Inspect())
		return ctx
	})
}
