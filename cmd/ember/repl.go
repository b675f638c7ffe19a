package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/ember/internal/backend"
	"github.com/funvibe/ember/internal/evaluator"
	"github.com/funvibe/ember/internal/pipeline"
	"github.com/funvibe/ember/internal/treefile"

	"github.com/google/uuid"
	"github.com/lmorg/readline"
	"github.com/mattn/go-isatty"
)

const (
	replPrompt = "ember> "
	replPath   = "<repl>"
)

// lineReader is the part of *readline.Instance the session loop needs.
type lineReader interface {
	Readline() (string, error)
}

// scanReader feeds a session from a non-terminal stream, one line per entry.
type scanReader struct {
	sc *bufio.Scanner
}

func (r *scanReader) Readline() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

// newLineReader uses readline on a terminal and plain line scanning otherwise.
func newLineReader(stdin io.Reader) lineReader {
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return newTerminalReader()
	}
	return &scanReader{sc: bufio.NewScanner(stdin)}
}

// replSession evaluates one flow-style tree document per line. All lines
// share a single top-level scope; a failing line is reported and the
// session goes on with the bindings made so far.
type replSession struct {
	in     lineReader
	out    io.Writer
	rep    *reporter
	env    *evaluator.Environment
	exec   *pipeline.Pipeline
	result bool
}

func newReplSession(in lineReader, out io.Writer, rep *reporter, tree backend.Backend) *replSession {
	return &replSession{
		in:     in,
		out:    out,
		rep:    rep,
		env:    evaluator.NewEnvironment(),
		exec:   pipeline.New(backend.LoadProcessor{}, backend.NewExecutionProcessor(tree)),
		result: true,
	}
}

// newTerminalReader sets up readline with node type completion.
func newTerminalReader() *readline.Instance {
	rl := readline.NewInstance()
	rl.SetPrompt(replPrompt)
	rl.TabCompleter = func(line []rune, pos int, _ readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
		prefix, suggestions := completeWord(line, pos)
		return prefix, suggestions, nil, readline.TabDisplayGrid
	}
	return rl
}

// run reads lines until :quit or the reader fails (EOF, Ctrl-C). It
// reports whether any line failed.
func (s *replSession) run() bool {
	failed := false
	for {
		line, err := s.in.Readline()
		if err != nil {
			return failed
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q":
			return failed
		case line == ":env":
			s.printEnv()
			continue
		case strings.HasPrefix(line, ":"):
			fmt.Fprintf(s.out, "unknown command %s (try :env or :quit)\n", line)
			continue
		}
		if !s.eval(line) {
			failed = true
		}
	}
}

func (s *replSession) eval(line string) bool {
	ctx := pipeline.NewPipelineContext(replPath, []byte(line), uuid.NewString())
	ctx.Env = s.env
	ctx = s.exec.Run(ctx)
	if ctx.Failed() {
		for _, err := range ctx.Errors {
			s.rep.report(ctx, err)
		}
		return false
	}
	if s.result && ctx.Result != nil && ctx.Result != evaluator.NONE {
		fmt.Fprintln(s.out, ctx.Result.Inspect())
	}
	return true
}

func (s *replSession) printEnv() {
	for _, name := range s.env.Keys() {
		val, err := s.env.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(s.out, "%s = %s\n", name, val.Inspect())
	}
}

// completeWord suggests node type tags and session commands for the word
// ending at pos. Suggestions hold only the missing suffix.
func completeWord(line []rune, pos int) (string, []string) {
	if pos > len(line) {
		pos = len(line)
	}
	start := pos
	for start > 0 && !strings.ContainsRune(" \t{[,:", line[start-1]) {
		start--
	}
	word := string(line[start:pos])

	candidates := treefile.NodeTypes
	if start == 1 && line[0] == ':' {
		candidates = []string{":env", ":quit"}
		word = ":" + word
	}

	var suggestions []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) && len(c) > len(word) {
			suggestions = append(suggestions, c[len(word):])
		}
	}
	return word, suggestions
}
