package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/funvibe/ember/internal/config"
	"github.com/funvibe/ember/internal/evaluator"
	"github.com/funvibe/ember/internal/pipeline"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// reporter prints diagnostics for failed documents.
type reporter struct {
	out   io.Writer
	color bool
}

func (r *reporter) report(ctx *pipeline.PipelineContext, err error) {
	label := "error:"
	if r.color {
		label = ansiRed + label + ansiReset
	}
	var rtErr *evaluator.Error
	if errors.As(err, &rtErr) {
		fmt.Fprintf(r.out, "%s %s: %s\n", label, ctx.FilePath, rtErr.Trace())
	} else {
		fmt.Fprintf(r.out, "%s %s: %s\n", label, ctx.FilePath, err)
	}
	if r.color {
		fmt.Fprintf(r.out, "%s  run %s%s\n", ansiDim, ctx.RunID, ansiReset)
	} else {
		fmt.Fprintf(r.out, "  run %s\n", ctx.RunID)
	}
}

// useColor resolves the color mode against the diagnostics stream.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
