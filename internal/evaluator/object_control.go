package evaluator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies runtime errors. A kind is itself an error so callers
// can write errors.Is(err, evaluator.DivisionByZero).
type ErrorKind int

const (
	UnboundName ErrorKind = iota + 1
	TypeMismatch
	ArityMismatch
	DivisionByZero
	UnhashableKey
	IndexError
	NotCallable
	NotSubscriptable
	NotIterable
	MalformedLiteral
	OutputFailure
	StackOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case UnboundName:
		return "UnboundName"
	case TypeMismatch:
		return "TypeMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case DivisionByZero:
		return "DivisionByZero"
	case UnhashableKey:
		return "UnhashableKey"
	case IndexError:
		return "IndexError"
	case NotCallable:
		return "NotCallable"
	case NotSubscriptable:
		return "NotSubscriptable"
	case NotIterable:
		return "NotIterable"
	case MalformedLiteral:
		return "MalformedLiteral"
	case OutputFailure:
		return "OutputFailure"
	case StackOverflow:
		return "StackOverflow"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) Error() string { return k.String() }

// Error is a runtime error. It aborts the whole evaluation.
type Error struct {
	Kind       ErrorKind
	Message    string
	Line       int
	Column     int
	StackTrace []StackFrame
	Err        error // underlying cause, if any
}

// StackFrame for error stack traces
type StackFrame struct {
	Name   string
	Line   int
	Column int
}

func (e *Error) Error() string {
	var result string
	if e.Line > 0 {
		result = fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	} else {
		result = fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return result
}

// Is matches an ErrorKind target against the error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func (e *Error) Unwrap() error { return e.Err }

// Trace renders the message followed by the call chain, innermost call first.
func (e *Error) Trace() string {
	var out strings.Builder
	out.WriteString(e.Error())
	if len(e.StackTrace) > 0 {
		out.WriteString("\nStack trace:")
		for i := len(e.StackTrace) - 1; i >= 0; i-- {
			frame := e.StackTrace[i]
			if frame.Line > 0 {
				fmt.Fprintf(&out, "\n  at %s (%d:%d)", frame.Name, frame.Line, frame.Column)
			} else {
				fmt.Fprintf(&out, "\n  at %s", frame.Name)
			}
		}
	}
	return out.String()
}

// KindOf returns the kind of a runtime error, or 0 when err is not one.
func KindOf(err error) ErrorKind {
	var rtErr *Error
	if errors.As(err, &rtErr) {
		return rtErr.Kind
	}
	return 0
}
