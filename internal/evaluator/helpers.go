package evaluator

import (
	"fmt"
)

func newError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// PushCall adds a call frame to the stack
func (e *Evaluator) PushCall(name string, line, column int) {
	e.CallStack = append(e.CallStack, CallFrame{
		Name:   name,
		Line:   line,
		Column: column,
	})
}

// PopCall removes the top call frame
func (e *Evaluator) PopCall() {
	if len(e.CallStack) > 0 {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
	}
}

// attachStack records the current call stack on err unless it already has one.
func (e *Evaluator) attachStack(err *Error) {
	if len(err.StackTrace) > 0 || len(e.CallStack) == 0 {
		return
	}
	err.StackTrace = make([]StackFrame, len(e.CallStack))
	for i, frame := range e.CallStack {
		err.StackTrace[i] = StackFrame{
			Name:   frame.Name,
			Line:   frame.Line,
			Column: frame.Column,
		}
	}
}

func typeMismatch(format string, a ...interface{}) *Error {
	return newError(TypeMismatch, format, a...)
}
