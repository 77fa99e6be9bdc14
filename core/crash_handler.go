package core

import (
	"fmt"

	"github.com/go-stack/stack"
)

// PanicError carries a recovered panic value and the stack it was raised on
type PanicError struct {
	Value any
	Stack stack.CallStack
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Run calls fn and converts a panic into a *PanicError
func Run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: stack.Trace().TrimRuntime()}
		}
	}()
	fn()
	return nil
}

// Go runs fn in a new goroutine with panic recovery
// A panic is handed to onCrash instead of taking the whole board down
func Go(fn func(), onCrash func(error)) {
	go func() {
		if err := Run(fn); err != nil && onCrash != nil {
			onCrash(err)
		}
	}()
}
