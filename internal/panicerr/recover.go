// Package panicerr runs a function in its own goroutine, converting any panic
// or runtime.Goexit into an error.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrGoexit is wrapped by the error from Recover when the function called
// runtime.Goexit.
var ErrGoexit = errors.New("runtime.Goexit called")

// Error is a recovered panic.
type Error struct {
	Name  string
	Value interface{}
	Stack []byte
}

func (pe *Error) Error() string {
	if pe.Name == "" {
		return fmt.Sprintf("panicked: %v", pe.Value)
	}
	return fmt.Sprintf("%v panicked: %v", pe.Name, pe.Value)
}

// Unwrap returns the panic value, if it was an error.
func (pe *Error) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// Recover calls f in a new goroutine and returns its error. A panic is
// returned as an *Error; runtime.Goexit as an error wrapping ErrGoexit.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		returned := false
		defer func() {
			if returned {
				return
			}
			if v := recover(); v != nil {
				errch <- &Error{Name: name, Value: v, Stack: debug.Stack()}
			} else {
				errch <- fmt.Errorf("%v: %w", name, ErrGoexit)
			}
		}()
		err := f()
		returned = true
		errch <- err
	}()
	return <-errch
}

// Stack returns the goroutine stack captured by a recovered panic in err's
// chain, or "" if there is none.
func Stack(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return ""
}
