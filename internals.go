package main

import (
	"context"
	"errors"
	"fmt"
)

// halt aborts the current run with a fatal error; Run recovers it.
func (vm *VM) halt(err error) {
	if vm.verbose > 0 {
		vm.logf("#", "halt error: %v", err)
	}
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

func (vm *VM) load(addr uint) int64 {
	val, err := vm.mem.Load(addr)
	vm.haltif(err)
	return val
}

func (vm *VM) stor(addr uint, val int64) {
	if size := vm.mem.Size(); addr >= size && vm.verbose > 1 {
		vm.logf("grow", "%v -> %v", size, addr+1)
	}
	vm.haltif(vm.mem.Stor(addr, val))
}

func (vm *VM) exec(ctx context.Context) {
	done := ctx.Done()
	for !vm.halted {
		select {
		case <-done:
			vm.halt(ctx.Err())
		default:
		}
		vm.step()
	}
	if vm.verbose > 0 {
		vm.logf("#", "halt after %v steps", vm.steps)
	}
}

var (
	// ErrUnknownOpcode is wrapped by a DecodeError for an unassigned opcode.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrBadMode is wrapped by a DecodeError for a mode digit other than 0, 1, or 2.
	ErrBadMode = errors.New("invalid parameter mode")

	// ErrImmediateWrite is wrapped by a DecodeError when a write target
	// parameter is in immediate mode.
	ErrImmediateWrite = errors.New("immediate mode write target")

	// ErrInputStarved is returned when an input instruction finds an empty
	// input queue.
	ErrInputStarved = errors.New("input queue empty")
)

// DecodeError reports a malformed instruction.
type DecodeError struct {
	Addr uint
	Code int64
	Err  error
}

func (de *DecodeError) Error() string {
	return fmt.Sprintf("invalid instruction %v @%v: %v", de.Code, de.Addr, de.Err)
}

func (de *DecodeError) Unwrap() error { return de.Err }

// AddrError reports an instruction that referenced a negative address.
type AddrError struct {
	At   uint
	Addr int64
}

func (ae AddrError) Error() string {
	return fmt.Sprintf("negative address %v referenced @%v", ae.Addr, ae.At)
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
