package main

import (
	"context"
	"errors"
	"log"

	"github.com/jcorbin/intcode/internal/flushio"
	"github.com/jcorbin/intcode/internal/panicerr"
)

// New creates a VM; it has empty memory until loaded by Load or WithProgram.
func New(opts ...VMOption) *VM {
	var vm VM
	vm.out = flushio.Discard
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Load replaces memory with a copy of values, resets the instruction pointer
// and relative base to 0, clears the halted state, and empties both the input
// queue and output log. The loaded image is retained for Reset.
func (vm *VM) Load(values []int64) {
	vm.image = append([]int64(nil), values...)
	vm.Reset()
}

// Reset restores the VM to its state immediately after the most recent Load,
// discarding all memory mutation, queued input, output, and any fatal error.
func (vm *VM) Reset() {
	vm.mem.Reset(vm.image)
	vm.prog = 0
	vm.base = 0
	vm.halted = false
	vm.err = nil
	vm.steps = 0
	vm.resetIO()
}

// Clone returns an independent VM with identical memory, execution state,
// queued input, and output log. The clone shares the log function, but not
// any output stream given by WithOutput or WithTee.
func (vm *VM) Clone() *VM {
	c := *vm
	c.mem = vm.mem.Clone()
	c.inputs = append([]int64(nil), vm.inputs...)
	c.outputs = append([]int64(nil), vm.outputs...)
	c.out = flushio.Discard
	return &c
}

// AddInput appends values to the back of the input queue.
func (vm *VM) AddInput(values ...int64) {
	vm.inputs = append(vm.inputs, values...)
}

// GetOutput returns the output at index i; negative indices count back from
// the most recent output, so GetOutput(-1) is the last value produced.
func (vm *VM) GetOutput(i int) (int64, error) {
	j := i
	if j < 0 {
		j += len(vm.outputs)
	}
	if j < 0 || j >= len(vm.outputs) {
		return 0, &OutputRangeError{Index: i, Len: len(vm.outputs)}
	}
	return vm.outputs[j], nil
}

// Outputs returns a copy of the output log.
func (vm *VM) Outputs() []int64 { return append([]int64(nil), vm.outputs...) }

// GetIndex returns the memory cell at addr, or 0 if addr has never been
// allocated.
func (vm *VM) GetIndex(addr uint) int64 { return vm.mem.At(addr) }

// SetIndex writes a memory cell, growing memory as needed. It only fails if
// a memory limit is exceeded.
func (vm *VM) SetIndex(addr uint, val int64) error { return vm.mem.Stor(addr, val) }

// Memory returns a copy of all allocated memory cells.
func (vm *VM) Memory() []int64 { return vm.mem.Values() }

// Halted returns true once the halt instruction has executed.
func (vm *VM) Halted() bool { return vm.halted }

// Err returns any fatal error from a prior run.
func (vm *VM) Err() error { return vm.err }

// SetVerbose controls execution tracing: 0 disables it, 1 traces every
// executed instruction, 2 also traces input, output, and memory growth.
// Tracing uses the WithLogf function, or log.Printf if none was given.
func (vm *VM) SetVerbose(level int) {
	vm.verbose = level
	if level > 0 && vm.logfn == nil {
		vm.logfn = log.Printf
	}
}

// Run executes instructions until the program halts, a fatal error occurs,
// or ctx is done. Calling Run again after a halt does nothing.
//
// Fatal errors (a DecodeError, AddrError, ErrInputStarved, or a memory limit
// error) leave the VM unusable: Run keeps returning the same error until Load
// or Reset. A run stopped by ctx may be resumed by calling Run again. An
// error flushing the output stream is returned, but does not stick.
func (vm *VM) Run(ctx context.Context) error {
	if vm.err != nil {
		return vm.err
	}
	if vm.halted {
		return nil
	}
	err := panicerr.Recover("intcode", func() error {
		vm.exec(ctx)
		return nil
	})
	var halted haltError
	if errors.As(err, &halted) {
		err = halted.error
	}
	if err != nil && !isContextErr(err) {
		vm.err = err
	}
	if ferr := vm.flush(); err == nil {
		err = ferr
	}
	return err
}

// RunUntilHalt runs the program to its halt instruction. All input the
// program needs must already be queued: an input instruction against an
// empty queue fails with ErrInputStarved.
func (vm *VM) RunUntilHalt(ctx context.Context) error { return vm.Run(ctx) }
