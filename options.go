package main

import (
	"io"

	"github.com/jcorbin/intcode/internal/flushio"
)

// VMOption configures a VM under New.
type VMOption interface{ apply(vm *VM) }

// WithProgram loads the given memory image; it is applied before any other
// option, so that WithInputs is not cleared by the load.
func WithProgram(values []int64) VMOption { return programOption(values) }

// WithInputs queues input values.
func WithInputs(values ...int64) VMOption { return inputsOption(values) }

// WithOutput writes each output value, as a decimal line, to w.
func WithOutput(w io.Writer) VMOption { return outputOption{w} }

// WithTee adds another stream that receives each output line.
func WithTee(w io.Writer) VMOption { return teeOption{w} }

// WithLogf sets the function used for trace logging.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

// WithVerbose sets the trace level, see SetVerbose.
func WithVerbose(level int) VMOption { return verboseOption(level) }

// WithMemLimit bounds memory growth; 0 means unlimited.
func WithMemLimit(limit uint) VMOption { return memLimitOption(limit) }

// VMOptions combines any number of options into one.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	return all
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		if prog, is := opt.(programOption); is {
			prog.apply(vm)
		}
	}
	for _, opt := range opts {
		if _, is := opt.(programOption); !is {
			opt.apply(vm)
		}
	}
}

type programOption []int64
type inputsOption []int64
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type withLogfn func(mess string, args ...interface{})
type verboseOption int
type memLimitOption uint

func (prog programOption) apply(vm *VM) { vm.Load(prog) }
func (in inputsOption) apply(vm *VM)    { vm.AddInput(in...) }
func (lim memLimitOption) apply(vm *VM) { vm.mem.Limit = uint(lim) }
func (lvl verboseOption) apply(vm *VM)  { vm.SetVerbose(int(lvl)) }
func (logfn withLogfn) apply(vm *VM)    { vm.logfn = logfn }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.New(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.New(o.Writer))
}
