package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcorbin/intcode/internal/mem"
)

// VM implements an intcode machine. Its memory is a flat array of integers
// that holds both the program and its data; the program may freely overwrite
// its own instructions.
type VM struct {
	ioCore

	mem   mem.Ints
	image []int64 // memory as of the last Load, never mutated

	prog   uint  // instruction pointer
	base   int64 // relative base
	halted bool
	err    error // sticky fatal error
	steps  uint64

	verbose int
}

type opcode int64

const (
	opAdd  opcode = 1
	opMul  opcode = 2
	opIn   opcode = 3
	opOut  opcode = 4
	opJNZ  opcode = 5
	opJZ   opcode = 6
	opLT   opcode = 7
	opEQ   opcode = 8
	opARB  opcode = 9
	opHalt opcode = 99
)

// Each instruction cell encodes its opcode in the low two decimal digits, and
// one parameter mode per higher digit, least significant first.
type mode uint8

const (
	modePosition  mode = 0
	modeImmediate mode = 1
	modeRelative  mode = 2
)

type opInfo struct {
	name   string
	params int
	write  int // index of the write target parameter, or -1

	// exec runs the instruction, returning true if it set the instruction
	// pointer itself.
	exec func(vm *VM, in *instruction) bool
}

var opTable = [100]opInfo{
	opAdd:  {"add", 3, 2, (*VM).add},
	opMul:  {"mul", 3, 2, (*VM).mul},
	opIn:   {"in", 1, 0, (*VM).input},
	opOut:  {"out", 1, -1, (*VM).output},
	opJNZ:  {"jnz", 2, -1, (*VM).jumpIfTrue},
	opJZ:   {"jz", 2, -1, (*VM).jumpIfFalse},
	opLT:   {"lt", 3, 2, (*VM).less},
	opEQ:   {"eq", 3, 2, (*VM).equal},
	opARB:  {"arb", 1, -1, (*VM).adjustBase},
	opHalt: {"halt", 0, -1, (*VM).stop},
}

type instruction struct {
	addr  uint
	code  int64
	op    opcode
	args  [3]int64
	modes [3]mode
}

func (in instruction) info() *opInfo { return &opTable[in.op] }

func (in instruction) width() uint { return 1 + uint(in.info().params) }

func (in instruction) String() string {
	info := in.info()
	var sb strings.Builder
	sb.WriteString(info.name)
	for i := 0; i < info.params; i++ {
		sb.WriteByte(' ')
		if i == info.write {
			sb.WriteString("-> ")
		}
		arg := in.args[i]
		switch in.modes[i] {
		case modePosition:
			sb.WriteByte('@')
			sb.WriteString(strconv.FormatInt(arg, 10))
		case modeImmediate:
			sb.WriteString(strconv.FormatInt(arg, 10))
		case modeRelative:
			sb.WriteString("rb")
			if arg >= 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(strconv.FormatInt(arg, 10))
		}
	}
	return sb.String()
}

// decode reads the instruction at addr without executing it.
func decode(m *mem.Ints, addr uint) (in instruction, err error) {
	in.addr = addr
	in.code = m.At(addr)

	op := in.code % 100
	if op <= 0 || opTable[op].name == "" {
		return in, &DecodeError{Addr: addr, Code: in.code, Err: ErrUnknownOpcode}
	}
	in.op = opcode(op)

	info := in.info()
	modes := in.code / 100
	for i := 0; i < info.params; i++ {
		md := mode(modes % 10)
		modes /= 10
		if md > modeRelative {
			return in, &DecodeError{Addr: addr, Code: in.code, Err: ErrBadMode}
		}
		if i == info.write && md == modeImmediate {
			return in, &DecodeError{Addr: addr, Code: in.code, Err: ErrImmediateWrite}
		}
		in.modes[i] = md
		in.args[i] = m.At(addr + 1 + uint(i))
	}
	return in, nil
}

func (vm *VM) step() {
	in, err := decode(&vm.mem, vm.prog)
	vm.haltif(err)
	if vm.verbose > 0 {
		vm.logf("exec", "@%v %v -- base:%v in:%v", in.addr, in, vm.base, vm.inputs)
	}
	if !in.info().exec(vm, &in) {
		vm.prog = in.addr + in.width()
	}
	vm.steps++
}

// addrOf resolves a position or relative parameter to an absolute address.
func (vm *VM) addrOf(in *instruction, i int) uint {
	addr := in.args[i]
	if in.modes[i] == modeRelative {
		addr += vm.base
	}
	if addr < 0 {
		vm.halt(AddrError{At: in.addr, Addr: addr})
	}
	return uint(addr)
}

func (vm *VM) param(in *instruction, i int) int64 {
	if in.modes[i] == modeImmediate {
		return in.args[i]
	}
	return vm.load(vm.addrOf(in, i))
}

func (vm *VM) result(in *instruction, i int, val int64) {
	vm.stor(vm.addrOf(in, i), val)
}

//// Instructions

// Opcode   Name   Parameters   Function
//    1     add    a b -> dst   dst = a + b
func (vm *VM) add(in *instruction) bool {
	vm.result(in, 2, vm.param(in, 0)+vm.param(in, 1))
	return false
}

// Opcode   Name   Parameters   Function
//    2     mul    a b -> dst   dst = a * b
func (vm *VM) mul(in *instruction) bool {
	vm.result(in, 2, vm.param(in, 0)*vm.param(in, 1))
	return false
}

// Opcode   Name   Parameters   Function
//    3     in     -> dst       dst = next queued input; halts if none queued
func (vm *VM) input(in *instruction) bool {
	val, ok := vm.readInput()
	if !ok {
		vm.halt(fmt.Errorf("in @%v: %w", in.addr, ErrInputStarved))
	}
	if vm.verbose > 1 {
		vm.logf("in", "%v", val)
	}
	vm.result(in, 0, val)
	return false
}

// Opcode   Name   Parameters   Function
//    4     out    a            append a to the output log
func (vm *VM) output(in *instruction) bool {
	val := vm.param(in, 0)
	if vm.verbose > 1 {
		vm.logf("out", "%v", val)
	}
	vm.haltif(vm.writeOutput(val))
	return false
}

// Opcode   Name   Parameters   Function
//    5     jnz    a target     if a != 0, jump to target
func (vm *VM) jumpIfTrue(in *instruction) bool {
	if vm.param(in, 0) != 0 {
		return vm.jump(in, vm.param(in, 1))
	}
	return false
}

// Opcode   Name   Parameters   Function
//    6     jz     a target     if a == 0, jump to target
func (vm *VM) jumpIfFalse(in *instruction) bool {
	if vm.param(in, 0) == 0 {
		return vm.jump(in, vm.param(in, 1))
	}
	return false
}

// Opcode   Name   Parameters   Function
//    7     lt     a b -> dst   dst = 1 if a < b else 0
func (vm *VM) less(in *instruction) bool {
	vm.result(in, 2, boolInt(vm.param(in, 0) < vm.param(in, 1)))
	return false
}

// Opcode   Name   Parameters   Function
//    8     eq     a b -> dst   dst = 1 if a == b else 0
func (vm *VM) equal(in *instruction) bool {
	vm.result(in, 2, boolInt(vm.param(in, 0) == vm.param(in, 1)))
	return false
}

// Opcode   Name   Parameters   Function
//    9     arb    a            relative base += a
func (vm *VM) adjustBase(in *instruction) bool {
	vm.base += vm.param(in, 0)
	return false
}

// Opcode   Name   Parameters   Function
//   99     halt                stop; the instruction pointer stays on the halt
func (vm *VM) stop(in *instruction) bool {
	vm.halted = true
	return true
}

func (vm *VM) jump(in *instruction, target int64) bool {
	if target < 0 {
		vm.halt(AddrError{At: in.addr, Addr: target})
	}
	vm.prog = uint(target)
	return true
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
