package main

import (
	"fmt"
	"io"
	"strconv"
)

// Dump writes the VM's execution state and a listing of its memory to w.
// Cells that decode as complete instructions are disassembled; all others
// are shown as raw values.
func (vm *VM) Dump(w io.Writer) {
	vmDumper{vm: vm, out: w}.dump()
}

type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
}

func (dump vmDumper) dump() {
	vm := dump.vm
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  prog: %v\n", vm.prog)
	fmt.Fprintf(dump.out, "  base: %v\n", vm.base)
	fmt.Fprintf(dump.out, "  halted: %v\n", vm.halted)
	if vm.err != nil {
		fmt.Fprintf(dump.out, "  error: %v\n", vm.err)
	}
	fmt.Fprintf(dump.out, "  inputs: %v\n", vm.inputs)
	fmt.Fprintf(dump.out, "  outputs: %v\n", vm.outputs)
	dump.dumpMem()
}

func (dump *vmDumper) dumpMem() {
	size := dump.vm.mem.Size()
	if size == 0 {
		return
	}
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.FormatUint(uint64(size-1), 10))
	}
	fmt.Fprintf(dump.out, "# Memory @0:%v\n", size)
	for addr := uint(0); addr < size; {
		mark := ' '
		if addr == dump.vm.prog {
			mark = '>'
		}
		fmt.Fprintf(dump.out, "%c @%*d ", mark, dump.addrWidth, addr)
		if in, err := decode(&dump.vm.mem, addr); err == nil && addr+in.width() <= size {
			fmt.Fprintf(dump.out, "%v\n", in)
			addr += in.width()
		} else {
			fmt.Fprintf(dump.out, "%v\n", dump.vm.mem.At(addr))
			addr++
		}
	}
}
