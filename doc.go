/* Command intcode: a stored-program integer machine

An intcode program is nothing but a list of integers, conventionally written
on one line separated by commas. The machine loads that list as its memory and
starts decoding instructions at address 0. There is no separation between code
and data: an instruction may overwrite any cell, including cells that will
later be decoded as instructions.

Instructions

The low two decimal digits of an instruction cell select the opcode. Each
higher digit, read least significant first, gives the mode of one parameter:

	0  position   the parameter is an address to read or write
	1  immediate  the parameter is the value itself; never valid as a write target
	2  relative   the parameter is an offset from the relative base

	 1 add   a b -> dst     5 jnz  a target     9 arb  a
	 2 mul   a b -> dst     6 jz   a target    99 halt
	 3 in    -> dst         7 lt   a b -> dst
	 4 out   a              8 eq   a b -> dst

After executing, the instruction pointer advances past the instruction and its
parameters, unless a jump was taken. Halting leaves it on the halt.

Memory

Memory grows on demand: any cell past the end of the loaded program reads as 0,
and writing to it extends memory, zero filling the gap. Addresses are never
negative; a relative base may be, so long as the addresses it resolves are not.

Input and Output

Input instructions take values from the front of a queue that the caller fills
before running. An empty queue is a fatal error, not a pause. Output
instructions append to a log, which the caller reads back by index; negative
indices count from the most recent output.

Usage

	intcode run prog.ic -i 1           # queue input 1, print outputs
	intcode run prog.ic --patch 1=12 --patch 2=2 --print-mem 0
	intcode run prog.ic --print-program    # final memory, comma separated
	intcode search prog.ic --target 19690720
	intcode dump prog.ic --run -i 5

*/
package main
