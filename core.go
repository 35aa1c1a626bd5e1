package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcorbin/intcode/internal/flushio"
)

// ioCore holds the external channel between a VM and its caller: an input
// queue consumed from the front, an append-only output log, and an optional
// stream that receives each output as a decimal line.
type ioCore struct {
	logging

	inputs  []int64
	outputs []int64
	out     flushio.WriteFlusher
}

func (ioc *ioCore) readInput() (int64, bool) {
	if len(ioc.inputs) == 0 {
		return 0, false
	}
	val := ioc.inputs[0]
	ioc.inputs = ioc.inputs[1:]
	return val, true
}

func (ioc *ioCore) writeOutput(val int64) error {
	ioc.outputs = append(ioc.outputs, val)
	if ioc.out == nil || ioc.out == flushio.Discard {
		return nil
	}
	var buf [24]byte
	b := strconv.AppendInt(buf[:0], val, 10)
	_, err := ioc.out.Write(append(b, '\n'))
	return err
}

func (ioc *ioCore) flush() error {
	if ioc.out == nil {
		return nil
	}
	return ioc.out.Flush()
}

func (ioc *ioCore) resetIO() {
	ioc.inputs = nil
	ioc.outputs = ioc.outputs[:0]
}

// OutputRangeError is returned by GetOutput for an index that does not
// resolve to a stored output.
type OutputRangeError struct {
	Index int
	Len   int
}

func (ore *OutputRangeError) Error() string {
	if ore.Len == 0 {
		return fmt.Sprintf("output index %v out of range: no outputs", ore.Index)
	}
	return fmt.Sprintf("output index %v out of range [%v:%v]", ore.Index, -ore.Len, ore.Len)
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	if logfn == nil {
		return func() {}
	}
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark += strings.Repeat(" ", n)
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
