package mem

import "fmt"

// LimitError indicates that a memory operation, like load or store, exceeded a limit.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.Op, lim.Addr)
}

func checkLimit(limit, addr uint, op string) error {
	if limit != 0 && addr > limit {
		return LimitError{addr, op}
	}
	return nil
}
