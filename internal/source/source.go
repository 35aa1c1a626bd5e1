// Package source reads intcode programs in their comma-separated text form.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Location names a line in an input file.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// ErrEmpty is returned when an input contains no values.
var ErrEmpty = errors.New("empty program")

// SyntaxError reports an unparseable value along with its location.
type SyntaxError struct {
	Location
	Token string
	Err   error
}

func (se *SyntaxError) Error() string {
	return fmt.Sprintf("%v: invalid value %q: %v", se.Location, se.Token, se.Err)
}

func (se *SyntaxError) Unwrap() error { return se.Err }

// ReadFile reads a program from the named file.
func ReadFile(name string) ([]int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses comma separated integers from r. Whitespace, including line
// breaks, around values is ignored, as is a single trailing comma.
// If r implements Name() string, it is used in error locations.
func Read(r io.Reader) ([]int64, error) {
	var (
		br     = bufio.NewReader(r)
		loc    = Location{Name: nameOf(r), Line: 1}
		tokLoc = loc
		values []int64
		tok    strings.Builder
		commas int
	)

	emit := func() error {
		s := tok.String()
		tok.Reset()
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			var ne *strconv.NumError
			if errors.As(err, &ne) {
				err = ne.Err
			}
			return &SyntaxError{tokLoc, s, err}
		}
		values = append(values, n)
		return nil
	}

	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch {
		case c == ',':
			if err := emit(); err != nil {
				return nil, err
			}
			if len(values) != commas+1 {
				return nil, &SyntaxError{loc, ",", errors.New("missing value before comma")}
			}
			commas++
		case unicode.IsSpace(c):
			if c == '\n' {
				loc.Line++
			}
			if tok.Len() > 0 {
				if err := emit(); err != nil {
					return nil, err
				}
			}
		default:
			if tok.Len() == 0 {
				if len(values) > commas {
					return nil, &SyntaxError{loc, string(c), errors.New("missing comma")}
				}
				tokLoc = loc
			}
			tok.WriteRune(c)
		}
	}
	if err := emit(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	return values, nil
}

// Format renders values in the comma separated text form.
func Format(values []int64) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
