package source_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jcorbin/intcode/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedReader struct {
	*strings.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func TestRead(t *testing.T) {
	for _, tc := range []struct {
		name  string
		in    string
		want  []int64
		err   string
		isErr error
	}{
		{name: "single", in: "99", want: []int64{99}},
		{name: "simple", in: "1,0,0,3,99", want: []int64{1, 0, 0, 3, 99}},
		{name: "trailing newline", in: "1002,4,3,4,33\n", want: []int64{1002, 4, 3, 4, 33}},
		{name: "trailing comma", in: "3,0,4,0,99,\n", want: []int64{3, 0, 4, 0, 99}},
		{name: "spaced", in: " 109, -1 ,\n\t204,1,\n99 ", want: []int64{109, -1, 204, 1, 99}},
		{name: "large", in: "104,1125899906842624,99", want: []int64{104, 1125899906842624, 99}},

		{name: "empty", in: "", isErr: source.ErrEmpty},
		{name: "blank", in: " \n \n", isErr: source.ErrEmpty},
		{name: "bad token", in: "1,2,\nx3,4", err: `test.ic:2: invalid value "x3": invalid syntax`},
		{name: "double comma", in: "1,,2", err: `test.ic:1: invalid value ",": missing value before comma`},
		{name: "leading comma", in: ",1", err: `test.ic:1: invalid value ",": missing value before comma`},
		{name: "missing comma", in: "1\n2", err: `test.ic:2: invalid value "2": missing comma`},
		{name: "overflow", in: "99999999999999999999", isErr: strconv.ErrRange},
	} {
		t.Run(tc.name, func(t *testing.T) {
			values, err := source.Read(namedReader{strings.NewReader(tc.in), "test.ic"})
			switch {
			case tc.isErr != nil:
				assert.True(t, errors.Is(err, tc.isErr), "expected %v, got %v", tc.isErr, err)
			case tc.err != "":
				assert.EqualError(t, err, tc.err)
				var se *source.SyntaxError
				assert.True(t, errors.As(err, &se), "expected a SyntaxError")
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, values)
				again, err := source.Read(strings.NewReader(source.Format(values)))
				require.NoError(t, err, "formatted values must parse")
				assert.Equal(t, values, again, "expected format round trip")
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "prog.ic")
	require.NoError(t, os.WriteFile(name, []byte("1,9,10,3,2,3,11,0,99,30,40,50\n"), 0o644))

	values, err := source.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, values)

	_, err = source.ReadFile(filepath.Join(t.TempDir(), "missing.ic"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected not exist, got %v", err)

	require.NoError(t, os.WriteFile(name, []byte("1,2\n3"), 0o644))
	_, err = source.ReadFile(name)
	assert.EqualError(t, err, name+`:2: invalid value "3": missing comma`)
}
