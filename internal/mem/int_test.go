package mem_test

import (
	"log"
	"os"
	"testing"

	"github.com/jcorbin/intcode/internal/logio"
	"github.com/jcorbin/intcode/internal/mem"
	"github.com/jcorbin/intcode/internal/panicerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Ints(t *testing.T) {
	for _, tc := range []intsTestCase{
		intsTest("basic",
			"init", func(t *testing.T, m *mem.Ints) {
				val, err := m.Load(0)
				require.NoError(t, err, "unexpected load error")
				require.Equal(t, int64(0), val, "expected 0 @0")
				require.Equal(t, uint(0), m.Size(), "expected 0 initial size")
			},

			"9 -> 0", func(t *testing.T, m *mem.Ints) {
				require.NoError(t, m.Stor(0, 9), "must stor @0")
				expectMemValueAt(t, m, 0, 9)
				require.Equal(t, uint(1), m.Size(), "expected size to cover @0")
				expectMemValuesAt(t, m, 0, 9, 0, 0, 0)
			},

			"{1, 2, 3} -> 0x9", func(t *testing.T, m *mem.Ints) {
				require.NoError(t, m.Stor(0x9, 1, 2, 3), "must stor @0x9")
				require.Equal(t, uint(0xc), m.Size(), "expected growth to 0xc")
				expectMemValuesAt(t, m, 0,
					9, 0, 0, 0,
					0, 0, 0, 0,
					0, 1, 2, 3,
					0, 0)
			},

			"overwrite", func(t *testing.T, m *mem.Ints) {
				require.NoError(t, m.Stor(0xa, 7), "must stor @0xa")
				expectMemValuesAt(t, m, 0x9, 1, 7, 3)
			},

			"far store allocates in chunks", func(t *testing.T, m *mem.Ints) {
				require.NoError(t, m.Stor(1000, -5), "must stor @1000")
				d := m.Dump()
				assert.Equal(t, uint(1001), d.Size, "expected size")
				assert.Equal(t, 1024, d.Cap, "expected chunked capacity")
				expectMemValuesAt(t, m, 998, 0, 0, -5, 0)
			},
		),

		intsTest("reset reuses and rezeroes",
			"init", func(t *testing.T, m *mem.Ints) {
				m.Reset([]int64{1, 2, 3, 4, 5})
				require.Equal(t, []int64{1, 2, 3, 4, 5}, m.Values())
			},

			"shrink", func(t *testing.T, m *mem.Ints) {
				m.Reset([]int64{6})
				require.Equal(t, uint(1), m.Size())
			},

			"regrow within capacity", func(t *testing.T, m *mem.Ints) {
				require.NoError(t, m.Stor(3, 9), "must stor @3")
				expectMemValuesAt(t, m, 0, 6, 0, 0, 9, 0)
			},
		),

		intsTest("clone independence",
			"init", func(t *testing.T, m *mem.Ints) {
				m.Reset([]int64{10, 20, 30})
				c := m.Clone()
				require.NoError(t, c.Stor(1, 99), "must stor in clone")
				require.NoError(t, c.Stor(50, 1), "must grow clone")
				expectMemValuesAt(t, m, 0, 10, 20, 30)
				assert.Equal(t, uint(3), m.Size(), "original must not grow")
				assert.Equal(t, int64(99), c.At(1), "clone must see its store")
			},
		),

		intsTest("limit",
			"init", func(t *testing.T, m *mem.Ints) {
				m.Limit = 16
				require.NoError(t, m.Stor(16, 1), "stor @limit is allowed")
			},

			"stor past limit", func(t *testing.T, m *mem.Ints) {
				err := m.Stor(15, 1, 2, 3)
				require.Equal(t, mem.LimitError{Addr: 17, Op: "stor"}, err)
				expectMemValueAt(t, m, 15, 0)
			},

			"load past limit", func(t *testing.T, m *mem.Ints) {
				_, err := m.Load(17)
				require.EqualError(t, err, "memory limit exceeded by load @17")
				assert.Equal(t, int64(0), m.At(17), "At ignores the limit")
			},
		),
	} {
		t.Run(tc.name, func(t *testing.T) {
			tcLogOut := &logio.Writer{Logf: t.Logf}
			log.SetOutput(tcLogOut)
			defer log.SetOutput(os.Stderr)

			var m mem.Ints
			defer func() {
				if t.Failed() {
					d := m.Dump()
					t.Logf("size: %v cap: %v", d.Size, d.Cap)
					t.Logf("cells: %v", d.Cells)
				}
			}()

			for _, step := range tc.steps {
				if !t.Run(step.name, func(t *testing.T) {
					isolateTest(t, step.bind(&m))
				}) {
					break
				}
			}
		})
	}
}

func isolateTest(t *testing.T, f func(t *testing.T)) {
	if err := panicerr.Recover(t.Name(), func() error {
		f(t)
		return nil
	}); err != nil {
		t.Logf("%+v", err)
		t.Fail()
	}
}

func expectMemValueAt(t *testing.T, m *mem.Ints, addr uint, value int64) {
	val, err := m.Load(addr)
	require.NoError(t, err, "unexpected load @0x%x error", addr)
	require.Equal(t, value, val, "expected value @0x%x", addr)
}

func expectMemValuesAt(t *testing.T, m *mem.Ints, addr uint, values ...int64) {
	buf := make([]int64, len(values))
	for i := range buf {
		val, err := m.Load(addr + uint(i))
		require.NoError(t, err, "must load @0x%x", addr+uint(i))
		buf[i] = val
	}
	require.Equal(t, values, buf, "expected values @0x%x", addr)
}

func intsTest(name string, args ...interface{}) (tc intsTestCase) {
	tc.name = name
	for i := 0; i < len(args); i++ {
		var step intsTestStep
		step.name = args[i].(string)
		if i++; i >= len(args) {
			panic("intsTest: missing function argument after name")
		}
		step.f = args[i].(func(t *testing.T, m *mem.Ints))
		tc.steps = append(tc.steps, step)
	}
	return tc
}

type intsTestCase struct {
	name  string
	steps []intsTestStep
}

type intsTestStep struct {
	name string
	f    func(t *testing.T, m *mem.Ints)

	m *mem.Ints
}

func (step intsTestStep) bind(m *mem.Ints) func(t *testing.T) {
	step.m = m
	return step.boundTest
}

func (step intsTestStep) boundTest(t *testing.T) {
	step.f(t, step.m)
}
