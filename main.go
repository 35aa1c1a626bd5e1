package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jcorbin/intcode/internal/config"
	"github.com/jcorbin/intcode/internal/logio"
	"github.com/jcorbin/intcode/internal/panicerr"
	"github.com/jcorbin/intcode/internal/source"
	"github.com/spf13/cobra"
)

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)
	cmd := newRootCmd(&log)
	cmd.SetOut(os.Stdout)
	reportError(&log, cmd.Execute())
	os.Exit(log.ExitCode())
}

// reportError logs err, followed by its goroutine stack if it was a panic.
func reportError(log *logio.Logger, err error) {
	log.ErrorIf(err)
	if stack := panicerr.Stack(err); stack != "" {
		log.Printf("STACK", "%s", stack)
	}
}

type runner struct {
	log *logio.Logger
	cfg config.Config

	configPath string
	verbose    int
	memLimit   uint
	timeout    time.Duration
}

func newRootCmd(log *logio.Logger) *cobra.Command {
	r := &runner{log: log, cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:   "intcode",
		Short: "Run and inspect intcode programs",
		Long: `intcode loads a program in comma separated integer form, runs it on a
virtual machine with position, immediate, and relative addressing, and
reports its output or memory.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&r.configPath, "config", "", "load settings from a TOML file")
	flags.CountVarP(&r.verbose, "verbose", "v", "trace execution; repeat for input, output, and memory growth")
	flags.UintVar(&r.memLimit, "mem-limit", 0, "limit memory growth to this many cells (0 means unlimited)")
	flags.DurationVar(&r.timeout, "timeout", 0, "abort runs after this long (0 means never)")

	rootCmd.AddCommand(r.runCmd(), r.searchCmd(), r.dumpCmd())
	return rootCmd
}

// setup merges any config file under explicitly given flags.
func (r *runner) setup(cmd *cobra.Command, args []string) error {
	if r.configPath != "" {
		cfg, err := config.Load(r.configPath)
		if err != nil {
			return err
		}
		r.cfg = cfg
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		r.cfg.VM.Verbose = r.verbose
	}
	if flags.Changed("mem-limit") {
		r.cfg.VM.MemLimit = r.memLimit
	}
	if flags.Changed("timeout") {
		r.cfg.VM.Timeout.Duration = r.timeout
	}
	return nil
}

func (r *runner) context() (context.Context, context.CancelFunc) {
	ctx := context.Background()
	if timeout := r.cfg.VM.Timeout.Duration; timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

func (r *runner) load(path string, opts ...VMOption) (*VM, error) {
	prog, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(
		WithProgram(prog),
		WithMemLimit(r.cfg.VM.MemLimit),
		WithLogf(r.log.Leveledf("TRACE")),
		WithVerbose(r.cfg.VM.Verbose),
		VMOptions(opts...),
	), nil
}

func (r *runner) runCmd() *cobra.Command {
	var (
		inputs   []int64
		patches  []string
		printMem []uint
		printImg bool
		dumpErr  bool
	)
	cmd := &cobra.Command{
		Use:   "run PROGRAM",
		Short: "Run a program to halt, printing each output on its own line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			vm, err := r.load(args[0], WithInputs(inputs...), WithOutput(out))
			if err != nil {
				return err
			}
			if err := applyPatches(vm, patches); err != nil {
				return err
			}

			ctx, cancel := r.context()
			defer cancel()
			if err := vm.RunUntilHalt(ctx); err != nil {
				if dumpErr {
					vm.Dump(cmd.ErrOrStderr())
				}
				return err
			}

			for _, addr := range printMem {
				fmt.Fprintf(out, "@%v %v\n", addr, vm.GetIndex(addr))
			}
			if printImg {
				fmt.Fprintln(out, source.Format(vm.Memory()))
			}
			return nil
		},
	}
	cmd.Flags().Int64SliceVarP(&inputs, "input", "i", nil, "queue input values, in order")
	cmd.Flags().StringArrayVar(&patches, "patch", nil, "set a memory cell before running, as ADDR=VALUE")
	cmd.Flags().UintSliceVar(&printMem, "print-mem", nil, "print memory cells after halting")
	cmd.Flags().BoolVar(&printImg, "print-program", false, "print all memory after halting, in program form")
	cmd.Flags().BoolVar(&dumpErr, "dump-on-error", false, "dump VM state to stderr if the run fails")
	return cmd
}

func (r *runner) searchCmd() *cobra.Command {
	var (
		params  SearchParams
		workers int
	)
	cmd := &cobra.Command{
		Use:   "search PROGRAM",
		Short: "Find the noun and verb that make a program leave a target value in cell 0",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			cfg := r.cfg.Search
			if !flags.Changed("target") {
				params.Target = cfg.Target
			}
			if !flags.Changed("max") {
				params.Max = cfg.Max
			}
			if !flags.Changed("noun-addr") {
				params.NounAddr = cfg.NounAddr
			}
			if !flags.Changed("verb-addr") {
				params.VerbAddr = cfg.VerbAddr
			}
			params.Workers = cfg.Workers
			if flags.Changed("workers") {
				params.Workers = workers
			}

			vm, err := r.load(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := r.context()
			defer cancel()
			res, err := Search(ctx, vm, params)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "noun=%v verb=%v answer=%v\n", res.Noun, res.Verb, res.Answer())
			return err
		},
	}
	cmd.Flags().Int64Var(&params.Target, "target", 0, "value wanted in the result cell")
	cmd.Flags().Int64Var(&params.Max, "max", 99, "inclusive upper bound for noun and verb")
	cmd.Flags().UintVar(&params.NounAddr, "noun-addr", 1, "memory cell patched with the noun")
	cmd.Flags().UintVar(&params.VerbAddr, "verb-addr", 2, "memory cell patched with the verb")
	cmd.Flags().UintVar(&params.ResultAddr, "result-addr", 0, "memory cell compared against the target")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent candidate runs (0 means GOMAXPROCS)")
	return cmd
}

func (r *runner) dumpCmd() *cobra.Command {
	var (
		run    bool
		inputs []int64
	)
	cmd := &cobra.Command{
		Use:   "dump PROGRAM",
		Short: "Print a program's disassembly, optionally after running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := r.load(args[0], WithInputs(inputs...))
			if err != nil {
				return err
			}
			if run {
				ctx, cancel := r.context()
				defer cancel()
				err = vm.RunUntilHalt(ctx)
			}
			vm.Dump(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().BoolVar(&run, "run", false, "run the program before dumping")
	cmd.Flags().Int64SliceVarP(&inputs, "input", "i", nil, "queue input values, in order")
	return cmd
}

func applyPatches(vm *VM, patches []string) error {
	for _, patch := range patches {
		addr, val, err := parsePatch(patch)
		if err != nil {
			return err
		}
		if err := vm.SetIndex(addr, val); err != nil {
			return err
		}
	}
	return nil
}

func parsePatch(patch string) (uint, int64, error) {
	addrStr, valStr, ok := strings.Cut(patch, "=")
	if !ok {
		return 0, 0, fmt.Errorf("invalid patch %q, expected ADDR=VALUE", patch)
	}
	addr, err := strconv.ParseUint(strings.TrimSpace(addrStr), 10, strconv.IntSize)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid patch %q address: %w", patch, err)
	}
	val, err := strconv.ParseInt(strings.TrimSpace(valStr), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid patch %q value: %w", patch, err)
	}
	return uint(addr), val, nil
}
