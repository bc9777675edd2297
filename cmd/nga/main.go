// Command nga hosts the Nga virtual machine: it loads a boot image (the
// embedded default, or one given with -image), registers the standard
// devices, and drives the source evaluator over the files named on the
// command line, falling back to an interactive line editor when none are
// given and standard input is a terminal.
package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"github.com/ngavm/nga/internal/bootimage"
	"github.com/ngavm/nga/internal/device"
	"github.com/ngavm/nga/internal/evaluator"
	"github.com/ngavm/nga/internal/flushio"
	"github.com/ngavm/nga/internal/logio"
	"github.com/ngavm/nga/internal/panicerr"
	"github.com/ngavm/nga/internal/vm"
)

func main() {
	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	app := &cli.App{
		Name:      "nga",
		Usage:     "run a Nga virtual machine image or Forth source file",
		ArgsUsage: "[image_or_script] [args...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "f", Usage: "queue an additional source file to include (repeatable)"},
			&cli.StringFlag{Name: "image", Usage: "load an alternate boot image instead of the embedded default"},
			&cli.UintFlag{Name: "mem-limit", Value: uint(vm.DefaultConfig.ImageSize), Usage: "cell memory limit (IMAGE_SIZE)"},
			&cli.UintFlag{Name: "stack-depth", Value: uint(vm.DefaultConfig.StackDepth), Usage: "data stack capacity"},
			&cli.UintFlag{Name: "address-depth", Value: uint(vm.DefaultConfig.AddressDepth), Usage: "return stack capacity"},
			&cli.BoolFlag{Name: "trace", Usage: "enable opcode trace logging"},
			&cli.BoolFlag{Name: "dump", Usage: "print a stack dump after execution"},
			&cli.DurationFlag{Name: "timeout", Usage: "abort execution after a time limit"},
		},
		Action: func(c *cli.Context) error {
			return run(c, &log)
		},
	}

	log.ErrorIf(app.Run(os.Args))
}

func run(c *cli.Context, log *logio.Logger) error {
	ctx := context.Background()
	if timeout := c.Duration("timeout"); timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cfg := vm.Config{
		ImageSize:    int32(c.Uint("mem-limit")),
		StackDepth:   int32(c.Uint("stack-depth")),
		AddressDepth: int32(c.Uint("address-depth")),
	}

	var ev *evaluator.Evaluator
	scripting := device.NewScripting(os.Args, func(path string) error {
		return ev.Include(ctx, path)
	})

	fs := device.NewFilesystem()
	out := flushio.NewWriteFlusher(os.Stdout)

	opts := []vm.Option{
		vm.WithConfig(cfg),
		vm.WithDevices(
			device.NewConsole(out),
			device.NewKeyboard(os.Stdin),
			fs,
			device.NewShell(fs.Files()),
			scripting,
			device.NewRandom(),
		),
	}
	if c.Bool("trace") {
		opts = append(opts, vm.WithLogf(log.Leveledf("TRACE")))
	}

	m := vm.New(opts...)

	cells, err := loadCells(c.String("image"))
	if err != nil {
		return err
	}
	if err := m.LoadImage(cells); err != nil {
		return err
	}

	tib := m.ResolveTIB(bootimage.DefaultLayout.TIBAddr)
	ev, err = evaluator.New(m, tib)
	if err != nil {
		return err
	}

	if c.Bool("dump") {
		defer func() { log.ErrorIf(m.Dump(os.Stderr)) }()
	}

	// argv[0] is itself offered to the evaluator, enabling a launcher
	// preamble (spec.md Section 6.3). Each include runs isolated so a
	// panic escaping a misbehaving device (one that reaches past the VM's
	// own recovered HaltError boundary) is reported as an error rather
	// than taking the whole process down.
	if err := isolatedInclude(ctx, ev, os.Args[0]); err != nil {
		return err
	}

	for _, path := range c.StringSlice("f") {
		if err := isolatedInclude(ctx, ev, path); err != nil {
			return err
		}
	}

	if script := c.Args().First(); script != "" {
		if err := isolatedInclude(ctx, ev, script); err != nil {
			return err
		}
		// The script form reports a data stack it leaves non-empty; with
		// -dump the deferred dump above already prints it to stderr.
		if m.DataDepth() > 0 && !c.Bool("dump") {
			return m.Dump(os.Stdout)
		}
		return nil
	}

	if info, statErr := os.Stdin.Stat(); statErr == nil && (info.Mode()&os.ModeCharDevice) != 0 {
		return runInteractive(ctx, ev)
	}
	return panicerr.Recover("stdin", func() error {
		return ev.Run(ctx, bufio.NewReader(os.Stdin))
	})
}

func isolatedInclude(ctx context.Context, ev *evaluator.Evaluator, path string) error {
	return panicerr.Recover(path, func() error {
		return ev.Include(ctx, path)
	})
}

func loadCells(path string) ([]int32, error) {
	if path == "" {
		return bootimage.Cells, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cells []int32
	for {
		var v int32
		if err := binary.Read(f, binary.LittleEndian, &v); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		cells = append(cells, v)
	}
	return cells, nil
}

// runInteractive drives the evaluator from a readline-backed REPL when no
// script was named and stdin is a terminal, echoing prompts and retaining
// history the way an interactive Forth listener would.
func runInteractive(ctx context.Context, ev *evaluator.Evaluator) error {
	rl, err := readline.New("nga> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}
		if err := ev.EvaluateLine(ctx, line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
