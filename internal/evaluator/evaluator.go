package evaluator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ngavm/nga/internal/fileinput"
	"github.com/ngavm/nga/internal/vm"
)

// Evaluator drives the outer evaluation loop: it owns the VM's cached
// interpret entry point and TIB address, and re-enters the VM once per
// token (spec.md Section 4.6).
type Evaluator struct {
	m         *vm.Machine
	interpret int32
	tib       int32
}

// New resolves interpret from m's dictionary and returns an Evaluator
// that injects tokens at tib.
func New(m *vm.Machine, tib int32) (*Evaluator, error) {
	xt, err := m.XTFor("interpret")
	if err != nil {
		return nil, err
	}
	return &Evaluator{m: m, interpret: xt, tib: tib}, nil
}

// Evaluate injects token into the TIB and calls execute(interpret). An
// empty token is a no-op (spec.md Section 4.6, scenario F).
func (e *Evaluator) Evaluate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if _, err := e.m.Inject([]byte(token), e.tib); err != nil {
		return err
	}
	if err := e.m.Push(e.tib); err != nil {
		return err
	}
	return e.m.Execute(ctx, e.interpret)
}

// Run reads fence-filtered tokens from r and evaluates each in turn.
func (e *Evaluator) Run(ctx context.Context, r io.ByteReader) error {
	src := NewSource(r)
	for {
		tok, eof := src.Next()
		if eof {
			return nil
		}
		if err := e.Evaluate(ctx, tok); err != nil {
			return err
		}
	}
}

// runeByteReader adapts an io.RuneReader (fileinput.Input tracks location
// by reading runes) down to the io.ByteReader the tokenizer wants; source
// text is always ASCII, so truncating each rune to its low byte is exact.
type runeByteReader struct{ rr io.RuneReader }

func (r runeByteReader) ReadByte() (byte, error) {
	ru, _, err := r.rr.ReadRune()
	return byte(ru), err
}

// EvaluateLine evaluates every whitespace-separated token in line,
// unconditionally -- unlike Run/Include, it does not require a ~~~ fence.
// Interactive input is typed directly, with no literate-source
// convention to opt into.
func (e *Evaluator) EvaluateLine(ctx context.Context, line string) error {
	r := bufio.NewReader(strings.NewReader(line))
	for {
		tok, eof := readToken(r)
		if eof {
			return nil
		}
		if err := e.Evaluate(ctx, tok); err != nil {
			return err
		}
	}
}

// Include opens path and evaluates its fence-filtered tokens, saving and
// restoring the VM's return stack and instruction pointer around the run
// so a nested include (triggered from a word already executing via the
// scripting device) cannot corrupt its caller's return context (spec.md
// Section 4.6). A missing file is silently ignored, since includes are
// advisory (spec.md Section 7).
func (e *Evaluator) Include(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	saved := e.m.SaveReturn()
	e.m.ResetReturn()
	defer e.m.RestoreReturn(saved)

	in := &fileinput.Input{Queue: []io.Reader{f}}
	if err := e.Run(ctx, runeByteReader{in}); err != nil {
		return fmt.Errorf("%v: %w", in.Scan.Location, err)
	}
	return nil
}
