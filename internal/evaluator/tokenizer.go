// Package evaluator tokenizes source text, injects each token into the
// VM's text-input buffer, and calls back into the VM at its interpret
// entry point, preserving the return stack across nested source inclusion
// (spec.md Section 4.6).
package evaluator

import "io"

// isSeparator reports whether b is a token boundary: space, tab, LF, CR,
// or NUL (spec.md Section 4.6; EOF is handled separately by the reader).
func isSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', 0:
		return true
	}
	return false
}

// isBackspace reports whether b edits the in-progress token rather than
// extending it -- used interactively, where a human typing a line can
// send BS (8) or DEL (127) to erase the previous character.
func isBackspace(b byte) bool { return b == 8 || b == 127 }

// readToken reads the next whitespace-delimited token from r, applying
// backspace/delete editing to the accumulated bytes as it goes. Returns
// io.EOF (via eof=true) once no more tokens remain.
func readToken(r io.ByteReader) (tok string, eof bool) {
	var ch byte
	var err error
	for {
		ch, err = r.ReadByte()
		if err != nil {
			return "", true
		}
		if !isSeparator(ch) {
			break
		}
	}

	var buf []byte
	for {
		if isBackspace(ch) {
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		} else {
			buf = append(buf, ch)
		}
		ch, err = r.ReadByte()
		if err != nil || isSeparator(ch) {
			break
		}
	}
	return string(buf), false
}

const fence = "~~~"

// Source streams fence-filtered tokens from an underlying reader: a token
// consisting of exactly three leading tildes toggles an "in code block"
// flag, and only tokens read while inside a block are surfaced (spec.md
// Section 4.6). This mirrors a literate-source convention where prose
// outside ~~~ fences is commentary, not code.
type Source struct {
	r       io.ByteReader
	inBlock bool
}

// NewSource wraps r for fence-filtered tokenization.
func NewSource(r io.ByteReader) *Source {
	return &Source{r: r}
}

// Next returns the next token that should be evaluated, or eof=true once
// the underlying reader is exhausted.
func (s *Source) Next() (string, bool) {
	for {
		tok, eof := readToken(s.r)
		if eof {
			return "", true
		}
		if tok == fence {
			s.inBlock = !s.inBlock
			continue
		}
		if !s.inBlock {
			continue
		}
		return tok, false
	}
}
