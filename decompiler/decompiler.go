package decompiler

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnmatchedLoopStart = errors.New("loop start without matching loop end")
	ErrUnmatchedLoopEnd   = errors.New("loop end without matching loop start")
	ErrUnknownSymbol      = errors.New("unknown symbol")
)

// Decompiler turns a program into indented pseudocode, collapsing known
// idioms into single statements.
type Decompiler struct {
	// Cursors are read and advanced by input and output instructions.
	Cursors *Cursors

	// Strict makes unknown symbols and stray loop ends fail instead of
	// being skipped.
	Strict bool

	Logger logrus.FieldLogger

	program Program
	tokens  []Token
	lines   []Line
}

// Result is the outcome of one decompilation.
type Result struct {
	Lines []Line
	// Pointer is the pointer offset observed at the end of the program.
	Pointer int
}

func NewDecompiler(cursors *Cursors) *Decompiler {
	if cursors == nil {
		cursors = NewCursors()
	}
	return &Decompiler{
		Cursors: cursors,
		Logger:  logrus.StandardLogger(),
	}
}

func (d *Decompiler) Load(program []byte) {
	d.program = Program(program)
	d.tokens = d.program.Tokenize()
}

// Decompile scans the loaded program starting at pointer offset ptr.
func (d *Decompiler) Decompile(ptr int) (*Result, error) {
	d.lines = nil
	end, err := d.scan(d.tokens, ptr, 0)
	if err != nil {
		return nil, err
	}
	return &Result{Lines: d.lines, Pointer: end}, nil
}

// scan emits the lines for tokens and returns the final pointer offset.
func (d *Decompiler) scan(tokens []Token, ptr, indent int) (int, error) {
	for cursor := 0; cursor < len(tokens); {
		rest := tokens[cursor:]
		if m, id, ok := d.match(rest, ptr); ok {
			if id.Emit != nil {
				d.emit(Line{
					Indent: indent,
					Op:     id.Op,
					Pos:    rest[0].Pos,
					Idiom:  id.Name,
					Text:   id.Emit(m, d.Cursors),
				})
			}
			d.Logger.WithFields(logrus.Fields{
				"pos":   rest[0].Pos,
				"idiom": id.Name,
				"ptr":   ptr,
			}).Debug("matched idiom")
			ptr = m.End()
			cursor += len(m.Tokens)
			continue
		}

		t := rest[0]
		switch t.Kind {
		case TokenLoopStart:
			n, next, err := d.loop(rest, ptr, indent)
			if err != nil {
				return ptr, err
			}
			ptr = next
			cursor += n
			continue
		case TokenLoopEnd:
			if d.Strict {
				return ptr, fmt.Errorf("at %d: %w", t.Pos, ErrUnmatchedLoopEnd)
			}
		default:
			if d.Strict {
				return ptr, fmt.Errorf("at %d: %w %q", t.Pos, ErrUnknownSymbol, t.Text)
			}
		}
		d.Logger.WithField("pos", t.Pos).Debugf("skipping %s", t)
		cursor++
	}
	return ptr, nil
}

func (d *Decompiler) match(tokens []Token, ptr int) (Match, *Idiom, bool) {
	for _, id := range Idioms {
		if m, ok := id.Match(tokens, ptr); ok {
			return m, id, true
		}
	}
	return Match{}, nil, false
}

// loop decomposes the loop starting at tokens[0]. It returns the number of
// tokens consumed, brackets included, and the pointer offset reported by
// the body.
func (d *Decompiler) loop(tokens []Token, ptr, indent int) (int, int, error) {
	depth := 1
	end := -1
	for i := 1; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case TokenLoopStart:
			depth++
		case TokenLoopEnd:
			depth--
		}
		if depth == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return 0, ptr, fmt.Errorf("at %d: %w", tokens[0].Pos, ErrUnmatchedLoopStart)
	}

	d.emit(Line{
		Indent: indent,
		Op:     OpLoop,
		Pos:    tokens[0].Pos,
		Idiom:  "loop",
		Text:   fmt.Sprintf("while %s != 0:", cell(ptr)),
	})
	exit, err := d.scan(tokens[1:end], ptr, indent+1)
	if err != nil {
		return 0, ptr, err
	}
	if exit != ptr {
		d.Logger.WithFields(logrus.Fields{
			"pos":   tokens[0].Pos,
			"entry": ptr,
			"exit":  exit,
		}).Warn("loop body is not displacement neutral")
	}
	return end + 1, exit, nil
}

func (d *Decompiler) emit(l Line) {
	d.lines = append(d.lines, l)
}
