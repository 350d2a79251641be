package decompiler

import (
	"fmt"
	"strings"
)

type elem int

const (
	elemShift elem = iota
	elemOptShift
	elemLoopStart
	elemLoopEnd
	elemInc
	elemDec
	elemAdd
	elemInput
	elemOutput
)

var elemNames = map[string]elem{
	"S":  elemShift,
	"S?": elemOptShift,
	"[":  elemLoopStart,
	"]":  elemLoopEnd,
	"+":  elemInc,
	"-":  elemDec,
	"A":  elemAdd,
	",":  elemInput,
	".":  elemOutput,
}

// parseShape turns a space separated shape description into its elements.
// S is a shift run that gets captured, S? an optional one (captured as 0
// when absent), A any run of '+' or '-', and the instruction symbols stand
// for themselves, with '+' and '-' matching a single instruction only.
func parseShape(s string) ([]elem, error) {
	var shape []elem
	for _, f := range strings.Fields(s) {
		e, ok := elemNames[f]
		if !ok {
			return nil, fmt.Errorf("unknown shape element %q", f)
		}
		shape = append(shape, e)
	}
	return shape, nil
}

func mustShape(s string) []elem {
	shape, err := parseShape(s)
	if err != nil {
		panic(err)
	}
	return shape
}

// Match is a successful idiom match at the current cursor.
type Match struct {
	// Ptr is the pointer offset when the match begins.
	Ptr int
	// Captures holds the displacement of every captured shift run, in
	// source order.
	Captures []int
	Tokens   []Token
}

// Offset returns the pointer offset after the first n captures.
func (m Match) Offset(n int) int {
	off := m.Ptr
	for _, c := range m.Captures[:n] {
		off += c
	}
	return off
}

// End returns the pointer offset after the whole match.
func (m Match) End() int {
	return m.Offset(len(m.Captures))
}

// Idiom is one entry of the pattern table. Emit may be nil for idioms that
// only move the pointer.
type Idiom struct {
	Name  string
	Op    Op
	shape []elem
	Guard func(m Match) bool
	Emit  func(m Match, cur *Cursors) string
}

func (id *Idiom) Match(tokens []Token, ptr int) (Match, bool) {
	m := Match{Ptr: ptr}
	i := 0
	for _, e := range id.shape {
		if e == elemOptShift {
			if i < len(tokens) && tokens[i].Kind == TokenShift {
				m.Captures = append(m.Captures, tokens[i].Delta)
				i++
			} else {
				m.Captures = append(m.Captures, 0)
			}
			continue
		}
		if i >= len(tokens) {
			return Match{}, false
		}
		t := tokens[i]
		switch e {
		case elemShift:
			if t.Kind != TokenShift {
				return Match{}, false
			}
			m.Captures = append(m.Captures, t.Delta)
		case elemLoopStart:
			if t.Kind != TokenLoopStart {
				return Match{}, false
			}
		case elemLoopEnd:
			if t.Kind != TokenLoopEnd {
				return Match{}, false
			}
		case elemInc:
			if t.Kind != TokenAdd || t.Delta != 1 {
				return Match{}, false
			}
		case elemDec:
			if t.Kind != TokenAdd || t.Delta != -1 {
				return Match{}, false
			}
		case elemAdd:
			if t.Kind != TokenAdd {
				return Match{}, false
			}
		case elemInput:
			if t.Kind != TokenInput {
				return Match{}, false
			}
		case elemOutput:
			if t.Kind != TokenOutput {
				return Match{}, false
			}
		}
		i++
	}
	m.Tokens = tokens[:i]
	if id.Guard != nil && !id.Guard(m) {
		return Match{}, false
	}
	return m, true
}

// Idioms is the pattern table in priority order; the first match wins, so
// longer idioms come before the runs they are built from.
var Idioms = []*Idiom{
	{
		Name:  "multiply",
		Op:    OpMulAdd,
		shape: mustShape("S? [ - S? [ - ] S [ - ] S [ - S + S + S ] S [ - S + S ] S? [ - S + S ] S? ]"),
		Emit: func(m Match, _ *Cursors) string {
			return fmt.Sprintf("%s += %s * %s", cell(m.Offset(12)), cell(m.Offset(4)), cell(m.Offset(1)))
		},
	},
	{
		Name:  "copy-add",
		Op:    OpAdd,
		shape: mustShape("S? [ - ] S [ - ] S [ - S + S + S ] S [ - S + S ] S? [ - S + S ]"),
		Emit: func(m Match, _ *Cursors) string {
			return fmt.Sprintf("%s += %s", cell(m.Offset(11)), cell(m.Offset(3)))
		},
	},
	{
		Name:  "copy",
		Op:    OpAssign,
		shape: mustShape("S? [ - ] S [ - ] S [ - S + S + S ] S [ - S + S ] S"),
		Emit: func(m Match, _ *Cursors) string {
			return fmt.Sprintf("%s = %s", cell(m.Offset(1)), cell(m.Offset(3)))
		},
	},
	{
		Name:  "move-add",
		Op:    OpAdd,
		shape: mustShape("[ - S + S ]"),
		Guard: func(m Match) bool {
			return m.End() == m.Ptr
		},
		Emit: func(m Match, _ *Cursors) string {
			return fmt.Sprintf("%s += %s", cell(m.Offset(1)), cell(m.Ptr))
		},
	},
	{
		Name:  "clear",
		Op:    OpClear,
		shape: mustShape("[ - ]"),
		Emit: func(m Match, _ *Cursors) string {
			return cell(m.Ptr) + " = 0"
		},
	},
	{
		Name:  "shift",
		shape: mustShape("S"),
	},
	{
		Name:  "add",
		Op:    OpAdd,
		shape: mustShape("A"),
		Emit: func(m Match, _ *Cursors) string {
			return cell(m.Ptr) + " " + Delta(m.Tokens[0].Text)
		},
	},
	{
		Name:  "input",
		Op:    OpInput,
		shape: mustShape(","),
		Emit: func(m Match, cur *Cursors) string {
			var src string
			switch {
			case cur.Input < cur.InputLimit:
				src = fmt.Sprintf("input[%d]", cur.Input)
			case cur.BitAdd >= cur.BitAddLimit:
				src = "0x30"
			default:
				src = "1"
			}
			cur.Input++
			return cell(m.Ptr) + " = " + src
		},
	},
	{
		Name:  "output",
		Op:    OpOutput,
		shape: mustShape("."),
		Emit: func(m Match, cur *Cursors) string {
			s := fmt.Sprintf("cmp %s, data[%d]", cell(m.Ptr), cur.Data)
			cur.Data++
			return s
		},
	},
}
