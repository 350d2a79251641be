package decompiler

import (
	"fmt"
	"io"
	"strings"
)

type Op int

const (
	OpAssign Op = iota
	OpAdd
	OpMulAdd
	OpClear
	OpLoop
	OpInput
	OpOutput
)

// Line is one emitted pseudocode statement.
type Line struct {
	Indent int
	Op     Op

	// Pos is the source position of the first instruction the line covers.
	Pos   int
	Idiom string
	Text  string
}

func (l Line) String() string {
	return l.Format("\t")
}

// Format renders the line prefixed by Indent copies of unit.
func (l Line) Format(unit string) string {
	return strings.Repeat(unit, l.Indent) + l.Text
}

// WriteLines writes one formatted line per entry to w.
func WriteLines(w io.Writer, lines []Line, unit string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l.Format(unit)); err != nil {
			return err
		}
	}
	return nil
}

func cell(ptr int) string {
	return fmt.Sprintf("cell[%d]", ptr)
}
