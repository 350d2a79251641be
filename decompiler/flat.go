package decompiler

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Translator is the flat alternative to Decompiler: every run of
// instructions becomes one line and no idioms are recognized.
type Translator struct {
	DataPointer int

	Debug  bool
	Logger logrus.FieldLogger

	instructionPointer int
	instructionBuffer  []byte

	depth int
	lines []Line
}

func NewTranslator() *Translator {
	return &Translator{
		Logger:            logrus.StandardLogger(),
		instructionBuffer: []byte{},
	}
}

func (p *Translator) Load(instructions []byte) {
	p.instructionBuffer = instructions
	p.instructionPointer = 0
	p.depth = 0
	p.lines = nil
}

// Execute translates the loaded instructions. It stops at the first byte
// outside the instruction set.
func (p *Translator) Execute() ([]Line, error) {
	for p.instructionPointer < len(p.instructionBuffer) {
		instruction := p.instructionBuffer[p.instructionPointer]

		if p.Debug {
			p.Logger.WithFields(logrus.Fields{
				"pos": p.instructionPointer,
				"ptr": p.DataPointer,
			}).Debugf("translate %q", instruction)
		}

		switch instruction {
		case InstMoveRight:
			p.DataPointer++
		case InstMoveLeft:
			p.DataPointer--
		case InstIncrement, InstDecrement:
			p.Run(instruction)
			continue
		case InstOutput:
			p.emit(OpOutput, fmt.Sprintf("putchar(%s)", cell(p.DataPointer)))
		case InstInput:
			p.emit(OpInput, fmt.Sprintf("%s = getchar()", cell(p.DataPointer)))
		case InstLoopStart:
			p.emit(OpLoop, fmt.Sprintf("while %s:", cell(p.DataPointer)))
			p.depth++
		case InstLoopEnd:
			if p.depth == 0 {
				return p.lines, fmt.Errorf("at %d: %w", p.instructionPointer, ErrUnmatchedLoopEnd)
			}
			p.depth--
		default:
			return p.lines, fmt.Errorf("at %d: %w %q", p.instructionPointer, ErrUnknownSymbol, instruction)
		}

		p.instructionPointer++
	}
	return p.lines, nil
}

// Run consumes a run of the given '+' or '-' instruction and emits it as a
// single line.
func (p *Translator) Run(instruction byte) {
	start := p.instructionPointer
	for p.instructionPointer < len(p.instructionBuffer) && p.instructionBuffer[p.instructionPointer] == instruction {
		p.instructionPointer++
	}
	run := string(p.instructionBuffer[start:p.instructionPointer])
	p.lines = append(p.lines, Line{
		Indent: p.depth,
		Op:     OpAdd,
		Pos:    start,
		Text:   cell(p.DataPointer) + " " + Delta(run),
	})
}

func (p *Translator) emit(op Op, text string) {
	p.lines = append(p.lines, Line{
		Indent: p.depth,
		Op:     op,
		Pos:    p.instructionPointer,
		Text:   text,
	})
}

// ExpectEnd reports loops still open after Execute.
func (p *Translator) ExpectEnd() error {
	if p.depth > 0 {
		return fmt.Errorf("%w: %d still open at end of program", ErrUnmatchedLoopStart, p.depth)
	}
	return nil
}
