package decompiler

import "fmt"

type TokenKind int

const (
	TokenShift TokenKind = iota
	TokenAdd
	TokenLoopStart
	TokenLoopEnd
	TokenInput
	TokenOutput
	TokenUnknown
)

func (k TokenKind) String() string {
	switch k {
	case TokenShift:
		return "shift"
	case TokenAdd:
		return "add"
	case TokenLoopStart:
		return "loop-start"
	case TokenLoopEnd:
		return "loop-end"
	case TokenInput:
		return "input"
	case TokenOutput:
		return "output"
	}
	return "unknown"
}

// Token is a maximal run of instructions that the idiom table treats as one
// unit. Shift tokens cover any mix of '<' and '>', Add tokens a run of a
// single one of '+' or '-'; every other symbol is a token of its own.
type Token struct {
	Kind  TokenKind
	Delta int
	Pos   int
	Text  string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q@%d)", t.Kind, t.Text, t.Pos)
}

// Program is an immutable instruction sequence.
type Program []byte

// Tokenize splits the program into runs.
func (p Program) Tokenize() []Token {
	var tokens []Token
	for i := 0; i < len(p); {
		start := i
		b := p[i]
		switch b {
		case InstMoveRight, InstMoveLeft:
			for i < len(p) && (p[i] == InstMoveRight || p[i] == InstMoveLeft) {
				i++
			}
			run := string(p[start:i])
			tokens = append(tokens, Token{Kind: TokenShift, Delta: Displacement(run), Pos: start, Text: run})
			continue
		case InstIncrement, InstDecrement:
			for i < len(p) && p[i] == b {
				i++
			}
			n := i - start
			if b == InstDecrement {
				n = -n
			}
			tokens = append(tokens, Token{Kind: TokenAdd, Delta: n, Pos: start, Text: string(p[start:i])})
			continue
		case InstLoopStart:
			tokens = append(tokens, Token{Kind: TokenLoopStart, Pos: start, Text: "["})
		case InstLoopEnd:
			tokens = append(tokens, Token{Kind: TokenLoopEnd, Pos: start, Text: "]"})
		case InstInput:
			tokens = append(tokens, Token{Kind: TokenInput, Pos: start, Text: ","})
		case InstOutput:
			tokens = append(tokens, Token{Kind: TokenOutput, Pos: start, Text: "."})
		default:
			tokens = append(tokens, Token{Kind: TokenUnknown, Pos: start, Text: string(b)})
		}
		i++
	}
	return tokens
}
