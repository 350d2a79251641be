package decompiler

const (
	InstMoveRight byte = '>'
	InstMoveLeft  byte = '<'
	InstIncrement byte = '+'
	InstDecrement byte = '-'
	InstOutput    byte = '.'
	InstInput     byte = ','
	InstLoopStart byte = '['
	InstLoopEnd   byte = ']'
)

// IsInstruction reports whether b is one of the eight instruction symbols.
func IsInstruction(b byte) bool {
	switch b {
	case InstMoveRight, InstMoveLeft, InstIncrement, InstDecrement,
		InstOutput, InstInput, InstLoopStart, InstLoopEnd:
		return true
	}
	return false
}

// Clean returns a copy of src without any byte outside the instruction set,
// so comments and line breaks in source files don't split idioms.
func Clean(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for _, b := range src {
		if IsInstruction(b) {
			out = append(out, b)
		}
	}
	return out
}
