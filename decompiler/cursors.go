package decompiler

const (
	DefaultInputLimit  = 96
	DefaultBitAddLimit = 3600
)

// Cursors holds the counters of the environment the decompiled program runs
// in. Input indexes the literal input buffer and Data the comparison data;
// both advance once per matched input or output instruction. Once Input
// reaches InputLimit, reads are rendered as a synthesized default chosen by
// comparing BitAdd against BitAddLimit.
type Cursors struct {
	Input       int `toml:"input"`
	Data        int `toml:"data"`
	BitAdd      int `toml:"bit_add"`
	InputLimit  int `toml:"input_limit"`
	BitAddLimit int `toml:"bit_add_limit"`
}

func NewCursors() *Cursors {
	return &Cursors{
		InputLimit:  DefaultInputLimit,
		BitAddLimit: DefaultBitAddLimit,
	}
}
