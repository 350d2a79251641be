package decompiler

import (
	"bytes"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkSample copies a cell, reads one input byte and spreads it into two
// cells.
const checkSample = ">>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>[-]<<<<<<<<<<<<<<<<<<<<<<<[-]>>>>>>>>>>>>>>>>>>>>>>[->+<<<<<<<<<<<<<<<<<<<<<<<+>>>>>>>>>>>>>>>>>>>>>>]<<<<<<<<<<<<<<<<<<<<<<[->>>>>>>>>>>>>>>>>>>>>>+<<<<<<<<<<<<<<<<<<<<<<]>>>>>>>>>>>>>>>>>>>>>>,>>>>>>[-]<<<<<<<<<<<<<<<<<<<<<<<<<<<<[-]>>>>>>>>>>>>>>>>>>>>>>[->>>>>>+<<<<<<<<<<<<<<<<<<<<<<<<<<<<+>>>>>>>>>>>>>>>>>>>>>>]"

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

func decompile(t *testing.T, src string, ptr int, cursors *Cursors) *Result {
	t.Helper()
	d := NewDecompiler(cursors)
	d.Logger = quietLogger()
	d.Load([]byte(src))
	res, err := d.Decompile(ptr)
	require.NoError(t, err)
	return res
}

func texts(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.String())
	}
	return out
}

func TestDecompileScenarios(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		ptr     int
		want    []string
		pointer int
	}{
		{"increment run", "+++", 0, []string{"cell[0] += 3"}, 0},
		{"decrement run", "--", 4, []string{"cell[4] -= 2"}, 4},
		{"moves only", ">>><<", 0, []string{}, 1},
		{"clear", "[-]", 2, []string{"cell[2] = 0"}, 2},
		{"move add", "[->+<]", 0, []string{"cell[1] += cell[0]"}, 0},
		{"move add left", ">>[-<<+>>]", 0, []string{"cell[0] += cell[2]"}, 2},
		{"copy", "[-]>[-]>[-<<+>+>]<[->+<]>", 0, []string{"cell[0] = cell[2]"}, 2},
		{"copy add", ">[-]>[-]>[-<<+>+>]<[->+<]<[->>>+<<<]", 0, []string{"cell[4] += cell[3]"}, 1},
		{"multiply", "[->[-]>[-]>[->+<<+>]<[->+<][->>+<<]<<]", 0, []string{"cell[4] += cell[3] * cell[0]"}, 0},
		{"multiply shifted", ">>[->[-]>[-]>[->+<<+>]<[->+<][->>+<<]<<]", 0, []string{"cell[6] += cell[5] * cell[2]"}, 2},
		{"plain loop", "[>+<-]", 0, []string{
			"while cell[0] != 0:",
			"\tcell[1] += 1",
			"\tcell[0] -= 1",
		}, 0},
		{"hello prefix", "++++++++++[>+++++++>++++++++++>+++>+<<<<-]>++.>+.", 0, []string{
			"cell[0] += 10",
			"while cell[0] != 0:",
			"\tcell[1] += 7",
			"\tcell[2] += 10",
			"\tcell[3] += 3",
			"\tcell[4] += 1",
			"\tcell[0] -= 1",
			"cell[1] += 2",
			"cmp cell[1], data[0]",
			"cell[2] += 1",
			"cmp cell[2], data[1]",
		}, 2},
		{"check sample", checkSample, 0, []string{
			"cell[52] = cell[51]",
			"cell[51] = input[0]",
			"cell[57] = 0",
			"cell[29] = 0",
			"while cell[51] != 0:",
			"\tcell[51] -= 1",
			"\tcell[57] += 1",
			"\tcell[29] += 1",
		}, 51},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := decompile(t, tt.src, tt.ptr, nil)
			assert.Equal(t, tt.want, texts(res.Lines))
			assert.Equal(t, tt.pointer, res.Pointer)
		})
	}
}

func TestDecompileAddRuns(t *testing.T) {
	for _, src := range []string{"+", "++++++++", "-", "-------"} {
		res := decompile(t, src, 0, nil)
		require.Len(t, res.Lines, 1, src)
		want := Delta(src)
		assert.Equal(t, "cell[0] "+want, res.Lines[0].Text)
		assert.Equal(t, OpAdd, res.Lines[0].Op)
	}
}

func TestDecompileMovesOnly(t *testing.T) {
	for _, src := range []string{">", "<<<<", "><><>>", ">>>>>>>>><"} {
		res := decompile(t, src, 0, nil)
		assert.Empty(t, res.Lines, src)
		assert.Equal(t, Displacement(src), res.Pointer, src)
	}
}

func TestDecompileNestedLoops(t *testing.T) {
	for n := 1; n <= 6; n++ {
		src := strings.Repeat("[", n) + "+" + strings.Repeat("]", n)
		res := decompile(t, src, 0, nil)
		require.Len(t, res.Lines, n+1)
		for i := 0; i < n; i++ {
			assert.Equal(t, i, res.Lines[i].Indent)
			assert.Equal(t, OpLoop, res.Lines[i].Op)
			assert.Equal(t, "while cell[0] != 0:", res.Lines[i].Text)
		}
		assert.Equal(t, n, res.Lines[n].Indent)
		assert.Equal(t, "cell[0] += 1", res.Lines[n].Text)
	}
}

func TestDecompileClearInsideLoop(t *testing.T) {
	res := decompile(t, ">[[-]>]", 0, nil)
	assert.Equal(t, []string{
		"while cell[1] != 0:",
		"\tcell[1] = 0",
	}, texts(res.Lines))
	assert.Equal(t, "clear", res.Lines[1].Idiom)
	// The body moves right once and that offset is trusted.
	assert.Equal(t, 2, res.Pointer)
}

func TestDecompileInput(t *testing.T) {
	cursors := NewCursors()
	cursors.Input = 10
	res := decompile(t, ">,,", 0, cursors)
	assert.Equal(t, []string{"cell[1] = input[10]", "cell[1] = input[11]"}, texts(res.Lines))
	assert.Equal(t, 12, cursors.Input)

	cursors = NewCursors()
	cursors.Input = DefaultInputLimit
	res = decompile(t, ",", 0, cursors)
	assert.Equal(t, []string{"cell[0] = 1"}, texts(res.Lines))

	cursors.BitAdd = DefaultBitAddLimit
	res = decompile(t, ",", 0, cursors)
	assert.Equal(t, []string{"cell[0] = 0x30"}, texts(res.Lines))
}

func TestDecompileOutput(t *testing.T) {
	cursors := NewCursors()
	cursors.Data = 3
	res := decompile(t, ".>.", 0, cursors)
	assert.Equal(t, []string{"cmp cell[0], data[3]", "cmp cell[1], data[4]"}, texts(res.Lines))
	assert.Equal(t, 5, cursors.Data)
}

func TestDecompileDeterministic(t *testing.T) {
	src := checkSample + ",.,.[->+<]"
	var outs [2]string
	for i := range outs {
		res := decompile(t, src, 0, NewCursors())
		var buf bytes.Buffer
		require.NoError(t, WriteLines(&buf, res.Lines, "  "))
		outs[i] = buf.String()
	}
	assert.Equal(t, outs[0], outs[1])
	assert.NotEmpty(t, outs[0])
}

func TestDecompileSkipsUnknown(t *testing.T) {
	res := decompile(t, "+x+]-", 0, nil)
	assert.Equal(t, []string{"cell[0] += 1", "cell[0] += 1", "cell[0] -= 1"}, texts(res.Lines))
}

func TestDecompileStrict(t *testing.T) {
	for src, want := range map[string]error{
		"+x":   ErrUnknownSymbol,
		"+]":   ErrUnmatchedLoopEnd,
		"[[+]": ErrUnmatchedLoopStart,
	} {
		d := NewDecompiler(nil)
		d.Logger = quietLogger()
		d.Strict = true
		d.Load([]byte(src))
		_, err := d.Decompile(0)
		assert.ErrorIs(t, err, want, src)
	}
}

func TestDecompileUnmatchedLoopStart(t *testing.T) {
	d := NewDecompiler(nil)
	d.Logger = quietLogger()
	d.Load([]byte("+[>"))
	_, err := d.Decompile(0)
	assert.ErrorIs(t, err, ErrUnmatchedLoopStart)
}

func TestWriteLines(t *testing.T) {
	res := decompile(t, "+[>+<-]", 0, nil)
	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, res.Lines, "    "))
	assert.Equal(t, "cell[0] += 1\nwhile cell[0] != 0:\n    cell[1] += 1\n    cell[0] -= 1\n", buf.String())
}
