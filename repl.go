package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/icedream/gobfd/decompiler"
)

const (
	historyFile = ".gobfd_history"
	prompt      = "bf> "
	replHelp    = `Enter instructions to decompile them. The pointer offset and
cursors carry over from one line to the next.
  :reset  restore the starting pointer offset and cursors
  :quit   leave`
)

// session keeps the pointer offset and cursors between programs entered at
// the prompt.
type session struct {
	config  *Config
	cursors decompiler.Cursors
	ptr     int
}

func newSession(config *Config) *session {
	s := &session{config: config}
	s.reset()
	return s
}

func (s *session) reset() {
	s.cursors = s.config.Cursors
	s.ptr = s.config.Pointer
}

// feed decompiles src continuing from the previous state and writes the
// result to w. The state is left untouched when decompiling fails.
func (s *session) feed(w io.Writer, src string) error {
	input := []byte(src)
	if !s.config.Raw {
		input = decompiler.Clean(input)
	}

	cursors := s.cursors
	d := decompiler.NewDecompiler(&cursors)
	d.Strict = s.config.Strict
	d.Load(input)
	res, err := d.Decompile(s.ptr)
	if err != nil {
		return err
	}
	s.cursors = cursors
	s.ptr = res.Pointer
	return decompiler.WriteLines(w, res.Lines, s.config.Indent)
}

func runREPL(config *Config) int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := newSession(config)
LOOP:
	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if err != io.EOF && err != liner.ErrPromptAborted {
				logrus.Error(err)
			}
			fmt.Println()
			break
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit", ":q":
			break LOOP
		case ":reset":
			s.reset()
			continue
		case ":help":
			fmt.Println(replHelp)
			continue
		}

		ln.AppendHistory(line)
		if err := s.feed(os.Stdout, line); err != nil {
			fmt.Println(err)
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}
