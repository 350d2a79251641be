package main

import (
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/icedream/gobfd/decompiler"
)

var (
	app = kingpin.New("gobfd", "Decompiles Brainfuck programs into readable pseudocode.")

	argInput = app.Arg("input", "The source file of the program to decompile. Reads standard input if omitted.").ExistingFile()

	flagDebug       = app.Flag("debug", "Log every recognized idiom and skipped symbol.").Bool()
	flagConfig      = app.Flag("config", "TOML file with indentation, cursor and pointer settings.").ExistingFile()
	flagFlat        = app.Flag("flat", "Translate one instruction run per line without recognizing idioms.").Bool()
	flagStrict      = app.Flag("strict", "Fail on unknown symbols and unmatched loop ends instead of skipping them.").Bool()
	flagRaw         = app.Flag("raw", "Keep bytes outside the instruction set instead of stripping them first.").Bool()
	flagPointer     = app.Flag("pointer", "Pointer offset the program starts at.").Int()
	flagIndent      = app.Flag("indent", "Indentation unit for loop bodies.").String()
	flagInteractive = app.Flag("interactive", "Decompile programs typed at a prompt.").Short('i').Bool()
)

func applyFlags(config *Config) {
	if *flagStrict {
		config.Strict = true
	}
	if *flagRaw {
		config.Raw = true
	}
	if *flagPointer != 0 {
		config.Pointer = *flagPointer
	}
	if *flagIndent != "" {
		config.Indent = *flagIndent
	}
}

func readProgram(path string) ([]byte, error) {
	if path == "" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *flagDebug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	config := DefaultConfig()
	if *flagConfig != "" {
		var err error
		if config, err = LoadConfig(*flagConfig); err != nil {
			logrus.Fatal(err)
		}
	}
	applyFlags(config)

	if *flagInteractive {
		os.Exit(runREPL(config))
	}

	input, err := readProgram(*argInput)
	if err != nil {
		logrus.Fatal(err)
	}
	if !config.Raw {
		input = decompiler.Clean(input)
	}

	var lines []decompiler.Line
	if *flagFlat {
		p := decompiler.NewTranslator()
		p.Debug = *flagDebug
		p.DataPointer = config.Pointer
		p.Load(input)
		lines, err = p.Execute()
		if err == nil {
			err = p.ExpectEnd()
		}
	} else {
		d := decompiler.NewDecompiler(&config.Cursors)
		d.Strict = config.Strict
		d.Load(input)
		var res *decompiler.Result
		if res, err = d.Decompile(config.Pointer); err == nil {
			lines = res.Lines
			logrus.WithField("ptr", res.Pointer).Debug("finished")
		}
	}

	if werr := decompiler.WriteLines(os.Stdout, lines, config.Indent); werr != nil {
		logrus.Fatal(werr)
	}
	if err != nil {
		logrus.Fatal(err)
	}
}
