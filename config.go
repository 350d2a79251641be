package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/icedream/gobfd/decompiler"
)

// Config is the optional TOML file given with --config.
type Config struct {
	Indent  string             `toml:"indent"`
	Strict  bool               `toml:"strict"`
	Raw     bool               `toml:"raw"`
	Pointer int                `toml:"pointer"`
	Cursors decompiler.Cursors `toml:"cursors"`
}

func DefaultConfig() *Config {
	return &Config{
		Indent:  "\t",
		Cursors: *decompiler.NewCursors(),
	}
}

// DecodeConfig reads a configuration on top of the defaults.
func DecodeConfig(r io.Reader) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return config, nil
}

func LoadConfig(path string) (*Config, error) {
	conffile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	defer conffile.Close()

	return DecodeConfig(conffile)
}
