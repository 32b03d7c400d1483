// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields stay nil
// when a key is absent so defaults and flags can be layered over them.
type FileConfig struct {
	Game    GameConfig    `toml:"game"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// GameConfig maps the round settings.
type GameConfig struct {
	Mode         *string  `toml:"mode"`
	KeySource    *string  `toml:"key-source"`
	Difficulty   *string  `toml:"difficulty"`
	SelectedKeys []string `toml:"selected-keys"`
}

type StorageConfig struct {
	DBPath *string `toml:"db-path"`
}

type LogConfig struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	path, err := ExpandPath(path)
	if err != nil {
		return FileConfig{}, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// DefaultConfigTemplate is written by `relkeys config` when no file exists.
func DefaultConfigTemplate() string {
	return `# relkeys configuration

[game]
# major-to-minor or minor-to-major
mode = "major-to-minor"
# all or selected
key-source = "all"
# easy (3 keys), medium (5 keys) or hard (8 keys)
difficulty = "easy"
# majors used when key-source = "selected"
selected-keys = ["C", "G", "D", "A", "E", "B", "F♯", "C♯", "F", "B♭", "E♭", "A♭"]

[storage]
# db-path = "~/.local/share/relkeys/relkeys.db"

[log]
# file = "~/.local/state/relkeys/relkeys.log"
level = "info"
`
}
