package config

import (
	"fmt"
	"slices"

	"relkeys/internal/keys"
)

// Settings is the effective configuration after layering defaults, the
// config file and command-line flags.
type Settings struct {
	Mode         keys.Mode
	Source       keys.Source
	Difficulty   keys.Difficulty
	SelectedKeys []string
	DBPath       string
	LogFile      string
	LogLevel     string
}

// Overrides carries the flags the user actually set. Nil means unset.
type Overrides struct {
	Mode         *string
	Difficulty   *string
	SelectedKeys []string
	LogLevel     *string
}

// Defaults are used for anything neither the file nor a flag sets.
func Defaults() Settings {
	return Settings{
		Mode:         keys.MajorToMinor,
		Source:       keys.SourceAll,
		Difficulty:   keys.Easy,
		SelectedKeys: keys.DefaultSelection(),
		DBPath:       DefaultDBPath(),
		LogFile:      DefaultLogPath(),
		LogLevel:     "info",
	}
}

// Resolve layers file over the defaults and flags over both. Passing
// --keys implies the selected key source.
func Resolve(file FileConfig, flags Overrides) (Settings, error) {
	s := Defaults()

	applyString(&s.LogLevel, file.Log.Level)
	applyString(&s.LogLevel, flags.LogLevel)

	mode := string(s.Mode)
	applyString(&mode, file.Game.Mode)
	applyString(&mode, flags.Mode)
	s.Mode = keys.Mode(mode)
	if !s.Mode.Valid() {
		return Settings{}, fmt.Errorf("invalid mode %q (use %s or %s)", mode, keys.MajorToMinor, keys.MinorToMajor)
	}

	source := string(s.Source)
	applyString(&source, file.Game.KeySource)
	s.Source = keys.Source(source)
	if !s.Source.Valid() {
		return Settings{}, fmt.Errorf("invalid key source %q (use %s or %s)", source, keys.SourceAll, keys.SourceSelected)
	}

	difficulty := string(s.Difficulty)
	applyString(&difficulty, file.Game.Difficulty)
	applyString(&difficulty, flags.Difficulty)
	s.Difficulty = keys.Difficulty(difficulty)
	if !s.Difficulty.Valid() {
		return Settings{}, fmt.Errorf("invalid difficulty %q (use easy, medium or hard)", difficulty)
	}

	if file.Game.SelectedKeys != nil {
		s.SelectedKeys = slices.Clone(file.Game.SelectedKeys)
	}
	if len(flags.SelectedKeys) > 0 {
		s.SelectedKeys = slices.Clone(flags.SelectedKeys)
		s.Source = keys.SourceSelected
	}
	for _, k := range s.SelectedKeys {
		if !keys.IsMajor(k) {
			return Settings{}, fmt.Errorf("unknown major key %q", k)
		}
	}

	var err error
	applyString(&s.DBPath, file.Storage.DBPath)
	if s.DBPath, err = ExpandPath(s.DBPath); err != nil {
		return Settings{}, fmt.Errorf("db path: %w", err)
	}
	applyString(&s.LogFile, file.Log.File)
	if s.LogFile, err = ExpandPath(s.LogFile); err != nil {
		return Settings{}, fmt.Errorf("log file: %w", err)
	}
	return s, nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
