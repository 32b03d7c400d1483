package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"relkeys/internal/config"
	"relkeys/internal/game"
	"relkeys/internal/scoring"
	"relkeys/internal/store"
	"relkeys/internal/tui"
	"relkeys/internal/utils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configPath string
	logLevel   string

	playMode       string
	playDifficulty string
	playKeys       []string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "relkeys",
		Short:        "Match major keys with their relative minors",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "", "log level (debug, info, warn, error)")

	rootCmd.Flags().StringVar(&playMode, "mode", "", "major-to-minor or minor-to-major")
	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", "", "easy, medium or hard")
	rootCmd.Flags().StringSliceVar(&playKeys, "keys", nil, "practice only these majors, e.g. C,G,D")

	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadSettings layers flags the user set over the config file.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	var flags config.Overrides
	if changed(cmd, "mode") {
		flags.Mode = &playMode
	}
	if changed(cmd, "difficulty") {
		flags.Difficulty = &playDifficulty
	}
	if changed(cmd, "keys") {
		flags.SelectedKeys = playKeys
	}
	if changed(cmd, "loglevel") {
		flags.LogLevel = &logLevel
	}
	settings, err := config.Resolve(fileCfg, flags)
	if err != nil {
		return config.Settings{}, err
	}
	if err := utils.SetLogLevel(settings.LogLevel); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("relkeys needs an interactive terminal")
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logFile, err := utils.SetLogOutput(settings.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		utils.Log.SetOutput(io.Discard)
		logFile.Close()
	}()

	// The game still runs without history if the database is unavailable.
	var storage scoring.ScoreStorage
	st, err := store.Open(settings.DBPath)
	if err != nil {
		utils.Log.WithError(err).Warn("round history disabled")
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				utils.Log.WithError(cerr).Error("failed to close db")
			}
		}()
		storage = st
	}

	g := game.NewGame(game.Config{
		Mode:       settings.Mode,
		Source:     settings.Source,
		Difficulty: settings.Difficulty,
	}, settings.SelectedKeys)
	session := game.NewSession(g, storage)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	utils.Log.WithField("db", settings.DBPath).Debug("starting")
	program := tea.NewProgram(tui.New(ctx, session), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if session.RoundsPlayed > 0 {
		fmt.Printf("Rounds played: %d | Total score: %d\n", session.RoundsPlayed, session.TotalScore)
	}
	return nil
}
