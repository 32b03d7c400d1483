package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"relkeys/internal/config"
	"relkeys/internal/game"
	"relkeys/internal/keys"
	"relkeys/internal/store"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyLimit int

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List relative key pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			g := game.NewGame(game.DefaultConfig(), settings.SelectedKeys)
			out := cmd.OutOrStdout()
			for _, p := range keys.All() {
				mark := " "
				if g.IsSelected(p.Major) {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %-3s major  %-3s minor\n", mark, p.Major, p.Minor)
			}
			fmt.Fprintf(out, "\n* selected (%d)\n", len(g.Selected))
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent rounds",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", 20, "number of rounds to show")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer st.Close()

	entries, err := st.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No rounds played yet.")
		return nil
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		result := "lost"
		if e.Won {
			result = "won"
		}
		rows = append(rows, table.Row{
			humanize.Time(e.EndedAt),
			e.Title,
			strconv.Itoa(e.Score),
			fmt.Sprintf("%d/%d", e.Matched, e.Total),
			result,
		})
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "When", Width: 16},
			{Title: "Setup", Width: 34},
			{Title: "Score", Width: 6},
			{Title: "Matched", Width: 8},
			{Title: "Result", Width: 6},
		}),
		table.WithRows(rows),
		// The height includes the header line.
		table.WithHeight(len(rows)+1),
	)
	fmt.Fprintln(cmd.OutOrStdout(), t.View())
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file if missing and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ExpandPath(configPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if _, err := os.Stat(path); err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to stat config: %w", err)
				}
				if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate()), 0o644); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
