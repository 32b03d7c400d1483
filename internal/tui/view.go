package tui

import (
	"fmt"
	"strings"
	"time"

	"relkeys/internal/game"
	"relkeys/internal/keys"
	"relkeys/internal/state"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(cellInner).
			Align(lipgloss.Center)
	compactCellStyle = lipgloss.NewStyle().
				Width(cellOuter).
				Align(lipgloss.Center)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(0, 2)
)

const title = "Relative Keys"

func (m *Model) View() string {
	switch m.screen {
	case screenSettings:
		return m.viewSettings()
	case screenSelector:
		return m.viewSelector()
	}
	return m.viewBoard()
}

func (m *Model) viewSettings() string {
	g := m.game()
	var b strings.Builder
	b.WriteString(boldStyle.Render(title) + "\n\n")

	row := func(i int, label string, options ...string) {
		marker := "  "
		if m.settingsRow == i {
			marker = "> "
		}
		b.WriteString(marker + label + "\n    " + strings.Join(options, "  ") + "\n\n")
	}
	row(rowMode, "Select Game Mode:",
		button(keys.MajorToMinor.Label(), g.Config.Mode == keys.MajorToMinor),
		button(keys.MinorToMajor.Label(), g.Config.Mode == keys.MinorToMajor))
	row(rowSource, "Key Selection:",
		button("All Keys", g.Config.Source == keys.SourceAll),
		button("Select Keys", g.Config.Source == keys.SourceSelected))
	var levels []string
	for _, d := range difficulties {
		levels = append(levels, button(capitalize(string(d)), g.Config.Difficulty == d))
	}
	row(rowDifficulty, "Select Difficulty:", levels...)

	start := "[ Start Game ]"
	if !g.CanStart() {
		start = dimStyle.Render(start)
	} else if m.settingsRow == rowStart {
		start = cursorStyle.Render(start)
	}
	marker := "  "
	if m.settingsRow == rowStart {
		marker = "> "
	}
	b.WriteString(marker + start + "\n")
	if m.notice != "" {
		b.WriteString("\n" + redStyle.Render(m.notice) + "\n")
	}

	b.WriteString("\nHow to play: drag each key onto its relative key before the time runs out.\n")
	b.WriteString("Faster matches earn a bigger time bonus; wrong matches cost 2 points.\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.settingsHelp()))
	return b.String()
}

func (m *Model) viewSelector() string {
	g := m.game()
	var b strings.Builder
	b.WriteString(boldStyle.Render("Select Keys to Practice:") + "\n\n")
	for i, p := range keys.All() {
		label := fmt.Sprintf("%s / %s", p.Major, p.Minor)
		label = runewidth.FillRight(label, 8)
		mark := "[ ]"
		if g.IsSelected(p.Major) {
			mark = greenStyle.Render("[x]")
		}
		cell := mark + " " + label
		if i == m.selectorPos {
			cell = cursorStyle.Render(cell)
		}
		b.WriteString(cell + "  ")
		if (i+1)%selectorColumns == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString(fmt.Sprintf("\n\n%d keys selected\n\n", len(g.Selected)))
	b.WriteString(m.help.ShortHelpView(m.keys.selectorHelp()))
	return b.String()
}

// viewBoard renders exactly boardTop lines above the key columns so the
// layout rectangles line up with what is on screen.
func (m *Model) viewBoard() string {
	snap := m.game().Snapshot()
	var b strings.Builder

	b.WriteString(boldStyle.Render(title) + "\n\n")
	b.WriteString(m.header(snap) + "\n\n")

	left, right := "Major Keys", "Minor Keys"
	if snap.Config.Mode == keys.MinorToMajor {
		left, right = right, left
	}
	b.WriteString(runewidth.FillRight(left, targetLeft) + right + "\n")
	b.WriteString(m.renderBoard(snap) + "\n")

	if snap.Status == state.Over {
		b.WriteString("\n" + m.gameOver(snap) + "\n\n")
		b.WriteString(m.help.ShortHelpView(m.keys.overHelp()))
		return b.String()
	}
	_, dragging := m.game().Pointer().Dragging()
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.boardHelp(dragging)))
	return b.String()
}

func (m *Model) header(snap game.Snapshot) string {
	line := "Score: " + fmt.Sprint(snap.Score)
	if snap.LastBonus > 0 {
		line += fmt.Sprintf(" (+%d time bonus)", snap.LastBonus)
	}
	line = scoreStyle.Render(line)

	timeStr := fmt.Sprintf("Time: %ds", snap.TimeRemaining)
	if snap.TimeRemaining < 10 {
		timeStr = redStyle.Bold(true).Render(timeStr)
	}
	line += "  |  " + timeStr + "  |  [r] Reset"

	if snap.Lifted != "" {
		line += "  |  Holding: " + boldStyle.Render(snap.ItemName(snap.Lifted))
	}
	return line
}

func (m *Model) renderBoard(snap game.Snapshot) string {
	base := cellStyle
	if m.layout.compact {
		base = compactCellStyle
	}

	var items []string
	for i, p := range m.layout.items {
		label := snap.ItemName(p.id)
		style := base
		switch {
		case p.id == snap.Lifted:
			style = style.Foreground(lipgloss.Color("8")).BorderForeground(lipgloss.Color("8"))
		case m.column == colItems && i == m.itemCursor && snap.Status == state.Active:
			style = style.Reverse(true)
		}
		items = append(items, style.Render(fit(label)))
	}

	var targets []string
	for i, tg := range snap.Targets {
		label := tg.Name
		style := base
		if snap.Lifted != "" && !tg.Filled {
			if m.layout.compact {
				style = style.Underline(true)
			} else {
				style = style.Border(lipgloss.DoubleBorder())
			}
		}
		if tg.Filled {
			label = "Matched!"
			style = style.Foreground(lipgloss.Color("10")).BorderForeground(lipgloss.Color("10"))
		}
		if m.column == colTargets && i == m.targetCursor && snap.Status == state.Active {
			style = style.Reverse(true)
		}
		targets = append(targets, style.Render(fit(label)))
	}

	leftCol := lipgloss.JoinVertical(lipgloss.Left, items...)
	if len(items) == 0 {
		leftCol = strings.Repeat(" ", cellOuter)
	}
	leftCol = lipgloss.NewStyle().Width(cellOuter).Render(leftCol)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, targets...)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, strings.Repeat(" ", columnGap), rightCol)
}

func (m *Model) gameOver(snap game.Snapshot) string {
	var b strings.Builder
	if snap.Won {
		b.WriteString(greenStyle.Bold(true).Render("You Win!"))
	} else {
		b.WriteString(redStyle.Bold(true).Render("Game Over"))
	}
	b.WriteString(fmt.Sprintf("\nFinal Score: %d", snap.Score))

	if snap.Won && len(snap.Latencies) > 0 {
		var times []string
		for _, l := range snap.Latencies {
			times = append(times, seconds(l))
		}
		b.WriteString("\nMatch Times: " + strings.Join(times, ", "))
		b.WriteString("\nAverage: " + seconds(snap.AverageLatency()))
	}

	h := m.session.History
	switch {
	case h.Attempts == 0:
		b.WriteString("\nFirst try with this setup!")
	case h.GotHighScore():
		b.WriteString("\n" + greenStyle.Render("New high score!"))
		fallthrough
	default:
		if best := h.GetHighScoreEntry(); best != nil {
			b.WriteString(fmt.Sprintf("\nAttempt: %d | High score: %d", h.Attempts+1, best.Score))
		}
		b.WriteString("\nTop scores:")
		for _, e := range h.GetNScoreEntries(3) {
			b.WriteString(fmt.Sprintf("\n  * %d %s", e.Score, dimStyle.Render(humanize.Time(e.EndedAt))))
		}
	}

	again := button("Play Again", m.overButton == btnPlayAgain)
	change := button("Change Settings", m.overButton == btnSettings)
	b.WriteString("\n\n" + again + "  " + change)
	return panelStyle.Render(b.String())
}

func button(label string, on bool) string {
	s := "[ " + label + " ]"
	if on {
		return cursorStyle.Render(s)
	}
	return s
}

// fit pads or truncates a label to the cell width. Key names carry ♯ and ♭,
// so widths are measured in cells rather than bytes.
func fit(label string) string {
	return runewidth.Truncate(label, cellInner, "…")
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func capitalize(word string) string {
	if len(word) == 0 {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
