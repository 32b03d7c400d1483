// Package tui is the terminal front-end of the match game.
package tui

import (
	"context"
	"errors"
	"time"

	"relkeys/internal/game"
	"relkeys/internal/keys"
	"relkeys/internal/state"
	"relkeys/internal/utils"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenSettings screen = iota
	screenSelector
	screenBoard
)

// Rows of the settings screen, top to bottom.
const (
	rowMode = iota
	rowSource
	rowDifficulty
	rowStart
	rowCount
)

// Board columns for the keyboard cursor.
const (
	colItems = iota
	colTargets
)

// Buttons of the game-over panel.
const (
	btnPlayAgain = iota
	btnSettings
)

const selectorColumns = 4

var difficulties = []keys.Difficulty{keys.Easy, keys.Medium, keys.Hard}

// TickMsg is one second of countdown for the round it was scheduled for.
type TickMsg struct {
	RoundID string
}

func tickCmd(roundID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{RoundID: roundID}
	})
}

type Model struct {
	ctx     context.Context
	session *game.Session
	keys    keyMap
	help    help.Model

	screen screen
	notice string
	width  int
	height int

	settingsRow int
	selectorPos int

	column       int
	itemCursor   int
	targetCursor int
	overButton   int

	layout boardLayout
}

func New(ctx context.Context, session *game.Session) *Model {
	return &Model{
		ctx:     ctx,
		session: session,
		keys:    newKeyMap(),
		help:    help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) game() *game.Game {
	return m.session.Game
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		keepTicking := m.game().HandleTick(msg.RoundID)
		m.session.Update(m.ctx)
		if !keepTicking {
			return m, nil
		}
		return m, tickCmd(msg.RoundID)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.screen == screenBoard {
			m.syncLayout()
		}
	case tea.MouseMsg:
		if m.screen == screenBoard {
			m.handleMouse(msg)
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenSettings:
			return m, m.updateSettings(msg)
		case screenSelector:
			m.updateSelector(msg)
		case screenBoard:
			if m.game().State.Status() == state.Over {
				return m, m.updateOver(msg)
			}
			m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m *Model) updateSettings(msg tea.KeyMsg) tea.Cmd {
	g := m.game()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.settingsRow = (m.settingsRow + rowCount - 1) % rowCount
	case key.Matches(msg, m.keys.Down):
		m.settingsRow = (m.settingsRow + 1) % rowCount
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		step := 1
		if key.Matches(msg, m.keys.Left) {
			step = -1
		}
		switch m.settingsRow {
		case rowMode:
			if g.Config.Mode == keys.MajorToMinor {
				g.SetMode(keys.MinorToMajor)
			} else {
				g.SetMode(keys.MajorToMinor)
			}
		case rowSource:
			if g.Config.Source == keys.SourceAll {
				g.SetKeySource(keys.SourceSelected)
			} else {
				g.SetKeySource(keys.SourceAll)
			}
		case rowDifficulty:
			i := indexOf(difficulties, g.Config.Difficulty)
			i = (i + step + len(difficulties)) % len(difficulties)
			g.SetDifficulty(difficulties[i])
		}
		m.notice = ""
	case key.Matches(msg, m.keys.Select):
		switch m.settingsRow {
		case rowSource:
			g.SetKeySource(keys.SourceSelected)
			m.screen = screenSelector
		case rowStart:
			return m.start()
		}
	}
	return nil
}

func (m *Model) updateSelector(msg tea.KeyMsg) {
	n := len(keys.All())
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.selectorPos > 0 {
			m.selectorPos--
		}
	case key.Matches(msg, m.keys.Right):
		if m.selectorPos < n-1 {
			m.selectorPos++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectorPos-selectorColumns >= 0 {
			m.selectorPos -= selectorColumns
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectorPos+selectorColumns < n {
			m.selectorPos += selectorColumns
		}
	case key.Matches(msg, m.keys.Select):
		m.game().ToggleKeySelected(keys.All()[m.selectorPos].Major)
		m.notice = ""
	case key.Matches(msg, m.keys.Cancel):
		m.screen = screenSettings
	}
}

// updateBoard drives the pointer adapter: picking an item starts a drag,
// picking a target drops onto it and esc ends the drag.
func (m *Model) updateBoard(msg tea.KeyMsg) {
	g := m.game()
	switch {
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.screen = screenSettings
		return
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Left):
		m.column = colItems
	case key.Matches(msg, m.keys.Right):
		m.column = colTargets
	case key.Matches(msg, m.keys.Cancel):
		g.Pointer().OnDragEnd()
		m.column = colItems
	case key.Matches(msg, m.keys.Select):
		if m.column == colItems {
			if id := m.cursorItem(); id != "" {
				g.Pointer().OnDragStart(id)
				if _, ok := g.Pointer().Dragging(); ok {
					m.column = colTargets
				}
			}
			break
		}
		if _, ok := g.Pointer().Dragging(); !ok {
			break
		}
		if id := m.cursorTarget(); id != "" {
			g.Pointer().OnDrop(id)
			m.session.Update(m.ctx)
			m.column = colItems
		}
	}
	m.syncLayout()
}

func (m *Model) updateOver(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.overButton = btnPlayAgain
	case key.Matches(msg, m.keys.Right):
		m.overButton = btnSettings
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.screen = screenSettings
	case key.Matches(msg, m.keys.Select):
		if m.overButton == btnPlayAgain {
			return m.start()
		}
		m.session.Reset()
		m.screen = screenSettings
	}
	return nil
}

// handleMouse drives the touch adapter with the left button.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	g := m.game()
	if g.State.Status() != state.Active {
		return
	}
	p := game.Point{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if id := m.layout.itemAt(p); id != "" {
			g.Touch().OnTouchStart(id, p)
		}
	case tea.MouseActionMotion:
		g.Touch().OnTouchMove(p)
	case tea.MouseActionRelease:
		g.Touch().OnTouchMove(p)
		g.Touch().OnTouchEnd()
		m.session.Update(m.ctx)
		m.syncLayout()
	}
}

func (m *Model) start() tea.Cmd {
	err := m.session.Start(m.ctx)
	if errors.Is(err, game.ErrNoKeys) {
		m.notice = "Select at least one key to start."
		return nil
	}
	if err != nil {
		utils.Log.WithError(err).Error("failed to start round")
		m.notice = err.Error()
		return nil
	}
	m.screen = screenBoard
	m.notice = ""
	m.column = colItems
	m.itemCursor = 0
	m.targetCursor = 0
	m.overButton = btnPlayAgain
	m.syncLayout()
	return tickCmd(m.game().State.RoundID)
}

// syncLayout recomputes the board geometry after the board changed and
// clamps the keyboard cursors to it.
func (m *Model) syncLayout() {
	m.layout = computeLayout(m.game().Snapshot(), m.height)
	m.layout.register(m.game().Touch())
	m.itemCursor = clamp(m.itemCursor, len(m.layout.items))
	m.targetCursor = clamp(m.targetCursor, len(m.layout.targets))
}

func (m *Model) moveCursor(step int) {
	if m.column == colItems {
		m.itemCursor = clamp(m.itemCursor+step, len(m.layout.items))
		return
	}
	m.targetCursor = clamp(m.targetCursor+step, len(m.layout.targets))
}

func (m *Model) cursorItem() string {
	if m.itemCursor < len(m.layout.items) {
		return m.layout.items[m.itemCursor].id
	}
	return ""
}

func (m *Model) cursorTarget() string {
	if m.targetCursor < len(m.layout.targets) {
		return m.layout.targets[m.targetCursor].id
	}
	return ""
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func indexOf[T comparable](s []T, v T) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return 0
}
