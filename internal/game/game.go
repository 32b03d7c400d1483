package game

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"slices"
	"time"

	"relkeys/internal/keys"
	"relkeys/internal/state"
	"relkeys/internal/utils"

	"github.com/oklog/ulid/v2"
)

// ErrNoKeys is returned when a round is started from an empty key pool.
var ErrNoKeys = errors.New("no keys selected")

// Config is the player's choice for the next round. It survives resets.
type Config struct {
	Mode       keys.Mode
	Source     keys.Source
	Difficulty keys.Difficulty
}

// DefaultConfig is an easy major-to-minor round over every key.
func DefaultConfig() Config {
	return Config{
		Mode:       keys.MajorToMinor,
		Source:     keys.SourceAll,
		Difficulty: keys.Easy,
	}
}

// Game encapsulates the match game logic, independent of the UI. All
// mutation goes through its methods; the UI reads Snapshot.
type Game struct {
	State    *state.State
	Config   Config
	Selected []string

	pointer *PointerAdapter
	touch   *TouchAdapter

	rng     *rand.Rand
	entropy io.Reader
	now     func() time.Time
}

type Option func(*Game)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithRand fixes the random source used to deal rounds.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// NewGame initializes a game resting in the configuring state.
func NewGame(cfg Config, selected []string, opts ...Option) *Game {
	g := &Game{
		Config:   cfg,
		Selected: slices.Clone(selected),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.entropy = ulid.Monotonic(rand.New(rand.NewSource(g.rng.Int63())), 0)
	g.State = state.NewState(g.now)
	g.pointer = &PointerAdapter{game: g}
	g.touch = &TouchAdapter{game: g, targets: map[string]Rect{}}
	return g
}

// SetMode picks the side that is dragged. Unknown modes are ignored.
func (g *Game) SetMode(m keys.Mode) {
	if m.Valid() {
		g.Config.Mode = m
	}
}

// SetKeySource switches between all keys and the selected subset.
func (g *Game) SetKeySource(s keys.Source) {
	if s.Valid() {
		g.Config.Source = s
	}
}

// SetDifficulty sets how many pairs the next round deals.
func (g *Game) SetDifficulty(d keys.Difficulty) {
	if d.Valid() {
		g.Config.Difficulty = d
	}
}

// ToggleKeySelected adds a major key to the selected subset, or removes it if
// it is already there. Names outside the catalogue are ignored.
func (g *Game) ToggleKeySelected(major string) {
	if !keys.IsMajor(major) {
		return
	}
	if i := slices.Index(g.Selected, major); i >= 0 {
		g.Selected = slices.Delete(g.Selected, i, i+1)
		return
	}
	g.Selected = append(g.Selected, major)
}

func (g *Game) IsSelected(major string) bool {
	return slices.Contains(g.Selected, major)
}

// Pool is the set of pairs the next round is dealt from.
func (g *Game) Pool() []keys.Pair {
	return keys.Filter(g.Config.Source, g.Selected)
}

// CanStart is false when the selected subset leaves nothing to deal.
func (g *Game) CanStart() bool {
	return len(g.Pool()) > 0
}

// StartRound records cfg as the current configuration and deals a new round.
// A round already in progress is discarded first.
func (g *Game) StartRound(cfg Config) error {
	g.SetMode(cfg.Mode)
	g.SetKeySource(cfg.Source)
	g.SetDifficulty(cfg.Difficulty)

	pool := g.Pool()
	if len(pool) == 0 {
		return ErrNoKeys
	}
	if g.State.IsActive() {
		g.ResetRound()
	}
	g.clearGestures()

	items, targets := state.Deal(pool, g.Config.Mode, keys.ItemCount(g.Config.Difficulty), g.rng)
	round := state.Round{
		ID:      ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String(),
		Items:   items,
		Targets: targets,
	}
	if err := g.State.FSM.Event(context.Background(), "start", round); err != nil {
		return err
	}
	return nil
}

// ResetRound drops the current round and returns to configuring. The
// configuration and selected keys are left untouched.
func (g *Game) ResetRound() {
	g.clearGestures()
	if g.State.Status() == state.Configuring {
		return
	}
	if err := g.State.FSM.Event(context.Background(), "reset"); err != nil {
		utils.Log.WithError(err).Debug("reset rejected")
	}
}

// AttemptMatch pairs an item with a target. It is a no-op outside an active
// round.
func (g *Game) AttemptMatch(itemID, targetID string) {
	if !g.State.IsActive() {
		return
	}
	if err := g.State.FSM.Event(context.Background(), "attempt", itemID, targetID); err != nil {
		utils.Log.WithError(err).Debug("attempt rejected")
	}
	if !g.State.IsActive() {
		g.clearGestures()
	}
}

// HandleTick processes a countdown tick for roundID. Ticks from an earlier
// round or arriving after the round ended are dropped. The return value says
// whether the countdown should keep running.
func (g *Game) HandleTick(roundID string) bool {
	if roundID != g.State.RoundID || !g.State.IsActive() {
		return false
	}
	if err := g.State.FSM.Event(context.Background(), "tick"); err != nil {
		utils.Log.WithError(err).Debug("tick rejected")
	}
	if !g.State.IsActive() {
		g.clearGestures()
		return false
	}
	return true
}

func (g *Game) Pointer() *PointerAdapter {
	return g.pointer
}

func (g *Game) Touch() *TouchAdapter {
	return g.touch
}

// Won reports an over round where every item was matched.
func (g *Game) Won() bool {
	return g.State.Status() == state.Over && g.State.Win
}

func (g *Game) clearGestures() {
	g.pointer.OnDragEnd()
	g.touch.cancel()
}

// lifted returns the item held by whichever gesture is in progress.
func (g *Game) lifted() string {
	if id, ok := g.pointer.Dragging(); ok {
		return id
	}
	if id, ok := g.touch.Dragging(); ok {
		return id
	}
	return ""
}

// canLift reports whether itemID may be picked up by a new gesture.
func (g *Game) canLift(itemID string) bool {
	if !g.State.IsActive() || g.lifted() != "" {
		return false
	}
	item, ok := g.State.FindItem(itemID)
	return ok && !item.Matched
}
