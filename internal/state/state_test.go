package state

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"relkeys/internal/keys"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func testRound() Round {
	return Round{
		ID: "round-1",
		Items: []Item{
			{ID: "key-0", Name: "C", Kind: Major},
			{ID: "key-1", Name: "G", Kind: Major},
		},
		Targets: []Target{
			{ID: "key-1", Name: "E", Kind: Minor},
			{ID: "key-0", Name: "A", Kind: Minor},
		},
	}
}

func started(t *testing.T, clock *fakeClock) *State {
	t.Helper()
	s := NewState(clock.Now)
	if err := s.FSM.Event(context.Background(), "start", testRound()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	return s
}

func TestState_Initial(t *testing.T) {
	s := NewState(nil)
	if s.Status() != Configuring {
		t.Errorf("expected configuring, got %s", s.Status())
	}
	if s.AllMatched() {
		t.Error("an empty round is never all matched")
	}
}

func TestState_Start(t *testing.T) {
	s := started(t, newClock())

	if s.FSM.Current() != "idle" {
		t.Errorf("expected idle after dealing, got %s", s.FSM.Current())
	}
	if s.Status() != Active {
		t.Errorf("expected active, got %s", s.Status())
	}
	if s.TimeRemaining != RoundSeconds {
		t.Errorf("expected %d seconds, got %d", RoundSeconds, s.TimeRemaining)
	}
	if s.RoundID != "round-1" || len(s.Items) != 2 || len(s.Targets) != 2 {
		t.Errorf("round not dealt: %+v", s)
	}
}

func TestState_MatchAndWin(t *testing.T) {
	clock := newClock()
	s := started(t, clock)
	ctx := context.Background()

	s.FSM.Event(ctx, "attempt", "key-0", "key-0")
	if item, _ := s.FindItem("key-0"); !item.Matched {
		t.Error("key-0 should be matched")
	}
	if target, _ := s.FindTarget("key-0"); !target.Filled {
		t.Error("key-0 target should be filled")
	}
	if s.Score.CurrentScore != 15 {
		t.Errorf("expected 15, got %d", s.Score.CurrentScore)
	}
	if s.FSM.Current() != "idle" {
		t.Errorf("expected idle, got %s", s.FSM.Current())
	}

	clock.Advance(3 * time.Second)
	s.FSM.Event(ctx, "attempt", "key-1", "key-1")
	if s.Score.CurrentScore != 15+10+2 {
		t.Errorf("expected 27, got %d", s.Score.CurrentScore)
	}
	if !s.Win || s.Status() != Over {
		t.Errorf("expected a won round, got status %s win=%v", s.Status(), s.Win)
	}
	if !s.EndedAt.Equal(clock.Now()) {
		t.Errorf("EndedAt should be stamped on entering over")
	}

	// Ticks after the win are rejected by the machine.
	if err := s.FSM.Event(ctx, "tick"); err == nil {
		t.Error("tick should not be accepted once the round is over")
	}
	if s.TimeRemaining != RoundSeconds {
		t.Errorf("time should not move after the win, got %d", s.TimeRemaining)
	}
}

func TestState_Mismatch(t *testing.T) {
	s := started(t, newClock())
	s.Score.CurrentScore = 1

	s.FSM.Event(context.Background(), "attempt", "key-0", "key-1")
	if s.Score.CurrentScore != 0 {
		t.Errorf("expected score floored at 0, got %d", s.Score.CurrentScore)
	}
	if s.MatchedCount() != 0 {
		t.Error("a mismatch must not flip any flags")
	}
	for _, tg := range s.Targets {
		if tg.Filled {
			t.Error("a mismatch must not fill a target")
		}
	}
	if s.FSM.Current() != "idle" {
		t.Errorf("expected idle, got %s", s.FSM.Current())
	}
}

func TestState_FilledTargetIgnored(t *testing.T) {
	s := started(t, newClock())
	ctx := context.Background()

	s.FSM.Event(ctx, "attempt", "key-0", "key-0")
	before := s.Score.CurrentScore

	s.FSM.Event(ctx, "attempt", "key-1", "key-0")
	if s.Score.CurrentScore != before {
		t.Errorf("attempt on a filled target should not score, got %d want %d", s.Score.CurrentScore, before)
	}
	if s.Score.ErrorCount != 0 {
		t.Error("attempt on a filled target is not an error")
	}
	if s.FSM.Current() != "idle" {
		t.Errorf("expected idle, got %s", s.FSM.Current())
	}
}

func TestState_UnknownIDsIgnored(t *testing.T) {
	s := started(t, newClock())
	s.FSM.Event(context.Background(), "attempt", "nope", "key-0")
	s.FSM.Event(context.Background(), "attempt", "key-0", "nope")
	if s.Score.CurrentScore != 0 || s.Score.ErrorCount != 0 {
		t.Errorf("unknown ids should be no-ops, got %+v", s.Score)
	}
}

func TestState_TimeExpires(t *testing.T) {
	s := started(t, newClock())
	ctx := context.Background()

	for i := 0; i < RoundSeconds-1; i++ {
		s.FSM.Event(ctx, "tick")
	}
	if s.Status() != Active || s.TimeRemaining != 1 {
		t.Fatalf("expected 1 second left, got %d (%s)", s.TimeRemaining, s.Status())
	}

	s.FSM.Event(ctx, "tick")
	if s.Status() != Over || !s.Loss || s.Win {
		t.Errorf("expected a lost round, got status %s loss=%v", s.Status(), s.Loss)
	}
	if s.TimeRemaining != 0 {
		t.Errorf("expected 0 seconds, got %d", s.TimeRemaining)
	}
}

func TestState_Reset(t *testing.T) {
	s := started(t, newClock())
	ctx := context.Background()
	s.FSM.Event(ctx, "attempt", "key-0", "key-0")

	if err := s.FSM.Event(ctx, "reset"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if s.Status() != Configuring {
		t.Errorf("expected configuring, got %s", s.Status())
	}
	if s.Items != nil || s.Targets != nil || s.Score.CurrentScore != 0 || s.RoundID != "" {
		t.Errorf("round state should be discarded: %+v", s)
	}
}

func TestDeal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items, targets := Deal(keys.All(), keys.MajorToMinor, 8, rng)

	if len(items) != 8 || len(targets) != 8 {
		t.Fatalf("expected 8 items and targets, got %d/%d", len(items), len(targets))
	}
	seen := map[string]int{}
	for _, it := range items {
		if it.Kind != Major {
			t.Errorf("major-to-minor should drag majors, got %s", it.Kind)
		}
		seen[it.ID]++
	}
	for _, tg := range targets {
		if tg.Kind != Minor {
			t.Errorf("major-to-minor should drop on minors, got %s", tg.Kind)
		}
		seen[tg.ID]++
	}
	for id, n := range seen {
		if n != 2 {
			t.Errorf("id %s should be shared by exactly one item and one target, seen %d times", id, n)
		}
	}
}

func TestDeal_PairsAreRelative(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	items, targets := Deal(keys.All(), keys.MinorToMajor, 5, rng)

	relative := map[string]string{}
	for _, p := range keys.All() {
		relative[p.Minor] = p.Major
	}
	for _, it := range items {
		if it.Kind != Minor {
			t.Errorf("minor-to-major should drag minors, got %s", it.Kind)
		}
		for _, tg := range targets {
			if tg.ID == it.ID && relative[it.Name] != tg.Name {
				t.Errorf("%s minor paired with %s, want %s", it.Name, tg.Name, relative[it.Name])
			}
		}
	}
}

func TestDeal_ClampsToPool(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := keys.Filter(keys.SourceSelected, []string{"C", "G"})
	items, targets := Deal(pool, keys.MajorToMinor, 8, rng)
	if len(items) != 2 || len(targets) != 2 {
		t.Errorf("expected 2 of each, got %d/%d", len(items), len(targets))
	}
}
