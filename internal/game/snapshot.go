package game

import (
	"slices"
	"time"

	"relkeys/internal/state"
)

// Snapshot is a read-only copy of the round for rendering.
type Snapshot struct {
	RoundID        string
	Status         state.Status
	Config         Config
	Selected       []string
	CanStart       bool
	Items          []state.Item
	Targets        []state.Target
	Score          int
	LastBonus      int // 0 before the first correct match
	Mistakes       int
	Latencies      []time.Duration
	TimeLimit      int
	TimeRemaining  int
	SinceLastMatch time.Duration
	Won            bool
	Lifted         string
	Touching       bool
	TouchPoint     Point
}

// Snapshot copies the current round so the caller cannot mutate it.
func (g *Game) Snapshot() Snapshot {
	s := g.State
	snap := Snapshot{
		RoundID:       s.RoundID,
		Status:        s.Status(),
		Config:        g.Config,
		Selected:      slices.Clone(g.Selected),
		CanStart:      g.CanStart(),
		Items:         slices.Clone(s.Items),
		Targets:       slices.Clone(s.Targets),
		Score:         s.Score.CurrentScore,
		LastBonus:     s.Score.LastBonus,
		Mistakes:      s.Score.ErrorCount,
		Latencies:     slices.Clone(s.Score.Latencies),
		TimeLimit:     s.TimeLimit,
		TimeRemaining: s.TimeRemaining,
		Won:           g.Won(),
		Lifted:        g.lifted(),
	}
	if snap.Status == state.Active {
		snap.SinceLastMatch = g.now().Sub(s.LastMatchAt)
	}
	if _, ok := g.touch.Dragging(); ok {
		snap.Touching = true
		snap.TouchPoint = g.touch.current
	}
	return snap
}

// AllMatched reports whether the snapshot's round is fully matched.
func (s Snapshot) AllMatched() bool {
	if len(s.Items) == 0 {
		return false
	}
	for _, it := range s.Items {
		if !it.Matched {
			return false
		}
	}
	return true
}

func (s Snapshot) ItemName(id string) string {
	for _, it := range s.Items {
		if it.ID == id {
			return it.Name
		}
	}
	return ""
}

// AverageLatency is the mean of the recorded match latencies.
func (s Snapshot) AverageLatency() time.Duration {
	if len(s.Latencies) == 0 {
		return 0
	}
	var sum time.Duration
	for _, l := range s.Latencies {
		sum += l
	}
	return sum / time.Duration(len(s.Latencies))
}
