package state

import (
	"context"
	"time"

	"relkeys/internal/scoring"

	"github.com/looplab/fsm"
)

// RoundSeconds is the countdown every round starts with.
const RoundSeconds = 60

// Status is the coarse round status seen from outside the state machine.
type Status string

const (
	Configuring Status = "configuring"
	Active      Status = "active"
	Over        Status = "over"
)

// Kind tells whether a token names a major or a minor key.
type Kind string

const (
	Major Kind = "major"
	Minor Kind = "minor"
)

// Item is a draggable key. It shares its ID with exactly one Target.
type Item struct {
	ID      string
	Name    string
	Kind    Kind
	Matched bool
}

// Target is a drop zone for one Item.
type Target struct {
	ID     string
	Name   string
	Kind   Kind
	Filled bool
}

// Round is the dealt board handed to the "start" event.
type Round struct {
	ID      string
	Items   []Item
	Targets []Target
}

type State struct {
	RoundID       string
	Items         []Item
	Targets       []Target
	Score         scoring.Scoring
	TimeLimit     int // Total time in seconds
	TimeRemaining int // Current time remaining in seconds
	StartedAt     time.Time
	EndedAt       time.Time
	LastMatchAt   time.Time
	Win           bool // Every item matched before the countdown ran out
	Loss          bool // Countdown ran out first
	FSM           *fsm.FSM

	now func() time.Time
}

// NewState returns a state machine resting in the configuring state. now is
// the clock used for match latencies; nil means time.Now.
func NewState(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	s := &State{
		Score: scoring.NewScoring(),
		now:   now,
	}

	s.FSM = fsm.NewFSM(
		"configuring",
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "start", Src: []string{"configuring", "over"}, Dst: "dealing"},
		{Name: "dealt", Src: []string{"dealing"}, Dst: "idle"},

		// Match attempts
		{Name: "attempt", Src: []string{"idle"}, Dst: "checkMatch"},
		{Name: "match", Src: []string{"checkMatch"}, Dst: "gotMatch"},
		{Name: "mismatch", Src: []string{"checkMatch"}, Dst: "noMatch"},
		{Name: "ignore", Src: []string{"checkMatch"}, Dst: "idle"},

		{Name: "matched", Src: []string{"gotMatch"}, Dst: "evaluating"},
		{Name: "notMatched", Src: []string{"noMatch"}, Dst: "evaluating"},

		{Name: "wait", Src: []string{"evaluating"}, Dst: "idle"},
		{Name: "roundEnd", Src: []string{"evaluating"}, Dst: "over"},

		// Countdown
		{Name: "tick", Src: []string{"idle"}, Dst: "timeCheck"},
		{Name: "timePassed", Src: []string{"timeCheck"}, Dst: "idle"},
		{Name: "timeExpired", Src: []string{"timeCheck"}, Dst: "over"},

		{Name: "reset", Src: []string{"idle", "over"}, Dst: "configuring"},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_dealing": func(ctx context.Context, e *fsm.Event) {
			var r Round
			if len(e.Args) > 0 {
				r, _ = e.Args[0].(Round)
			}
			now := s.now()
			s.RoundID = r.ID
			s.Items = r.Items
			s.Targets = r.Targets
			s.Score = scoring.NewScoring()
			s.TimeLimit = RoundSeconds
			s.TimeRemaining = RoundSeconds
			s.StartedAt = now
			s.LastMatchAt = now
			s.EndedAt = time.Time{}
			s.Win = false
			s.Loss = false
			e.FSM.Event(ctx, "dealt")
		},
		"enter_checkMatch": func(ctx context.Context, e *fsm.Event) {
			var itemID, targetID string
			if len(e.Args) > 1 {
				itemID, _ = e.Args[0].(string)
				targetID, _ = e.Args[1].(string)
			}

			// A filled target never takes part in another attempt.
			ti := s.targetIndex(targetID)
			if ti < 0 || s.Targets[ti].Filled {
				e.FSM.Event(ctx, "ignore")
				return
			}
			ii := s.itemIndex(itemID)
			if ii < 0 || s.Items[ii].Matched {
				e.FSM.Event(ctx, "ignore")
				return
			}

			if itemID == targetID {
				e.FSM.Event(ctx, "match", ii, ti)
				return
			}
			e.FSM.Event(ctx, "mismatch")
		},
		"enter_gotMatch": func(ctx context.Context, e *fsm.Event) {
			ii, _ := e.Args[0].(int)
			ti, _ := e.Args[1].(int)
			s.Items[ii].Matched = true
			s.Targets[ti].Filled = true

			now := s.now()
			s.Score.RecordMatch(now.Sub(s.LastMatchAt))
			s.LastMatchAt = now
			e.FSM.Event(ctx, "matched")
		},
		"enter_noMatch": func(ctx context.Context, e *fsm.Event) {
			s.Score.RecordMiss()
			e.FSM.Event(ctx, "notMatched")
		},
		"enter_evaluating": func(ctx context.Context, e *fsm.Event) {
			if s.AllMatched() {
				s.Win = true
				e.FSM.Event(ctx, "roundEnd")
				return
			}
			e.FSM.Event(ctx, "wait")
		},
		"enter_timeCheck": func(ctx context.Context, e *fsm.Event) {
			s.TimeRemaining--
			if s.TimeRemaining <= 0 {
				s.TimeRemaining = 0
				s.Loss = true
				e.FSM.Event(ctx, "timeExpired")
				return
			}
			e.FSM.Event(ctx, "timePassed")
		},
		"enter_over": func(ctx context.Context, e *fsm.Event) {
			s.EndedAt = s.now()
		},
		"enter_configuring": func(ctx context.Context, e *fsm.Event) {
			s.RoundID = ""
			s.Items = nil
			s.Targets = nil
			s.Score = scoring.NewScoring()
			s.TimeLimit = 0
			s.TimeRemaining = 0
			s.StartedAt = time.Time{}
			s.EndedAt = time.Time{}
			s.LastMatchAt = time.Time{}
			s.Win = false
			s.Loss = false
		},
	}
}
