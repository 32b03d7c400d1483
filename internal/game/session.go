package game

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"relkeys/internal/keys"
	"relkeys/internal/scoring"
	"relkeys/internal/state"
	"relkeys/internal/utils"

	"github.com/sirupsen/logrus"
)

// Session wraps a Game with the history bookkeeping the engine itself stays
// free of: per-configuration high scores and process-wide totals.
type Session struct {
	Game         *Game
	ScoreStorage scoring.ScoreStorage // may be nil
	History      *scoring.ScoreHistory

	// Aggregate State
	TotalScore   int
	RoundsPlayed int

	recorded string // id of the last round written to storage
}

func NewSession(g *Game, storage scoring.ScoreStorage) *Session {
	return &Session{
		Game:         g,
		ScoreStorage: storage,
		History:      &scoring.ScoreHistory{},
	}
}

// Start deals a new round with the game's current configuration and loads
// the history recorded for it.
func (s *Session) Start(ctx context.Context) error {
	if err := s.Game.StartRound(s.Game.Config); err != nil {
		return err
	}
	st := s.Game.State
	hash := ConfigHash(s.Game.Config, s.Game.Pool())

	s.History = &scoring.ScoreHistory{}
	if s.ScoreStorage != nil {
		h, err := scoring.LoadHistory(ctx, s.ScoreStorage, hash)
		if err != nil {
			utils.Log.WithError(err).Warn("score history unavailable")
		} else {
			s.History = h
		}
	}
	s.History.CurrentScore = &scoring.ScoreHistoryEntry{
		RoundID:   st.RoundID,
		Hash:      hash,
		Title:     Title(s.Game.Config, len(s.Game.Pool())),
		Mode:      string(s.Game.Config.Mode),
		Level:     string(s.Game.Config.Difficulty),
		Total:     len(st.Items),
		StartedAt: st.StartedAt,
	}

	utils.Log.WithFields(logrus.Fields{
		"round":      st.RoundID,
		"mode":       s.Game.Config.Mode,
		"difficulty": s.Game.Config.Difficulty,
		"items":      len(st.Items),
	}).Info("round started")
	return nil
}

// Reset returns the game to configuring.
func (s *Session) Reset() {
	s.Game.ResetRound()
}

// Update syncs the current history entry with the round and records the
// round once it is over. It is safe to call after every mutation.
func (s *Session) Update(ctx context.Context) {
	st := s.Game.State
	cur := s.History.CurrentScore
	if cur == nil || cur.RoundID != st.RoundID {
		return
	}
	cur.Score = st.Score.CurrentScore
	cur.Matched = st.MatchedCount()
	cur.Latencies = slices.Clone(st.Score.Latencies)

	if st.Status() != state.Over || s.recorded == st.RoundID {
		return
	}
	s.recorded = st.RoundID
	cur.Won = st.Win
	cur.EndedAt = st.EndedAt
	s.TotalScore += cur.Score
	s.RoundsPlayed++

	log := utils.Log.WithFields(logrus.Fields{
		"round": st.RoundID,
		"score": cur.Score,
		"won":   cur.Won,
	})
	log.Info("round over")

	if s.ScoreStorage == nil {
		return
	}
	if err := s.ScoreStorage.Save(ctx, *cur); err != nil {
		log.WithError(err).Error("failed to save round")
	}
}

// ConfigHash identifies a configuration for high-score purposes: mode,
// difficulty and the set of majors in the pool.
func ConfigHash(cfg Config, pool []keys.Pair) string {
	majors := make([]string, 0, len(pool))
	for _, p := range pool {
		majors = append(majors, p.Major)
	}
	slices.Sort(majors)
	return scoring.CalculateHash(fmt.Sprintf("%s|%s|%s", cfg.Mode, cfg.Difficulty, strings.Join(majors, ",")))
}

// Title is the human label of a configuration.
func Title(cfg Config, poolSize int) string {
	return fmt.Sprintf("%s · %s · %d keys", cfg.Mode.Label(), cfg.Difficulty, poolSize)
}
