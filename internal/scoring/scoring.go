package scoring

import (
	"crypto/sha256"
	"fmt"
	"math"
	"time"
)

const (
	maxTimeBonus = 5
	minTimeBonus = 1
)

// Scoring tracks the score of a single round: the base award and time bonus
// for correct matches, the penalty for wrong ones and the match latencies.
type Scoring struct {
	// public
	CurrentScore int
	MatchCount   int
	ErrorCount   int
	LastBonus    int // 0 until the first correct match
	Latencies    []time.Duration

	// private
	scoreTable map[string]int
}

// NewScoring returns a zeroed round score.
func NewScoring() Scoring {
	return Scoring{scoreTable: getScoreTable()}
}

// ScoreEvent updates the score based on a given game event. The score never
// drops below zero.
func (s *Scoring) ScoreEvent(event string) {
	if s.scoreTable == nil {
		s.scoreTable = getScoreTable()
	}
	switch event {
	case "rightMatch":
		s.MatchCount++
	case "wrongMatch":
		s.ErrorCount++
	}
	s.CurrentScore += s.scoreTable[event]
	if s.CurrentScore < 0 {
		s.CurrentScore = 0
	}
}

// AddTimeBonus adds a bonus already computed by TimeBonus.
func (s *Scoring) AddTimeBonus(bonus int) {
	s.CurrentScore += bonus
	s.LastBonus = bonus
}

// RecordMatch scores a correct match that came elapsed after the previous
// one (or after the round start) and returns the time bonus awarded.
func (s *Scoring) RecordMatch(elapsed time.Duration) int {
	s.ScoreEvent("rightMatch")
	bonus := TimeBonus(elapsed)
	s.AddTimeBonus(bonus)
	s.Latencies = append(s.Latencies, elapsed)
	return bonus
}

// RecordMiss scores a wrong match.
func (s *Scoring) RecordMiss() {
	s.ScoreEvent("wrongMatch")
}

// AverageLatency is the mean time between correct matches, 0 without any.
func (s *Scoring) AverageLatency() time.Duration {
	if len(s.Latencies) == 0 {
		return 0
	}
	var sum time.Duration
	for _, l := range s.Latencies {
		sum += l
	}
	return sum / time.Duration(len(s.Latencies))
}

// TimeBonus rewards fast matches: 5 points under a second, one point less per
// extra second, and never less than 1.
func TimeBonus(elapsed time.Duration) int {
	bonus := int(math.Floor(maxTimeBonus - elapsed.Seconds()))
	if bonus > maxTimeBonus {
		return maxTimeBonus
	}
	if bonus < minTimeBonus {
		return minTimeBonus
	}
	return bonus
}

// CalculateHash generates a SHA256 hash for the given text.
func CalculateHash(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}

// getScoreTable returns the predefined values for different scoring events.
func getScoreTable() map[string]int {
	return map[string]int{
		"rightMatch": 10,
		"wrongMatch": -2,
	}
}
