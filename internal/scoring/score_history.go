package scoring

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// ScoreHistory holds the recorded rounds for one game configuration and the
// entry of the round being played.
type ScoreHistory struct {
	Entries        []ScoreHistoryEntry
	HighScoreEntry *ScoreHistoryEntry
	CurrentScore   *ScoreHistoryEntry
	Attempts       int
}

// ScoreHistoryEntry is a single finished round.
type ScoreHistoryEntry struct {
	RoundID   string
	Hash      string
	Title     string
	Mode      string
	Level     string
	Score     int
	Won       bool
	Matched   int
	Total     int
	Latencies []time.Duration
	StartedAt time.Time
	EndedAt   time.Time
}

// LoadHistory reads the previous rounds recorded under hash, highest score
// first.
func LoadHistory(ctx context.Context, storage ScoreStorage, hash string) (*ScoreHistory, error) {
	entries, err := storage.LoadByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("could not load score history: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	h := &ScoreHistory{
		Entries:  entries,
		Attempts: len(entries),
	}
	if len(entries) > 0 {
		h.HighScoreEntry = &h.Entries[0]
	}
	return h, nil
}

// GetHighScoreEntry returns the highest score entry from the loaded history.
func (sh ScoreHistory) GetHighScoreEntry() *ScoreHistoryEntry {
	return sh.HighScoreEntry
}

// GetNScoreEntries returns the top N entries, the current round included,
// sorted by score.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	entriesCopy := make([]ScoreHistoryEntry, 0, len(sh.Entries)+1)
	entriesCopy = append(entriesCopy, sh.Entries...)
	if sh.CurrentScore != nil {
		entriesCopy = append(entriesCopy, *sh.CurrentScore)
	}
	sort.SliceStable(entriesCopy, func(i, j int) bool {
		return entriesCopy[i].Score > entriesCopy[j].Score
	})
	if len(entriesCopy) < n {
		return entriesCopy
	}
	return entriesCopy[:n]
}

// GotHighScore checks if the current score is greater than or equal to the
// previously recorded high score.
func (sh ScoreHistory) GotHighScore() bool {
	if sh.CurrentScore == nil {
		return false
	}
	if sh.HighScoreEntry == nil {
		return true
	}
	return sh.CurrentScore.Score >= sh.HighScoreEntry.Score
}
