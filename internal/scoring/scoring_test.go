package scoring

import (
	"context"
	"errors"
	"testing"
	"time"
)

// MockScoreStorage is a mock implementation of the ScoreStorage interface
// that stores entries in memory. This is used for testing.
type MockScoreStorage struct {
	Entries []ScoreHistoryEntry
	err     error // To simulate errors from the storage layer.
}

func (m *MockScoreStorage) LoadByHash(_ context.Context, hash string) ([]ScoreHistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []ScoreHistoryEntry
	for _, e := range m.Entries {
		if e.Hash == hash {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockScoreStorage) Save(_ context.Context, entry ScoreHistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

func TestTimeBonus(t *testing.T) {
	cases := map[time.Duration]int{
		0:                       5,
		900 * time.Millisecond:  4,
		time.Second:             4,
		2500 * time.Millisecond: 2,
		4 * time.Second:         1,
		5 * time.Second:         1,
		time.Minute:             1,
		-3 * time.Second:        5,
	}
	for elapsed, want := range cases {
		if got := TimeBonus(elapsed); got != want {
			t.Errorf("TimeBonus(%v): expected %d, got %d", elapsed, want, got)
		}
	}
}

func TestScoreEvent(t *testing.T) {
	s := NewScoring()

	s.ScoreEvent("rightMatch")
	if s.CurrentScore != 10 {
		t.Errorf("rightMatch: expected score 10, got %d", s.CurrentScore)
	}
	if s.MatchCount != 1 {
		t.Errorf("rightMatch: expected match count 1, got %d", s.MatchCount)
	}

	s.ScoreEvent("wrongMatch")
	if s.CurrentScore != 8 {
		t.Errorf("wrongMatch: expected score 8, got %d", s.CurrentScore)
	}
	if s.ErrorCount != 1 {
		t.Errorf("wrongMatch: expected error count 1, got %d", s.ErrorCount)
	}
}

func TestScoreEvent_FloorsAtZero(t *testing.T) {
	s := NewScoring()
	s.CurrentScore = 1

	s.RecordMiss()
	if s.CurrentScore != 0 {
		t.Errorf("expected score to floor at 0, got %d", s.CurrentScore)
	}
	s.RecordMiss()
	if s.CurrentScore != 0 {
		t.Errorf("expected score to stay at 0, got %d", s.CurrentScore)
	}
}

func TestRecordMatch(t *testing.T) {
	s := NewScoring()

	if bonus := s.RecordMatch(0); bonus != 5 {
		t.Errorf("expected bonus 5, got %d", bonus)
	}
	if s.CurrentScore != 15 {
		t.Errorf("expected score 15, got %d", s.CurrentScore)
	}

	if bonus := s.RecordMatch(5 * time.Second); bonus != 1 {
		t.Errorf("expected bonus 1, got %d", bonus)
	}
	if s.CurrentScore != 26 {
		t.Errorf("expected score 26, got %d", s.CurrentScore)
	}
	if s.LastBonus != 1 {
		t.Errorf("expected last bonus 1, got %d", s.LastBonus)
	}
	if len(s.Latencies) != 2 {
		t.Fatalf("expected 2 latencies, got %d", len(s.Latencies))
	}
	if s.AverageLatency() != 2500*time.Millisecond {
		t.Errorf("expected average 2.5s, got %v", s.AverageLatency())
	}
}

func TestLoadHistory(t *testing.T) {
	hash := CalculateHash("easy|major-to-minor|C,G,D")
	mockStorage := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{
			{Hash: "some_other_hash", Score: 9999},
			{Hash: hash, Score: 30, RoundID: "low"},
			{Hash: hash, Score: 70, RoundID: "high"},
		},
	}

	h, err := LoadHistory(context.Background(), mockStorage, hash)
	if err != nil {
		t.Fatalf("LoadHistory returned an unexpected error: %v", err)
	}
	if h.Attempts != 2 {
		t.Errorf("expected 2 attempts, but got %d", h.Attempts)
	}
	high := h.GetHighScoreEntry()
	if high == nil || high.RoundID != "high" {
		t.Fatalf("expected the 70 point round as high score, got %+v", high)
	}

	h.CurrentScore = &ScoreHistoryEntry{Hash: hash, Score: 50}
	if h.GotHighScore() {
		t.Error("50 should not beat a high score of 70")
	}
	top := h.GetNScoreEntries(5)
	if len(top) != 3 || top[0].Score != 70 || top[1].Score != 50 || top[2].Score != 30 {
		t.Errorf("unexpected top entries: %+v", top)
	}
}

func TestLoadHistory_StorageError(t *testing.T) {
	mockStorage := &MockScoreStorage{err: errors.New("disk on fire")}
	if _, err := LoadHistory(context.Background(), mockStorage, "x"); err == nil {
		t.Error("expected an error from a failing storage")
	}
}

func TestGotHighScore_FirstRound(t *testing.T) {
	h := ScoreHistory{CurrentScore: &ScoreHistoryEntry{Score: 0}}
	if !h.GotHighScore() {
		t.Error("the first recorded round is always a high score")
	}
}
