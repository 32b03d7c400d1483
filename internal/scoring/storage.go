package scoring

import "context"

// ScoreStorage defines the interface for loading and saving finished rounds.
// This allows for mocking the storage layer during tests.
type ScoreStorage interface {
	// LoadByHash returns every round recorded for a configuration hash.
	LoadByHash(ctx context.Context, hash string) ([]ScoreHistoryEntry, error)
	// Save records a finished round.
	Save(ctx context.Context, entry ScoreHistoryEntry) error
}
