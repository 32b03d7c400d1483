package state

import (
	"fmt"
	"math/rand"
	"slices"

	"relkeys/internal/keys"
)

// Deal samples up to count pairs from pool without replacement and turns each
// into an item and a target sharing the id "key-<n>". The mode decides which
// member of the pair is dragged. Items and targets are shuffled separately.
func Deal(pool []keys.Pair, mode keys.Mode, count int, rng *rand.Rand) ([]Item, []Target) {
	sample := slices.Clone(pool)
	rng.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})
	if count > len(sample) {
		count = len(sample)
	}
	if count < 0 {
		count = 0
	}
	sample = sample[:count]

	items := make([]Item, 0, count)
	targets := make([]Target, 0, count)
	for i, pair := range sample {
		id := fmt.Sprintf("key-%d", i)
		if mode == keys.MinorToMajor {
			items = append(items, Item{ID: id, Name: pair.Minor, Kind: Minor})
			targets = append(targets, Target{ID: id, Name: pair.Major, Kind: Major})
		} else {
			items = append(items, Item{ID: id, Name: pair.Major, Kind: Major})
			targets = append(targets, Target{ID: id, Name: pair.Minor, Kind: Minor})
		}
	}

	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	rng.Shuffle(len(targets), func(i, j int) {
		targets[i], targets[j] = targets[j], targets[i]
	})
	return items, targets
}
