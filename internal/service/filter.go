package service

import (
	"context"
	"sync"

	"github.com/strogmv/pushd/internal/port"
)

const defaultFilterWorkers = 16

// PresenceFilter removes recipients who are actively viewing the source
// channel. Lookups fan out on a bounded worker pool: recipient count is
// the dominant cost and must not multiply store latency sequentially.
type PresenceFilter struct {
	store   port.PresenceStore
	workers int
}

func NewPresenceFilter(store port.PresenceStore, workers int) *PresenceFilter {
	if workers <= 0 {
		workers = defaultFilterWorkers
	}
	return &PresenceFilter{store: store, workers: workers}
}

// Filter returns recipients minus every user currently viewing channelID.
// The result is best effort as of call time: a recipient whose lookup
// fails stays in the result (fail-open, never silently lose a
// notification), and an empty input returns immediately with no store
// round-trips. Input order is preserved.
func (f *PresenceFilter) Filter(ctx context.Context, recipients []string, channelID string) []string {
	if len(recipients) == 0 {
		return nil
	}

	viewing := make([]bool, len(recipients))
	sem := make(chan struct{}, f.workers)
	var wg sync.WaitGroup
	for i, userID := range recipients {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, userID string) {
			defer wg.Done()
			defer func() { <-sem }()
			viewing[i] = f.store.IsViewing(ctx, userID, channelID)
		}(i, userID)
	}
	wg.Wait()

	out := make([]string, 0, len(recipients))
	for i, userID := range recipients {
		if !viewing[i] {
			out = append(out, userID)
		}
	}
	return out
}
