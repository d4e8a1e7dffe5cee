package service

import (
	"context"
	"sort"
	"sync"
	"testing"
)

// fakePresenceStore answers IsViewing from a static table. An unreachable
// store degrades every lookup to false, matching the adapter contract.
type fakePresenceStore struct {
	mu          sync.Mutex
	viewing     map[string]map[string]bool // user -> channel -> viewing
	unreachable bool
	lookups     int
}

func (f *fakePresenceStore) IsViewing(_ context.Context, userID, channelID string) bool {
	f.mu.Lock()
	f.lookups++
	f.mu.Unlock()
	if f.unreachable {
		return false
	}
	return f.viewing[userID][channelID]
}

func (f *fakePresenceStore) MarkOpen(_ context.Context, _, _, _ string) error { return nil }

func (f *fakePresenceStore) MarkClose(_ context.Context, _, _, _ string) error { return nil }

func sorted(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

func TestFilter_ExcludesActiveViewers(t *testing.T) {
	store := &fakePresenceStore{viewing: map[string]map[string]bool{
		"u2": {"c9": true},
	}}
	f := NewPresenceFilter(store, 4)

	got := f.Filter(context.Background(), []string{"u1", "u2", "u3"}, "c9")

	want := []string{"u1", "u3"}
	if len(got) != len(want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}
	for i := range want {
		if sorted(got)[i] != want[i] {
			t.Fatalf("Filter = %v, want %v", got, want)
		}
	}
}

func TestFilter_EmptyInputNoStoreCalls(t *testing.T) {
	store := &fakePresenceStore{}
	f := NewPresenceFilter(store, 4)

	if got := f.Filter(context.Background(), nil, "c1"); len(got) != 0 {
		t.Fatalf("Filter(nil) = %v, want empty", got)
	}
	if store.lookups != 0 {
		t.Fatalf("empty input must not touch the store, saw %d lookups", store.lookups)
	}
}

func TestFilter_UnreachableStoreFailsOpen(t *testing.T) {
	store := &fakePresenceStore{unreachable: true}
	f := NewPresenceFilter(store, 4)

	recipients := []string{"u1", "u2", "u3"}
	got := f.Filter(context.Background(), recipients, "c1")

	if len(got) != len(recipients) {
		t.Fatalf("Filter = %v, want all of %v", got, recipients)
	}
	for i := range recipients {
		if got[i] != recipients[i] {
			t.Fatalf("Filter = %v, want %v in order", got, recipients)
		}
	}
}

func TestFilter_ViewerOfOtherChannelIsKept(t *testing.T) {
	store := &fakePresenceStore{viewing: map[string]map[string]bool{
		"u1": {"c2": true},
	}}
	f := NewPresenceFilter(store, 4)

	got := f.Filter(context.Background(), []string{"u1"}, "c1")
	if len(got) != 1 || got[0] != "u1" {
		t.Fatalf("Filter = %v, want [u1]", got)
	}
}

func TestFilter_ManyRecipientsBoundedWorkers(t *testing.T) {
	store := &fakePresenceStore{viewing: map[string]map[string]bool{}}
	recipients := make([]string, 200)
	for i := range recipients {
		recipients[i] = string(rune('a'+i%26)) + "-user"
	}
	f := NewPresenceFilter(store, 3)

	got := f.Filter(context.Background(), recipients, "c1")
	if len(got) != len(recipients) {
		t.Fatalf("got %d recipients back, want %d", len(got), len(recipients))
	}
	if store.lookups != len(recipients) {
		t.Fatalf("lookups = %d, want one per recipient", store.lookups)
	}
}
