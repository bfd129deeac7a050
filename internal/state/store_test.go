// File: internal/state/store_test.go

package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   string
	name string
}

func (i item) Key() string { return i.id }

func replace(_, update item) item { return update }

func TestFinishListReplacesItems(t *testing.T) {
	s := NewStore[item]()

	seq := s.BeginList()
	assert.True(t, s.Snapshot().Loading)

	applied := s.FinishList(seq, "p1", []item{{"a", "A"}, {"b", "B"}}, "")
	require.True(t, applied)

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
	assert.Equal(t, "p1", snap.Scope)
	assert.Equal(t, []item{{"a", "A"}, {"b", "B"}}, snap.Items)
}

func TestFailedListKeepsStaleItems(t *testing.T) {
	s := NewStore[item]()
	s.FinishList(s.BeginList(), "", []item{{"a", "A"}}, "")

	seq := s.BeginList()
	s.FinishList(seq, "", nil, "could not list")

	snap := s.Snapshot()
	assert.Equal(t, []item{{"a", "A"}}, snap.Items)
	assert.Equal(t, "could not list", snap.Err)
	assert.False(t, snap.Loading)
}

func TestStaleListResultIsDiscarded(t *testing.T) {
	s := NewStore[item]()

	first := s.BeginList()
	second := s.BeginList()

	assert.True(t, s.FinishList(second, "p2", []item{{"new", "N"}}, ""))
	assert.True(t, s.Snapshot().Loading, "first listing still in flight")

	assert.False(t, s.FinishList(first, "p1", []item{{"old", "O"}}, ""))

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "p2", snap.Scope)
	assert.Equal(t, []item{{"new", "N"}}, snap.Items)
}

func TestCommitMutations(t *testing.T) {
	s := NewStore[item]()
	s.FinishList(s.BeginList(), "", []item{{"a", "A"}, {"b", "B"}, {"c", "C"}}, "")

	s.Begin()
	s.Commit(Patch("b", func(i item) item { i.name = "B2"; return i }))
	s.Begin()
	s.Commit(Remove[item]("a"))
	s.Begin()
	s.Commit(Append(item{"d", "D"}))

	assert.Equal(t, []item{{"b", "B2"}, {"c", "C"}, {"d", "D"}}, s.Snapshot().Items)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore[item]()
	s.FinishList(s.BeginList(), "", []item{{"a", "A"}}, "")

	snap := s.Snapshot()
	snap.Items[0].name = "mutated"

	assert.Equal(t, "A", s.Snapshot().Items[0].name)
}

func TestSubscribeNotifiesUntilUnsubscribed(t *testing.T) {
	s := NewStore[item]()

	var mu sync.Mutex
	var seen []Snapshot[item]
	unsubscribe := s.Subscribe(func(snap Snapshot[item]) {
		mu.Lock()
		seen = append(seen, snap)
		mu.Unlock()
	})

	seq := s.BeginList()
	s.FinishList(seq, "", []item{{"a", "A"}}, "")
	unsubscribe()
	s.Begin()
	s.Fail("boom")

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
	assert.Len(t, seen[1].Items, 1)
}

func TestConcurrentMutationsDeliverLatestSnapshotLast(t *testing.T) {
	s := NewStore[item]()
	s.FinishList(s.BeginList(), "", []item{{"a", "A"}, {"b", "B"}}, "")

	entered := make(chan struct{})
	release := make(chan struct{})
	var first sync.Once
	var mu sync.Mutex
	var last []item
	unsubscribe := s.Subscribe(func(snap Snapshot[item]) {
		blocked := false
		first.Do(func() { blocked = true })
		if blocked {
			close(entered)
			<-release
		}
		mu.Lock()
		last = snap.Items
		mu.Unlock()
	})
	defer unsubscribe()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Mutate(Remove[item]("a"))
	}()
	<-entered
	go func() {
		defer wg.Done()
		s.Mutate(Remove[item]("b"))
	}()
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, s.Snapshot().Items)
	assert.Equal(t, s.Snapshot().Items, last)
}

func TestMutateIfLatest(t *testing.T) {
	s := NewStore[item]()
	seq := s.BeginList()
	s.FinishList(seq, "", []item{{"a", "A"}}, "")

	assert.True(t, s.MutateIfLatest(seq, Merge([]item{{"a", "A+"}, {"zzz", "ignored"}}, replace)))
	assert.Equal(t, []item{{"a", "A+"}}, s.Snapshot().Items)

	s.BeginList()
	assert.False(t, s.MutateIfLatest(seq, Merge([]item{{"a", "stale"}}, replace)))
	assert.Equal(t, "A+", s.Snapshot().Items[0].name)
}

func TestConcurrentCommitsAreSerialized(t *testing.T) {
	s := NewStore[item]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Begin()
			s.Commit(Append(item{id: string(rune('A' + i%26)) + string(rune('a' + i/26))}))
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 50)
	assert.False(t, snap.Loading)
}

func TestResetScopeOnlyClearsMatchingListing(t *testing.T) {
	s := NewStore[item]()
	seq := s.BeginList()
	s.FinishList(seq, "K1", []item{{"f1", "a.txt"}}, "")

	assert.False(t, s.ResetScope("K2"))
	assert.Len(t, s.Snapshot().Items, 1)

	assert.True(t, s.ResetScope("K1"))
	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Scope)
}
