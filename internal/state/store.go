// File: internal/state/store.go
package state

import (
	"slices"
	"sort"
	"sync"
)

// Item is anything a Store can hold, identified by a server-assigned key
type Item interface {
	Key() string
}

// Snapshot is an immutable view of a Store at one point in time
type Snapshot[T Item] struct {
	Items   []T
	Loading bool
	// Empty when the last operation succeeded
	Err string
	// Scoping key of the listing currently held (project id, access key, or empty)
	Scope string
}

// Find returns the item with the given key
func (s Snapshot[T]) Find(key string) (T, bool) {
	for _, item := range s.Items {
		if item.Key() == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Store is a shared, observable collection of one resource type.
// Every change is a single replace under the lock and gets a version. Subscribers are notified outside
// the lock, one change at a time, and never receive a version older than one already delivered.
type Store[T Item] struct {
	mu       sync.Mutex
	snap     Snapshot[T]
	version  uint64
	inflight int
	listSeq  uint64

	subs    map[int]func(Snapshot[T])
	nextSub int

	notifyMu  sync.Mutex
	delivered uint64
}

// Creates a new empty store
func NewStore[T Item]() *Store[T] {
	return &Store[T]{
		snap: Snapshot[T]{Items: []T{}},
		subs: make(map[int]func(Snapshot[T])),
	}
}

// Snapshot returns a copy of the current state
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Subscribe registers fn to be called after every change. The returned function unsubscribes.
// fn may read the store but must not change it.
func (s *Store[T]) Subscribe(fn func(Snapshot[T])) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Begin marks an operation as in flight and clears the error
func (s *Store[T]) Begin() {
	s.update(func() bool {
		s.inflight++
		s.snap.Loading = true
		s.snap.Err = ""
		return true
	})
}

// BeginList marks a listing as in flight and returns its sequence number.
// Only the most recently issued listing may publish its result.
func (s *Store[T]) BeginList() uint64 {
	var seq uint64
	s.update(func() bool {
		s.listSeq++
		seq = s.listSeq
		s.inflight++
		s.snap.Loading = true
		s.snap.Err = ""
		return true
	})
	return seq
}

// FinishList ends a listing started with BeginList. A non-empty errMsg records a failure and keeps the current items.
// It reports false when a newer listing was issued in the meantime, in which case the result is discarded.
func (s *Store[T]) FinishList(seq uint64, scope string, items []T, errMsg string) bool {
	applied := false
	s.update(func() bool {
		s.endLocked()
		if seq != s.listSeq {
			return true
		}
		applied = true
		if errMsg != "" {
			s.snap.Err = errMsg
			return true
		}
		s.snap.Items = slices.Clone(items)
		if s.snap.Items == nil {
			s.snap.Items = []T{}
		}
		s.snap.Scope = scope
		s.snap.Err = ""
		return true
	})
	return applied
}

// IsLatestList reports whether seq is still the most recently issued listing
func (s *Store[T]) IsLatestList(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.listSeq
}

// Fail ends an operation started with Begin, recording errMsg and leaving items untouched
func (s *Store[T]) Fail(errMsg string) {
	s.update(func() bool {
		s.endLocked()
		s.snap.Err = errMsg
		return true
	})
}

// Commit ends an operation started with Begin and applies mutate to the items
func (s *Store[T]) Commit(mutate func(items []T) []T) {
	s.update(func() bool {
		s.endLocked()
		s.snap.Items = mutate(slices.Clone(s.snap.Items))
		s.snap.Err = ""
		return true
	})
}

// Mutate applies mutate outside of any operation bookkeeping (used for cross-collection eviction)
func (s *Store[T]) Mutate(mutate func(items []T) []T) {
	s.update(func() bool {
		s.snap.Items = mutate(slices.Clone(s.snap.Items))
		return true
	})
}

// MutateIfLatest applies mutate only while seq is the most recent listing. It reports whether it was applied
func (s *Store[T]) MutateIfLatest(seq uint64, mutate func(items []T) []T) bool {
	applied := false
	s.update(func() bool {
		if seq != s.listSeq {
			return false
		}
		s.snap.Items = mutate(slices.Clone(s.snap.Items))
		applied = true
		return true
	})
	return applied
}

// ResetScope clears the items if the store currently holds the listing for scope
func (s *Store[T]) ResetScope(scope string) bool {
	cleared := false
	s.update(func() bool {
		if scope == "" || s.snap.Scope != scope {
			return false
		}
		s.snap.Items = []T{}
		s.snap.Scope = ""
		cleared = true
		return true
	})
	return cleared
}

// Reset clears the items and scope. In-flight bookkeeping is left alone
func (s *Store[T]) Reset() {
	s.update(func() bool {
		s.snap.Items = []T{}
		s.snap.Scope = ""
		s.snap.Err = ""
		return true
	})
}

func (s *Store[T]) endLocked() {
	if s.inflight > 0 {
		s.inflight--
	}
	s.snap.Loading = s.inflight > 0
}

func (s *Store[T]) copyLocked() Snapshot[T] {
	snap := s.snap
	snap.Items = slices.Clone(s.snap.Items)
	return snap
}

// update runs change under the lock and, if it reports a change, notifies subscribers in registration order.
// A snapshot overtaken by a newer delivery is dropped, so the last snapshot a subscriber sees is the current one.
func (s *Store[T]) update(change func() bool) {
	s.mu.Lock()
	if !change() {
		s.mu.Unlock()
		return
	}
	s.version++
	version := s.version
	snap := s.copyLocked()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(Snapshot[T]), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if version <= s.delivered {
		return
	}
	s.delivered = version
	for _, fn := range subs {
		fn(snap)
	}
}
