// File: internal/guard/guard_test.go

package guard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	ids  []string
	fail map[string]bool
}

func (r *recorder) delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	if r.fail[id] {
		return errors.New("boom")
	}
	return nil
}

func TestSingleRequiresExactName(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		want  bool
	}{
		{"exact", "Budget ", true},
		{"missing trailing space", "Budget", false},
		{"wrong case", "budget ", false},
		{"extra space", " Budget ", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(0)
			require.NoError(t, g.RequestSingle(Target{ID: "p1", Name: "Budget "}))
			g.Type(tt.typed)
			assert.Equal(t, tt.want, g.CanConfirm())
		})
	}
}

func TestMismatchDoesNotConfirm(t *testing.T) {
	g := New(0)
	rec := &recorder{}
	require.NoError(t, g.RequestSingle(Target{ID: "p1", Name: "Budget "}))
	g.Type("Budget")

	_, err := g.Confirm(context.Background(), rec.delete)
	assert.ErrorIs(t, err, ErrConfirmationMismatch)
	assert.Equal(t, Pending, g.Phase())
	assert.Empty(t, rec.ids)
}

func TestSingleConfirmDeletesAndResets(t *testing.T) {
	g := New(0)
	rec := &recorder{}
	require.NoError(t, g.RequestSingle(Target{ID: "p1", Name: "Budget"}))
	g.Type("Budget")

	result, err := g.Confirm(context.Background(), rec.delete)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, rec.ids)
	assert.Equal(t, "1 of 1 deleted", result.Summary())
	assert.NoError(t, result.Err())

	assert.Equal(t, Idle, g.Phase())
	assert.Empty(t, g.Typed())
	assert.Empty(t, g.Targets())
}

func TestCancelMakesNoCalls(t *testing.T) {
	g := New(0)
	rec := &recorder{}
	require.NoError(t, g.RequestSingle(Target{ID: "p1", Name: "Budget"}))
	g.Type("Budget")
	g.Cancel()

	assert.Equal(t, Idle, g.Phase())
	_, err := g.Confirm(context.Background(), rec.delete)
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Empty(t, rec.ids)
}

func TestRequestWhilePendingIsRejected(t *testing.T) {
	g := New(0)
	require.NoError(t, g.RequestSingle(Target{ID: "p1", Name: "A"}))
	assert.ErrorIs(t, g.RequestSingle(Target{ID: "p2", Name: "B"}), ErrBusy)
	assert.ErrorIs(t, g.RequestBatch([]Target{{ID: "p2"}}), ErrBusy)
	assert.Equal(t, "A", g.Expected())
}

func TestBatchReportsPartialFailure(t *testing.T) {
	g := New(2)
	rec := &recorder{fail: map[string]bool{"b2": true, "b4": true}}
	targets := []Target{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}, {ID: "b4"}, {ID: "b5"}}

	require.NoError(t, g.RequestBatch(targets))
	assert.True(t, g.CanConfirm())
	assert.Empty(t, g.Expected())

	result, err := g.Confirm(context.Background(), rec.delete)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"b1", "b2", "b3", "b4", "b5"}, rec.ids)
	assert.Equal(t, "3 of 5 deleted", result.Summary())
	require.Len(t, result.Failed(), 2)
	assert.Equal(t, "b2", result.Failed()[0].Target.ID)
	assert.Equal(t, "b4", result.Failed()[1].Target.ID)
	assert.Error(t, result.Err())
	assert.Equal(t, Idle, g.Phase())
}

func TestEmptyBatchIsRejected(t *testing.T) {
	g := New(0)
	assert.ErrorIs(t, g.RequestBatch(nil), ErrNoTargets)
	assert.Equal(t, Idle, g.Phase())
}
