// File: internal/guard/guard.go
package guard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Phase is where a Guard is in its confirmation cycle
type Phase int

const (
	Idle Phase = iota
	Pending
	Confirmed
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	ErrBusy                 = errors.New("a confirmation is already pending")
	ErrNotPending           = errors.New("no confirmation is pending")
	ErrConfirmationMismatch = errors.New("typed name does not match the target")
	ErrNoTargets            = errors.New("nothing selected for deletion")
)

// Target identifies one resource a delete would remove
type Target struct {
	ID   string
	Name string
}

// DeleteFunc removes a single resource by id
type DeleteFunc func(ctx context.Context, id string) error

// Guard gates destructive actions behind an explicit confirmation.
// A single delete requires the exact target name to be typed; a batch only requires Confirm.
// A Guard is not safe for concurrent use.
type Guard struct {
	phase   Phase
	targets []Target
	batch   bool
	typed   string
	limit   int
}

// New returns an idle guard. limit caps concurrent batch deletes; 0 or less means unbounded
func New(limit int) *Guard {
	return &Guard{limit: limit}
}

// Returns the current phase
func (g *Guard) Phase() Phase {
	return g.phase
}

// IsBatch reports whether the pending request covers several targets
func (g *Guard) IsBatch() bool {
	return g.batch
}

// Returns a copy of the pending targets
func (g *Guard) Targets() []Target {
	return append([]Target(nil), g.targets...)
}

// Expected is the name that must be typed for a single delete, empty for a batch
func (g *Guard) Expected() string {
	if g.batch || len(g.targets) == 0 {
		return ""
	}
	return g.targets[0].Name
}

// Returns the confirmation text entered so far
func (g *Guard) Typed() string {
	return g.typed
}

// RequestSingle moves an idle guard to Pending for one target, which must be confirmed by typing its name
func (g *Guard) RequestSingle(target Target) error {
	if g.phase != Idle {
		return ErrBusy
	}
	g.phase = Pending
	g.targets = []Target{target}
	g.batch = false
	g.typed = ""
	return nil
}

// RequestBatch moves an idle guard to Pending for several targets, confirmed without typing
func (g *Guard) RequestBatch(targets []Target) error {
	if g.phase != Idle {
		return ErrBusy
	}
	if len(targets) == 0 {
		return ErrNoTargets
	}
	g.phase = Pending
	g.targets = append([]Target(nil), targets...)
	g.batch = true
	g.typed = ""
	return nil
}

// Type records the confirmation text as entered; it is compared without trimming
func (g *Guard) Type(text string) {
	if g.phase == Pending {
		g.typed = text
	}
}

// CanConfirm reports whether Confirm would proceed: a pending batch, or a single target whose name was typed exactly
func (g *Guard) CanConfirm() bool {
	if g.phase != Pending {
		return false
	}
	if g.batch {
		return true
	}
	return g.typed == g.targets[0].Name
}

// Confirm runs deleteFn once per target and returns the guard to Idle.
// Batch targets are deleted concurrently and independently; one failure does not stop the rest.
func (g *Guard) Confirm(ctx context.Context, deleteFn DeleteFunc) (Result, error) {
	if g.phase != Pending {
		return Result{}, ErrNotPending
	}
	if !g.CanConfirm() {
		return Result{}, ErrConfirmationMismatch
	}

	g.phase = Confirmed
	targets := g.targets
	defer g.reset()

	outcomes := make([]Outcome, len(targets))
	var eg errgroup.Group
	if g.limit > 0 {
		eg.SetLimit(g.limit)
	}
	for i, target := range targets {
		i, target := i, target
		outcomes[i].Target = target
		eg.Go(func() error {
			outcomes[i].Err = deleteFn(ctx, target.ID)
			return nil
		})
	}
	_ = eg.Wait()

	return Result{Outcomes: outcomes}, nil
}

// Cancel abandons a pending confirmation without calling anything
func (g *Guard) Cancel() {
	if g.phase != Pending {
		return
	}
	g.phase = Cancelled
	g.reset()
}

func (g *Guard) reset() {
	g.phase = Idle
	g.targets = nil
	g.batch = false
	g.typed = ""
}
