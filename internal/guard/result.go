// File: internal/guard/result.go
package guard

import (
	"errors"
	"fmt"
)

// Outcome is the delete result for one target; Err is nil on success
type Outcome struct {
	Target Target
	Err    error
}

// Result lists one outcome per target, in request order
type Result struct {
	Outcomes []Outcome
}

// Deleted counts the successful outcomes
func (r Result) Deleted() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the outcomes that carry an error
func (r Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Summary reads like "3 of 5 deleted"
func (r Result) Summary() string {
	return fmt.Sprintf("%d of %d deleted", r.Deleted(), len(r.Outcomes))
}

// Err joins every per-target failure, or returns nil when all succeeded
func (r Result) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", o.Target.ID, o.Err))
	}
	return errors.Join(errs...)
}
