// File: cmd/strata/delete.go
package main

import (
	"context"
	"fmt"

	"strata/internal/guard"
	"strata/pkg/common"
)

// confirmAndDelete runs deleteFn for each target behind the destructive-action guard.
// One target requires its name to be retyped; several require a yes/no confirmation.
func (a *appContainer) confirmAndDelete(ctx context.Context, kind common.Kind, targets []guard.Target, force bool, deleteFn guard.DeleteFunc) error {
	g := guard.New(a.Config.API.MaxConcurrency)

	var err error
	if len(targets) == 1 {
		err = g.RequestSingle(targets[0])
	} else {
		err = g.RequestBatch(targets)
	}
	if err != nil {
		return err
	}

	if force {
		g.Type(g.Expected())
	} else {
		message := fmt.Sprintf("You are about to permanently delete %d %s. This action cannot be undone.", len(targets), kind.Plural(len(targets)))
		if len(targets) == 1 {
			message = fmt.Sprintf("You are about to permanently delete %s '%s'. This action cannot be undone.", kind, targets[0].Name)
		}

		ok, err := a.Prompter.ConfirmDelete(g, message)
		if err != nil {
			g.Cancel()
			return err
		}
		if !ok {
			g.Cancel()
			fmt.Fprintln(a.Out, "Confirmation did not match. Deletion cancelled.")
			return nil
		}
	}

	result, err := g.Confirm(ctx, deleteFn)
	if err != nil {
		return err
	}

	for _, o := range result.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(a.Out, "Failed to delete %s '%s': %v\n", kind, o.Target.Name, o.Err)
		} else {
			fmt.Fprintf(a.Out, "Deleted %s '%s'.\n", kind, o.Target.Name)
		}
	}
	if len(result.Outcomes) > 1 {
		fmt.Fprintln(a.Out, result.Summary())
	}

	if result.Deleted() < len(result.Outcomes) {
		return fmt.Errorf("%s", result.Summary())
	}
	return nil
}

// targetsFrom matches ids against a listing so each target carries its display name
func targetsFrom[T interface {
	Key() string
	DisplayName() string
}](kind common.Kind, items []T, ids []string) ([]guard.Target, error) {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[item.Key()] = item
	}

	targets := make([]guard.Target, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%s '%s' not found", kind, id)
		}
		name := item.DisplayName()
		if name == "" {
			name = id
		}
		targets = append(targets, guard.Target{ID: id, Name: name})
	}
	return targets, nil
}
