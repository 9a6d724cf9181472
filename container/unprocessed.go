// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package container

import (
	"github.com/pkg/errors"

	"github.com/irifrance/saturn/kernel"
)

// Unprocessed is a FIFO-insertion, stack-pop container: insertion order
// is preserved but Pop is LIFO ("pop-last") for locality.
type Unprocessed struct {
	arena  *kernel.Arena
	Events Events
	stack  []kernel.ClauseID
}

// NewUnprocessed creates an empty Unprocessed container over arena.
func NewUnprocessed(a *kernel.Arena) *Unprocessed {
	return &Unprocessed{arena: a, Events: NewEvents()}
}

// Add pushes c, transitioning its store to UNPROCESSED and firing
// Added.
func (u *Unprocessed) Add(c kernel.ClauseID) error {
	if err := u.arena.SetStore(c, kernel.StoreUnprocessed); err != nil {
		return errors.Wrap(err, "container.Unprocessed.Add")
	}
	u.stack = append(u.stack, c)
	u.Events.Added.Fire(c)
	return nil
}

// Pop removes and returns the most recently added clause, transitioning
// its store to SELECTED (drawn out for forward-simplification, its
// final destination not yet decided) and firing Selected. Pop returns
// ErrEmpty if the container has no clauses.
func (u *Unprocessed) Pop() (kernel.ClauseID, error) {
	n := len(u.stack)
	if n == 0 {
		return kernel.ClauseIDNull, ErrEmpty{Container: "Unprocessed"}
	}
	c := u.stack[n-1]
	u.stack = u.stack[:n-1]
	if err := u.arena.SetStore(c, kernel.StoreSelected); err != nil {
		return kernel.ClauseIDNull, errors.Wrap(err, "container.Unprocessed.Pop")
	}
	u.Events.Selected.Fire(c)
	return c, nil
}

// IsEmpty reports whether the container currently holds no clauses.
func (u *Unprocessed) IsEmpty() bool { return len(u.stack) == 0 }

// Size returns the number of clauses currently held.
func (u *Unprocessed) Size() int { return len(u.stack) }
