// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package container

import (
	"github.com/pkg/errors"

	"github.com/irifrance/saturn/kernel"
)

// Active is a set-like container: add, remove, size and iteration, with
// O(1) amortized removal via a back-pointer, directly grounded on
// gini's Active.Occs/Free occurrence-list pool (internal/xo/active.go).
type Active struct {
	arena  *kernel.Arena
	Events Events
	items  []kernel.ClauseID
	pos    map[kernel.ClauseID]int
}

// NewActive creates an empty Active container over arena.
func NewActive(a *kernel.Arena) *Active {
	return &Active{arena: a, Events: NewEvents(), pos: make(map[kernel.ClauseID]int)}
}

// Add promotes c into the Active set, transitioning its store to ACTIVE
// and firing Added.
func (act *Active) Add(c kernel.ClauseID) error {
	if _, ok := act.pos[c]; ok {
		return errors.New("container.Active.Add: clause already active")
	}
	if err := act.arena.SetStore(c, kernel.StoreActive); err != nil {
		return errors.Wrap(err, "container.Active.Add")
	}
	act.pos[c] = len(act.items)
	act.items = append(act.items, c)
	act.Events.Added.Fire(c)
	return nil
}

// Remove drops c from the Active set in O(1) amortized time via
// swap-with-last, transitioning its store to NONE and firing Removed.
// Remove requires c.store == ACTIVE, per spec §4.2.
func (act *Active) Remove(c kernel.ClauseID) error {
	i, ok := act.pos[c]
	if !ok {
		return errors.New("container.Active.Remove: clause not active")
	}
	if act.arena.Store(c) != kernel.StoreActive {
		return errors.New("container.Active.Remove: clause.store != ACTIVE")
	}
	last := len(act.items) - 1
	moved := act.items[last]
	act.items[i] = moved
	act.pos[moved] = i
	act.items = act.items[:last]
	delete(act.pos, c)
	if err := act.arena.SetStore(c, kernel.StoreNone); err != nil {
		return errors.Wrap(err, "container.Active.Remove")
	}
	act.Events.Removed.Fire(c)
	return nil
}

// RemoveBatch removes every clause in cs, in the order given. The LRS
// discard sweep (limits.Sweep) passes its victims in reverse of All()'s
// order. All() lists clauses in Added order only while no clause has
// been removed: Remove moves the last clause into the removed one's
// slot, so after a removal the order is not the Added order.
func (act *Active) RemoveBatch(cs []kernel.ClauseID) error {
	for _, c := range cs {
		if err := act.Remove(c); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether c is currently Active.
func (act *Active) Contains(c kernel.ClauseID) bool {
	_, ok := act.pos[c]
	return ok
}

// Size returns the number of Active clauses.
func (act *Active) Size() int { return len(act.items) }

// All returns a snapshot slice of the currently Active clauses. Safe to
// range over while mutating the container (unlike index cursors, which
// use a generation counter instead of a snapshot to stay lazy).
func (act *Active) All() []kernel.ClauseID {
	out := make([]kernel.ClauseID, len(act.items))
	copy(out, act.items)
	return out
}
