// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

// Package container implements the three clause containers (Unprocessed,
// Active, Passive) and a predicate-split passive variant, all
// self-publishing added/removed/selected on an event.Bus, grounded on
// gini's Active/Occs occurrence bookkeeping (internal/xo/active.go).
package container

import (
	"github.com/irifrance/saturn/event"
	"github.com/irifrance/saturn/kernel"
)

// Events is the added/removed/selected event surface every container
// exposes, per spec §4.2.
type Events struct {
	Added    *event.Bus[kernel.ClauseID]
	Removed  *event.Bus[kernel.ClauseID]
	Selected *event.Bus[kernel.ClauseID]
}

// NewEvents creates an empty Events triple.
func NewEvents() Events {
	return Events{
		Added:    event.New[kernel.ClauseID](),
		Removed:  event.New[kernel.ClauseID](),
		Selected: event.New[kernel.ClauseID](),
	}
}

// ErrEmpty is returned by a container's pop operation when it has no
// clauses (spec §4.2 "Fails with Empty if popped empty").
type ErrEmpty struct{ Container string }

func (e ErrEmpty) Error() string { return e.Container + ": empty" }
