// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

// Package limits implements the age/weight resource bounds and the LRS
// discard controller, grounded on gini's internal/xo restart machinery
// (a periodically re-evaluated threshold that triggers a batched
// cleanup pass over live state) and its event publication style
// (event.Bus).
package limits

import (
	"github.com/irifrance/saturn/container"
	"github.com/irifrance/saturn/event"
	"github.com/irifrance/saturn/kernel"
)

// ChangeKind classifies a limitsChanged event.
type ChangeKind int

const (
	LOOSENED ChangeKind = iota
	TIGHTENED
)

func (k ChangeKind) String() string {
	if k == LOOSENED {
		return "LOOSENED"
	}
	return "TIGHTENED"
}

// Limits holds the current age/weight bounds and publishes Changed
// whenever they move, per spec §4.5.
type Limits struct {
	Changed *event.Bus[ChangeKind]

	ageLimit, weightLimit     uint32
	ageLimited, weightLimited bool
}

// New creates an unbounded Limits (neither ageLimited nor
// weightLimited).
func New() *Limits {
	return &Limits{Changed: event.New[ChangeKind]()}
}

// AgeLimit returns the current age bound and whether it is active.
func (l *Limits) AgeLimit() (uint32, bool) { return l.ageLimit, l.ageLimited }

// WeightLimit returns the current weight bound and whether it is
// active.
func (l *Limits) WeightLimit() (uint32, bool) { return l.weightLimit, l.weightLimited }

// Tighten adopts (age, weight) if either bound is new or stricter than
// the one already in force, firing TIGHTENED. A no-op call (bounds
// already at or below the given values) fires nothing.
func (l *Limits) Tighten(age, weight uint32) bool {
	tightened := false
	if !l.ageLimited || age < l.ageLimit {
		l.ageLimit = age
		l.ageLimited = true
		tightened = true
	}
	if !l.weightLimited || weight < l.weightLimit {
		l.weightLimit = weight
		l.weightLimited = true
		tightened = true
	}
	if tightened {
		l.Changed.Fire(TIGHTENED)
	}
	return tightened
}

// Loosen removes both bounds entirely, firing LOOSENED.
func (l *Limits) Loosen() {
	l.ageLimited = false
	l.weightLimited = false
	l.Changed.Fire(LOOSENED)
}

// shouldDiscard applies the removal predicate of spec §4.5 to c under
// the current bounds. A clause is only ever a discard candidate once
// the age limit is active; weightLimited alone never triggers removal
// (age comes first in the predicate's own case split).
func (l *Limits) shouldDiscard(a *kernel.Arena, c kernel.ClauseID) bool {
	if !l.ageLimited {
		return false
	}
	age := a.Age(c)
	weight := a.Weight(c)
	switch {
	case age > l.ageLimit:
		if !l.weightLimited {
			return false
		}
		return weight > l.weightLimit
	case age == l.ageLimit:
		if !l.weightLimited {
			return false
		}
		return weight-a.MaxSelectedLiteralWeight(c) >= l.weightLimit
	default:
		return false
	}
}

// Sweep runs one LRS discard pass over active, walking active.All()
// directly (already a duplicate-free view of exactly the current Active
// clauses, so no separate index or visited set is needed). Removals are
// collected first and applied second, in reverse of All()'s order,
// which is deterministic for a given run; it is the reverse of Added
// order only while no Active clause has been removed (see
// container.Active.RemoveBatch). Sweep should be
// called after a Tighten that returns true.
func Sweep(a *kernel.Arena, active *container.Active, l *Limits) error {
	var victims []kernel.ClauseID
	for _, c := range active.All() {
		if l.shouldDiscard(a, c) {
			victims = append(victims, c)
		}
	}
	for i, j := 0, len(victims)-1; i < j; i, j = i+1, j-1 {
		victims[i], victims[j] = victims[j], victims[i]
	}
	return active.RemoveBatch(victims)
}
