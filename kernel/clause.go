// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package kernel

import "github.com/pkg/errors"

// ClauseID is a compact handle into an Arena's clause table (Design
// Notes §9: "arena storage indexed by compact handles").
type ClauseID uint32

// ClauseIDNull is not a valid clause.
const ClauseIDNull ClauseID = 1<<32 - 1

// Store is the clause's container-membership state, spec §3.
type Store uint8

const (
	StoreNone Store = iota
	StoreUnprocessed
	StorePassive
	StoreActive
	StoreReactivated
	StoreSelected
)

func (s Store) String() string {
	switch s {
	case StoreNone:
		return "NONE"
	case StoreUnprocessed:
		return "UNPROCESSED"
	case StorePassive:
		return "PASSIVE"
	case StoreActive:
		return "ACTIVE"
	case StoreReactivated:
		return "REACTIVATED"
	case StoreSelected:
		return "SELECTED"
	default:
		return "?"
	}
}

// Inference records the derivation of a clause: its parents plus the
// two monotone ancestor counters used by niceness (spec §4.3).
type Inference struct {
	Rule          string
	Parents       []ClauseID
	ThAncestors   uint32
	AllAncestors  uint32
}

// clauseRec is the arena-owned storage for one clause.
type clauseRec struct {
	lits      []LitID
	age       uint32
	weight    uint32
	selected  int
	store     Store
	inference Inference
	bddRef    int32 // optional propositional/BDD reference; -1 if unset
}

// ErrInvalidTransition reports an illegal Store transition (spec §3
// "Store transitions other than those listed are illegal").
var ErrInvalidTransition = errors.New("kernel: invalid clause store transition")

// NewClause interns a fresh clause with the given literals and
// inference record, age = max(parent ages)+1 (0 if no parents), weight
// cached as Σ literal symbol counts. The clause starts in StoreNone.
func (a *Arena) NewClause(lits []LitID, inf Inference) ClauseID {
	age := uint32(0)
	for _, p := range inf.Parents {
		if pa := a.clauses[p].age + 1; pa > age {
			age = pa
		}
	}
	w := uint32(0)
	for _, l := range lits {
		w += uint32(a.LitSymbolCount(l))
	}
	id := ClauseID(len(a.clauses))
	rec := clauseRec{age: age, weight: w, store: StoreNone, inference: inf, bddRef: -1}
	rec.lits = append(rec.lits, lits...)
	a.clauses = append(a.clauses, rec)
	return id
}

// Lits returns the literals of c in order. Arena-owned; do not mutate.
func (a *Arena) Lits(c ClauseID) []LitID { return a.clauses[c].lits }

// Age returns c's derivation depth.
func (a *Arena) Age(c ClauseID) uint32 { return a.clauses[c].age }

// Weight returns c's cached symbol-count weight.
func (a *Arena) Weight(c ClauseID) uint32 { return a.clauses[c].weight }

// Selected returns the number of leading literals selected for
// inferences.
func (a *Arena) Selected(c ClauseID) int { return a.clauses[c].selected }

// SetSelected marks the first n literals of c as selected. Mutating a
// clause while Active is forbidden (spec §4.4); callers must only call
// this before promotion to Active.
func (a *Arena) SetSelected(c ClauseID, n int) {
	rec := &a.clauses[c]
	if rec.store == StoreActive {
		panic("kernel: mutation of an Active clause")
	}
	if n < 0 || n > len(rec.lits) {
		panic("kernel: selected count out of range")
	}
	rec.selected = n
}

// SelectedLits returns the leading selected literals of c.
func (a *Arena) SelectedLits(c ClauseID) []LitID {
	rec := a.clauses[c]
	return rec.lits[:rec.selected]
}

// MaxSelectedLiteralWeight returns the maximum symbol-count weight over
// c's selected literals, used by the LRS discard predicate (spec §4.5).
func (a *Arena) MaxSelectedLiteralWeight(c ClauseID) uint32 {
	max := uint32(0)
	for _, l := range a.SelectedLits(c) {
		if w := uint32(a.LitSymbolCount(l)); w > max {
			max = w
		}
	}
	return max
}

// Store returns c's current container-membership state.
func (a *Arena) Store(c ClauseID) Store { return a.clauses[c].store }

// Inference returns c's derivation record.
func (a *Arena) Inference(c ClauseID) Inference { return a.clauses[c].inference }

// Niceness computes th_ancestors/all_ancestors clamped to [0,1] per
// Design Notes §9's guard against rounding pushing it above 1.
func (a *Arena) Niceness(c ClauseID) float64 {
	inf := a.clauses[c].inference
	if inf.AllAncestors == 0 {
		return 0
	}
	n := float64(inf.ThAncestors) / float64(inf.AllAncestors)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// legalTransitions enumerates the store graph from spec §3's lifecycle
// diagram: NONE -> UNPROCESSED -> PASSIVE -> ACTIVE -> NONE, with
// PASSIVE -> NONE (forward-simplified/subsumed before activation) and
// ACTIVE -> REACTIVATED -> ACTIVE for LRS-style re-simplification loops,
// and UNPROCESSED/PASSIVE -> SELECTED for a clause pulled out
// mid-inference (SELECTED then moves on to UNPROCESSED, PASSIVE, ACTIVE
// or NONE).
var legalTransitions = map[Store]map[Store]bool{
	StoreNone:         {StoreUnprocessed: true},
	StoreUnprocessed:  {StorePassive: true, StoreNone: true, StoreSelected: true},
	StorePassive:      {StoreActive: true, StoreNone: true, StoreSelected: true},
	StoreActive:       {StoreNone: true, StoreReactivated: true},
	StoreReactivated:  {StoreActive: true, StoreNone: true},
	StoreSelected:     {StoreUnprocessed: true, StorePassive: true, StoreActive: true, StoreNone: true},
}

// SetStore transitions c to next, validating against the legal store
// graph. Containers are the only legitimate callers (spec §5 "the
// clause store mirrors container membership; any transition is
// performed by the container itself, never externally").
func (a *Arena) SetStore(c ClauseID, next Store) error {
	rec := &a.clauses[c]
	if rec.store == next {
		return nil
	}
	if !legalTransitions[rec.store][next] {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", rec.store, next)
	}
	rec.store = next
	return nil
}

// IsEmpty reports whether c has no literals (the refutation clause).
func (a *Arena) IsEmpty(c ClauseID) bool { return len(a.clauses[c].lits) == 0 }
