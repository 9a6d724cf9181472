// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

// Package index implements term/literal indices: a symbol-bucketed
// discrimination structure, self-maintained off a container's
// added/removed events, supporting unification, generalization and
// instance queries. It is grounded on gini's habit
// (internal/xo/watch.go, internal/xo/active.go) of a compact record
// pointing back at a clause, kept in per-key buckets that self-maintain
// off Active/Deactivate.
package index

import (
	"github.com/pkg/errors"

	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/z"
)

// Entry is one occurrence of an indexed term inside a literal of a
// clause, per the {t, lit, clause, substitution?} shape of spec §4.4.
type Entry struct {
	Term    kernel.TermID
	Lit     kernel.LitID
	Clause  kernel.ClauseID
}

// Extract computes the Entries an Index variant should hold for one
// clause, per the extraction rules in spec §4.4's table.
type Extract func(a *kernel.Arena, c kernel.ClauseID) []Entry

// varBucket is the sentinel key for indexed terms that are themselves
// bare variables (unifies/generalizes/instantiates against anything).
const varBucket = ^z.Sym(0)

// Index is one term index variant: a bucketed set of Entries plus the
// Extract function defining what it holds.
type Index struct {
	arena   *kernel.Arena
	extract Extract

	buckets    map[z.Sym][]Entry
	byClause   map[kernel.ClauseID][]Entry
	generation uint64
}

// New creates an index over arena, populated by extract.
func New(a *kernel.Arena, extract Extract) *Index {
	return &Index{
		arena:    a,
		extract:  extract,
		buckets:  make(map[z.Sym][]Entry),
		byClause: make(map[kernel.ClauseID][]Entry),
	}
}

func (ix *Index) bucketKey(t kernel.TermID) z.Sym {
	if ix.arena.IsVar(t) {
		return varBucket
	}
	return ix.arena.Sym(t)
}

// Insert adds every Entry the Extract rule produces for clause c, per
// spec §4.4's invariant "the set of (t, lit, c) triples ... equals what
// the extraction rule would produce for c at the moment it became
// Active." Insert must therefore be called exactly once, when c becomes
// Active.
func (ix *Index) Insert(c kernel.ClauseID) {
	entries := ix.extract(ix.arena, c)
	for _, e := range entries {
		k := ix.bucketKey(e.Term)
		ix.buckets[k] = append(ix.buckets[k], e)
	}
	if len(entries) > 0 {
		ix.byClause[c] = append(ix.byClause[c], entries...)
		ix.generation++
	}
}

// Remove deletes every Entry belonging to clause c.
func (ix *Index) Remove(c kernel.ClauseID) {
	entries, ok := ix.byClause[c]
	if !ok {
		return
	}
	delete(ix.byClause, c)
	for _, e := range entries {
		k := ix.bucketKey(e.Term)
		bucket := ix.buckets[k]
		for i, cand := range bucket {
			if cand.Clause == c && cand.Lit == e.Lit && cand.Term == e.Term {
				bucket = append(bucket[:i:i], bucket[i+1:]...)
				break
			}
		}
		if len(bucket) == 0 {
			delete(ix.buckets, k)
		} else {
			ix.buckets[k] = bucket
		}
	}
	ix.generation++
}

// Size returns the number of clauses currently contributing entries.
func (ix *Index) Size() int { return len(ix.byClause) }

// ErrStale is returned by Cursor.Next when the index has been mutated
// since the cursor was created (spec §4.4 "Enforce this with a
// generation counter checked on each next").
var ErrStale = errors.New("index: cursor invalidated by concurrent mutation")

// Result pairs a matching Entry with the substitution that witnesses
// the match, when requested.
type Result struct {
	Entry Entry
	Subst Subst
}

// Cursor is a lazy iterator over query results, invalidated by any
// Insert/Remove on the owning Index while live (spec §4.4).
type Cursor struct {
	ix       *Index
	gen      uint64
	pending  []Result
}

// Next advances the cursor, returning the next Result. ok is false once
// exhausted. Next returns ErrStale if the index was mutated since the
// cursor's creation.
func (cur *Cursor) Next() (Result, bool, error) {
	if cur.ix.generation != cur.gen {
		return Result{}, false, ErrStale
	}
	if len(cur.pending) == 0 {
		return Result{}, false, nil
	}
	r := cur.pending[0]
	cur.pending = cur.pending[1:]
	return r, true, nil
}

// All drains the cursor into a slice, for callers that don't need
// laziness (most tests, and simplification rules that must see every
// candidate before choosing one).
func (cur *Cursor) All() ([]Result, error) {
	var out []Result
	for {
		r, ok, err := cur.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, r)
	}
}

func (ix *Index) candidateBuckets(t kernel.TermID, includeVarBucket bool) []Entry {
	var out []Entry
	if ix.arena.IsVar(t) {
		// a variable query term can unify/generalize-against anything.
		for _, b := range ix.buckets {
			out = append(out, b...)
		}
		return out
	}
	out = append(out, ix.buckets[ix.arena.Sym(t)]...)
	if includeVarBucket {
		out = append(out, ix.buckets[varBucket]...)
	}
	return out
}

// GetUnifications returns candidates whose indexed term unifies with t.
// withSubst controls whether the resulting Substs are computed (skipping
// this is a cheap optimization for callers that only need presence).
func (ix *Index) GetUnifications(t kernel.TermID, withSubst bool) *Cursor {
	var pending []Result
	for _, e := range ix.candidateBuckets(t, true) {
		s, ok := Unify(ix.arena, t, e.Term)
		if !ok {
			continue
		}
		r := Result{Entry: e}
		if withSubst {
			r.Subst = s
		}
		pending = append(pending, r)
	}
	return &Cursor{ix: ix, gen: ix.generation, pending: pending}
}

// GetGeneralizations returns candidates s such that sθ = t for some θ
// (the indexed term is more general than, or equal to, the query term).
func (ix *Index) GetGeneralizations(t kernel.TermID, withSubst bool) *Cursor {
	var pending []Result
	for _, e := range ix.candidateBuckets(t, true) {
		s, ok := Match(ix.arena, e.Term, t)
		if !ok {
			continue
		}
		r := Result{Entry: e}
		if withSubst {
			r.Subst = s
		}
		pending = append(pending, r)
	}
	return &Cursor{ix: ix, gen: ix.generation, pending: pending}
}

// GetInstances returns candidates s such that tθ = s for some θ (the
// indexed term is an instance of, or equal to, the query term).
func (ix *Index) GetInstances(t kernel.TermID, withSubst bool) *Cursor {
	var pending []Result
	candidates := ix.candidateBuckets(t, false)
	for _, e := range candidates {
		s, ok := Match(ix.arena, t, e.Term)
		if !ok {
			continue
		}
		r := Result{Entry: e}
		if withSubst {
			r.Subst = s
		}
		pending = append(pending, r)
	}
	return &Cursor{ix: ix, gen: ix.generation, pending: pending}
}
