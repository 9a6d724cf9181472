// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/irifrance/saturn/container"
	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/limits"
)

// errRefutationFound unwinds drainUnprocessed as soon as forward
// simplification produces the empty clause, without waiting for the
// clause to reach Passive first.
var errRefutationFound = errors.New("saturation: refutation found")

// PassiveQueue is the subset of container.Passive/container.Split that
// Loop needs — a single interface lets Loop run over either the plain
// two-view Passive or the predicate-split multi-queue container without
// caring which, per §4.1's own framing of Passive/Split as
// interchangeable clause-selection policies.
type PassiveQueue interface {
	Add(c kernel.ClauseID) error
	PopSelected() (kernel.ClauseID, error)
	IsEmpty() bool
	SizeEstimate() int
	SetLimitsToMax()
	SetLimitsFromSimulation(ageLimit, weightLimit uint32) bool
	FulfilsAgeLimit(c kernel.ClauseID) bool
	FulfilsWeightLimit(c kernel.ClauseID) bool
	ChildrenPotentiallyFulfilLimits(age uint32) bool
}

// Loop is the given-clause state machine of §4.6, wired to one
// Environment, one set of containers and one IndexManager. A portfolio
// worker owns exactly one Loop; nothing here is safe to share across
// goroutines (§5 "single-threaded and cooperative").
type Loop struct {
	env    *Environment
	opts   Options
	stats  Statistics

	unprocessed *container.Unprocessed
	passive     PassiveQueue
	active      *container.Active

	indexMgr *IndexManager
	idx      *IndexSet
	lim      *limits.Limits

	cancel func() bool

	iterSinceLRS   int
	lrsCheckedOnce bool
}

// NewLoop builds a Loop over the given containers. cancel is polled at
// the barriers named in §5 (post-select, post-activate, post-generate);
// pass a func that always returns false to run to a natural fixpoint.
func NewLoop(env *Environment, opts Options, unprocessed *container.Unprocessed, passive PassiveQueue, active *container.Active, cancel func() bool) (*Loop, error) {
	indexMgr := NewIndexManager(env.Arena, active)
	idx := &IndexSet{}
	var err error
	if idx.SuperpositionFrom, err = indexMgr.Request(TagSuperpositionFrom); err != nil {
		return nil, err
	}
	if idx.SuperpositionInto, err = indexMgr.Request(TagSuperpositionInto); err != nil {
		return nil, err
	}
	if idx.DemodulationFrom, err = indexMgr.Request(TagDemodulationFrom); err != nil {
		return nil, err
	}
	if idx.DemodulationInto, err = indexMgr.Request(TagDemodulationInto); err != nil {
		return nil, err
	}
	if cancel == nil {
		cancel = func() bool { return false }
	}
	return &Loop{
		env:         env,
		opts:        opts,
		unprocessed: unprocessed,
		passive:     passive,
		active:      active,
		indexMgr:    indexMgr,
		idx:         idx,
		lim:         limits.New(),
		cancel:      cancel,
	}, nil
}

// selectLiterals marks the literals of c eligible for generating
// inferences, per Options.Selection (§6's "selection ... strategy
// tag"). The only strategies implemented select either every literal
// (complete, the default) or, for "maxWeight", the single heaviest
// literal of the clause, moved to the front (an incomplete but much
// cheaper strategy); any other tag falls back to select-all rather
// than silently doing nothing.
func selectLiterals(a *kernel.Arena, opts Options, c kernel.ClauseID) {
	lits := a.Lits(c)
	if opts.Selection != "maxWeight" || len(lits) == 0 {
		a.SetSelected(c, len(lits))
		return
	}
	best := 0
	bestWeight := -1
	for i, l := range lits {
		if w := a.LitSymbolCount(l); w > bestWeight {
			bestWeight = w
			best = i
		}
	}
	if best != 0 {
		lits[0], lits[best] = lits[best], lits[0]
	}
	a.SetSelected(c, 1)
}

// forwardSimplify runs demodulation (if enabled) to a fixpoint, then
// condensation (if enabled), then reports whether c is now redundant
// (a tautology, or subsumed by an Active clause). It never mutates c in
// place — kernel clauses are immutable once interned — it returns the
// literal set to actually use downstream.
func (l *Loop) forwardSimplify(c kernel.ClauseID) (lits []kernel.LitID, redundant bool) {
	a := l.env.Arena
	lits = a.Lits(c)
	if l.opts.ForwardDemodulation {
		lits = ForwardDemodulate(a, l.idx.DemodulationInto, lits)
	}
	if isTautologyOrTrivial(a, lits) {
		return lits, true
	}
	if l.opts.Condensation {
		lits = CondenseFixpoint(a, lits)
	}
	if l.opts.ForwardSubsumption && ForwardSubsumed(a, l.active.All(), c) {
		return lits, true
	}
	return lits, false
}

// materialize returns c itself if newLits is unchanged from c's own
// literals, or a fresh simplification-derived clause otherwise, so
// forward simplification never fabricates a clause with no
// Inference record tracing it back to c.
func materialize(a *kernel.Arena, c kernel.ClauseID, newLits []kernel.LitID) kernel.ClauseID {
	orig := a.Lits(c)
	if len(orig) == len(newLits) {
		same := true
		for i := range orig {
			if orig[i] != newLits[i] {
				same = false
				break
			}
		}
		if same {
			return c
		}
	}
	return a.NewClause(newLits, kernel.Inference{Rule: "simplify", Parents: []kernel.ClauseID{c}})
}

// backwardSimplify removes Active clauses that the newly activated
// clause given subsumes, and pulls out (removes and re-derives) Active
// clauses that a unit-equation given rewrites, pushing their rewritten
// forms back into Unprocessed (§4.6 step 5).
func (l *Loop) backwardSimplify(given kernel.ClauseID) error {
	a := l.env.Arena
	if l.opts.BackwardSubsumption {
		for _, victim := range BackwardSubsumed(a, given, l.active.All()) {
			if err := l.active.Remove(victim); err != nil {
				return err
			}
			l.stats.Discarded++
		}
	}
	if l.opts.BackwardDemodulation {
		for _, victim := range BackwardDemodulate(a, l.idx.DemodulationFrom, a.Lits(given)) {
			if victim == given || !l.active.Contains(victim) {
				continue
			}
			rewritten := ForwardDemodulate(a, l.idx.DemodulationInto, a.Lits(victim))
			if err := l.active.Remove(victim); err != nil {
				return err
			}
			if isTautologyOrTrivial(a, rewritten) {
				l.stats.Discarded++
				continue
			}
			child := a.NewClause(rewritten, kernel.Inference{Rule: "demodulation", Parents: []kernel.ClauseID{victim, given}})
			if err := l.unprocessed.Add(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// drainUnprocessed pops every clause currently in Unprocessed, forward
// simplifies it, and either discards it or pushes it into Passive
// (§4.6 steps 2 and 6).
func (l *Loop) drainUnprocessed() error {
	a := l.env.Arena
	for !l.unprocessed.IsEmpty() {
		c, err := l.unprocessed.Pop()
		if err != nil {
			return err
		}
		newLits, redundant := l.forwardSimplify(c)
		if redundant {
			if err := a.SetStore(c, kernel.StoreNone); err != nil {
				return err
			}
			l.stats.Discarded++
			continue
		}
		target := materialize(a, c, newLits)
		if a.IsEmpty(target) {
			l.stats.Refutation = target
			l.stats.TerminationReason = REFUTATION
			if target != c {
				if err := a.SetStore(c, kernel.StoreNone); err != nil {
					return err
				}
			}
			return errRefutationFound
		}
		if target != c {
			// A materialized replacement starts life in StoreNone; it must
			// re-enter through Unprocessed rather than jump straight to
			// Passive, per the store graph's NONE -> UNPROCESSED-only edge.
			if err := a.SetStore(c, kernel.StoreNone); err != nil {
				return err
			}
			if err := l.unprocessed.Add(target); err != nil {
				return err
			}
			continue
		}
		if err := l.passive.Add(target); err != nil {
			return err
		}
	}
	return nil
}

// runLRS applies the configured Options.AgeLimit/WeightLimit as LRS
// bounds and, if that tightened anything, sweeps Active clauses that no
// longer fit (§4.5, §4.6 step 7). No simulation of Passive is run: the
// bounds passed to SetLimitsFromSimulation and Tighten are the
// configured values, not ones derived from the current clause sets.
// Options.LrsFirstTimeCheck skips the very first call outright, so the
// initial clause set (loaded before any real activation has happened)
// is never discarded before a first activation. LrsWeightLimitOnly
// forces the age bound to zero: limits.shouldDiscard's "age below limit
// is always kept" case can then never fire (no clause has a negative
// age), leaving weight as the sole discard criterion.
func (l *Loop) runLRS() error {
	if l.opts.SaturationAlgorithm != LRS {
		return nil
	}
	if l.opts.LrsFirstTimeCheck && !l.lrsCheckedOnce {
		l.lrsCheckedOnce = true
		return nil
	}
	l.lrsCheckedOnce = true
	a := l.env.Arena
	if !l.passive.ChildrenPotentiallyFulfilLimits(0) {
		return nil
	}
	ageLimit := l.opts.AgeLimit
	if l.opts.LrsWeightLimitOnly {
		ageLimit = 0
	}
	tightened := l.passive.SetLimitsFromSimulation(ageLimit, l.opts.WeightLimit)
	if !tightened {
		return nil
	}
	if l.lim.Tighten(ageLimit, l.opts.WeightLimit) {
		l.env.Log.WithFields(logrus.Fields{
			"iteration": l.stats.Iterations,
			"reason":    "lrs-tightened",
		}).Debug("limits tightened, sweeping active")
		if err := limits.Sweep(a, l.active, l.lim); err != nil {
			return err
		}
	}
	return nil
}

// Run drives the given-clause loop to a fixpoint, a refutation, or
// cancellation, whichever comes first, returning the run's Statistics.
func (l *Loop) Run() (*Statistics, error) {
	a := l.env.Arena
	for {
		if l.cancel() {
			l.stats.TerminationReason = TIME_LIMIT
			return &l.stats, nil
		}
		if err := l.drainUnprocessed(); err != nil {
			if err == errRefutationFound {
				return &l.stats, nil
			}
			return &l.stats, err
		}
		if l.passive.IsEmpty() {
			if l.opts.SaturationAlgorithm == LRS {
				l.stats.TerminationReason = REFUTATION_NOT_FOUND
			} else {
				l.stats.TerminationReason = SATISFIABLE
			}
			return &l.stats, nil
		}

		given, err := l.passive.PopSelected()
		if err != nil {
			return &l.stats, err
		}
		if l.cancel() {
			l.stats.TerminationReason = TIME_LIMIT
			return &l.stats, nil
		}

		newLits, redundant := l.forwardSimplify(given)
		if redundant {
			if err := a.SetStore(given, kernel.StoreNone); err != nil {
				return &l.stats, err
			}
			l.stats.Discarded++
			l.stats.Iterations++
			l.env.Log.WithFields(logrus.Fields{
				"clause_id": given,
				"iteration": l.stats.Iterations,
				"reason":    "forward-redundant",
			}).Debug("discarded given clause")
			continue
		}
		target := materialize(a, given, newLits)
		if a.IsEmpty(target) {
			l.stats.Refutation = target
			l.stats.TerminationReason = REFUTATION
			if target != given {
				if err := a.SetStore(given, kernel.StoreNone); err != nil {
					return &l.stats, err
				}
			}
			l.env.Log.WithFields(logrus.Fields{
				"clause_id": target,
				"iteration": l.stats.Iterations,
				"reason":    "refutation",
			}).Info("empty clause derived")
			return &l.stats, nil
		}
		if target != given {
			// A materialized replacement must re-enter through Unprocessed
			// rather than jump straight to Active, per the store graph's
			// NONE -> UNPROCESSED-only edge; give up this iteration's slot
			// and let the next drainUnprocessed pass carry it forward.
			if err := a.SetStore(given, kernel.StoreNone); err != nil {
				return &l.stats, err
			}
			if err := l.unprocessed.Add(target); err != nil {
				return &l.stats, err
			}
			l.stats.Iterations++
			continue
		}

		selectLiterals(a, l.opts, target)
		if err := l.active.Add(target); err != nil {
			return &l.stats, err
		}
		l.stats.Active = l.active.Size()
		l.env.Log.WithFields(logrus.Fields{
			"clause_id": target,
			"iteration": l.stats.Iterations,
			"reason":    "activated",
		}).Debug("given clause selected")

		if l.cancel() {
			l.stats.TerminationReason = TIME_LIMIT
			return &l.stats, nil
		}

		var children []kernel.ClauseID
		for _, rule := range GeneratingRules {
			children = append(children, rule(l.env, l.active, l.idx, target)...)
		}

		if l.cancel() {
			l.stats.TerminationReason = TIME_LIMIT
			return &l.stats, nil
		}

		for _, ch := range children {
			l.stats.Generated++
			if a.IsEmpty(ch) {
				l.stats.Refutation = ch
				l.stats.TerminationReason = REFUTATION
				return &l.stats, nil
			}
			if err := l.unprocessed.Add(ch); err != nil {
				return &l.stats, err
			}
		}

		if err := l.backwardSimplify(target); err != nil {
			return &l.stats, err
		}

		l.iterSinceLRS++
		if l.opts.SaturationAlgorithm == LRS && l.opts.LrsCheckEveryN > 0 && l.iterSinceLRS >= l.opts.LrsCheckEveryN {
			l.iterSinceLRS = 0
			if err := l.runLRS(); err != nil {
				return &l.stats, err
			}
		}

		l.stats.Passive = l.passive.SizeEstimate()
		l.stats.Iterations++
	}
}
