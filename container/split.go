// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package container

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/irifrance/saturn/kernel"
)

// ErrConfig reports an invalid predicate-split configuration, per spec
// §4.3.
var ErrConfig = errors.New("container: invalid predicate-split configuration")

// SplitConfig is the parsed, validated form of the two comma-separated
// option strings from spec §4.3/§6 (splitQueueCutoffs, splitQueueRatios).
type SplitConfig struct {
	Cutoffs []float64
	Ratios  []int
	FadeIn  bool
}

// ParseSplitConfig parses and validates cutoffsCSV/ratiosCSV per spec
// §4.3: non-increasing cutoffs, last cutoff != 1, a ratio <= 0, or a
// ratio/cutoff count mismatch (or fewer than two entries) all fail with
// ErrConfig.
func ParseSplitConfig(cutoffsCSV, ratiosCSV string, fadeIn bool) (SplitConfig, error) {
	cutoffs, err := parseFloats(cutoffsCSV)
	if err != nil {
		return SplitConfig{}, errors.Wrap(ErrConfig, err.Error())
	}
	ratios, err := parseInts(ratiosCSV)
	if err != nil {
		return SplitConfig{}, errors.Wrap(ErrConfig, err.Error())
	}
	if len(cutoffs) < 2 || len(ratios) < 2 {
		return SplitConfig{}, errors.Wrap(ErrConfig, "need at least two queues")
	}
	if len(cutoffs) != len(ratios) {
		return SplitConfig{}, errors.Wrap(ErrConfig, "ratio/cutoff count mismatch")
	}
	for i := 1; i < len(cutoffs); i++ {
		if cutoffs[i] <= cutoffs[i-1] {
			return SplitConfig{}, errors.Wrap(ErrConfig, "cutoffs must be strictly increasing")
		}
	}
	if cutoffs[len(cutoffs)-1] != 1.0 {
		return SplitConfig{}, errors.Wrap(ErrConfig, "last cutoff must be 1.0")
	}
	for _, r := range ratios {
		if r <= 0 {
			return SplitConfig{}, errors.Wrap(ErrConfig, "ratio must be positive")
		}
	}
	return SplitConfig{Cutoffs: cutoffs, Ratios: ratios, FadeIn: fadeIn}, nil
}

func parseFloats(csv string) ([]float64, error) {
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad cutoff %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseInts(csv string) ([]int, error) {
	parts := strings.Split(csv, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad ratio %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Split is the predicate-split passive container of spec §4.3: a stack
// of N inner age/weight Passive containers, each admitting clauses at
// and past a niceness cutoff, selected from by a weighted round robin
// whose per-queue increment is L/r_i (L = lcm of every ratio), so each
// queue is visited with long-run frequency proportional to its own
// ratio.
type Split struct {
	arena  *kernel.Arena
	Events Events

	cfg    SplitConfig
	queues []*Passive
	weight []int // increment applied to bal[i] when queue i is picked
	bal    []int
	bestOf map[kernel.ClauseID]int
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

// NewSplit builds a predicate-split container. innerAgeRatio/
// innerWeightRatio configure the age:weight ratio each inner queue uses
// for its own PopSelected.
func NewSplit(a *kernel.Arena, cfg SplitConfig, innerAgeRatio, innerWeightRatio int) *Split {
	n := len(cfg.Ratios)
	l := cfg.Ratios[0]
	for _, r := range cfg.Ratios[1:] {
		l = lcm(l, r)
	}
	weights := make([]int, n)
	for i, r := range cfg.Ratios {
		weights[i] = l / r
	}
	queues := make([]*Passive, n)
	for i := range queues {
		queues[i] = NewPassive(a, innerAgeRatio, innerWeightRatio)
	}
	return &Split{
		arena:  a,
		Events: NewEvents(),
		cfg:    cfg,
		queues: queues,
		weight: weights,
		bal:    make([]int, n),
		bestOf: make(map[kernel.ClauseID]int),
	}
}

// niceness applies the fade-in coarsening schedule of spec §4.3 to c,
// then clamps to [0,1] (Design Notes §9).
func (s *Split) niceness(c kernel.ClauseID) float64 {
	inf := s.arena.Inference(c)
	if !s.cfg.FadeIn {
		return s.arena.Niceness(c)
	}
	th, all := inf.ThAncestors, inf.AllAncestors
	switch {
	case th <= 2:
		return 0.0
	case th == 3 && all <= 6:
		return 0.5
	case th == 4 && all <= 5:
		return 0.8
	default:
		return s.arena.Niceness(c)
	}
}

// bestQueue returns the smallest queue index i with niceness <= c_i;
// since the last cutoff is 1.0 such an index always exists.
func (s *Split) bestQueue(c kernel.ClauseID) int {
	n := s.niceness(c)
	for i, cutoff := range s.cfg.Cutoffs {
		if n <= cutoff {
			return i
		}
	}
	return len(s.cfg.Cutoffs) - 1
}

// Add inserts c into its best queue and every queue to the right of it
// (the storage invariant of spec §4.3), before firing Added once at the
// split level — satisfying the ordering guarantee of spec §5 that a
// clause is present in every covering queue before any observer sees
// Added.
func (s *Split) Add(c kernel.ClauseID) error {
	best := s.bestQueue(c)
	for i := best; i < len(s.queues); i++ {
		if err := s.queues[i].Add(c); err != nil {
			return errors.Wrap(err, "container.Split.Add")
		}
	}
	s.bestOf[c] = best
	s.Events.Added.Fire(c)
	return nil
}

// Remove deletes c from every queue it occupies without selecting it.
func (s *Split) Remove(c kernel.ClauseID) error {
	best, ok := s.bestOf[c]
	if !ok {
		return errors.New("container.Split.Remove: clause not present")
	}
	for i := best; i < len(s.queues); i++ {
		s.queues[i].RemoveQuiet(c)
	}
	delete(s.bestOf, c)
	if err := s.arena.SetStore(c, kernel.StoreNone); err != nil {
		return errors.Wrap(err, "container.Split.Remove")
	}
	s.Events.Removed.Fire(c)
	return nil
}

// IsEmpty reports whether the container holds no clauses (queue N-1 is
// a superset of every contained clause, absent LRS discard).
func (s *Split) IsEmpty() bool { return len(s.bestOf) == 0 }

// SizeEstimate returns the number of distinct clauses held.
func (s *Split) SizeEstimate() int { return len(s.bestOf) }

// findNonEmpty implements the scan described in spec §4.3 step 2:
// rightward first (LRS may have emptied rightward queues, but a clause
// present in queue q is also present in every queue > q per the storage
// invariant, so scanning right first finds real candidates fastest),
// then leftward as a fallback.
func (s *Split) findNonEmpty(q int) (int, bool) {
	for i := q; i < len(s.queues); i++ {
		if !s.queues[i].IsEmpty() {
			return i, true
		}
	}
	for i := q - 1; i >= 0; i-- {
		if !s.queues[i].IsEmpty() {
			return i, true
		}
	}
	return 0, false
}

func (s *Split) argminBalance() int {
	best := 0
	for i := 1; i < len(s.bal); i++ {
		if s.bal[i] < s.bal[best] {
			best = i
		}
	}
	return best
}

// PopSelected implements the weighted round robin of spec §4.3: pick
// the queue with the smallest balance, increment it, fall back to a
// scan if that queue is empty, then pop its head and remove the same
// clause from every other queue it sits in.
func (s *Split) PopSelected() (kernel.ClauseID, error) {
	if s.IsEmpty() {
		return kernel.ClauseIDNull, ErrEmpty{Container: "Split"}
	}
	q := s.argminBalance()
	s.bal[q] += s.weight[q]
	target, ok := s.findNonEmpty(q)
	if !ok {
		return kernel.ClauseIDNull, ErrEmpty{Container: "Split"}
	}
	c, err := s.queues[target].PopSelected()
	if err != nil {
		return kernel.ClauseIDNull, errors.Wrap(err, "container.Split.PopSelected")
	}
	best := s.bestOf[c]
	for i := best; i < len(s.queues); i++ {
		if i == target {
			continue
		}
		s.queues[i].RemoveQuiet(c)
	}
	delete(s.bestOf, c)
	s.Events.Selected.Fire(c)
	return c, nil
}

// SplitSimulation mirrors PopSelected using parallel balances over a
// per-queue rehearsal, never mutating real state or firing events.
type SplitSimulation struct {
	s   *Split
	bal []int
	sim []*Simulation
	// bestOf duplicated so the simulation can track cross-queue removal
	// without touching s.bestOf.
	bestOf map[kernel.ClauseID]int
}

// SimulationInit begins a rehearsal snapshot of every inner queue.
func (s *Split) SimulationInit() *SplitSimulation {
	sims := make([]*Simulation, len(s.queues))
	for i, q := range s.queues {
		sims[i] = q.SimulationInit()
	}
	bestOf := make(map[kernel.ClauseID]int, len(s.bestOf))
	for k, v := range s.bestOf {
		bestOf[k] = v
	}
	return &SplitSimulation{s: s, bal: make([]int, len(s.queues)), sim: sims, bestOf: bestOf}
}

// HasNext reports whether the rehearsal has any clauses left.
func (ss *SplitSimulation) HasNext() bool { return len(ss.bestOf) > 0 }

func (ss *SplitSimulation) argmin() int {
	best := 0
	for i := 1; i < len(ss.bal); i++ {
		if ss.bal[i] < ss.bal[best] {
			best = i
		}
	}
	return best
}

// PopSelected returns the clause the real container would select next
// without mutating it.
func (ss *SplitSimulation) PopSelected() kernel.ClauseID {
	if !ss.HasNext() {
		return kernel.ClauseIDNull
	}
	q := ss.argmin()
	ss.bal[q] += ss.s.weight[q]
	target, ok := -1, false
	for i := q; i < len(ss.sim); i++ {
		if ss.sim[i].HasNext() {
			target, ok = i, true
			break
		}
	}
	if !ok {
		for i := q - 1; i >= 0; i-- {
			if ss.sim[i].HasNext() {
				target, ok = i, true
				break
			}
		}
	}
	if !ok {
		return kernel.ClauseIDNull
	}
	c := ss.sim[target].PopSelected()
	best := ss.bestOf[c]
	for i := best; i < len(ss.sim); i++ {
		if i == target {
			continue
		}
		ss.sim[i].Remove(c)
	}
	delete(ss.bestOf, c)
	return c
}

// SetLimitsToMax removes admission bounds from every inner queue.
func (s *Split) SetLimitsToMax() {
	for _, q := range s.queues {
		q.SetLimitsToMax()
	}
}

// SetLimitsFromSimulation adopts (ageLimit, weightLimit) uniformly
// across every inner queue, returning whether any queue tightened.
func (s *Split) SetLimitsFromSimulation(ageLimit, weightLimit uint32) bool {
	tightened := false
	for _, q := range s.queues {
		if q.SetLimitsFromSimulation(ageLimit, weightLimit) {
			tightened = true
		}
	}
	return tightened
}

// FulfilsAgeLimit succeeds if any queue from c's best queue through the
// last admits c under its own age limit, per spec §4.3.
func (s *Split) FulfilsAgeLimit(c kernel.ClauseID) bool {
	best := s.bestQueue(c)
	for i := best; i < len(s.queues); i++ {
		if s.queues[i].FulfilsAgeLimit(c) {
			return true
		}
	}
	return false
}

// FulfilsWeightLimit succeeds if any queue from c's best queue through
// the last admits c under its own weight limit.
func (s *Split) FulfilsWeightLimit(c kernel.ClauseID) bool {
	best := s.bestQueue(c)
	for i := best; i < len(s.queues); i++ {
		if s.queues[i].FulfilsWeightLimit(c) {
			return true
		}
	}
	return false
}

// ChildrenPotentiallyFulfilLimits reports whether a clause of the given
// age could still spawn admissible descendants in any queue.
func (s *Split) ChildrenPotentiallyFulfilLimits(age uint32) bool {
	for _, q := range s.queues {
		if q.ChildrenPotentiallyFulfilLimits(age) {
			return true
		}
	}
	return false
}

// NumQueues returns N, for tests and observability.
func (s *Split) NumQueues() int { return len(s.queues) }
