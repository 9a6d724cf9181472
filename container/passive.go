// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package container

import (
	"container/heap"

	"github.com/pkg/errors"

	"github.com/irifrance/saturn/kernel"
)

// pqItem is one entry in an age- or weight-ordered priority queue. seq
// records insertion order, the tie-break both queues use, per spec
// §4.2's "Ties broken by insertion order."
type pqItem struct {
	c    kernel.ClauseID
	key  uint64
	seq  uint64
	heap int // index within the backing slice, maintained by container/heap
}

type pq struct {
	items []*pqItem
}

func (q *pq) Len() int { return len(q.items) }
func (q *pq) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.key != b.key {
		return a.key < b.key
	}
	return a.seq < b.seq
}
func (q *pq) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].heap = i
	q.items[j].heap = j
}
func (q *pq) Push(x any) {
	it := x.(*pqItem)
	it.heap = len(q.items)
	q.items = append(q.items, it)
}
func (q *pq) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return it
}

// Passive is the baseline age/weight priority container of spec §4.2:
// an age-ordered and a weight-ordered view over the same clauses,
// popSelected alternating between them by a running (a:w) balance.
type Passive struct {
	arena  *kernel.Arena
	Events Events

	ratioAge, ratioWeight int
	balAge, balWeight     int

	ageQ, weightQ   pq
	byClauseAge     map[kernel.ClauseID]*pqItem
	byClauseWeight  map[kernel.ClauseID]*pqItem
	seq             uint64

	ageLimited, weightLimited bool
	ageLimit, weightLimit     uint32
}

// NewPassive creates an empty age/weight Passive container with the
// given age:weight selection ratio (spec §6 Options.ageWeightRatio).
func NewPassive(a *kernel.Arena, ratioAge, ratioWeight int) *Passive {
	if ratioAge <= 0 || ratioWeight <= 0 {
		panic("container: age/weight ratio components must be positive")
	}
	p := &Passive{
		arena:          a,
		Events:         NewEvents(),
		ratioAge:       ratioAge,
		ratioWeight:    ratioWeight,
		byClauseAge:    make(map[kernel.ClauseID]*pqItem),
		byClauseWeight: make(map[kernel.ClauseID]*pqItem),
	}
	heap.Init(&p.ageQ)
	heap.Init(&p.weightQ)
	p.SetLimitsToMax()
	return p
}

// Add inserts c into both priority views, transitioning its store to
// PASSIVE and firing Added.
func (p *Passive) Add(c kernel.ClauseID) error {
	if err := p.arena.SetStore(c, kernel.StorePassive); err != nil {
		return errors.Wrap(err, "container.Passive.Add")
	}
	p.seq++
	ai := &pqItem{c: c, key: uint64(p.arena.Age(c)), seq: p.seq}
	wi := &pqItem{c: c, key: uint64(p.arena.Weight(c)), seq: p.seq}
	heap.Push(&p.ageQ, ai)
	heap.Push(&p.weightQ, wi)
	p.byClauseAge[c] = ai
	p.byClauseWeight[c] = wi
	p.Events.Added.Fire(c)
	return nil
}

// Remove deletes c from both views without selecting it, firing
// Removed.
func (p *Passive) Remove(c kernel.ClauseID) error {
	if !p.removeQuiet(c) {
		return errors.New("container.Passive.Remove: clause not passive")
	}
	if err := p.arena.SetStore(c, kernel.StoreNone); err != nil {
		return errors.Wrap(err, "container.Passive.Remove")
	}
	p.Events.Removed.Fire(c)
	return nil
}

// removeQuiet drops c's bookkeeping from both heaps without touching
// its store or firing an event. Used by container.Split, which owns
// the store transition and the single split-level event for a clause
// that lives in several inner queues at once.
func (p *Passive) removeQuiet(c kernel.ClauseID) bool {
	ai, ok := p.byClauseAge[c]
	if !ok {
		return false
	}
	wi := p.byClauseWeight[c]
	heap.Remove(&p.ageQ, ai.heap)
	heap.Remove(&p.weightQ, wi.heap)
	delete(p.byClauseAge, c)
	delete(p.byClauseWeight, c)
	return true
}

// RemoveQuiet is the exported form of removeQuiet for sibling
// containers in this package's public API surface used by Split.
func (p *Passive) RemoveQuiet(c kernel.ClauseID) bool { return p.removeQuiet(c) }

// Contains reports whether c currently sits in this view.
func (p *Passive) Contains(c kernel.ClauseID) bool {
	_, ok := p.byClauseAge[c]
	return ok
}

// IsEmpty reports whether the container holds no clauses.
func (p *Passive) IsEmpty() bool { return len(p.ageQ.items) == 0 }

// SizeEstimate returns the number of clauses currently held (exact
// here; named "estimate" to match the PassiveQueue interface shared
// with the split container).
func (p *Passive) SizeEstimate() int { return len(p.ageQ.items) }

// popFromAge removes and returns the head of the age queue, also
// removing it from the weight queue, without firing any event.
func (p *Passive) popFromAge() kernel.ClauseID {
	item := heap.Pop(&p.ageQ).(*pqItem)
	c := item.c
	if wi, ok := p.byClauseWeight[c]; ok {
		heap.Remove(&p.weightQ, wi.heap)
		delete(p.byClauseWeight, c)
	}
	delete(p.byClauseAge, c)
	return c
}

func (p *Passive) popFromWeight() kernel.ClauseID {
	item := heap.Pop(&p.weightQ).(*pqItem)
	c := item.c
	if ai, ok := p.byClauseAge[c]; ok {
		heap.Remove(&p.ageQ, ai.heap)
		delete(p.byClauseAge, c)
	}
	delete(p.byClauseWeight, c)
	return c
}

// PopSelected chooses a side by the smaller running balance (ties favor
// age), increments that side's balance by the other side's ratio, pops
// the corresponding view's minimum, and fires Selected. Per spec §4.2/
// §8, balances are monotone non-decreasing across a run.
func (p *Passive) PopSelected() (kernel.ClauseID, error) {
	if p.IsEmpty() {
		return kernel.ClauseIDNull, ErrEmpty{Container: "Passive"}
	}
	var c kernel.ClauseID
	if p.balAge <= p.balWeight {
		p.balAge += p.ratioWeight
		c = p.popFromAge()
	} else {
		p.balWeight += p.ratioAge
		c = p.popFromWeight()
	}
	if err := p.arena.SetStore(c, kernel.StoreSelected); err != nil {
		return kernel.ClauseIDNull, errors.Wrap(err, "container.Passive.PopSelected")
	}
	p.Events.Selected.Fire(c)
	return c, nil
}

// SimulationInit resets a side-effect-free rehearsal of the selection
// balances used by LRS (spec §4.2). The real balances and queues are
// untouched; simulation state is separate.
type Simulation struct {
	p                 *Passive
	balAge, balWeight int
	ageIdx, weightIdx []*pqItem
}

// SimulationInit begins a rehearsal snapshot of the current queues.
func (p *Passive) SimulationInit() *Simulation {
	ageCopy := make([]*pqItem, len(p.ageQ.items))
	copy(ageCopy, p.ageQ.items)
	weightCopy := make([]*pqItem, len(p.weightQ.items))
	copy(weightCopy, p.weightQ.items)
	return &Simulation{p: p, ageIdx: ageCopy, weightIdx: weightCopy}
}

// HasNext reports whether the rehearsal has any clauses left to select.
func (s *Simulation) HasNext() bool { return len(s.ageIdx) > 0 }

// Remove drops c from the rehearsal's view without affecting the real
// container, used by Split's simulation to keep a clause that sits in
// several inner queues from being counted more than once.
func (s *Simulation) Remove(c kernel.ClauseID) {
	for i, it := range s.ageIdx {
		if it.c == c {
			s.ageIdx = append(s.ageIdx[:i:i], s.ageIdx[i+1:]...)
			break
		}
	}
	for i, it := range s.weightIdx {
		if it.c == c {
			s.weightIdx = append(s.weightIdx[:i:i], s.weightIdx[i+1:]...)
			break
		}
	}
}

// PopSelected mirrors Passive.PopSelected without mutating real state
// or firing events.
func (s *Simulation) PopSelected() kernel.ClauseID {
	if len(s.ageIdx) == 0 {
		return kernel.ClauseIDNull
	}
	var pickAge bool
	if s.balAge <= s.balWeight {
		pickAge = true
		s.balAge += s.p.ratioWeight
	} else {
		s.balWeight += s.p.ratioAge
	}
	var chosen, other *[]*pqItem
	if pickAge {
		chosen, other = &s.ageIdx, &s.weightIdx
	} else {
		chosen, other = &s.weightIdx, &s.ageIdx
	}
	best := 0
	for i, it := range *chosen {
		if it.key < (*chosen)[best].key || (it.key == (*chosen)[best].key && it.seq < (*chosen)[best].seq) {
			best = i
		}
	}
	c := (*chosen)[best].c
	*chosen = append((*chosen)[:best:best], (*chosen)[best+1:]...)
	for i, it := range *other {
		if it.c == c {
			*other = append((*other)[:i:i], (*other)[i+1:]...)
			break
		}
	}
	return c
}

// SetLimitsToMax removes any admission bound (used at construction and
// whenever LRS should stop discriminating by resource limits).
func (p *Passive) SetLimitsToMax() {
	p.ageLimited = false
	p.weightLimited = false
	p.ageLimit = ^uint32(0)
	p.weightLimit = ^uint32(0)
}

// SetLimitsFromSimulation adopts age/weight bounds computed by an LRS
// rehearsal (the last clause the simulation would still select),
// returning whether this tightened the limits versus what was set
// before.
func (p *Passive) SetLimitsFromSimulation(ageLimit, weightLimit uint32) (tightened bool) {
	tightened = (!p.ageLimited || ageLimit < p.ageLimit) || (!p.weightLimited || weightLimit < p.weightLimit)
	if !p.ageLimited || ageLimit < p.ageLimit {
		p.ageLimit = ageLimit
		p.ageLimited = true
	}
	if !p.weightLimited || weightLimit < p.weightLimit {
		p.weightLimit = weightLimit
		p.weightLimited = true
	}
	return tightened
}

// FulfilsAgeLimit reports whether c's age is within the current bound.
func (p *Passive) FulfilsAgeLimit(c kernel.ClauseID) bool {
	if !p.ageLimited {
		return true
	}
	return p.arena.Age(c) <= p.ageLimit
}

// FulfilsWeightLimit reports whether c's weight is within the current
// bound.
func (p *Passive) FulfilsWeightLimit(c kernel.ClauseID) bool {
	if !p.weightLimited {
		return true
	}
	return p.arena.Weight(c) <= p.weightLimit
}

// ChildrenPotentiallyFulfilLimits reports whether a clause of the given
// age could still spawn descendants admissible under the current age
// limit (children only ever get older, so once age exceeds the limit,
// none of its descendants can be admitted either).
func (p *Passive) ChildrenPotentiallyFulfilLimits(age uint32) bool {
	if !p.ageLimited {
		return true
	}
	return age <= p.ageLimit
}

// AgeLimit and WeightLimit expose the current bounds for the LRS
// controller and tests.
func (p *Passive) AgeLimit() (uint32, bool)    { return p.ageLimit, p.ageLimited }
func (p *Passive) WeightLimit() (uint32, bool) { return p.weightLimit, p.weightLimited }
