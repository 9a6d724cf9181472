// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import (
	"github.com/pkg/errors"

	"github.com/irifrance/saturn/container"
	"github.com/irifrance/saturn/index"
	"github.com/irifrance/saturn/kernel"
)

var errUnknownTag = errors.New("unrecognized index tag")

// IndexTag names an index variant plus its parameters, per spec §4.7
// ("a numeric tag naming an index variant plus its parameters"). Tags
// are small and dense enough that a plain int suffices; callers use the
// exported constants below rather than raw integers.
type IndexTag int

const (
	TagSuperpositionFrom IndexTag = iota
	TagSuperpositionInto
	TagDemodulationFrom
	TagDemodulationInto
)

var extractors = map[IndexTag]index.Extract{
	TagSuperpositionFrom: index.SuperpositionFrom,
	TagSuperpositionInto: index.SuperpositionInto,
	TagDemodulationFrom:  index.DemodulationFrom,
	TagDemodulationInto:  index.DemodulationInto,
}

// IndexManager is the reference-counted index registry of spec §4.7:
// Request returns a shared index for tag, creating it (and attaching it
// to the Active container's events) on first request; Release detaches
// and destroys it once the count reaches zero. Indices never outlive
// the Active container they were built against.
type IndexManager struct {
	arena  *kernel.Arena
	active *container.Active

	byTag map[IndexTag]*entryState
}

type entryState struct {
	ix       *index.Index
	refCount int
	addedTok releaser
	remTok   releaser
}

type releaser interface{ Release() }

// NewIndexManager creates a manager bound to arena/active.
func NewIndexManager(a *kernel.Arena, active *container.Active) *IndexManager {
	return &IndexManager{arena: a, active: active, byTag: make(map[IndexTag]*entryState)}
}

// Request returns the shared index for tag, creating it if this is the
// first request. The returned index is self-maintaining: it subscribes
// to active's Added/Removed events so its contents always reflect
// exactly the currently-Active clauses, per spec §4.4's invariant.
func (m *IndexManager) Request(tag IndexTag) (*index.Index, error) {
	if st, ok := m.byTag[tag]; ok {
		st.refCount++
		return st.ix, nil
	}
	extract, ok := extractors[tag]
	if !ok {
		return nil, NewInternalError("index manager: unknown tag", errUnknownTag)
	}
	ix := index.New(m.arena, extract)
	addedTok := m.active.Events.Added.Subscribe(func(c kernel.ClauseID) { ix.Insert(c) })
	remTok := m.active.Events.Removed.Subscribe(func(c kernel.ClauseID) { ix.Remove(c) })
	for _, c := range m.active.All() {
		ix.Insert(c)
	}
	m.byTag[tag] = &entryState{ix: ix, refCount: 1, addedTok: addedTok, remTok: remTok}
	return ix, nil
}

// Release decrements tag's reference count, tearing the index down (and
// unsubscribing from active's events) once it reaches zero.
func (m *IndexManager) Release(tag IndexTag) {
	st, ok := m.byTag[tag]
	if !ok {
		return
	}
	st.refCount--
	if st.refCount > 0 {
		return
	}
	st.addedTok.Release()
	st.remTok.Release()
	delete(m.byTag, tag)
}
