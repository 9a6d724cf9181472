// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import (
	"github.com/sirupsen/logrus"

	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/z"
)

// varStride is the per-rename variable-index offset applied by
// Environment.FreshOffset. Any single clause built by this repository's
// tests and the frontend stays well under this bound; it is a
// deliberate, documented simplification of a full occurs-scan rename
// (Design Notes §9), not derived from any hard limit in the data model.
const varStride = z.Var(1 << 16)

// Environment threads the run-scoped values Design Notes §9 asks be
// passed explicitly rather than kept as package globals: the arena, a
// logger, and the term ordering used by superposition. One Environment
// is constructed per Loop and never shared across concurrent loops
// (each portfolio worker gets its own, per spec §5).
type Environment struct {
	Arena    *kernel.Arena
	Sig      *z.Signature
	Log      *logrus.Entry
	Ordering Ordering

	renameCounter z.Var
}

// NewEnvironment builds an Environment over arena, using ordering (or a
// SimplifiedKBO with an empty precedence if nil) and logger fields
// scoped under "component=saturation".
func NewEnvironment(a *kernel.Arena, sig *z.Signature, log *logrus.Logger, ordering Ordering) *Environment {
	if log == nil {
		log = logrus.New()
	}
	if ordering == nil {
		ordering = NewSimplifiedKBO(a, nil)
	}
	return &Environment{
		Arena:    a,
		Sig:      sig,
		Log:      log.WithField("component", "saturation"),
		Ordering: ordering,
	}
}

// FreshOffset returns a new variable-index stride guaranteed disjoint
// from every previously issued offset in this Environment, for use with
// kernel.Arena.RenameApart when combining two independently-numbered
// clauses in a generating inference.
func (e *Environment) FreshOffset() z.Var {
	e.renameCounter += varStride
	return e.renameCounter
}
