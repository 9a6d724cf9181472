// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

// Package kernel holds the hash-consed term/literal tables and the
// Clause entity described in spec §3. Terms and literals are immutable
// once created; a Clause never owns term storage, only TermID/LitID
// handles into an Arena, per Design Notes §9.
package kernel

import (
	"fmt"
	"strings"

	"github.com/irifrance/saturn/z"
)

// TermID is a handle into an Arena's term table. Two TermIDs compare
// equal iff the terms they name are structurally equal.
type TermID uint32

// TermIDNull is not a valid term.
const TermIDNull TermID = 1<<32 - 1

type termKind uint8

const (
	termVar termKind = iota
	termApp
)

type termRec struct {
	kind termKind
	v    z.Var   // valid iff kind == termVar
	sym  z.Sym   // valid iff kind == termApp
	args []TermID
}

// Arena interns terms and literals for one run. It is the "single
// owner" arena Design Notes §9 asks for; containers and indices store
// TermID/LitID/ClauseID handles into it, never Go pointers.
type Arena struct {
	Sig *z.Signature

	terms   []termRec
	termKey map[string]TermID

	lits    []litRec
	litKeys map[string]LitID

	clauses []clauseRec
	freed   map[ClauseID]bool
}

// NewArena creates an empty interning arena bound to signature sig.
func NewArena(sig *z.Signature) *Arena {
	return &Arena{
		Sig:     sig,
		termKey: make(map[string]TermID),
		litKeys: make(map[string]LitID),
		freed:   make(map[ClauseID]bool),
	}
}

// MkVar interns the variable term with index v.
func (a *Arena) MkVar(v z.Var) TermID {
	key := fmt.Sprintf("v%d", v)
	if id, ok := a.termKey[key]; ok {
		return id
	}
	id := TermID(len(a.terms))
	a.terms = append(a.terms, termRec{kind: termVar, v: v})
	a.termKey[key] = id
	return id
}

// MkApp interns the application of sym to args.
func (a *Arena) MkApp(sym z.Sym, args ...TermID) TermID {
	if int(sym.Arity()) != len(args) {
		panic("kernel: arity mismatch building term")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "a%d(", sym)
	for _, arg := range args {
		fmt.Fprintf(&b, "%d,", arg)
	}
	b.WriteByte(')')
	key := b.String()
	if id, ok := a.termKey[key]; ok {
		return id
	}
	id := TermID(len(a.terms))
	rec := termRec{kind: termApp, sym: sym}
	rec.args = append(rec.args, args...)
	a.terms = append(a.terms, rec)
	a.termKey[key] = id
	return id
}

// IsVar reports whether t is a variable term.
func (a *Arena) IsVar(t TermID) bool { return a.terms[t].kind == termVar }

// Var returns the variable index of a variable term t.
func (a *Arena) Var(t TermID) z.Var { return a.terms[t].v }

// Sym returns the head symbol of an application term t.
func (a *Arena) Sym(t TermID) z.Sym { return a.terms[t].sym }

// Args returns the arguments of an application term t. The returned
// slice is arena-owned and must not be mutated.
func (a *Arena) Args(t TermID) []TermID { return a.terms[t].args }

// SymbolCount returns the number of symbol occurrences in t, used to
// build a Clause's cached weight (spec §3 "weight equals Σ symbol
// counts of literals").
func (a *Arena) SymbolCount(t TermID) int {
	rec := a.terms[t]
	if rec.kind == termVar {
		return 1
	}
	n := 1
	for _, arg := range rec.args {
		n += a.SymbolCount(arg)
	}
	return n
}

// String renders t using signature names, for logging/tests only.
func (a *Arena) String(t TermID) string {
	rec := a.terms[t]
	if rec.kind == termVar {
		return rec.v.String()
	}
	if len(rec.args) == 0 {
		return a.Sig.Name(rec.sym)
	}
	var b strings.Builder
	b.WriteString(a.Sig.Name(rec.sym))
	b.WriteByte('(')
	for i, arg := range rec.args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String(arg))
	}
	b.WriteByte(')')
	return b.String()
}
