// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package kernel

import "github.com/irifrance/saturn/z"

// RenameApart returns a copy of lits with every variable shifted by
// offset, interned into fresh (or coincidentally-reused, if some other
// clause already used the same shifted indices) terms. Generating
// inferences use this to combine two clauses whose variables were
// numbered independently: shifting one side by a stride comfortably
// larger than any single clause's variable count keeps the two
// literal sets disjoint without a full occurs-based renaming pass.
func (a *Arena) RenameApart(lits []LitID, offset z.Var) []LitID {
	memo := make(map[TermID]TermID)
	var rename func(t TermID) TermID
	rename = func(t TermID) TermID {
		if r, ok := memo[t]; ok {
			return r
		}
		var out TermID
		if a.IsVar(t) {
			out = a.MkVar(a.Var(t) + offset)
		} else {
			args := a.Args(t)
			newArgs := make([]TermID, len(args))
			for i, arg := range args {
				newArgs[i] = rename(arg)
			}
			out = a.MkApp(a.Sym(t), newArgs...)
		}
		memo[t] = out
		return out
	}
	out := make([]LitID, len(lits))
	for i, l := range lits {
		args := a.LitArgs(l)
		if a.IsEquality(l) {
			out[i] = a.MkEq(rename(args[0]), rename(args[1]), a.Positive(l))
			continue
		}
		newArgs := make([]TermID, len(args))
		for j, arg := range args {
			newArgs[j] = rename(arg)
		}
		out[i] = a.MkLit(a.Pred(l), a.Positive(l), newArgs...)
	}
	return out
}
