// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import "github.com/irifrance/saturn/kernel"

// TerminationReason classifies why a Loop stopped, spec §6.
type TerminationReason int

const (
	UNKNOWN TerminationReason = iota
	REFUTATION
	SATISFIABLE
	TIME_LIMIT
	MEMORY_LIMIT
	REFUTATION_NOT_FOUND
)

func (r TerminationReason) String() string {
	switch r {
	case REFUTATION:
		return "REFUTATION"
	case SATISFIABLE:
		return "SATISFIABLE"
	case TIME_LIMIT:
		return "TIME_LIMIT"
	case MEMORY_LIMIT:
		return "MEMORY_LIMIT"
	case REFUTATION_NOT_FOUND:
		return "REFUTATION_NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Statistics is the output of one Loop run, spec §6.
type Statistics struct {
	TerminationReason TerminationReason

	Generated int
	Active    int
	Passive   int
	Discarded int
	Iterations int

	// Refutation is the empty clause, when TerminationReason ==
	// REFUTATION. Its Inference chain (kernel.Arena.Inference, followed
	// through Parents) is the proof graph.
	Refutation kernel.ClauseID
}
