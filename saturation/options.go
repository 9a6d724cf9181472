// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import "github.com/irifrance/saturn/container"

// Algorithm selects the given-clause loop flavor, spec §6.
type Algorithm int

const (
	OTTER Algorithm = iota
	DISCOUNT
	LRS
)

func (alg Algorithm) String() string {
	switch alg {
	case OTTER:
		return "OTTER"
	case DISCOUNT:
		return "DISCOUNT"
	case LRS:
		return "LRS"
	default:
		return "?"
	}
}

// Options configures a Loop, consumed once at construction (spec §6).
type Options struct {
	SaturationAlgorithm Algorithm

	// AgeWeightRatio is the (age, weight) pair fed to the top-level
	// Passive container (or the innermost Passive of each Split queue).
	AgeWeightRatio [2]int

	// SplitQueueRatios/SplitQueueCutoffs/SplitQueueFadeIn configure the
	// predicate-split container (spec §4.3). Leave Ratios/Cutoffs empty
	// to disable splitting and use a single Passive container instead.
	SplitQueueRatios  string
	SplitQueueCutoffs string
	SplitQueueFadeIn  bool

	Selection             string
	LiteralComparisonMode string
	Ordering              string

	DemodulationRedundancyCheck bool
	ForwardSubsumption          bool
	ForwardDemodulation         bool
	BackwardSubsumption         bool
	BackwardDemodulation        bool
	Condensation                bool

	AgeLimit           uint32
	WeightLimit        uint32
	LrsFirstTimeCheck  bool
	LrsWeightLimitOnly bool

	// LrsCheckEveryN throttles how often the loop invokes the LRS
	// controller (spec §4.6 step 7 "periodically"), counted in
	// given-clause iterations.
	LrsCheckEveryN int
}

// DefaultOptions returns an OTTER-flavored, unsplit, unbounded
// configuration suitable as a starting point for LoadOptions/flags to
// override.
func DefaultOptions() Options {
	return Options{
		SaturationAlgorithm: OTTER,
		AgeWeightRatio:      [2]int{1, 1},
		ForwardSubsumption:  true,
		BackwardSubsumption: true,
		ForwardDemodulation: true,
		LrsCheckEveryN:      100,
	}
}

// Validate rejects invalid option combinations at construction time
// (spec §7 "Config: invalid option combination, detected at
// construction, before any clause flows"), before returning a
// Config-kind error.
func (o Options) Validate() error {
	if o.AgeWeightRatio[0] <= 0 || o.AgeWeightRatio[1] <= 0 {
		return NewConfigError("ageWeightRatio components must be positive")
	}
	if (o.SplitQueueRatios == "") != (o.SplitQueueCutoffs == "") {
		return NewConfigError("splitQueueRatios and splitQueueCutoffs must be set together")
	}
	if o.SplitQueueRatios != "" {
		if _, err := container.ParseSplitConfig(o.SplitQueueCutoffs, o.SplitQueueRatios, o.SplitQueueFadeIn); err != nil {
			return NewConfigError(err.Error())
		}
	}
	if o.SaturationAlgorithm == LRS && o.LrsCheckEveryN <= 0 {
		return NewConfigError("LRS algorithm requires a positive lrsCheckEveryN")
	}
	return nil
}
