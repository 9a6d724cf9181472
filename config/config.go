// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

// Package config loads saturation.Options from a YAML file, layered
// over saturation.DefaultOptions() so a config file only needs to name
// the fields it wants to override.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/irifrance/saturn/saturation"
)

// fileOptions mirrors saturation.Options but spells the algorithm as a
// human-readable string ("otter"/"discount"/"lrs") rather than the
// int enum saturation.Algorithm marshals to by default — the shape a
// hand-written YAML file actually uses.
type fileOptions struct {
	Algorithm string `yaml:"algorithm"`

	AgeWeightRatio [2]int `yaml:"ageWeightRatio"`

	SplitQueueRatios  string `yaml:"splitQueueRatios"`
	SplitQueueCutoffs string `yaml:"splitQueueCutoffs"`
	SplitQueueFadeIn  bool   `yaml:"splitQueueFadeIn"`

	Selection             string `yaml:"selection"`
	LiteralComparisonMode string `yaml:"literalComparisonMode"`
	Ordering              string `yaml:"ordering"`

	DemodulationRedundancyCheck bool `yaml:"demodulationRedundancyCheck"`
	ForwardSubsumption          bool `yaml:"forwardSubsumption"`
	ForwardDemodulation         bool `yaml:"forwardDemodulation"`
	BackwardSubsumption         bool `yaml:"backwardSubsumption"`
	BackwardDemodulation        bool `yaml:"backwardDemodulation"`
	Condensation                bool `yaml:"condensation"`

	AgeLimit           uint32 `yaml:"ageLimit"`
	WeightLimit        uint32 `yaml:"weightLimit"`
	LrsFirstTimeCheck  bool   `yaml:"lrsFirstTimeCheck"`
	LrsWeightLimitOnly bool   `yaml:"lrsWeightLimitOnly"`

	LrsCheckEveryN int `yaml:"lrsCheckEveryN"`
}

// ParseAlgorithm maps a config-file/flag spelling ("otter", "discount",
// "lrs", case-insensitive, "" defaulting to "otter") to its
// saturation.Algorithm value.
func ParseAlgorithm(s string) (saturation.Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "otter":
		return saturation.OTTER, nil
	case "discount":
		return saturation.DISCOUNT, nil
	case "lrs":
		return saturation.LRS, nil
	default:
		return 0, errors.Errorf("unknown algorithm %q", s)
	}
}

// LoadOptions reads path as YAML and returns the saturation.Options it
// describes, layered over saturation.DefaultOptions() so an omitted
// field keeps its default rather than zeroing out (spec §6). The
// caller is expected to call Options.Validate before constructing a
// Loop; LoadOptions itself only reports read/parse failures.
func LoadOptions(path string) (*saturation.Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, saturation.NewConfigError(errors.Wrapf(err, "reading %s", path).Error())
	}

	defaults := saturation.DefaultOptions()
	fo := fileOptions{
		Algorithm:           defaults.SaturationAlgorithm.String(),
		AgeWeightRatio:      defaults.AgeWeightRatio,
		ForwardSubsumption:  defaults.ForwardSubsumption,
		BackwardSubsumption: defaults.BackwardSubsumption,
		ForwardDemodulation: defaults.ForwardDemodulation,
		LrsCheckEveryN:      defaults.LrsCheckEveryN,
	}
	if err := yaml.Unmarshal(raw, &fo); err != nil {
		return nil, saturation.NewConfigError(errors.Wrapf(err, "parsing %s", path).Error())
	}

	alg, err := ParseAlgorithm(fo.Algorithm)
	if err != nil {
		return nil, saturation.NewConfigError(err.Error())
	}

	opts := saturation.Options{
		SaturationAlgorithm:         alg,
		AgeWeightRatio:              fo.AgeWeightRatio,
		SplitQueueRatios:            fo.SplitQueueRatios,
		SplitQueueCutoffs:           fo.SplitQueueCutoffs,
		SplitQueueFadeIn:            fo.SplitQueueFadeIn,
		Selection:                   fo.Selection,
		LiteralComparisonMode:       fo.LiteralComparisonMode,
		Ordering:                    fo.Ordering,
		DemodulationRedundancyCheck: fo.DemodulationRedundancyCheck,
		ForwardSubsumption:          fo.ForwardSubsumption,
		ForwardDemodulation:         fo.ForwardDemodulation,
		BackwardSubsumption:         fo.BackwardSubsumption,
		BackwardDemodulation:        fo.BackwardDemodulation,
		Condensation:                fo.Condensation,
		AgeLimit:                    fo.AgeLimit,
		WeightLimit:                 fo.WeightLimit,
		LrsFirstTimeCheck:           fo.LrsFirstTimeCheck,
		LrsWeightLimitOnly:          fo.LrsWeightLimitOnly,
		LrsCheckEveryN:              fo.LrsCheckEveryN,
	}
	return &opts, nil
}
