// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package portfolio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irifrance/saturn/saturation"
)

func TestEncodeDecodeStatisticsRoundTrips(t *testing.T) {
	want := &saturation.Statistics{
		TerminationReason: saturation.REFUTATION,
		Generated:         12345,
		Active:            42,
		Passive:           7,
		Discarded:         99,
		Iterations:        1000,
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeStatistics(&buf, want))

	got, err := DecodeStatistics(&buf)
	require.NoError(t, err)
	assert.Equal(t, want.TerminationReason, got.TerminationReason)
	assert.Equal(t, want.Generated, got.Generated)
	assert.Equal(t, want.Active, got.Active)
	assert.Equal(t, want.Passive, got.Passive)
	assert.Equal(t, want.Discarded, got.Discarded)
	assert.Equal(t, want.Iterations, got.Iterations)
}

func TestVaruintRoundTripsLargeValues(t *testing.T) {
	var buf bytes.Buffer
	vw := NewWriter(&buf)
	vw.putVaruint(0)
	vw.putVaruint(127)
	vw.putVaruint(128)
	vw.putVaruint(1 << 20)
	vw.putVaruint(^uint32(0))
	require.NoError(t, vw.Flush())

	vr := NewReader(&buf)
	for _, want := range []uint32{0, 127, 128, 1 << 20, ^uint32(0)} {
		got, err := vr.getVaruint()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeStatisticsErrorsOnTruncatedInput(t *testing.T) {
	_, err := DecodeStatistics(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestEncodeDecodeOptionsRoundTrips(t *testing.T) {
	want := saturation.DefaultOptions()
	want.SaturationAlgorithm = saturation.LRS
	want.AgeLimit = 12
	want.WeightLimit = 34
	want.BackwardDemodulation = true
	want.LrsFirstTimeCheck = true

	var buf bytes.Buffer
	require.NoError(t, EncodeOptions(&buf, &want))

	got, err := DecodeOptions(&buf)
	require.NoError(t, err)
	assert.Equal(t, want.SaturationAlgorithm, got.SaturationAlgorithm)
	assert.Equal(t, want.AgeWeightRatio, got.AgeWeightRatio)
	assert.Equal(t, want.AgeLimit, got.AgeLimit)
	assert.Equal(t, want.WeightLimit, got.WeightLimit)
	assert.Equal(t, want.LrsCheckEveryN, got.LrsCheckEveryN)
	assert.Equal(t, want.DemodulationRedundancyCheck, got.DemodulationRedundancyCheck)
	assert.Equal(t, want.ForwardSubsumption, got.ForwardSubsumption)
	assert.Equal(t, want.ForwardDemodulation, got.ForwardDemodulation)
	assert.Equal(t, want.BackwardSubsumption, got.BackwardSubsumption)
	assert.Equal(t, want.BackwardDemodulation, got.BackwardDemodulation)
	assert.Equal(t, want.Condensation, got.Condensation)
	assert.Equal(t, want.LrsFirstTimeCheck, got.LrsFirstTimeCheck)
	assert.Equal(t, want.LrsWeightLimitOnly, got.LrsWeightLimitOnly)
}
