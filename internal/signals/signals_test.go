package signals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceWithRand_AppliesNoiseAndClamps(t *testing.T) {
	score, band := ConfidenceWithRand(0.90, 0.15)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, ConfidenceHigh, band)

	score, band = ConfidenceWithRand(0.05, -0.15)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, ConfidenceConfused, band)
}

func TestConfidenceWithRand_Bands(t *testing.T) {
	cases := []struct {
		score float64
		band  string
	}{
		{0.80, ConfidenceHigh},
		{0.60, ConfidenceMedium},
		{0.40, ConfidenceLow},
		{0.30, ConfidenceVeryLow},
		{0.29, ConfidenceConfused},
	}
	for _, c := range cases {
		_, band := ConfidenceWithRand(c.score, 0)
		assert.Equal(t, c.band, band, "score %v", c.score)
	}
}

func TestReconstructionWithRand_Bands(t *testing.T) {
	cases := []struct {
		score float64
		band  string
	}{
		{0.80, ReconstructionHigh},
		{0.60, ReconstructionMedium},
		{0.40, ReconstructionLow},
		{0.30, ReconstructionVeryLow},
		{0.29, ReconstructionConfused},
	}
	for _, c := range cases {
		_, band := ReconstructionWithRand(c.score, 0)
		assert.Equal(t, c.band, band, "score %v", c.score)
	}
}

func TestConfidence_NeverEscapesUnitRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		score, _ := Confidence(0.5)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestReconstruction_NeverEscapesUnitRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		score, _ := Reconstruction(0.5)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestPriority_ExpiredTimeIsCritical(t *testing.T) {
	v, msg := Priority(0.8, 5, 0)
	assert.Equal(t, 10.0, v)
	assert.Equal(t, "Critical Priority (Time Expired)", msg)

	v, _ = Priority(0.8, 5, -1)
	assert.Equal(t, 10.0, v)
}

func TestPriority_ComputesVk(t *testing.T) {
	v, msg := Priority(0.5, 4, 2)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, "Priority Vk: 1.0000", msg)
}

func TestPriority_RoundsToFourDecimals(t *testing.T) {
	v, _ := Priority(1.0, 1, 3)
	assert.Equal(t, 0.3333, v)
}

func TestComputeUrgency_Overdue(t *testing.T) {
	u := ComputeUrgency(0, 5)
	assert.Equal(t, UrgencyOverdue, u.Level)
	assert.Equal(t, UrgencyCritical, u.Severity)
	assert.True(t, math.IsInf(u.Ratio, 1))
}

func TestComputeUrgency_Completed(t *testing.T) {
	u := ComputeUrgency(5, 0)
	assert.Equal(t, UrgencyCompleted, u.Level)
	assert.Equal(t, UrgencyNone, u.Severity)
	assert.Equal(t, 0.0, u.Ratio)
}

func TestComputeUrgency_Bands(t *testing.T) {
	cases := []struct {
		required, available float64
		level                UrgencyLevel
		severity             Urgency
	}{
		{9, 10, UrgencyUrgent, UrgencyHigh},
		{5, 10, UrgencyModerate, UrgencyMedium},
		{1, 10, UrgencyComfortable, UrgencyLow},
	}
	for _, c := range cases {
		u := ComputeUrgency(c.available, c.required)
		assert.Equal(t, c.level, u.Level)
		assert.Equal(t, c.severity, u.Severity)
	}
}

func TestPriorityModulatedRetention_MatchesPlainKernelAtNeutralImportance(t *testing.T) {
	r := PriorityModulatedRetention(2.0, 1.47, 1.0, 0.5, 0.5)
	plain := math.Exp(-2.0 / 1.47)
	assert.InDelta(t, plain, r, 1e-9)
}

func TestPriorityModulatedRetention_HigherImportanceSlowsDecay(t *testing.T) {
	low := PriorityModulatedRetention(2.0, 1.47, 1.0, 0.1, 0.5)
	high := PriorityModulatedRetention(2.0, 1.47, 1.0, 0.9, 0.5)
	assert.Greater(t, high, low)
}

func TestPriorityModulatedRetention_VkClampedToBounds(t *testing.T) {
	a := PriorityModulatedRetention(2.0, 1.47, 1.0, 100, 0.5)
	b := PriorityModulatedRetention(2.0, 1.47, 1.0, 2.0, 0.5)
	assert.Equal(t, a, b)
}

func TestPriorityModulatedRetention_DefaultsAlphaWhenZero(t *testing.T) {
	withDefault := PriorityModulatedRetention(2.0, 1.47, 1.0, 0.8, 0)
	explicit := PriorityModulatedRetention(2.0, 1.47, 1.0, 0.8, PriorityModulatedAlpha)
	assert.Equal(t, explicit, withDefault)
}
