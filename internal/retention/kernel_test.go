package retention

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_DayZeroReturnsRawPFactor(t *testing.T) {
	r := Calculate(1.3506, 0)
	assert.Equal(t, PhaseFast, r.Phase)
	assert.Equal(t, 1.3506, r.Retention)
	assert.Equal(t, 0.0, r.TimeInSlow)
}

func TestCalculate_AtExactTransitionIsPhase1(t *testing.T) {
	tStar := -SFast * math.Log(TransitionThreshold/1.0)
	r := Calculate(1.0, tStar)
	assert.Equal(t, PhaseFast, r.Phase)
	assert.InDelta(t, 0.40, r.Retention, 0.0001)
}

func TestCalculate_JustPastTransitionIsPhase2(t *testing.T) {
	tStar := -SFast * math.Log(TransitionThreshold/1.0)
	r := Calculate(1.0, tStar+0.01)
	assert.Equal(t, PhaseSlow, r.Phase)
	assert.InDelta(t, 0.40, r.Retention, 0.01)
}

func TestCalculate_DeepSlowPhaseFloors(t *testing.T) {
	tStar := -SFast * math.Log(TransitionThreshold/1.0)
	r := Calculate(1.0, tStar+SSlow)
	assert.Equal(t, PhaseSlow, r.Phase)
	assert.Equal(t, StopThreshold, r.Retention)
}

func TestCalculate_ClampsPFactorInput(t *testing.T) {
	high := Calculate(5.0, 0)
	assert.Equal(t, maxPFactor, high.Retention)

	low := Calculate(0.1, 0)
	assert.Equal(t, minPFactor, low.Retention)
}

func TestCalculate_ClampsNegativeDaysToZero(t *testing.T) {
	atZero := Calculate(1.0, 0)
	negative := Calculate(1.0, -10)
	assert.Equal(t, atZero, negative)
}

func TestCalculate_RetentionNeverBelowFloor(t *testing.T) {
	for _, days := range []float64{0, 1, 2, 5, 10, 100} {
		for _, p := range []float64{0.5, 0.8, 1.0, 1.2, 1.5} {
			r := Calculate(p, days)
			assert.GreaterOrEqual(t, r.Retention, StopThreshold)
		}
	}
}

func TestCalculate_ContinuousAtTransition(t *testing.T) {
	for _, p := range []float64{0.6, 0.9, 1.0, 1.2, 1.5} {
		tStar := -SFast * math.Log(TransitionThreshold/p)
		before := Calculate(p, tStar-1e-6)
		after := Calculate(p, tStar+1e-6)
		assert.InDelta(t, 0.40, before.Retention, 0.001)
		assert.InDelta(t, 0.40, after.Retention, 0.001)
	}
}

func TestFromInstant_ConvertsRealSecondsToGameDays(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(120 * time.Second)

	result, diag := FromInstant(1.0, created, now, 60)
	assert.InDelta(t, 2.0, diag.GameDays, 0.001)
	assert.Equal(t, 120.0, diag.RealSeconds)
	assert.Equal(t, result.Phase, diag.Phase)
}

func TestFromInstant_DefaultsScaleWhenZero(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(60 * time.Second)

	_, diag := FromInstant(1.0, created, now, 0)
	assert.InDelta(t, 1.0, diag.GameDays, 0.001)
}

func TestFromInstant_TimeInSlowZeroDuringPhase1(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(1 * time.Second)

	_, diag := FromInstant(1.0, created, now, 60)
	assert.Equal(t, 0.0, diag.TimeInSlow)
}

func TestPhase_StringValues(t *testing.T) {
	assert.Equal(t, "Phase 1 (Fast)", PhaseFast.String())
	assert.Equal(t, "Phase 2 (Slow)", PhaseSlow.String())
}
