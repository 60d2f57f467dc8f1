// Package retention implements the two-phase forgetting curve: a pure,
// deterministic closed-form function of personality-derived stability and
// elapsed game-days, plus the wall-clock-to-game-day conversion the
// Degradation Monitor uses to drive it.
package retention

import (
	"math"
	"time"
)

// Phase tags the branch of the forgetting curve a retention value came
// from. Modeled as a two-variant tag rather than a bare string so callers
// can switch on it; String() gives the wire/display form.
type Phase int

const (
	// PhaseFast is the initial exponential decay down to the transition
	// threshold (R = 0.40).
	PhaseFast Phase = iota
	// PhaseSlow is the exponential decay below the transition threshold,
	// floored at the reconstruction threshold (R = 0.30).
	PhaseSlow
)

func (p Phase) String() string {
	switch p {
	case PhaseFast:
		return "Phase 1 (Fast)"
	case PhaseSlow:
		return "Phase 2 (Slow)"
	default:
		return "unknown"
	}
}

const (
	// SFast is the Phase 1 time constant in game-days.
	SFast = 1.47
	// SSlow is the Phase 2 time constant in game-days.
	SSlow = 4.07
	// TransitionThreshold is the exact retention at which Phase 1 hands
	// off to Phase 2.
	TransitionThreshold = 0.40
	// StopThreshold is the reconstruction floor; retention never reported
	// below this once in Phase 2, and it is the Degradation Monitor's
	// halt condition.
	StopThreshold = 0.30

	minPFactor = 0.5
	maxPFactor = 1.5

	// DefaultScaleSecondsPerDay is the default game-clock scale: one real
	// minute maps to one game-day.
	DefaultScaleSecondsPerDay = 60
)

// Result is the kernel's (R, phase, time_in_slow) triple.
type Result struct {
	Retention  float64
	Phase      Phase
	TimeInSlow float64
}

// Calculate returns retention, decay phase, and time spent in the slow
// phase (0 while in Phase 1) for a given stability scalar and elapsed
// game-days. p_factor is
// clamped to [0.5, 1.5] and days to [0, +inf) before evaluation; the
// returned retention is rounded to 4 decimal places.
//
// The curve is continuous at the transition by construction: both
// branches equal 0.40 at t = t*. The boundary itself (R_fast == 0.40
// exactly) is reported as Phase 1, since the condition is >=.
func Calculate(pFactor, days float64) Result {
	pFactor = clamp(minPFactor, maxPFactor, pFactor)
	if days < 0 {
		days = 0
	}

	rFast := pFactor * math.Exp(-days/SFast)
	if rFast >= TransitionThreshold {
		return Result{Retention: round4(rFast), Phase: PhaseFast, TimeInSlow: 0}
	}

	tTransition := -SFast * math.Log(TransitionThreshold/pFactor)
	timeInSlow := days - tTransition
	rSlow := TransitionThreshold * math.Exp(-timeInSlow/SSlow)

	return Result{
		Retention:  round4(math.Max(StopThreshold, rSlow)),
		Phase:      PhaseSlow,
		TimeInSlow: timeInSlow,
	}
}

// ClockDiagnostics exposes the game-day/real-time conversion the monitor
// needs for rendering and day-boundary bookkeeping.
type ClockDiagnostics struct {
	GameDays    float64
	RealSeconds float64
	Phase       Phase
	TimeInSlow  float64
}

// FromInstant converts wall-clock elapsed time since createdAt into
// game-days (dividing by scaleSecondsPerDay, default DefaultScaleSecondsPerDay)
// and evaluates the kernel. now is passed explicitly rather than read from
// the wall clock internally, keeping this function as pure as the kernel
// itself for callers that already hold a sampled instant.
func FromInstant(pFactor float64, createdAt, now time.Time, scaleSecondsPerDay float64) (Result, ClockDiagnostics) {
	if scaleSecondsPerDay <= 0 {
		scaleSecondsPerDay = DefaultScaleSecondsPerDay
	}

	realSeconds := now.Sub(createdAt).Seconds()
	gameDays := realSeconds / scaleSecondsPerDay

	result := Calculate(pFactor, gameDays)

	timeInSlow := 0.0
	if result.Phase == PhaseSlow {
		timeInSlow = round2(result.TimeInSlow)
	}

	return result, ClockDiagnostics{
		GameDays:    round2(gameDays),
		RealSeconds: realSeconds,
		Phase:       result.Phase,
		TimeInSlow:  timeInSlow,
	}
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
