// Package signals computes the derived cognitive-state signals built on
// top of a retention value and per-task scalars: confidence, reconstruction
// quality, task priority, and urgency.
package signals

import (
	"math"
	"math/rand/v2"
)

const (
	noiseRange = 0.15

	bandHigh    = 0.80
	bandMedium  = 0.60
	bandLow     = 0.40
	bandVeryLow = 0.30
)

// Band labels for confidence.
const (
	ConfidenceHigh    = "High Confidence"
	ConfidenceMedium  = "Medium Confidence"
	ConfidenceLow     = "Low Confidence"
	ConfidenceVeryLow = "Very Low Confidence"
	ConfidenceConfused = "Confused"
)

// Band labels for reconstruction quality.
const (
	ReconstructionHigh    = "High Reconstruction"
	ReconstructionMedium  = "Medium Reconstruction"
	ReconstructionLow     = "Low Reconstruction"
	ReconstructionVeryLow = "Very Low Reconstruction"
	ReconstructionConfused = "Confused"
)

// Confidence draws a noised retention value (uniform in [-0.15, +0.15]),
// clamps it to [0, 1], and returns it rounded to 4 decimal places alongside
// its coarse band label. Every call is a fresh, independent draw — this is
// non-deterministic by design; callers needing reproducibility should use
// ConfidenceWithRand with an explicit noise value.
func Confidence(retention float64) (float64, string) {
	return ConfidenceWithRand(retention, rand.Float64()*2*noiseRange-noiseRange)
}

// ConfidenceWithRand computes confidence using an explicit noise value
// instead of drawing from the package-level source, for deterministic
// tests.
func ConfidenceWithRand(retention, noise float64) (float64, string) {
	score := round4(clamp01(retention + noise))
	return score, confidenceBand(score)
}

func confidenceBand(score float64) string {
	switch {
	case score >= bandHigh:
		return ConfidenceHigh
	case score >= bandMedium:
		return ConfidenceMedium
	case score >= bandLow:
		return ConfidenceLow
	case score >= bandVeryLow:
		return ConfidenceVeryLow
	default:
		return ConfidenceConfused
	}
}

// Reconstruction has the identical numerical shape to Confidence (same
// noise range, same thresholds) but its own label set, and is an
// independent draw.
func Reconstruction(retention float64) (float64, string) {
	return ReconstructionWithRand(retention, rand.Float64()*2*noiseRange-noiseRange)
}

// ReconstructionWithRand is the deterministic-noise variant of Reconstruction.
func ReconstructionWithRand(retention, noise float64) (float64, string) {
	score := round4(clamp01(retention + noise))
	return score, reconstructionBand(score)
}

func reconstructionBand(score float64) string {
	switch {
	case score >= bandHigh:
		return ReconstructionHigh
	case score >= bandMedium:
		return ReconstructionMedium
	case score >= bandLow:
		return ReconstructionLow
	case score >= bandVeryLow:
		return ReconstructionVeryLow
	default:
		return ReconstructionConfused
	}
}

// Priority computes Vk = Kk * TRk / TAk, or the critical sentinel when
// available time has expired (TAk <= 0).
func Priority(importance, requiredTime, availableTime float64) (float64, string) {
	if availableTime <= 0 {
		return 10.0, "Critical Priority (Time Expired)"
	}
	v := round4(importance * (requiredTime / availableTime))
	return v, "Priority Vk: " + formatFixed4(v)
}

// UrgencyLevel is the coarse urgency band.
type UrgencyLevel string

const (
	UrgencyOverdue     UrgencyLevel = "OVERDUE"
	UrgencyCompleted   UrgencyLevel = "COMPLETED"
	UrgencyUrgent      UrgencyLevel = "URGENT"
	UrgencyModerate    UrgencyLevel = "MODERATE"
	UrgencyComfortable UrgencyLevel = "COMFORTABLE"
)

// Urgency is the secondary severity tag paired with an UrgencyLevel.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyNone     Urgency = "NONE"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyLow      Urgency = "LOW"
)

// UrgencyResult bundles the level/severity pair and the raw ratio that
// produced it (+Inf when the task is overdue, 0 when it's already
// completed).
type UrgencyResult struct {
	Level    UrgencyLevel
	Severity Urgency
	Ratio    float64
}

// ComputeUrgency bands a task's time pressure from its required/available
// time scalars.
func ComputeUrgency(availableTime, requiredTime float64) UrgencyResult {
	if availableTime <= 0 {
		return UrgencyResult{Level: UrgencyOverdue, Severity: UrgencyCritical, Ratio: math.Inf(1)}
	}
	if requiredTime <= 0 {
		return UrgencyResult{Level: UrgencyCompleted, Severity: UrgencyNone, Ratio: 0}
	}

	u := requiredTime / availableTime
	switch {
	case u >= 0.9:
		return UrgencyResult{Level: UrgencyUrgent, Severity: UrgencyHigh, Ratio: u}
	case u >= 0.5:
		return UrgencyResult{Level: UrgencyModerate, Severity: UrgencyMedium, Ratio: u}
	default:
		return UrgencyResult{Level: UrgencyComfortable, Severity: UrgencyLow, Ratio: u}
	}
}

// PriorityModulatedAlpha is the default sensitivity of the priority
// scalar Vk used by the alternate, importance-weighted retention kernel.
const PriorityModulatedAlpha = 0.5

// PriorityModulatedRetention is an alternate retention kernel offered for
// prioritization studies. It is not consulted by the Degradation Monitor
// unless explicitly enabled by a caller.
//
// R_pri(t) = exp(-t / (S * P * Vk)), Vk = clamp(0.5, 1.5, 1 + (importance-0.5)*alpha)
func PriorityModulatedRetention(t, stabilityConstant, pFactor, importance, alpha float64) float64 {
	if alpha == 0 {
		alpha = PriorityModulatedAlpha
	}
	vk := clamp(0.5, 1.5, 1+(importance-0.5)*alpha)
	return math.Exp(-t / (stabilityConstant * pFactor * vk))
}

func clamp01(v float64) float64 {
	return clamp(0, 1, v)
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

// formatFixed4 renders v with exactly 4 decimal digits, the way the
// source embeds the rounded priority value in its label.
func formatFixed4(v float64) string {
	scaled := int64(math.Round(v * 10000))
	neg := scaled < 0
	if neg {
		scaled = -scaled
	}
	whole := scaled / 10000
	frac := scaled % 10000
	sign := ""
	if neg {
		sign = "-"
	}
	return sign + itoa(whole) + "." + padLeft4(frac)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func padLeft4(n int64) string {
	s := itoa(n)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
