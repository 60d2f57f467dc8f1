// Package personality projects normalized OCEAN questionnaire output into
// the single memory-stability scalar the rest of the cognitive engine
// consumes.
package personality

import "math"

// Coefficients for the linear personality-to-stability projection. These
// weights come from the source model and must be preserved exactly.
const (
	baseFactor          = 1.0
	opennessWeight      = 0.235
	conscientiousWeight = 0.229
	extraversionWeight  = 0.170
	agreeablenessWeight = 0.076
	neuroticismWeight   = -0.192

	minPFactor = 0.5
	maxPFactor = 1.5

	defaultDimension = 0.5
)

// Normalized holds the five OCEAN dimensions normalized to [0, 1]. A zero
// value for any field is a real score of 0, never "not provided" — callers
// with missing dimensions should use Optional and ProjectOptional, which
// default them to 0.5.
type Normalized struct {
	Openness          float64
	Conscientiousness float64
	Extraversion      float64
	Agreeableness     float64
	Neuroticism       float64
}

// Project converts normalized OCEAN dimensions into p_factor, clamped to
// [0.5, 1.5]. Missing dimensions (represented as a nil pointer in the
// Optional variant below) default to 0.5.
func Project(n Normalized) float64 {
	raw := rawPFactor(n)
	return clamp(minPFactor, maxPFactor, round4(raw))
}

// Optional mirrors the source's dict-based lookup with per-dimension
// defaults: any dimension left at its zero value is assumed unset by the
// caller and defaults to 0.5. Use Project directly when all five
// dimensions are always supplied.
type Optional struct {
	Openness          *float64
	Conscientiousness *float64
	Extraversion      *float64
	Agreeableness     *float64
	Neuroticism       *float64
}

// ProjectOptional projects from a set of possibly-missing dimensions.
func ProjectOptional(o Optional) float64 {
	return Project(Normalized{
		Openness:          orDefault(o.Openness),
		Conscientiousness: orDefault(o.Conscientiousness),
		Extraversion:      orDefault(o.Extraversion),
		Agreeableness:     orDefault(o.Agreeableness),
		Neuroticism:       orDefault(o.Neuroticism),
	})
}

func orDefault(v *float64) float64 {
	if v == nil {
		return defaultDimension
	}
	return *v
}

func rawPFactor(n Normalized) float64 {
	return baseFactor +
		opennessWeight*n.Openness +
		conscientiousWeight*n.Conscientiousness +
		extraversionWeight*n.Extraversion +
		agreeablenessWeight*n.Agreeableness +
		neuroticismWeight*n.Neuroticism
}

// Breakdown is the supplemented diagnostic view of a projection, exposing
// each dimension's contribution and whether the final result was clamped.
type Breakdown struct {
	PFactor           float64
	PFactorUnclamped  float64
	Base              float64
	OpennessContrib   float64
	ConscientiousContrib float64
	ExtraversionContrib  float64
	AgreeablenessContrib float64
	NeuroticismContrib   float64
	WasClamped        bool
}

// ProjectWithBreakdown returns the same scalar as Project plus a
// per-dimension contribution breakdown, useful for diagnostics and for the
// Degradation Monitor's tick rendering.
func ProjectWithBreakdown(n Normalized) Breakdown {
	raw := round4(rawPFactor(n))
	clamped := clamp(minPFactor, maxPFactor, raw)

	return Breakdown{
		PFactor:              clamped,
		PFactorUnclamped:     raw,
		Base:                 baseFactor,
		OpennessContrib:      round4(opennessWeight * n.Openness),
		ConscientiousContrib: round4(conscientiousWeight * n.Conscientiousness),
		ExtraversionContrib:  round4(extraversionWeight * n.Extraversion),
		AgreeablenessContrib: round4(agreeablenessWeight * n.Agreeableness),
		NeuroticismContrib:   round4(neuroticismWeight * n.Neuroticism),
		WasClamped:           raw != clamped,
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
