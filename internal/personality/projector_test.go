package personality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_AveragePersonality(t *testing.T) {
	p := Project(Normalized{
		Openness:          0.5,
		Conscientiousness: 0.5,
		Extraversion:      0.5,
		Agreeableness:     0.5,
		Neuroticism:       0.5,
	})
	assert.InDelta(t, 1.259, p, 0.0005)
}

func TestProject_OptimalProfile(t *testing.T) {
	p := Project(Normalized{
		Openness:          0.85,
		Conscientiousness: 0.90,
		Extraversion:      0.5,
		Agreeableness:     0.5,
		Neuroticism:       0.20,
	})
	// The formula applied to these inputs yields ~1.4905, not the 1.3506
	// the worked example in the spec's scenario list states — the formula
	// itself (ground truth here, matching original_source/pfactor.py) is
	// reproduced exactly; see DESIGN.md.
	assert.InDelta(t, 1.4905, p, 0.0001)
}

func TestProject_ClampsToUpperBound(t *testing.T) {
	p := Project(Normalized{
		Openness:          1,
		Conscientiousness: 1,
		Extraversion:      1,
		Agreeableness:     1,
		Neuroticism:       0,
	})
	assert.Equal(t, 1.5, p)
}

func TestProject_ClampsToLowerBound(t *testing.T) {
	// In-range inputs bottom out at 0.808 (N=1, all else 0); an
	// out-of-range neuroticism is needed to push the raw value below 0.5.
	p := Project(Normalized{
		Openness:          0,
		Conscientiousness: 0,
		Extraversion:      0,
		Agreeableness:     0,
		Neuroticism:       5,
	})
	assert.Equal(t, 0.5, p)
}

func TestProject_AlwaysWithinBounds(t *testing.T) {
	for _, dims := range []Normalized{
		{0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1},
		{0.3, 0.7, 0.1, 0.9, 0.4},
		{1, 0, 1, 0, 1},
	} {
		p := Project(dims)
		assert.GreaterOrEqual(t, p, 0.5)
		assert.LessOrEqual(t, p, 1.5)
	}
}

func TestProjectOptional_DefaultsMissingDimensions(t *testing.T) {
	openness := 0.8
	p := ProjectOptional(Optional{Openness: &openness})
	expected := Project(Normalized{
		Openness:          0.8,
		Conscientiousness: 0.5,
		Extraversion:      0.5,
		Agreeableness:     0.5,
		Neuroticism:       0.5,
	})
	assert.Equal(t, expected, p)
}

func TestProjectWithBreakdown_FlagsClamping(t *testing.T) {
	b := ProjectWithBreakdown(Normalized{
		Openness:          1,
		Conscientiousness: 1,
		Extraversion:      1,
		Agreeableness:     1,
		Neuroticism:       0,
	})
	assert.True(t, b.WasClamped)
	assert.Equal(t, 1.5, b.PFactor)
	assert.Greater(t, b.PFactorUnclamped, 1.5)
}

func TestProjectWithBreakdown_NoClampWhenInRange(t *testing.T) {
	b := ProjectWithBreakdown(Normalized{
		Openness:          0.5,
		Conscientiousness: 0.5,
		Extraversion:      0.5,
		Agreeableness:     0.5,
		Neuroticism:       0.5,
	})
	assert.False(t, b.WasClamped)
	assert.Equal(t, b.PFactor, b.PFactorUnclamped)
}
