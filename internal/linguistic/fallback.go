package linguistic

import "fmt"

// fallbackTemplates holds three candidate lines per confidence band. A
// template containing %s is given baseMemory; the dispatcher picks one
// at random via its injected *rand.Rand.
var fallbackTemplates = map[string][]string{
	"High Confidence": {
		"The data for %s is perfectly synced. I can confirm all parameters are nominal.",
		"Accessing archived record: %s. Integrity is 100%%. What do you need to know?",
		"My primary memory core has %s fully cached and ready for retrieval.",
	},
	"Medium Confidence": {
		"Scanning neural pathways... %s is present, but I'm detecting minor trace interference.",
		"I recall the general framework of %s, though some specific nodes are currently obscured.",
		"Uplink unstable, but %s seems to be part of my recent task sequence.",
	},
	"Low Confidence": {
		"The record for %s is highly fragmented. I... I can't quite see the full picture.",
		"Neural unbinding detected. %s is fading into my deep archives. It feels distant.",
		"Warning: Data corruption in Sector 7. %s is missing critical metadata.",
	},
	"Very Low Confidence": {
		"I'm searching... but there's only noise where %s should be. It's almost gone.",
		"The memory of %s has lost its anchor. I can only retrieve ghost signals.",
		"Everything is shifting. %s? I... I don't think I have that anymore.",
	},
	"Confused": {
		"Who... what was %s? My cognitive sync is failing.",
		"Error: Null reference. %s is no longer part of my active consciousness.",
		"I am in standby mode. Memory for %s is indistinguishable from noise.",
	},
}

// fallbackOptions returns the candidate lines for confidenceLabel,
// defaulting to the Confused bank when the label is unrecognized.
func fallbackOptions(confidenceLabel string) []string {
	if opts, ok := fallbackTemplates[confidenceLabel]; ok {
		return opts
	}
	return fallbackTemplates["Confused"]
}

func renderFallback(template, baseMemory string) string {
	return fmt.Sprintf(template, baseMemory)
}
