// Package linguistic is the Linguistic Dispatcher: it selects a speech
// register from cognitive state, assembles a model prompt that never
// reveals the underlying numbers, and calls out to a ranked list of
// model endpoints with a deterministic, confidence-banded fallback when
// every endpoint is unavailable.
package linguistic

import "fmt"

// Register is the linguistic style an utterance should be generated in,
// selected from decay phase and retention alone (Kornell et al., 2011;
// Parks & Yonelinas, 2009).
type Register int

const (
	// DirectRecall: clear, precise, certain. Phase 1 with retention at
	// or above the transition threshold.
	DirectRecall Register = iota
	// Reconstructive: uncertain, speculative, hedged with "I think" /
	// "maybe". Phase 2, or any retention below 0.40.
	Reconstructive
	// GistOnly: vague, general-idea-only, no specific details.
	// Retention below the reconstruction floor (0.30).
	GistOnly
)

func (r Register) String() string {
	switch r {
	case DirectRecall:
		return "Direct Recall"
	case Reconstructive:
		return "Reconstructive"
	case GistOnly:
		return "Gist-only"
	default:
		return "unknown"
	}
}

const (
	gistThreshold           = 0.30
	reconstructiveThreshold = 0.40
)

// SelectRegister picks the register and its style-guide instruction from
// the agent's current phase label and retention value.
func SelectRegister(phase string, retention float64) (Register, string) {
	switch {
	case retention < gistThreshold:
		return GistOnly, "Use Gist-only language. Do not provide specific details. Sound vague and focus only on the general idea. Example: 'I don't have the details, but the general idea was...'"
	case phase == "Phase 2 (Slow)" || retention < reconstructiveThreshold:
		return Reconstructive, "Use Reconstructive language. Sound uncertain and speculative. Use fillers like 'I think', 'maybe', 'if I recall correctly'. Example: 'If I recall correctly, I think it was...'"
	default:
		return DirectRecall, "Use Direct Recall language. Sound clear, precise, and certain about the facts. Example: 'I clearly remember it happened at...'"
	}
}

// BuildPrompt assembles the model prompt. It embeds retention as a
// percentage, confidence band, and phase for color, but instructs the
// model never to state those numbers in the spoken response.
func BuildPrompt(baseMemory, confidenceLabel, phase string, retentionPct float64) string {
	shown := retentionPct
	if shown > 1.0 {
		shown = 1.0
	}
	_, styleGuide := SelectRegister(phase, retentionPct)

	return fmt.Sprintf(`You are an AI NPC in a high-fidelity simulation.
Your current cognitive state is:
- Memory Retention: %.1f%%
- Confidence Level: %s
- Decay Phase: %s

Style Guide: %s

Memory to recall: "%s"

Response requirements:
1. Stay in character as a futuristic NPC.
2. Do NOT mention your retention percentage or confidence level explicitly in the spoken text.
3. Reflect the required linguistic style perfectly based on the Style Guide.
4. Keep the response concise (1-2 sentences).

NPC Response:
`, shown*100, confidenceLabel, phase, styleGuide, baseMemory)
}
