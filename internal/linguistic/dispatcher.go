package linguistic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

// Dispatcher generates in-character utterances from an agent's cognitive
// state, trying a ranked list of model endpoints before falling back to
// a deterministic, confidence-banded template bank. Generate never
// returns an error: a usable line is always produced.
type Dispatcher struct {
	httpClient *http.Client
	endpoints  []string
	apiKey     string
	rng        *rand.Rand
	logger     *slog.Logger
}

// New builds a Dispatcher. An empty apiKey puts the dispatcher in
// fallback-only mode: it never attempts an HTTP call. rng defaults to a
// fixed-seed PCG source when nil; pass an explicit one to control template
// selection in tests.
func New(apiKey string, endpoints []string, rng *rand.Rand, logger *slog.Logger) *Dispatcher {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoints:  endpoints,
		apiKey:     apiKey,
		rng:        rng,
		logger:     logger,
	}
}

// generateRequest is the body posted to each ranked endpoint.
type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate produces an utterance for baseMemory given the agent's
// current confidence label, phase, and retention. When apiKey is unset
// it returns the plain no-key fallback immediately; otherwise it tries
// each endpoint in order, breaking out to the template fallback early on
// a quota error (HTTP 429) rather than exhausting the rest of the list.
func (d *Dispatcher) Generate(ctx context.Context, baseMemory, confidenceLabel, phase string, retentionPct float64) string {
	if d.apiKey == "" {
		return "[Fallback] I remember " + baseMemory + " with " + confidenceLabel + " confidence."
	}

	prompt := BuildPrompt(baseMemory, confidenceLabel, phase, retentionPct)

	for _, endpoint := range d.endpoints {
		text, quotaExceeded, err := d.callEndpoint(ctx, endpoint, prompt)
		if err == nil {
			return strings.ReplaceAll(strings.TrimSpace(text), `"`, "")
		}
		if quotaExceeded {
			d.logger.Warn("linguistic endpoint quota exceeded, falling back", "endpoint", endpoint)
			break
		}
		d.logger.Warn("linguistic endpoint call failed, trying next", "endpoint", endpoint, "error", err)
	}

	d.logger.Info("linguistic dispatcher using template fallback", "confidence_band", confidenceLabel)
	options := fallbackOptions(confidenceLabel)
	choice := options[d.rng.IntN(len(options))]
	return renderFallback(choice, baseMemory)
}

func (d *Dispatcher) callEndpoint(ctx context.Context, endpoint, prompt string) (text string, quotaExceeded bool, err error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", true, errStatus(resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, errStatus(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, err
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, err
	}

	return parsed.Text, false, nil
}

type statusError int

func (e statusError) Error() string {
	return http.StatusText(int(e))
}

func errStatus(code int) error {
	return statusError(code)
}
