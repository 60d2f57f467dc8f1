package monitor

import (
	"log/slog"

	"github.com/madeengine/memoryd/internal/retention"
)

// Renderer turns a tick's diagnostics into a human-readable line,
// decoupled from the tick loop itself so callers can swap in their own
// presentation (a CLI dashboard, a log sink, a test spy) without
// touching the scheduling logic.
type Renderer interface {
	RenderTick(reportID string, result retention.Result, diag retention.ClockDiagnostics)
	RenderDayCrossing(reportID string, day int, utterance string)
	RenderHalt(reportID string, result retention.Result)
}

// SlogRenderer renders tick diagnostics through a structured logger —
// the renderer cmd/memoryd wires into its monitor pool, grounded in the
// rest of the codebase's use of log/slog for operational output.
type SlogRenderer struct {
	Logger *slog.Logger
}

// NewSlogRenderer builds a SlogRenderer; a nil logger falls back to
// slog.Default().
func NewSlogRenderer(logger *slog.Logger) *SlogRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogRenderer{Logger: logger}
}

func (r *SlogRenderer) RenderTick(reportID string, result retention.Result, diag retention.ClockDiagnostics) {
	r.Logger.Debug("degradation tick",
		"report_id", reportID,
		"retention", result.Retention,
		"phase", result.Phase.String(),
		"game_days", diag.GameDays,
	)
}

func (r *SlogRenderer) RenderDayCrossing(reportID string, day int, utterance string) {
	r.Logger.Info("game-day boundary crossed",
		"report_id", reportID,
		"game_day", day,
		"utterance", utterance,
	)
}

func (r *SlogRenderer) RenderHalt(reportID string, result retention.Result) {
	r.Logger.Info("degradation monitor halted",
		"report_id", reportID,
		"retention", result.Retention,
		"phase", result.Phase.String(),
	)
}

// NullRenderer discards all tick diagnostics.
type NullRenderer struct{}

func (NullRenderer) RenderTick(string, retention.Result, retention.ClockDiagnostics) {}
func (NullRenderer) RenderDayCrossing(string, int, string)                          {}
func (NullRenderer) RenderHalt(string, retention.Result)                            {}
