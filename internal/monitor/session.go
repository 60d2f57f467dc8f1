package monitor

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/madeengine/memoryd/internal/linguistic"
	"github.com/madeengine/memoryd/internal/models"
	"github.com/madeengine/memoryd/internal/retention"
	"github.com/madeengine/memoryd/internal/signals"
	"github.com/madeengine/memoryd/internal/store"
)

// Store is the subset of store.Client a Session needs: fetching the
// cognitive record it degrades and writing the utterance group-write
// back atomically.
type Store interface {
	GetByReport(ctx context.Context, reportID string) (models.CognitiveRecord, error)
	UpdateUtteranceFields(ctx context.Context, reportID string, update models.UtteranceUpdate) error
}

var _ Store = (*store.Client)(nil)

// Session is one agent's Degradation Monitor goroutine: it samples
// retention every tick, debounces game-day crossings, and halts once
// retention reaches the reconstruction floor.
type Session struct {
	reportID   string
	createdAt  time.Time
	pFactor    float64
	baseMemory string

	cfg        Config
	store      Store
	dispatcher *linguistic.Dispatcher
	renderer   Renderer

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu               sync.RWMutex
	status           SessionStatus
	lastDayAnnounced int
	lastResult       retention.Result
	lastDiag         retention.ClockDiagnostics
	lastTick         time.Time
}

// NewSession builds a Session for a cognitive record, ready to Start.
func NewSession(rec models.CognitiveRecord, baseMemory string, cfg Config, st Store, dispatcher *linguistic.Dispatcher, renderer Renderer) *Session {
	if renderer == nil {
		renderer = NullRenderer{}
	}
	return &Session{
		reportID:         rec.ReportID,
		createdAt:        rec.CreatedAt,
		pFactor:          rec.PFactor,
		baseMemory:       baseMemory,
		cfg:              cfg,
		store:            st,
		dispatcher:       dispatcher,
		renderer:         renderer,
		stopCh:           make(chan struct{}),
		status:           SessionStatusRunning,
		lastDayAnnounced: 0,
	}
}

// Start begins the tick loop in a goroutine.
func (s *Session) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(ctx)
}

// Stop signals the tick loop to exit and waits for it to finish. Safe
// to call multiple times.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

// Health returns a diagnostic snapshot safe for concurrent reads while
// the tick loop runs.
func (s *Session) Health() SessionHealth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionHealth{
		ReportID:         s.reportID,
		Status:           s.status,
		Retention:        s.lastResult.Retention,
		Phase:            s.lastResult.Phase.String(),
		GameDays:         s.lastDiag.GameDays,
		LastDayAnnounced: s.lastDayAnnounced,
		LastTick:         s.lastTick,
	}
}

func (s *Session) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			s.setStatus(SessionStatusStopped)
			return
		case <-ctx.Done():
			s.setStatus(SessionStatusStopped)
			return
		case now := <-ticker.C:
			if s.tick(ctx, now) {
				return
			}
		}
	}
}

// tick evaluates retention at now, debounces day-boundary crossings,
// and returns true once the session has halted.
func (s *Session) tick(ctx context.Context, now time.Time) bool {
	result, diag := retention.FromInstant(s.pFactor, s.createdAt, now, s.cfg.GameTimeScaleSecondsPerDay)

	s.mu.Lock()
	s.lastResult = result
	s.lastDiag = diag
	s.lastTick = now
	s.mu.Unlock()

	s.renderer.RenderTick(s.reportID, result, diag)

	day := int(math.Floor(diag.GameDays))
	s.mu.RLock()
	announced := s.lastDayAnnounced
	s.mu.RUnlock()

	if day > announced {
		s.mu.Lock()
		s.lastDayAnnounced = day
		s.mu.Unlock()
		s.onDayCrossing(ctx, day, result)
	}

	if result.Retention <= retention.StopThreshold {
		s.setStatus(SessionStatusHalted)
		s.renderer.RenderHalt(s.reportID, result)
		return true
	}

	return false
}

// onDayCrossing regenerates the agent's utterance and persists it via
// the store's atomic group-write.
func (s *Session) onDayCrossing(ctx context.Context, day int, result retention.Result) {
	confidenceScore, confidenceBand := signals.Confidence(result.Retention)

	var utterance string
	if s.dispatcher != nil {
		utterance = s.dispatcher.Generate(ctx, s.baseMemory, confidenceBand, result.Phase.String(), result.Retention)
	} else {
		utterance = s.baseMemory
	}

	s.renderer.RenderDayCrossing(s.reportID, day, utterance)

	if s.store == nil || utterance == "" {
		return
	}

	_ = s.store.UpdateUtteranceFields(ctx, s.reportID, models.UtteranceUpdate{
		LastUtterance:                utterance,
		LastUtteranceRetention:       result.Retention,
		LastUtteranceConfidenceScore: confidenceScore,
		LastUtteranceConfidenceBand:  confidenceBand,
		LastUtterancePhase:           result.Phase.String(),
		LastUtteranceAt:              time.Now().UTC(),
	})
}

func (s *Session) setStatus(status SessionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}
