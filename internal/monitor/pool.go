package monitor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/madeengine/memoryd/internal/linguistic"
	"github.com/madeengine/memoryd/internal/models"
)

// Pool manages one Degradation Monitor Session per cognitive record.
// Sessions are started independently and can be cancelled individually
// (e.g. on DeleteByReport) without affecting the rest of the pool.
type Pool struct {
	podID      string
	cfg        Config
	store      Store
	dispatcher *linguistic.Dispatcher
	renderer   Renderer

	mu       sync.RWMutex
	sessions map[string]*Session
	cancels  map[string]context.CancelFunc

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewPool builds a Pool. dispatcher may be nil (no linguistic
// regeneration; each day crossing persists the base memory unchanged as
// the utterance). renderer may be nil
// (defaults to NullRenderer).
func NewPool(podID string, cfg Config, st Store, dispatcher *linguistic.Dispatcher, renderer Renderer) *Pool {
	if renderer == nil {
		renderer = NullRenderer{}
	}
	return &Pool{
		podID:      podID,
		cfg:        cfg,
		store:      st,
		dispatcher: dispatcher,
		renderer:   renderer,
		sessions:   make(map[string]*Session),
		cancels:    make(map[string]context.CancelFunc),
		stopCh:     make(chan struct{}),
	}
}

// StartSession registers and starts monitoring a freshly created
// cognitive record. Calling it again for a reportID already being
// monitored is a no-op other than logging a warning.
func (p *Pool) StartSession(ctx context.Context, rec models.CognitiveRecord, baseMemory string) {
	p.mu.Lock()
	if _, exists := p.sessions[rec.ReportID]; exists {
		p.mu.Unlock()
		slog.Warn("degradation session already running, ignoring duplicate start", "report_id", rec.ReportID)
		return
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	session := NewSession(rec, baseMemory, p.cfg, p.store, p.dispatcher, p.renderer)
	p.sessions[rec.ReportID] = session
	p.cancels[rec.ReportID] = cancel
	p.mu.Unlock()

	session.Start(sessionCtx)
	slog.Info("degradation session started", "report_id", rec.ReportID, "pod_id", p.podID)
}

// StopSession cancels and removes a single session, e.g. because its
// cognitive record was deleted. Returns false if no session was running
// for reportID.
func (p *Pool) StopSession(reportID string) bool {
	p.mu.Lock()
	session, exists := p.sessions[reportID]
	cancel := p.cancels[reportID]
	if exists {
		delete(p.sessions, reportID)
		delete(p.cancels, reportID)
	}
	p.mu.Unlock()

	if !exists {
		return false
	}

	cancel()
	session.Stop()
	return true
}

// Stop gracefully stops every running session and waits for their tick
// loops to exit. Safe to call multiple times.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)

		p.mu.Lock()
		sessions := make([]*Session, 0, len(p.sessions))
		cancels := make([]context.CancelFunc, 0, len(p.cancels))
		for id, s := range p.sessions {
			sessions = append(sessions, s)
			cancels = append(cancels, p.cancels[id])
		}
		p.sessions = make(map[string]*Session)
		p.cancels = make(map[string]context.CancelFunc)
		p.mu.Unlock()

		for _, cancel := range cancels {
			cancel()
		}
		for _, s := range sessions {
			s.Stop()
		}

		slog.Info("degradation monitor pool stopped", "pod_id", p.podID)
	})
}

// Health reports a snapshot of every currently-tracked session. Halted
// sessions remain in the pool (and in this report) until explicitly
// stopped or deleted, so callers can still see the terminal state.
func (p *Pool) Health() PoolHealth {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := PoolHealth{PodID: p.podID, ActiveSessions: len(p.sessions)}
	for _, s := range p.sessions {
		out.Sessions = append(out.Sessions, s.Health())
	}
	return out
}

// SessionHealth returns the diagnostic snapshot for a single report, or
// false if it isn't tracked.
func (p *Pool) SessionHealth(reportID string) (SessionHealth, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.sessions[reportID]
	if !ok {
		return SessionHealth{}, false
	}
	return s.Health(), true
}
