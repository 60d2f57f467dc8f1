package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madeengine/memoryd/internal/models"
)

type fakeStore struct {
	mu      sync.Mutex
	updates []models.UtteranceUpdate
}

func (f *fakeStore) GetByReport(ctx context.Context, reportID string) (models.CognitiveRecord, error) {
	return models.CognitiveRecord{ReportID: reportID}, nil
}

func (f *fakeStore) UpdateUtteranceFields(ctx context.Context, reportID string, update models.UtteranceUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func fastConfig() Config {
	return Config{TickInterval: 5 * time.Millisecond, GameTimeScaleSecondsPerDay: 0.05}
}

func TestSession_HaltsAtReconstructionFloor(t *testing.T) {
	st := &fakeStore{}
	rec := models.CognitiveRecord{
		ReportID:  "halt-me",
		CreatedAt: time.Now().Add(-10 * time.Second),
		PFactor:   0.6,
	}
	session := NewSession(rec, "the old signal", fastConfig(), st, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	session.Start(ctx)
	defer session.Stop()

	require.Eventually(t, func() bool {
		return session.Health().Status == SessionStatusHalted
	}, time.Second, 5*time.Millisecond)

	assert.LessOrEqual(t, session.Health().Retention, 0.30)
}

func TestSession_AnnouncesEachDayCrossingOnce(t *testing.T) {
	st := &fakeStore{}
	rec := models.CognitiveRecord{
		ReportID:  "crossing-report",
		CreatedAt: time.Now(),
		PFactor:   1.5,
	}
	session := NewSession(rec, "the harbor meeting", fastConfig(), st, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	session.Start(ctx)
	<-ctx.Done()
	session.Stop()

	assert.GreaterOrEqual(t, st.count(), 1)
	health := session.Health()
	assert.GreaterOrEqual(t, health.LastDayAnnounced, 0)
}

func TestSession_DoesNotAnnounceBeforeFirstDayElapses(t *testing.T) {
	st := &fakeStore{}
	rec := models.CognitiveRecord{
		ReportID:  "no-immediate-crossing",
		CreatedAt: time.Now(),
		PFactor:   1.5,
	}
	// A single tick that elapses well under one simulated game-day must not
	// fire a day-boundary write; lastDayAnnounced starts at 0, matching day
	// 0 itself, not -1.
	cfg := Config{TickInterval: 5 * time.Millisecond, GameTimeScaleSecondsPerDay: 60}
	session := NewSession(rec, "the harbor meeting", cfg, st, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	session.Start(ctx)
	<-ctx.Done()
	session.Stop()

	assert.Equal(t, 0, st.count())
}

func TestPool_StartAndStopSession(t *testing.T) {
	st := &fakeStore{}
	pool := NewPool("test-pod", fastConfig(), st, nil, nil)
	defer pool.Stop()

	rec := models.CognitiveRecord{ReportID: "pool-report", CreatedAt: time.Now(), PFactor: 1.0}
	pool.StartSession(context.Background(), rec, "a memory")

	require.Eventually(t, func() bool {
		_, ok := pool.SessionHealth("pool-report")
		return ok
	}, time.Second, 5*time.Millisecond)

	health := pool.Health()
	assert.Equal(t, 1, health.ActiveSessions)

	assert.True(t, pool.StopSession("pool-report"))
	assert.False(t, pool.StopSession("pool-report"))

	_, ok := pool.SessionHealth("pool-report")
	assert.False(t, ok)
}

func TestPool_StopStopsAllSessions(t *testing.T) {
	st := &fakeStore{}
	pool := NewPool("test-pod", fastConfig(), st, nil, nil)

	pool.StartSession(context.Background(), models.CognitiveRecord{ReportID: "a", CreatedAt: time.Now(), PFactor: 1.0}, "mem a")
	pool.StartSession(context.Background(), models.CognitiveRecord{ReportID: "b", CreatedAt: time.Now(), PFactor: 1.0}, "mem b")

	pool.Stop()

	health := pool.Health()
	assert.Equal(t, 0, health.ActiveSessions)
}

func TestPool_DuplicateStartIsNoop(t *testing.T) {
	st := &fakeStore{}
	pool := NewPool("test-pod", fastConfig(), st, nil, nil)
	defer pool.Stop()

	rec := models.CognitiveRecord{ReportID: "dup-report", CreatedAt: time.Now(), PFactor: 1.0}
	pool.StartSession(context.Background(), rec, "mem")
	pool.StartSession(context.Background(), rec, "mem")

	health := pool.Health()
	assert.Equal(t, 1, health.ActiveSessions)
}
