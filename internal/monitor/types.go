// Package monitor implements the Degradation Monitor: a per-agent
// background goroutine that samples the retention kernel against the
// wall clock, debounces game-day boundary crossings, triggers the
// Linguistic Dispatcher's utterance regeneration on each crossing, and
// halts once retention reaches the reconstruction floor.
package monitor

import "time"

// SessionStatus is a monitored agent's current lifecycle state.
type SessionStatus string

const (
	SessionStatusRunning SessionStatus = "running"
	SessionStatusHalted  SessionStatus = "halted"
	SessionStatusStopped SessionStatus = "stopped"
)

// Config tunes the monitor's tick cadence and the game clock it drives.
type Config struct {
	// TickInterval is how often each session goroutine samples the
	// wall clock and re-evaluates retention.
	TickInterval time.Duration

	// GameTimeScaleSecondsPerDay converts elapsed real seconds into
	// elapsed game-days for the retention kernel.
	GameTimeScaleSecondsPerDay float64
}

// DefaultConfig is the monitor's out-of-the-box cadence: check every
// second, one real minute per game-day.
var DefaultConfig = Config{
	TickInterval:               time.Second,
	GameTimeScaleSecondsPerDay: 60,
}

// SessionHealth is a diagnostic snapshot of one monitored agent.
type SessionHealth struct {
	ReportID        string
	Status          SessionStatus
	Retention       float64
	Phase           string
	GameDays        float64
	LastDayAnnounced int
	LastTick        time.Time
}

// PoolHealth is a diagnostic snapshot of the whole monitor pool.
type PoolHealth struct {
	PodID          string
	ActiveSessions int
	Sessions       []SessionHealth
}
