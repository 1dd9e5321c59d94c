// Package engagement estimates how attentively a user watched a video,
// for exactly one viewing session. The tracker is a small state machine
// fed by 1-second ticks and visibility transitions; the score it produces
// feeds the watch-bonus pipeline.
package engagement

import (
	"sync"
	"time"

	"vidquest/models"
)

const (
	maxScore     = 100.0
	recoveryRate = 0.5 // score regained per visible tick

	awayGrace      = 5 * time.Second
	maxAwayPenalty = 20.0
)

// Tracker accumulates engagement state for one session. Safe for use from
// concurrent HTTP handlers; each session has exactly one tracker.
type Tracker struct {
	now func() time.Time

	mu          sync.Mutex
	started     bool
	stopped     bool
	start       time.Time
	lastActive  time.Time
	hidden      bool
	tabSwitches int
	score       float64
	watchTime   float64 // seconds
	progress    float64 // percent, echoed from the player
	final       models.EngagementMetrics
}

// NewTracker creates a tracker with an injectable clock. A nil clock
// falls back to time.Now.
func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now}
}

// Start initializes the session clock and resets all counters. The
// engagement score starts at the ceiling and only penalties pull it down.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = true
	t.stopped = false
	t.start = t.now()
	t.lastActive = t.start
	t.hidden = false
	t.tabSwitches = 0
	t.score = maxScore
	t.watchTime = 0
	t.progress = 0
}

// Tick advances the session by one second. Watch time accrues and the
// score recovers toward the ceiling only while the tab is visible and the
// video is playing.
func (t *Tracker) Tick(playing bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started || t.stopped || t.hidden || !playing {
		return
	}
	t.watchTime++
	t.score += recoveryRate
	if t.score > maxScore {
		t.score = maxScore
	}
}

// SetProgress echoes the player-reported progress percent into the
// metrics. The tracker never computes progress itself.
func (t *Tracker) SetProgress(percent float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	t.progress = percent
}

// VisibilityChanged records a tab visibility transition. Going hidden
// counts a tab switch; coming back after more than the grace period costs
// up to maxAwayPenalty score, floored at zero.
func (t *Tracker) VisibilityChanged(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started || t.stopped {
		return
	}
	now := t.now()

	if !visible && !t.hidden {
		t.hidden = true
		t.tabSwitches++
		t.lastActive = now
		return
	}

	if visible && t.hidden {
		t.hidden = false
		away := now.Sub(t.lastActive)
		if away > awayGrace {
			penalty := away.Seconds() / 2
			if penalty > maxAwayPenalty {
				penalty = maxAwayPenalty
			}
			t.score -= penalty
			if t.score < 0 {
				t.score = 0
			}
		}
	}
}

// Metrics returns the current snapshot. Pure read, callable at any time.
func (t *Tracker) Metrics() models.EngagementMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return t.final
	}
	return t.snapshotLocked()
}

// Stop finalizes the session and returns the frozen snapshot. Calling it
// again is a no-op that returns the same snapshot.
func (t *Tracker) Stop() models.EngagementMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return t.final
	}
	t.final = t.snapshotLocked()
	t.stopped = true
	return t.final
}

func (t *Tracker) snapshotLocked() models.EngagementMetrics {
	return models.EngagementMetrics{
		ActualWatchTime: t.watchTime,
		VideoProgress:   t.progress,
		EngagementScore: t.score,
		TabSwitches:     t.tabSwitches,
	}
}
