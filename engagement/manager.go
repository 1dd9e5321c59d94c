package engagement

import (
	"errors"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidquest/models"
)

// ErrSessionNotFound is returned for heartbeats against unknown or
// already-ended sessions.
var ErrSessionNotFound = errors.New("engagement session not found")

// heartbeatCap bounds how many ticks a single heartbeat can claim, so a
// stalled client cannot bank an hour of watch time in one request.
const heartbeatCap = 30 * time.Second

// Session pairs a live tracker with its owner and video.
type Session struct {
	ID       string
	UserID   primitive.ObjectID
	VideoID  string
	Tracker  *Tracker
	lastSeen time.Time
	visible  bool
}

// Manager owns the live trackers, keyed by session id. Mirrors the shape
// of the websocket client registry: mutex-guarded map, explicit
// register/unregister, periodic sweep of the dead.
type Manager struct {
	now      func() time.Time
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager with an injectable clock.
func NewManager(now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{now: now, sessions: make(map[string]*Session)}
}

// StartSession creates and starts a tracker for one video view and
// returns its session id.
func (m *Manager) StartSession(userID primitive.ObjectID, videoID string) string {
	id := primitive.NewObjectID().Hex()
	tracker := NewTracker(m.now)
	tracker.Start()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &Session{
		ID:       id,
		UserID:   userID,
		VideoID:  videoID,
		Tracker:  tracker,
		lastSeen: m.now(),
		visible:  true,
	}
	return id
}

// Heartbeat applies the elapsed wall time since the previous heartbeat as
// 1-second ticks, records visibility transitions, echoes progress, and
// returns the updated snapshot.
func (m *Manager) Heartbeat(sessionID string, visible, playing bool, progress float64) (models.EngagementMetrics, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return models.EngagementMetrics{}, ErrSessionNotFound
	}
	now := m.now()
	elapsed := now.Sub(s.lastSeen)
	s.lastSeen = now
	prevVisible := s.visible
	s.visible = visible
	m.mu.Unlock()

	if visible != prevVisible {
		s.Tracker.VisibilityChanged(visible)
	}
	if elapsed > heartbeatCap {
		elapsed = heartbeatCap
	}
	for i := 0; i < int(elapsed.Seconds()); i++ {
		s.Tracker.Tick(playing)
	}
	s.Tracker.SetProgress(progress)

	return s.Tracker.Metrics(), nil
}

// EndSession stops the tracker, removes the session, and returns the
// final snapshot along with the session's identity.
func (m *Manager) EndSession(sessionID string) (*Session, models.EngagementMetrics, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()
	if !ok {
		return nil, models.EngagementMetrics{}, ErrSessionNotFound
	}
	return s, s.Tracker.Stop(), nil
}

// Lookup returns the live session, if any.
func (m *Manager) Lookup(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

// SweepStale drops sessions with no heartbeat for maxIdle. A tab closed
// without ending its session leaves the last delivered snapshot as the
// best-effort record; that loss is accepted.
func (m *Manager) SweepStale(maxIdle time.Duration) {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			s.Tracker.Stop()
			delete(m.sessions, id)
			log.Printf("engagement: swept stale session %s (user %s)", id, s.UserID.Hex())
		}
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
