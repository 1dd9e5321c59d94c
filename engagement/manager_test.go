package engagement

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestManagerSessionLifecycle(t *testing.T) {
	clock := newManualClock()
	m := NewManager(clock.Now)
	userID := primitive.NewObjectID()

	id := m.StartSession(userID, "video-1")
	if id == "" {
		t.Fatal("expected a session id")
	}
	if m.Count() != 1 {
		t.Fatalf("expected 1 live session, got %d", m.Count())
	}

	s, ok := m.Lookup(id)
	if !ok || s.UserID != userID || s.VideoID != "video-1" {
		t.Fatalf("lookup returned the wrong session: %+v", s)
	}

	clock.Advance(10 * time.Second)
	metrics, err := m.Heartbeat(id, true, true, 25)
	if err != nil {
		t.Fatalf("heartbeat failed: %v", err)
	}
	if metrics.ActualWatchTime != 10 {
		t.Errorf("10s of elapsed playing time should accrue 10 ticks, got %f", metrics.ActualWatchTime)
	}
	if metrics.VideoProgress != 25 {
		t.Errorf("progress should echo the heartbeat, got %f", metrics.VideoProgress)
	}

	session, final, err := m.EndSession(id)
	if err != nil {
		t.Fatalf("end session failed: %v", err)
	}
	if session.VideoID != "video-1" {
		t.Errorf("end session returned the wrong session: %+v", session)
	}
	if final.ActualWatchTime != 10 {
		t.Errorf("final snapshot should keep the accrued watch time, got %f", final.ActualWatchTime)
	}
	if m.Count() != 0 {
		t.Errorf("ended sessions must leave the registry, got %d", m.Count())
	}

	if _, err := m.Heartbeat(id, true, true, 50); err != ErrSessionNotFound {
		t.Errorf("heartbeat after end should report the session gone, got %v", err)
	}
}

func TestHeartbeatCapsBankedTime(t *testing.T) {
	clock := newManualClock()
	m := NewManager(clock.Now)

	id := m.StartSession(primitive.NewObjectID(), "video-1")

	// A client that goes silent for ten minutes cannot claim it all.
	clock.Advance(10 * time.Minute)
	metrics, err := m.Heartbeat(id, true, true, 10)
	if err != nil {
		t.Fatalf("heartbeat failed: %v", err)
	}
	if metrics.ActualWatchTime != 30 {
		t.Errorf("a late heartbeat is capped at 30s of credit, got %f", metrics.ActualWatchTime)
	}
}

func TestHeartbeatVisibilityTransition(t *testing.T) {
	clock := newManualClock()
	m := NewManager(clock.Now)

	id := m.StartSession(primitive.NewObjectID(), "video-1")

	// Tab goes hidden; next heartbeat brings it back after 20 seconds.
	if _, err := m.Heartbeat(id, false, true, 0); err != nil {
		t.Fatalf("heartbeat failed: %v", err)
	}
	clock.Advance(20 * time.Second)
	metrics, err := m.Heartbeat(id, true, false, 0)
	if err != nil {
		t.Fatalf("heartbeat failed: %v", err)
	}

	if metrics.TabSwitches != 1 {
		t.Errorf("expected one recorded tab switch, got %d", metrics.TabSwitches)
	}
	if metrics.EngagementScore != 90 {
		t.Errorf("a 20s absence should cost 10 score, got %f", metrics.EngagementScore)
	}
}

func TestSweepStale(t *testing.T) {
	clock := newManualClock()
	m := NewManager(clock.Now)

	stale := m.StartSession(primitive.NewObjectID(), "video-1")
	clock.Advance(10 * time.Minute)
	fresh := m.StartSession(primitive.NewObjectID(), "video-2")

	m.SweepStale(5 * time.Minute)

	if _, ok := m.Lookup(stale); ok {
		t.Error("the stale session should have been swept")
	}
	if _, ok := m.Lookup(fresh); !ok {
		t.Error("the fresh session must survive the sweep")
	}
}
