package achievements

import (
	"testing"
	"time"

	"vidquest/models"
)

func statusByID(statuses []models.AchievementStatus, id string) *models.AchievementStatus {
	for i := range statuses {
		if statuses[i].ID == id {
			return &statuses[i]
		}
	}
	return nil
}

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Catalog() {
		if seen[def.ID] {
			t.Errorf("duplicate achievement id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Requirement <= 0 {
			t.Errorf("%s: requirement must be positive, got %d", def.ID, def.Requirement)
		}
		if def.XPReward <= 0 {
			t.Errorf("%s: xp reward must be positive, got %d", def.ID, def.XPReward)
		}
	}
}

func TestProgressAtFiveVideos(t *testing.T) {
	stats := models.UserStats{VideosWatched: 5}
	statuses := Progress(stats)

	first := statusByID(statuses, "first_steps")
	if first == nil || !first.IsUnlocked {
		t.Fatal("first_steps should be unlocked after 5 videos")
	}
	if first.CurrentProgress != 1 {
		t.Errorf("first_steps progress should cap at its requirement, got %d", first.CurrentProgress)
	}

	explorer := statusByID(statuses, "video_explorer")
	if explorer == nil {
		t.Fatal("video_explorer missing from catalog")
	}
	if explorer.IsUnlocked {
		t.Error("video_explorer should still be locked at 5 of 10 videos")
	}
	if explorer.CurrentProgress != 5 {
		t.Errorf("video_explorer progress should be 5, got %d", explorer.CurrentProgress)
	}
}

func TestProgressCoversWholeCatalog(t *testing.T) {
	statuses := Progress(models.UserStats{})
	if len(statuses) != len(Catalog()) {
		t.Fatalf("expected %d statuses, got %d", len(Catalog()), len(statuses))
	}
	for _, s := range statuses {
		if s.IsUnlocked {
			t.Errorf("%s: unlocked on zero stats", s.ID)
		}
		if s.CurrentProgress != 0 {
			t.Errorf("%s: progress should be 0 on zero stats, got %d", s.ID, s.CurrentProgress)
		}
	}
}

func TestCheckNewSkipsAlreadyUnlocked(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	stats := models.UserStats{VideosWatched: 10, VideosLiked: 1}

	newly := CheckNew(stats, []string{"first_steps"}, now)

	ids := make(map[string]bool)
	for _, s := range newly {
		ids[s.ID] = true
		if s.UnlockedAt == nil || !s.UnlockedAt.Equal(now) {
			t.Errorf("%s: expected unlock timestamp %v, got %v", s.ID, now, s.UnlockedAt)
		}
		if !s.IsUnlocked {
			t.Errorf("%s: newly returned entries must be unlocked", s.ID)
		}
	}

	if ids["first_steps"] {
		t.Error("first_steps was already unlocked and must not be returned again")
	}
	if !ids["video_explorer"] {
		t.Error("video_explorer should unlock at 10 videos")
	}
	if !ids["first_like"] {
		t.Error("first_like should unlock at 1 like")
	}
}

func TestCheckNewEmptyWhenNothingQualifies(t *testing.T) {
	newly := CheckNew(models.UserStats{VideosWatched: 0}, nil, time.Now())
	if len(newly) != 0 {
		t.Errorf("expected no unlocks on zero stats, got %d", len(newly))
	}
}

func TestBestStreakKeepsCenturyChampion(t *testing.T) {
	// A broken streak must not relock the 100-day achievement: it reads
	// the best streak, not the current one.
	stats := models.UserStats{CurrentStreak: 1, BestStreak: 120}
	statuses := Progress(stats)

	champ := statusByID(statuses, "century_champion")
	if champ == nil || !champ.IsUnlocked {
		t.Error("century_champion should stay unlocked via best streak")
	}
	month := statusByID(statuses, "month_master")
	if month == nil || month.IsUnlocked {
		t.Error("month_master reads the current streak and should be locked")
	}
}
