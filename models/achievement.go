package models

import "time"

// StatField names the UserStats counter an achievement condition reads.
// Conditions are data, not code: every achievement reduces to one stat
// compared against a threshold, which keeps the catalog serializable and
// the unlock state recomputable from a stats snapshot alone.
type StatField string

const (
	StatTotalXP             StatField = "total_xp"
	StatVideosWatched       StatField = "videos_watched"
	StatVideosLiked         StatField = "videos_liked"
	StatQuizzesCompleted    StatField = "quizzes_completed"
	StatChallengesCompleted StatField = "challenges_completed"
	StatCoursesCompleted    StatField = "courses_completed"
	StatCurrentStreak       StatField = "current_streak"
	StatBestStreak          StatField = "best_streak"
	StatTimeSpent           StatField = "time_spent"
	StatEarlyBirdSessions   StatField = "early_bird_sessions"
	StatNightOwlSessions    StatField = "night_owl_sessions"
	StatWeekendSessions     StatField = "weekend_sessions"
)

// Value extracts the named counter from a stats snapshot. Unknown fields
// read as zero so a stale catalog entry can never unlock by accident.
func (f StatField) Value(s UserStats) int {
	switch f {
	case StatTotalXP:
		return s.TotalXP
	case StatVideosWatched:
		return s.VideosWatched
	case StatVideosLiked:
		return s.VideosLiked
	case StatQuizzesCompleted:
		return s.QuizzesCompleted
	case StatChallengesCompleted:
		return s.ChallengesCompleted
	case StatCoursesCompleted:
		return s.CoursesCompleted
	case StatCurrentStreak:
		return s.CurrentStreak
	case StatBestStreak:
		return s.BestStreak
	case StatTimeSpent:
		return s.TimeSpent
	case StatEarlyBirdSessions:
		return s.EarlyBirdSessions
	case StatNightOwlSessions:
		return s.NightOwlSessions
	case StatWeekendSessions:
		return s.WeekendSessions
	}
	return 0
}

// Achievement is a static catalog definition. Unlock state is derived,
// never authoritative in storage.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"` // "learning", "xp", "streak", "social", "time", "special"
	Stat        StatField `json:"stat"`
	Requirement int       `json:"requirement"`
	XPReward    int       `json:"xpReward"`
	Rarity      string    `json:"rarity"` // "common", "rare", "epic", "legendary"
}

// Unlocked reports whether the achievement's condition holds for stats.
func (a Achievement) Unlocked(s UserStats) bool {
	return a.Stat.Value(s) >= a.Requirement
}

// Progress returns the tracked stat capped at the requirement.
func (a Achievement) Progress(s UserStats) int {
	v := a.Stat.Value(s)
	if v > a.Requirement {
		return a.Requirement
	}
	return v
}

// AchievementStatus is an achievement definition plus state derived from a
// stats snapshot, as served to clients.
type AchievementStatus struct {
	Achievement
	CurrentProgress int        `json:"current_progress"`
	IsUnlocked      bool       `json:"unlocked"`
	UnlockedAt      *time.Time `json:"unlocked_at,omitempty"` // cache only, written on first detection
}
