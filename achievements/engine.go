// Package achievements derives achievement progress from user statistics.
// Unlocks are a pure function of a stats snapshot; anything persisted is a
// display cache.
package achievements

import (
	"time"

	"vidquest/models"
)

// Progress evaluates the whole catalog against a stats snapshot and
// returns every achievement with its derived progress and unlock state.
func Progress(stats models.UserStats) []models.AchievementStatus {
	catalog := Catalog()
	statuses := make([]models.AchievementStatus, 0, len(catalog))
	for _, def := range catalog {
		statuses = append(statuses, models.AchievementStatus{
			Achievement:     def,
			CurrentProgress: def.Progress(stats),
			IsUnlocked:      def.Unlocked(stats),
		})
	}
	return statuses
}

// CheckNew returns the achievements whose condition now holds but whose id
// is not in alreadyUnlocked. The caller awards each one's XP reward once
// and caches the unlock with the returned timestamp.
func CheckNew(stats models.UserStats, alreadyUnlocked []string, now time.Time) []models.AchievementStatus {
	seen := make(map[string]bool, len(alreadyUnlocked))
	for _, id := range alreadyUnlocked {
		seen[id] = true
	}

	var newly []models.AchievementStatus
	for _, def := range Catalog() {
		if seen[def.ID] || !def.Unlocked(stats) {
			continue
		}
		ts := now
		newly = append(newly, models.AchievementStatus{
			Achievement:     def,
			CurrentProgress: def.Progress(stats),
			IsUnlocked:      true,
			UnlockedAt:      &ts,
		})
	}
	return newly
}
