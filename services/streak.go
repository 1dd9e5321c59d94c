package services

import (
	"context"
	"time"

	"vidquest/db"
	"vidquest/models"
)

// NextStreak computes the streak after a qualifying activity on day now,
// given the previous streak state. Same calendar day is a no-op, the next
// day extends, any larger gap resets to 1. Best streak is never lowered.
func NextStreak(current, best int, lastActivity, now time.Time) (newCurrent, newBest int, changed bool) {
	today := dateOf(now)

	if lastActivity.IsZero() {
		newCurrent = 1
	} else {
		last := dateOf(lastActivity)
		switch gapDays := int(today.Sub(last).Hours() / 24); {
		case gapDays <= 0:
			return current, best, false
		case gapDays == 1:
			newCurrent = current + 1
		default:
			newCurrent = 1
		}
	}

	newBest = best
	if newCurrent > newBest {
		newBest = newCurrent
	}
	return newCurrent, newBest, true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// RecordDailyActivity extends or resets the user's streak for a
// qualifying activity and persists the result. Returns the streak to use
// for this activity's XP multiplier.
func RecordDailyActivity(ctx context.Context, stores *db.Stores, user *models.User, now time.Time) (int, error) {
	current, best, changed := NextStreak(user.Stats.CurrentStreak, user.Stats.BestStreak, user.LastActivityDate, now)
	if !changed {
		return user.Stats.CurrentStreak, nil
	}
	if err := stores.UpdateStreak(ctx, user.ID, current, best, now); err != nil {
		return user.Stats.CurrentStreak, err
	}
	user.Stats.CurrentStreak = current
	user.Stats.BestStreak = best
	user.LastActivityDate = now
	return current, nil
}
