package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"vidquest/achievements"
	"vidquest/anticheat"
	"vidquest/db"
	"vidquest/models"
	"vidquest/websocket"
	"vidquest/xp"
)

// historyWindow is how far back the validator's recent-action snapshot
// reaches. A day covers every in-memory check (cooldowns and the hourly
// window); daily caps read their own persisted counter.
const historyWindow = 24 * time.Hour

// ActionOutcome is everything the route handler needs to answer one
// reported action.
type ActionOutcome struct {
	Result          models.ValidationResult    `json:"result"`
	Award           *models.XPAward            `json:"award,omitempty"`
	Level           *xp.LevelInfo              `json:"level,omitempty"`
	LeveledUp       bool                       `json:"leveledUp,omitempty"`
	NewAchievements []models.AchievementStatus `json:"newAchievements,omitempty"`
}

// GamificationService glues the pipeline together: validate the action,
// compute the award, persist every side effect, surface celebrations.
type GamificationService struct {
	stores    *db.Stores
	validator *anticheat.Validator
	calc      *xp.Calculator
	now       func() time.Time
}

// NewGamificationService wires the validator and calculator onto the
// shared stores. A nil clock falls back to time.Now.
func NewGamificationService(stores *db.Stores, now func() time.Time) *GamificationService {
	if now == nil {
		now = time.Now
	}
	return &GamificationService{
		stores:    stores,
		validator: anticheat.New(stores, stores, stores, now),
		calc:      xp.New(now),
		now:       now,
	}
}

// ProcessAction runs one reported action through the full pipeline. A
// rejected action returns a non-nil outcome with Result.Valid == false;
// errors are reserved for infrastructure failures on the write path.
func (g *GamificationService) ProcessAction(ctx context.Context, action models.UserAction) (*ActionOutcome, error) {
	if action.Timestamp.IsZero() {
		action.Timestamp = g.now()
	}

	// A failed history read degrades to an empty window: fail open,
	// same policy as the validator's own store reads.
	recent, err := g.stores.RecentActions(ctx, action.UserID, action.Action, g.now().Add(-historyWindow))
	if err != nil {
		log.Printf("gamification: recent-history read degraded, validating without it: %v", err)
		recent = nil
	}

	result := g.validator.Validate(ctx, action, recent)
	if !result.Valid {
		return &ActionOutcome{Result: result}, nil
	}

	user, err := g.stores.GetUserByID(ctx, action.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// Streak first: today's activity counts toward today's multiplier.
	streak, err := RecordDailyActivity(ctx, g.stores, user, action.Timestamp)
	if err != nil {
		log.Printf("gamification: streak update failed for %s: %v", user.ID.Hex(), err)
		streak = user.Stats.CurrentStreak
	}

	award := g.computeAward(action, user, streak)

	if err := g.persistAction(ctx, action); err != nil {
		return nil, err
	}
	g.applyStatDeltas(ctx, action, user)

	oldXP := user.Stats.TotalXP
	updated, err := g.stores.AddXP(ctx, user.ID, award.TotalXP)
	if err != nil {
		return nil, fmt.Errorf("failed to award xp: %w", err)
	}

	level := xp.CalculateLevel(updated.Stats.TotalXP)
	leveledUp := xp.ShouldShowLevelUp(oldXP, updated.Stats.TotalXP)

	newly := g.settleAchievements(ctx, updated)

	g.broadcast(action, updated, award, level, leveledUp, newly)

	return &ActionOutcome{
		Result:          result,
		Award:           &award,
		Level:           &level,
		LeveledUp:       leveledUp,
		NewAchievements: newly,
	}, nil
}

// computeAward builds the XP metadata from the action and the user's
// state, then runs the calculator.
func (g *GamificationService) computeAward(action models.UserAction, user *models.User, streak int) models.XPAward {
	meta := xp.Metadata{
		IsFirstTime:   isFirstOfKind(user.Stats, action.Action),
		CurrentStreak: streak,
		IsWeekend:     isWeekend(action.Timestamp),
	}
	if m := action.Metadata; m != nil {
		if m.Quiz != nil {
			meta.Score = m.Quiz.Score
		}
		if m.Completion != nil {
			meta.CompletionRate = m.Completion.CompletionRate
			meta.StudyDuration = m.Completion.StudyDuration
		}
	}

	if action.Action == models.ActionWatchBonus {
		return g.calc.WatchBonus(action.Metadata.WatchBonus.WatchTimeMinutes, meta)
	}
	return g.calc.Calculate(action.Action, meta)
}

// persistAction appends the log entry and bumps the per-day counter; for
// watch bonuses it also advances the rewarded minute mark.
func (g *GamificationService) persistAction(ctx context.Context, action models.UserAction) error {
	if err := g.stores.InsertAction(ctx, action); err != nil {
		return fmt.Errorf("failed to append action log: %w", err)
	}
	date := action.Timestamp.Format("2006-01-02")
	if err := g.stores.IncrementDailyCount(ctx, action.UserID, action.Action, date); err != nil {
		log.Printf("gamification: daily counter increment failed: %v", err)
	}
	if action.Action == models.ActionWatchBonus && action.Metadata != nil && action.Metadata.WatchBonus != nil {
		if err := g.stores.RecordWatchReward(ctx, action.UserID, action.VideoID,
			action.Metadata.WatchBonus.WatchTimeMinutes, action.Timestamp); err != nil {
			log.Printf("gamification: watch reward record failed: %v", err)
		}
	}
	return nil
}

// applyStatDeltas bumps the stats counters the achievement engine reads.
func (g *GamificationService) applyStatDeltas(ctx context.Context, action models.UserAction, user *models.User) {
	deltas := bson.M{}
	switch action.Action {
	case models.ActionVideoWatch:
		deltas["videosWatched"] = 1
	case models.ActionVideoLike:
		deltas["videosLiked"] = 1
	case models.ActionQuizComplete:
		deltas["quizzesCompleted"] = 1
	case models.ActionChallengeComplete:
		deltas["challengesCompleted"] = 1
	case models.ActionCourseComplete:
		deltas["coursesCompleted"] = 1
	}
	if m := action.Metadata; m != nil && m.Completion != nil && m.Completion.StudyDuration > 0 {
		deltas["timeSpent"] = m.Completion.StudyDuration
	}
	if action.Action == models.ActionVideoWatch {
		hour := action.Timestamp.Hour()
		if hour >= 5 && hour < 8 {
			deltas["earlyBirdSessions"] = 1
		}
		if hour >= 22 || hour < 2 {
			deltas["nightOwlSessions"] = 1
		}
		if isWeekend(action.Timestamp) {
			deltas["weekendSessions"] = 1
		}
	}
	if len(deltas) == 0 {
		return
	}
	if err := g.stores.IncStats(ctx, user.ID, deltas); err != nil {
		log.Printf("gamification: stat update failed for %s: %v", user.ID.Hex(), err)
	}
}

// settleAchievements detects newly unlocked achievements on the updated
// stats, awards their one-time XP, and caches the unlock ids.
func (g *GamificationService) settleAchievements(ctx context.Context, user *models.User) []models.AchievementStatus {
	newly := achievements.CheckNew(user.Stats, user.UnlockedAchievements, g.now())
	if len(newly) == 0 {
		return nil
	}

	ids := make([]string, 0, len(newly))
	bonus := 0
	for _, a := range newly {
		ids = append(ids, a.ID)
		bonus += a.XPReward
	}
	if err := g.stores.CacheUnlocks(ctx, user.ID, ids); err != nil {
		log.Printf("gamification: unlock cache write failed: %v", err)
	}
	if bonus > 0 {
		if _, err := g.stores.AddXP(ctx, user.ID, bonus); err != nil {
			log.Printf("gamification: achievement bonus award failed: %v", err)
		}
	}
	return newly
}

func (g *GamificationService) broadcast(action models.UserAction, user *models.User, award models.XPAward, level xp.LevelInfo, leveledUp bool, newly []models.AchievementStatus) {
	websocket.BroadcastGamificationEvent(models.GamificationEvent{
		Type:       "xp_awarded",
		UserID:     user.ID.Hex(),
		Action:     string(action.Action),
		Points:     award.TotalXP,
		NewTotalXP: user.Stats.TotalXP,
		Timestamp:  g.now(),
	})
	if leveledUp {
		websocket.BroadcastGamificationEvent(models.GamificationEvent{
			Type:      "level_up",
			UserID:    user.ID.Hex(),
			Level:     level.Level,
			Message:   fmt.Sprintf("Level %d reached!", level.Level),
			Timestamp: g.now(),
		})
	}
	for _, a := range newly {
		websocket.BroadcastGamificationEvent(models.GamificationEvent{
			Type:          "achievement_unlocked",
			UserID:        user.ID.Hex(),
			AchievementID: a.ID,
			Badge:         a.Title,
			Points:        a.XPReward,
			Timestamp:     g.now(),
		})
	}
}

// isFirstOfKind reports whether the user has never performed this kind,
// judged from the stats counters taken before this action is applied.
func isFirstOfKind(stats models.UserStats, kind models.ActionKind) bool {
	switch kind {
	case models.ActionVideoWatch:
		return stats.VideosWatched == 0
	case models.ActionVideoLike:
		return stats.VideosLiked == 0
	case models.ActionQuizComplete:
		return stats.QuizzesCompleted == 0
	case models.ActionChallengeComplete:
		return stats.ChallengesCompleted == 0
	case models.ActionCourseComplete:
		return stats.CoursesCompleted == 0
	}
	return false
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
