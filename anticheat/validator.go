// Package anticheat gates reward-bearing user actions before any XP is
// granted. The validator is stateless: a pure function of the reported
// action, the caller-supplied recent history, and a few external reads.
// It is advisory; unique constraints at the storage layer remain the
// final backstop against concurrent duplicates.
package anticheat

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidquest/models"
)

// Per-kind cooldown between consecutive actions.
var cooldowns = map[models.ActionKind]time.Duration{
	models.ActionVideoLike:         3 * time.Second,
	models.ActionQuizComplete:      2 * time.Minute,
	models.ActionChallengeComplete: 5 * time.Minute,
	models.ActionNotesRead:         10 * time.Second,
	models.ActionCourseComplete:    time.Hour,
	models.ActionWatchBonus:        2 * time.Minute,
}

// Per-kind cap on actions within the trailing hour.
var hourlyCaps = map[models.ActionKind]int{
	models.ActionVideoLike:         30,
	models.ActionQuizComplete:      5,
	models.ActionChallengeComplete: 3,
	models.ActionNotesRead:         50,
	models.ActionCourseComplete:    1,
	models.ActionWatchBonus:        30,
}

// Per-kind cap on actions within one server-local calendar day.
var dailyCaps = map[models.ActionKind]int{
	models.ActionVideoLike:         100,
	models.ActionQuizComplete:      15,
	models.ActionChallengeComplete: 10,
	models.ActionNotesRead:         200,
	models.ActionCourseComplete:    3,
	models.ActionWatchBonus:        720,
}

const (
	likeBurstWindow = 10 * time.Second
	likeBurstMax    = 5
	likeMinGap      = time.Second

	minWatchBonusMinutes  = 2
	watchBonusInterval    = 2 // minutes between reward bands
	secondsPerQuestion    = 10
	defaultQuestionsCount = 5
)

// LikeStore answers whether a like relation already exists. This read is
// authoritative and independent of the in-memory history window.
type LikeStore interface {
	HasLiked(ctx context.Context, userID primitive.ObjectID, videoID string) (bool, error)
}

// DailyCountStore reads the persisted per-day action counter.
type DailyCountStore interface {
	DailyCount(ctx context.Context, userID primitive.ObjectID, kind models.ActionKind, date string) (int, error)
}

// WatchRewardStore reads the highest watch-time minute mark already
// rewarded for a user on a video. Returns 0 when nothing was rewarded yet.
type WatchRewardStore interface {
	LastRewardedMinutes(ctx context.Context, userID primitive.ObjectID, videoID string) (int, error)
}

// Validator decides whether a reported action is legitimate. The clock is
// injectable so cooldown and window math is deterministic under test.
type Validator struct {
	Likes   LikeStore
	Daily   DailyCountStore
	Rewards WatchRewardStore
	Now     func() time.Time
}

// New creates a validator. A nil clock falls back to time.Now.
func New(likes LikeStore, daily DailyCountStore, rewards WatchRewardStore, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{Likes: likes, Daily: daily, Rewards: rewards, Now: now}
}

func valid() models.ValidationResult {
	return models.ValidationResult{Valid: true}
}

func reject(reason string) models.ValidationResult {
	return models.ValidationResult{Valid: false, Reason: reason}
}

// Validate runs the ordered anti-cheat checks; the first failing check
// wins. recent is the caller-curated history window for this user (same
// kind, trailing day is enough). Store read failures fail open: backend
// flakiness must never block a legitimate reward.
func (v *Validator) Validate(ctx context.Context, action models.UserAction, recent []models.UserAction) models.ValidationResult {
	// Watching is never throttled. Deliberate policy, not an oversight.
	if action.Action == models.ActionVideoWatch {
		return valid()
	}

	now := v.Now()
	sameKind := filterHistory(recent, action.UserID, action.Action)

	if action.Action == models.ActionVideoLike {
		if res := v.checkDuplicateLike(ctx, action); !res.Valid {
			return res
		}
	}

	if res := v.checkCooldown(action, sameKind, now); !res.Valid {
		return res
	}
	if res := v.checkHourlyLimit(action, sameKind, now); !res.Valid {
		return res
	}
	if res := v.checkDailyLimit(ctx, action, now); !res.Valid {
		return res
	}
	if res := v.checkSuspiciousPattern(action, sameKind, now); !res.Valid {
		return res
	}
	return v.checkActionSpecific(ctx, action)
}

// filterHistory keeps only this user's actions of the given kind. The
// caller usually pre-filters, but the checks must not trust that.
func filterHistory(recent []models.UserAction, userID primitive.ObjectID, kind models.ActionKind) []models.UserAction {
	var out []models.UserAction
	for _, a := range recent {
		if a.UserID == userID && a.Action == kind {
			out = append(out, a)
		}
	}
	return out
}

// mostRecent returns the latest action in the window, or nil.
func mostRecent(actions []models.UserAction) *models.UserAction {
	var latest *models.UserAction
	for i := range actions {
		if latest == nil || actions[i].Timestamp.After(latest.Timestamp) {
			latest = &actions[i]
		}
	}
	return latest
}

func (v *Validator) checkDuplicateLike(ctx context.Context, action models.UserAction) models.ValidationResult {
	liked, err := v.Likes.HasLiked(ctx, action.UserID, action.VideoID)
	if err != nil {
		v.failOpen("duplicate-like", err)
		return valid()
	}
	if liked {
		return reject("You've already liked this video!")
	}
	return valid()
}

func (v *Validator) checkCooldown(action models.UserAction, sameKind []models.UserAction, now time.Time) models.ValidationResult {
	cooldown, ok := cooldowns[action.Action]
	if !ok || cooldown == 0 {
		return valid()
	}
	last := mostRecent(sameKind)
	if last == nil {
		return valid()
	}
	elapsed := now.Sub(last.Timestamp)
	if elapsed >= cooldown {
		return valid()
	}
	remaining := cooldown - elapsed
	return models.ValidationResult{
		Valid:             false,
		Reason:            fmt.Sprintf("Please wait %d seconds before performing this action again", int(remaining.Seconds())+1),
		CooldownRemaining: remaining.Milliseconds(),
	}
}

func (v *Validator) checkHourlyLimit(action models.UserAction, sameKind []models.UserAction, now time.Time) models.ValidationResult {
	cap, ok := hourlyCaps[action.Action]
	if !ok {
		return valid()
	}
	cutoff := now.Add(-time.Hour)
	count := 0
	for _, a := range sameKind {
		if a.Timestamp.After(cutoff) {
			count++
		}
	}
	if count >= cap {
		return reject("You've reached the hourly limit for this action. Take a short break!")
	}
	return valid()
}

func (v *Validator) checkDailyLimit(ctx context.Context, action models.UserAction, now time.Time) models.ValidationResult {
	cap, ok := dailyCaps[action.Action]
	if !ok {
		return valid()
	}
	count, err := v.Daily.DailyCount(ctx, action.UserID, action.Action, now.Format("2006-01-02"))
	if err != nil {
		v.failOpen("daily-limit", err)
		return valid()
	}
	if count >= cap {
		return reject("You've reached today's limit for this action. Come back tomorrow!")
	}
	return valid()
}

// checkSuspiciousPattern currently targets rapid-fire liking only; other
// kinds pass through until they grow patterns of their own.
func (v *Validator) checkSuspiciousPattern(action models.UserAction, sameKind []models.UserAction, now time.Time) models.ValidationResult {
	if action.Action != models.ActionVideoLike {
		return valid()
	}
	burst := 0
	cutoff := now.Add(-likeBurstWindow)
	for _, a := range sameKind {
		if a.Timestamp.After(cutoff) {
			burst++
		}
	}
	if burst > likeBurstMax {
		return reject("You're going too fast! Slow down a little.")
	}
	if last := mostRecent(sameKind); last != nil && now.Sub(last.Timestamp) < likeMinGap {
		return reject("You're going too fast! Slow down a little.")
	}
	return valid()
}

func (v *Validator) checkActionSpecific(ctx context.Context, action models.UserAction) models.ValidationResult {
	switch action.Action {
	case models.ActionWatchBonus:
		return v.checkWatchBonus(ctx, action)
	case models.ActionQuizComplete:
		return checkQuizComplete(action)
	}
	return valid()
}

// checkWatchBonus enforces that bonuses are claimed in monotonically
// increasing 2-minute bands per (user, video).
func (v *Validator) checkWatchBonus(ctx context.Context, action models.UserAction) models.ValidationResult {
	meta := action.Metadata
	if meta == nil || meta.WatchBonus == nil || meta.WatchBonus.WatchTimeMinutes < minWatchBonusMinutes {
		return reject("Watch at least 2 minutes to claim a bonus")
	}
	claimed := meta.WatchBonus.WatchTimeMinutes

	last, err := v.Rewards.LastRewardedMinutes(ctx, action.UserID, action.VideoID)
	if err != nil {
		v.failOpen("watch-bonus-interval", err)
		return valid()
	}
	if claimed-last < watchBonusInterval {
		return reject("You've already been rewarded for this watch interval")
	}
	return valid()
}

// checkQuizComplete guards against instant or automated quiz submissions:
// a human needs at least ~10 seconds per question.
func checkQuizComplete(action models.UserAction) models.ValidationResult {
	meta := action.Metadata
	if meta == nil || meta.Quiz == nil || meta.Quiz.Score == nil || meta.Quiz.TimeSpent == nil {
		return reject("Quiz results are incomplete")
	}
	questions := meta.Quiz.QuestionsCount
	if questions <= 0 {
		questions = defaultQuestionsCount
	}
	if *meta.Quiz.TimeSpent < questions*secondsPerQuestion {
		return reject("That quiz was completed too quickly to count")
	}
	return valid()
}

// failOpen records a degraded store read. Availability of rewards beats
// strict enforcement when the backing store is flaky.
func (v *Validator) failOpen(check string, err error) {
	log.Printf("anticheat: %s check degraded, allowing action: %v", check, err)
}
