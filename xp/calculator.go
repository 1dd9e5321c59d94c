package xp

import (
	"fmt"
	"math"
	"time"

	"vidquest/models"
)

const (
	perfectScoreBonus   = 100
	completionHighBonus = 30
	completionMidBonus  = 15
	earlyBirdBonus      = 20
	nightOwlBonus       = 15
	weekendBonus        = 25
	studyDurationBonus  = 100

	completionHighRate = 95.0
	completionMidRate  = 80.0
	longStudySeconds   = 7200
)

// baseXP maps each action kind to its base point value.
var baseXP = map[models.ActionKind]int{
	models.ActionVideoWatch:        50,
	models.ActionVideoLike:         15,
	models.ActionQuizComplete:      100,
	models.ActionChallengeComplete: 200,
	models.ActionNotesRead:         15,
	models.ActionCourseComplete:    500,
	models.ActionWatchBonus:        25,
}

// firstTimeBonus is the fixed extra awarded the first time a user performs
// an action kind.
var firstTimeBonus = map[models.ActionKind]int{
	models.ActionVideoWatch:        50,
	models.ActionVideoLike:         10,
	models.ActionQuizComplete:      50,
	models.ActionChallengeComplete: 100,
	models.ActionNotesRead:         10,
	models.ActionCourseComplete:    200,
}

// scoredKinds are the kinds where a perfect score earns the perfect bonus.
var scoredKinds = map[models.ActionKind]bool{
	models.ActionQuizComplete:      true,
	models.ActionChallengeComplete: true,
}

// StreakBonus is one tier of the streak multiplier table.
type StreakBonus struct {
	Days       int     `json:"days"`
	Multiplier float64 `json:"multiplier"`
	Badge      string  `json:"badge"`
	BonusXP    int     `json:"bonusXP"`
}

// streakTiers is ordered by descending day threshold; the first tier whose
// Days <= the user's streak wins.
var streakTiers = []StreakBonus{
	{Days: 100, Multiplier: 3.0, Badge: "Century Champion", BonusXP: 5000},
	{Days: 30, Multiplier: 2.5, Badge: "Month Master", BonusXP: 1000},
	{Days: 14, Multiplier: 2.0, Badge: "Fortnight Fighter", BonusXP: 300},
	{Days: 7, Multiplier: 1.75, Badge: "Week Warrior", BonusXP: 150},
	{Days: 3, Multiplier: 1.5, Badge: "Streak Starter", BonusXP: 75},
}

// watchMilestone is one entry of the watch-time bonus ladder.
type watchMilestone struct {
	minutes       int
	bonus         int
	encouragement string
}

// watchMilestones is ordered by descending minute threshold; the highest
// threshold at or below the claimed watch time wins.
var watchMilestones = []watchMilestone{
	{60, 150, "A full hour of focused learning — legendary dedication!"},
	{45, 100, "45 minutes straight — you're unstoppable!"},
	{30, 75, "Half an hour of focus — seriously impressive!"},
	{20, 50, "20 minutes in — your brain thanks you!"},
	{15, 40, "Quarter of an hour — great momentum!"},
	{10, 30, "Ten minutes deep — nice focus!"},
	{8, 25, "Eight minutes — keep that streak of attention going!"},
	{6, 20, "Six minutes — you're settling in!"},
	{4, 15, "Four minutes — warming up nicely!"},
	{2, 10, "Great start — keep watching!"},
}

// Metadata carries the qualifiers an XP calculation may read. Absent
// fields default to "no bonus" rather than erroring.
type Metadata struct {
	IsFirstTime    bool
	Score          *int
	CompletionRate float64 // percent, 0 = unreported
	CurrentStreak  int
	StudyDuration  int // seconds
	IsWeekend      bool
}

// LevelInfo describes level progression for a cumulative XP total.
type LevelInfo struct {
	Level          int     `json:"level"`
	CurrentLevelXP int     `json:"currentLevelXP"`
	NextLevelXP    int     `json:"nextLevelXP"`
	Progress       float64 `json:"progress"` // percent into the current level
}

// Calculator computes XP awards. The clock is injectable so time-of-day
// bonuses are deterministic under test.
type Calculator struct {
	Now func() time.Time
}

// New creates a calculator. A nil clock falls back to time.Now.
func New(now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{Now: now}
}

// Calculate computes the XP award for one action. Unknown kinds yield a
// zero award with no bonuses, so new kinds cannot break callers.
func (c *Calculator) Calculate(kind models.ActionKind, meta Metadata) models.XPAward {
	base, ok := baseXP[kind]
	if !ok {
		return models.XPAward{}
	}

	award := models.XPAward{BaseXP: base}

	if meta.IsFirstTime {
		if amount, ok := firstTimeBonus[kind]; ok {
			c.addBonus(&award, "first_time", amount, fmt.Sprintf("First %s — welcome bonus!", kind))
		}
	}

	if meta.Score != nil && *meta.Score == 100 && scoredKinds[kind] {
		c.addBonus(&award, "perfect_score", perfectScoreBonus, "Perfect score!")
	}

	switch {
	case meta.CompletionRate >= completionHighRate:
		c.addBonus(&award, "completion_rate", completionHighBonus, "Watched almost everything")
	case meta.CompletionRate >= completionMidRate:
		c.addBonus(&award, "completion_rate", completionMidBonus, "Solid completion rate")
	}

	c.applyTimeOfDay(&award, meta)

	if meta.StudyDuration >= longStudySeconds {
		c.addBonus(&award, "study_duration", studyDurationBonus, "Marathon study session")
	}

	c.applyStreakMultiplier(&award, meta.CurrentStreak)

	award.TotalXP = award.BaseXP + award.BonusXP
	return award
}

// WatchBonus computes the award for a continuous-watch-time claim. The
// caller (the anti-cheat gate) guarantees the same minute band is never
// rewarded twice.
func (c *Calculator) WatchBonus(watchTimeMinutes int, meta Metadata) models.XPAward {
	var award models.XPAward
	for _, m := range watchMilestones {
		if watchTimeMinutes >= m.minutes {
			award.BaseXP = m.bonus
			award.Encouragement = m.encouragement
			break
		}
	}
	if award.BaseXP == 0 {
		return award
	}

	c.applyTimeOfDay(&award, meta)
	c.applyStreakMultiplier(&award, meta.CurrentStreak)

	award.TotalXP = award.BaseXP + award.BonusXP
	return award
}

func (c *Calculator) addBonus(award *models.XPAward, typ string, amount int, desc string) {
	award.BonusXP += amount
	award.Bonuses = append(award.Bonuses, models.Bonus{Type: typ, Amount: amount, Description: desc})
}

// applyTimeOfDay applies the wall-clock bonuses. The Night Owl window
// wraps midnight, so it is hour>=22 || hour<2; a plain range check would
// never match.
func (c *Calculator) applyTimeOfDay(award *models.XPAward, meta Metadata) {
	hour := c.Now().Hour()
	if hour >= 5 && hour < 8 {
		c.addBonus(award, "early_bird", earlyBirdBonus, "Early Bird: learning before 8am")
	}
	if hour >= 22 || hour < 2 {
		c.addBonus(award, "night_owl", nightOwlBonus, "Night Owl: burning the midnight oil")
	}
	if meta.IsWeekend {
		c.addBonus(award, "weekend", weekendBonus, "Weekend Warrior: studying on your day off")
	}
}

// applyStreakMultiplier scales the running subtotal by the streak tier.
// The extra is floor(subtotal * (multiplier-1)) so the multiplier is exact
// over base plus all earlier bonuses.
func (c *Calculator) applyStreakMultiplier(award *models.XPAward, streak int) {
	tier := StreakBonusFor(streak)
	if tier == nil {
		return
	}
	subtotal := award.BaseXP + award.BonusXP
	extra := int(math.Floor(float64(subtotal) * (tier.Multiplier - 1)))
	if extra <= 0 {
		return
	}
	c.addBonus(award, "streak_multiplier", extra,
		fmt.Sprintf("%s: %d-day streak ×%.2f", tier.Badge, streak, tier.Multiplier))
}

// StreakBonusFor returns the highest tier whose day threshold the streak
// meets, or nil below 3 days.
func StreakBonusFor(streak int) *StreakBonus {
	for i := range streakTiers {
		if streak >= streakTiers[i].Days {
			t := streakTiers[i]
			return &t
		}
	}
	return nil
}

// RequirementFor returns the XP needed to clear the given level:
// floor(100 * 1.4^(level-1)).
func RequirementFor(level int) int {
	return int(math.Floor(100 * math.Pow(1.4, float64(level-1))))
}

// CalculateLevel converts cumulative XP into level progression.
// Monotonic in totalXP; progress stays in [0,100) and reads 0 exactly at
// a level boundary.
func CalculateLevel(totalXP int) LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}
	level := 1
	remaining := totalXP
	req := RequirementFor(level)
	for remaining >= req {
		remaining -= req
		level++
		req = RequirementFor(level)
	}
	return LevelInfo{
		Level:          level,
		CurrentLevelXP: remaining,
		NextLevelXP:    req,
		Progress:       float64(remaining) / float64(req) * 100,
	}
}

// ShouldShowLevelUp reports whether the XP delta crossed a level boundary.
func ShouldShowLevelUp(oldXP, newXP int) bool {
	return CalculateLevel(newXP).Level > CalculateLevel(oldXP).Level
}
